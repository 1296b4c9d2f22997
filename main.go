package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/survivorsrl/netreport/cli"
	"github.com/survivorsrl/netreport/internal/errors"
	"github.com/survivorsrl/netreport/options"
)

// The main entrypoint for netreport
func main() {
	opts := options.NewOptions()

	defer errors.Recover(checkForErrorsAndExit(opts.Logger))

	app := cli.NewApp(opts)

	err := app.Run(os.Args)

	checkForErrorsAndExit(opts.Logger)(err)
}

// If there is an error, display it in the console and exit with a non-zero exit code. Otherwise, exit 0.
func checkForErrorsAndExit(logger *logrus.Entry) func(error) {
	return func(err error) {
		if err == nil {
			os.Exit(0)
		}

		logger.Error(err.Error())

		if errStack := errors.ErrorStack(err); errStack != "" {
			logger.Debug(errStack)
		}

		os.Exit(errors.GetExitCode(err))
	}
}
