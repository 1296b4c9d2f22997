// Package cli wires up the netreport command line application.
package cli

import (
	"github.com/urfave/cli/v2"

	"github.com/survivorsrl/netreport/internal/errors"
	"github.com/survivorsrl/netreport/options"
)

const appName = "netreport"

// App wraps the urfave app so that Run can accept flags anywhere in argv, the way the tool
// is invoked in practice (`netreport <dir> --output <file>`).
type App struct {
	*cli.App
}

// Run parses the given arguments and runs the app. Flags after the positional argument are
// honored: urfave/cli stops flag parsing at the first positional, so arguments are
// normalized first.
func (app *App) Run(arguments []string) error {
	return app.App.Run(normalizeArgs(arguments))
}

// NewApp creates the netreport CLI app.
func NewApp(opts *options.Options) *App {
	app := cli.NewApp()
	app.Name = appName
	app.Usage = "Aggregate Unity test runner results into a network metrics report"
	app.UsageText = appName + " [options] <test_results_dir>"
	app.Writer = opts.Writer
	app.ErrWriter = opts.ErrWriter
	app.HideHelpCommand = true

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Destination path for the metrics artifact",
			Value:   options.DefaultOutputName,
		},
		&cli.StringFlag{
			Name:  "schema-file",
			Usage: "Also write the artifact's JSON schema to this path",
		},
		&cli.BoolFlag{
			Name:  "validate",
			Usage: "Validate the written artifact against the schema",
		},
		&cli.BoolFlag{
			Name:  "no-color",
			Usage: "Disable ANSI colors in the summary output",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level (trace, debug, info, warn, error)",
		},
	}

	app.Action = func(c *cli.Context) error {
		if level := c.String("log-level"); level != "" {
			if err := opts.SetLogLevel(level); err != nil {
				return errors.WithStackTrace(err)
			}
		}

		// Usage errors fail before any I/O happens.
		if c.NArg() < 1 {
			_ = cli.ShowAppHelp(c)

			return errors.ErrorWithExitCode{
				Err:      errors.Errorf("missing required argument <test_results_dir>"),
				ExitCode: 1,
			}
		}

		opts.ResultsDir = c.Args().First()
		opts.OutputPath = c.String("output")
		opts.SchemaPath = c.String("schema-file")
		opts.Validate = c.Bool("validate")

		if c.Bool("no-color") {
			opts.DisableColor = true
		}

		return Run(opts)
	}

	return &App{App: app}
}
