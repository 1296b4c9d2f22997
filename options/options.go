// Package options defines the configuration for a netreport run.
package options

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

// DefaultOutputName is the artifact filename used when --output is not given.
const DefaultOutputName = "network_metrics.json"

const defaultLogLevel = logrus.InfoLevel

// Options carries everything a run needs, threaded explicitly through the code instead of
// read from ambient process state, so the core stays testable with in-memory streams.
type Options struct {
	// Logger used for informational notices and warnings. Logs go to ErrWriter; the JSON
	// echo goes to Writer so the two streams never interleave.
	Logger *logrus.Entry

	// WorkingDir is the directory relative output paths are resolved against.
	WorkingDir string

	// ResultsDir is the root directory scanned for result documents.
	ResultsDir string

	// OutputPath is the destination of the metrics artifact.
	OutputPath string

	// SchemaPath, when non-empty, is where the artifact's JSON schema is also written.
	SchemaPath string

	// Validate requests schema validation of the written artifact.
	Validate bool

	// DisableColor turns off ANSI colors in the summary echo.
	DisableColor bool

	// Writer is the stream for the artifact echo and summary (stdout in production).
	Writer io.Writer

	// ErrWriter is the stream for logs and usage errors (stderr in production).
	ErrWriter io.Writer
}

// NewOptions returns Options with production defaults. Colors are enabled only when stdout
// is a terminal.
func NewOptions() *Options {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(defaultLogLevel)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})

	workingDir, err := os.Getwd()
	if err != nil {
		workingDir = "."
	}

	isTerminal := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

	return &Options{
		Logger:       logrus.NewEntry(logger),
		WorkingDir:   workingDir,
		OutputPath:   DefaultOutputName,
		DisableColor: !isTerminal,
		Writer:       os.Stdout,
		ErrWriter:    os.Stderr,
	}
}

// SetLogLevel parses and applies a logrus level name.
func (opts *Options) SetLogLevel(name string) error {
	level, err := logrus.ParseLevel(name)
	if err != nil {
		return err
	}

	opts.Logger.Logger.SetLevel(level)

	return nil
}
