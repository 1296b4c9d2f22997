package cli

import (
	"github.com/hashicorp/go-multierror"

	"github.com/survivorsrl/netreport/internal/discovery"
	"github.com/survivorsrl/netreport/internal/errors"
	"github.com/survivorsrl/netreport/internal/junit"
	"github.com/survivorsrl/netreport/internal/report"
	"github.com/survivorsrl/netreport/options"
	"github.com/survivorsrl/netreport/util"
)

// Run executes a full aggregation pass: discover result documents, parse them, derive the
// metrics, write the artifact, and echo the result.
//
// A missing or unreadable results root is not fatal: it is logged and the run produces an
// empty summary, like a pipeline stage that ran zero tests. Per-document parse failures are
// logged and skipped. Only artifact write and validation failures fail the run.
func Run(opts *options.Options) error {
	paths, err := discovery.NewDiscovery(opts.ResultsDir).Discover()
	if err != nil {
		opts.Logger.Warnf("%s", err.Error())
	}

	if err == nil && len(paths) == 0 {
		opts.Logger.Infof("No test results found in %s", opts.ResultsDir)
	}

	rep := report.NewReport()

	var parseErrs *multierror.Error

	for _, path := range paths {
		cases, parseErr := junit.ParseFile(path)
		if parseErr != nil {
			opts.Logger.Warnf("Error parsing %s: %s", path, parseErr.Error())
			parseErrs = multierror.Append(parseErrs, parseErr)

			continue
		}

		for _, testCase := range cases {
			rep.Record(testCase)
		}
	}

	if err := parseErrs.ErrorOrNil(); err != nil {
		opts.Logger.Warnf("Skipped %d malformed result document(s)", len(parseErrs.Errors))
	}

	metrics := rep.Summarize()

	outputPath, err := util.CanonicalPath(opts.OutputPath, opts.WorkingDir)
	if err != nil {
		return err
	}

	if err := metrics.WriteToFile(outputPath); err != nil {
		return errors.WithStackTraceAndPrefix(err, "failed to write metrics report to %s", outputPath)
	}

	if opts.SchemaPath != "" {
		schemaPath, err := util.CanonicalPath(opts.SchemaPath, opts.WorkingDir)
		if err != nil {
			return err
		}

		if err := report.WriteSchemaToFile(schemaPath); err != nil {
			return errors.WithStackTraceAndPrefix(err, "failed to write schema to %s", schemaPath)
		}
	}

	if opts.Validate {
		if err := report.ValidateFile(outputPath); err != nil {
			return err
		}
	}

	opts.Logger.Infof("Network metrics report generated: %s", outputPath)

	if err := metrics.WriteJSON(opts.Writer); err != nil {
		return err
	}

	return metrics.Summary(!opts.DisableColor).Write(opts.Writer)
}
