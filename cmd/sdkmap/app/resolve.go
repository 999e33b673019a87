package app

import (
	"context"
	"os"

	"github.com/sdkmap/sdkmap"
	"github.com/sdkmap/sdkmap/internal/cmd/output"
	"github.com/sdkmap/sdkmap/pkg/errors"
	"github.com/sdkmap/sdkmap/pkg/logging"
	"github.com/sdkmap/sdkmap/pkg/report"
	"github.com/sdkmap/sdkmap/pkg/sources"
)

// ErrMapChanged signals that the resolved mapping differs from the previous
// run's output. main turns it into exit status 1.
var ErrMapChanged = errors.New("sdk mapping updated")

// runResolve performs the full resolution run and writes the output files.
func (a *App) runResolve(ctx context.Context) error {
	ctx = logging.WithLogger(ctx, a.logger)

	opts := []sdkmap.Option{
		sdkmap.WithPreviousPath(a.config.JSONPath),
		sdkmap.WithConflictsOnly(a.config.ConflictsOnly),
	}
	if a.config.SkipXcodes {
		opts = append(opts, sdkmap.WithoutEnumeration())
	}

	client, err := sdkmap.New(opts...)
	if err != nil {
		return err
	}

	run, err := client.Resolve(ctx)
	if err != nil {
		return err
	}

	ids := sources.Authority()

	// The review table always covers every version, even when the output
	// files are restricted to conflicts.
	if a.config.Table {
		table := output.ReviewTable(run.Report.Records, ids)
		if err := (&output.TableFormatter{}).Format(os.Stderr, table); err != nil {
			return err
		}
	}

	if a.config.Detailed {
		detailed := &report.Report{Summary: run.Report.Summary, Records: run.Records}
		if err := a.writeJSON(detailed); err != nil {
			return err
		}
		if err := a.writeCSV(output.DetailedTable(run.Records, ids)); err != nil {
			return err
		}
	} else {
		if err := a.writeJSON(run.Flat); err != nil {
			return err
		}
		if err := a.writeCSV(output.FlatTable(run.Flat)); err != nil {
			return err
		}
	}

	if err := a.renderStdout(run, ids); err != nil {
		return err
	}

	summary := run.Report.Summary
	a.logger.Info().
		Int("entries", run.Flat.Len()).
		Int("conflicts", summary.Conflicts).
		Float64("coverage_pct", summary.CoveragePct).
		Bool("changed", run.Changed).
		Msg("Outputs written")
	if summary.Conflicts > 0 && !a.config.Detailed {
		a.logger.Info().
			Int("conflicts", summary.Conflicts).
			Msg("Re-run with --detailed to inspect conflicts")
	}

	if run.Changed {
		return ErrMapChanged
	}
	return nil
}

// renderStdout prints the run to stdout in the configured format. With no
// --format flag the format follows the terminal: a table for humans, JSON
// for pipes.
func (a *App) renderStdout(run *sdkmap.RunResult, ids []sources.ID) error {
	format := output.DetectFormat(a.config.Format)
	formatter := output.NewFormatter(format)
	return formatter.Format(os.Stdout, a.stdoutPayload(run, ids, format))
}

// stdoutPayload picks what to render for a given format. Tabular formats get
// the review table or the flat CSV shape; structured formats mirror the JSON
// output file.
func (a *App) stdoutPayload(run *sdkmap.RunResult, ids []sources.ID, format output.Format) any {
	switch format {
	case output.FormatTable:
		return output.ReviewTable(run.Records, ids)
	case output.FormatCSV:
		return output.FlatTable(run.Flat)
	default:
		if a.config.Detailed {
			return &report.Report{Summary: run.Report.Summary, Records: run.Records}
		}
		return run.Flat
	}
}

// writeJSON writes data to the configured JSON path, indented.
func (a *App) writeJSON(data any) error {
	f, err := os.Create(a.config.JSONPath)
	if err != nil {
		return errors.WrapIO("create", a.config.JSONPath, err)
	}
	defer f.Close() //nolint:errcheck

	formatter := &output.JSONFormatter{Indent: "  "}
	if err := formatter.Format(f, data); err != nil {
		return errors.WrapIO("write", a.config.JSONPath, err)
	}
	return nil
}

// writeCSV writes tabular data to the configured CSV path.
func (a *App) writeCSV(data output.Data) error {
	f, err := os.Create(a.config.CSVPath)
	if err != nil {
		return errors.WrapIO("create", a.config.CSVPath, err)
	}
	defer f.Close() //nolint:errcheck

	formatter := &output.CSVFormatter{}
	if err := formatter.Format(f, data); err != nil {
		return errors.WrapIO("write", a.config.CSVPath, err)
	}
	return nil
}
