// Package sdkmap resolves which iOS SDK ships inside each Xcode release by
// querying several independent sources and cross-referencing their answers.
//
// A resolution run fetches every configured source concurrently, widens the
// version universe with the xcodes CLI enumeration, reconciles each version
// into a confidence-scored record, and compares the resulting mapping
// against the previous run's output to decide whether anything changed.
package sdkmap

import (
	"context"
	"sync"

	"github.com/sdkmap/sdkmap/internal/sources/applearchive"
	"github.com/sdkmap/sdkmap/internal/sources/appledocs"
	"github.com/sdkmap/sdkmap/internal/sources/applesupport"
	"github.com/sdkmap/sdkmap/internal/sources/wikipedia"
	"github.com/sdkmap/sdkmap/internal/sources/xcodebuild"
	"github.com/sdkmap/sdkmap/internal/sources/xcodereleases"
	"github.com/sdkmap/sdkmap/pkg/differ"
	"github.com/sdkmap/sdkmap/pkg/logging"
	"github.com/sdkmap/sdkmap/pkg/report"
	"github.com/sdkmap/sdkmap/pkg/sources"
	"github.com/sdkmap/sdkmap/pkg/xref"
)

// Enumerator lists known Xcode versions without claiming SDKs for them.
// It widens the universe the resolver must answer for.
type Enumerator interface {
	Versions(ctx context.Context) []string
}

// RunResult is the outcome of one resolution run.
type RunResult struct {
	// Report is the full cross-reference report over every version.
	Report *report.Report

	// Records are the rows selected for output. Identical to
	// Report.Records unless the run was restricted to conflicts.
	Records []xref.Record

	// Flat is the persisted version mapping built from Records.
	Flat *report.Flat

	// Changed reports whether Flat differs from the previous run's file.
	// Without a previous file to compare against it is always true.
	Changed bool

	// Changes details what changed, when a previous file was readable.
	Changes *differ.Changeset
}

// Client runs resolutions. Construct it with New.
type Client struct {
	config *config
}

// DefaultSources returns all built-in sources in authority order.
func DefaultSources() []sources.Source {
	return []sources.Source{
		xcodebuild.New(),
		appledocs.New(),
		applesupport.New(),
		xcodereleases.New(),
		applearchive.NewXcode9(),
		applearchive.NewChapters(),
		wikipedia.NewHistory(),
		wikipedia.NewArticle(),
	}
}

// New creates a Client with the given options.
func New(opts ...Option) (*Client, error) {
	c := &Client{config: defaultConfig()}
	for _, opt := range opts {
		if err := opt(c.config); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Resolve performs a full resolution run: enumerate, fetch, cross-reference,
// aggregate, and diff against the previous output.
//
// A failing source is isolated, not fatal: it contributes an empty result
// and the run continues. The run fails only when the combined universe ends
// up empty, which means every source and the enumeration produced nothing.
func (c *Client) Resolve(ctx context.Context) (*RunResult, error) {
	logger := logging.Ctx(ctx)

	var enumerated []string
	if c.config.enumerator != nil {
		enumerated = c.config.enumerator.Versions(logging.WithOperation(ctx, "enumerate"))
	}

	results := c.fetchAll(logging.WithOperation(ctx, "fetch"))

	universe, err := xref.Universe(results, enumerated)
	if err != nil {
		return nil, err
	}
	logger.Info().Int("versions", len(universe)).Msg("Version universe built")

	records := xref.ResolveAll(universe, results)

	ids := make([]sources.ID, len(c.config.sources))
	for i, src := range c.config.sources {
		ids[i] = src.ID()
	}
	rep := report.Build(records, ids)

	outputRecords := rep.Records
	if c.config.conflictsOnly {
		outputRecords = rep.Conflicts()
	}
	flat := report.NewFlat(outputRecords)

	run := &RunResult{
		Report:  rep,
		Records: outputRecords,
		Flat:    flat,
		Changed: true,
	}
	if c.config.previousPath != "" {
		run.Changed, run.Changes = differ.Detect(c.config.previousPath, flat)
	}

	logger.Info().
		Int("resolved", flat.Len()).
		Int("conflicts", rep.Summary.Conflicts).
		Bool("changed", run.Changed).
		Msg("Resolution run complete")
	return run, nil
}

// fetchAll fetches every source concurrently and returns their results in
// the configured source order, most authoritative first. Fetch errors are
// demoted to empty results so one unreachable source cannot sink the run.
func (c *Client) fetchAll(ctx context.Context) []*sources.Result {
	results := make([]*sources.Result, len(c.config.sources))
	sem := make(chan struct{}, c.config.workers)

	var wg sync.WaitGroup
	for i, src := range c.config.sources {
		i, src := i, src
		wg.Add(1)
		go func() {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			// Every log line from inside the adapter carries its source.
			srcCtx := logging.WithSource(ctx, src.ID().String())
			res, err := src.Fetch(srcCtx)
			if err != nil {
				logging.Ctx(srcCtx).Warn().Err(err).
					Msg("Source fetch failed, continuing without it")
				res = sources.NewResult(src.ID())
			}
			results[i] = res
		}()
	}
	wg.Wait()

	return results
}
