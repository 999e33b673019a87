// Package appledocs implements the Apple Developer Documentation source. The
// documentation site exposes one release-notes JSON document per Xcode
// version at a guessable URL; the adapter probes the plausible version space
// in parallel and mines each hit for its bundled iOS SDK.
package appledocs

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/sdkmap/sdkmap/internal/scrape"
	"github.com/sdkmap/sdkmap/internal/transport"
	"github.com/sdkmap/sdkmap/pkg/constants"
	"github.com/sdkmap/sdkmap/pkg/logging"
	"github.com/sdkmap/sdkmap/pkg/sources"
)

const urlTemplate = "https://developer.apple.com/tutorials/data/documentation/" +
	"xcode-release-notes/xcode-%s-release-notes.json"

// Probe ranges. Release notes start at Xcode 8; Apple jumped the version
// scheme from 16 to 26, so both ranges are probed.
var (
	majors  = concat(intRange(8, 16), intRange(26, 35))
	minors  = intRange(0, 7)
	patches = intRange(0, 4)
)

// Task is one probe: a candidate Xcode version and its URL slug.
type Task struct {
	XcodeVersion string
	URL          string
}

// Source probes the documentation JSON endpoints.
type Source struct {
	client  *transport.Client
	baseURL string // printf template with one %s slug
	workers int
}

// Option configures a Source.
type Option func(*Source)

// WithURLTemplate overrides the endpoint template, used by tests.
func WithURLTemplate(tmpl string) Option {
	return func(s *Source) {
		s.baseURL = tmpl
	}
}

// WithWorkers overrides the probe pool size.
func WithWorkers(n int) Option {
	return func(s *Source) {
		s.workers = n
	}
}

// New creates the Apple docs source.
func New(opts ...Option) *Source {
	s := &Source{
		client:  transport.NewWithTimeout(constants.DocsProbeTimeout),
		baseURL: urlTemplate,
		workers: constants.DocsProbeWorkers,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the source identifier.
func (s *Source) ID() sources.ID {
	return sources.AppleDocsJSONID
}

// Tasks enumerates every version/slug combination to probe. Patch releases
// of a .0 minor are skipped: Apple publishes X.0.1 notes under X.0.
func (s *Source) Tasks() []Task {
	var tasks []Task
	for _, major := range majors {
		for _, minor := range minors {
			for _, patch := range patches {
				if minor == 0 && patch > 0 {
					continue
				}
				ver, slug := Slug(major, minor, patch)
				tasks = append(tasks, Task{
					XcodeVersion: ver,
					URL:          fmt.Sprintf(s.baseURL, slug),
				})
			}
		}
	}
	return tasks
}

// Fetch probes all candidate URLs with a bounded worker pool. Individual
// probe failures are expected (most candidates do not exist) and ignored;
// partial results are reduced in task order so the merge is deterministic
// regardless of completion order.
func (s *Source) Fetch(ctx context.Context) (*sources.Result, error) {
	tasks := s.Tasks()
	found := make([]string, len(tasks)) // SDK per task, "" for misses

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(s.workers)
	for i, task := range tasks {
		i, task := i, task
		group.Go(func() error {
			body, err := s.client.GetBody(ctx, s.ID().String(), task.URL)
			if err != nil {
				return nil // probe miss
			}
			if !json.Valid(body) {
				return nil
			}
			if sdk, ok := scrape.FirstSDK(string(body)); ok {
				found[i] = sdk
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	result := sources.NewResult(s.ID())
	for i, sdk := range found {
		if sdk != "" {
			result.AddWithURL(tasks[i].XcodeVersion, sdk, tasks[i].URL)
		}
	}

	logging.Ctx(ctx).Info().
		Int("probes", len(tasks)).
		Int("versions", result.Len()).
		Msg("Apple docs release notes probed")
	return result, nil
}

// Slug returns the normalized version string and the URL slug Apple uses for
// it: "15" for 15.0, "15_2" for 15.2, "15_2_1" for 15.2.1.
func Slug(major, minor, patch int) (xcodeVer, slug string) {
	switch {
	case minor == 0 && patch == 0:
		return fmt.Sprintf("%d.0", major), fmt.Sprintf("%d", major)
	case patch == 0:
		return fmt.Sprintf("%d.%d", major, minor), fmt.Sprintf("%d_%d", major, minor)
	default:
		return fmt.Sprintf("%d.%d.%d", major, minor, patch), fmt.Sprintf("%d_%d_%d", major, minor, patch)
	}
}

func intRange(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}

func concat(a, b []int) []int {
	return append(append([]int{}, a...), b...)
}
