// Package xcodes enumerates every Xcode release Apple has ever shipped by
// running the xcodes CLI against Apple's own release feed. It is not a
// ranked source: it never claims an SDK, it only widens the set of versions
// the resolver must answer for.
package xcodes

import (
	"context"
	"os/exec"
	"regexp"

	"github.com/sdkmap/sdkmap/pkg/constants"
	"github.com/sdkmap/sdkmap/pkg/errors"
	"github.com/sdkmap/sdkmap/pkg/logging"
	"github.com/sdkmap/sdkmap/pkg/version"
)

// versionTokenPattern finds dotted version candidates. Boundary enforcement
// happens in extractVersions: Go's regexp has no lookaround, so tokens that
// touch an adjacent digit or dot are filtered after the match instead.
var versionTokenPattern = regexp.MustCompile(`\d+\.\d+(?:\.\d+)?`)

// Runner executes an external command and returns its combined output.
// Injectable so tests can supply canned xcodes transcripts.
type Runner func(ctx context.Context, name string, args ...string) (string, error)

// Enumerator lists released Xcode versions via the xcodes CLI.
type Enumerator struct {
	run Runner
}

// Option configures an Enumerator.
type Option func(*Enumerator)

// WithRunner overrides how external commands are executed.
func WithRunner(run Runner) Option {
	return func(e *Enumerator) {
		e.run = run
	}
}

// New creates the xcodes CLI enumerator.
func New(opts ...Option) *Enumerator {
	e := &Enumerator{run: execRunner}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Versions runs `xcodes list` and returns every distinct version it prints,
// normalized, in first-appearance order. A missing binary or a timeout is
// survivable: the run continues with the versions the ranked sources know.
func (e *Enumerator) Versions(ctx context.Context) []string {
	logger := logging.Ctx(ctx)

	out, err := e.run(ctx, "xcodes", "list", "--data-source", "apple")
	if err != nil {
		switch {
		case errors.IsNotFound(err):
			logger.Warn().Msg("xcodes not found, version enumeration skipped")
		case errors.IsTimeout(err):
			logger.Warn().Msg("xcodes list timed out, version enumeration skipped")
		default:
			logger.Warn().Err(err).Msg("xcodes list failed, version enumeration skipped")
		}
		return nil
	}

	versions := extractVersions(out)
	logger.Info().Int("versions", len(versions)).Msg("Xcode releases enumerated")
	return versions
}

// extractVersions pulls dotted version tokens out of raw CLI output,
// rejecting matches embedded in a longer dotted run (a "1.2" inside
// "10.1.2.3"), and deduplicates while preserving order.
func extractVersions(raw string) []string {
	seen := make(map[string]bool)
	var unique []string
	for _, loc := range versionTokenPattern.FindAllStringIndex(raw, -1) {
		if !standalone(raw, loc[0], loc[1]) {
			continue
		}
		v := version.Normalize(raw[loc[0]:loc[1]])
		if !seen[v] {
			seen[v] = true
			unique = append(unique, v)
		}
	}
	return unique
}

// standalone reports whether the match at [start, end) is bounded by
// non-version characters on both sides.
func standalone(raw string, start, end int) bool {
	if start > 0 {
		c := raw[start-1]
		if c == '.' || (c >= '0' && c <= '9') {
			return false
		}
	}
	if end < len(raw) {
		c := raw[end]
		if c == '.' || (c >= '0' && c <= '9') {
			return false
		}
	}
	return true
}

// execRunner runs a command with the enumeration timeout. Exit status is
// ignored: xcodes prints its list even when it exits non-zero, and the
// version tokens are all that matters.
func execRunner(ctx context.Context, name string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.EnumerationTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		if execErr, ok := err.(*exec.Error); ok && execErr.Err == exec.ErrNotFound {
			return "", errors.ErrNotFound
		}
		if ctx.Err() == context.DeadlineExceeded {
			return "", &errors.TimeoutError{Operation: name, Duration: constants.EnumerationTimeout.String()}
		}
		if _, ok := err.(*exec.ExitError); ok {
			return string(out), nil
		}
		return "", &errors.ProcessError{
			Operation: "enumerate Xcode releases",
			Command:   name,
			Output:    string(out),
			Err:       err,
		}
	}
	return string(out), nil
}
