// Package xcodebuild implements the highest-authority source: the locally
// installed Xcode, queried through xcodebuild. It contributes at most one
// entry, but that entry is ground truth for the installed version.
package xcodebuild

import (
	"context"
	"os/exec"
	"regexp"

	"github.com/sdkmap/sdkmap/internal/scrape"
	"github.com/sdkmap/sdkmap/pkg/constants"
	"github.com/sdkmap/sdkmap/pkg/errors"
	"github.com/sdkmap/sdkmap/pkg/logging"
	"github.com/sdkmap/sdkmap/pkg/sources"
	"github.com/sdkmap/sdkmap/pkg/version"
)

// iphoneosSDKPattern matches the iphoneos line of `xcodebuild -showsdks`.
var iphoneosSDKPattern = regexp.MustCompile(`(?i)iOS\s+(\d+(?:\.\d+)?)\s+-sdk\s+iphoneos`)

// Runner executes an external command and returns its combined output.
// Injectable so tests can supply canned xcodebuild transcripts.
type Runner func(ctx context.Context, name string, args ...string) (string, error)

// Source queries the local xcodebuild binary.
type Source struct {
	run Runner
}

// Option configures a Source.
type Option func(*Source)

// WithRunner overrides how external commands are executed.
func WithRunner(run Runner) Option {
	return func(s *Source) {
		s.run = run
	}
}

// New creates the local xcodebuild source.
func New(opts ...Option) *Source {
	s := &Source{run: execRunner}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the source identifier.
func (s *Source) ID() sources.ID {
	return sources.LocalXcodebuildID
}

// Fetch asks the installed Xcode for its version and its bundled iphoneos
// SDK. A machine without Xcode is normal, not an error: the source just
// reports nothing.
func (s *Source) Fetch(ctx context.Context) (*sources.Result, error) {
	result := sources.NewResult(s.ID())
	logger := logging.Ctx(ctx)

	verOut, err := s.run(ctx, "xcodebuild", "-version")
	if err != nil {
		if errors.IsNotFound(err) {
			logger.Debug().Msg("xcodebuild not found, skipping local source")
			return result, nil
		}
		return nil, err
	}
	sdkOut, err := s.run(ctx, "xcodebuild", "-showsdks")
	if err != nil {
		return nil, err
	}

	rawVer, ok := scrape.FirstXcodeVersion(verOut)
	if !ok {
		logger.Warn().Msg("could not determine Xcode version from xcodebuild -version")
		return result, nil
	}
	xcodeVer := version.Normalize(rawVer)

	m := iphoneosSDKPattern.FindStringSubmatch(sdkOut)
	if m == nil {
		logger.Warn().Str("xcode_version", xcodeVer).Msg("no iphoneos SDK in xcodebuild -showsdks output")
		return result, nil
	}

	sdk := version.Normalize(m[1])
	result.AddWithURL(xcodeVer, sdk, sources.BaseURL(s.ID()))
	logger.Info().Str("xcode_version", xcodeVer).Str("ios_sdk", sdk).Msg("Local Xcode resolved")
	return result, nil
}

// execRunner runs a command with the standard process timeout.
func execRunner(ctx context.Context, name string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.ProcessTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		if execErr, ok := err.(*exec.Error); ok && execErr.Err == exec.ErrNotFound {
			return "", errors.ErrNotFound
		}
		if ctx.Err() == context.DeadlineExceeded {
			return "", &errors.TimeoutError{Operation: name, Duration: constants.ProcessTimeout.String()}
		}
		// xcodebuild can exit non-zero while still printing usable output
		// (license prompts, plugin warnings). Parse what it printed.
		if _, ok := err.(*exec.ExitError); ok {
			return string(out), nil
		}
		return "", &errors.ProcessError{
			Operation: "query local Xcode",
			Command:   name,
			Output:    string(out),
			Err:       err,
		}
	}
	return string(out), nil
}
