// Package applearchive implements the two Apple library archive sources:
// the consolidated Xcode 8-9 release notes page and the per-major chapter
// pages covering Xcode 4 through 7. Both mine heading-scoped prose for SDK
// mentions.
package applearchive

import (
	"context"
	"strings"

	"github.com/sdkmap/sdkmap/internal/scrape"
	"github.com/sdkmap/sdkmap/internal/transport"
	"github.com/sdkmap/sdkmap/pkg/logging"
	"github.com/sdkmap/sdkmap/pkg/sources"
	"github.com/sdkmap/sdkmap/pkg/version"
)

const xcode9URL = "https://developer.apple.com/library/archive/releasenotes/" +
	"DeveloperTools/RN-Xcode/Chapters/Introduction.html"

// Xcode9 scrapes the consolidated Xcode 8-9 release notes.
type Xcode9 struct {
	client *transport.Client
	url    string
}

// Xcode9Option configures an Xcode9 source.
type Xcode9Option func(*Xcode9)

// WithXcode9URL overrides the page URL, used by tests.
func WithXcode9URL(url string) Xcode9Option {
	return func(s *Xcode9) {
		s.url = url
	}
}

// NewXcode9 creates the Xcode 8-9 archive source.
func NewXcode9(opts ...Xcode9Option) *Xcode9 {
	s := &Xcode9{client: transport.New(), url: xcode9URL}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the source identifier.
func (s *Xcode9) ID() sources.ID {
	return sources.AppleArchive9ID
}

// Fetch downloads the page and mines every versioned heading. Headings that
// mention a bare major ("New in Xcode 9") describe a whole release train,
// not a specific version, and are skipped; each section ends at the next
// heading of any level because subsections on this page belong to the next
// release entry.
func (s *Xcode9) Fetch(ctx context.Context) (*sources.Result, error) {
	body, err := s.client.GetBody(ctx, s.ID().String(), s.url)
	if err != nil {
		return nil, err
	}

	root, err := scrape.Parse(body)
	if err != nil {
		return nil, err
	}

	result := sources.NewResult(s.ID())
	for _, section := range scrape.Sections(root, 1, 6, true) {
		rawVer, ok := scrape.FirstXcodeVersion(section.Heading)
		if !ok || !strings.Contains(rawVer, ".") {
			continue
		}
		if sdk, ok := scrape.FirstSDK(section.Body); ok {
			result.AddWithURL(version.Normalize(rawVer), sdk, s.url)
		}
	}

	logging.Ctx(ctx).Info().Int("versions", result.Len()).Msg("Archive release notes mined")
	return result, nil
}
