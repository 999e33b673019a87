// Package applesupport implements the Apple developer support page source,
// which publishes an HTML table of Xcode releases and their bundled SDKs.
package applesupport

import (
	"context"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/sdkmap/sdkmap/internal/scrape"
	"github.com/sdkmap/sdkmap/internal/transport"
	"github.com/sdkmap/sdkmap/pkg/logging"
	"github.com/sdkmap/sdkmap/pkg/sources"
	"github.com/sdkmap/sdkmap/pkg/version"
)

const pageURL = "https://developer.apple.com/support/xcode/"

// Columns used when the header row gives no hint. The support page has kept
// Xcode in the first column and SDKs in the third for years.
const (
	defaultVersionColumn = 0
	defaultSDKColumn     = 2
)

// iosMention matches an iOS version inside an SDK cell that may also list
// macOS, watchOS and tvOS SDKs.
var iosMention = regexp.MustCompile(`iOS\s+(\d+(?:\.\d+)?)`)

// Source scrapes the support page table.
type Source struct {
	client *transport.Client
	url    string
}

// Option configures a Source.
type Option func(*Source)

// WithURL overrides the page URL, used by tests.
func WithURL(url string) Option {
	return func(s *Source) {
		s.url = url
	}
}

// New creates the Apple support page source.
func New(opts ...Option) *Source {
	s := &Source{client: transport.New(), url: pageURL}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the source identifier.
func (s *Source) ID() sources.ID {
	return sources.AppleSupportID
}

// Fetch downloads and scrapes the support page.
func (s *Source) Fetch(ctx context.Context) (*sources.Result, error) {
	body, err := s.client.GetBody(ctx, s.ID().String(), s.url)
	if err != nil {
		return nil, err
	}

	root, err := scrape.Parse(body)
	if err != nil {
		return nil, err
	}

	result := ParseTables(root, s.url)
	logging.Ctx(ctx).Info().Int("versions", result.Len()).Msg("Apple support table parsed")
	return result, nil
}

// ParseTables extracts version → SDK pairs from every table in the document.
// Column positions come from the header row when it names them, otherwise
// from the long-stable default layout.
func ParseTables(root *html.Node, url string) *sources.Result {
	result := sources.NewResult(sources.AppleSupportID)

	for _, table := range scrape.Tables(root) {
		rows := scrape.Rows(table)
		if len(rows) == 0 {
			continue
		}

		verCol, sdkCol := headerColumns(rows[0])
		for _, cells := range rows {
			if len(cells) <= max(verCol, sdkCol) {
				continue
			}
			rawVer, ok := scrape.FirstXcodeVersion(cells[verCol])
			if !ok {
				continue
			}
			m := iosMention.FindStringSubmatch(cells[sdkCol])
			if m == nil {
				continue
			}
			result.AddWithURL(version.Normalize(rawVer), version.Normalize(m[1]), url)
		}
	}
	return result
}

// headerColumns locates the Xcode-version and SDK columns from header text.
func headerColumns(header []string) (verCol, sdkCol int) {
	verCol, sdkCol = -1, -1
	for idx, cell := range header {
		text := strings.ToLower(cell)
		if verCol < 0 && strings.Contains(text, "xcode") && strings.Contains(text, "version") {
			verCol = idx
		}
		if sdkCol < 0 && strings.Contains(text, "sdk") {
			sdkCol = idx
		}
	}
	if verCol < 0 || sdkCol < 0 {
		return defaultVersionColumn, defaultSDKColumn
	}
	return verCol, sdkCol
}
