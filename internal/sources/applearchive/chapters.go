package applearchive

import (
	"context"

	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"

	"github.com/sdkmap/sdkmap/internal/scrape"
	"github.com/sdkmap/sdkmap/internal/transport"
	"github.com/sdkmap/sdkmap/pkg/constants"
	"github.com/sdkmap/sdkmap/pkg/logging"
	"github.com/sdkmap/sdkmap/pkg/sources"
	"github.com/sdkmap/sdkmap/pkg/version"
)

const chapterBaseURL = "https://developer.apple.com/library/archive/documentation/" +
	"Xcode/Conceptual/RN-Xcode-Archive/Chapters/"

// Chapter identifies one archived release-notes chapter page.
type Chapter struct {
	Label    string
	Filename string
}

// defaultChapters lists the chapter pages worth mining. The Xcode 5 chapter
// parses to zero versions and is omitted.
var defaultChapters = []Chapter{
	{Label: "xcode4", Filename: "xc4_release_notes.html"},
	{Label: "xcode6", Filename: "xc6_release_notes.html"},
	{Label: "xcode7", Filename: "xc7_release_notes.html"},
}

// Chapters scrapes the Xcode 4/6/7 archive chapter pages.
type Chapters struct {
	client   *transport.Client
	baseURL  string
	chapters []Chapter
	workers  int
}

// ChaptersOption configures a Chapters source.
type ChaptersOption func(*Chapters)

// WithChapterBaseURL overrides the base URL, used by tests.
func WithChapterBaseURL(url string) ChaptersOption {
	return func(s *Chapters) {
		s.baseURL = url
	}
}

// NewChapters creates the Xcode 4-7 archive source.
func NewChapters(opts ...ChaptersOption) *Chapters {
	s := &Chapters{
		client:   transport.New(),
		baseURL:  chapterBaseURL,
		chapters: defaultChapters,
		workers:  constants.ChapterWorkers,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the source identifier.
func (s *Chapters) ID() sources.ID {
	return sources.AppleArchive47ID
}

// Fetch downloads all chapter pages in parallel and reduces their partial
// results in declared chapter order, so the merged mapping is deterministic
// whatever order the fetches complete in. A failing chapter contributes
// nothing; the remaining chapters still count.
func (s *Chapters) Fetch(ctx context.Context) (*sources.Result, error) {
	partials := make([]*sources.Result, len(s.chapters))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(s.workers)
	for i, chapter := range s.chapters {
		i, chapter := i, chapter
		group.Go(func() error {
			url := s.baseURL + chapter.Filename
			body, err := s.client.GetBody(ctx, s.ID().String(), url)
			if err != nil {
				logging.Ctx(ctx).Warn().Err(err).
					Str("chapter", chapter.Label).
					Msg("Archive chapter fetch failed")
				return nil
			}
			root, err := scrape.Parse(body)
			if err != nil {
				return nil
			}
			partials[i] = mineChapter(root, url)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	result := sources.NewResult(s.ID())
	for _, partial := range partials {
		result.Merge(partial)
	}

	logging.Ctx(ctx).Info().Int("versions", result.Len()).Msg("Archive chapters mined")
	return result, nil
}

// mineChapter extracts version → SDK pairs from one chapter page. Chapter
// pages head each release with an h2-h4 whose section runs until the next
// heading of the same or higher level.
func mineChapter(root *html.Node, url string) *sources.Result {
	partial := sources.NewResult(sources.AppleArchive47ID)
	for _, section := range scrape.Sections(root, 2, 4, false) {
		rawVer, ok := scrape.FirstXcodeVersion(section.Heading)
		if !ok {
			continue
		}
		if sdk, ok := scrape.FirstSDK(section.Body); ok {
			partial.AddWithURL(version.Normalize(rawVer), sdk, url)
		}
	}
	return partial
}
