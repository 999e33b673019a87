// Package wikipedia implements the two Wikipedia prose sources: the
// "History of Xcode" article and the main "Xcode" article. Both walk the
// article sentence by sentence and attribute an SDK mention to every Xcode
// version named in the same sentence.
package wikipedia

import (
	"context"

	"github.com/sdkmap/sdkmap/internal/scrape"
	"github.com/sdkmap/sdkmap/internal/transport"
	"github.com/sdkmap/sdkmap/pkg/logging"
	"github.com/sdkmap/sdkmap/pkg/sources"
)

// matcher extracts an SDK version from one sentence.
type matcher func(sentence string) (string, bool)

// historySDK is the loose matcher used for the History article: the full
// pattern list, with the iOS-and-Xcode co-mention as a fallback.
func historySDK(sentence string) (string, bool) {
	if sdk, ok := scrape.FirstSDK(sentence); ok {
		return sdk, true
	}
	return scrape.CoMentionedSDK(sentence)
}

// History scrapes the "History of Xcode" article.
type History struct {
	client *transport.Client
	url    string
}

// Option configures a wikipedia source.
type Option func(*config)

type config struct {
	url string
}

// WithURL overrides the article URL, used by tests.
func WithURL(url string) Option {
	return func(c *config) {
		c.url = url
	}
}

// NewHistory creates the History of Xcode source.
func NewHistory(opts ...Option) *History {
	c := config{url: sources.BaseURL(sources.WikipediaHistoryID)}
	for _, opt := range opts {
		opt(&c)
	}
	return &History{client: transport.New(), url: c.url}
}

// ID returns the source identifier.
func (s *History) ID() sources.ID {
	return sources.WikipediaHistoryID
}

// Fetch downloads the article and mines its prose with the loose matchers.
func (s *History) Fetch(ctx context.Context) (*sources.Result, error) {
	return fetchArticle(ctx, s.client, s.ID(), s.url, false, historySDK)
}

// Article scrapes the main "Xcode" article. Its general prose produces too
// many false positives for the loose matchers, so only the strict list runs
// and citation markers are stripped first.
type Article struct {
	client *transport.Client
	url    string
}

// NewArticle creates the main Xcode article source.
func NewArticle(opts ...Option) *Article {
	c := config{url: sources.BaseURL(sources.WikipediaXcodeID)}
	for _, opt := range opts {
		opt(&c)
	}
	return &Article{client: transport.New(), url: c.url}
}

// ID returns the source identifier.
func (s *Article) ID() sources.ID {
	return sources.WikipediaXcodeID
}

// Fetch downloads the article and mines its prose with the strict matchers.
func (s *Article) Fetch(ctx context.Context) (*sources.Result, error) {
	return fetchArticle(ctx, s.client, s.ID(), s.url, true, scrape.FirstSDKStrict)
}

// fetchArticle fetches one article and runs the sentence miner over its
// flattened text. Navigation, tables, citations and scripts are pruned
// before sentence splitting so wikitable cells cannot masquerade as prose.
func fetchArticle(ctx context.Context, client *transport.Client, id sources.ID, url string, stripCitations bool, match matcher) (*sources.Result, error) {
	body, err := client.GetBody(ctx, id.String(), url)
	if err != nil {
		return nil, err
	}
	root, err := scrape.Parse(body)
	if err != nil {
		return nil, err
	}

	text := scrape.FlatText(root)
	if stripCitations {
		text = scrape.StripCitations(text)
	}

	result := sources.NewResult(id)
	for _, sentence := range scrape.Sentences(text) {
		xcodeVersions := scrape.XcodeVersions(sentence)
		if len(xcodeVersions) == 0 {
			continue
		}
		sdk, ok := match(sentence)
		if !ok {
			continue
		}
		for _, xv := range xcodeVersions {
			result.AddWithURL(xv, sdk, url)
		}
	}

	logging.Ctx(ctx).Info().Int("versions", result.Len()).Msg("Wikipedia article mined")
	return result, nil
}
