package wikipedia_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sdkmap/sdkmap/internal/sources/wikipedia"
)

const historyHTML = `<html><body>
<nav>Xcode 3.0 navigation chrome</nav>
<table><tr><td>Xcode 15.0 table cell with iOS 17.0 SDK</td></tr></table>
<p>Xcode 11.0 was released with the iOS 13.0 SDK. Later that year Apple
shipped iOS 13.2 and Xcode 11.2 together. Xcode 12 brought dark mode
everywhere. A retrospective claims Xcode 11.0 included the iOS 12.0 SDK.</p>
</body></html>`

func TestHistoryMinesSentences(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(historyHTML)) //nolint:errcheck
	}))
	defer srv.Close()

	src := wikipedia.NewHistory(wikipedia.WithURL(srv.URL))
	result, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	// Direct SDK phrasing wins, and first writer wins over the later
	// retrospective claim in the same article.
	if sdk, ok := result.SDK("11.0"); !ok || sdk != "13.0" {
		t.Errorf("SDK(11.0) = %q, %v; want 13.0", sdk, ok)
	}
	// Co-mention fallback: "iOS 13.2 and Xcode 11.2" has no SDK phrasing.
	if sdk, ok := result.SDK("11.2"); !ok || sdk != "13.2" {
		t.Errorf("SDK(11.2) = %q, %v; want 13.2", sdk, ok)
	}
	// A sentence with an Xcode version but no SDK contributes nothing.
	if _, ok := result.SDK("12.0"); ok {
		t.Error("sentence without an SDK mention must not contribute")
	}
	// Nav and table content is pruned before mining.
	if _, ok := result.SDK("15.0"); ok {
		t.Error("table cells must not be mined")
	}
	if _, ok := result.SDK("3.0"); ok {
		t.Error("navigation chrome must not be mined")
	}
}

const articleHTML = `<html><body>
<p>Xcode 14.1 shipped with iOS 16.1.[23] Users reported that Xcode 13.4
adds support for iOS 15.5 widgets. Xcode 9.3 includes the iOS 11.3 SDK.</p>
</body></html>`

func TestArticleStrictMatchersOnly(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(articleHTML)) //nolint:errcheck
	}))
	defer srv.Close()

	src := wikipedia.NewArticle(wikipedia.WithURL(srv.URL))
	result, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	// Citation markers are stripped, so the sentence still parses.
	if sdk, ok := result.SDK("14.1"); !ok || sdk != "16.1" {
		t.Errorf("SDK(14.1) = %q, %v; want 16.1", sdk, ok)
	}
	if sdk, ok := result.SDK("9.3"); !ok || sdk != "11.3" {
		t.Errorf("SDK(9.3) = %q, %v; want 11.3", sdk, ok)
	}
	// "adds support for" is a loose phrasing the strict list rejects.
	if _, ok := result.SDK("13.4"); ok {
		t.Error("loose phrasing must not match on the main article")
	}

	if url := result.ProvenanceURL("14.1"); url != srv.URL {
		t.Errorf("ProvenanceURL(14.1) = %q; want article URL", url)
	}
}
