package applesupport_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/net/html"

	"github.com/sdkmap/sdkmap/internal/scrape"
	"github.com/sdkmap/sdkmap/internal/sources/applesupport"
)

const supportHTML = `<html><body>
<table>
<tr><th>Xcode version</th><th>Build</th><th>Included SDKs</th></tr>
<tr><td>Xcode 15.2</td><td>15C500b</td><td>iOS 17.2, macOS 14.2, watchOS 10.2</td></tr>
<tr><td>Xcode 15.1</td><td>15C65</td><td>iOS 17.1 macOS 14.1</td></tr>
<tr><td>Xcode 9</td><td>9A235</td><td>iOS 11, macOS 10.13</td></tr>
<tr><td>Command Line Tools</td><td>-</td><td>macOS only</td></tr>
</table>
</body></html>`

// reorderedHTML swaps columns and relies on header detection.
const reorderedHTML = `<html><body>
<table>
<tr><th>SDKs</th><th>Xcode version</th></tr>
<tr><td>iOS 16.4</td><td>Xcode 14.3</td></tr>
</table>
</body></html>`

// headerlessHTML exercises the default 0/2 column fallback.
const headerlessHTML = `<html><body>
<table>
<tr><td>Xcode 12.4</td><td>12D4e</td><td>iOS 14.4</td></tr>
</table>
</body></html>`

func parse(t *testing.T, page string) *html.Node {
	t.Helper()
	root, err := scrape.Parse([]byte(page))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return root
}

func TestParseTables(t *testing.T) {
	result := applesupport.ParseTables(parse(t, supportHTML), "https://example.com/support")

	tests := map[string]string{
		"15.2": "17.2",
		"15.1": "17.1",
		"9.0":  "11.0", // bare major normalized
	}
	for ver, want := range tests {
		if sdk, ok := result.SDK(ver); !ok || sdk != want {
			t.Errorf("SDK(%s) = %q, %v; want %q", ver, sdk, ok, want)
		}
	}
	if result.Len() != 3 {
		t.Errorf("Len = %d, want 3 (CLT row has no Xcode version)", result.Len())
	}
}

func TestParseTablesHeaderDetection(t *testing.T) {
	result := applesupport.ParseTables(parse(t, reorderedHTML), "https://example.com/support")
	if sdk, ok := result.SDK("14.3"); !ok || sdk != "16.4" {
		t.Errorf("reordered columns not detected: SDK(14.3) = %q, %v", sdk, ok)
	}
}

func TestParseTablesDefaultColumns(t *testing.T) {
	result := applesupport.ParseTables(parse(t, headerlessHTML), "https://example.com/support")
	if sdk, ok := result.SDK("12.4"); !ok || sdk != "14.4" {
		t.Errorf("default column fallback failed: SDK(12.4) = %q, %v", sdk, ok)
	}
}

func TestFetchAgainstStubServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(supportHTML)) //nolint:errcheck
	}))
	defer srv.Close()

	src := applesupport.New(applesupport.WithURL(srv.URL))
	result, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if result.Len() != 3 {
		t.Errorf("Len = %d, want 3", result.Len())
	}
	if url := result.ProvenanceURL("15.2"); url != srv.URL {
		t.Errorf("ProvenanceURL = %q", url)
	}
}
