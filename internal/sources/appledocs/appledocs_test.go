package appledocs_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sdkmap/sdkmap/internal/sources/appledocs"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		major, minor, patch int
		wantVer, wantSlug   string
	}{
		{15, 0, 0, "15.0", "15"},
		{15, 2, 0, "15.2", "15_2"},
		{15, 2, 1, "15.2.1", "15_2_1"},
		{26, 0, 0, "26.0", "26"},
	}
	for _, tt := range tests {
		ver, slug := appledocs.Slug(tt.major, tt.minor, tt.patch)
		if ver != tt.wantVer || slug != tt.wantSlug {
			t.Errorf("Slug(%d,%d,%d) = %q, %q; want %q, %q",
				tt.major, tt.minor, tt.patch, ver, slug, tt.wantVer, tt.wantSlug)
		}
	}
}

func TestTasksSkipPatchOfZeroMinor(t *testing.T) {
	tasks := appledocs.New().Tasks()

	seen := make(map[string]bool, len(tasks))
	for _, task := range tasks {
		seen[task.XcodeVersion] = true
	}

	if !seen["8.0"] || !seen["16.7.4"] || !seen["26.0"] {
		t.Error("expected probe space to cover 8.0, 16.7.4 and 26.0")
	}
	for _, skipped := range []string{"8.0.1", "26.0.4"} {
		if seen[skipped] {
			t.Errorf("X.0.N candidates should be skipped, found %s", skipped)
		}
	}
	if seen["17.0"] || seen["25.0"] {
		t.Error("the 17-25 gap in Apple's version scheme should not be probed")
	}
}

func TestFetchProbesAndMines(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.Contains(r.URL.Path, "xcode-15_2-release"):
			w.Write([]byte(`{"abstract":[{"text":"Xcode 15.2 includes the iOS 17.2 SDK."}]}`)) //nolint:errcheck
		case strings.Contains(r.URL.Path, "xcode-9-release"):
			w.Write([]byte(`{"abstract":[{"text":"Includes SDKs for iOS 11"}]}`)) //nolint:errcheck
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	src := appledocs.New(
		appledocs.WithURLTemplate(srv.URL+"/xcode-%s-release-notes.json"),
		appledocs.WithWorkers(4),
	)

	result, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if sdk, ok := result.SDK("15.2"); !ok || sdk != "17.2" {
		t.Errorf("SDK(15.2) = %q, %v; want 17.2", sdk, ok)
	}
	if sdk, ok := result.SDK("9.0"); !ok || sdk != "11.0" {
		t.Errorf("SDK(9.0) = %q, %v; want 11.0", sdk, ok)
	}
	if result.Len() != 2 {
		t.Errorf("Len = %d, want 2 (all other probes are misses)", result.Len())
	}

	if url := result.ProvenanceURL("15.2"); !strings.Contains(url, "xcode-15_2-release") {
		t.Errorf("per-version provenance URL not recorded: %q", url)
	}
}

func TestFetchInvalidJSONIgnored(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`<html>includes the iOS 17.0 SDK</html>`)) //nolint:errcheck
	}))
	defer srv.Close()

	src := appledocs.New(
		appledocs.WithURLTemplate(srv.URL+"/xcode-%s-release-notes.json"),
		appledocs.WithWorkers(8),
	)

	result, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if result.Len() != 0 {
		t.Errorf("non-JSON payloads must be ignored, got %d entries", result.Len())
	}
}
