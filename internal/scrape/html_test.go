package scrape_test

import (
	"testing"

	"github.com/sdkmap/sdkmap/internal/scrape"
)

const releaseNotesHTML = `<html><body>
<h1>Xcode Release Notes</h1>
<h2>Xcode 9.2</h2>
<p>Includes the iOS 11.2 SDK.</p>
<h3>Build System</h3>
<p>New build system preview.</p>
<h2>Xcode 9.1</h2>
<p>Includes the iOS 11.1 SDK.</p>
</body></html>`

func TestSectionsScopedByLevel(t *testing.T) {
	root, err := scrape.Parse([]byte(releaseNotesHTML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	sections := scrape.Sections(root, 2, 4, false)
	if len(sections) != 3 {
		t.Fatalf("got %d sections, want 3", len(sections))
	}

	// An h2 section swallows its h3 subsection (heading text included) but
	// stops at the next h2.
	first := sections[0]
	if first.Heading != "Xcode 9.2" {
		t.Errorf("Heading = %q", first.Heading)
	}
	if want := "Includes the iOS 11.2 SDK. Build System New build system preview."; first.Body != want {
		t.Errorf("Body = %q, want %q", first.Body, want)
	}
}

func TestSectionsStopAtAnyHeading(t *testing.T) {
	root, err := scrape.Parse([]byte(releaseNotesHTML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	sections := scrape.Sections(root, 1, 6, true)
	for _, s := range sections {
		if s.Heading == "Xcode 9.2" && s.Body != "Includes the iOS 11.2 SDK." {
			t.Errorf("section should stop at the h3: %q", s.Body)
		}
	}
}

func TestTablesAndRows(t *testing.T) {
	const tableHTML = `<html><body><table>
<tr><th>Xcode version</th><th>Release</th><th>SDK</th></tr>
<tr><td>Xcode 15.2</td><td>15C500b</td><td>iOS 17.2</td></tr>
</table></body></html>`

	root, err := scrape.Parse([]byte(tableHTML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	tables := scrape.Tables(root)
	if len(tables) != 1 {
		t.Fatalf("got %d tables", len(tables))
	}

	rows := scrape.Rows(tables[0])
	if len(rows) != 2 || len(rows[0]) != 3 {
		t.Fatalf("rows = %v", rows)
	}
	if rows[1][0] != "Xcode 15.2" || rows[1][2] != "iOS 17.2" {
		t.Errorf("cell text = %v", rows[1])
	}
}

func TestFlatTextPrunes(t *testing.T) {
	const articleHTML = `<html><body>
<nav>History of Xcode navigation</nav>
<p>Xcode 4.2 shipped with iOS 5<sup>[3]</sup>.</p>
<table><tr><td>table noise</td></tr></table>
<script>var x = 1;</script>
</body></html>`

	root, err := scrape.Parse([]byte(articleHTML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	text := scrape.FlatText(root)
	if text != "Xcode 4.2 shipped with iOS 5 ." {
		t.Errorf("FlatText = %q", text)
	}
}
