// Package report aggregates per-version resolution records into the run's
// outputs: summary statistics, the detailed per-source breakdown, and the
// flat version → SDK mapping that gets persisted between runs.
package report

import (
	"github.com/agentstation/utc"

	"github.com/sdkmap/sdkmap/pkg/sources"
	"github.com/sdkmap/sdkmap/pkg/xref"
)

// Summary holds run metadata and per-status counts.
type Summary struct {
	GeneratedAt  utc.Time              `json:"generated_at"`
	Total        int                   `json:"total_versions"`
	Consensus    int                   `json:"consensus"`
	SingleSource int                   `json:"single_source"`
	Conflicts    int                   `json:"conflicts"`
	NotFound     int                   `json:"not_found"`
	CoveragePct  float64               `json:"coverage_pct"`
	Sources      []sources.ID          `json:"sources"`
	SourceURLs   map[sources.ID]string `json:"source_urls"`
}

// Report is the aggregated result of one resolution run.
type Report struct {
	Summary Summary       `json:"metadata"`
	Records []xref.Record `json:"results"`
}

// Build aggregates resolution records into a Report. Records keep the order
// they were resolved in (newest first); the summary is computed over all of
// them. Identical inputs always produce an identical Report apart from the
// timestamp.
func Build(records []xref.Record, sourceIDs []sources.ID) *Report {
	summary := Summary{
		GeneratedAt: utc.Now(),
		Total:       len(records),
		Sources:     sourceIDs,
		SourceURLs:  sources.BaseURLs(),
	}

	for _, rec := range records {
		switch rec.Status {
		case xref.StatusConsensus:
			summary.Consensus++
		case xref.StatusSingleSource:
			summary.SingleSource++
		case xref.StatusConflict:
			summary.Conflicts++
		case xref.StatusNotFound:
			summary.NotFound++
		}
	}

	if summary.Total > 0 {
		resolved := summary.Total - summary.NotFound
		summary.CoveragePct = round1(float64(resolved) / float64(summary.Total) * 100)
	}

	return &Report{Summary: summary, Records: records}
}

// Conflicts returns only the records a human needs to review: conflicting
// and unresolved versions.
func (r *Report) Conflicts() []xref.Record {
	var out []xref.Record
	for _, rec := range r.Records {
		if rec.Status == xref.StatusConflict || rec.Status == xref.StatusNotFound {
			out = append(out, rec)
		}
	}
	return out
}

func round1(f float64) float64 {
	return float64(int(f*10+0.5)) / 10
}
