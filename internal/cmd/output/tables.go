package output

import (
	"fmt"

	"github.com/sdkmap/sdkmap/pkg/report"
	"github.com/sdkmap/sdkmap/pkg/sources"
	"github.com/sdkmap/sdkmap/pkg/xref"
)

// statusIcons are the single-character status markers used in the review
// table.
var statusIcons = map[xref.Status]string{
	xref.StatusConsensus:    "✓",
	xref.StatusSingleSource: "~",
	xref.StatusConflict:     "⚠",
	xref.StatusNotFound:     "✗",
}

// shortName truncates a source name to fit a table column.
func shortName(id sources.ID) string {
	s := id.String()
	if len(s) > 10 {
		return s[:10]
	}
	return s
}

// agreementPct renders an agreement ratio as a whole percentage.
func agreementPct(agreement float64) string {
	return fmt.Sprintf("%.0f%%", agreement*100)
}

// ReviewTable builds the human-readable per-source breakdown table.
func ReviewTable(records []xref.Record, ids []sources.ID) Data {
	headers := []string{"Xcode", "iOS SDK", "St", "Agr"}
	alignment := []Align{AlignRight, AlignRight, AlignCenter, AlignRight}
	for _, id := range ids {
		headers = append(headers, Title(shortName(id)))
		alignment = append(alignment, AlignLeft)
	}

	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		sdk := rec.SDK
		if sdk == "" {
			sdk = xref.NoData
		}
		icon, ok := statusIcons[rec.Status]
		if !ok {
			icon = "?"
		}
		row := []string{rec.Xcode, sdk, icon, agreementPct(rec.Agreement)}
		for _, id := range ids {
			value := xref.NoData
			if claim, ok := rec.Sources[id.String()]; ok && claim.Value != "" {
				value = claim.Value
			}
			row = append(row, value)
		}
		rows = append(rows, row)
	}

	return Data{Headers: headers, Rows: rows, ColumnAlignment: alignment}
}

// FlatTable builds the two-column version mapping, oldest version first.
// The same shape serves the flat CSV file and the flat table view.
func FlatTable(flat *report.Flat) Data {
	headers := []string{"xcode_version", "ios_sdk"}
	rows := make([][]string, 0, flat.Len())
	for _, ver := range flat.Versions() {
		sdk, _ := flat.SDK(ver)
		rows = append(rows, []string{ver, sdk})
	}
	return Data{Headers: headers, Rows: rows}
}

// DetailedTable builds the full per-source breakdown in tabular form for
// the detailed CSV file: resolution columns first, then a value and URL
// column per source.
func DetailedTable(records []xref.Record, ids []sources.ID) Data {
	headers := []string{"xcode_version", "ios_sdk", "status", "chosen_from", "agreement_pct"}
	for _, id := range ids {
		headers = append(headers, "src_"+id.String(), "src_"+id.String()+"_url")
	}

	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		row := []string{
			rec.Xcode,
			rec.SDK,
			string(rec.Status),
			rec.ChosenFrom.String(),
			agreementPct(rec.Agreement),
		}
		for _, id := range ids {
			claim := rec.Sources[id.String()]
			value := claim.Value
			if value == "" {
				value = xref.NoData
			}
			row = append(row, value, claim.URL)
		}
		rows = append(rows, row)
	}

	return Data{Headers: headers, Rows: rows}
}
