// Package xref implements the cross-reference engine: given each source's
// partial, differently-trustworthy mapping of Xcode versions to iOS SDK
// versions, it reconciles every version into a single resolution record with
// a confidence status, a deterministic authority-order winner, an agreement
// score, and full per-source provenance.
//
// Resolution is pure, synchronous computation over already-collected maps.
// It never synthesizes a value: the resolved SDK always equals something a
// source actually reported.
package xref

import (
	"math"

	"github.com/sdkmap/sdkmap/pkg/sources"
	"github.com/sdkmap/sdkmap/pkg/version"
)

// Status classifies the confidence of a resolution.
type Status string

const (
	// StatusConsensus means two or more sources reported the same value.
	StatusConsensus Status = "consensus"

	// StatusSingleSource means exactly one source reported a value.
	StatusSingleSource Status = "single_source"

	// StatusConflict means two or more sources reported distinct values.
	StatusConflict Status = "conflict"

	// StatusNotFound means no source reported a value.
	StatusNotFound Status = "not_found"
)

// NoData is the sentinel recorded for a source that offered no value.
const NoData = "—"

// Claim is one source's contribution for a version: the value it reported
// (or NoData) and the URL corroborating it.
type Claim struct {
	Value string `json:"value"`
	URL   string `json:"url"`
}

// Record is the resolution of a single Xcode version across all sources.
type Record struct {
	Xcode      string           `json:"xcode"`
	SDK        string           `json:"ios_sdk,omitempty"`
	Status     Status           `json:"status"`
	ChosenFrom sources.ID       `json:"chosen_from,omitempty"`
	Agreement  float64          `json:"agreement"`
	Sources    map[string]Claim `json:"sources"`
}

// Resolved reports whether the record carries an SDK value.
func (r Record) Resolved() bool {
	return r.SDK != ""
}

// lookup finds a source's value for a version, retrying with the major.minor
// truncation when a patch-level entry is absent.
func lookup(res *sources.Result, xcodeVer string) (string, bool) {
	if sdk, ok := res.SDK(xcodeVer); ok {
		return sdk, true
	}
	if mm, ok := version.MajorMinor(xcodeVer); ok {
		return res.SDK(mm)
	}
	return "", false
}

// Resolve cross-references one Xcode version against every source's result.
// The results slice must be ordered by authority, most trusted first; that
// order is the tie-break for conflicts. Authority strictly overrides
// majority: the chosen source for a conflict is the first reporting source
// in the slice, even when more lower-ranked sources agree on another value.
func Resolve(xcodeVer string, results []*sources.Result) Record {
	found := make(map[sources.ID]string)
	var reporting []sources.ID // authority order
	unique := make(map[string]struct{})

	for _, res := range results {
		if sdk, ok := lookup(res, xcodeVer); ok {
			found[res.ID()] = sdk
			reporting = append(reporting, res.ID())
			unique[sdk] = struct{}{}
		}
	}

	record := Record{
		Xcode:   xcodeVer,
		Sources: make(map[string]Claim, len(results)),
	}

	switch {
	case len(unique) == 0:
		record.Status = StatusNotFound

	case len(unique) == 1:
		record.SDK = found[reporting[0]]
		record.ChosenFrom = reporting[0]
		record.Agreement = 1.0
		if len(reporting) > 1 {
			record.Status = StatusConsensus
		} else {
			record.Status = StatusSingleSource
		}

	default:
		record.Status = StatusConflict
		record.ChosenFrom = reporting[0]
		record.SDK = found[record.ChosenFrom]
		agree := 0
		for _, sdk := range found {
			if sdk == record.SDK {
				agree++
			}
		}
		record.Agreement = roundRatio(float64(agree) / float64(len(found)))
	}

	for _, res := range results {
		claim := Claim{Value: NoData, URL: res.ProvenanceURL(xcodeVer)}
		if sdk, ok := found[res.ID()]; ok {
			claim.Value = sdk
		}
		record.Sources[res.ID().String()] = claim
	}

	return record
}

// ResolveAll resolves every version in the universe, in the given order.
func ResolveAll(universe []string, results []*sources.Result) []Record {
	records := make([]Record, 0, len(universe))
	for _, ver := range universe {
		records = append(records, Resolve(ver, results))
	}
	return records
}

// roundRatio rounds to two decimal places for stable, readable output.
func roundRatio(ratio float64) float64 {
	return math.Round(ratio*100) / 100
}
