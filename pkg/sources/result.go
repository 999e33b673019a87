package sources

import (
	"github.com/sdkmap/sdkmap/pkg/version"
)

// Result is the outcome of one source fetch: a mapping from normalized Xcode
// version to normalized iOS SDK version, plus a per-version provenance URL.
// Adapters build a Result and hand it back; after that it is read-only, so
// there is no shared mutable state between adapters and the resolver.
type Result struct {
	id   ID
	sdks map[string]string
	urls map[string]string
}

// NewResult creates an empty Result for the given source.
func NewResult(id ID) *Result {
	return &Result{
		id:   id,
		sdks: make(map[string]string),
		urls: make(map[string]string),
	}
}

// ID returns the source this Result came from.
func (r *Result) ID() ID {
	return r.id
}

// Add records a version → SDK entry with first-writer-wins semantics.
// Both keys and values are normalized, so "9" and "9.0" are one entry.
func (r *Result) Add(xcodeVer, sdk string) {
	r.add(xcodeVer, sdk, "")
}

// AddWithURL records a version → SDK entry along with the URL corroborating
// it. First writer wins for both the value and the URL.
func (r *Result) AddWithURL(xcodeVer, sdk, url string) {
	r.add(xcodeVer, sdk, url)
}

func (r *Result) add(xcodeVer, sdk, url string) {
	xcodeVer = version.Normalize(xcodeVer)
	if _, exists := r.sdks[xcodeVer]; exists {
		return
	}
	r.sdks[xcodeVer] = version.Normalize(sdk)
	if url != "" {
		r.urls[xcodeVer] = url
	}
}

// Merge folds another partial Result into this one, earlier entries winning.
// This is the explicit reduce step for sources that fan out into parallel
// sub-fetches: callers merge partial results in a defined iteration order
// rather than relying on arrival order.
func (r *Result) Merge(partial *Result) {
	if partial == nil {
		return
	}
	for ver, sdk := range partial.sdks {
		r.add(ver, sdk, partial.urls[ver])
	}
}

// SDK looks up the SDK for an exact (normalized) version key.
func (r *Result) SDK(xcodeVer string) (string, bool) {
	sdk, ok := r.sdks[xcodeVer]
	return sdk, ok
}

// ProvenanceURL returns the URL corroborating this source's claim for a
// version: the URL recorded for the exact version if any, else the one for
// its major.minor truncation, else the source's static base URL.
func (r *Result) ProvenanceURL(xcodeVer string) string {
	if url, ok := r.urls[xcodeVer]; ok {
		return url
	}
	if mm, ok := version.MajorMinor(xcodeVer); ok {
		if url, ok := r.urls[mm]; ok {
			return url
		}
	}
	return BaseURL(r.id)
}

// Versions returns all version keys in this Result, in no particular order.
func (r *Result) Versions() []string {
	out := make([]string, 0, len(r.sdks))
	for ver := range r.sdks {
		out = append(out, ver)
	}
	return out
}

// Len returns the number of versions this source reported.
func (r *Result) Len() int {
	return len(r.sdks)
}
