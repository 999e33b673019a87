// Package sources defines the data-source model for SDK mapping: source
// identifiers, the fixed authority ranking used to break conflicts, and the
// immutable Result each adapter returns from a fetch.
//
// A source is one origin of Xcode-version → iOS-SDK data. Sources are ranked
// by authority: locally installed tool output outranks Apple's published
// pages, which outrank community and encyclopedia sources. The ranking is
// hand-curated configuration, not derived data.
package sources

import (
	"context"
	"slices"
)

// ID identifies a data source.
type ID string

// String returns the string representation of a source ID.
func (id ID) String() string {
	return string(id)
}

// Source identifiers, one per adapter.
const (
	// LocalXcodebuildID is locally installed Xcode queried via
	// xcodebuild -showsdks. Ground truth for the installed version.
	LocalXcodebuildID ID = "local_xcodebuild"

	// AppleDocsJSONID is the Apple Developer Documentation JSON API.
	AppleDocsJSONID ID = "apple_docs_json"

	// AppleSupportID is Apple's official developer support page table.
	AppleSupportID ID = "apple_support"

	// XcodeReleasesID is the community xcodereleases.com JSON API.
	XcodeReleasesID ID = "xcodereleases"

	// AppleArchive9ID is the Apple library archive Xcode 8-9 release notes.
	AppleArchive9ID ID = "apple_archive_9"

	// AppleArchive47ID is the Apple library archive Xcode 4/6/7 chapters.
	AppleArchive47ID ID = "apple_archive_47"

	// WikipediaHistoryID is the Wikipedia "History of Xcode" article.
	WikipediaHistoryID ID = "wikipedia_history"

	// WikipediaXcodeID is the Wikipedia "Xcode" main article.
	WikipediaXcodeID ID = "wikipedia_xcode"
)

// Authority returns the fixed source ranking, index 0 most trusted. Conflict
// resolution walks this order and stops at the first source that reported,
// so a single authoritative source always beats any number of lower-ranked
// sources that happen to agree with each other.
func Authority() []ID {
	return []ID{
		LocalXcodebuildID,
		AppleDocsJSONID,
		AppleSupportID,
		XcodeReleasesID,
		AppleArchive9ID,
		AppleArchive47ID,
		WikipediaHistoryID,
		WikipediaXcodeID,
	}
}

// IsValid returns true if the ID is one of the defined source constants.
func (id ID) IsValid() bool {
	return slices.Contains(Authority(), id)
}

// baseURLs maps each source to its static URL, used as the provenance
// fallback when no per-version URL was recorded.
var baseURLs = map[ID]string{
	LocalXcodebuildID:  "local:xcodebuild -showsdks",
	AppleDocsJSONID:    "https://developer.apple.com/tutorials/data/documentation/xcode-release-notes/",
	AppleSupportID:     "https://developer.apple.com/support/xcode/",
	XcodeReleasesID:    "https://xcodereleases.com/data.json",
	AppleArchive9ID:    "https://developer.apple.com/library/archive/releasenotes/DeveloperTools/RN-Xcode/Chapters/Introduction.html",
	AppleArchive47ID:   "https://developer.apple.com/library/archive/documentation/Xcode/Conceptual/RN-Xcode-Archive/Chapters/",
	WikipediaHistoryID: "https://en.wikipedia.org/wiki/History_of_Xcode",
	WikipediaXcodeID:   "https://en.wikipedia.org/wiki/Xcode",
}

// BaseURL returns the static URL for a source, or "" for an unknown ID.
func BaseURL(id ID) string {
	return baseURLs[id]
}

// BaseURLs returns the static URL table for all sources.
func BaseURLs() map[ID]string {
	out := make(map[ID]string, len(baseURLs))
	for id, url := range baseURLs {
		out[id] = url
	}
	return out
}

// Source is one origin of version → SDK data. Fetch is expected to handle
// its own internal concurrency; a source that fails contributes an error,
// which the orchestrator downgrades to an empty Result so the run continues.
type Source interface {
	// ID returns the identifier of this source.
	ID() ID

	// Fetch retrieves this source's mapping. The returned Result is
	// treated as immutable by all downstream consumers.
	Fetch(ctx context.Context) (*Result, error)
}
