// Package constants provides shared constants used throughout the sdkmap
// codebase. This includes timeouts, worker-pool sizes, and file permissions
// that should be consistent across the application.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for HTTP requests to
	// remote sources
	DefaultHTTPTimeout = 30 * time.Second

	// DocsProbeTimeout is the per-request timeout for Apple docs JSON
	// probes, shorter because most probes are expected 404s
	DocsProbeTimeout = 20 * time.Second

	// ProcessTimeout is the timeout for a single xcodebuild invocation
	ProcessTimeout = 30 * time.Second

	// EnumerationTimeout is the timeout for the xcodes CLI version listing
	EnumerationTimeout = 60 * time.Second
)

// Concurrency constants size the worker pools
const (
	// SourceWorkers bounds the top-level pool fetching sources in parallel
	SourceWorkers = 8

	// DocsProbeWorkers bounds the sub-pool probing Apple docs JSON URLs
	DocsProbeWorkers = 16

	// ChapterWorkers bounds the sub-pool fetching archive chapter pages
	ChapterWorkers = 4
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)
