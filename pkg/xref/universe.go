package xref

import (
	"github.com/sdkmap/sdkmap/pkg/errors"
	"github.com/sdkmap/sdkmap/pkg/sources"
	"github.com/sdkmap/sdkmap/pkg/version"
)

// Universe unions every version key seen across all source results with an
// optional external enumeration list, returning the complete set of versions
// to resolve sorted newest first (the processing order). A version known only
// from the enumeration still enters the universe so its gap stays visible in
// the report.
//
// An empty union is fatal: it means no source and no enumeration produced any
// data, and the caller must abort rather than emit an empty report.
func Universe(results []*sources.Result, enumeration []string) ([]string, error) {
	seen := make(map[string]struct{})
	for _, v := range enumeration {
		seen[version.Normalize(v)] = struct{}{}
	}
	for _, res := range results {
		for _, v := range res.Versions() {
			seen[v] = struct{}{}
		}
	}

	if len(seen) == 0 {
		return nil, errors.ErrEmptyUniverse
	}

	universe := make([]string, 0, len(seen))
	for v := range seen {
		universe = append(universe, v)
	}
	version.SortDescending(universe)
	return universe, nil
}
