// Package differ detects changes between the newly computed flat SDK mapping
// and the one persisted by the previous run. The verdict drives the process
// exit status so automation can decide whether to commit the new output.
//
// Detection fails open: a missing or unparseable previous file counts as
// "changed". A change is never silently suppressed.
package differ

import (
	"encoding/json"
	"os"

	"github.com/sdkmap/sdkmap/pkg/errors"
	"github.com/sdkmap/sdkmap/pkg/report"
	"github.com/sdkmap/sdkmap/pkg/version"
)

// Changeset describes how the flat mapping moved between two runs.
type Changeset struct {
	Added   []string // versions present now but not before
	Removed []string // versions present before but not now
	Updated []string // versions whose SDK value changed
}

// HasChanges reports whether anything differs between the two mappings.
func (c *Changeset) HasChanges() bool {
	return len(c.Added) > 0 || len(c.Removed) > 0 || len(c.Updated) > 0
}

// Flats compares two flat mappings and returns the detailed changeset.
// Equality is structural: key sets and values, ordering irrelevant.
func Flats(existing, updated *report.Flat) *Changeset {
	cs := &Changeset{}

	for _, ver := range updated.Versions() {
		newSDK, _ := updated.SDK(ver)
		oldSDK, ok := existing.SDK(ver)
		switch {
		case !ok:
			cs.Added = append(cs.Added, ver)
		case oldSDK != newSDK:
			cs.Updated = append(cs.Updated, ver)
		}
	}

	for _, ver := range existing.Versions() {
		if _, ok := updated.SDK(ver); !ok {
			cs.Removed = append(cs.Removed, ver)
		}
	}

	version.Sort(cs.Added)
	version.Sort(cs.Removed)
	version.Sort(cs.Updated)
	return cs
}

// Previous loads the flat mapping persisted by an earlier run. A missing
// file returns ErrNotFound; any other read or parse failure is wrapped, and
// the caller treats both as "changed".
func Previous(path string) (*report.Flat, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ErrNotFound
		}
		return nil, errors.WrapIO("read", path, err)
	}

	var flat report.Flat
	if err := json.Unmarshal(data, &flat); err != nil {
		return nil, errors.WrapParse("json", path, err)
	}
	return &flat, nil
}

// Detect compares the new flat mapping against the file at path. The bool is
// the change verdict; the changeset is nil when no previous mapping could be
// loaded (absence and parse failure both fail open toward "changed").
func Detect(path string, updated *report.Flat) (bool, *Changeset) {
	previous, err := Previous(path)
	if err != nil {
		return true, nil
	}
	cs := Flats(previous, updated)
	return cs.HasChanges(), cs
}
