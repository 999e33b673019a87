package report

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/sdkmap/sdkmap/pkg/version"
	"github.com/sdkmap/sdkmap/pkg/xref"
)

// Flat is the final answer: Xcode version → iOS SDK version for every
// resolved version, ordered oldest first. It marshals to a JSON object whose
// keys keep that numeric order, which a plain map cannot guarantee (the
// encoder would sort "10.0" before "9.2" lexically).
type Flat struct {
	versions []string
	sdks     map[string]string
}

// NewFlat builds the flat mapping from resolution records, skipping every
// record without a resolved value.
func NewFlat(records []xref.Record) *Flat {
	f := &Flat{sdks: make(map[string]string)}
	for _, rec := range records {
		if !rec.Resolved() {
			continue
		}
		if _, exists := f.sdks[rec.Xcode]; exists {
			continue
		}
		f.versions = append(f.versions, rec.Xcode)
		f.sdks[rec.Xcode] = rec.SDK
	}
	version.Sort(f.versions)
	return f
}

// Len returns the number of resolved versions.
func (f *Flat) Len() int {
	return len(f.versions)
}

// SDK returns the resolved SDK for a version.
func (f *Flat) SDK(xcodeVer string) (string, bool) {
	sdk, ok := f.sdks[xcodeVer]
	return sdk, ok
}

// Versions returns the versions oldest first.
func (f *Flat) Versions() []string {
	out := make([]string, len(f.versions))
	copy(out, f.versions)
	return out
}

// Equal reports structural equality with another flat mapping: same key set,
// same values. Ordering is irrelevant for equality.
func (f *Flat) Equal(other *Flat) bool {
	if other == nil || len(f.sdks) != len(other.sdks) {
		return false
	}
	for ver, sdk := range f.sdks {
		if otherSDK, ok := other.sdks[ver]; !ok || otherSDK != sdk {
			return false
		}
	}
	return true
}

// MarshalJSON writes the mapping as a JSON object, versions oldest first.
func (f *Flat) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, ver := range f.versions {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(ver)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(f.sdks[ver])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML writes the mapping as a YAML object with the same numeric
// oldest-first key order as MarshalJSON. Keys and values are quoted so YAML
// keeps them as strings ("9.2" would otherwise parse as a float).
func (f *Flat) MarshalYAML() ([]byte, error) {
	if len(f.versions) == 0 {
		return []byte("{}"), nil
	}
	var buf bytes.Buffer
	for _, ver := range f.versions {
		fmt.Fprintf(&buf, "%q: %q\n", ver, f.sdks[ver])
	}
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a persisted flat mapping back. Key order in the file
// is not trusted; versions are re-sorted numerically.
func (f *Flat) UnmarshalJSON(data []byte) error {
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	f.sdks = make(map[string]string, len(raw))
	f.versions = f.versions[:0]
	for ver, sdk := range raw {
		f.sdks[ver] = sdk
		f.versions = append(f.versions, ver)
	}
	version.Sort(f.versions)
	return nil
}
