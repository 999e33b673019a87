// Package version provides normalization and numeric comparison for dotted
// Xcode and iOS SDK version strings.
//
// Every version entering the system passes through Normalize so that a bare
// major like "9" and its canonical form "9.0" are always the same key.
// Comparison is component-wise over the integer parts, never lexical, so
// "10.0" sorts after "9.2".
package version

import (
	"sort"
	"strconv"
	"strings"
)

// sdkMajorMin and sdkMajorMax bound plausible iOS SDK majors. Values outside
// the range are build numbers, years, or other prose noise.
const (
	sdkMajorMin = 2
	sdkMajorMax = 99
)

// Normalize canonicalizes a version string so bare majors become X.0.
// It is idempotent: Normalize(Normalize(v)) == Normalize(v).
func Normalize(v string) string {
	if !strings.Contains(v, ".") {
		return v + ".0"
	}
	return v
}

// Components parses a version into its integer parts. A version that fails
// to parse as all-integer components is treated as [0], sorting as oldest
// rather than erroring.
func Components(v string) []int {
	parts := strings.Split(v, ".")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return []int{0}
		}
		out = append(out, n)
	}
	return out
}

// Compare returns -1, 0, or +1 ordering a before, equal to, or after b
// under component-wise integer comparison. Missing components are treated
// as absent, not zero, so "12.5" precedes "12.5.1".
func Compare(a, b string) int {
	ac, bc := Components(a), Components(b)
	for i := 0; i < len(ac) && i < len(bc); i++ {
		switch {
		case ac[i] < bc[i]:
			return -1
		case ac[i] > bc[i]:
			return 1
		}
	}
	switch {
	case len(ac) < len(bc):
		return -1
	case len(ac) > len(bc):
		return 1
	}
	return 0
}

// Sort orders versions in place, ascending (oldest first).
func Sort(versions []string) {
	sort.Slice(versions, func(i, j int) bool {
		return Compare(versions[i], versions[j]) < 0
	})
}

// SortDescending orders versions in place, newest first. It uses the same
// comparator as Sort.
func SortDescending(versions []string) {
	sort.Slice(versions, func(i, j int) bool {
		return Compare(versions[i], versions[j]) > 0
	})
}

// MajorMinor truncates a three-component version to its major.minor form,
// used for fallback lookups when a patch-level entry is absent. The second
// return is false for anything other than exactly three components.
func MajorMinor(v string) (string, bool) {
	parts := strings.Split(v, ".")
	if len(parts) != 3 {
		return "", false
	}
	return parts[0] + "." + parts[1], true
}

// ValidSDK reports whether v looks like a plausible iOS SDK version, i.e.
// its major component lies in [2, 99].
func ValidSDK(v string) bool {
	major, err := strconv.Atoi(strings.SplitN(v, ".", 2)[0])
	if err != nil {
		return false
	}
	return major >= sdkMajorMin && major <= sdkMajorMax
}
