package nxmap

import (
	"strconv"
	"strings"
)

// VariadicMarker is the placeholder filled from instance identifiers when a
// template path is resolved.
const VariadicMarker = "*"

// ResolvePath transforms a variadic template path into a concrete one by
// interleaving the literal fragments with the leading identifiers, rendered
// in decimal. A path without markers is returned unchanged.
//
// ok is false when fewer identifiers than markers are supplied; callers must
// treat that as "do not write this entry" rather than an error, because some
// tables are deliberately reusable at different instance granularities.
//
// ResolvePath is pure: identical arguments always yield identical results.
func ResolvePath(path string, ids []int) (string, bool) {
	if path == "" {
		return "", false
	}
	n := strings.Count(path, VariadicMarker)
	if n == 0 {
		return path, true
	}
	if len(ids) < n {
		return "", false
	}
	parts := strings.Split(path, VariadicMarker)
	if len(parts) != n+1 {
		return "", false
	}
	b := &strings.Builder{}
	for i := 0; i < n; i++ {
		b.WriteString(parts[i])
		b.WriteString(strconv.Itoa(ids[i]))
	}
	b.WriteString(parts[n])
	return b.String(), true
}
