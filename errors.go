package nxmap

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and stability by convention).
//
// Every code marks a configuration-authoring error: something wrong with a
// mapping table or with the value a table declared for a target. Missing
// source data is never an Issue; those rules are skipped (see Engine).
const (
	CodeMissingPrefix    = "missing_prefix"    // table lacks prefix_trg
	CodeUnknownVerb      = "unknown_verb"      // verb key not in the registry
	CodeUnknownDType     = "unknown_dtype"     // map_to_<dtype> with unknown tag
	CodeUnsupportedShape = "unsupported_shape" // rule does not fit the closed shape set
	CodeInvalidType      = "invalid_type"      // source value type unusable for the target
	CodeUnitMismatch     = "unit_mismatch"     // declared target unit incompatible with source
	CodeUnknownTimezone  = "unknown_timezone"  // unix_to_iso8601 with unresolvable zone name
	CodeBadBoolean       = "bad_boolean"       // string outside the human-boolean vocabulary
	CodeParseError       = "parse_error"       // table document could not be decoded
)

// Issue represents a single configuration-authoring error.
type Issue struct {
	Path    string // target template path or table location (for example: /ENTRY[entry1]/measurement/... or verb "map" rule 3)
	Code    string // one of the codes listed above
	Message string
	Cause   error // optional: underlying error (unit library, I/O, decoder)
}

// Issues is a collection of authoring errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

func issue(path, code, msg string, cause error) Issues {
	return Issues{{Path: path, Code: code, Message: msg, Cause: cause}}
}
