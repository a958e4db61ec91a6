package nxmap

import "strings"

// humanBoolean is the strict vocabulary accepted when a string has to be
// read as a boolean. Anything outside it is a bad_boolean Issue, never a
// silent false.
var humanBoolean = map[string]bool{
	"0":     false,
	"1":     true,
	"n":     false,
	"y":     true,
	"no":    false,
	"yes":   true,
	"false": false,
	"true":  true,
}

// InterpretBoolean reads a human boolean statement. Accepted inputs are bool
// values and the strings 0/1, n/y, no/yes, false/true in any case.
func InterpretBoolean(v any) (bool, error) {
	switch s := v.(type) {
	case bool:
		return s, nil
	case string:
		if b, ok := humanBoolean[strings.ToLower(s)]; ok {
			return b, nil
		}
		return false, issue("", CodeBadBoolean, "string "+s+" is not a boolean statement", nil)
	default:
		return false, issue("", CodeBadBoolean, "value cannot be interpreted as boolean", nil)
	}
}
