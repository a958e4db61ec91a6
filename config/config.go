// Package config defines the declarative mapping table every engine verb
// honors: a target path prefix, optional source key prefixes, and an ordered
// list of verb entries, each carrying mapping rules. Tables are pure data.
// They are validated when built or loaded and never mutated afterwards.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nxharvest/nxmap/rule"
)

// Verb names one mapping strategy of the engine.
type Verb string

const (
	VerbUse           Verb = "use"
	VerbMap           Verb = "map"
	VerbUnixToISO8601 Verb = "unix_to_iso8601"
	VerbSHA256        Verb = "sha256"
	VerbJoinStr       Verb = "join_str"
)

// mapToPrefix starts the typed map variants, e.g. map_to_f8.
const mapToPrefix = "map_to_"

// DTypes is the closed registry of target element-type tags accepted by
// map_to_<dtype> and by the value normalizer.
var DTypes = map[string]struct{}{
	"u1": {}, "i1": {},
	"u2": {}, "i2": {}, "f2": {},
	"u4": {}, "i4": {}, "f4": {},
	"u8": {}, "i8": {}, "f8": {},
	"bool": {}, "str": {},
}

// DType splits a typed map verb into its element-type tag. ok is false for
// every other verb; an unknown tag after map_to_ returns ok true with the
// invalid tag so callers can report it.
func (v Verb) DType() (string, bool) {
	s := string(v)
	if !strings.HasPrefix(s, mapToPrefix) {
		return "", false
	}
	return strings.TrimPrefix(s, mapToPrefix), true
}

// Known reports whether v is a verb the engine implements.
func (v Verb) Known() bool {
	switch v {
	case VerbUse, VerbMap, VerbUnixToISO8601, VerbSHA256, VerbJoinStr:
		return true
	}
	if tag, ok := v.DType(); ok {
		_, ok := DTypes[tag]
		return ok
	}
	return false
}

// Entry is one verb with its rule list, in table order.
type Entry struct {
	Verb  Verb
	Rules []rule.Rule
}

// Table is one declarative mapping table.
type Table struct {
	// Name identifies the table in logs and errors.
	Name string
	// PrefixTrg is the variadic target path prefixed to every rule's
	// target segment. Required.
	PrefixTrg string
	// PrefixSrc lists source-key prefixes tried in turn; empty means
	// unprefixed lookup.
	PrefixSrc []string
	// Entries are the verbs in declaration order; rules execute in list
	// order within each verb.
	Entries []Entry
}

// Sentinel errors for table authoring problems found at load time.
var (
	ErrMissingPrefix    = errors.New("config: table without prefix_trg")
	ErrUnknownVerb      = errors.New("config: unknown verb")
	ErrUnsupportedShape = errors.New("config: unsupported rule shape")
)

// Validate checks the table against the closed verb and shape registries.
// A table that does not validate is a bug in its author's mapping, so
// callers fail fast on the returned error.
func (t *Table) Validate() error {
	if t.PrefixTrg == "" {
		return fmt.Errorf("%w (table %s)", ErrMissingPrefix, t.Name)
	}
	for _, e := range t.Entries {
		if !e.Verb.Known() {
			return fmt.Errorf("%w %q (table %s)", ErrUnknownVerb, e.Verb, t.Name)
		}
		for i, r := range e.Rules {
			if err := checkShape(e.Verb, r); err != nil {
				return fmt.Errorf("%w (table %s, verb %s, rule %d)", err, t.Name, e.Verb, i)
			}
		}
	}
	return nil
}

func checkShape(v Verb, r rule.Rule) error {
	_, literal := r.Literal()
	switch v {
	case VerbUse:
		if r.Shape() != rule.RenamePair || !literal {
			return fmt.Errorf("%w: use requires a (target, literal) rule", ErrUnsupportedShape)
		}
		return nil
	case VerbUnixToISO8601, VerbSHA256:
		if r.Shape() != rule.RenamePair || literal {
			return fmt.Errorf("%w: %s requires a (target, source_key) rule", ErrUnsupportedShape, v)
		}
		return nil
	case VerbJoinStr:
		if r.Shape() != rule.RenameList {
			return fmt.Errorf("%w: join_str requires a (target, source_key_list) rule", ErrUnsupportedShape)
		}
		return nil
	}
	// map and map_to_<dtype> accept the whole closed shape set.
	if literal {
		return fmt.Errorf("%w: literal rules only belong to use", ErrUnsupportedShape)
	}
	if r.Shape() == rule.Unsupported {
		return ErrUnsupportedShape
	}
	return nil
}

// SrcPrefixes returns the source prefixes to try, defaulting to the single
// empty prefix. Legacy tables routinely omit prefix_src.
func (t *Table) SrcPrefixes() []string {
	if len(t.PrefixSrc) == 0 {
		return []string{""}
	}
	return t.PrefixSrc
}
