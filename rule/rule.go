// Package rule defines the closed set of mapping-rule shapes a table verb
// may carry. A Rule is built through one of the constructors below and is
// immutable afterwards; anything that does not fit one of the shapes is
// rejected when a table document is loaded, not when rules execute.
package rule

import "github.com/nxharvest/nxmap/unit"

// Shape classifies a Rule. The set is closed: verbs dispatch on it with an
// exhaustive switch.
type Shape int

const (
	Unsupported Shape = iota
	// SingleKey: target segment and source key are the same string.
	SingleKey
	// RenamePair: distinct target segment and source key.
	RenamePair
	// RenameList: several source keys combined into one target.
	RenameList
	// UnitScalar: source is already unit-bearing; convert it to the
	// declared target unit.
	UnitScalar
	// UnitList: like UnitScalar over a list of source keys.
	UnitList
	// UnitScalarWithSrcUnit: source is a bare number; tag it with the
	// declared source unit, then convert to the target unit.
	UnitScalarWithSrcUnit
	// UnitListWithSrcUnit: like UnitScalarWithSrcUnit over a list.
	UnitListWithSrcUnit
)

func (s Shape) String() string {
	switch s {
	case SingleKey:
		return "single_key"
	case RenamePair:
		return "rename_pair"
	case RenameList:
		return "rename_list"
	case UnitScalar:
		return "unit_scalar"
	case UnitList:
		return "unit_list"
	case UnitScalarWithSrcUnit:
		return "unit_scalar_with_src_unit"
	case UnitListWithSrcUnit:
		return "unit_list_with_src_unit"
	}
	return "unsupported"
}

// Rule is one entry in a verb's rule list.
type Rule struct {
	shape      Shape
	trg        string
	srcs       []string
	trgUnit    unit.Unit
	srcUnit    unit.Unit
	literal    any
	hasLiteral bool
	tz         string
}

// Key maps a source key onto the identically named target segment.
func Key(key string) Rule {
	return Rule{shape: SingleKey, trg: key, srcs: []string{key}}
}

// Rename maps source key src onto target segment trg.
func Rename(trg, src string) Rule {
	return Rule{shape: RenamePair, trg: trg, srcs: []string{src}}
}

// Gather combines the values of srcs, in order, into one target entry
// (an array, or a joined string under the join_str verb).
func Gather(trg string, srcs ...string) Rule {
	return Rule{shape: RenameList, trg: trg, srcs: srcs}
}

// Convert maps a unit-bearing source value onto trg, converted to u.
func Convert(trg string, u unit.Unit, src string) Rule {
	return Rule{shape: UnitScalar, trg: trg, srcs: []string{src}, trgUnit: u}
}

// ConvertList maps several unit-bearing source values onto one target
// array, each converted to u.
func ConvertList(trg string, u unit.Unit, srcs ...string) Rule {
	return Rule{shape: UnitList, trg: trg, srcs: srcs, trgUnit: u}
}

// ConvertFrom maps a bare numeric source value onto trg: the value is first
// tagged with srcUnit, then converted to u.
func ConvertFrom(trg string, u unit.Unit, src string, srcUnit unit.Unit) Rule {
	return Rule{shape: UnitScalarWithSrcUnit, trg: trg, srcs: []string{src}, trgUnit: u, srcUnit: srcUnit}
}

// ConvertListFrom is ConvertFrom over several source keys combined into one
// target array.
func ConvertListFrom(trg string, u unit.Unit, srcUnit unit.Unit, srcs ...string) Rule {
	return Rule{shape: UnitListWithSrcUnit, trg: trg, srcs: srcs, trgUnit: u, srcUnit: srcUnit}
}

// Use injects a literal value from the table itself; nothing is looked up
// in the source metadata. Only the use verb accepts these rules.
func Use(trg string, literal any) Rule {
	return Rule{shape: RenamePair, trg: trg, literal: literal, hasLiteral: true}
}

// Timestamp maps a POSIX timestamp under src onto trg as ISO-8601 in UTC.
func Timestamp(trg, src string) Rule {
	return Rule{shape: RenamePair, trg: trg, srcs: []string{src}}
}

// TimestampIn is Timestamp rendered in the named IANA timezone.
func TimestampIn(trg, src, tz string) Rule {
	return Rule{shape: RenamePair, trg: trg, srcs: []string{src}, tz: tz}
}

// Shape returns the classification of r. The zero Rule is Unsupported.
func (r Rule) Shape() Shape { return r.shape }

// Trg returns the target path segment (appended to the table's prefix_trg).
func (r Rule) Trg() string { return r.trg }

// Src returns the first source key, or "" for literal rules.
func (r Rule) Src() string {
	if len(r.srcs) == 0 {
		return ""
	}
	return r.srcs[0]
}

// Srcs returns all source keys in declaration order.
func (r Rule) Srcs() []string { return r.srcs }

// TrgUnit returns the declared target unit (zero for unit-free shapes).
func (r Rule) TrgUnit() unit.Unit { return r.trgUnit }

// SrcUnit returns the declared source unit (zero unless a WithSrcUnit shape).
func (r Rule) SrcUnit() unit.Unit { return r.srcUnit }

// Literal returns the embedded literal of a Use rule.
func (r Rule) Literal() (any, bool) { return r.literal, r.hasLiteral }

// TZ returns the IANA timezone name of a TimestampIn rule, "" meaning UTC.
func (r Rule) TZ() string { return r.tz }
