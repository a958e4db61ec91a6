package config

import (
	"fmt"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/nxharvest/nxmap/rule"
	"github.com/nxharvest/nxmap/unit"
)

// LoadYAML decodes a table document. Top-level keys other than name,
// prefix_trg (legacy alias: prefix), and prefix_src are verbs, executed in
// document order. Rules come in three forms:
//
//	- a bare string: source key and target segment are identical
//	- a two-element sequence [target, source] or [target, [sources...]]
//	- a mapping {trg, src, unit, src_unit, value, tz} for the unit-bearing,
//	  literal, and timezone shapes
//
// Anything else fails with ErrUnsupportedShape. The returned table is
// already validated.
func LoadYAML(data []byte) (*Table, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("config: parse: document is not a mapping")
	}
	root := doc.Content[0]
	t := &Table{}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i].Value
		val := root.Content[i+1]
		switch key {
		case "name":
			if err := val.Decode(&t.Name); err != nil {
				return nil, fmt.Errorf("config: parse name: %w", err)
			}
		case "prefix_trg", "prefix":
			if err := val.Decode(&t.PrefixTrg); err != nil {
				return nil, fmt.Errorf("config: parse prefix_trg: %w", err)
			}
		case "prefix_src":
			if val.Kind == yaml.SequenceNode {
				if err := val.Decode(&t.PrefixSrc); err != nil {
					return nil, fmt.Errorf("config: parse prefix_src: %w", err)
				}
			} else {
				var s string
				if err := val.Decode(&s); err != nil {
					return nil, fmt.Errorf("config: parse prefix_src: %w", err)
				}
				t.PrefixSrc = []string{s}
			}
		default:
			var raw []any
			if err := val.Decode(&raw); err != nil {
				return nil, fmt.Errorf("config: verb %s (line %d): %w", key, val.Line, err)
			}
			entry, err := entryFromRaw(Verb(key), raw)
			if err != nil {
				return nil, fmt.Errorf("%w (line %d)", err, val.Line)
			}
			t.Entries = append(t.Entries, entry)
		}
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// tableJSON is the JSON document form. JSON objects do not preserve key
// order, so verbs are an explicit array.
type tableJSON struct {
	Name      string `json:"name"`
	PrefixTrg string `json:"prefix_trg"`
	PrefixSrc any    `json:"prefix_src"`
	Verbs     []struct {
		Verb  string `json:"verb"`
		Rules []any  `json:"rules"`
	} `json:"verbs"`
}

// LoadJSON decodes the JSON table form: {"prefix_trg": ..., "verbs":
// [{"verb": "map", "rules": [...]}, ...]}. Rule forms match LoadYAML. The
// returned table is already validated.
func LoadJSON(data []byte) (*Table, error) {
	var raw tableJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	t := &Table{Name: raw.Name, PrefixTrg: raw.PrefixTrg}
	switch ps := raw.PrefixSrc.(type) {
	case nil:
	case string:
		t.PrefixSrc = []string{ps}
	case []any:
		for _, p := range ps {
			s, ok := p.(string)
			if !ok {
				return nil, fmt.Errorf("config: prefix_src entries must be strings")
			}
			t.PrefixSrc = append(t.PrefixSrc, s)
		}
	default:
		return nil, fmt.Errorf("config: prefix_src must be a string or string list")
	}
	for _, v := range raw.Verbs {
		entry, err := entryFromRaw(Verb(v.Verb), v.Rules)
		if err != nil {
			return nil, err
		}
		t.Entries = append(t.Entries, entry)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func entryFromRaw(v Verb, raw []any) (Entry, error) {
	e := Entry{Verb: v, Rules: make([]rule.Rule, 0, len(raw))}
	for i, rv := range raw {
		r, err := ruleFromRaw(v, rv)
		if err != nil {
			return Entry{}, fmt.Errorf("%w (verb %s, rule %d)", err, v, i)
		}
		e.Rules = append(e.Rules, r)
	}
	return e, nil
}

// ruleFromRaw maps one decoded rule document onto the closed shape set.
func ruleFromRaw(v Verb, rv any) (rule.Rule, error) {
	switch rn := rv.(type) {
	case string:
		return rule.Key(rn), nil
	case []any:
		if len(rn) != 2 {
			return rule.Rule{}, fmt.Errorf("%w: sequence rule needs exactly 2 elements", ErrUnsupportedShape)
		}
		trg, ok := rn[0].(string)
		if !ok {
			return rule.Rule{}, fmt.Errorf("%w: sequence rule target must be a string", ErrUnsupportedShape)
		}
		switch src := rn[1].(type) {
		case string:
			if v == VerbUse {
				return rule.Use(trg, src), nil
			}
			return rule.Rename(trg, src), nil
		case []any:
			srcs, err := stringList(src)
			if err != nil {
				return rule.Rule{}, err
			}
			return rule.Gather(trg, srcs...), nil
		default:
			if v == VerbUse {
				return rule.Use(trg, src), nil
			}
			return rule.Rule{}, fmt.Errorf("%w: sequence rule source must be a string or string list", ErrUnsupportedShape)
		}
	case map[string]any:
		return ruleFromMapping(v, rn)
	default:
		return rule.Rule{}, ErrUnsupportedShape
	}
}

func ruleFromMapping(v Verb, m map[string]any) (rule.Rule, error) {
	trg, ok := m["trg"].(string)
	if !ok {
		return rule.Rule{}, fmt.Errorf("%w: mapping rule without trg", ErrUnsupportedShape)
	}

	if lit, ok := m["value"]; ok {
		if uname, hasUnit := m["unit"]; hasUnit {
			u, err := parseUnit(uname)
			if err != nil {
				return rule.Rule{}, err
			}
			f, ok := toFloat(lit)
			if !ok {
				return rule.Rule{}, fmt.Errorf("%w: unit-bearing literal must be numeric", ErrUnsupportedShape)
			}
			return rule.Use(trg, unit.Scalar(f, u)), nil
		}
		return rule.Use(trg, lit), nil
	}

	if tz, ok := m["tz"].(string); ok {
		src, ok := m["src"].(string)
		if !ok {
			return rule.Rule{}, fmt.Errorf("%w: tz rule needs a string src", ErrUnsupportedShape)
		}
		return rule.TimestampIn(trg, src, tz), nil
	}

	var trgUnit, srcUnit unit.Unit
	if uname, ok := m["unit"]; ok {
		u, err := parseUnit(uname)
		if err != nil {
			return rule.Rule{}, err
		}
		trgUnit = u
	}
	if uname, ok := m["src_unit"]; ok {
		u, err := parseUnit(uname)
		if err != nil {
			return rule.Rule{}, err
		}
		srcUnit = u
	}

	switch src := m["src"].(type) {
	case nil:
		if !trgUnit.IsZero() {
			return rule.Rule{}, fmt.Errorf("%w: unit rule without src", ErrUnsupportedShape)
		}
		return rule.Key(trg), nil
	case string:
		switch {
		case trgUnit.IsZero():
			return rule.Rename(trg, src), nil
		case srcUnit.IsZero():
			return rule.Convert(trg, trgUnit, src), nil
		default:
			return rule.ConvertFrom(trg, trgUnit, src, srcUnit), nil
		}
	case []any:
		srcs, err := stringList(src)
		if err != nil {
			return rule.Rule{}, err
		}
		switch {
		case trgUnit.IsZero():
			return rule.Gather(trg, srcs...), nil
		case srcUnit.IsZero():
			return rule.ConvertList(trg, trgUnit, srcs...), nil
		default:
			return rule.ConvertListFrom(trg, trgUnit, srcUnit, srcs...), nil
		}
	default:
		return rule.Rule{}, fmt.Errorf("%w: src must be a string or string list", ErrUnsupportedShape)
	}
}

func parseUnit(v any) (unit.Unit, error) {
	name, ok := v.(string)
	if !ok {
		return unit.Unit{}, fmt.Errorf("%w: unit must be a string", ErrUnsupportedShape)
	}
	u, err := unit.Parse(name)
	if err != nil {
		return unit.Unit{}, fmt.Errorf("%w: %v", ErrUnsupportedShape, err)
	}
	return u, nil
}

func stringList(vals []any) ([]string, error) {
	out := make([]string, len(vals))
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w: source list elements must be strings", ErrUnsupportedShape)
		}
		out[i] = s
	}
	return out, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
