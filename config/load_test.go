package config_test

import (
	"errors"
	"testing"

	"github.com/nxharvest/nxmap/config"
	"github.com/nxharvest/nxmap/rule"
)

const sampleYAML = `
name: tescan_various_dynamic
prefix_trg: /ENTRY[entry*]/measurement/EVENT_DATA_EM[event_data_em*]
prefix_src: ""
use:
  - ["FABRICATION[fabrication]/vendor", TESCAN]
map:
  - Magnification
  - ["FABRICATION[fabrication]/model", Device]
map_to_f8:
  - {trg: working_distance, unit: centimeter, src: WD, src_unit: meter}
  - {trg: position, unit: meter, src: [Stage/X, Stage/Y, Stage/Z]}
unix_to_iso8601:
  - {trg: start_time, src: Time, tz: Europe/Berlin}
join_str:
  - [model, [Class, Model]]
`

func TestLoadYAML_VerbOrderAndShapes(t *testing.T) {
	tbl, err := config.LoadYAML([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if tbl.Name != "tescan_various_dynamic" {
		t.Fatalf("unexpected name %q", tbl.Name)
	}
	if len(tbl.PrefixSrc) != 1 || tbl.PrefixSrc[0] != "" {
		t.Fatalf("unexpected prefix_src %v", tbl.PrefixSrc)
	}

	wantVerbs := []config.Verb{"use", "map", "map_to_f8", "unix_to_iso8601", "join_str"}
	if len(tbl.Entries) != len(wantVerbs) {
		t.Fatalf("expected %d verbs, got %d", len(wantVerbs), len(tbl.Entries))
	}
	for i, v := range wantVerbs {
		if tbl.Entries[i].Verb != v {
			t.Fatalf("verb %d: got %s want %s (document order must be preserved)", i, tbl.Entries[i].Verb, v)
		}
	}

	mapRules := tbl.Entries[1].Rules
	if mapRules[0].Shape() != rule.SingleKey || mapRules[1].Shape() != rule.RenamePair {
		t.Fatalf("unexpected map shapes %s %s", mapRules[0].Shape(), mapRules[1].Shape())
	}
	f8 := tbl.Entries[2].Rules
	if f8[0].Shape() != rule.UnitScalarWithSrcUnit {
		t.Fatalf("expected unit_scalar_with_src_unit, got %s", f8[0].Shape())
	}
	if f8[0].TrgUnit().String() != "centimeter" || f8[0].SrcUnit().String() != "meter" {
		t.Fatalf("unexpected units %s %s", f8[0].TrgUnit(), f8[0].SrcUnit())
	}
	if f8[1].Shape() != rule.UnitList || len(f8[1].Srcs()) != 3 {
		t.Fatalf("expected unit_list of 3, got %s %v", f8[1].Shape(), f8[1].Srcs())
	}
	if tz := tbl.Entries[3].Rules[0].TZ(); tz != "Europe/Berlin" {
		t.Fatalf("unexpected timezone %q", tz)
	}
}

func TestLoadYAML_LegacyPrefixKey(t *testing.T) {
	tbl, err := config.LoadYAML([]byte("prefix: /ENTRY[entry*]\nmap:\n  - key\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if tbl.PrefixTrg != "/ENTRY[entry*]" {
		t.Fatalf("legacy prefix key not honored: %q", tbl.PrefixTrg)
	}
}

func TestLoadYAML_MissingPrefixTrg(t *testing.T) {
	_, err := config.LoadYAML([]byte("map:\n  - key\n"))
	if !errors.Is(err, config.ErrMissingPrefix) {
		t.Fatalf("expected ErrMissingPrefix, got %v", err)
	}
}

func TestLoadYAML_UnknownVerb(t *testing.T) {
	_, err := config.LoadYAML([]byte("prefix_trg: /a\nfrobnicate:\n  - key\n"))
	if !errors.Is(err, config.ErrUnknownVerb) {
		t.Fatalf("expected ErrUnknownVerb, got %v", err)
	}
}

func TestLoadYAML_UnsupportedShape(t *testing.T) {
	docs := []string{
		"prefix_trg: /a\nmap:\n  - [a, b, c]\n",          // 3-element sequence
		"prefix_trg: /a\nmap:\n  - {src: b}\n",           // mapping without trg
		"prefix_trg: /a\nmap:\n  - {trg: a, unit: m}\n",  // unit without src
		"prefix_trg: /a\njoin_str:\n  - [a, b]\n",        // join needs a source list
		"prefix_trg: /a\nuse:\n  - key\n",                // use needs a literal
		"prefix_trg: /a\nmap:\n  - {trg: a, value: b}\n", // literal outside use
	}
	for _, doc := range docs {
		if _, err := config.LoadYAML([]byte(doc)); !errors.Is(err, config.ErrUnsupportedShape) {
			t.Fatalf("expected ErrUnsupportedShape for %q, got %v", doc, err)
		}
	}
}

func TestLoadYAML_UnknownUnit(t *testing.T) {
	_, err := config.LoadYAML([]byte("prefix_trg: /a\nmap:\n  - {trg: a, unit: wibble, src: b}\n"))
	if err == nil {
		t.Fatalf("expected error for unknown unit")
	}
}

func TestLoadJSON(t *testing.T) {
	doc := `{
	  "name": "zeiss",
	  "prefix_trg": "/ENTRY[entry*]",
	  "prefix_src": ["", "AP_"],
	  "verbs": [
	    {"verb": "use", "rules": [["vendor", "Zeiss"]]},
	    {"verb": "map_to_f8", "rules": [{"trg": "wd", "unit": "meter", "src": "AP_WD"}]}
	  ]
	}`
	tbl, err := config.LoadJSON([]byte(doc))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(tbl.PrefixSrc) != 2 || tbl.PrefixSrc[1] != "AP_" {
		t.Fatalf("unexpected prefix_src %v", tbl.PrefixSrc)
	}
	if lit, ok := tbl.Entries[0].Rules[0].Literal(); !ok || lit != "Zeiss" {
		t.Fatalf("expected use literal Zeiss, got %v", lit)
	}
	if tbl.Entries[1].Rules[0].Shape() != rule.UnitScalar {
		t.Fatalf("unexpected shape %s", tbl.Entries[1].Rules[0].Shape())
	}
}

func TestValidate_DtypeTags(t *testing.T) {
	tbl := &config.Table{PrefixTrg: "/a", Entries: []config.Entry{{Verb: "map_to_f128"}}}
	if err := tbl.Validate(); !errors.Is(err, config.ErrUnknownVerb) {
		t.Fatalf("expected ErrUnknownVerb for bad dtype tag, got %v", err)
	}
	tbl = &config.Table{PrefixTrg: "/a", Entries: []config.Entry{{Verb: "map_to_u2"}}}
	if err := tbl.Validate(); err != nil {
		t.Fatalf("map_to_u2 should validate, got %v", err)
	}
}

func TestSrcPrefixes_Default(t *testing.T) {
	tbl := &config.Table{PrefixTrg: "/a"}
	ps := tbl.SrcPrefixes()
	if len(ps) != 1 || ps[0] != "" {
		t.Fatalf("expected singleton empty prefix, got %v", ps)
	}
}
