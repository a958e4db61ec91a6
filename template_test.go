package nxmap_test

import (
	"strings"
	"testing"

	nxmap "github.com/nxharvest/nxmap"
)

func TestTemplate_KeysSorted(t *testing.T) {
	tpl := nxmap.Template{"/b": 1, "/a": 2, "/c": 3}
	keys := tpl.Keys()
	if strings.Join(keys, ",") != "/a,/b,/c" {
		t.Fatalf("unexpected key order %v", keys)
	}
}

func TestTemplate_MarshalJSONDeterministic(t *testing.T) {
	tpl := nxmap.Template{"/b": "x", "/a": 1.0}
	first, err := tpl.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	second, _ := tpl.MarshalJSON()
	if string(first) != string(second) {
		t.Fatalf("marshal not deterministic: %s vs %s", first, second)
	}
	if string(first) != `{"/a":1,"/b":"x"}` && string(first) != `{"/a":1.0,"/b":"x"}` {
		t.Fatalf("unexpected encoding %s", first)
	}
}

func TestTemplate_QuantityReadback(t *testing.T) {
	tpl := nxmap.Template{}
	tpl.Set("/v", 30.0)
	tpl.Set("/v/@units", "kilovolt")
	q, ok := tpl.Quantity("/v")
	if !ok || q.Float() != 30.0 || q.Unit().String() != "kilovolt" {
		t.Fatalf("unexpected quantity %v ok=%v", q, ok)
	}

	if _, ok := tpl.Quantity("/missing"); ok {
		t.Fatalf("absent path must not read back")
	}
	tpl.Set("/plain", "text")
	if _, ok := tpl.Quantity("/plain"); ok {
		t.Fatalf("unitless entry must not read back as quantity")
	}
}
