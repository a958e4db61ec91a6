package flatmeta_test

import (
	"testing"

	"github.com/nxharvest/nxmap/flatmeta"
	"github.com/nxharvest/nxmap/unit"
)

func TestFromJSON(t *testing.T) {
	doc := `{
	  "System/SystemType": "Apreo",
	  "EBeam/HV": {"value": 30000, "unit": "volt"},
	  "Stage/Position": {"value": [1.0, 2.0, 3.0], "unit": "micrometer"},
	  "Scan/Line": 512,
	  "Beam/On": true,
	  "Detectors/Gains": [1.5, 2.5]
	}`
	md, err := flatmeta.FromJSON([]byte(doc))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if v := md["System/SystemType"]; v != "Apreo" {
		t.Fatalf("unexpected string %v", v)
	}
	q, ok := md["EBeam/HV"].(unit.Quantity)
	if !ok || q.Float() != 30000 || q.Unit().String() != "volt" {
		t.Fatalf("unexpected quantity %v", md["EBeam/HV"])
	}
	vec, ok := md["Stage/Position"].(unit.Quantity)
	if !ok || !vec.IsVector() || len(vec.Floats()) != 3 {
		t.Fatalf("unexpected vector quantity %v", md["Stage/Position"])
	}
	if v := md["Scan/Line"]; v != 512.0 {
		t.Fatalf("numbers should decode to float64, got %T", v)
	}
	if gains, ok := md["Detectors/Gains"].([]float64); !ok || len(gains) != 2 {
		t.Fatalf("unexpected array %v", md["Detectors/Gains"])
	}
}

func TestFromJSON_RejectsUnknownNesting(t *testing.T) {
	if _, err := flatmeta.FromJSON([]byte(`{"a": {"b": 1}}`)); err == nil {
		t.Fatalf("nested objects outside the quantity convention must fail")
	}
	if _, err := flatmeta.FromJSON([]byte(`{"a": {"value": 1, "unit": "wibble"}}`)); err == nil {
		t.Fatalf("unknown units must fail")
	}
}

func TestStringToNumber(t *testing.T) {
	if v := flatmeta.StringToNumber("30000"); v != int64(30000) {
		t.Fatalf("expected int64, got %T %v", v, v)
	}
	if v := flatmeta.StringToNumber("1.5"); v != 1.5 {
		t.Fatalf("expected float64, got %T %v", v, v)
	}
	if v := flatmeta.StringToNumber("Apreo"); v != "Apreo" {
		t.Fatalf("non-numeric strings must pass through, got %v", v)
	}
}
