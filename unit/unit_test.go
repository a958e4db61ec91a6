package unit_test

import (
	"math"
	"testing"

	"github.com/nxharvest/nxmap/unit"
)

func TestParse_KnownUnits(t *testing.T) {
	for _, name := range []string{"meter", "micrometer", "second", "volt", "kilovolt", "radian", "degree", "ampere"} {
		if _, err := unit.Parse(name); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
	}
}

func TestParse_Unknown(t *testing.T) {
	if _, err := unit.Parse("wibble"); err == nil {
		t.Fatalf("expected error for unknown unit")
	}
}

func TestSpecialCategories(t *testing.T) {
	for _, u := range []unit.Unit{unit.Unitless, unit.Dimensionless, unit.Any} {
		if !u.IsSpecial() {
			t.Fatalf("%s should be special", u)
		}
	}
	if unit.Must("meter").IsSpecial() {
		t.Fatalf("meter must not be special")
	}
	if (unit.Unit{}).IsSpecial() {
		t.Fatalf("the zero unit must not be special")
	}
}

func TestQuantityTo_Scalar(t *testing.T) {
	q := unit.Scalar(30, unit.Must("kilovolt"))
	got, err := q.To(unit.Must("volt"))
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if math.Abs(got.Float()-30000) > 1e-6 {
		t.Fatalf("expected 30000 volt, got %v", got.Float())
	}
	if got.Unit().String() != "volt" {
		t.Fatalf("expected volt, got %s", got.Unit())
	}
}

func TestQuantityTo_DegreesFromRadians(t *testing.T) {
	q := unit.Scalar(math.Pi, unit.Must("radian"))
	got, err := q.To(unit.Must("degree"))
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if math.Abs(got.Float()-180) > 1e-9 {
		t.Fatalf("expected 180 degree, got %v", got.Float())
	}
}

func TestQuantityTo_Vector(t *testing.T) {
	q := unit.Vector([]float64{1, 2, 3}, unit.Must("micrometer"))
	got, err := q.To(unit.Must("meter"))
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	want := []float64{1e-6, 2e-6, 3e-6}
	for i, f := range got.Floats() {
		if math.Abs(f-want[i]) > 1e-18 {
			t.Fatalf("element %d: got %v want %v", i, f, want[i])
		}
	}
}

func TestQuantityTo_SameUnitIsIdentity(t *testing.T) {
	q := unit.Scalar(1.25, unit.Must("meter"))
	got, err := q.To(unit.Must("meter"))
	if err != nil || got.Float() != 1.25 {
		t.Fatalf("identity conversion failed: %v err=%v", got, err)
	}
}

func TestQuantityTo_Incompatible(t *testing.T) {
	q := unit.Scalar(1, unit.Must("volt"))
	if _, err := q.To(unit.Must("meter")); err == nil {
		t.Fatalf("expected incompatible conversion to fail")
	}
}

func TestQuantityTo_SpecialRefusesConversion(t *testing.T) {
	q := unit.Scalar(1, unit.Dimensionless)
	if _, err := q.To(unit.Must("meter")); err == nil {
		t.Fatalf("expected special category conversion to fail")
	}
}
