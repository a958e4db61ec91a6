// Package unit provides the quantity type used by the mapping engine: a
// numeric magnitude (scalar or vector) paired with a named physical unit,
// supporting conversion between compatible units. Unit names resolve through
// the go-units registry; units the registry does not ship (and the special
// NeXus categories) are registered once at package init.
package unit

import (
	"fmt"
	"math"

	units "github.com/bcicen/go-units"
)

// Unit is a named physical unit. The zero Unit means "no unit declared".
type Unit struct {
	u     units.Unit
	named bool
}

// Special NeXus unit categories. Values carrying one of these never emit a
// "/@units" attribute.
var (
	Unitless      Unit
	Dimensionless Unit
	Any           Unit
)

func init() {
	Unitless = Unit{registered("nx_unitless", "nx_ul", "nexus"), true}
	Dimensionless = Unit{registered("nx_dimensionless", "nx_dl", "nexus"), true}
	Any = Unit{registered("nx_any", "nx_any", "nexus"), true}

	// Units the vendor tables rely on that the go-units registry may not
	// ship by itself.
	volt := registered("volt", "V", "electric potential")
	registeredRatio("kilovolt", "kV", "electric potential", volt, 1e3)
	registeredRatio("millivolt", "mV", "electric potential", volt, 1e-3)
	ampere := registered("ampere", "A", "electric current")
	registeredRatio("milliampere", "mA", "electric current", ampere, 1e-3)
	registeredRatio("microampere", "µA", "electric current", ampere, 1e-6)
	registeredRatio("nanoampere", "nA", "electric current", ampere, 1e-9)
	radian := registered("radian", "rad", "angle")
	registeredRatio("degree", "deg", "angle", radian, math.Pi/180.0)
	meter := registered("meter", "m", "length")
	registeredRatio("centimeter", "cm", "length", meter, 1e-2)
	registeredRatio("millimeter", "mm", "length", meter, 1e-3)
	registeredRatio("micrometer", "µm", "length", meter, 1e-6)
	registeredRatio("nanometer", "nm", "length", meter, 1e-9)
}

// registered returns the unit under name, defining it when absent.
func registered(name, symbol, quantity string) units.Unit {
	if u, err := units.Find(name); err == nil {
		return u
	}
	return units.NewUnit(name, symbol, units.UnitOptionQuantity(quantity))
}

// registeredRatio is registered plus a ratio conversion against base.
func registeredRatio(name, symbol, quantity string, base units.Unit, ratio float64) units.Unit {
	if u, err := units.Find(name); err == nil {
		return u
	}
	u := units.NewUnit(name, symbol, units.UnitOptionQuantity(quantity))
	units.NewRatioConversion(u, base, ratio)
	return u
}

// Parse resolves a unit by name, symbol, or alias.
func Parse(name string) (Unit, error) {
	u, err := units.Find(name)
	if err != nil {
		return Unit{}, fmt.Errorf("unit: unknown unit %q: %w", name, err)
	}
	return Unit{u, true}, nil
}

// Must is Parse that panics on unknown names. For use in table literals,
// where an unknown unit is an authoring bug caught by the table's own test.
func Must(name string) Unit {
	u, err := Parse(name)
	if err != nil {
		panic(err)
	}
	return u
}

// String returns the canonical unit name, the form written to "/@units".
func (u Unit) String() string {
	if !u.named {
		return ""
	}
	return u.u.Name
}

// IsZero reports whether no unit was declared.
func (u Unit) IsZero() bool { return !u.named }

// IsSpecial reports whether u is one of the special NeXus categories,
// which are excluded from "/@units" emission.
func (u Unit) IsSpecial() bool {
	switch u.u.Name {
	case Unitless.u.Name, Dimensionless.u.Name, Any.u.Name:
		return u.named
	}
	return false
}

func (u Unit) equal(v Unit) bool {
	return u.named == v.named && u.u.Name == v.u.Name
}
