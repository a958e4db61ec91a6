package unit

import (
	"fmt"

	units "github.com/bcicen/go-units"
)

// Quantity is a numeric magnitude paired with a Unit. The magnitude is
// either a scalar or a fixed-size vector; both convert elementwise.
type Quantity struct {
	scalar float64
	vector []float64
	unit   Unit
	isVec  bool
}

// Scalar builds a scalar quantity.
func Scalar(v float64, u Unit) Quantity {
	return Quantity{scalar: v, unit: u}
}

// Vector builds a vector quantity. The slice is not copied.
func Vector(v []float64, u Unit) Quantity {
	return Quantity{vector: v, unit: u, isVec: true}
}

// Unit returns the unit the magnitude is expressed in.
func (q Quantity) Unit() Unit { return q.unit }

// IsVector reports whether the magnitude is a vector.
func (q Quantity) IsVector() bool { return q.isVec }

// Float returns the scalar magnitude.
func (q Quantity) Float() float64 { return q.scalar }

// Floats returns the vector magnitude.
func (q Quantity) Floats() []float64 { return q.vector }

// Magnitude returns the magnitude as float64 or []float64.
func (q Quantity) Magnitude() any {
	if q.isVec {
		return q.vector
	}
	return q.scalar
}

// To converts the quantity into target. Conversion between a special NeXus
// category and a real unit, or between dimensionally incompatible units,
// fails with the underlying registry error.
func (q Quantity) To(target Unit) (Quantity, error) {
	if target.IsZero() || q.unit.equal(target) {
		return q, nil
	}
	if q.unit.IsZero() {
		return Quantity{}, fmt.Errorf("unit: cannot convert unitless magnitude to %s", target)
	}
	if q.unit.IsSpecial() || target.IsSpecial() {
		return Quantity{}, fmt.Errorf("unit: cannot convert between %s and %s", q.unit, target)
	}
	if q.isVec {
		out := make([]float64, len(q.vector))
		for i, v := range q.vector {
			c, err := units.ConvertFloat(v, q.unit.u, target.u)
			if err != nil {
				return Quantity{}, fmt.Errorf("unit: %s -> %s: %w", q.unit, target, err)
			}
			out[i] = c.Float()
		}
		return Vector(out, target), nil
	}
	c, err := units.ConvertFloat(q.scalar, q.unit.u, target.u)
	if err != nil {
		return Quantity{}, fmt.Errorf("unit: %s -> %s: %w", q.unit, target, err)
	}
	return Scalar(c.Float(), target), nil
}

// String renders the quantity for logs and error messages.
func (q Quantity) String() string {
	if q.isVec {
		return fmt.Sprintf("%v %s", q.vector, q.unit)
	}
	return fmt.Sprintf("%v %s", q.scalar, q.unit)
}
