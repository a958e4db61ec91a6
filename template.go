package nxmap

import (
	"sort"

	json "github.com/goccy/go-json"

	"github.com/nxharvest/nxmap/unit"
)

// Template is the accumulating path→value mapping that eventually becomes a
// NeXus/HDF5 file. One Template is created per conversion run and threaded
// by reference through every Engine.Apply call; entries written later win
// over earlier entries at the same resolved path. That last-write-wins
// behavior is deliberate: later, more specific tables refine earlier ones.
//
// Values are strings, bools, numeric scalars, numeric slices, or unit
// canonical names under "<path>/@units" siblings.
type Template map[string]any

// Set writes v at path. Writing over an existing entry replaces it.
func (t Template) Set(path string, v any) {
	t[path] = v
}

// Keys returns all written paths in sorted order.
func (t Template) Keys() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Quantity reconstructs a unit-bearing scalar from path and its "/@units"
// sibling. ok is false when the path is absent, non-numeric, or unitless.
func (t Template) Quantity(path string) (unit.Quantity, bool) {
	v, present := t[path]
	if !present {
		return unit.Quantity{}, false
	}
	us, present := t[path+"/@units"]
	if !present {
		return unit.Quantity{}, false
	}
	name, isStr := us.(string)
	if !isStr {
		return unit.Quantity{}, false
	}
	u, err := unit.Parse(name)
	if err != nil {
		return unit.Quantity{}, false
	}
	switch mag := v.(type) {
	case float64:
		return unit.Scalar(mag, u), true
	case []float64:
		return unit.Vector(mag, u), true
	default:
		f, ok := asFloat(v)
		if !ok {
			return unit.Quantity{}, false
		}
		return unit.Scalar(f, u), true
	}
}

// MarshalJSON renders the template with deterministically ordered keys so
// dumps are diffable.
func (t Template) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	for i, k := range t.Keys() {
		if i > 0 {
			buf = append(buf, ',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(t[k])
		if err != nil {
			return nil, err
		}
		buf = append(buf, kb...)
		buf = append(buf, ':')
		buf = append(buf, vb...)
	}
	return append(buf, '}'), nil
}
