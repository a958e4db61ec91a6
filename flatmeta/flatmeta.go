// Package flatmeta holds the flat key→value dictionary a format decoder
// produces by flattening a vendor's hierarchical metadata with
// slash-delimited keys. The engine only reads from it.
package flatmeta

import (
	"fmt"
	"strconv"

	json "github.com/goccy/go-json"

	"github.com/nxharvest/nxmap/unit"
)

// Dict is flat source metadata. Values are strings, bools, numeric scalars,
// numeric slices, or unit.Quantity.
type Dict map[string]any

// Has reports whether key is present.
func (d Dict) Has(key string) bool {
	_, ok := d[key]
	return ok
}

// Get returns the value under key.
func (d Dict) Get(key string) (any, bool) {
	v, ok := d[key]
	return v, ok
}

// FromJSON decodes a flat JSON object into a Dict. Scalars decode to
// string, bool, or float64. A nested object is only accepted in the
// quantity convention {"value": <number or number array>, "unit": <name>}
// and decodes to a unit.Quantity.
func FromJSON(data []byte) (Dict, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("flatmeta: %w", err)
	}
	d := make(Dict, len(raw))
	for k, v := range raw {
		switch tv := v.(type) {
		case map[string]any:
			q, err := quantityFromJSON(k, tv)
			if err != nil {
				return nil, err
			}
			d[k] = q
		case []any:
			vec := make([]float64, len(tv))
			for i, el := range tv {
				f, ok := el.(float64)
				if !ok {
					return nil, fmt.Errorf("flatmeta: key %s: array element %d is not a number", k, i)
				}
				vec[i] = f
			}
			d[k] = vec
		default:
			d[k] = v
		}
	}
	return d, nil
}

func quantityFromJSON(key string, obj map[string]any) (unit.Quantity, error) {
	uv, ok := obj["unit"]
	if !ok {
		return unit.Quantity{}, fmt.Errorf("flatmeta: key %s: nested object without unit field", key)
	}
	uname, ok := uv.(string)
	if !ok {
		return unit.Quantity{}, fmt.Errorf("flatmeta: key %s: unit is not a string", key)
	}
	u, err := unit.Parse(uname)
	if err != nil {
		return unit.Quantity{}, fmt.Errorf("flatmeta: key %s: %w", key, err)
	}
	switch val := obj["value"].(type) {
	case float64:
		return unit.Scalar(val, u), nil
	case []any:
		vec := make([]float64, len(val))
		for i, el := range val {
			f, ok := el.(float64)
			if !ok {
				return unit.Quantity{}, fmt.Errorf("flatmeta: key %s: value element %d is not a number", key, i)
			}
			vec[i] = f
		}
		return unit.Vector(vec, u), nil
	default:
		return unit.Quantity{}, fmt.Errorf("flatmeta: key %s: value must be a number or number array", key)
	}
}

// StringToNumber converts a decoder string to int64 or float64, leaving
// non-numeric strings untouched. Some vendor formats serialize every number
// as text; decoders use this before handing values to the engine.
func StringToNumber(s string) any {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return s
	}
	if f == float64(int64(f)) {
		return int64(f)
	}
	return f
}
