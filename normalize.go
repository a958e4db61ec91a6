package nxmap

import (
	"strings"

	"github.com/nxharvest/nxmap/config"
	"github.com/nxharvest/nxmap/unit"
)

// setValue writes one normalized source value at trg, plus a "/@units"
// sibling when the value carries a non-special unit. No other path is
// touched. dtype "" preserves the source representation; a tag from
// config.DTypes forces the element type.
//
// Strings under a numeric dtype are invalid_type: string→number coercion
// belongs to the decoder, not to the normalizer.
func setValue(tpl Template, trg string, val any, dtype string) error {
	if val == nil {
		return nil
	}
	if s, ok := val.(string); ok && s == "" {
		return nil
	}
	if dtype == "" {
		return setNatural(tpl, trg, val)
	}
	if _, ok := config.DTypes[dtype]; !ok {
		return issue(trg, CodeUnknownDType, "unknown target dtype "+dtype, nil)
	}
	return setCoerced(tpl, trg, val, dtype)
}

func setNatural(tpl Template, trg string, val any) error {
	switch v := val.(type) {
	case string:
		tpl.Set(trg, v)
	case bool:
		tpl.Set(trg, v)
	case []string:
		tpl.Set(trg, strings.Join(v, ", "))
	case unit.Quantity:
		tpl.Set(trg, v.Magnitude())
		setUnits(tpl, trg, v.Unit())
	default:
		if f, ok := asFloat(val); ok {
			tpl.Set(trg, f)
			return nil
		}
		if fs, ok := asFloatSlice(val); ok {
			tpl.Set(trg, fs)
			return nil
		}
		return issue(trg, CodeInvalidType, "unexpected source value type without target dtype", nil)
	}
	return nil
}

func setCoerced(tpl Template, trg string, val any, dtype string) error {
	switch dtype {
	case "str":
		switch v := val.(type) {
		case string:
			tpl.Set(trg, v)
			return nil
		case []string:
			tpl.Set(trg, strings.Join(v, ", "))
			return nil
		}
		return issue(trg, CodeInvalidType, "target dtype str requires a string source", nil)
	case "bool":
		b, err := InterpretBoolean(val)
		if err != nil {
			iss, _ := AsIssues(err)
			return issue(trg, iss[0].Code, iss[0].Message, nil)
		}
		tpl.Set(trg, b)
		return nil
	}

	// numeric dtypes from here on
	switch v := val.(type) {
	case string:
		return issue(trg, CodeInvalidType, "string source under numeric target dtype", nil)
	case bool:
		return issue(trg, CodeInvalidType, "bool source under numeric target dtype", nil)
	case unit.Quantity:
		tpl.Set(trg, coerce(v.Magnitude(), dtype))
		setUnits(tpl, trg, v.Unit())
		return nil
	default:
		if f, ok := asFloat(val); ok {
			tpl.Set(trg, coerce(f, dtype))
			return nil
		}
		if fs, ok := asFloatSlice(val); ok {
			tpl.Set(trg, coerce(fs, dtype))
			return nil
		}
		_ = v
		return issue(trg, CodeInvalidType, "unexpected source value type for numeric target dtype", nil)
	}
}

func setUnits(tpl Template, trg string, u unit.Unit) {
	if u.IsZero() || u.IsSpecial() {
		return
	}
	tpl.Set(trg+"/@units", u.String())
}

// coerce forces a float64 or []float64 magnitude into the requested element
// type. f2 maps to float32: Go has no 16-bit float, the serializer narrows.
func coerce(mag any, dtype string) any {
	if f, ok := mag.(float64); ok {
		switch dtype {
		case "u1":
			return uint8(f)
		case "i1":
			return int8(f)
		case "u2":
			return uint16(f)
		case "i2":
			return int16(f)
		case "f2", "f4":
			return float32(f)
		case "u4":
			return uint32(f)
		case "i4":
			return int32(f)
		case "u8":
			return uint64(f)
		case "i8":
			return int64(f)
		}
		return f
	}
	fs := mag.([]float64)
	switch dtype {
	case "u1":
		return narrow[uint8](fs)
	case "i1":
		return narrow[int8](fs)
	case "u2":
		return narrow[uint16](fs)
	case "i2":
		return narrow[int16](fs)
	case "f2", "f4":
		return narrow[float32](fs)
	case "u4":
		return narrow[uint32](fs)
	case "i4":
		return narrow[int32](fs)
	case "u8":
		return narrow[uint64](fs)
	case "i8":
		return narrow[int64](fs)
	}
	return fs
}

type element interface {
	~uint8 | ~int8 | ~uint16 | ~int16 | ~uint32 | ~int32 | ~uint64 | ~int64 | ~float32 | ~float64
}

func narrow[T element](fs []float64) []T {
	out := make([]T, len(fs))
	for i, f := range fs {
		out[i] = T(f)
	}
	return out
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

func asFloatSlice(v any) ([]float64, bool) {
	switch vs := v.(type) {
	case []float64:
		return vs, true
	case []float32:
		out := make([]float64, len(vs))
		for i, f := range vs {
			out[i] = float64(f)
		}
		return out, true
	case []int64:
		out := make([]float64, len(vs))
		for i, f := range vs {
			out[i] = float64(f)
		}
		return out, true
	case []int:
		out := make([]float64, len(vs))
		for i, f := range vs {
			out[i] = float64(f)
		}
		return out, true
	}
	return nil, false
}
