package nxmap

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/nxharvest/nxmap/flatmeta"
	"github.com/nxharvest/nxmap/rule"
	"github.com/nxharvest/nxmap/unit"
)

// lookup reads prefix+key from the source metadata. A present but
// empty-string value counts as absent: incomplete vendor metadata is the
// steady state and must never abort a conversion.
func lookup(md flatmeta.Dict, prefix, key string) (any, bool) {
	v, ok := md[prefix+key]
	if !ok {
		return nil, false
	}
	if s, isStr := v.(string); isStr && s == "" {
		return nil, false
	}
	return v, true
}

// useFunctor injects literals embedded in the table itself; nothing is
// looked up in the source metadata.
func (e *Engine) useFunctor(rules []rule.Rule, prefixTrg string, ids []int, tpl Template) error {
	for _, r := range rules {
		lit, ok := r.Literal()
		if !ok {
			return issue(prefixTrg+"/"+r.Trg(), CodeUnsupportedShape, "use requires a (target, literal) rule", nil)
		}
		trg, ok := ResolvePath(prefixTrg+"/"+r.Trg(), ids)
		if !ok {
			e.log.Debugw("use: unresolvable target path", "trg", r.Trg())
			continue
		}
		if err := setValue(tpl, trg, lit, ""); err != nil {
			return err
		}
	}
	return nil
}

// mapFunctor executes the map verb and its typed variants. dtype is the
// element tag taken from the verb name, "" for plain map.
func (e *Engine) mapFunctor(rules []rule.Rule, md flatmeta.Dict, prefixSrc, prefixTrg string, ids []int, tpl Template, dtype string) error {
	for _, r := range rules {
		trg, ok := ResolvePath(prefixTrg+"/"+r.Trg(), ids)
		if !ok {
			e.log.Debugw("map: unresolvable target path", "trg", r.Trg())
			continue
		}
		switch r.Shape() {
		case rule.SingleKey, rule.RenamePair:
			v, ok := lookup(md, prefixSrc, r.Src())
			if !ok {
				e.log.Debugw("map: source absent", "src", r.Src())
				continue
			}
			if err := setValue(tpl, trg, v, dtype); err != nil {
				return err
			}

		case rule.RenameList:
			v, ok := gather(md, prefixSrc, r.Srcs())
			if !ok {
				e.log.Debugw("map: source list incomplete", "trg", r.Trg())
				continue
			}
			if err := setValue(tpl, trg, v, dtype); err != nil {
				return err
			}

		case rule.UnitScalar, rule.UnitScalarWithSrcUnit:
			v, ok := lookup(md, prefixSrc, r.Src())
			if !ok {
				e.log.Debugw("map: source absent", "src", r.Src())
				continue
			}
			q, err := asQuantity(v, r)
			if err != nil {
				return issue(trg, CodeUnitMismatch, err.Error(), err)
			}
			if err := setValue(tpl, trg, q, dtype); err != nil {
				return err
			}

		case rule.UnitList, rule.UnitListWithSrcUnit:
			q, ok, err := gatherQuantity(md, prefixSrc, r)
			if err != nil {
				return issue(trg, CodeUnitMismatch, err.Error(), err)
			}
			if !ok {
				e.log.Debugw("map: source list incomplete", "trg", r.Trg())
				continue
			}
			if err := setValue(tpl, trg, q, dtype); err != nil {
				return err
			}

		default:
			return issue(trg, CodeUnsupportedShape, "rule shape "+r.Shape().String()+" not executable", nil)
		}
	}
	return nil
}

// asQuantity normalizes one scalar source value against the rule's units.
// A value that already carries a unit converts to the target unit. A bare
// number is tagged with the rule's source unit when declared, otherwise it
// is assumed to already be in the target unit.
func asQuantity(v any, r rule.Rule) (unit.Quantity, error) {
	if q, ok := v.(unit.Quantity); ok {
		return q.To(r.TrgUnit())
	}
	f, ok := asFloat(v)
	if !ok {
		return unit.Quantity{}, fmt.Errorf("source value for %s is neither quantity nor number", r.Trg())
	}
	if r.Shape() == rule.UnitScalarWithSrcUnit || r.Shape() == rule.UnitListWithSrcUnit {
		return unit.Scalar(f, r.SrcUnit()).To(r.TrgUnit())
	}
	return unit.Scalar(f, r.TrgUnit()), nil
}

// gather collects a RenameList rule's values: all keys present, all of one
// kind. Strings combine to []string, numbers to []float64; anything mixed
// reports not-ok.
func gather(md flatmeta.Dict, prefixSrc string, keys []string) (any, bool) {
	if len(keys) == 0 {
		return nil, false
	}
	vals := make([]any, len(keys))
	for i, k := range keys {
		v, ok := lookup(md, prefixSrc, k)
		if !ok {
			return nil, false
		}
		vals[i] = v
	}
	if _, isStr := vals[0].(string); isStr {
		out := make([]string, len(vals))
		for i, v := range vals {
			s, ok := v.(string)
			if !ok {
				return nil, false
			}
			out[i] = s
		}
		return out, true
	}
	out := make([]float64, len(vals))
	for i, v := range vals {
		f, ok := asFloat(v)
		if !ok {
			return nil, false
		}
		out[i] = f
	}
	return out, true
}

// gatherQuantity collects a unit-list rule into one vector quantity
// expressed in the rule's target unit.
func gatherQuantity(md flatmeta.Dict, prefixSrc string, r rule.Rule) (unit.Quantity, bool, error) {
	keys := r.Srcs()
	if len(keys) == 0 {
		return unit.Quantity{}, false, nil
	}
	out := make([]float64, len(keys))
	for i, k := range keys {
		v, ok := lookup(md, prefixSrc, k)
		if !ok {
			return unit.Quantity{}, false, nil
		}
		q, err := asQuantity(v, r)
		if err != nil {
			return unit.Quantity{}, false, err
		}
		if q.IsVector() {
			return unit.Quantity{}, false, nil
		}
		out[i] = q.Float()
	}
	return unit.Vector(out, r.TrgUnit()), true, nil
}

// iso8601 is Python's datetime.isoformat layout: numeric offset, no "Z".
const iso8601 = "2006-01-02T15:04:05-07:00"

// timestampFunctor converts POSIX timestamps to ISO-8601 strings in the
// rule's timezone, defaulting to UTC.
func (e *Engine) timestampFunctor(rules []rule.Rule, md flatmeta.Dict, prefixSrc, prefixTrg string, ids []int, tpl Template) error {
	for _, r := range rules {
		v, ok := lookup(md, prefixSrc, r.Src())
		if !ok {
			e.log.Debugw("unix_to_iso8601: source absent", "src", r.Src())
			continue
		}
		tz := r.TZ()
		if tz == "" {
			tz = "UTC"
		}
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return issue(prefixTrg+"/"+r.Trg(), CodeUnknownTimezone, tz+" is not an IANA timezone name", err)
		}
		sec, err := posixSeconds(v)
		if err != nil {
			return issue(prefixTrg+"/"+r.Trg(), CodeInvalidType, "source value is not a POSIX timestamp", err)
		}
		trg, ok := ResolvePath(prefixTrg+"/"+r.Trg(), ids)
		if !ok {
			e.log.Debugw("unix_to_iso8601: unresolvable target path", "trg", r.Trg())
			continue
		}
		tpl.Set(trg, time.Unix(sec, 0).In(loc).Format(iso8601))
	}
	return nil
}

func posixSeconds(v any) (int64, error) {
	if s, ok := v.(string); ok {
		return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	}
	f, ok := asFloat(v)
	if !ok {
		return 0, fmt.Errorf("unsupported timestamp type %T", v)
	}
	return int64(f), nil
}

// checksumChunk is the streaming read size for file hashing.
const checksumChunk = 4096

// checksumFunctor fingerprints the file a source key points at and writes
// the checksum/type/path/algorithm quartet under the resolved target. A
// missing file degrades to a warning: the referenced file may legitimately
// be absent in the conversion environment.
func (e *Engine) checksumFunctor(rules []rule.Rule, md flatmeta.Dict, prefixSrc, prefixTrg string, ids []int, tpl Template) error {
	for _, r := range rules {
		v, ok := lookup(md, prefixSrc, r.Src())
		if !ok {
			e.log.Debugw("sha256: source absent", "src", r.Src())
			continue
		}
		path, ok := v.(string)
		if !ok {
			e.log.Debugw("sha256: source value is not a file path", "src", r.Src())
			continue
		}
		trg, ok := ResolvePath(prefixTrg+"/"+r.Trg(), ids)
		if !ok {
			e.log.Debugw("sha256: unresolvable target path", "trg", r.Trg())
			continue
		}
		sum, err := fileSHA256(path)
		if err != nil {
			if os.IsNotExist(err) {
				e.log.Warnw("sha256: referenced file absent, skipping", "path", path)
				continue
			}
			return fmt.Errorf("nxmap: sha256 of %s: %w", path, err)
		}
		base := rchop(trg, "checksum")
		tpl.Set(base+"checksum", sum)
		tpl.Set(base+"type", "file")
		tpl.Set(base+"path", path)
		tpl.Set(base+"algorithm", "sha256")
	}
	return nil
}

func fileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := sha256.New()
	buf := make([]byte, checksumChunk)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// rchop drops a trailing suffix when present.
func rchop(s, suffix string) string {
	if suffix != "" && strings.HasSuffix(s, suffix) {
		return s[:len(s)-len(suffix)]
	}
	return s
}

// joinFunctor joins the values of all listed source keys with a single
// space. All-or-nothing: one absent key skips the whole rule.
func (e *Engine) joinFunctor(rules []rule.Rule, md flatmeta.Dict, prefixSrc, prefixTrg string, ids []int, tpl Template) error {
	for _, r := range rules {
		keys := r.Srcs()
		if len(keys) == 0 {
			continue
		}
		parts := make([]string, len(keys))
		complete := true
		for i, k := range keys {
			v, ok := lookup(md, prefixSrc, k)
			if !ok {
				complete = false
				break
			}
			parts[i] = stringify(v)
		}
		if !complete {
			e.log.Debugw("join_str: source list incomplete", "trg", r.Trg())
			continue
		}
		trg, ok := ResolvePath(prefixTrg+"/"+r.Trg(), ids)
		if !ok {
			e.log.Debugw("join_str: unresolvable target path", "trg", r.Trg())
			continue
		}
		tpl.Set(trg, strings.Join(parts, " "))
	}
	return nil
}

func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	if f, ok := asFloat(v); ok {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return fmt.Sprint(v)
}
