package nxmap

import (
	"go.uber.org/zap"

	"github.com/nxharvest/nxmap/config"
	"github.com/nxharvest/nxmap/flatmeta"
)

// Engine interprets mapping tables against flat source metadata and
// populates a Template. It holds no per-run state; one Engine serves any
// number of Apply calls.
type Engine struct {
	log *zap.SugaredLogger
}

// New builds an Engine. A nil logger disables logging.
func New(log *zap.SugaredLogger) *Engine {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Engine{log: log}
}

// Apply runs one table against md and writes the results into tpl. ids fill
// the "*" markers of variadic target paths left to right.
//
// Verbs execute in table order, rules in list order, once per source
// prefix. Across multiple Apply calls the template is last-write-wins in
// call order; callers sequence tables from generic to specific.
//
// Errors are configuration-authoring errors (Issues) or I/O failures from
// the checksum verb; missing source data only ever skips individual rules.
func (e *Engine) Apply(t *config.Table, md flatmeta.Dict, ids []int, tpl Template) error {
	if t == nil {
		return issue("", CodeMissingPrefix, "nil table", nil)
	}
	if t.PrefixTrg == "" {
		return issue(t.Name, CodeMissingPrefix, "table "+t.Name+" lacks prefix_trg", nil)
	}
	for _, prefixSrc := range t.SrcPrefixes() {
		for _, entry := range t.Entries {
			if err := e.applyVerb(entry, md, prefixSrc, t, ids, tpl); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *Engine) applyVerb(entry config.Entry, md flatmeta.Dict, prefixSrc string, t *config.Table, ids []int, tpl Template) error {
	switch entry.Verb {
	case config.VerbUse:
		return e.useFunctor(entry.Rules, t.PrefixTrg, ids, tpl)
	case config.VerbMap:
		return e.mapFunctor(entry.Rules, md, prefixSrc, t.PrefixTrg, ids, tpl, "")
	case config.VerbUnixToISO8601:
		return e.timestampFunctor(entry.Rules, md, prefixSrc, t.PrefixTrg, ids, tpl)
	case config.VerbSHA256:
		return e.checksumFunctor(entry.Rules, md, prefixSrc, t.PrefixTrg, ids, tpl)
	case config.VerbJoinStr:
		return e.joinFunctor(entry.Rules, md, prefixSrc, t.PrefixTrg, ids, tpl)
	}
	if tag, ok := entry.Verb.DType(); ok {
		if _, known := config.DTypes[tag]; !known {
			return issue(t.Name, CodeUnknownDType, "unknown dtype tag "+tag+" in verb "+string(entry.Verb), nil)
		}
		return e.mapFunctor(entry.Rules, md, prefixSrc, t.PrefixTrg, ids, tpl, tag)
	}
	return issue(t.Name, CodeUnknownVerb, "unknown verb "+string(entry.Verb)+" in table "+t.Name, nil)
}

// Apply is Engine.Apply with logging disabled, for callers that do not
// carry a logger.
func Apply(t *config.Table, md flatmeta.Dict, ids []int, tpl Template) error {
	return New(nil).Apply(t, md, ids, tpl)
}
