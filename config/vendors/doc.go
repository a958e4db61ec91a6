// Package vendors carries the built-in mapping tables for the supported
// tech-partner formats. Tables are plain data; every table here must pass
// config.Table.Validate, which the package test enforces.
//
// Where a vendor leaves a unit undocumented, the table guesses and the
// assumption is written down next to the rule. That provenance ambiguity
// belongs to the table, never to the engine.
package vendors
