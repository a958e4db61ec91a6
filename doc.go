// Package nxmap harmonizes heterogeneous, vendor-specific instrument
// metadata into a single canonical hierarchical template (a NeXus-style
// path→value mapping). Format-specific decoders flatten their metadata into
// a flatmeta.Dict; declarative per-vendor tables (config.Table) describe how
// source keys map onto target template paths; the Engine interprets those
// tables and populates the Template.
//
// The package provides:
//
//   - An Engine that interprets declarative mapping tables verb by verb
//     (use, map, map_to_<dtype>, unix_to_iso8601, sha256, join_str)
//   - A stable error model via Issues (path, code, message) for
//     configuration-authoring errors; missing source data never errors,
//     the offending rule is skipped with a debug log line
//   - Unit-aware value coercion through unit.Quantity, with a companion
//     "/@units" attribute emitted for non-special units
//   - Variadic target paths whose "*" markers are filled from caller-supplied
//     instance identifiers
//
// Design policy:
//
//   - Keep the interpreting engine in the root package; rule shapes live
//     under rule/, unit handling under unit/, table construction and loading
//     under config/, source metadata under flatmeta/, the CLI under
//     cmd/nxmap.
//   - Tables are pure data, validated when constructed or loaded, never
//     mutated at runtime.
//   - The Template is mutated single-threaded only; repeated writes to the
//     same resolved path are last-write-wins in caller order.
//
// Typical usage:
//
//	tpl := nxmap.Template{}
//	eng := nxmap.New(logger)
//	err := eng.Apply(vendors.TFSVariousStatic, md, []int{1}, tpl)
//	err = eng.Apply(vendors.TFSOpticsDynamic, md, []int{1, 1}, tpl)
package nxmap
