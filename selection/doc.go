// Package selection expands a requested tag set into the effective
// set of tag names a compilation must include.
//
// The requested names are the tags a user picked; the effective set is
// their transitive closure over the requirement graph, plus the
// universal sentinel tag when the graph defines one. The closure is
// computed breadth first with a visited gate, so requirement cycles
// terminate and duplicated requirement entries are harmless.
//
// Names that do not resolve to a defined tag, whether requested
// directly or reached through a requirement, are collected in
// Result.Unknown rather than failing the run. Callers decide whether
// unknown names are an error; the compiler simply ignores names it has
// no tag for.
//
// The package works on plain names so callers can build a DepGraph
// from any source. The root utag package adapts a parsed script's
// registry; tooling can just as well feed a graph loaded from a
// report.
package selection
