// Package registry assembles the unified protocol registry consumed by
// documentation and client generators.
//
// Ownership boundary:
// - one-shot assembly of all protocol tables (mandatory + optional Bidi)
// - classification lists (mobile, vendor)
// - display names, API descriptions and generated-file banner
//
// A Registry is immutable once Assemble returns and is safe for concurrent readers.
package registry
