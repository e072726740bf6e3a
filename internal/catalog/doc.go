// Package catalog provides the core types for capability operation
// definitions.
//
// This package contains record types, the requires-reference union, and
// the enum catalogs the schema rules consult. All other internal packages
// import catalog; catalog imports nothing internal. This keeps the record
// layer foundational with no circular dependencies.
package catalog
