// Package schema describes the expected shape of configuration paths.
//
// A Schema maps dot-paths to a Field carrying a FieldFormat, a default value
// and a documentation string. FieldFormat is a closed set of variants (Text,
// Enum, Boolean, Number and Custom); callers switch over it exhaustively.
//
// Schemas are either declared in Go by the product definitions or parsed from
// convict-style JSON/YAML documents with Parse and LoadFile.
package schema
