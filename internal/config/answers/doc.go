// Package answers holds the nested answer tree collected by the setup wizard.
//
// A Tree is addressed with dot-delimited paths ("server.port"). Segments are
// case sensitive and always treated as map keys, so "apis.0.host" creates a
// map keyed "0" rather than a slice. Merge combines trees recursively with the
// incoming side winning at every leaf; slices are replaced, never appended.
package answers
