// Package tree classifies and copies dynamically shaped configuration data.
//
// Decoded configuration is plain Go data built from four kinds:
//   - Mapping:  map[string]any
//   - Sequence: []any
//   - Scalar:   string, bool, int, float64 and any other opaque value
//   - Null:     nil
//
// Absence is not a kind: a key that is not present in a mapping is absent.
//
// FromDecoded canonicalises the output of the YAML, TOML and JSON decoders into
// these four kinds (map[any]any keys, sized integers, timestamps). KindOf, Clone
// and Equal dispatch on the kind so the merge and plugins packages never need a
// schema.
package tree
