// Package merge folds override configuration trees into a base tree.
//
// The rules are generic and apply at every depth, with no knowledge of
// particular keys:
//   - key absent from base: the override value is adopted
//   - both values are mappings: merged recursively
//   - both values are sequences: base elements followed by override elements
//   - anything else, including a kind mismatch: the override value wins
//
// Merge mutates base and never touches override. Callers that need to keep
// their base intact use Merged. None of the functions are safe for concurrent
// use against the same base.
package merge
