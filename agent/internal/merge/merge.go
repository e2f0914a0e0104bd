package merge

import "github.com/KaseiFR/sauna/agent/internal/tree"

// Merge folds override into base in place.
//
// Values adopted from override are deep copies, so later merges into base
// cannot reach back into the override tree. A nil base is a programming error
// and panics; an empty or nil override leaves base unchanged.
func Merge(base, override map[string]any) {
	if base == nil {
		panic("merge: base must be a non-nil mapping")
	}
	for k, ov := range override {
		bv, ok := base[k]
		if !ok {
			base[k] = tree.Clone(ov)
			continue
		}

		switch bk, ovk := tree.KindOf(bv), tree.KindOf(ov); {
		case bk == tree.Mapping && ovk == tree.Mapping:
			// A nil nested mapping is empty, but cannot be written to.
			if bm := bv.(map[string]any); bm != nil {
				Merge(bm, ov.(map[string]any))
			} else {
				base[k] = tree.Clone(ov)
			}
		case bk == tree.Sequence && ovk == tree.Sequence:
			base[k] = concat(bv.([]any), ov.([]any))
		default:
			base[k] = tree.Clone(ov)
		}
	}
}

// concat returns a fresh sequence holding a followed by copies of b.
func concat(a, b []any) []any {
	out := make([]any, 0, len(a)+len(b))
	out = append(out, a...)
	for _, e := range b {
		out = append(out, tree.Clone(e))
	}
	return out
}

// Fold merges each override into base in order, so later overrides win.
func Fold(base map[string]any, overrides ...map[string]any) {
	for _, o := range overrides {
		Merge(base, o)
	}
}

// Merged returns base merged with override as a new tree. Neither argument
// is modified. A nil base is treated as an empty mapping.
func Merged(base, override map[string]any) map[string]any {
	out := tree.CloneMap(base)
	if out == nil {
		out = make(map[string]any, len(override))
	}
	Merge(out, override)
	return out
}
