package plugins

import (
	"log/slog"
	"sort"

	"github.com/KaseiFR/sauna/agent/internal/tree"
)

// Entry is the canonical form of one plugin's configuration:
// {type, config?, checks?, ...}.
type Entry map[string]any

// Type returns the plugin type name, or "" when the entry has none.
func (e Entry) Type() string {
	s, _ := e["type"].(string)
	return s
}

// Config returns the plugin-specific settings, or nil when absent.
func (e Entry) Config() map[string]any {
	m, _ := e["config"].(map[string]any)
	return m
}

// Checks returns the check specs in configuration order. Check specs are
// opaque and returned unmodified.
func (e Entry) Checks() []any {
	s, _ := e["checks"].([]any)
	return s
}

// Normalize returns the entries described by raw, which is either a mapping
// keyed by plugin type or a sequence of entries. Any other input, including
// nil, yields an empty list.
func Normalize(raw any) []Entry {
	switch tree.KindOf(raw) {
	case tree.Sequence:
		return fromSequence(raw.([]any))
	case tree.Mapping:
		return fromMapping(raw.(map[string]any))
	default:
		return []Entry{}
	}
}

// Section normalizes cfg[name]. A missing section yields an empty list.
func Section(cfg map[string]any, name string) []Entry {
	return Normalize(cfg[name])
}

func fromSequence(seq []any) []Entry {
	out := make([]Entry, 0, len(seq))
	for i, e := range seq {
		m, ok := e.(map[string]any)
		if !ok {
			slog.Warn("plugins: skipping entry that is not a mapping",
				"index", i, "kind", tree.KindOf(e).String(), "value", e)
			continue
		}
		out = append(out, Entry(m))
	}
	return out
}

func fromMapping(m map[string]any) []Entry {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Entry, 0, len(names))
	for _, name := range names {
		body, _ := m[name].(map[string]any)
		e := make(Entry, len(body)+1)
		for k, v := range body {
			e[k] = v
		}
		e["type"] = name
		out = append(out, e)
	}
	return out
}
