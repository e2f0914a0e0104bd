package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/KaseiFR/sauna/agent/internal/merge"
	"github.com/KaseiFR/sauna/agent/internal/tree"
)

// IncludeKey is the top-level key naming further sources to merge.
const IncludeKey = "include"

// Load reads the sources at paths, merges them in order and builds the
// effective Config. Later sources take precedence over earlier ones. A file
// reached more than once, through paths or includes, is merged only the first
// time.
func Load(paths ...string) (*Config, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("config: no source given")
	}

	l := &loader{
		root:   make(map[string]any),
		active: make(map[string]bool),
		loaded: make(map[string]bool),
	}
	for _, p := range paths {
		if err := l.load(p); err != nil {
			return nil, err
		}
	}
	return Build(l.root, l.sources)
}

// loader folds sources into root, following include keys depth first.
type loader struct {
	root    map[string]any
	sources []string
	active  map[string]bool // include chain currently being loaded
	loaded  map[string]bool // files already merged into root
}

func (l *loader) load(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("config: resolve %q: %w", path, err)
	}
	if l.active[abs] {
		return fmt.Errorf("config: include cycle through %q", path)
	}
	if l.loaded[abs] {
		return nil
	}
	l.active[abs] = true
	l.loaded[abs] = true
	defer delete(l.active, abs)

	doc, err := ReadFile(path)
	if err != nil {
		return err
	}
	includes, err := takeIncludes(doc, filepath.Dir(path))
	if err != nil {
		return fmt.Errorf("config: %s: %w", path, err)
	}

	merge.Merge(l.root, doc)
	l.sources = append(l.sources, path)

	for _, inc := range includes {
		if err := l.load(inc); err != nil {
			return err
		}
	}
	return nil
}

// ReadFile decodes the source at path into a mapping. The decoder is chosen
// by extension; unknown extensions are read as YAML. An empty file is an
// empty mapping.
func ReadFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file: %w", err)
	}
	doc, err := Decode(data, formatOf(path))
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return doc, nil
}

// Source formats understood by Decode.
const (
	FormatYAML = "yaml"
	FormatTOML = "toml"
	FormatJSON = "json"
)

func formatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	case ".json":
		return FormatJSON
	default:
		return FormatYAML
	}
}

// Decode parses data in the given format into a canonical mapping. The
// document must be a mapping at the top level.
func Decode(data []byte, format string) (map[string]any, error) {
	var raw any
	switch format {
	case FormatTOML:
		var m map[string]any
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("parse toml: %w", err)
		}
		raw = m
	case FormatYAML, FormatJSON:
		// JSON is read by the YAML decoder.
		if len(bytes.TrimSpace(data)) == 0 {
			return map[string]any{}, nil
		}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse %s: %w", format, err)
		}
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}

	switch v := tree.FromDecoded(raw).(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		return v, nil
	default:
		return nil, fmt.Errorf("top-level document must be a mapping, got %s", tree.KindOf(v))
	}
}

// takeIncludes removes the include key from doc and returns the files it
// names, each pattern's matches in lexical order.
func takeIncludes(doc map[string]any, dir string) ([]string, error) {
	v, ok := doc[IncludeKey]
	if !ok {
		return nil, nil
	}
	delete(doc, IncludeKey)

	var patterns []string
	switch t := v.(type) {
	case nil:
	case string:
		patterns = []string{t}
	case []any:
		for _, e := range t {
			s, ok := e.(string)
			if !ok {
				return nil, fmt.Errorf("%s: entries must be strings, got %s", IncludeKey, tree.KindOf(e))
			}
			patterns = append(patterns, s)
		}
	default:
		return nil, fmt.Errorf("%s: must be a string or a list of strings, got %s", IncludeKey, tree.KindOf(v))
	}

	var files []string
	for _, p := range patterns {
		if !filepath.IsAbs(p) {
			p = filepath.Join(dir, p)
		}
		matches, err := filepath.Glob(p)
		if err != nil {
			return nil, fmt.Errorf("%s: bad pattern %q: %w", IncludeKey, p, err)
		}
		sort.Strings(matches)
		files = append(files, matches...)
	}
	return files, nil
}
