// Package config loads, merges and watches the agent configuration sources.
//
// Load(paths...) reads every source in order, decodes it by extension
// (.yaml/.yml/.json with yaml.v3, .toml with go-toml), and folds the documents
// into one tree with merge.Merge, so later sources win on scalars, extend
// sequences and add to mappings. A top-level include key (a glob or a list of
// globs, relative to the including file) pulls further files in right after
// the file that names them.
//
// The merged tree yields:
//   - Settings: periodicity, hostname, concurrency, extra_plugins, logging;
//     defaults are filled for absent keys, then validated
//   - Plugins and Consumers: the plugins and consumers sections normalized by
//     the plugins package
//
// Watch(ctx, paths, onChange) uses fsnotify on the directories holding every
// source (includes too) and calls onChange with a freshly loaded Config after
// each change. A failed reload is logged and the previous config stays active.
// Reloads happen one at a time on the watcher goroutine.
package config
