// Package plugins turns the plugins (and consumers) section of the agent
// configuration into a canonical, ordered list of entries.
//
// Two shapes are accepted:
//
//	plugins:                      plugins:
//	  Disk:                         - type: Disk
//	    config: {...}                 config: {...}
//	    checks: [...]                 checks: [...]
//
// A sequence is already canonical and is returned in its own order. A mapping
// yields one entry per key, with the key as the entry's type, sorted by type
// name. Anything else yields no entries. Type names are not validated and
// duplicates are kept; that is the check runner's concern.
package plugins
