package main

import (
	"sort"
	"strings"
)

// Mode flags say what resolving a dictionary entry does.
type Mode uint8

const (
	// Execute entries run when resolved while interpreting; entries without
	// it are data, and resolving them pushes the bound object.
	Execute Mode = 1 << iota

	// Immediate entries run even while a definition is being compiled.
	Immediate
)

func (mode Mode) String() string {
	var parts []string
	if mode&Execute != 0 {
		parts = append(parts, "execute")
	}
	if mode&Immediate != 0 {
		parts = append(parts, "immediate")
	}
	if len(parts) == 0 {
		return "data"
	}
	return strings.Join(parts, ",")
}

// Entry is one dictionary binding.
type Entry struct {
	Object
	Mode Mode
}

// Dict maps names to entries. Lookups are exact unless FoldCase is set, in
// which case a miss is retried against the most recently bound spelling that
// matches under Unicode case folding.
type Dict struct {
	FoldCase bool

	entries map[string]Entry
	folded  map[string]string
}

// Set binds name, replacing any prior binding.
func (dict *Dict) Set(name string, ent Entry) {
	if dict.entries == nil {
		dict.entries = make(map[string]Entry)
		dict.folded = make(map[string]string)
	}
	dict.entries[name] = ent
	dict.folded[foldName(name)] = name
}

// Get resolves name.
func (dict *Dict) Get(name string) (Entry, error) {
	if ent, defined := dict.entries[name]; defined {
		return ent, nil
	}
	if dict.FoldCase {
		if alt, defined := dict.folded[foldName(name)]; defined {
			return dict.entries[alt], nil
		}
	}
	return Entry{}, ErrNameNotFound
}

func (dict *Dict) Len() int { return len(dict.entries) }

// Names returns all bound names in sorted order.
func (dict *Dict) Names() []string {
	names := make([]string, 0, len(dict.entries))
	for name := range dict.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func foldName(name string) string {
	return strings.ToLower(strings.ToUpper(name))
}

// words is the arena that owns every word of one VM. Handles are allocated
// before a definition body exists, so a body may name its own word.
type words struct {
	words []word
}

type word struct {
	name   string
	at     Token
	native func(vm *VM)
	body   Seq
}

func (ws *words) alloc(name string, at Token, native func(vm *VM)) WordID {
	ws.words = append(ws.words, word{name: name, at: at, native: native})
	return WordID(len(ws.words))
}

func (ws *words) word(id WordID) *word {
	if i := int(id) - 1; i >= 0 && i < len(ws.words) {
		return &ws.words[i]
	}
	return nil
}
