// Package symbol interns grammar and token names into small integer handles.
package symbol

import (
	"fmt"
	"sync"
)

// Symbol is a handle issued by an Interner. Handles from different
// interners must not be compared.
type Symbol uint32

func (s Symbol) String() string {
	return fmt.Sprintf("#%d", uint32(s))
}

// Interner maps strings to Symbols and back. It only grows.
// All methods are safe for concurrent use.
type Interner struct {
	mu      sync.RWMutex
	names   map[string]Symbol
	strings []string
}

// New creates an empty interner.
func New() *Interner {
	return &Interner{
		names:   make(map[string]Symbol),
		strings: make([]string, 0),
	}
}

// Intern returns the handle for name, allocating the next handle the
// first time name is seen.
func (in *Interner) Intern(name string) Symbol {
	in.mu.RLock()
	sym, ok := in.names[name]
	in.mu.RUnlock()
	if ok {
		return sym
	}

	in.mu.Lock()
	defer in.mu.Unlock()
	// Another writer may have won between the two locks.
	if sym, ok := in.names[name]; ok {
		return sym
	}
	sym = Symbol(len(in.strings))
	in.strings = append(in.strings, name)
	in.names[name] = sym
	return sym
}

// Lookup returns the handle for name without interning it.
func (in *Interner) Lookup(name string) (Symbol, bool) {
	in.mu.RLock()
	defer in.mu.RUnlock()
	sym, ok := in.names[name]
	return sym, ok
}

// Exists reports whether name has been interned.
func (in *Interner) Exists(name string) bool {
	_, ok := in.Lookup(name)
	return ok
}

// Resolve returns the string sym was interned from, or "" for a handle
// this interner never issued.
func (in *Interner) Resolve(sym Symbol) string {
	in.mu.RLock()
	defer in.mu.RUnlock()
	if int(sym) >= len(in.strings) {
		return ""
	}
	return in.strings[sym]
}

// Len returns the number of interned strings.
func (in *Interner) Len() int {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return len(in.strings)
}
