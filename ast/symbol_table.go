package ast

import "ion/util"

// SymbolTable maps identifiers to the constructs which declare them.  Keys are
// unique and iteration follows insertion order.
type SymbolTable struct {
	names   []string
	entries map[string]NodeID
}

// NewSymbolTable creates a new, empty symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{entries: make(map[string]NodeID)}
}

// Insert adds a new entry.  It returns false if the name is already present in
// which case the table is unchanged.
func (st *SymbolTable) Insert(name string, id NodeID) bool {
	if _, ok := st.entries[name]; ok {
		return false
	}

	st.entries[name] = id
	st.names = append(st.names, name)
	return true
}

// Lookup returns the construct bound to name.
func (st *SymbolTable) Lookup(name string) (NodeID, bool) {
	id, ok := st.entries[name]
	return id, ok
}

// Contains returns whether name is bound.
func (st *SymbolTable) Contains(name string) bool {
	_, ok := st.entries[name]
	return ok
}

// Remove deletes the entry for name, preserving the order of the rest.
func (st *SymbolTable) Remove(name string) bool {
	if _, ok := st.entries[name]; !ok {
		return false
	}

	delete(st.entries, name)
	if i := util.IndexOf(st.names, name); i >= 0 {
		st.names, _ = util.RemoveRange(st.names, i, i+1)
	}

	return true
}

// Names returns the bound names in insertion order.
func (st *SymbolTable) Names() []string {
	return append([]string(nil), st.names...)
}

// Entries returns the bound constructs in insertion order.
func (st *SymbolTable) Entries() []NodeID {
	ids := make([]NodeID, len(st.names))
	for i, name := range st.names {
		ids[i] = st.entries[name]
	}

	return ids
}

func (st *SymbolTable) Len() int {
	return len(st.names)
}

func (st *SymbolTable) IsEmpty() bool {
	return len(st.names) == 0
}
