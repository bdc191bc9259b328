package ast

import (
	"fmt"

	"ion/report"
	"ion/util"
)

// Block is a sequence of statements with its own scope.  The symbol table
// indexes the subset of the statements which declare a name.
type Block struct {
	Statements []NodeID
	Symbols    *SymbolTable
}

func (*Block) Kind() Kind { return KindBlock }

func (b *Block) Children() []NodeID {
	return append([]NodeID(nil), b.Statements...)
}

// NewBlock creates a new, empty block.
func (t *Tree) NewBlock(span *report.TextSpan) NodeID {
	return t.Add(&Block{Symbols: NewSymbolTable()}, span)
}

// AppendStatement appends a statement to a block, registering it in the
// block's symbol table if it declares a name.  The statement's parent is left
// unchanged.
func (t *Tree) AppendStatement(block, stmt NodeID) error {
	b, err := t.Block(block)
	if err != nil {
		return err
	}

	if name, ok := t.DeclaredName(stmt); ok {
		if !b.Symbols.Insert(name, stmt) {
			return &DuplicateSymbolError{Name: name}
		}
	}

	b.Statements = append(b.Statements, stmt)
	return nil
}

// RelocateStatement moves the statement at index of block to the end of
// target.  The moved statement's parent becomes target.
func (t *Tree) RelocateStatement(block NodeID, index int, target NodeID) error {
	b, err := t.Block(block)
	if err != nil {
		return err
	}

	if index < 0 || index >= len(b.Statements) {
		return fmt.Errorf("relocating statement %d of %d: %w", index, len(b.Statements), ErrIndexOutOfRange)
	}

	tb, err := t.Block(target)
	if err != nil {
		return err
	}

	stmt := b.Statements[index]
	name, declares := t.DeclaredName(stmt)
	if declares && tb.Symbols.Contains(name) {
		return &DuplicateSymbolError{Name: name}
	}

	b.Statements, _ = util.RemoveRange(b.Statements, index, index+1)
	if declares {
		b.Symbols.Remove(name)
		tb.Symbols.Insert(name, stmt)
	}

	tb.Statements = append(tb.Statements, stmt)
	t.SetParent(stmt, target)
	return nil
}

// RelocateStatements moves the statements in the range [from, to) of block to
// the end of target, preserving their order.  A negative to denotes the end of
// the block.  It returns the number of statements moved.
func (t *Tree) RelocateStatements(block, target NodeID, from, to int) (int, error) {
	b, err := t.Block(block)
	if err != nil {
		return 0, err
	}

	if to < 0 {
		to = len(b.Statements)
	}

	if from < 0 || from > to || to > len(b.Statements) {
		return 0, fmt.Errorf("relocating statements [%d, %d) of %d: %w", from, to, len(b.Statements), ErrIndexOutOfRange)
	}

	// A conflict leaves both blocks intact.
	tb, err := t.Block(target)
	if err != nil {
		return 0, err
	}

	for _, stmt := range b.Statements[from:to] {
		if name, ok := t.DeclaredName(stmt); ok && tb.Symbols.Contains(name) {
			return 0, &DuplicateSymbolError{Name: name}
		}
	}

	var moved []NodeID
	b.Statements, moved = util.RemoveRange(b.Statements, from, to)
	for _, stmt := range moved {
		if name, ok := t.DeclaredName(stmt); ok {
			b.Symbols.Remove(name)
			tb.Symbols.Insert(name, stmt)
		}

		t.SetParent(stmt, target)
	}

	tb.Statements = append(tb.Statements, moved...)
	return len(moved), nil
}

// SliceBlock splits a block at index: a new block with the same parent takes
// ownership of the statements [at, N) and the original keeps [0, at).
func (t *Tree) SliceBlock(block NodeID, at int) (NodeID, error) {
	b, err := t.Block(block)
	if err != nil {
		return NoNode, err
	}

	if at < 0 || at > len(b.Statements) {
		return NoNode, fmt.Errorf("slicing block at %d of %d: %w", at, len(b.Statements), ErrIndexOutOfRange)
	}

	tail := t.NewBlock(t.Span(block))
	t.SetParent(tail, t.Parent(block))

	if _, err := t.RelocateStatements(block, tail, at, -1); err != nil {
		return NoNode, err
	}

	return tail, nil
}

// Locate returns the position of stmt in block.
func (t *Tree) Locate(block, stmt NodeID) (int, bool) {
	b, err := t.Block(block)
	if err != nil {
		return -1, false
	}

	i := util.IndexOf(b.Statements, stmt)
	return i, i >= 0
}

// FindTerminals returns the terminal statements directly inside block without
// descending into nested blocks.
func (t *Tree) FindTerminals(block NodeID) []NodeID {
	b, err := t.Block(block)
	if err != nil {
		return nil
	}

	var terminals []NodeID
	for _, s := range b.Statements {
		if t.IsTerminal(s) {
			terminals = append(terminals, s)
		}
	}

	return terminals
}

// FirstStatement returns the first statement of block.
func (t *Tree) FirstStatement(block NodeID) (NodeID, bool) {
	b, err := t.Block(block)
	if err != nil || len(b.Statements) == 0 {
		return NoNode, false
	}

	return b.Statements[0], true
}

// LastStatement returns the last statement of block.
func (t *Tree) LastStatement(block NodeID) (NodeID, bool) {
	b, err := t.Block(block)
	if err != nil || len(b.Statements) == 0 {
		return NoNode, false
	}

	return b.Statements[len(b.Statements)-1], true
}

// IsFunctionBody returns whether block is the top-level body of a function.
func (t *Tree) IsFunctionBody(block NodeID) bool {
	f, err := t.Function(t.Parent(block))
	return err == nil && f.Body == block
}

// Verify checks that the symbol table of block indexes exactly the declaring
// statements of its sequence.
func (t *Tree) Verify(block NodeID) error {
	b, err := t.Block(block)
	if err != nil {
		return err
	}

	declared := 0
	for _, s := range b.Statements {
		name, ok := t.DeclaredName(s)
		if !ok {
			continue
		}

		declared++
		if id, found := b.Symbols.Lookup(name); !found || id != s {
			return fmt.Errorf("`%s` missing from table: %w", name, ErrInconsistentBlock)
		}
	}

	if declared != b.Symbols.Len() {
		return fmt.Errorf("%d declarations but %d table entries: %w", declared, b.Symbols.Len(), ErrInconsistentBlock)
	}

	return nil
}
