package ast

import "ion/report"

// NodeID is a stable handle to a construct stored in a Tree.
type NodeID uint32

// NoNode is the null handle: it never refers to a construct.
const NoNode NodeID = 0

// Node is the abstract interface for all constructs stored in the tree.
type Node interface {
	// Kind returns the kind tag of the construct.
	Kind() Kind

	// Children returns the immediate child constructs in traversal order.
	Children() []NodeID
}

// Tree is the arena which owns every construct of a compilation unit.  Edges
// from parent to child are the NodeID fields of the parent construct; edges
// from child to parent are plain back-references stored by the arena.
type Tree struct {
	nodes   []Node
	parents []NodeID
	spans   []*report.TextSpan
}

// NewTree creates a new, empty tree.
func NewTree() *Tree {
	// Slot zero is reserved for NoNode.
	return &Tree{
		nodes:   []Node{nil},
		parents: []NodeID{NoNode},
		spans:   []*report.TextSpan{nil},
	}
}

// Add stores a construct in the arena and returns its handle.  The new
// construct has no parent.
func (t *Tree) Add(n Node, span *report.TextSpan) NodeID {
	t.nodes = append(t.nodes, n)
	t.parents = append(t.parents, NoNode)
	t.spans = append(t.spans, span)

	return NodeID(len(t.nodes) - 1)
}

// Len returns the number of constructs in the arena.
func (t *Tree) Len() int {
	return len(t.nodes) - 1
}

// Valid returns whether id refers to a construct in the arena.
func (t *Tree) Valid(id NodeID) bool {
	return id != NoNode && int(id) < len(t.nodes)
}

// Node returns the construct for a handle or nil if the handle is invalid.
func (t *Tree) Node(id NodeID) Node {
	if !t.Valid(id) {
		return nil
	}

	return t.nodes[id]
}

// Kind returns the kind of the construct for a handle: KindNone if the handle
// is invalid.
func (t *Tree) Kind(id NodeID) Kind {
	if !t.Valid(id) {
		return KindNone
	}

	return t.nodes[id].Kind()
}

// Parent returns the parent back-reference of a construct.
func (t *Tree) Parent(id NodeID) NodeID {
	if !t.Valid(id) {
		return NoNode
	}

	return t.parents[id]
}

// SetParent updates the parent back-reference of a construct.
func (t *Tree) SetParent(id, parent NodeID) {
	if t.Valid(id) {
		t.parents[id] = parent
	}
}

// Span returns the source span of a construct.  This may be nil.
func (t *Tree) Span(id NodeID) *report.TextSpan {
	if !t.Valid(id) {
		return nil
	}

	return t.spans[id]
}

// SetSpan updates the source span of a construct.
func (t *Tree) SetSpan(id NodeID, span *report.TextSpan) {
	if t.Valid(id) {
		t.spans[id] = span
	}
}

// Children returns the immediate children of a construct.
func (t *Tree) Children(id NodeID) []NodeID {
	n := t.Node(id)
	if n == nil {
		return nil
	}

	return n.Children()
}

// adopt adds a construct and sets it as the parent of each of the given
// children that is not NoNode.
func (t *Tree) adopt(n Node, span *report.TextSpan, children ...NodeID) NodeID {
	id := t.Add(n, span)
	for _, child := range children {
		if child != NoNode {
			t.SetParent(child, id)
		}
	}

	return id
}

// -----------------------------------------------------------------------------

// as returns the construct for id as the concrete type T.
func as[T Node](t *Tree, id NodeID, want Kind) (T, error) {
	if n, ok := t.Node(id).(T); ok {
		return n, nil
	}

	var zero T
	return zero, &KindMismatchError{ID: id, Want: want, Got: t.Kind(id)}
}

func (t *Tree) Module(id NodeID) (*Module, error) { return as[*Module](t, id, KindModule) }

func (t *Tree) Function(id NodeID) (*Function, error) { return as[*Function](t, id, KindFunction) }

func (t *Tree) Prototype(id NodeID) (*Prototype, error) {
	return as[*Prototype](t, id, KindPrototype)
}

func (t *Tree) Extern(id NodeID) (*Extern, error) { return as[*Extern](t, id, KindExtern) }

func (t *Tree) Global(id NodeID) (*Global, error) { return as[*Global](t, id, KindGlobal) }

func (t *Tree) Block(id NodeID) (*Block, error) { return as[*Block](t, id, KindBlock) }

func (t *Tree) VariableDecl(id NodeID) (*VariableDecl, error) {
	return as[*VariableDecl](t, id, KindVariableDecl)
}

func (t *Tree) Assignment(id NodeID) (*Assignment, error) {
	return as[*Assignment](t, id, KindAssignment)
}

func (t *Tree) IfStatement(id NodeID) (*IfStatement, error) {
	return as[*IfStatement](t, id, KindIfStatement)
}

func (t *Tree) ReturnStatement(id NodeID) (*ReturnStatement, error) {
	return as[*ReturnStatement](t, id, KindReturnStatement)
}

func (t *Tree) CallStatement(id NodeID) (*CallStatement, error) {
	return as[*CallStatement](t, id, KindCallStatement)
}

func (t *Tree) Type(id NodeID) (*Type, error) { return as[*Type](t, id, KindType) }

func (t *Tree) Ref(id NodeID) (*Ref, error) { return as[*Ref](t, id, KindRef) }

func (t *Tree) Attribute(id NodeID) (*Attribute, error) {
	return as[*Attribute](t, id, KindAttribute)
}

// DeclaredName returns the name introduced by a construct, if it introduces
// one: functions and externs by their prototype, globals and variable
// declarations directly.
func (t *Tree) DeclaredName(id NodeID) (string, bool) {
	switch n := t.Node(id).(type) {
	case *Function:
		if proto, err := t.Prototype(n.Prototype); err == nil {
			return proto.Name, true
		}
	case *Extern:
		if proto, err := t.Prototype(n.Prototype); err == nil {
			return proto.Name, true
		}
	case *Global:
		return n.Name, true
	case *VariableDecl:
		return n.Name, true
	}

	return "", false
}
