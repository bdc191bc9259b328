package ast

import "ion/report"

// Module is the root construct of a compilation unit.  Its symbol table holds
// every top-level construct in declaration order.
type Module struct {
	Name    string
	Symbols *SymbolTable

	// The error markers recorded in place of top-level constructs that failed
	// to parse.
	Markers []NodeID
}

func (*Module) Kind() Kind { return KindModule }

func (m *Module) Children() []NodeID {
	return append(m.Symbols.Entries(), m.Markers...)
}

// NewModule creates a new, empty module.
func (t *Tree) NewModule(name string) NodeID {
	return t.Add(&Module{Name: name, Symbols: NewSymbolTable()}, nil)
}

// DeclareTopLevel registers a top-level construct in a module by its declared
// name and makes the module its parent.
func (t *Tree) DeclareTopLevel(module, id NodeID) error {
	m, err := t.Module(module)
	if err != nil {
		return err
	}

	name, ok := t.DeclaredName(id)
	if !ok {
		return &KindMismatchError{ID: id, Want: KindFunction, Got: t.Kind(id)}
	}

	if !m.Symbols.Insert(name, id) {
		return &DuplicateSymbolError{Name: name}
	}

	t.SetParent(id, module)
	return nil
}

// AddMarker records an error marker in a module.
func (t *Tree) AddMarker(module NodeID, message string, span *report.TextSpan) (NodeID, error) {
	m, err := t.Module(module)
	if err != nil {
		return NoNode, err
	}

	id := t.Add(&ErrorMarker{Message: message}, span)
	t.SetParent(id, module)
	m.Markers = append(m.Markers, id)
	return id, nil
}

// -----------------------------------------------------------------------------

// Function is a function definition: a prototype and a body block.
type Function struct {
	Prototype  NodeID
	Body       NodeID
	Attributes []NodeID
}

func (*Function) Kind() Kind { return KindFunction }

func (f *Function) Children() []NodeID {
	return append(append([]NodeID(nil), f.Attributes...), f.Prototype, f.Body)
}

// NewFunction creates a new function owning the given prototype, body and
// attributes.
func (t *Tree) NewFunction(proto, body NodeID, attrs []NodeID, span *report.TextSpan) NodeID {
	f := &Function{Prototype: proto, Body: body, Attributes: attrs}
	return t.adopt(f, span, f.Children()...)
}

// Arg is a single argument of a prototype.
type Arg struct {
	Name string
	Type NodeID
}

// Prototype is the signature of a function or extern.
type Prototype struct {
	Name       string
	Args       []Arg
	ReturnType NodeID
}

func (*Prototype) Kind() Kind { return KindPrototype }

func (p *Prototype) Children() []NodeID {
	children := make([]NodeID, 0, len(p.Args)+1)
	for _, arg := range p.Args {
		children = append(children, arg.Type)
	}

	return append(children, p.ReturnType)
}

// NewPrototype creates a new prototype.
func (t *Tree) NewPrototype(name string, args []Arg, ret NodeID, span *report.TextSpan) NodeID {
	p := &Prototype{Name: name, Args: args, ReturnType: ret}
	return t.adopt(p, span, p.Children()...)
}

// Extern is an external function declaration: a prototype with no body.
type Extern struct {
	Prototype  NodeID
	Attributes []NodeID
}

func (*Extern) Kind() Kind { return KindExtern }

func (e *Extern) Children() []NodeID {
	return append(append([]NodeID(nil), e.Attributes...), e.Prototype)
}

// NewExtern creates a new extern owning the given prototype.
func (t *Tree) NewExtern(proto NodeID, attrs []NodeID, span *report.TextSpan) NodeID {
	e := &Extern{Prototype: proto, Attributes: attrs}
	return t.adopt(e, span, e.Children()...)
}

// Global is a global variable with an optional constant initializer.
type Global struct {
	Name  string
	Type  NodeID
	Value NodeID
}

func (*Global) Kind() Kind { return KindGlobal }

func (g *Global) Children() []NodeID {
	if g.Value == NoNode {
		return []NodeID{g.Type}
	}

	return []NodeID{g.Type, g.Value}
}

// NewGlobal creates a new global.  value may be NoNode.
func (t *Tree) NewGlobal(name string, typ, value NodeID, span *report.TextSpan) NodeID {
	return t.adopt(&Global{Name: name, Type: typ, Value: value}, span, typ, value)
}

// Attribute is a named modifier attached to a function or extern.
type Attribute struct {
	Name string
}

func (*Attribute) Kind() Kind { return KindAttribute }

func (*Attribute) Children() []NodeID { return nil }

// NewAttribute creates a new attribute.
func (t *Tree) NewAttribute(name string, span *report.TextSpan) NodeID {
	return t.Add(&Attribute{Name: name}, span)
}

// ErrorMarker stands in for a top-level construct that failed to parse.
type ErrorMarker struct {
	Message string
}

func (*ErrorMarker) Kind() Kind { return KindErrorMarker }

func (*ErrorMarker) Children() []NodeID { return nil }

// -----------------------------------------------------------------------------

// FindParentFunction walks back-references from id to the nearest enclosing
// function.
func (t *Tree) FindParentFunction(id NodeID) (NodeID, bool) {
	for p := t.Parent(id); p != NoNode; p = t.Parent(p) {
		if t.Kind(p) == KindFunction {
			return p, true
		}
	}

	return NoNode, false
}

// FindRootModule walks back-references from id to the module that owns it.
func (t *Tree) FindRootModule(id NodeID) (NodeID, bool) {
	for p := id; p != NoNode; p = t.Parent(p) {
		if t.Kind(p) == KindModule {
			return p, true
		}
	}

	return NoNode, false
}
