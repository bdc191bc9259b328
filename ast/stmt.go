package ast

import "ion/report"

// VariableDecl declares a local variable with an initializer.
type VariableDecl struct {
	Name  string
	Type  NodeID
	Value NodeID
}

func (*VariableDecl) Kind() Kind { return KindVariableDecl }

func (vd *VariableDecl) Children() []NodeID { return []NodeID{vd.Type, vd.Value} }

// NewVariableDecl creates a new variable declaration.
func (t *Tree) NewVariableDecl(name string, typ, value NodeID, span *report.TextSpan) NodeID {
	return t.adopt(&VariableDecl{Name: name, Type: typ, Value: value}, span, typ, value)
}

// Assignment stores a new value into a declared variable.
type Assignment struct {
	// A variable reference.
	Target NodeID
	Value  NodeID
}

func (*Assignment) Kind() Kind { return KindAssignment }

func (a *Assignment) Children() []NodeID { return []NodeID{a.Target, a.Value} }

// NewAssignment creates a new assignment.
func (t *Tree) NewAssignment(target, value NodeID, span *report.TextSpan) NodeID {
	return t.adopt(&Assignment{Target: target, Value: value}, span, target, value)
}

// IfStatement is a conditional with an optional alternative block.
type IfStatement struct {
	Condition   NodeID
	Consequent  NodeID
	Alternative NodeID
}

func (*IfStatement) Kind() Kind { return KindIfStatement }

func (is *IfStatement) Children() []NodeID {
	if is.Alternative == NoNode {
		return []NodeID{is.Condition, is.Consequent}
	}

	return []NodeID{is.Condition, is.Consequent, is.Alternative}
}

// NewIfStatement creates a new if statement.  alt may be NoNode.
func (t *Tree) NewIfStatement(cond, cons, alt NodeID, span *report.TextSpan) NodeID {
	return t.adopt(&IfStatement{Condition: cond, Consequent: cons, Alternative: alt}, span, cond, cons, alt)
}

// ReturnStatement returns from the enclosing function.
type ReturnStatement struct {
	// The returned value: NoNode for a void return.
	Value NodeID
}

func (*ReturnStatement) Kind() Kind { return KindReturnStatement }

func (rs *ReturnStatement) Children() []NodeID {
	if rs.Value == NoNode {
		return nil
	}

	return []NodeID{rs.Value}
}

// NewReturnStatement creates a new return statement.  value may be NoNode.
func (t *Tree) NewReturnStatement(value NodeID, span *report.TextSpan) NodeID {
	return t.adopt(&ReturnStatement{Value: value}, span, value)
}

// CallStatement calls a function and discards its result.
type CallStatement struct {
	// A function reference.
	Callee NodeID
	Args   []NodeID
}

func (*CallStatement) Kind() Kind { return KindCallStatement }

func (cs *CallStatement) Children() []NodeID {
	return append([]NodeID{cs.Callee}, cs.Args...)
}

// NewCallStatement creates a new call statement.
func (t *Tree) NewCallStatement(callee NodeID, args []NodeID, span *report.TextSpan) NodeID {
	cs := &CallStatement{Callee: callee, Args: args}
	return t.adopt(cs, span, cs.Children()...)
}

// IsTerminal returns whether a statement ends control flow in its block.
func (t *Tree) IsTerminal(id NodeID) bool {
	return t.Kind(id) == KindReturnStatement
}
