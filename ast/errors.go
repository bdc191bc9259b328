package ast

import (
	"errors"
	"fmt"
)

var (
	// ErrNullResolution is returned when a reference is resolved to NoNode.
	ErrNullResolution = errors.New("reference resolved to a null construct")

	// ErrUnresolved is returned when a reference is read before resolution.
	ErrUnresolved = errors.New("reference read before resolution")

	// ErrIndexOutOfRange is returned by block operations given a position
	// outside of the statement sequence.
	ErrIndexOutOfRange = errors.New("statement index out of range")

	// ErrInconsistentBlock is returned by Verify when a block's symbol table
	// and statement sequence disagree.
	ErrInconsistentBlock = errors.New("block symbol table is inconsistent with its statements")
)

// KindMismatchError is returned when a construct is accessed as a kind it is
// not.
type KindMismatchError struct {
	ID   NodeID
	Want Kind
	Got  Kind
}

func (kme *KindMismatchError) Error() string {
	return fmt.Sprintf("construct %d is a %s, not a %s", kme.ID, kme.Got, kme.Want)
}

// DuplicateSymbolError is returned when a name is declared twice in the same
// symbol table.
type DuplicateSymbolError struct {
	Name string
}

func (dse *DuplicateSymbolError) Error() string {
	return fmt.Sprintf("symbol `%s` already defined", dse.Name)
}
