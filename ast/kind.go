package ast

// Kind is the closed enumeration of construct kinds.
type Kind int

// Enumeration of construct kinds.
const (
	KindNone Kind = iota
	KindModule
	KindFunction
	KindPrototype
	KindExtern
	KindGlobal
	KindBlock
	KindVariableDecl
	KindAssignment
	KindIfStatement
	KindReturnStatement
	KindCallStatement
	KindIntegerValue
	KindCharValue
	KindStringValue
	KindBooleanValue
	KindType
	KindRef
	KindAttribute
	KindErrorMarker
)

var kindNames = [...]string{
	KindNone:            "none",
	KindModule:          "module",
	KindFunction:        "function",
	KindPrototype:       "prototype",
	KindExtern:          "extern",
	KindGlobal:          "global",
	KindBlock:           "block",
	KindVariableDecl:    "variable declaration",
	KindAssignment:      "assignment",
	KindIfStatement:     "if statement",
	KindReturnStatement: "return statement",
	KindCallStatement:   "call statement",
	KindIntegerValue:    "integer value",
	KindCharValue:       "char value",
	KindStringValue:     "string value",
	KindBooleanValue:    "boolean value",
	KindType:            "type",
	KindRef:             "reference",
	KindAttribute:       "attribute",
	KindErrorMarker:     "error marker",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}

	return kindNames[k]
}

// Category is the coarse grouping of construct kinds.
type Category int

// Enumeration of construct categories.
const (
	CategoryNone Category = iota
	CategoryModule
	CategoryFunction
	CategoryPrototype
	CategoryExtern
	CategoryGlobal
	CategoryBlock
	CategoryStatement
	CategoryValue
	CategoryType
	CategoryRef
	CategoryAttribute
	CategoryErrorMarker
)

// Category returns the category a kind belongs to.
func (k Kind) Category() Category {
	switch k {
	case KindModule:
		return CategoryModule
	case KindFunction:
		return CategoryFunction
	case KindPrototype:
		return CategoryPrototype
	case KindExtern:
		return CategoryExtern
	case KindGlobal:
		return CategoryGlobal
	case KindBlock:
		return CategoryBlock
	case KindVariableDecl, KindAssignment, KindIfStatement, KindReturnStatement, KindCallStatement:
		return CategoryStatement
	case KindIntegerValue, KindCharValue, KindStringValue, KindBooleanValue:
		return CategoryValue
	case KindType:
		return CategoryType
	case KindRef:
		return CategoryRef
	case KindAttribute:
		return CategoryAttribute
	case KindErrorMarker:
		return CategoryErrorMarker
	default:
		return CategoryNone
	}
}

// IsStatement returns whether the kind is a statement kind.
func (k Kind) IsStatement() bool {
	return k.Category() == CategoryStatement
}

// IsValue returns whether the kind is a literal value kind.
func (k Kind) IsValue() bool {
	return k.Category() == CategoryValue
}
