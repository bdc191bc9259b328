package syntax

import "ion/ast"

// Classifier holds the constant lookup tables of the language: keywords,
// symbols, built-in types and operator precedences.  It is built once by
// NewClassifier and shared read-only by the lexer and parser.
type Classifier struct {
	keywords     map[string]TokenKind
	symbols      map[string]TokenKind
	builtinTypes map[TokenKind]ast.Type
	precedences  map[TokenKind]int
}

// NewClassifier builds the language's classification tables.
func NewClassifier() *Classifier {
	return &Classifier{
		keywords: map[string]TokenKind{
			"module": TOK_MODULE,
			"fn":     TOK_FN,
			"extern": TOK_EXTERN,
			"global": TOK_GLOBAL,
			"struct": TOK_STRUCT,
			"unsafe": TOK_UNSAFE,
			"const":  TOK_CONST,
			"mut":    TOK_MUT,
			"if":     TOK_IF,
			"else":   TOK_ELSE,
			"return": TOK_RETURN,
			"true":   TOK_TRUE,
			"false":  TOK_FALSE,

			"void":    TOK_VOID,
			"bool":    TOK_BOOL,
			"int8":    TOK_INT8,
			"int16":   TOK_INT16,
			"int32":   TOK_INT32,
			"int64":   TOK_INT64,
			"float16": TOK_FLOAT16,
			"float32": TOK_FLOAT32,
			"float64": TOK_FLOAT64,
			"char":    TOK_CHAR,
			"string":  TOK_STRING,
		},
		symbols: map[string]TokenKind{
			"+": TOK_PLUS,
			"-": TOK_MINUS,
			"*": TOK_STAR,
			"/": TOK_DIV,
			"%": TOK_MOD,
			"^": TOK_POW,

			"=": TOK_ASSIGN,

			"(": TOK_LPAREN,
			")": TOK_RPAREN,
			"{": TOK_LBRACE,
			"}": TOK_RBRACE,
			"[": TOK_LBRACKET,
			"]": TOK_RBRACKET,
			",": TOK_COMMA,
			".": TOK_DOT,
			";": TOK_SEMI,
			":": TOK_COLON,
			"@": TOK_ATSIGN,
		},
		builtinTypes: map[TokenKind]ast.Type{
			TOK_VOID:    {TypeKind: ast.TypeVoid},
			TOK_BOOL:    {TypeKind: ast.TypeBoolean},
			TOK_INT8:    ast.IntegerType(ast.Int8),
			TOK_INT16:   ast.IntegerType(ast.Int16),
			TOK_INT32:   ast.IntegerType(ast.Int32),
			TOK_INT64:   ast.IntegerType(ast.Int64),
			TOK_FLOAT16: {TypeKind: ast.TypeFloat, FloatWidth: 16},
			TOK_FLOAT32: {TypeKind: ast.TypeFloat, FloatWidth: 32},
			TOK_FLOAT64: {TypeKind: ast.TypeFloat, FloatWidth: 64},
			TOK_CHAR:    {TypeKind: ast.TypeChar},
			TOK_STRING:  {TypeKind: ast.TypeString},
		},
		precedences: map[TokenKind]int{
			TOK_PLUS:  20,
			TOK_MINUS: 20,
			TOK_STAR:  40,
			TOK_DIV:   40,
			TOK_MOD:   40,
			TOK_POW:   80,
		},
	}
}

// Keyword returns the token kind of a keyword spelling.
func (c *Classifier) Keyword(s string) (TokenKind, bool) {
	kind, ok := c.keywords[s]
	return kind, ok
}

// Symbol returns the token kind of a punctuation or operator spelling.
func (c *Classifier) Symbol(s string) (TokenKind, bool) {
	kind, ok := c.symbols[s]
	return kind, ok
}

// IsKeyword returns whether kind is spelled by a reserved word.
func (c *Classifier) IsKeyword(kind TokenKind) bool {
	return TOK_MODULE <= kind && kind <= TOK_STRING || kind == TOK_TRUE || kind == TOK_FALSE
}

// IsBuiltInType returns whether kind names a built-in type.
func (c *Classifier) IsBuiltInType(kind TokenKind) bool {
	_, ok := c.builtinTypes[kind]
	return ok
}

// IsIntegerType returns whether kind names a built-in integer type.
func (c *Classifier) IsIntegerType(kind TokenKind) bool {
	return TOK_INT8 <= kind && kind <= TOK_INT64
}

// IsLiteral returns whether kind is a literal value.
func (c *Classifier) IsLiteral(kind TokenKind) bool {
	switch kind {
	case TOK_INTLIT, TOK_CHARLIT, TOK_STRINGLIT, TOK_TRUE, TOK_FALSE:
		return true
	default:
		return false
	}
}

// IsOperator returns whether kind is a binary operator.
func (c *Classifier) IsOperator(kind TokenKind) bool {
	_, ok := c.precedences[kind]
	return ok
}

// Precedence returns the binding power of an operator.
func (c *Classifier) Precedence(kind TokenKind) (int, bool) {
	prec, ok := c.precedences[kind]
	return prec, ok
}

// IntegerKind returns the integer kind named by an integer type keyword.
func (c *Classifier) IntegerKind(kind TokenKind) (ast.IntegerKind, bool) {
	if !c.IsIntegerType(kind) {
		return 0, false
	}

	return c.builtinTypes[kind].IntegerKind, true
}

// BuiltInType returns the type label named by a built-in type keyword.
func (c *Classifier) BuiltInType(kind TokenKind) (ast.Type, bool) {
	typ, ok := c.builtinTypes[kind]
	return typ, ok
}

// IsStatement returns whether a statement begins with the token kinds current
// and next.
func (c *Classifier) IsStatement(current, next TokenKind) bool {
	switch {
	case c.IsBuiltInType(current):
		return true
	case current == TOK_IDENT:
		return next == TOK_ASSIGN || next == TOK_LPAREN
	case current == TOK_IF, current == TOK_RETURN:
		return true
	default:
		return false
	}
}
