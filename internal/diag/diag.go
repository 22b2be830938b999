// Package diag defines the closed diagnostic taxonomy shared by every stage
// of the front-end (lexer, parser, semantic analyzer) and its formatting
// contract.
package diag

import "fmt"

// Category is a closed enumeration partitioned into the three families the
// pipeline can raise diagnostics from, plus an infrastructure family shared
// by all of them.
type Category int

const (
	// Infrastructure
	AllocationFailed Category = iota
	NullParameter
	ViolatedInvariant
	IndexOutOfBounds
	ElementMissing
	ZeroItemSize
	Empty
	IntegerOverflow
	ReadWriteError
	SizeOverflow
	BufferOverflow

	// Lexical / literal
	MalformedIntegerStr
	MalformedFloatStr
	SignedIntegerOverflow
	UnsignedIntegerOverflow
	SizeIntegerOverflow
	FloatOverflow
	NonStringToken
	UnexpectedChar

	// Syntactic
	UnexpectedToken
	MissingTrailingComma
	NoPrefixParseFunction
	InfixMissingRHS
	PrefixMissingOperand
	EmptyGenericList
	IllegalIdentifier
	EmptyStruct
	StructMissingMembers
	StructMemberNotExplicit
	EnumMissingVariants
	MissingArraySizeToken
	UnexpectedArraySizeToken
	IncorrectExplicitArraySize
	EmptyArray
	EmptyForLoop
	ForIterableCaptureMismatch
	ForMissingIterables
	WhileMissingCondition
	ImproperWhileContinuation
	IllegalLoopNonBreak
	ArmlessMatchExpr
	IllegalMatchArm
	IllegalMatchCatchAll
	UserImportMissingAlias
	EmptyImplBlock
	MalformedTypeDecl
	IllegalDeclConstruct
	IllegalDeclModifiers
	RedundantTypeIntrospection
	ImplicitFnParamType
	MissingWithClause
	MalformedFunctionLiteral

	// Semantic
	TypeMismatch
	IllegalPrefixOperand
	IllegalLHSInfixOperand
	IllegalRHSInfixOperand
	AssignmentToConstant
	NonArrayIndexTarget
	UnexpectedArrayIndexType
	UnknownIdentifier
	RedefinitionOfIdentifier
	IllegalOuterNamespace
	UnknownEnumVariant
	NullableEnumVariant
	NonConstEnumVariant
	NonSignedEnumVariant
	NonValuedEnumVariant
	NamespaceNameMirrorsMember
	NotImplemented
)

var categoryNames = map[Category]string{
	SignedIntegerOverflow:   "SIGNED_INTEGER_OVERFLOW",
	UnsignedIntegerOverflow: "UNSIGNED_INTEGER_OVERFLOW",
	SizeIntegerOverflow:     "SIZE_OVERFLOW",
	FloatOverflow:           "FLOAT_OVERFLOW",
	MalformedIntegerStr:     "MALFORMED_INTEGER_STR",
	MalformedFloatStr:       "MALFORMED_FLOAT_STR",
}

// String renders a category's canonical taxonomy name, used when a
// diagnostic's message text is just the category tag itself (e.g. the
// numeric-overflow family).
func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// Position is a 1-based (line, column) pair identifying the first byte of
// the token a diagnostic is anchored to.
type Position struct {
	Line int
	Col  int
}

// Diagnostic is a single entry in a diagnostic list. It satisfies the
// standard error interface so it composes at package boundaries, but the
// pipeline itself always threads typed slices of these, never a bare error.
type Diagnostic struct {
	Category Category
	Message  string
	Pos      Position
}

// New builds a diagnostic whose Message is the formatted text alone; Error
// appends the position suffix every stage reports: "<message> [Ln L, Col C]".
func New(category Category, pos Position, format string, args ...any) Diagnostic {
	return Diagnostic{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
		Pos:      pos,
	}
}

// Error implements the error interface.
func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s [Ln %d, Col %d]", d.Message, d.Pos.Line, d.Pos.Col)
}

// String is an alias for Error, matching the teacher's ParseError/SemanticError
// convention of exposing both.
func (d Diagnostic) String() string {
	return d.Error()
}
