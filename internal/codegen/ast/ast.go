// Package ast defines the target-agnostic syntax tree produced by the
// translators and consumed by printers.
package ast

// NodeKind identifies a node type
type NodeKind int

const (
	NodeIdent NodeKind = iota
	NodeMember
	NodeCall
	NodePipe
	NodeString
	NodeNumber
	NodeBigInt
	NodeRegex
	NodeObject
	NodeFunc
	NodeDeferredRef
	NodeImport
	NodeClass
	NodeConst
)

// Node is implemented by every syntax tree node
type Node interface {
	Kind() NodeKind
}

// Expr is a node that produces a value
type Expr interface {
	Node
	expr()
}

// Stmt is a top-level statement of a file
type Stmt interface {
	Node
	stmt()
}

// Ident is a bare identifier
type Ident struct {
	Name string
}

// Member is a property access: Object.Name
type Member struct {
	Object Expr
	Name   string
}

// Call is a call expression. TypeArgs are dropped by printers for untyped targets.
type Call struct {
	Callee   Expr
	TypeArgs []string
	Args     []Expr
}

// Pipe applies Steps to Target in order: Target.pipe(step1, step2, ...)
type Pipe struct {
	Target Expr
	Steps  []Expr
}

// StringLit is a string literal holding the unescaped value
type StringLit struct {
	Value string
}

// NumberLit is a numeric literal holding its source text
type NumberLit struct {
	Raw string
}

// BigIntLit is an arbitrary precision integer literal holding its digits
type BigIntLit struct {
	Raw string
}

// RegexLit is a regular expression literal
type RegexLit struct {
	Pattern string
	Flags   string
}

// Property is a key/value pair of an object literal
type Property struct {
	Name  string
	Value Expr
	Doc   string
}

// ObjectLit is an object literal. Multiline objects put one property per line.
type ObjectLit struct {
	Props     []Property
	Multiline bool
}

// Func is a zero-argument function returning Body
type Func struct {
	Body Expr
}

// DeferredRef is a lazily resolved reference to another declaration. Printers
// render it with a forward-reference idiom so that declarations in separate
// files may reference each other.
type DeferredRef struct {
	Name string
}

// ImportDecl imports named symbols from a module. Relative module paths carry
// no file extension; printers add one when the target requires it.
type ImportDecl struct {
	Names []string
	From  string
}

// ClassDecl declares a class extending Extends
type ClassDecl struct {
	Name    string
	Export  bool
	Doc     string
	Extends Expr
}

// ConstDecl binds Name to Value
type ConstDecl struct {
	Name   string
	Export bool
	Doc    string
	Value  Expr
}

// File is the full syntax tree of one output file
type File struct {
	Name  string
	Stmts []Stmt
}

func (*Ident) Kind() NodeKind       { return NodeIdent }
func (*Member) Kind() NodeKind      { return NodeMember }
func (*Call) Kind() NodeKind        { return NodeCall }
func (*Pipe) Kind() NodeKind        { return NodePipe }
func (*StringLit) Kind() NodeKind   { return NodeString }
func (*NumberLit) Kind() NodeKind   { return NodeNumber }
func (*BigIntLit) Kind() NodeKind   { return NodeBigInt }
func (*RegexLit) Kind() NodeKind    { return NodeRegex }
func (*ObjectLit) Kind() NodeKind   { return NodeObject }
func (*Func) Kind() NodeKind        { return NodeFunc }
func (*DeferredRef) Kind() NodeKind { return NodeDeferredRef }
func (*ImportDecl) Kind() NodeKind  { return NodeImport }
func (*ClassDecl) Kind() NodeKind   { return NodeClass }
func (*ConstDecl) Kind() NodeKind   { return NodeConst }

func (*Ident) expr()       {}
func (*Member) expr()      {}
func (*Call) expr()        {}
func (*Pipe) expr()        {}
func (*StringLit) expr()   {}
func (*NumberLit) expr()   {}
func (*BigIntLit) expr()   {}
func (*RegexLit) expr()    {}
func (*ObjectLit) expr()   {}
func (*Func) expr()        {}
func (*DeferredRef) expr() {}

func (*ImportDecl) stmt() {}
func (*ClassDecl) stmt()  {}
func (*ConstDecl) stmt()  {}

// Helpers used by translators to keep tree construction terse.

// Id returns an identifier node
func Id(name string) *Ident {
	return &Ident{Name: name}
}

// Sel returns object.name for an identifier object
func Sel(object, name string) *Member {
	return &Member{Object: Id(object), Name: name}
}

// CallOf returns callee(args...)
func CallOf(callee Expr, args ...Expr) *Call {
	return &Call{Callee: callee, Args: args}
}

// Str returns a string literal
func Str(value string) *StringLit {
	return &StringLit{Value: value}
}

// Num returns a number literal
func Num(raw string) *NumberLit {
	return &NumberLit{Raw: raw}
}
