package ast

// Visibility is a class/interface member's access level.
type Visibility int

const (
	VisPublic Visibility = iota
	VisProtected
	VisPrivate
)

// ModuleDecl is the root of one compilation unit's AST. Imported
// declarations are merged into Decls by the ImportResolver, prepended so
// that imported symbols precede any references to them (spec §4.5).
type ModuleDecl struct {
	base
	Name  string
	Decls []Decl
}

func (*ModuleDecl) declNode()          {}
func (*ModuleDecl) DeclKind() DeclKind { return DeclModule }

// ImportDecl is "import"/"bind"/"uses".
type ImportDecl struct {
	base
	Path  string // as written in source, before resolution
	Alias string // optional local alias; "" when absent
}

func (*ImportDecl) declNode()          {}
func (*ImportDecl) DeclKind() DeclKind { return DeclImport }

// Field is a class/interface/record field.
type FieldDecl struct {
	base
	Name       string
	Type       TypeNode
	Visibility Visibility
	IsFinal    bool
	IsWeak     bool // non-owning reference; only legal on entity/interface types
	Default    Expr
}

func (*FieldDecl) declNode()          {}
func (*FieldDecl) DeclKind() DeclKind { return DeclField }

// Property is a class computed member backed by getter/setter methods.
type PropertyDecl struct {
	base
	Name   string
	Type   TypeNode
	Getter string // method name; "" if write-only
	Setter string // method name; "" if read-only
}

func (*PropertyDecl) declNode()          {}
func (*PropertyDecl) DeclKind() DeclKind { return DeclField }

// FunctionDecl is a free function or procedure.
type FunctionDecl struct {
	base
	Name        string
	Params      []Param
	Ret         TypeNode // nil for a procedure returning Unit
	Body        *BlockStmt
	IsOverload  bool
	IsExtern    bool
	ExternName  string // dotted runtime-registry name, when IsExtern
}

func (*FunctionDecl) declNode()          {}
func (*FunctionDecl) DeclKind() DeclKind { return DeclFunction }

// MethodDecl is a class/interface method.
type MethodDecl struct {
	base
	Name       string
	Params     []Param
	Ret        TypeNode
	Body       *BlockStmt // nil for abstract/interface methods
	Visibility Visibility
	IsVirtual  bool
	IsAbstract bool
	IsOverride bool
	IsStatic   bool
}

func (*MethodDecl) declNode()          {}
func (*MethodDecl) DeclKind() DeclKind { return DeclMethod }

// ConstructorDecl is a class constructor.
type ConstructorDecl struct {
	base
	Name   string // conventionally "Create"/"init"; dialect-specific
	Params []Param
	Body   *BlockStmt
}

func (*ConstructorDecl) declNode()          {}
func (*ConstructorDecl) DeclKind() DeclKind { return DeclConstructor }

// TypeDeclKind distinguishes value/entity/interface declarations, which
// share one AST shape but differ in copy-vs-reference semantics.
type TypeDeclKind int

const (
	KindValue TypeDeclKind = iota
	KindEntity
	KindInterface
)

// TypeDecl is a value/entity/interface type declaration.
type TypeDecl struct {
	base
	Kind         TypeDeclKind
	Name         string
	TypeParams   []string // generic parameters, e.g. ["T", "U"]
	Base         *NamedType // single base class; nil for value/interface or no base
	Interfaces   []*NamedType
	Fields       []*FieldDecl
	Properties   []*PropertyDecl
	Methods      []*MethodDecl
	Constructors []*ConstructorDecl
	IsAbstract   bool
}

func (t *TypeDecl) declNode() {}
func (t *TypeDecl) DeclKind() DeclKind {
	switch t.Kind {
	case KindInterface:
		return DeclInterface
	case KindValue:
		return DeclValue
	default:
		return DeclEntity
	}
}

// GlobalVarDecl is a module-level variable/constant.
type GlobalVarDecl struct {
	base
	Name    string
	Type    TypeNode
	Init    Expr
	IsConst bool
	IsFinal bool
}

func (*GlobalVarDecl) declNode()          {}
func (*GlobalVarDecl) DeclKind() DeclKind { return DeclGlobalVar }

// NamespaceDecl nests declarations under a qualified name (BASIC, Zia; spec
// §4.6 "Namespaces").
type NamespaceDecl struct {
	base
	Path  []string // e.g. ["X", "Y"] for "NAMESPACE X.Y"
	Decls []Decl
}

func (*NamespaceDecl) declNode()          {}
func (*NamespaceDecl) DeclKind() DeclKind { return DeclNamespace }
