package term

// Kind enumerates the expression forms of the ambient logic.
type Kind uint8

const (
	// KindBVar is a bound variable as a de Bruijn index.
	KindBVar Kind = iota
	// KindFVar is a free variable referring to a hypothesis or local.
	KindFVar
	// KindMVar is a metavariable introduced during specialization.
	KindMVar
	// KindSort is a universe (Sort 0 is the proposition sort).
	KindSort
	// KindConst is a named constant with universe level arguments.
	KindConst
	// KindApp is a binary application; n-ary applications are spines.
	KindApp
	// KindLambda is a function abstraction.
	KindLambda
	// KindPi is a dependent function type. A Pi whose body has no
	// loose reference to its binder is a plain arrow.
	KindPi
	// KindLet is a local definition. Eliminated by reduction before
	// the collection engines run.
	KindLet
	// KindMData is an elaboration metadata wrapper. Eliminated by
	// reduction before the collection engines run.
	KindMData
	// KindProj is a structure field projection. Eliminated by
	// reduction before the collection engines run.
	KindProj
	// KindLit is a primitive literal.
	KindLit
)

// String returns a human-readable name for the expression kind.
func (k Kind) String() string {
	switch k {
	case KindBVar:
		return "BVar"
	case KindFVar:
		return "FVar"
	case KindMVar:
		return "MVar"
	case KindSort:
		return "Sort"
	case KindConst:
		return "Const"
	case KindApp:
		return "App"
	case KindLambda:
		return "Lambda"
	case KindPi:
		return "Pi"
	case KindLet:
		return "Let"
	case KindMData:
		return "MData"
	case KindProj:
		return "Proj"
	case KindLit:
		return "Lit"
	default:
		return "Unknown"
	}
}

// Name identifies constants, free variables and universe parameters.
type Name string

// NoName marks anonymous binders.
const NoName Name = ""

// Expr is one node of an expression tree. Data holds the kind-specific
// payload struct.
type Expr struct {
	Kind Kind
	Data any
}

// BVarData is the payload of KindBVar.
type BVarData struct {
	Idx int
}

// FVarData is the payload of KindFVar.
type FVarData struct {
	Name Name
}

// MVarData is the payload of KindMVar.
type MVarData struct {
	Name Name
}

// SortData is the payload of KindSort.
type SortData struct {
	Level Level
}

// ConstData is the payload of KindConst.
type ConstData struct {
	Name   Name
	Levels []Level
}

// AppData is the payload of KindApp.
type AppData struct {
	Fn  *Expr
	Arg *Expr
}

// BinderData is the shared payload of KindLambda and KindPi.
type BinderData struct {
	Binder Name
	Type   *Expr
	Body   *Expr
}

// LetData is the payload of KindLet.
type LetData struct {
	Binder Name
	Type   *Expr
	Value  *Expr
	Body   *Expr
}

// MDataData is the payload of KindMData.
type MDataData struct {
	Info  Name
	Inner *Expr
}

// ProjData is the payload of KindProj.
type ProjData struct {
	Struct Name
	Field  int
	Val    *Expr
}

// LitData is the payload of KindLit. Only natural literals occur in
// the fragment the bridge handles.
type LitData struct {
	Nat uint64
}
