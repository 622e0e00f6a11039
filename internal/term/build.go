package term

// BVar builds a bound-variable node.
func BVar(idx int) *Expr {
	return &Expr{Kind: KindBVar, Data: BVarData{Idx: idx}}
}

// FVar builds a free-variable node.
func FVar(name Name) *Expr {
	return &Expr{Kind: KindFVar, Data: FVarData{Name: name}}
}

// MVar builds a metavariable node.
func MVar(name Name) *Expr {
	return &Expr{Kind: KindMVar, Data: MVarData{Name: name}}
}

// Sort builds a universe node.
func Sort(level Level) *Expr {
	return &Expr{Kind: KindSort, Data: SortData{Level: level}}
}

// Prop is the proposition sort.
func Prop() *Expr {
	return Sort(LevelZero)
}

// TypeU is the sort of small data types.
func TypeU() *Expr {
	return Sort(LevelOne)
}

// Const builds a constant node.
func Const(name Name, levels ...Level) *Expr {
	return &Expr{Kind: KindConst, Data: ConstData{Name: name, Levels: levels}}
}

// App builds a single application node.
func App(fn, arg *Expr) *Expr {
	return &Expr{Kind: KindApp, Data: AppData{Fn: fn, Arg: arg}}
}

// AppN applies fn to the arguments left to right.
func AppN(fn *Expr, args ...*Expr) *Expr {
	e := fn
	for _, a := range args {
		e = App(e, a)
	}
	return e
}

// Lambda builds an abstraction node.
func Lambda(binder Name, ty, body *Expr) *Expr {
	return &Expr{Kind: KindLambda, Data: BinderData{Binder: binder, Type: ty, Body: body}}
}

// Pi builds a dependent function type node.
func Pi(binder Name, ty, body *Expr) *Expr {
	return &Expr{Kind: KindPi, Data: BinderData{Binder: binder, Type: ty, Body: body}}
}

// Arrow builds a non-dependent function type. The codomain is lifted
// past the fresh binder so its loose indices stay correct.
func Arrow(dom, cod *Expr) *Expr {
	return Pi(NoName, dom, LiftLooseBVars(cod, 0, 1))
}

// ArrowN folds a right-associated arrow chain ending in the last item.
func ArrowN(tys ...*Expr) *Expr {
	if len(tys) == 0 {
		return nil
	}
	e := tys[len(tys)-1]
	for i := len(tys) - 2; i >= 0; i-- {
		e = Arrow(tys[i], e)
	}
	return e
}

// Let builds a local definition node.
func Let(binder Name, ty, value, body *Expr) *Expr {
	return &Expr{Kind: KindLet, Data: LetData{Binder: binder, Type: ty, Value: value, Body: body}}
}

// MData wraps an expression in elaboration metadata.
func MData(info Name, inner *Expr) *Expr {
	return &Expr{Kind: KindMData, Data: MDataData{Info: info, Inner: inner}}
}

// Proj builds a structure projection node.
func Proj(structName Name, field int, val *Expr) *Expr {
	return &Expr{Kind: KindProj, Data: ProjData{Struct: structName, Field: field, Val: val}}
}

// NatLit builds a natural-number literal node.
func NatLit(n uint64) *Expr {
	return &Expr{Kind: KindLit, Data: LitData{Nat: n}}
}
