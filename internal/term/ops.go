package term

// Eq reports structural equality of two expressions. Binder names are
// ignored: binding structure is positional through de Bruijn indices.
func Eq(a, b *Expr) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindBVar:
		return a.Data.(BVarData).Idx == b.Data.(BVarData).Idx
	case KindFVar:
		return a.Data.(FVarData).Name == b.Data.(FVarData).Name
	case KindMVar:
		return a.Data.(MVarData).Name == b.Data.(MVarData).Name
	case KindSort:
		return a.Data.(SortData).Level.Eq(b.Data.(SortData).Level)
	case KindConst:
		da, db := a.Data.(ConstData), b.Data.(ConstData)
		if da.Name != db.Name || len(da.Levels) != len(db.Levels) {
			return false
		}
		for i := range da.Levels {
			if !da.Levels[i].Eq(db.Levels[i]) {
				return false
			}
		}
		return true
	case KindApp:
		da, db := a.Data.(AppData), b.Data.(AppData)
		return Eq(da.Fn, db.Fn) && Eq(da.Arg, db.Arg)
	case KindLambda, KindPi:
		da, db := a.Data.(BinderData), b.Data.(BinderData)
		return Eq(da.Type, db.Type) && Eq(da.Body, db.Body)
	case KindLet:
		da, db := a.Data.(LetData), b.Data.(LetData)
		return Eq(da.Type, db.Type) && Eq(da.Value, db.Value) && Eq(da.Body, db.Body)
	case KindMData:
		da, db := a.Data.(MDataData), b.Data.(MDataData)
		return da.Info == db.Info && Eq(da.Inner, db.Inner)
	case KindProj:
		da, db := a.Data.(ProjData), b.Data.(ProjData)
		return da.Struct == db.Struct && da.Field == db.Field && Eq(da.Val, db.Val)
	case KindLit:
		return a.Data.(LitData).Nat == b.Data.(LitData).Nat
	default:
		return false
	}
}

// HasLooseBVar reports whether e references the binder at the given
// de Bruijn depth.
func HasLooseBVar(e *Expr, idx int) bool {
	found := false
	walkLoose(e, 0, func(bvarIdx, depth int) {
		if bvarIdx-depth == idx {
			found = true
		}
	})
	return found
}

// HasAnyLooseBVar reports whether e has any loose bound variable.
func HasAnyLooseBVar(e *Expr) bool {
	found := false
	walkLoose(e, 0, func(bvarIdx, depth int) {
		if bvarIdx >= depth {
			found = true
		}
	})
	return found
}

func walkLoose(e *Expr, depth int, fn func(bvarIdx, depth int)) {
	if e == nil {
		return
	}
	switch e.Kind {
	case KindBVar:
		fn(e.Data.(BVarData).Idx, depth)
	case KindApp:
		data := e.Data.(AppData)
		walkLoose(data.Fn, depth, fn)
		walkLoose(data.Arg, depth, fn)
	case KindLambda, KindPi:
		data := e.Data.(BinderData)
		walkLoose(data.Type, depth, fn)
		walkLoose(data.Body, depth+1, fn)
	case KindLet:
		data := e.Data.(LetData)
		walkLoose(data.Type, depth, fn)
		walkLoose(data.Value, depth, fn)
		walkLoose(data.Body, depth+1, fn)
	case KindMData:
		walkLoose(e.Data.(MDataData).Inner, depth, fn)
	case KindProj:
		walkLoose(e.Data.(ProjData).Val, depth, fn)
	default:
	}
}

// LiftLooseBVars shifts every loose index >= start by amount.
func LiftLooseBVars(e *Expr, start, amount int) *Expr {
	if e == nil || amount == 0 {
		return e
	}
	return liftAt(e, start, amount)
}

func liftAt(e *Expr, cutoff, amount int) *Expr {
	if e == nil {
		return nil
	}
	switch e.Kind {
	case KindBVar:
		idx := e.Data.(BVarData).Idx
		if idx >= cutoff {
			return BVar(idx + amount)
		}
		return e
	case KindApp:
		data := e.Data.(AppData)
		return App(liftAt(data.Fn, cutoff, amount), liftAt(data.Arg, cutoff, amount))
	case KindLambda:
		data := e.Data.(BinderData)
		return Lambda(data.Binder, liftAt(data.Type, cutoff, amount), liftAt(data.Body, cutoff+1, amount))
	case KindPi:
		data := e.Data.(BinderData)
		return Pi(data.Binder, liftAt(data.Type, cutoff, amount), liftAt(data.Body, cutoff+1, amount))
	case KindLet:
		data := e.Data.(LetData)
		return Let(data.Binder, liftAt(data.Type, cutoff, amount), liftAt(data.Value, cutoff, amount), liftAt(data.Body, cutoff+1, amount))
	case KindMData:
		data := e.Data.(MDataData)
		return MData(data.Info, liftAt(data.Inner, cutoff, amount))
	case KindProj:
		data := e.Data.(ProjData)
		return Proj(data.Struct, data.Field, liftAt(data.Val, cutoff, amount))
	default:
		return e
	}
}

// Instantiate substitutes sub for the outermost binder of body (index
// 0 at depth 0) and closes the gap left behind.
func Instantiate(body, sub *Expr) *Expr {
	return instAt(body, sub, 0)
}

func instAt(e, sub *Expr, depth int) *Expr {
	if e == nil {
		return nil
	}
	switch e.Kind {
	case KindBVar:
		idx := e.Data.(BVarData).Idx
		switch {
		case idx == depth:
			return LiftLooseBVars(sub, 0, depth)
		case idx > depth:
			return BVar(idx - 1)
		default:
			return e
		}
	case KindApp:
		data := e.Data.(AppData)
		return App(instAt(data.Fn, sub, depth), instAt(data.Arg, sub, depth))
	case KindLambda:
		data := e.Data.(BinderData)
		return Lambda(data.Binder, instAt(data.Type, sub, depth), instAt(data.Body, sub, depth+1))
	case KindPi:
		data := e.Data.(BinderData)
		return Pi(data.Binder, instAt(data.Type, sub, depth), instAt(data.Body, sub, depth+1))
	case KindLet:
		data := e.Data.(LetData)
		return Let(data.Binder, instAt(data.Type, sub, depth), instAt(data.Value, sub, depth), instAt(data.Body, sub, depth+1))
	case KindMData:
		data := e.Data.(MDataData)
		return MData(data.Info, instAt(data.Inner, sub, depth))
	case KindProj:
		data := e.Data.(ProjData)
		return Proj(data.Struct, data.Field, instAt(data.Val, sub, depth))
	default:
		return e
	}
}

// AbstractFVar replaces every occurrence of the free variable with a
// reference to a fresh outermost binder.
func AbstractFVar(e *Expr, name Name) *Expr {
	return absAt(e, name, 0)
}

func absAt(e *Expr, name Name, depth int) *Expr {
	if e == nil {
		return nil
	}
	switch e.Kind {
	case KindFVar:
		if e.Data.(FVarData).Name == name {
			return BVar(depth)
		}
		return e
	case KindBVar:
		return e
	case KindApp:
		data := e.Data.(AppData)
		return App(absAt(data.Fn, name, depth), absAt(data.Arg, name, depth))
	case KindLambda:
		data := e.Data.(BinderData)
		return Lambda(data.Binder, absAt(data.Type, name, depth), absAt(data.Body, name, depth+1))
	case KindPi:
		data := e.Data.(BinderData)
		return Pi(data.Binder, absAt(data.Type, name, depth), absAt(data.Body, name, depth+1))
	case KindLet:
		data := e.Data.(LetData)
		return Let(data.Binder, absAt(data.Type, name, depth), absAt(data.Value, name, depth), absAt(data.Body, name, depth+1))
	case KindMData:
		data := e.Data.(MDataData)
		return MData(data.Info, absAt(data.Inner, name, depth))
	case KindProj:
		data := e.Data.(ProjData)
		return Proj(data.Struct, data.Field, absAt(data.Val, name, depth))
	default:
		return e
	}
}

// AppSpine decomposes a (possibly nested) application into its head
// and argument list in application order.
func AppSpine(e *Expr) (*Expr, []*Expr) {
	var args []*Expr
	for e != nil && e.Kind == KindApp {
		data := e.Data.(AppData)
		args = append(args, data.Arg)
		e = data.Fn
	}
	for i, j := 0, len(args)-1; i < j; i, j = i+1, j-1 {
		args[i], args[j] = args[j], args[i]
	}
	return e, args
}

// ConstHead returns the head constant of an application spine, if any.
func ConstHead(e *Expr) (ConstData, bool) {
	head, _ := AppSpine(e)
	if head != nil && head.Kind == KindConst {
		return head.Data.(ConstData), true
	}
	return ConstData{}, false
}

// IsArrow reports whether e is a non-dependent function type.
func IsArrow(e *Expr) bool {
	if e == nil || e.Kind != KindPi {
		return false
	}
	return !HasLooseBVar(e.Data.(BinderData).Body, 0)
}

// ArrowParts splits a non-dependent function type into domain and
// codomain with the vacuous binder removed.
func ArrowParts(e *Expr) (dom, cod *Expr, ok bool) {
	if !IsArrow(e) {
		return nil, nil, false
	}
	data := e.Data.(BinderData)
	return data.Type, Instantiate(data.Body, BVar(0)), true
}

// ContainsKind reports whether any node of the given kind occurs in e.
func ContainsKind(e *Expr, kind Kind) bool {
	if e == nil {
		return false
	}
	if e.Kind == kind {
		return true
	}
	switch e.Kind {
	case KindApp:
		data := e.Data.(AppData)
		return ContainsKind(data.Fn, kind) || ContainsKind(data.Arg, kind)
	case KindLambda, KindPi:
		data := e.Data.(BinderData)
		return ContainsKind(data.Type, kind) || ContainsKind(data.Body, kind)
	case KindLet:
		data := e.Data.(LetData)
		return ContainsKind(data.Type, kind) || ContainsKind(data.Value, kind) || ContainsKind(data.Body, kind)
	case KindMData:
		return ContainsKind(e.Data.(MDataData).Inner, kind)
	case KindProj:
		return ContainsKind(e.Data.(ProjData).Val, kind)
	default:
		return false
	}
}

// HasMVar reports whether any metavariable occurs in e.
func HasMVar(e *Expr) bool {
	return ContainsKind(e, KindMVar)
}

// HasLevelParam reports whether any universe parameter occurs in e.
func HasLevelParam(e *Expr) bool {
	if e == nil {
		return false
	}
	switch e.Kind {
	case KindSort:
		return e.Data.(SortData).Level.IsParam()
	case KindConst:
		for _, l := range e.Data.(ConstData).Levels {
			if l.IsParam() {
				return true
			}
		}
		return false
	case KindApp:
		data := e.Data.(AppData)
		return HasLevelParam(data.Fn) || HasLevelParam(data.Arg)
	case KindLambda, KindPi:
		data := e.Data.(BinderData)
		return HasLevelParam(data.Type) || HasLevelParam(data.Body)
	case KindLet:
		data := e.Data.(LetData)
		return HasLevelParam(data.Type) || HasLevelParam(data.Value) || HasLevelParam(data.Body)
	case KindMData:
		return HasLevelParam(e.Data.(MDataData).Inner)
	case KindProj:
		return HasLevelParam(e.Data.(ProjData).Val)
	default:
		return false
	}
}

// InstantiateLevelParams substitutes universe parameters throughout e.
func InstantiateLevelParams(e *Expr, params []Name, values []Level) *Expr {
	if e == nil || len(params) == 0 {
		return e
	}
	switch e.Kind {
	case KindSort:
		return Sort(substLevel(e.Data.(SortData).Level, params, values))
	case KindConst:
		data := e.Data.(ConstData)
		levels := make([]Level, len(data.Levels))
		for i, l := range data.Levels {
			levels[i] = substLevel(l, params, values)
		}
		return Const(data.Name, levels...)
	case KindApp:
		data := e.Data.(AppData)
		return App(InstantiateLevelParams(data.Fn, params, values), InstantiateLevelParams(data.Arg, params, values))
	case KindLambda:
		data := e.Data.(BinderData)
		return Lambda(data.Binder, InstantiateLevelParams(data.Type, params, values), InstantiateLevelParams(data.Body, params, values))
	case KindPi:
		data := e.Data.(BinderData)
		return Pi(data.Binder, InstantiateLevelParams(data.Type, params, values), InstantiateLevelParams(data.Body, params, values))
	case KindLet:
		data := e.Data.(LetData)
		return Let(data.Binder, InstantiateLevelParams(data.Type, params, values), InstantiateLevelParams(data.Value, params, values), InstantiateLevelParams(data.Body, params, values))
	case KindMData:
		data := e.Data.(MDataData)
		return MData(data.Info, InstantiateLevelParams(data.Inner, params, values))
	case KindProj:
		data := e.Data.(ProjData)
		return Proj(data.Struct, data.Field, InstantiateLevelParams(data.Val, params, values))
	default:
		return e
	}
}
