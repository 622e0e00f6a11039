package term

import (
	"fmt"
	"strconv"
	"strings"
)

// String renders the expression in the compact prefix syntax used by
// problem files and diagnostics. Binder names are regenerated when a
// binder is anonymous.
func (e *Expr) String() string {
	var b strings.Builder
	printExpr(&b, e, nil)
	return b.String()
}

func printExpr(b *strings.Builder, e *Expr, scope []Name) {
	if e == nil {
		b.WriteString("<nil>")
		return
	}
	switch e.Kind {
	case KindBVar:
		idx := e.Data.(BVarData).Idx
		if idx < len(scope) {
			b.WriteString(string(scope[len(scope)-1-idx]))
			return
		}
		fmt.Fprintf(b, "#%d", idx)
	case KindFVar:
		b.WriteString(string(e.Data.(FVarData).Name))
	case KindMVar:
		b.WriteByte('?')
		b.WriteString(string(e.Data.(MVarData).Name))
	case KindSort:
		level := e.Data.(SortData).Level
		if level.IsZero() {
			b.WriteString("Prop")
			return
		}
		if !level.IsParam() && level.N == 1 {
			b.WriteString("Type")
			return
		}
		b.WriteString("(sort ")
		b.WriteString(level.String())
		b.WriteByte(')')
	case KindConst:
		data := e.Data.(ConstData)
		if len(data.Levels) == 0 {
			b.WriteString(string(data.Name))
			return
		}
		b.WriteString("(const ")
		b.WriteString(string(data.Name))
		for _, l := range data.Levels {
			b.WriteByte(' ')
			b.WriteString(l.String())
		}
		b.WriteByte(')')
	case KindApp:
		head, args := AppSpine(e)
		b.WriteString("(app ")
		printExpr(b, head, scope)
		for _, a := range args {
			b.WriteByte(' ')
			printExpr(b, a, scope)
		}
		b.WriteByte(')')
	case KindLambda:
		printBinder(b, "lam", e, scope)
	case KindPi:
		if dom, cod, ok := ArrowParts(e); ok {
			// ArrowParts already dropped the vacuous binder, so the
			// codomain prints in the enclosing scope.
			b.WriteString("(-> ")
			printExpr(b, dom, scope)
			b.WriteByte(' ')
			printExpr(b, cod, scope)
			b.WriteByte(')')
			return
		}
		printBinder(b, "pi", e, scope)
	case KindLet:
		data := e.Data.(LetData)
		name := freshBinderName(data.Binder, scope)
		b.WriteString("(let ")
		b.WriteString(string(name))
		b.WriteByte(' ')
		printExpr(b, data.Type, scope)
		b.WriteByte(' ')
		printExpr(b, data.Value, scope)
		b.WriteByte(' ')
		printExpr(b, data.Body, append(scope, name))
		b.WriteByte(')')
	case KindMData:
		data := e.Data.(MDataData)
		b.WriteString("(mdata ")
		b.WriteString(string(data.Info))
		b.WriteByte(' ')
		printExpr(b, data.Inner, scope)
		b.WriteByte(')')
	case KindProj:
		data := e.Data.(ProjData)
		fmt.Fprintf(b, "(proj %s %d ", data.Struct, data.Field)
		printExpr(b, data.Val, scope)
		b.WriteByte(')')
	case KindLit:
		b.WriteString(strconv.FormatUint(e.Data.(LitData).Nat, 10))
	default:
		b.WriteString("<invalid>")
	}
}

func printBinder(b *strings.Builder, tag string, e *Expr, scope []Name) {
	data := e.Data.(BinderData)
	name := freshBinderName(data.Binder, scope)
	b.WriteByte('(')
	b.WriteString(tag)
	b.WriteByte(' ')
	b.WriteString(string(name))
	b.WriteByte(' ')
	printExpr(b, data.Type, scope)
	b.WriteByte(' ')
	printExpr(b, data.Body, append(scope, name))
	b.WriteByte(')')
}

func freshBinderName(name Name, scope []Name) Name {
	if name == NoName {
		name = Name("x" + strconv.Itoa(len(scope)))
	}
	for _, used := range scope {
		if used == name {
			return freshBinderName(name+"'", scope)
		}
	}
	return name
}
