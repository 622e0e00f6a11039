package collect

import (
	"fmt"

	"sledge/internal/decl"
	"sledge/internal/diag"
	"sledge/internal/term"
)

// TypeEquivalenceChecker is the capability the collector needs from
// the equality substrate: a restartable definitional-equality test.
type TypeEquivalenceChecker interface {
	IsDefEq(a, b *term.Expr) bool
}

// Collector walks expression trees discovering every maximal
// application of a simple inductive type former, resolving mutual
// groups, and deduplicating instantiations under definitional
// equality. One Collector owns one collection run's state and is not
// safe for concurrent use.
type Collector struct {
	env      *decl.Env
	builder  *Builder
	eq       TypeEquivalenceChecker
	reporter diag.Reporter
	recorded map[term.Name][]*term.Expr
	forest   *Forest
}

// NewCollector creates a collector with fresh state.
func NewCollector(env *decl.Env, builder *Builder, eq TypeEquivalenceChecker, reporter diag.Reporter) *Collector {
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	return &Collector{
		env:      env,
		builder:  builder,
		eq:       eq,
		reporter: reporter,
		recorded: make(map[term.Name][]*term.Expr, 16),
		forest:   NewForest(),
	}
}

// Collect visits every root and returns the accumulated forest.
// Roots visited by later calls share the same recorded state, so an
// instantiation is collected at most once per Collector.
func (c *Collector) Collect(roots ...*term.Expr) (*Forest, error) {
	for _, root := range roots {
		if err := c.visit(root); err != nil {
			return nil, err
		}
	}
	return c.forest, nil
}

// Forest returns the groups collected so far.
func (c *Collector) Forest() *Forest {
	return c.forest
}

func (c *Collector) visit(e *term.Expr) error {
	if e == nil {
		return nil
	}
	switch e.Kind {
	case term.KindLet, term.KindMData, term.KindProj:
		return fmt.Errorf("%w: %s in %s", ErrUpstreamForm, e.Kind, e)
	case term.KindLambda:
		c.skip(SkipLambda, e.String(), "abstraction body is opaque to collection")
		return nil
	case term.KindPi:
		data := e.Data.(term.BinderData)
		if term.HasLooseBVar(data.Body, 0) {
			c.skip(SkipDependentBinder, e.String(), "dependent quantifier cannot be flattened")
			return nil
		}
		if err := c.visit(data.Type); err != nil {
			return err
		}
		// Non-dependent, so the binder can be discarded.
		return c.visit(term.Instantiate(data.Body, term.FVar("_cod")))
	case term.KindApp:
		head, args := term.AppSpine(e)
		switch head.Kind {
		case term.KindConst:
			if err := c.match(head.Data.(term.ConstData), args); err != nil {
				return err
			}
		case term.KindLambda:
			c.skip(SkipLambda, head.String(), "abstraction head is opaque to collection")
		default:
			// Applications of variables are atomic leaves.
		}
		// Arguments are walked independently even when the head was
		// skipped or deduplicated.
		for _, a := range args {
			if err := c.visit(a); err != nil {
				return err
			}
		}
		return nil
	case term.KindConst:
		// A bare constant is a maximal application with zero arguments.
		return c.match(e.Data.(term.ConstData), nil)
	default:
		return nil
	}
}

// match runs the head-matching step on one maximal application.
func (c *Collector) match(head term.ConstData, args []*term.Expr) error {
	info, ok := c.env.Inductive(head.Name)
	if !ok {
		c.skip(SkipNotInductive, string(head.Name), "head does not resolve to an inductive type")
		return nil
	}
	if len(args) != info.NumParams {
		c.skip(SkipArity, string(head.Name),
			fmt.Sprintf("applied to %d arguments, wants %d parameters", len(args), info.NumParams))
		return nil
	}
	// One non-simple member poisons the whole group: a partial mutual
	// group cannot be represented downstream.
	for _, member := range info.Mutual {
		simple, err := IsSimpleInductive(c.env, member)
		if err != nil {
			c.reporter.Report(diag.CollectClassifyFailed, diag.SevWarning, string(member), err.Error())
			return nil
		}
		if !simple {
			if member == head.Name {
				c.skip(SkipNonSimple, string(head.Name), "family or dependent constructor")
			} else {
				c.skip(SkipGroupPoisoned, string(head.Name),
					fmt.Sprintf("mutual member %s is not simple", member))
			}
			return nil
		}
	}
	if info.IsClass {
		c.skip(SkipClass, string(head.Name), "class-marked declaration")
		return nil
	}
	candidate := term.AppN(term.Const(head.Name, head.Levels...), args...)
	for _, prev := range c.recorded[head.Name] {
		if c.eq.IsDefEq(prev, candidate) {
			c.skip(SkipDuplicate, string(head.Name), "instantiation already recorded")
			return nil
		}
	}
	// Register the same instantiation under every group member before
	// expanding any constructor, so self-references and mutual
	// references terminate on the recorded entry.
	for _, member := range info.Mutual {
		c.recorded[member] = append(c.recorded[member],
			term.AppN(term.Const(member, head.Levels...), args...))
	}
	group := make([]InstInductive, 0, len(info.Mutual))
	for _, member := range info.Mutual {
		inst, err := c.builder.Build(member, head.Levels, args)
		if err != nil {
			return err
		}
		group = append(group, inst)
	}
	for i := range group {
		for _, ctor := range group[i].Ctors {
			if err := c.visit(ctor.Type); err != nil {
				return err
			}
		}
	}
	return c.forest.addGroup(group)
}

func (c *Collector) skip(reason SkipReason, subject, msg string) {
	c.reporter.Report(reason.Code(), reason.Severity(), subject, msg)
}
