package collect

import "sledge/internal/diag"

// SkipReason tags why an occurrence was not collected. Skips are
// ordinary results, not errors: the traversal continues and the reason
// lands on the diagnostic channel.
type SkipReason uint8

const (
	// SkipNone marks a collected occurrence.
	SkipNone SkipReason = iota
	// SkipNotInductive marks a head constant with no inductive
	// declaration.
	SkipNotInductive
	// SkipArity marks a type former applied to the wrong number of
	// parameters; partial applications are not concrete instantiations.
	SkipArity
	// SkipNonSimple marks a family or dependently-constructed type.
	SkipNonSimple
	// SkipGroupPoisoned marks a simple type whose mutual group has a
	// non-simple member.
	SkipGroupPoisoned
	// SkipClass marks a class-marked declaration.
	SkipClass
	// SkipDuplicate marks an instantiation already recorded up to
	// definitional equality.
	SkipDuplicate
	// SkipDependentBinder marks a dependent quantifier.
	SkipDependentBinder
	// SkipLambda marks an opaque abstraction body.
	SkipLambda
)

func (r SkipReason) String() string {
	switch r {
	case SkipNone:
		return "collected"
	case SkipNotInductive:
		return "not-inductive"
	case SkipArity:
		return "arity-mismatch"
	case SkipNonSimple:
		return "non-simple"
	case SkipGroupPoisoned:
		return "group-poisoned"
	case SkipClass:
		return "class"
	case SkipDuplicate:
		return "duplicate"
	case SkipDependentBinder:
		return "dependent-binder"
	case SkipLambda:
		return "lambda"
	default:
		return "unknown"
	}
}

// Code maps the skip reason to its diagnostic code.
func (r SkipReason) Code() diag.Code {
	switch r {
	case SkipNotInductive:
		return diag.CollectNotInductive
	case SkipArity:
		return diag.CollectArityMismatch
	case SkipNonSimple:
		return diag.CollectNonSimple
	case SkipGroupPoisoned:
		return diag.CollectGroupPoisoned
	case SkipClass:
		return diag.CollectClassSkipped
	case SkipDuplicate:
		return diag.CollectDuplicate
	case SkipDependentBinder:
		return diag.CollectDependentBinder
	case SkipLambda:
		return diag.CollectLambdaSkipped
	default:
		return diag.CollectInfo
	}
}

// Severity returns how loudly the skip is reported. Arity mismatches
// and poisoned or non-simple groups are warnings; the rest are
// expected traffic.
func (r SkipReason) Severity() diag.Severity {
	switch r {
	case SkipArity, SkipNonSimple, SkipGroupPoisoned:
		return diag.SevWarning
	default:
		return diag.SevInfo
	}
}
