package setdec

// Stage 1: fragment classification.
//
// Eq and In atoms are relevant anywhere inside a formula. Empty,
// Subset and SetEq read as universally quantified statements, so they
// are relevant only when they constitute the whole hypothesis or goal;
// embedded under a connective they would require instantiation inside
// an arbitrary boolean context, which the instantiator does not do.

// inFragment reports whether f lies in the supported fragment.
// topLevel is true when f is the entire hypothesis or goal.
func inFragment(f Formula, topLevel bool) bool {
	switch f := f.(type) {
	case TrueForm, FalseForm:
		return true
	case EqAtom, InAtom:
		return true
	case EmptyAtom, SubsetAtom, SetEqAtom:
		return topLevel
	case NotForm:
		return inFragment(f.Inner, false)
	case AndForm:
		return inFragment(f.Left, false) && inFragment(f.Right, false)
	case OrForm:
		return inFragment(f.Left, false) && inFragment(f.Right, false)
	case ImpliesForm:
		return inFragment(f.Left, false) && inFragment(f.Right, false)
	case IffForm:
		return inFragment(f.Left, false) && inFragment(f.Right, false)
	default:
		return false
	}
}

// classifyContext splits hypotheses into the relevant ones and the
// names of those dropped. Dropping can lose proofs that needed an
// out-of-fragment fact, never soundness: remaining facts are still
// true, so anything proved from them holds.
func classifyContext(hyps []Hypothesis) (kept []Hypothesis, dropped []string) {
	for _, h := range hyps {
		if inFragment(h.Formula, true) {
			kept = append(kept, h)
		} else {
			dropped = append(dropped, h.Name)
		}
	}
	return kept, dropped
}
