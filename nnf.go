package setdec

// Stage 4: negation normalization.
//
// Push mode drives negations down to atoms, pull mode hoists them
// toward the root. The intuitionistically valid rules (De Morgan over
// a negated disjunction, negation collection) fire unconditionally.
// The classically valid ones (double negation elimination, implication
// and iff expansion, negated implication splitting) fire only when the
// decidability base covers the sub-formula they case on; otherwise the
// negation stays where it is and the search may report stuck.

// pushNeg returns the negation normal form of f: conjunctions,
// disjunctions and (possibly negated) atoms, with implications and
// bi-implications expanded away wherever decidability permits.
func pushNeg(f Formula, base *FactBase) Formula {
	switch f := f.(type) {
	case TrueForm, FalseForm:
		return f
	case Atom:
		return f
	case NotForm:
		return negPush(f.Inner, base)
	case AndForm:
		return AndForm{Left: pushNeg(f.Left, base), Right: pushNeg(f.Right, base)}
	case OrForm:
		return OrForm{Left: pushNeg(f.Left, base), Right: pushNeg(f.Right, base)}
	case ImpliesForm:
		// a -> b becomes !a || b, casing on a.
		if base.Decidable(f.Left) {
			return OrForm{Left: negPush(f.Left, base), Right: pushNeg(f.Right, base)}
		}
		return ImpliesForm{Left: pushNeg(f.Left, base), Right: pushNeg(f.Right, base)}
	case IffForm:
		// a <-> b becomes (!a || b) && (!b || a).
		if base.Decidable(f.Left) && base.Decidable(f.Right) {
			return AndForm{
				Left:  OrForm{Left: negPush(f.Left, base), Right: pushNeg(f.Right, base)},
				Right: OrForm{Left: negPush(f.Right, base), Right: pushNeg(f.Left, base)},
			}
		}
		return IffForm{Left: pushNeg(f.Left, base), Right: pushNeg(f.Right, base)}
	default:
		return f
	}
}

// negPush returns the negation normal form of !f.
func negPush(f Formula, base *FactBase) Formula {
	switch f := f.(type) {
	case TrueForm:
		return FalseForm{}
	case FalseForm:
		return TrueForm{}
	case Atom:
		return NotForm{Inner: f}
	case NotForm:
		// !!g collapses to g only when g is decidable.
		if base.Decidable(f.Inner) {
			return pushNeg(f.Inner, base)
		}
		return NotForm{Inner: negPush(f.Inner, base)}
	case AndForm:
		return OrForm{Left: negPush(f.Left, base), Right: negPush(f.Right, base)}
	case OrForm:
		return AndForm{Left: negPush(f.Left, base), Right: negPush(f.Right, base)}
	case ImpliesForm:
		// !(a -> b) becomes a && !b, casing on a.
		if base.Decidable(f.Left) {
			return AndForm{Left: pushNeg(f.Left, base), Right: negPush(f.Right, base)}
		}
		return NotForm{Inner: pushNeg(f, base)}
	case IffForm:
		// !(a <-> b) becomes (a && !b) || (b && !a).
		if base.Decidable(f.Left) && base.Decidable(f.Right) {
			return OrForm{
				Left:  AndForm{Left: pushNeg(f.Left, base), Right: negPush(f.Right, base)},
				Right: AndForm{Left: pushNeg(f.Right, base), Right: negPush(f.Left, base)},
			}
		}
		return NotForm{Inner: pushNeg(f, base)}
	default:
		return NotForm{Inner: f}
	}
}

// pullNeg collects negations toward the root where that is valid
// without decidability: !a && !b becomes !(a || b), and !a || !b
// becomes !(a && b). Applied bottom-up in one pass.
func pullNeg(f Formula) Formula {
	switch f := f.(type) {
	case NotForm:
		return NotForm{Inner: pullNeg(f.Inner)}
	case AndForm:
		l, r := pullNeg(f.Left), pullNeg(f.Right)
		if ln, ok := l.(NotForm); ok {
			if rn, ok := r.(NotForm); ok {
				return NotForm{Inner: OrForm{Left: ln.Inner, Right: rn.Inner}}
			}
		}
		return AndForm{Left: l, Right: r}
	case OrForm:
		l, r := pullNeg(f.Left), pullNeg(f.Right)
		if ln, ok := l.(NotForm); ok {
			if rn, ok := r.(NotForm); ok {
				return NotForm{Inner: AndForm{Left: ln.Inner, Right: rn.Inner}}
			}
		}
		return OrForm{Left: l, Right: r}
	case ImpliesForm:
		return ImpliesForm{Left: pullNeg(f.Left), Right: pullNeg(f.Right)}
	case IffForm:
		return IffForm{Left: pullNeg(f.Left), Right: pullNeg(f.Right)}
	default:
		return f
	}
}

// normalize applies pull when it strictly reduces the negation count,
// then push. Pull never affects the final normal form, only the amount
// of work push and the search do.
func normalize(f Formula, base *FactBase) Formula {
	if pulled := pullNeg(f); negationCount(pulled) < negationCount(f) {
		f = pulled
	}
	return pushNeg(f, base)
}
