package setdec

// Stage 3: membership rewriting.
//
// Every In atom over a compound set term is rewritten into a boolean
// combination of In atoms over set variables, one rule per
// constructor. The recursion is innermost-first and each rule strictly
// decreases the constructor depth of the set argument, so a single
// structural pass reaches the fixpoint.

// rewriteIn unfolds membership in a compound set term.
func rewriteIn(x Elem, s Set) Formula {
	switch s := s.(type) {
	case SetVar:
		return InAtom{Elem: x, Set: s}
	case SetEmpty:
		return FalseForm{}
	case SetSingleton:
		return EqAtom{Left: x, Right: s.Elem}
	case SetAdd:
		return OrForm{
			Left:  EqAtom{Left: x, Right: s.Elem},
			Right: rewriteIn(x, s.Set),
		}
	case SetRemove:
		return AndForm{
			Left:  NotForm{Inner: EqAtom{Left: x, Right: s.Elem}},
			Right: rewriteIn(x, s.Set),
		}
	case SetUnion:
		return OrForm{
			Left:  rewriteIn(x, s.Left),
			Right: rewriteIn(x, s.Right),
		}
	case SetInter:
		return AndForm{
			Left:  rewriteIn(x, s.Left),
			Right: rewriteIn(x, s.Right),
		}
	case SetDiff:
		return AndForm{
			Left:  rewriteIn(x, s.Left),
			Right: NotForm{Inner: rewriteIn(x, s.Right)},
		}
	default:
		return InAtom{Elem: x, Set: s}
	}
}

// rewriteMemberships applies rewriteIn to every In atom in f. After
// it returns, every In atom's set argument is a bare variable.
func rewriteMemberships(f Formula) Formula {
	switch f := f.(type) {
	case InAtom:
		return rewriteIn(f.Elem, f.Set)
	case NotForm:
		return NotForm{Inner: rewriteMemberships(f.Inner)}
	case AndForm:
		return AndForm{Left: rewriteMemberships(f.Left), Right: rewriteMemberships(f.Right)}
	case OrForm:
		return OrForm{Left: rewriteMemberships(f.Left), Right: rewriteMemberships(f.Right)}
	case ImpliesForm:
		return ImpliesForm{Left: rewriteMemberships(f.Left), Right: rewriteMemberships(f.Right)}
	case IffForm:
		return IffForm{Left: rewriteMemberships(f.Left), Right: rewriteMemberships(f.Right)}
	default:
		return f
	}
}
