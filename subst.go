package setdec

// Stage 5: equality elimination.
//
// A proven equality whose one side is a variable not occurring on the
// other side is eliminated by substituting the variable everywhere in
// the context and goal and dropping the now-trivial equality. Each
// round removes one distinct variable, which bounds the fixpoint.
// The same machinery serves element equalities and extensional set
// equalities; the caller's element-equality notion is consulted only
// when testing atoms for triviality, substitution itself is always
// syntactic replacement.

// ElemEqFunc is the element-equality notion used when comparing
// element terms. The default is syntactic equality.
type ElemEqFunc func(a, b Elem) bool

func syntacticElemEq(a, b Elem) bool {
	return a.Equal(b)
}

// substElem replaces element variable name by repl inside e.
func substElem(name string, repl Elem, e Elem) Elem {
	switch e := e.(type) {
	case ElemVar:
		if e.Name == name {
			return repl
		}
		return e
	case ElemApp:
		args := make([]Elem, len(e.Args))
		for i, a := range e.Args {
			args[i] = substElem(name, repl, a)
		}
		return ElemApp{Fn: e.Fn, Args: args}
	default:
		return e
	}
}

// substElemInSet replaces element variable name by repl inside s.
func substElemInSet(name string, repl Elem, s Set) Set {
	switch s := s.(type) {
	case SetSingleton:
		return SetSingleton{Elem: substElem(name, repl, s.Elem)}
	case SetAdd:
		return SetAdd{Elem: substElem(name, repl, s.Elem), Set: substElemInSet(name, repl, s.Set)}
	case SetRemove:
		return SetRemove{Elem: substElem(name, repl, s.Elem), Set: substElemInSet(name, repl, s.Set)}
	case SetUnion:
		return SetUnion{Left: substElemInSet(name, repl, s.Left), Right: substElemInSet(name, repl, s.Right)}
	case SetInter:
		return SetInter{Left: substElemInSet(name, repl, s.Left), Right: substElemInSet(name, repl, s.Right)}
	case SetDiff:
		return SetDiff{Left: substElemInSet(name, repl, s.Left), Right: substElemInSet(name, repl, s.Right)}
	default:
		return s
	}
}

// substSet replaces set variable name by repl inside s.
func substSet(name string, repl Set, s Set) Set {
	switch s := s.(type) {
	case SetVar:
		if s.Name == name {
			return repl
		}
		return s
	case SetAdd:
		return SetAdd{Elem: s.Elem, Set: substSet(name, repl, s.Set)}
	case SetRemove:
		return SetRemove{Elem: s.Elem, Set: substSet(name, repl, s.Set)}
	case SetUnion:
		return SetUnion{Left: substSet(name, repl, s.Left), Right: substSet(name, repl, s.Right)}
	case SetInter:
		return SetInter{Left: substSet(name, repl, s.Left), Right: substSet(name, repl, s.Right)}
	case SetDiff:
		return SetDiff{Left: substSet(name, repl, s.Left), Right: substSet(name, repl, s.Right)}
	default:
		return s
	}
}

// substElemFormula replaces element variable name by repl inside f.
func substElemFormula(name string, repl Elem, f Formula) Formula {
	switch f := f.(type) {
	case EqAtom:
		return EqAtom{Left: substElem(name, repl, f.Left), Right: substElem(name, repl, f.Right)}
	case InAtom:
		return InAtom{Elem: substElem(name, repl, f.Elem), Set: substElemInSet(name, repl, f.Set)}
	case EmptyAtom:
		return EmptyAtom{Set: substElemInSet(name, repl, f.Set)}
	case SubsetAtom:
		return SubsetAtom{Left: substElemInSet(name, repl, f.Left), Right: substElemInSet(name, repl, f.Right)}
	case SetEqAtom:
		return SetEqAtom{Left: substElemInSet(name, repl, f.Left), Right: substElemInSet(name, repl, f.Right)}
	case NotForm:
		return NotForm{Inner: substElemFormula(name, repl, f.Inner)}
	case AndForm:
		return AndForm{Left: substElemFormula(name, repl, f.Left), Right: substElemFormula(name, repl, f.Right)}
	case OrForm:
		return OrForm{Left: substElemFormula(name, repl, f.Left), Right: substElemFormula(name, repl, f.Right)}
	case ImpliesForm:
		return ImpliesForm{Left: substElemFormula(name, repl, f.Left), Right: substElemFormula(name, repl, f.Right)}
	case IffForm:
		return IffForm{Left: substElemFormula(name, repl, f.Left), Right: substElemFormula(name, repl, f.Right)}
	default:
		return f
	}
}

// substSetFormula replaces set variable name by repl inside f.
func substSetFormula(name string, repl Set, f Formula) Formula {
	switch f := f.(type) {
	case InAtom:
		return InAtom{Elem: f.Elem, Set: substSet(name, repl, f.Set)}
	case EmptyAtom:
		return EmptyAtom{Set: substSet(name, repl, f.Set)}
	case SubsetAtom:
		return SubsetAtom{Left: substSet(name, repl, f.Left), Right: substSet(name, repl, f.Right)}
	case SetEqAtom:
		return SetEqAtom{Left: substSet(name, repl, f.Left), Right: substSet(name, repl, f.Right)}
	case NotForm:
		return NotForm{Inner: substSetFormula(name, repl, f.Inner)}
	case AndForm:
		return AndForm{Left: substSetFormula(name, repl, f.Left), Right: substSetFormula(name, repl, f.Right)}
	case OrForm:
		return OrForm{Left: substSetFormula(name, repl, f.Left), Right: substSetFormula(name, repl, f.Right)}
	case ImpliesForm:
		return ImpliesForm{Left: substSetFormula(name, repl, f.Left), Right: substSetFormula(name, repl, f.Right)}
	case IffForm:
		return IffForm{Left: substSetFormula(name, repl, f.Left), Right: substSetFormula(name, repl, f.Right)}
	default:
		return f
	}
}

// elimElemEq extracts the variable-to-term binding of an element
// equality, if it has one. The occurs check keeps substitution from
// re-introducing the variable it removes.
func elimElemEq(a EqAtom) (name string, repl Elem, ok bool) {
	if v, vok := a.Left.(ElemVar); vok && !occursInElem(v.Name, a.Right) {
		return v.Name, a.Right, true
	}
	if v, vok := a.Right.(ElemVar); vok && !occursInElem(v.Name, a.Left) {
		return v.Name, a.Left, true
	}
	return "", nil, false
}

// elimSetEq extracts the variable-to-term binding of a set equality,
// if it has one.
func elimSetEq(a SetEqAtom) (name string, repl Set, ok bool) {
	if v, vok := a.Left.(SetVar); vok && !occursInSet(v.Name, a.Right) {
		return v.Name, a.Right, true
	}
	if v, vok := a.Right.(SetVar); vok && !occursInSet(v.Name, a.Left) {
		return v.Name, a.Left, true
	}
	return "", nil, false
}

// isTrivialEq reports whether f is an equality between terms the
// element-equality notion identifies.
func isTrivialEq(f Formula, same ElemEqFunc) bool {
	switch f := f.(type) {
	case EqAtom:
		return same(f.Left, f.Right)
	case SetEqAtom:
		return f.Left.Equal(f.Right)
	}
	return false
}

// eliminateEqualities substitutes away every top-level equality
// hypothesis with a variable side, in context and goal, iterating to a
// fixpoint. Each round strictly reduces the number of distinct
// variables, so the round count is bounded by the hypothesis count.
func eliminateEqualities(hyps []Hypothesis, goal Formula, same ElemEqFunc) ([]Hypothesis, Formula) {
	filtered := hyps[:0:0]
	for _, h := range hyps {
		if !isTrivialEq(h.Formula, same) {
			filtered = append(filtered, h)
		}
	}
	hyps = filtered

	for round := 0; round <= len(hyps); round++ {
		idx := -1
		var applyTo func(f Formula) Formula
		for i, h := range hyps {
			if isTrivialEq(h.Formula, same) {
				continue
			}
			switch a := h.Formula.(type) {
			case EqAtom:
				if name, repl, ok := elimElemEq(a); ok {
					idx = i
					applyTo = func(f Formula) Formula { return substElemFormula(name, repl, f) }
				}
			case SetEqAtom:
				if name, repl, ok := elimSetEq(a); ok {
					idx = i
					applyTo = func(f Formula) Formula { return substSetFormula(name, repl, f) }
				}
			}
			if idx >= 0 {
				break
			}
		}
		if idx < 0 {
			break
		}
		next := make([]Hypothesis, 0, len(hyps)-1)
		for i, h := range hyps {
			if i == idx {
				continue
			}
			g := applyTo(h.Formula)
			if isTrivialEq(g, same) {
				continue
			}
			next = append(next, Hypothesis{Name: h.Name, Formula: g})
		}
		hyps = next
		goal = applyTo(goal)
	}
	return hyps, goal
}
