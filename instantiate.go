package setdec

import "fmt"

// Stage 2: universal instantiation.
//
// Empty, Subset and SetEq hypotheses are universally quantified
// statements over elements. Each is instantiated at every element term
// occurring in an In or Eq atom of the current context and goal (the
// relevant-element-set), then the universal form is removed.
// Instantiation and membership rewriting run as a joint fixpoint: a
// rewrite can surface element terms that were nested inside compound
// set arguments, and those must be instantiated at as well.

// collectElems gathers the relevant-element-set of the given formulas:
// every element term occurring inside an In or Eq atom, including
// terms nested in a compound set argument. Deduplicated syntactically.
func collectElems(fs []Formula, into []Elem) []Elem {
	add := func(e Elem) {
		for _, seen := range into {
			if seen.Equal(e) {
				return
			}
		}
		into = append(into, e)
	}
	var visit func(f Formula)
	visit = func(f Formula) {
		switch f := f.(type) {
		case EqAtom:
			add(f.Left)
			add(f.Right)
		case InAtom:
			add(f.Elem)
			var nested []Elem
			elemsOfSet(f.Set, &nested)
			for _, e := range nested {
				add(e)
			}
		case NotForm:
			visit(f.Inner)
		case AndForm:
			visit(f.Left)
			visit(f.Right)
		case OrForm:
			visit(f.Left)
			visit(f.Right)
		case ImpliesForm:
			visit(f.Left)
			visit(f.Right)
		case IffForm:
			visit(f.Left)
			visit(f.Right)
		}
	}
	for _, f := range fs {
		visit(f)
	}
	return into
}

// freshElemVar returns an element variable not occurring in any of fs.
func freshElemVar(fs []Formula) Elem {
	used := make(map[string]bool)
	var visitSet func(s Set)
	var visitElem func(e Elem)
	visitElem = func(e Elem) {
		elemVarNames(e, used)
	}
	visitSet = func(s Set) {
		var nested []Elem
		elemsOfSet(s, &nested)
		for _, e := range nested {
			visitElem(e)
		}
	}
	var visit func(f Formula)
	visit = func(f Formula) {
		switch f := f.(type) {
		case EqAtom:
			visitElem(f.Left)
			visitElem(f.Right)
		case InAtom:
			visitElem(f.Elem)
			visitSet(f.Set)
		case EmptyAtom:
			visitSet(f.Set)
		case SubsetAtom:
			visitSet(f.Left)
			visitSet(f.Right)
		case SetEqAtom:
			visitSet(f.Left)
			visitSet(f.Right)
		case NotForm:
			visit(f.Inner)
		case AndForm:
			visit(f.Left)
			visit(f.Right)
		case OrForm:
			visit(f.Left)
			visit(f.Right)
		case ImpliesForm:
			visit(f.Left)
			visit(f.Right)
		case IffForm:
			visit(f.Left)
			visit(f.Right)
		}
	}
	for _, f := range fs {
		visit(f)
	}
	for i := 0; ; i++ {
		name := fmt.Sprintf("_e%d", i)
		if !used[name] {
			return ElemVar{Name: name}
		}
	}
}

// unfoldGoal replaces a top-level set-relation goal by its elementwise
// reading at a fresh element variable. Returns the goal unchanged when
// it is not a set relation.
func unfoldGoal(goal Formula, fresh Elem) Formula {
	switch g := goal.(type) {
	case EmptyAtom:
		return NotForm{Inner: InAtom{Elem: fresh, Set: g.Set}}
	case SubsetAtom:
		return ImpliesForm{
			Left:  InAtom{Elem: fresh, Set: g.Left},
			Right: InAtom{Elem: fresh, Set: g.Right},
		}
	case SetEqAtom:
		return IffForm{
			Left:  InAtom{Elem: fresh, Set: g.Left},
			Right: InAtom{Elem: fresh, Set: g.Right},
		}
	default:
		return goal
	}
}

// instantiateAt specializes a universal set-relation atom at one
// element term.
func instantiateAt(a Atom, t Elem) Formula {
	switch a := a.(type) {
	case EmptyAtom:
		return NotForm{Inner: InAtom{Elem: t, Set: a.Set}}
	case SubsetAtom:
		return ImpliesForm{
			Left:  InAtom{Elem: t, Set: a.Left},
			Right: InAtom{Elem: t, Set: a.Right},
		}
	case SetEqAtom:
		return IffForm{
			Left:  InAtom{Elem: t, Set: a.Left},
			Right: InAtom{Elem: t, Set: a.Right},
		}
	default:
		return a
	}
}

// isUniversal reports whether a hypothesis is a top-level universal
// set-relation atom.
func isUniversal(f Formula) (Atom, bool) {
	switch f := f.(type) {
	case EmptyAtom:
		return f, true
	case SubsetAtom:
		return f, true
	case SetEqAtom:
		return f, true
	}
	return nil, false
}

// instantiateAndRewrite runs stages 2 and 3 as a joint fixpoint over
// the context and goal. Ground hypotheses and the goal are membership
// rewritten; each universal hypothesis is instantiated at every
// relevant element term, the instance rewritten and added (once), and
// the scan repeats until no new relevant terms appear. The universal
// forms are dropped at the end. The relevant-element-set only ever
// grows and is bounded by the syntactic material of the input, which
// bounds the loop.
func instantiateAndRewrite(hyps []Hypothesis, goal Formula) ([]Hypothesis, Formula) {
	var universals []Hypothesis
	var ground []Hypothesis
	for _, h := range hyps {
		if _, ok := isUniversal(h.Formula); ok {
			universals = append(universals, h)
		} else {
			ground = append(ground, Hypothesis{Name: h.Name, Formula: rewriteMemberships(h.Formula)})
		}
	}
	goal = rewriteMemberships(goal)

	done := make(map[string]bool) // universal atom x term, already instantiated
	limit := 1
	for _, h := range hyps {
		limit += formulaSize(h.Formula)
	}
	limit += formulaSize(goal)

	for iter := 0; iter < limit; iter++ {
		forms := make([]Formula, 0, len(ground)+1)
		for _, h := range ground {
			forms = append(forms, h.Formula)
		}
		forms = append(forms, goal)
		elems := collectElems(forms, nil)

		grew := false
		for _, u := range universals {
			ua, _ := isUniversal(u.Formula)
			for _, t := range elems {
				// Keyed by the atom itself, not the hypothesis name:
				// names are labels and may repeat.
				key := ua.String() + "@" + t.String()
				if done[key] {
					continue
				}
				done[key] = true
				inst := rewriteMemberships(instantiateAt(ua, t))
				dup := false
				for _, h := range ground {
					if FormulaEqual(h.Formula, inst) {
						dup = true
						break
					}
				}
				if !dup {
					ground = append(ground, Hypothesis{
						Name:    fmt.Sprintf("%s[%s]", u.Name, t),
						Formula: inst,
					})
				}
				grew = true
			}
		}
		if !grew {
			break
		}
	}
	return ground, goal
}
