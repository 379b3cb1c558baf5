package setdec

// Stage 7: closure search.
//
// The goal is negated into the context and the search tries to close
// every branch of the resulting refutation state: falsum, a negated
// reflexive equality or a direct contradiction closes a branch,
// equalities surfacing mid-search are substituted away, and
// disjunctions are case split. Splits strictly consume disjunctions
// and no rule creates one, so the depth is bounded by the disjunction
// count fixed before the search starts.

// expandState flattens conjunctions into separate entries, drops
// constant-true entries and duplicates. Applied before every rule so
// the closure checks only ever look at top-level entries.
func expandState(forms []Formula) []Formula {
	var out []Formula
	seen := func(f Formula) bool {
		for _, g := range out {
			if FormulaEqual(g, f) {
				return true
			}
		}
		return false
	}
	var push func(f Formula)
	push = func(f Formula) {
		switch f := f.(type) {
		case TrueForm:
		case AndForm:
			push(f.Left)
			push(f.Right)
		default:
			if !seen(f) {
				out = append(out, f)
			}
		}
	}
	for _, f := range forms {
		push(f)
	}
	return out
}

// replaceFormula returns forms with the first entry equal to old
// replaced by new.
func replaceFormula(forms []Formula, old, new Formula) []Formula {
	out := make([]Formula, len(forms))
	copy(out, forms)
	for i, f := range out {
		if FormulaEqual(f, old) {
			out[i] = new
			return out
		}
	}
	return out
}

// applyElemSubst substitutes an element variable throughout the state
// and drops equalities that become reflexive.
func applyElemSubst(forms []Formula, name string, repl Elem) []Formula {
	out := make([]Formula, 0, len(forms))
	for _, f := range forms {
		g := substElemFormula(name, repl, f)
		if eq, ok := g.(EqAtom); ok && eq.Left.Equal(eq.Right) {
			continue
		}
		out = append(out, g)
	}
	return out
}

// searcher carries the caller-imposed step budget through the
// recursion. A budget below zero means unlimited.
type searcher struct {
	budget    int
	exhausted bool
}

// close attempts to close the branch described by forms. On success it
// returns the derivation node for the branch.
func (s *searcher) close(forms []Formula) (*ProofNode, bool) {
	if s.budget == 0 {
		s.exhausted = true
		return nil, false
	}
	if s.budget > 0 {
		s.budget--
	}

	forms = expandState(forms)

	// Falsum.
	for _, f := range forms {
		if _, ok := f.(FalseForm); ok {
			return &ProofNode{Rule: RuleFalsum}, true
		}
	}

	// Reflexivity: a negated x = x is contradictory on its own.
	for _, f := range forms {
		if nf, ok := f.(NotForm); ok {
			if eq, ok := nf.Inner.(EqAtom); ok && eq.Left.Equal(eq.Right) {
				return &ProofNode{Rule: RuleReflexivity, Pivot: nf}, true
			}
		}
	}

	// Direct contradiction.
	for _, f := range forms {
		nf, ok := f.(NotForm)
		if !ok {
			continue
		}
		for _, g := range forms {
			if FormulaEqual(g, nf.Inner) {
				return &ProofNode{Rule: RuleContradiction, Pivot: nf.Inner}, true
			}
		}
	}

	// Substitute an equality that surfaced mid-search.
	for _, f := range forms {
		eq, ok := f.(EqAtom)
		if !ok {
			continue
		}
		if name, repl, ok := elimElemEq(eq); ok {
			child, closed := s.close(applyElemSubst(forms, name, repl))
			if !closed {
				return nil, false
			}
			return &ProofNode{Rule: RuleSubstitute, Pivot: eq, Children: []*ProofNode{child}}, true
		}
	}

	// Split the first disjunction; structural disjunctions precede
	// injected ones in state order.
	for _, f := range forms {
		or, ok := f.(OrForm)
		if !ok {
			continue
		}
		left, closedL := s.close(replaceFormula(forms, or, or.Left))
		if !closedL {
			return nil, false
		}
		right, closedR := s.close(replaceFormula(forms, or, or.Right))
		if !closedR {
			return nil, false
		}
		return &ProofNode{Rule: RuleSplit, Pivot: or, Children: []*ProofNode{left, right}}, true
	}

	// No rule applies: the branch is open.
	return nil, false
}
