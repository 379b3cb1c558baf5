// Package model gives the set formula language its standard finite
// semantics: elements range over a small universe, sets over its
// subsets. It backs the soundness tests and the check command by
// exhaustive enumeration of assignments.
package model

import (
	"sort"

	"github.com/declogic/setdec"
)

// Assignment interprets the free variables of a formula over a
// universe of Size elements. Sets are bitmasks over element indices.
type Assignment struct {
	Size  int
	Elems map[string]int
	Sets  map[string]uint64
}

// EvalElem evaluates an element term. Opaque function applications
// have no interpretation; ok is false when one blocks evaluation.
func EvalElem(e setdec.Elem, a Assignment) (int, bool) {
	switch e := e.(type) {
	case setdec.ElemVar:
		v, ok := a.Elems[e.Name]
		return v, ok
	default:
		return 0, false
	}
}

// EvalSet evaluates a set term to a bitmask.
func EvalSet(s setdec.Set, a Assignment) (uint64, bool) {
	switch s := s.(type) {
	case setdec.SetVar:
		v, ok := a.Sets[s.Name]
		return v, ok
	case setdec.SetEmpty:
		return 0, true
	case setdec.SetSingleton:
		e, ok := EvalElem(s.Elem, a)
		if !ok {
			return 0, false
		}
		return 1 << uint(e), true
	case setdec.SetAdd:
		e, ok := EvalElem(s.Elem, a)
		if !ok {
			return 0, false
		}
		m, ok := EvalSet(s.Set, a)
		if !ok {
			return 0, false
		}
		return m | 1<<uint(e), true
	case setdec.SetRemove:
		e, ok := EvalElem(s.Elem, a)
		if !ok {
			return 0, false
		}
		m, ok := EvalSet(s.Set, a)
		if !ok {
			return 0, false
		}
		return m &^ (1 << uint(e)), true
	case setdec.SetUnion:
		l, ok := EvalSet(s.Left, a)
		if !ok {
			return 0, false
		}
		r, ok := EvalSet(s.Right, a)
		if !ok {
			return 0, false
		}
		return l | r, true
	case setdec.SetInter:
		l, ok := EvalSet(s.Left, a)
		if !ok {
			return 0, false
		}
		r, ok := EvalSet(s.Right, a)
		if !ok {
			return 0, false
		}
		return l & r, true
	case setdec.SetDiff:
		l, ok := EvalSet(s.Left, a)
		if !ok {
			return 0, false
		}
		r, ok := EvalSet(s.Right, a)
		if !ok {
			return 0, false
		}
		return l &^ r, true
	default:
		return 0, false
	}
}

// Eval evaluates a formula classically under the assignment. ok is
// false when an opaque application blocks evaluation.
func Eval(f setdec.Formula, a Assignment) (val, ok bool) {
	switch f := f.(type) {
	case setdec.TrueForm:
		return true, true
	case setdec.FalseForm:
		return false, true
	case setdec.EqAtom:
		l, lok := EvalElem(f.Left, a)
		r, rok := EvalElem(f.Right, a)
		if !lok || !rok {
			return false, false
		}
		return l == r, true
	case setdec.InAtom:
		e, eok := EvalElem(f.Elem, a)
		m, mok := EvalSet(f.Set, a)
		if !eok || !mok {
			return false, false
		}
		return m&(1<<uint(e)) != 0, true
	case setdec.EmptyAtom:
		m, mok := EvalSet(f.Set, a)
		if !mok {
			return false, false
		}
		return m == 0, true
	case setdec.SubsetAtom:
		l, lok := EvalSet(f.Left, a)
		r, rok := EvalSet(f.Right, a)
		if !lok || !rok {
			return false, false
		}
		return l&^r == 0, true
	case setdec.SetEqAtom:
		l, lok := EvalSet(f.Left, a)
		r, rok := EvalSet(f.Right, a)
		if !lok || !rok {
			return false, false
		}
		return l == r, true
	case setdec.NotForm:
		v, ok := Eval(f.Inner, a)
		return !v, ok
	case setdec.AndForm:
		l, lok := Eval(f.Left, a)
		r, rok := Eval(f.Right, a)
		return l && r, lok && rok
	case setdec.OrForm:
		l, lok := Eval(f.Left, a)
		r, rok := Eval(f.Right, a)
		return l || r, lok && rok
	case setdec.ImpliesForm:
		l, lok := Eval(f.Left, a)
		r, rok := Eval(f.Right, a)
		return !l || r, lok && rok
	case setdec.IffForm:
		l, lok := Eval(f.Left, a)
		r, rok := Eval(f.Right, a)
		return l == r, lok && rok
	default:
		return false, false
	}
}

// Vars collects the free element and set variable names of the
// formulas, sorted for deterministic enumeration. hasApp reports
// whether an opaque application occurs anywhere.
func Vars(fs ...setdec.Formula) (elemVars, setVars []string, hasApp bool) {
	elems := make(map[string]bool)
	sets := make(map[string]bool)

	var visitElem func(e setdec.Elem)
	visitElem = func(e setdec.Elem) {
		switch e := e.(type) {
		case setdec.ElemVar:
			elems[e.Name] = true
		case setdec.ElemApp:
			hasApp = true
			for _, a := range e.Args {
				visitElem(a)
			}
		}
	}
	var visitSet func(s setdec.Set)
	visitSet = func(s setdec.Set) {
		switch s := s.(type) {
		case setdec.SetVar:
			sets[s.Name] = true
		case setdec.SetSingleton:
			visitElem(s.Elem)
		case setdec.SetAdd:
			visitElem(s.Elem)
			visitSet(s.Set)
		case setdec.SetRemove:
			visitElem(s.Elem)
			visitSet(s.Set)
		case setdec.SetUnion:
			visitSet(s.Left)
			visitSet(s.Right)
		case setdec.SetInter:
			visitSet(s.Left)
			visitSet(s.Right)
		case setdec.SetDiff:
			visitSet(s.Left)
			visitSet(s.Right)
		}
	}
	var visit func(f setdec.Formula)
	visit = func(f setdec.Formula) {
		switch f := f.(type) {
		case setdec.EqAtom:
			visitElem(f.Left)
			visitElem(f.Right)
		case setdec.InAtom:
			visitElem(f.Elem)
			visitSet(f.Set)
		case setdec.EmptyAtom:
			visitSet(f.Set)
		case setdec.SubsetAtom:
			visitSet(f.Left)
			visitSet(f.Right)
		case setdec.SetEqAtom:
			visitSet(f.Left)
			visitSet(f.Right)
		case setdec.NotForm:
			visit(f.Inner)
		case setdec.AndForm:
			visit(f.Left)
			visit(f.Right)
		case setdec.OrForm:
			visit(f.Left)
			visit(f.Right)
		case setdec.ImpliesForm:
			visit(f.Left)
			visit(f.Right)
		case setdec.IffForm:
			visit(f.Left)
			visit(f.Right)
		}
	}
	for _, f := range fs {
		visit(f)
	}
	for n := range elems {
		elemVars = append(elemVars, n)
	}
	for n := range sets {
		setVars = append(setVars, n)
	}
	sort.Strings(elemVars)
	sort.Strings(setVars)
	return elemVars, setVars, hasApp
}

// Count returns the number of assignments ForEach will visit.
func Count(elemVars, setVars []string, size int) uint64 {
	total := uint64(1)
	for range elemVars {
		total *= uint64(size)
	}
	for range setVars {
		total *= uint64(1) << uint(size)
	}
	return total
}

// ForEach enumerates every assignment of the variables over a
// universe of the given size. Enumeration stops early when fn returns
// false; the return value reports whether it ran to completion.
func ForEach(elemVars, setVars []string, size int, fn func(Assignment) bool) bool {
	a := Assignment{
		Size:  size,
		Elems: make(map[string]int, len(elemVars)),
		Sets:  make(map[string]uint64, len(setVars)),
	}
	var rec func(i int) bool
	rec = func(i int) bool {
		if i < len(elemVars) {
			for v := 0; v < size; v++ {
				a.Elems[elemVars[i]] = v
				if !rec(i + 1) {
					return false
				}
			}
			return true
		}
		j := i - len(elemVars)
		if j < len(setVars) {
			for m := uint64(0); m < 1<<uint(size); m++ {
				a.Sets[setVars[j]] = m
				if !rec(i + 1) {
					return false
				}
			}
			return true
		}
		return fn(a)
	}
	return rec(0)
}

// Valid reports whether the hypotheses entail the goal in every
// interpretation over a universe of the given size. conclusive is
// false when opaque applications blocked some evaluation.
func Valid(hyps []setdec.Formula, goal setdec.Formula, size int) (valid, conclusive bool) {
	all := append(append([]setdec.Formula{}, hyps...), goal)
	elemVars, setVars, hasApp := Vars(all...)
	if hasApp {
		return false, false
	}
	valid = true
	conclusive = true
	ForEach(elemVars, setVars, size, func(a Assignment) bool {
		premises := true
		for _, h := range hyps {
			v, ok := Eval(h, a)
			if !ok {
				conclusive = false
				return false
			}
			if !v {
				premises = false
				break
			}
		}
		if !premises {
			return true
		}
		v, ok := Eval(goal, a)
		if !ok {
			conclusive = false
			return false
		}
		if !v {
			valid = false
			return false
		}
		return true
	})
	return valid, conclusive
}
