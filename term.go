package setdec

import "strings"

// Elem represents an element-sort term: a variable or an opaque
// function application. The procedure never interprets applications;
// they compare syntactically only.
type Elem interface {
	isElem()
	String() string
	Equal(other Elem) bool
}

// ElemVar represents an element variable.
type ElemVar struct {
	Name string
}

func (ElemVar) isElem() {}
func (e ElemVar) String() string {
	return e.Name
}

func (e ElemVar) Equal(other Elem) bool {
	if o, ok := other.(ElemVar); ok {
		return e.Name == o.Name
	}
	return false
}

// ElemApp represents an application of an uninterpreted function
// symbol to element arguments. Opaque: two applications are equal
// only when symbol and arguments coincide syntactically.
type ElemApp struct {
	Fn   string
	Args []Elem
}

func (ElemApp) isElem() {}
func (e ElemApp) String() string {
	var b strings.Builder
	b.WriteString(e.Fn)
	b.WriteString("(")
	for i, a := range e.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a.String())
	}
	b.WriteString(")")
	return b.String()
}

func (e ElemApp) Equal(other Elem) bool {
	o, ok := other.(ElemApp)
	if !ok || e.Fn != o.Fn || len(e.Args) != len(o.Args) {
		return false
	}
	for i := range e.Args {
		if !e.Args[i].Equal(o.Args[i]) {
			return false
		}
	}
	return true
}

// Set represents a set-sort term: a variable or an application of one
// of the supported set constructors.
type Set interface {
	isSet()
	String() string
	Equal(other Set) bool
}

// SetVar represents a set variable.
type SetVar struct {
	Name string
}

func (SetVar) isSet() {}
func (s SetVar) String() string {
	return s.Name
}

func (s SetVar) Equal(other Set) bool {
	if o, ok := other.(SetVar); ok {
		return s.Name == o.Name
	}
	return false
}

// SetEmpty represents the empty set constant.
type SetEmpty struct{}

func (SetEmpty) isSet() {}
func (SetEmpty) String() string {
	return "{}"
}

func (SetEmpty) Equal(other Set) bool {
	_, ok := other.(SetEmpty)
	return ok
}

// SetSingleton represents {x}.
type SetSingleton struct {
	Elem Elem
}

func (SetSingleton) isSet() {}
func (s SetSingleton) String() string {
	return "{" + s.Elem.String() + "}"
}

func (s SetSingleton) Equal(other Set) bool {
	if o, ok := other.(SetSingleton); ok {
		return s.Elem.Equal(o.Elem)
	}
	return false
}

// SetAdd represents add(x, s) = {x} ∪ s.
type SetAdd struct {
	Elem Elem
	Set  Set
}

func (SetAdd) isSet() {}
func (s SetAdd) String() string {
	return "add(" + s.Elem.String() + ", " + s.Set.String() + ")"
}

func (s SetAdd) Equal(other Set) bool {
	if o, ok := other.(SetAdd); ok {
		return s.Elem.Equal(o.Elem) && s.Set.Equal(o.Set)
	}
	return false
}

// SetRemove represents remove(x, s) = s \ {x}.
type SetRemove struct {
	Elem Elem
	Set  Set
}

func (SetRemove) isSet() {}
func (s SetRemove) String() string {
	return "remove(" + s.Elem.String() + ", " + s.Set.String() + ")"
}

func (s SetRemove) Equal(other Set) bool {
	if o, ok := other.(SetRemove); ok {
		return s.Elem.Equal(o.Elem) && s.Set.Equal(o.Set)
	}
	return false
}

// SetUnion represents s ∪ t.
type SetUnion struct {
	Left  Set
	Right Set
}

func (SetUnion) isSet() {}
func (s SetUnion) String() string {
	return "union(" + s.Left.String() + ", " + s.Right.String() + ")"
}

func (s SetUnion) Equal(other Set) bool {
	if o, ok := other.(SetUnion); ok {
		return s.Left.Equal(o.Left) && s.Right.Equal(o.Right)
	}
	return false
}

// SetInter represents s ∩ t.
type SetInter struct {
	Left  Set
	Right Set
}

func (SetInter) isSet() {}
func (s SetInter) String() string {
	return "inter(" + s.Left.String() + ", " + s.Right.String() + ")"
}

func (s SetInter) Equal(other Set) bool {
	if o, ok := other.(SetInter); ok {
		return s.Left.Equal(o.Left) && s.Right.Equal(o.Right)
	}
	return false
}

// SetDiff represents s \ t.
type SetDiff struct {
	Left  Set
	Right Set
}

func (SetDiff) isSet() {}
func (s SetDiff) String() string {
	return "diff(" + s.Left.String() + ", " + s.Right.String() + ")"
}

func (s SetDiff) Equal(other Set) bool {
	if o, ok := other.(SetDiff); ok {
		return s.Left.Equal(o.Left) && s.Right.Equal(o.Right)
	}
	return false
}

// Helper functions to construct terms

// EVar creates an element variable.
func EVar(name string) Elem {
	return ElemVar{Name: name}
}

// EApp creates an opaque function application.
func EApp(fn string, args ...Elem) Elem {
	return ElemApp{Fn: fn, Args: args}
}

// SVar creates a set variable.
func SVar(name string) Set {
	return SetVar{Name: name}
}

// SEmpty creates the empty set constant.
func SEmpty() Set {
	return SetEmpty{}
}

// SSingleton creates a singleton set.
func SSingleton(e Elem) Set {
	return SetSingleton{Elem: e}
}

// SAdd creates add(x, s).
func SAdd(e Elem, s Set) Set {
	return SetAdd{Elem: e, Set: s}
}

// SRemove creates remove(x, s).
func SRemove(e Elem, s Set) Set {
	return SetRemove{Elem: e, Set: s}
}

// SUnion creates union(s, t).
func SUnion(l, r Set) Set {
	return SetUnion{Left: l, Right: r}
}

// SInter creates inter(s, t).
func SInter(l, r Set) Set {
	return SetInter{Left: l, Right: r}
}

// SDiff creates diff(s, t).
func SDiff(l, r Set) Set {
	return SetDiff{Left: l, Right: r}
}

// constructorDepth counts nested set constructors. Each membership
// rewrite rule strictly decreases it, which bounds stage 3.
func constructorDepth(s Set) int {
	switch s := s.(type) {
	case SetVar, SetEmpty:
		return 0
	case SetSingleton:
		return 1
	case SetAdd:
		return 1 + constructorDepth(s.Set)
	case SetRemove:
		return 1 + constructorDepth(s.Set)
	case SetUnion:
		return 1 + max(constructorDepth(s.Left), constructorDepth(s.Right))
	case SetInter:
		return 1 + max(constructorDepth(s.Left), constructorDepth(s.Right))
	case SetDiff:
		return 1 + max(constructorDepth(s.Left), constructorDepth(s.Right))
	default:
		return 0
	}
}

// elemsOfSet appends every element term occurring inside a set term.
func elemsOfSet(s Set, out *[]Elem) {
	switch s := s.(type) {
	case SetSingleton:
		*out = append(*out, s.Elem)
	case SetAdd:
		*out = append(*out, s.Elem)
		elemsOfSet(s.Set, out)
	case SetRemove:
		*out = append(*out, s.Elem)
		elemsOfSet(s.Set, out)
	case SetUnion:
		elemsOfSet(s.Left, out)
		elemsOfSet(s.Right, out)
	case SetInter:
		elemsOfSet(s.Left, out)
		elemsOfSet(s.Right, out)
	case SetDiff:
		elemsOfSet(s.Left, out)
		elemsOfSet(s.Right, out)
	}
}

// elemVarNames appends the names of all element variables in e.
func elemVarNames(e Elem, out map[string]bool) {
	switch e := e.(type) {
	case ElemVar:
		out[e.Name] = true
	case ElemApp:
		for _, a := range e.Args {
			elemVarNames(a, out)
		}
	}
}

// occursInElem reports whether variable name occurs in e.
func occursInElem(name string, e Elem) bool {
	switch e := e.(type) {
	case ElemVar:
		return e.Name == name
	case ElemApp:
		for _, a := range e.Args {
			if occursInElem(name, a) {
				return true
			}
		}
	}
	return false
}

// occursInSet reports whether set variable name occurs in s.
func occursInSet(name string, s Set) bool {
	switch s := s.(type) {
	case SetVar:
		return s.Name == name
	case SetAdd:
		return occursInSet(name, s.Set)
	case SetRemove:
		return occursInSet(name, s.Set)
	case SetUnion:
		return occursInSet(name, s.Left) || occursInSet(name, s.Right)
	case SetInter:
		return occursInSet(name, s.Left) || occursInSet(name, s.Right)
	case SetDiff:
		return occursInSet(name, s.Left) || occursInSet(name, s.Right)
	}
	return false
}
