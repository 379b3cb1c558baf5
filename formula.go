package setdec

// Formula represents a quantifier-free formula over set/element atoms
// and propositional connectives.
type Formula interface {
	isFormula()
	String() string
}

// Atom is the marker interface for the five atomic formula kinds.
type Atom interface {
	Formula
	isAtom()
	// shape returns the atom's shape name, the key into the
	// decidability fact base.
	shape() string
}

// TrueForm represents the constant true.
type TrueForm struct{}

func (TrueForm) isFormula() {}
func (TrueForm) String() string {
	return "true"
}

// FalseForm represents the constant false.
type FalseForm struct{}

func (FalseForm) isFormula() {}
func (FalseForm) String() string {
	return "false"
}

// NotForm represents negation.
type NotForm struct {
	Inner Formula
}

func (NotForm) isFormula() {}
func (f NotForm) String() string {
	return "!" + f.Inner.String()
}

// AndForm represents conjunction.
type AndForm struct {
	Left  Formula
	Right Formula
}

func (AndForm) isFormula() {}
func (f AndForm) String() string {
	return "(" + f.Left.String() + " && " + f.Right.String() + ")"
}

// OrForm represents disjunction.
type OrForm struct {
	Left  Formula
	Right Formula
}

func (OrForm) isFormula() {}
func (f OrForm) String() string {
	return "(" + f.Left.String() + " || " + f.Right.String() + ")"
}

// ImpliesForm represents implication.
type ImpliesForm struct {
	Left  Formula
	Right Formula
}

func (ImpliesForm) isFormula() {}
func (f ImpliesForm) String() string {
	return "(" + f.Left.String() + " -> " + f.Right.String() + ")"
}

// IffForm represents bi-implication.
type IffForm struct {
	Left  Formula
	Right Formula
}

func (IffForm) isFormula() {}
func (f IffForm) String() string {
	return "(" + f.Left.String() + " <-> " + f.Right.String() + ")"
}

// EqAtom represents element equality.
type EqAtom struct {
	Left  Elem
	Right Elem
}

func (EqAtom) isFormula()    {}
func (EqAtom) isAtom()       {}
func (EqAtom) shape() string { return "Eq" }
func (f EqAtom) String() string {
	return f.Left.String() + " = " + f.Right.String()
}

// InAtom represents set membership.
type InAtom struct {
	Elem Elem
	Set  Set
}

func (InAtom) isFormula()    {}
func (InAtom) isAtom()       {}
func (InAtom) shape() string { return "In" }
func (f InAtom) String() string {
	return f.Elem.String() + " in " + f.Set.String()
}

// EmptyAtom states that a set is empty: for all x, !(x in Set).
type EmptyAtom struct {
	Set Set
}

func (EmptyAtom) isFormula()    {}
func (EmptyAtom) isAtom()       {}
func (EmptyAtom) shape() string { return "Empty" }
func (f EmptyAtom) String() string {
	return "empty(" + f.Set.String() + ")"
}

// SubsetAtom states set inclusion: for all x, x in Left -> x in Right.
type SubsetAtom struct {
	Left  Set
	Right Set
}

func (SubsetAtom) isFormula()    {}
func (SubsetAtom) isAtom()       {}
func (SubsetAtom) shape() string { return "Subset" }
func (f SubsetAtom) String() string {
	return "subset(" + f.Left.String() + ", " + f.Right.String() + ")"
}

// SetEqAtom states extensional set equality: for all x,
// x in Left <-> x in Right.
type SetEqAtom struct {
	Left  Set
	Right Set
}

func (SetEqAtom) isFormula()    {}
func (SetEqAtom) isAtom()       {}
func (SetEqAtom) shape() string { return "SetEq" }
func (f SetEqAtom) String() string {
	return "equal(" + f.Left.String() + ", " + f.Right.String() + ")"
}

// Helper functions to construct formulas

// True creates the constant true.
func True() Formula {
	return TrueForm{}
}

// False creates the constant false.
func False() Formula {
	return FalseForm{}
}

// Not creates a negation.
func Not(f Formula) Formula {
	return NotForm{Inner: f}
}

// And creates a conjunction, folding to the right.
func And(fs ...Formula) Formula {
	if len(fs) == 0 {
		return TrueForm{}
	}
	result := fs[len(fs)-1]
	for i := len(fs) - 2; i >= 0; i-- {
		result = AndForm{Left: fs[i], Right: result}
	}
	return result
}

// Or creates a disjunction, folding to the right.
func Or(fs ...Formula) Formula {
	if len(fs) == 0 {
		return FalseForm{}
	}
	result := fs[len(fs)-1]
	for i := len(fs) - 2; i >= 0; i-- {
		result = OrForm{Left: fs[i], Right: result}
	}
	return result
}

// Implies creates an implication.
func Implies(l, r Formula) Formula {
	return ImpliesForm{Left: l, Right: r}
}

// Iff creates a bi-implication.
func Iff(l, r Formula) Formula {
	return IffForm{Left: l, Right: r}
}

// Eq creates an element equality atom.
func Eq(l, r Elem) Formula {
	return EqAtom{Left: l, Right: r}
}

// In creates a membership atom.
func In(e Elem, s Set) Formula {
	return InAtom{Elem: e, Set: s}
}

// IsEmpty creates an emptiness atom.
func IsEmpty(s Set) Formula {
	return EmptyAtom{Set: s}
}

// Subset creates an inclusion atom.
func Subset(l, r Set) Formula {
	return SubsetAtom{Left: l, Right: r}
}

// SetEq creates an extensional set equality atom.
func SetEq(l, r Set) Formula {
	return SetEqAtom{Left: l, Right: r}
}

// FormulaEqual checks structural equality of two formulas.
func FormulaEqual(a, b Formula) bool {
	switch a := a.(type) {
	case TrueForm:
		_, ok := b.(TrueForm)
		return ok
	case FalseForm:
		_, ok := b.(FalseForm)
		return ok
	case NotForm:
		if o, ok := b.(NotForm); ok {
			return FormulaEqual(a.Inner, o.Inner)
		}
	case AndForm:
		if o, ok := b.(AndForm); ok {
			return FormulaEqual(a.Left, o.Left) && FormulaEqual(a.Right, o.Right)
		}
	case OrForm:
		if o, ok := b.(OrForm); ok {
			return FormulaEqual(a.Left, o.Left) && FormulaEqual(a.Right, o.Right)
		}
	case ImpliesForm:
		if o, ok := b.(ImpliesForm); ok {
			return FormulaEqual(a.Left, o.Left) && FormulaEqual(a.Right, o.Right)
		}
	case IffForm:
		if o, ok := b.(IffForm); ok {
			return FormulaEqual(a.Left, o.Left) && FormulaEqual(a.Right, o.Right)
		}
	case EqAtom:
		if o, ok := b.(EqAtom); ok {
			return a.Left.Equal(o.Left) && a.Right.Equal(o.Right)
		}
	case InAtom:
		if o, ok := b.(InAtom); ok {
			return a.Elem.Equal(o.Elem) && a.Set.Equal(o.Set)
		}
	case EmptyAtom:
		if o, ok := b.(EmptyAtom); ok {
			return a.Set.Equal(o.Set)
		}
	case SubsetAtom:
		if o, ok := b.(SubsetAtom); ok {
			return a.Left.Equal(o.Left) && a.Right.Equal(o.Right)
		}
	case SetEqAtom:
		if o, ok := b.(SetEqAtom); ok {
			return a.Left.Equal(o.Left) && a.Right.Equal(o.Right)
		}
	}
	return false
}

// negationCount counts Not nodes; the pull normalizer fires only when
// it strictly reduces this measure.
func negationCount(f Formula) int {
	switch f := f.(type) {
	case NotForm:
		return 1 + negationCount(f.Inner)
	case AndForm:
		return negationCount(f.Left) + negationCount(f.Right)
	case OrForm:
		return negationCount(f.Left) + negationCount(f.Right)
	case ImpliesForm:
		return negationCount(f.Left) + negationCount(f.Right)
	case IffForm:
		return negationCount(f.Left) + negationCount(f.Right)
	default:
		return 0
	}
}

// walkAtoms calls fn for every atom in f, with negated reporting
// whether the atom sits under an odd number of negations.
func walkAtoms(f Formula, negated bool, fn func(a Atom, negated bool)) {
	switch f := f.(type) {
	case NotForm:
		walkAtoms(f.Inner, !negated, fn)
	case AndForm:
		walkAtoms(f.Left, negated, fn)
		walkAtoms(f.Right, negated, fn)
	case OrForm:
		walkAtoms(f.Left, negated, fn)
		walkAtoms(f.Right, negated, fn)
	case ImpliesForm:
		walkAtoms(f.Left, !negated, fn)
		walkAtoms(f.Right, negated, fn)
	case IffForm:
		// Both polarities occur on both sides.
		walkAtoms(f.Left, negated, fn)
		walkAtoms(f.Left, !negated, fn)
		walkAtoms(f.Right, negated, fn)
		walkAtoms(f.Right, !negated, fn)
	case Atom:
		fn(f, negated)
	}
}

// formulaSize counts nodes; used as a defensive iteration cap for the
// fixpoint loops.
func formulaSize(f Formula) int {
	switch f := f.(type) {
	case NotForm:
		return 1 + formulaSize(f.Inner)
	case AndForm:
		return 1 + formulaSize(f.Left) + formulaSize(f.Right)
	case OrForm:
		return 1 + formulaSize(f.Left) + formulaSize(f.Right)
	case ImpliesForm:
		return 1 + formulaSize(f.Left) + formulaSize(f.Right)
	case IffForm:
		return 1 + formulaSize(f.Left) + formulaSize(f.Right)
	default:
		return 1
	}
}
