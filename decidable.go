package setdec

// Stage 6 and the decidability fact base.
//
// The base maps atom shapes to "is decidable". Element equality and
// membership over finite sets are decidable and registered by default;
// callers can register further shapes without touching the rewrite
// stages. Decidability is compositional over the connectives.

// FactBase is an injectable table of decidable atom shapes.
type FactBase struct {
	shapes map[string]bool
}

// NewFactBase creates a fact base covering Eq and In atoms.
func NewFactBase() *FactBase {
	return &FactBase{shapes: map[string]bool{
		"Eq": true,
		"In": true,
	}}
}

// Register marks an additional atom shape as decidable.
func (b *FactBase) Register(shape string) {
	b.shapes[shape] = true
}

// DecidableAtom reports whether the base covers the atom's shape.
func (b *FactBase) DecidableAtom(a Atom) bool {
	return b.shapes[a.shape()]
}

// Decidable reports whether f is decidable: atoms via their shape,
// connectives iff their sub-formulas are.
func (b *FactBase) Decidable(f Formula) bool {
	switch f := f.(type) {
	case TrueForm, FalseForm:
		return true
	case Atom:
		return b.DecidableAtom(f)
	case NotForm:
		return b.Decidable(f.Inner)
	case AndForm:
		return b.Decidable(f.Left) && b.Decidable(f.Right)
	case OrForm:
		return b.Decidable(f.Left) && b.Decidable(f.Right)
	case ImpliesForm:
		return b.Decidable(f.Left) && b.Decidable(f.Right)
	case IffForm:
		return b.Decidable(f.Left) && b.Decidable(f.Right)
	default:
		return false
	}
}

// injectDecidability asserts the excluded middle for every distinct
// decidable atom occurring negated in the given formulas, unless the
// atom already has a standalone fact of either polarity. Deduplicated
// by atom identity, so the number of injected facts is bounded by the
// number of distinct negated atoms.
func injectDecidability(forms []Formula, base *FactBase) []Formula {
	forms = expandState(forms)
	standalone := func(a Atom) bool {
		for _, f := range forms {
			if FormulaEqual(f, a) {
				return true
			}
			if n, ok := f.(NotForm); ok && FormulaEqual(n.Inner, a) {
				return true
			}
		}
		return false
	}

	var injected []Formula
	seen := make(map[string]bool)
	for _, f := range forms {
		walkAtoms(f, false, func(a Atom, negated bool) {
			if !negated || !base.DecidableAtom(a) {
				return
			}
			key := a.String()
			if seen[key] {
				return
			}
			seen[key] = true
			if standalone(a) {
				return
			}
			injected = append(injected, OrForm{Left: a, Right: NotForm{Inner: a}})
		})
	}
	return injected
}
