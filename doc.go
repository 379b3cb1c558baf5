// Package setdec implements a decision procedure for quantifier-free
// formulas about finite sets.
//
// The supported fragment is propositional logic over atoms of the
// forms "element equals element", "element is a member of set", "set
// is empty", "set is a subset of set" and "set equals set", where set
// terms are built from variables with empty, singleton, add, remove,
// union, intersection and difference. Given a context of hypotheses
// and a goal from this fragment, Decide either reports Proved together
// with a replayable refutation certificate, or NotProved. A Proved
// verdict is always sound; on the fragment the procedure is also
// complete.
//
// The pipeline classifies hypotheses for fragment membership,
// instantiates the universally quantified set relations at every
// relevant element term, rewrites memberships over compound set terms
// into boolean combinations over set variables, normalizes negations
// gated on an injectable decidability fact base, eliminates proven
// equalities by substitution, injects excluded-middle facts for
// negated atoms, and finally case splits the negated goal to a closed
// refutation.
//
// Out of scope (reported as NotProved):
//   - quantifiers beyond the fixed instantiation scheme
//   - arithmetic
//   - congruence reasoning through opaque function applications
//     beyond explicit substitution
package setdec
