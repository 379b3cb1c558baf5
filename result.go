package setdec

import (
	"fmt"
	"strings"
)

// Verdict represents the outcome of a decision attempt.
type Verdict int

const (
	_ Verdict = iota
	// Proved indicates the goal follows from the context.
	Proved
	// NotProved indicates the search space was exhausted without a
	// closed derivation.
	NotProved
)

func (v Verdict) String() string {
	switch v {
	case Proved:
		return "Proved"
	case NotProved:
		return "NotProved"
	default:
		return "?"
	}
}

// ReasonCode explains a verdict.
type ReasonCode int

const (
	ReasonNone ReasonCode = iota
	// ReasonClosed indicates every refutation branch closed.
	ReasonClosed
	// ReasonStuck indicates the search exhausted all splits without
	// closing every branch.
	ReasonStuck
	// ReasonGoalOutOfFragment indicates the goal does not lie in the
	// supported fragment.
	ReasonGoalOutOfFragment
	// ReasonBudgetExhausted indicates the caller-imposed step budget
	// ran out; treated exactly like stuck.
	ReasonBudgetExhausted
)

func (r ReasonCode) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonClosed:
		return "all branches closed"
	case ReasonStuck:
		return "search space exhausted"
	case ReasonGoalOutOfFragment:
		return "goal outside the supported fragment"
	case ReasonBudgetExhausted:
		return "step budget exhausted"
	default:
		return "unknown"
	}
}

// RuleKind identifies the rule that closed or extended a branch.
type RuleKind int

const (
	_ RuleKind = iota
	// RuleFalsum closes a branch containing false.
	RuleFalsum
	// RuleReflexivity closes a branch containing a negated
	// reflexive equality.
	RuleReflexivity
	// RuleContradiction closes a branch containing a formula and its
	// negation.
	RuleContradiction
	// RuleSubstitute eliminates an equality surfacing mid-search.
	RuleSubstitute
	// RuleSplit cases on a disjunction; both children must close.
	RuleSplit
)

func (k RuleKind) String() string {
	switch k {
	case RuleFalsum:
		return "falsum"
	case RuleReflexivity:
		return "reflexivity"
	case RuleContradiction:
		return "contradiction"
	case RuleSubstitute:
		return "substitute"
	case RuleSplit:
		return "split"
	default:
		return "?"
	}
}

// ProofNode is one node of the closed case-split tree. Pivot is the
// formula the rule acted on: the contradicted formula, the eliminated
// equality, or the split disjunction.
type ProofNode struct {
	Rule     RuleKind
	Pivot    Formula
	Children []*ProofNode
}

// Certificate is the closed refutation tree for a Proved verdict,
// together with the state it refutes. A caller can replay it to
// reconstruct the proof.
type Certificate struct {
	// State is the normalized refutation state: the processed context
	// plus the negated goal.
	State []Formula
	Root  *ProofNode
}

// Replay re-validates the certificate: it walks the recorded tree from
// the recorded state and checks that every rule applies where recorded
// and that every leaf closes its branch.
func (c *Certificate) Replay() error {
	if c.Root == nil {
		return fmt.Errorf("certificate has no derivation")
	}
	return replayNode(c.State, c.Root)
}

func replayNode(forms []Formula, n *ProofNode) error {
	forms = expandState(forms)

	present := func(want Formula) bool {
		for _, f := range forms {
			if FormulaEqual(f, want) {
				return true
			}
		}
		return false
	}

	switch n.Rule {
	case RuleFalsum:
		if !present(FalseForm{}) {
			return fmt.Errorf("falsum step: no false in state")
		}
		return nil

	case RuleReflexivity:
		nf, ok := n.Pivot.(NotForm)
		if !ok {
			return fmt.Errorf("reflexivity step: pivot %s is not a negation", n.Pivot)
		}
		eq, ok := nf.Inner.(EqAtom)
		if !ok || !eq.Left.Equal(eq.Right) {
			return fmt.Errorf("reflexivity step: pivot %s is not a reflexive equality", n.Pivot)
		}
		if !present(n.Pivot) {
			return fmt.Errorf("reflexivity step: %s not in state", n.Pivot)
		}
		return nil

	case RuleContradiction:
		if !present(n.Pivot) || !present(NotForm{Inner: n.Pivot}) {
			return fmt.Errorf("contradiction step: %s and its negation not both in state", n.Pivot)
		}
		return nil

	case RuleSubstitute:
		eq, ok := n.Pivot.(EqAtom)
		if !ok {
			return fmt.Errorf("substitute step: pivot %s is not an equality", n.Pivot)
		}
		if !present(eq) {
			return fmt.Errorf("substitute step: %s not in state", eq)
		}
		name, repl, ok := elimElemEq(eq)
		if !ok {
			return fmt.Errorf("substitute step: %s has no variable side", eq)
		}
		if len(n.Children) != 1 {
			return fmt.Errorf("substitute step: expected one child, got %d", len(n.Children))
		}
		return replayNode(applyElemSubst(forms, name, repl), n.Children[0])

	case RuleSplit:
		or, ok := n.Pivot.(OrForm)
		if !ok {
			return fmt.Errorf("split step: pivot %s is not a disjunction", n.Pivot)
		}
		if !present(or) {
			return fmt.Errorf("split step: %s not in state", or)
		}
		if len(n.Children) != 2 {
			return fmt.Errorf("split step: expected two children, got %d", len(n.Children))
		}
		left := replaceFormula(forms, or, or.Left)
		right := replaceFormula(forms, or, or.Right)
		if err := replayNode(left, n.Children[0]); err != nil {
			return err
		}
		return replayNode(right, n.Children[1])

	default:
		return fmt.Errorf("unknown rule kind %d", n.Rule)
	}
}

// Steps renders the derivation as an indented rule trace.
func (c *Certificate) Steps() string {
	var b strings.Builder
	var walk func(n *ProofNode, depth int)
	walk = func(n *ProofNode, depth int) {
		if n == nil {
			return
		}
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString(n.Rule.String())
		if n.Pivot != nil {
			b.WriteString(" ")
			b.WriteString(n.Pivot.String())
		}
		b.WriteString("\n")
		for _, ch := range n.Children {
			walk(ch, depth+1)
		}
	}
	walk(c.Root, 0)
	return b.String()
}

// Result is the outcome a Decide call reports to its caller.
type Result struct {
	Verdict Verdict
	Reason  ReasonCode
	Detail  string
	// Dropped names the hypotheses the classifier discarded as
	// outside the fragment.
	Dropped []string
	// Certificate is set on Proved verdicts.
	Certificate *Certificate
}
