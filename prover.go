package setdec

// Hypothesis is a named context entry.
type Hypothesis struct {
	Name    string
	Formula Formula
}

// Options configures a Prover.
type Options struct {
	// Facts is the decidability fact base consulted by the negation
	// normalizer and the excluded-middle injector. Nil means the
	// default base covering Eq and In.
	Facts *FactBase
	// ElemEq overrides the element-equality notion. Atoms the notion
	// identifies are canonicalized before the pipeline runs, so the
	// substitutor and search work on syntactic equality throughout.
	// The notion is only ever consulted positively: it can settle an
	// equality as true, never refute one. Nil means syntactic
	// equality.
	ElemEq ElemEqFunc
	// StepLimit bounds the number of closure-search steps; zero means
	// unlimited. Exhaustion is reported as NotProved, never as a
	// wrong Proved.
	StepLimit int
}

// Prover runs the decision procedure for the quantifier-free finite
// set fragment.
type Prover struct {
	opts Options
}

// New creates a Prover with default options.
func New() *Prover {
	return NewWithOptions(Options{})
}

// NewWithOptions creates a Prover with the given options.
func NewWithOptions(opts Options) *Prover {
	if opts.Facts == nil {
		opts.Facts = NewFactBase()
	}
	if opts.ElemEq == nil {
		opts.ElemEq = syntacticElemEq
	}
	return &Prover{opts: opts}
}

// Decide runs the full pipeline on the hypotheses and goal and reports
// a verdict. On Proved the result carries a replayable certificate.
//
// The pipeline: classify, instantiate universals jointly with
// membership rewriting, normalize negations, eliminate equalities,
// inject excluded-middle facts, then refute the negated goal.
func (p *Prover) Decide(hyps []Hypothesis, goal Formula) Result {
	base := p.opts.Facts

	// Stage 1: drop hypotheses outside the fragment.
	kept, dropped := classifyContext(hyps)
	if !inFragment(goal, true) {
		return Result{
			Verdict: NotProved,
			Reason:  ReasonGoalOutOfFragment,
			Detail:  goal.String(),
			Dropped: dropped,
		}
	}

	// Canonicalize atoms the caller's element equality identifies.
	if p.opts.ElemEq != nil {
		for i := range kept {
			kept[i].Formula = canonicalizeEqs(kept[i].Formula, p.opts.ElemEq)
		}
		goal = canonicalizeEqs(goal, p.opts.ElemEq)
	}

	// A top-level set-relation goal is read elementwise at a fresh
	// variable, which also seeds the relevant-element-set.
	if _, ok := isUniversal(goal); ok {
		all := make([]Formula, 0, len(kept)+1)
		for _, h := range kept {
			all = append(all, h.Formula)
		}
		all = append(all, goal)
		goal = unfoldGoal(goal, freshElemVar(all))
	}

	// Stages 2+3 as a joint fixpoint.
	ctx, goal := instantiateAndRewrite(kept, goal)

	// Stage 4.
	for i := range ctx {
		ctx[i].Formula = normalize(ctx[i].Formula, base)
	}

	// Stage 5.
	ctx, goal = eliminateEqualities(ctx, goal, syntacticElemEq)

	// Refutation state: context plus the normalized negated goal.
	negGoal := negPush(goal, base)
	forms := make([]Formula, 0, len(ctx)+1)
	for _, h := range ctx {
		forms = append(forms, h.Formula)
	}
	forms = append(forms, negGoal)

	// Stage 6: injected facts go last so structural disjunctions are
	// split first.
	forms = append(forms, injectDecidability(forms, base)...)

	// Stage 7.
	limit := p.opts.StepLimit
	if limit <= 0 {
		limit = -1
	}
	s := &searcher{budget: limit}
	root, closed := s.close(forms)
	if !closed {
		reason := ReasonStuck
		if s.exhausted {
			reason = ReasonBudgetExhausted
		}
		return Result{Verdict: NotProved, Reason: reason, Dropped: dropped}
	}
	return Result{
		Verdict: Proved,
		Reason:  ReasonClosed,
		Dropped: dropped,
		Certificate: &Certificate{
			State: forms,
			Root:  root,
		},
	}
}

// canonicalizeEqs replaces equality atoms that the caller's element
// equality already settles by the matching constant, so the rest of
// the pipeline only ever deals with syntactic equality.
func canonicalizeEqs(f Formula, same ElemEqFunc) Formula {
	switch f := f.(type) {
	case EqAtom:
		if !f.Left.Equal(f.Right) && same(f.Left, f.Right) {
			return TrueForm{}
		}
		return f
	case NotForm:
		return NotForm{Inner: canonicalizeEqs(f.Inner, same)}
	case AndForm:
		return AndForm{Left: canonicalizeEqs(f.Left, same), Right: canonicalizeEqs(f.Right, same)}
	case OrForm:
		return OrForm{Left: canonicalizeEqs(f.Left, same), Right: canonicalizeEqs(f.Right, same)}
	case ImpliesForm:
		return ImpliesForm{Left: canonicalizeEqs(f.Left, same), Right: canonicalizeEqs(f.Right, same)}
	case IffForm:
		return IffForm{Left: canonicalizeEqs(f.Left, same), Right: canonicalizeEqs(f.Right, same)}
	default:
		return f
	}
}

// Decide runs the decision procedure with default options.
func Decide(hyps []Hypothesis, goal Formula) Result {
	return New().Decide(hyps, goal)
}
