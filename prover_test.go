package setdec_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/declogic/setdec"
	"github.com/declogic/setdec/internal/model"
)

func decide(t *testing.T, hyps []setdec.Hypothesis, goal setdec.Formula) setdec.Result {
	t.Helper()
	return setdec.Decide(hyps, goal)
}

// =======================
// Fixed scenarios
// =======================

func TestMembershipInOwnSingleton(t *testing.T) {
	x := setdec.EVar("x")

	res := decide(t, nil, setdec.In(x, setdec.SSingleton(x)))
	assert.Equal(t, setdec.Proved, res.Verdict, res.Reason.String())
}

func TestEqualityChaining(t *testing.T) {
	x, y, z := setdec.EVar("x"), setdec.EVar("y"), setdec.EVar("z")
	s := setdec.SVar("s")

	hyps := []setdec.Hypothesis{
		{Name: "h1", Formula: setdec.Eq(x, y)},
		{Name: "h2", Formula: setdec.Not(setdec.Not(setdec.Eq(z, y)))},
		{Name: "h3", Formula: setdec.In(x, s)},
	}
	res := decide(t, hyps, setdec.In(z, s))
	assert.Equal(t, setdec.Proved, res.Verdict, res.Reason.String())
}

func TestAddRemoveTautology(t *testing.T) {
	x := setdec.EVar("x")
	s := setdec.SVar("s")

	goal := setdec.Subset(s, setdec.SAdd(x, setdec.SRemove(x, s)))
	res := decide(t, nil, goal)
	assert.Equal(t, setdec.Proved, res.Verdict, res.Reason.String())
}

func TestUnionChainDeMorgan(t *testing.T) {
	x, y := setdec.EVar("x"), setdec.EVar("y")
	s1, s2, s3, s4 := setdec.SVar("s1"), setdec.SVar("s2"), setdec.SVar("s3"), setdec.SVar("s4")

	hyp := setdec.Not(setdec.In(x,
		setdec.SUnion(s1, setdec.SUnion(s2, setdec.SUnion(s3, setdec.SAdd(y, s4))))))
	goal := setdec.Not(setdec.Or(
		setdec.In(x, s1),
		setdec.In(x, s4),
		setdec.Eq(y, x),
	))
	res := decide(t, []setdec.Hypothesis{{Name: "h", Formula: hyp}}, goal)
	assert.Equal(t, setdec.Proved, res.Verdict, res.Reason.String())
}

func TestUnderdeterminedNotProved(t *testing.T) {
	x, y := setdec.EVar("x"), setdec.EVar("y")
	s, r := setdec.SVar("s"), setdec.SVar("r")

	hyps := []setdec.Hypothesis{
		{Name: "h1", Formula: setdec.Eq(x, y)},
		{Name: "h2", Formula: setdec.Subset(r, s)},
	}
	res := decide(t, hyps, setdec.In(x, s))
	assert.Equal(t, setdec.NotProved, res.Verdict)
	assert.Equal(t, setdec.ReasonStuck, res.Reason)
	assert.Nil(t, res.Certificate)
}

func TestOpaqueApplicationBoundary(t *testing.T) {
	a, b := setdec.EVar("a"), setdec.EVar("b")
	fa := setdec.EApp("f", a)
	gb := setdec.EApp("g", b)
	s := setdec.SVar("s")

	// Valid by congruence, but congruence through opaque applications
	// is outside the fragment: equality between two non-variable terms
	// cannot be substituted away.
	hyps := []setdec.Hypothesis{
		{Name: "h1", Formula: setdec.Eq(fa, gb)},
		{Name: "h2", Formula: setdec.In(gb, s)},
	}
	res := decide(t, hyps, setdec.In(fa, s))
	assert.Equal(t, setdec.NotProved, res.Verdict)
}

// =======================
// Additional set reasoning
// =======================

func TestSubsetReflexive(t *testing.T) {
	s := setdec.SVar("s")
	res := decide(t, nil, setdec.Subset(s, s))
	assert.Equal(t, setdec.Proved, res.Verdict, res.Reason.String())
}

func TestUnionCommutes(t *testing.T) {
	s, r := setdec.SVar("s"), setdec.SVar("r")
	res := decide(t, nil, setdec.SetEq(setdec.SUnion(s, r), setdec.SUnion(r, s)))
	assert.Equal(t, setdec.Proved, res.Verdict, res.Reason.String())
}

func TestDiffIsSubset(t *testing.T) {
	s, r := setdec.SVar("s"), setdec.SVar("r")
	res := decide(t, nil, setdec.Subset(setdec.SDiff(s, r), s))
	assert.Equal(t, setdec.Proved, res.Verdict, res.Reason.String())
}

func TestSubsetTransitivity(t *testing.T) {
	s, r, q := setdec.SVar("s"), setdec.SVar("r"), setdec.SVar("q")
	x := setdec.EVar("x")

	hyps := []setdec.Hypothesis{
		{Name: "h1", Formula: setdec.Subset(s, r)},
		{Name: "h2", Formula: setdec.Subset(r, q)},
		{Name: "h3", Formula: setdec.In(x, s)},
	}
	res := decide(t, hyps, setdec.In(x, q))
	assert.Equal(t, setdec.Proved, res.Verdict, res.Reason.String())
}

func TestEmptySetHasNoMembers(t *testing.T) {
	x := setdec.EVar("x")
	s := setdec.SVar("s")

	hyps := []setdec.Hypothesis{
		{Name: "e", Formula: setdec.IsEmpty(s)},
		{Name: "h", Formula: setdec.In(x, s)},
	}
	res := decide(t, hyps, setdec.False())
	assert.Equal(t, setdec.Proved, res.Verdict, res.Reason.String())
}

// Duplicate hypothesis names must not mask any universal fact.
func TestSameNamedHypothesesAllUsed(t *testing.T) {
	y := setdec.EVar("y")
	s, q := setdec.SVar("s"), setdec.SVar("q")

	hyps := []setdec.Hypothesis{
		{Name: "h", Formula: setdec.IsEmpty(s)},
		{Name: "h", Formula: setdec.IsEmpty(q)},
		{Name: "m", Formula: setdec.In(y, q)},
	}
	res := decide(t, hyps, setdec.False())
	assert.Equal(t, setdec.Proved, res.Verdict, res.Reason.String())
}

func TestSetEqualityPropagatesMembership(t *testing.T) {
	x := setdec.EVar("x")
	s, r := setdec.SVar("s"), setdec.SVar("r")

	hyps := []setdec.Hypothesis{
		{Name: "se", Formula: setdec.SetEq(s, r)},
		{Name: "h", Formula: setdec.In(x, s)},
	}
	res := decide(t, hyps, setdec.In(x, r))
	assert.Equal(t, setdec.Proved, res.Verdict, res.Reason.String())
}

func TestUnprovableSubsetGoal(t *testing.T) {
	s, r := setdec.SVar("s"), setdec.SVar("r")
	res := decide(t, nil, setdec.Subset(s, r))
	assert.Equal(t, setdec.NotProved, res.Verdict)
}

func TestGoalOutOfFragment(t *testing.T) {
	s, r := setdec.SVar("s"), setdec.SVar("r")
	res := decide(t, nil, setdec.Not(setdec.Subset(s, r)))
	assert.Equal(t, setdec.NotProved, res.Verdict)
	assert.Equal(t, setdec.ReasonGoalOutOfFragment, res.Reason)
}

func TestDroppedHypothesesReported(t *testing.T) {
	x := setdec.EVar("x")
	s, r := setdec.SVar("s"), setdec.SVar("r")

	hyps := []setdec.Hypothesis{
		{Name: "bad", Formula: setdec.Not(setdec.Subset(s, r))},
		{Name: "good", Formula: setdec.In(x, s)},
	}
	res := decide(t, hyps, setdec.In(x, s))
	assert.Equal(t, setdec.Proved, res.Verdict)
	assert.Equal(t, []string{"bad"}, res.Dropped)
}

// =======================
// Certificates
// =======================

func TestCertificateReplay(t *testing.T) {
	x, y := setdec.EVar("x"), setdec.EVar("y")
	s := setdec.SVar("s")

	goals := []struct {
		hyps []setdec.Hypothesis
		goal setdec.Formula
	}{
		{nil, setdec.In(x, setdec.SSingleton(x))},
		{nil, setdec.Subset(s, setdec.SAdd(x, setdec.SRemove(x, s)))},
		{
			[]setdec.Hypothesis{
				{Name: "h1", Formula: setdec.Eq(x, y)},
				{Name: "h2", Formula: setdec.In(x, s)},
			},
			setdec.In(y, s),
		},
	}
	for _, g := range goals {
		res := setdec.Decide(g.hyps, g.goal)
		require.Equal(t, setdec.Proved, res.Verdict)
		require.NotNil(t, res.Certificate)
		assert.NoError(t, res.Certificate.Replay())
	}
}

func TestCertificateReplayDetectsTampering(t *testing.T) {
	x := setdec.EVar("x")
	s := setdec.SVar("s")

	hyps := []setdec.Hypothesis{{Name: "h", Formula: setdec.In(x, s)}}
	res := setdec.Decide(hyps, setdec.In(x, s))
	require.Equal(t, setdec.Proved, res.Verdict)

	res.Certificate.State = nil
	assert.Error(t, res.Certificate.Replay())
}

// =======================
// Step budget
// =======================

func TestStepLimitReportedAsNotProved(t *testing.T) {
	x := setdec.EVar("x")
	s := setdec.SVar("s")

	p := setdec.NewWithOptions(setdec.Options{StepLimit: 1})
	goal := setdec.Subset(s, setdec.SAdd(x, setdec.SRemove(x, s)))
	res := p.Decide(nil, goal)
	assert.Equal(t, setdec.NotProved, res.Verdict)
	assert.Equal(t, setdec.ReasonBudgetExhausted, res.Reason)
}

// =======================
// Termination behaviour
// =======================

func TestNoBlowupOnDeepNesting(t *testing.T) {
	x := setdec.EVar("x")
	set := setdec.SVar("s0")
	for i := 1; i <= 20; i++ {
		set = setdec.SUnion(set, setdec.SVar("s"+string(rune('0'+i%10))))
	}
	hyp := setdec.In(x, set)

	// Splitting the rewritten chain is linear in its length.
	p := setdec.NewWithOptions(setdec.Options{StepLimit: 500})
	res := p.Decide([]setdec.Hypothesis{{Name: "h", Formula: hyp}}, setdec.In(x, set))
	assert.Equal(t, setdec.Proved, res.Verdict, res.Reason.String())
}

// =======================
// Soundness by model checking
// =======================

type fuzzer struct {
	rng *rand.Rand
}

func (f *fuzzer) elem() setdec.Elem {
	names := []string{"x", "y", "z"}
	return setdec.EVar(names[f.rng.Intn(len(names))])
}

func (f *fuzzer) set(depth int) setdec.Set {
	if depth <= 0 || f.rng.Intn(3) == 0 {
		names := []string{"s", "r"}
		return setdec.SVar(names[f.rng.Intn(len(names))])
	}
	switch f.rng.Intn(7) {
	case 0:
		return setdec.SEmpty()
	case 1:
		return setdec.SSingleton(f.elem())
	case 2:
		return setdec.SAdd(f.elem(), f.set(depth-1))
	case 3:
		return setdec.SRemove(f.elem(), f.set(depth-1))
	case 4:
		return setdec.SUnion(f.set(depth-1), f.set(depth-1))
	case 5:
		return setdec.SInter(f.set(depth-1), f.set(depth-1))
	default:
		return setdec.SDiff(f.set(depth-1), f.set(depth-1))
	}
}

func (f *fuzzer) atom() setdec.Formula {
	if f.rng.Intn(2) == 0 {
		return setdec.Eq(f.elem(), f.elem())
	}
	return setdec.In(f.elem(), f.set(2))
}

func (f *fuzzer) formula(depth int) setdec.Formula {
	if depth <= 0 {
		return f.atom()
	}
	switch f.rng.Intn(6) {
	case 0:
		return f.atom()
	case 1:
		return setdec.Not(f.formula(depth - 1))
	case 2:
		return setdec.And(f.formula(depth-1), f.formula(depth-1))
	case 3:
		return setdec.Or(f.formula(depth-1), f.formula(depth-1))
	case 4:
		return setdec.Implies(f.formula(depth-1), f.formula(depth-1))
	default:
		return setdec.Iff(f.formula(depth-1), f.formula(depth-1))
	}
}

func (f *fuzzer) universal() setdec.Formula {
	switch f.rng.Intn(3) {
	case 0:
		return setdec.IsEmpty(f.set(1))
	case 1:
		return setdec.Subset(f.set(1), f.set(1))
	default:
		return setdec.SetEq(f.set(1), f.set(1))
	}
}

// Every Proved verdict must hold in every finite interpretation.
func TestSoundnessByEnumeration(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	f := &fuzzer{rng: rng}

	proved := 0
	for i := 0; i < 300; i++ {
		var hyps []setdec.Hypothesis
		var hypForms []setdec.Formula
		for j := 0; j < f.rng.Intn(3); j++ {
			var h setdec.Formula
			if f.rng.Intn(4) == 0 {
				h = f.universal()
			} else {
				h = f.formula(2)
			}
			hyps = append(hyps, setdec.Hypothesis{Name: "h", Formula: h})
			hypForms = append(hypForms, h)
		}
		var goal setdec.Formula
		if f.rng.Intn(5) == 0 {
			goal = f.universal()
		} else {
			goal = f.formula(2)
		}

		res := setdec.Decide(hyps, goal)
		if res.Verdict != setdec.Proved {
			continue
		}
		proved++
		require.NotNil(t, res.Certificate)
		require.NoError(t, res.Certificate.Replay())
		for size := 1; size <= 3; size++ {
			valid, conclusive := model.Valid(hypForms, goal, size)
			require.True(t, conclusive)
			require.True(t, valid,
				"unsound verdict at universe size %d: hyps=%v goal=%s", size, hypForms, goal)
		}
	}
	// The fuzzer should find at least a few provable formulas, or the
	// test exercises nothing.
	assert.Greater(t, proved, 5)
}
