package model

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/declogic/setdec"
)

func asg(size int, elems map[string]int, sets map[string]uint64) Assignment {
	if elems == nil {
		elems = map[string]int{}
	}
	if sets == nil {
		sets = map[string]uint64{}
	}
	return Assignment{Size: size, Elems: elems, Sets: sets}
}

func TestEvalSetOperators(t *testing.T) {
	x := setdec.EVar("x")
	s, r := setdec.SVar("s"), setdec.SVar("r")
	a := asg(3, map[string]int{"x": 1}, map[string]uint64{"s": 0b011, "r": 0b110})

	cases := []struct {
		set  setdec.Set
		want uint64
	}{
		{setdec.SEmpty(), 0},
		{setdec.SSingleton(x), 0b010},
		{setdec.SAdd(x, r), 0b110},
		{setdec.SRemove(x, s), 0b001},
		{setdec.SUnion(s, r), 0b111},
		{setdec.SInter(s, r), 0b010},
		{setdec.SDiff(s, r), 0b001},
	}
	for _, c := range cases {
		got, ok := EvalSet(c.set, a)
		assert.True(t, ok, c.set.String())
		assert.Equal(t, c.want, got, c.set.String())
	}
}

func TestEvalAtoms(t *testing.T) {
	x, y := setdec.EVar("x"), setdec.EVar("y")
	s, r := setdec.SVar("s"), setdec.SVar("r")
	a := asg(3, map[string]int{"x": 0, "y": 0}, map[string]uint64{"s": 0b001, "r": 0b011})

	cases := []struct {
		f    setdec.Formula
		want bool
	}{
		{setdec.Eq(x, y), true},
		{setdec.In(x, s), true},
		{setdec.In(x, setdec.SDiff(r, s)), false},
		{setdec.IsEmpty(setdec.SInter(s, setdec.SEmpty())), true},
		{setdec.IsEmpty(s), false},
		{setdec.Subset(s, r), true},
		{setdec.Subset(r, s), false},
		{setdec.SetEq(r, setdec.SUnion(s, r)), true},
	}
	for _, c := range cases {
		got, ok := Eval(c.f, a)
		assert.True(t, ok, c.f.String())
		assert.Equal(t, c.want, got, c.f.String())
	}
}

func TestEvalConnectives(t *testing.T) {
	a := asg(2, nil, nil)

	tr, fl := setdec.True(), setdec.False()
	cases := []struct {
		f    setdec.Formula
		want bool
	}{
		{setdec.Not(fl), true},
		{setdec.And(tr, fl), false},
		{setdec.Or(tr, fl), true},
		{setdec.Implies(fl, fl), true},
		{setdec.Implies(tr, fl), false},
		{setdec.Iff(fl, fl), true},
		{setdec.Iff(tr, fl), false},
	}
	for _, c := range cases {
		got, ok := Eval(c.f, a)
		assert.True(t, ok)
		assert.Equal(t, c.want, got, c.f.String())
	}
}

func TestOpaqueApplicationBlocksEval(t *testing.T) {
	fx := setdec.EApp("f", setdec.EVar("x"))
	a := asg(2, map[string]int{"x": 0}, nil)

	_, ok := Eval(setdec.Eq(fx, fx), a)
	assert.False(t, ok)
}

func TestVarsSortedAndDeduplicated(t *testing.T) {
	x, y := setdec.EVar("x"), setdec.EVar("y")
	s, r := setdec.SVar("s"), setdec.SVar("r")

	f := setdec.And(
		setdec.In(y, setdec.SAdd(x, r)),
		setdec.Subset(s, r),
	)
	elems, sets, hasApp := Vars(f, setdec.In(x, s))
	assert.Equal(t, []string{"x", "y"}, elems)
	assert.Equal(t, []string{"r", "s"}, sets)
	assert.False(t, hasApp)

	_, _, hasApp = Vars(setdec.Eq(setdec.EApp("f", x), y))
	assert.True(t, hasApp)
}

func TestCountMatchesEnumeration(t *testing.T) {
	elems := []string{"x", "y"}
	sets := []string{"s"}

	visited := 0
	done := ForEach(elems, sets, 3, func(Assignment) bool {
		visited++
		return true
	})
	assert.True(t, done)
	assert.Equal(t, Count(elems, sets, 3), uint64(visited)) // 3*3*8
}

func TestForEachStopsEarly(t *testing.T) {
	visited := 0
	done := ForEach([]string{"x"}, nil, 3, func(Assignment) bool {
		visited++
		return visited < 2
	})
	assert.False(t, done)
	assert.Equal(t, 2, visited)
}

func TestValid(t *testing.T) {
	x := setdec.EVar("x")
	s, r := setdec.SVar("s"), setdec.SVar("r")

	// Entailed: In(x, s) and Subset(s, r) give In(x, r).
	valid, conclusive := Valid(
		[]setdec.Formula{setdec.In(x, s), setdec.Subset(s, r)},
		setdec.In(x, r), 3)
	assert.True(t, conclusive)
	assert.True(t, valid)

	// Not entailed: a singleton universe is a countermodel.
	valid, conclusive = Valid(nil, setdec.Subset(s, r), 1)
	assert.True(t, conclusive)
	assert.False(t, valid)

	// Opaque applications make enumeration inconclusive.
	fx := setdec.EApp("f", x)
	_, conclusive = Valid(nil, setdec.Eq(fx, fx), 2)
	assert.False(t, conclusive)
}
