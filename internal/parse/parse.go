// Package parse reads proof scripts for the setdec command line. A
// script is a sequence of s-expressions: any number of (assume name
// formula) forms followed by one (goal formula) form. Formula heads
// are true, false, not, and, or, ->, <->, =, in, is-empty, subset and
// equal; set terms use empty, singleton, add, remove, union, inter and
// diff; a parenthesized element is an opaque application.
package parse

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/declogic/setdec"
)

// Script is a parsed proof obligation.
type Script struct {
	Hyps []setdec.Hypothesis
	Goal setdec.Formula
}

// node is an s-expression: a symbol or a list.
type node struct {
	sym  string
	list []node
	line int
}

func (n node) isSym() bool {
	return n.list == nil
}

type lexer struct {
	src  string
	pos  int
	line int
}

func (l *lexer) errf(line int, format string, args ...any) error {
	return fmt.Errorf("line %d: %s", line, fmt.Sprintf(format, args...))
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == ';':
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
		case c == '\n':
			l.line++
			l.pos++
		case unicode.IsSpace(rune(c)):
			l.pos++
		default:
			return
		}
	}
}

func symRune(c byte) bool {
	return c != '(' && c != ')' && c != ';' && !unicode.IsSpace(rune(c))
}

// read parses one s-expression.
func (l *lexer) read() (node, error) {
	l.skipSpace()
	if l.pos >= len(l.src) {
		return node{}, l.errf(l.line, "unexpected end of input")
	}
	line := l.line
	switch c := l.src[l.pos]; c {
	case '(':
		l.pos++
		list := []node{}
		for {
			l.skipSpace()
			if l.pos >= len(l.src) {
				return node{}, l.errf(line, "unclosed parenthesis")
			}
			if l.src[l.pos] == ')' {
				l.pos++
				return node{list: list, line: line}, nil
			}
			child, err := l.read()
			if err != nil {
				return node{}, err
			}
			list = append(list, child)
		}
	case ')':
		return node{}, l.errf(line, "unexpected )")
	default:
		start := l.pos
		for l.pos < len(l.src) && symRune(l.src[l.pos]) {
			l.pos++
		}
		return node{sym: l.src[start:l.pos], line: line}, nil
	}
}

func (l *lexer) atEnd() bool {
	l.skipSpace()
	return l.pos >= len(l.src)
}

// ParseScript parses a full proof script.
func ParseScript(src string) (*Script, error) {
	l := &lexer{src: src, line: 1}
	script := &Script{}
	for !l.atEnd() {
		n, err := l.read()
		if err != nil {
			return nil, err
		}
		if n.isSym() || len(n.list) == 0 || !n.list[0].isSym() {
			return nil, l.errf(n.line, "expected (assume ...) or (goal ...)")
		}
		switch head := n.list[0].sym; head {
		case "assume":
			if len(n.list) != 3 || !n.list[1].isSym() {
				return nil, l.errf(n.line, "assume wants a name and a formula")
			}
			f, err := formula(n.list[2])
			if err != nil {
				return nil, err
			}
			script.Hyps = append(script.Hyps, setdec.Hypothesis{Name: n.list[1].sym, Formula: f})
		case "goal":
			if len(n.list) != 2 {
				return nil, l.errf(n.line, "goal wants exactly one formula")
			}
			if script.Goal != nil {
				return nil, l.errf(n.line, "duplicate goal")
			}
			f, err := formula(n.list[1])
			if err != nil {
				return nil, err
			}
			script.Goal = f
		default:
			return nil, l.errf(n.line, "unknown form %q", head)
		}
	}
	if script.Goal == nil {
		return nil, fmt.Errorf("script has no goal")
	}
	return script, nil
}

// ParseFormula parses a single formula.
func ParseFormula(src string) (setdec.Formula, error) {
	l := &lexer{src: src, line: 1}
	n, err := l.read()
	if err != nil {
		return nil, err
	}
	if !l.atEnd() {
		return nil, fmt.Errorf("trailing input after formula")
	}
	return formula(n)
}

func formula(n node) (setdec.Formula, error) {
	if n.isSym() {
		switch n.sym {
		case "true":
			return setdec.True(), nil
		case "false":
			return setdec.False(), nil
		}
		return nil, fmt.Errorf("line %d: %q is not a formula", n.line, n.sym)
	}
	if len(n.list) == 0 || !n.list[0].isSym() {
		return nil, fmt.Errorf("line %d: malformed formula", n.line)
	}
	head := n.list[0].sym
	args := n.list[1:]

	nary := func(want int) error {
		if len(args) != want {
			return fmt.Errorf("line %d: %s wants %d arguments, got %d", n.line, head, want, len(args))
		}
		return nil
	}

	switch head {
	case "not":
		if err := nary(1); err != nil {
			return nil, err
		}
		f, err := formula(args[0])
		if err != nil {
			return nil, err
		}
		return setdec.Not(f), nil
	case "and", "or":
		if len(args) < 2 {
			return nil, fmt.Errorf("line %d: %s wants at least two arguments", n.line, head)
		}
		fs := make([]setdec.Formula, len(args))
		for i, a := range args {
			f, err := formula(a)
			if err != nil {
				return nil, err
			}
			fs[i] = f
		}
		if head == "and" {
			return setdec.And(fs...), nil
		}
		return setdec.Or(fs...), nil
	case "->", "<->":
		if err := nary(2); err != nil {
			return nil, err
		}
		l, err := formula(args[0])
		if err != nil {
			return nil, err
		}
		r, err := formula(args[1])
		if err != nil {
			return nil, err
		}
		if head == "->" {
			return setdec.Implies(l, r), nil
		}
		return setdec.Iff(l, r), nil
	case "=":
		if err := nary(2); err != nil {
			return nil, err
		}
		l, err := elem(args[0])
		if err != nil {
			return nil, err
		}
		r, err := elem(args[1])
		if err != nil {
			return nil, err
		}
		return setdec.Eq(l, r), nil
	case "in":
		if err := nary(2); err != nil {
			return nil, err
		}
		e, err := elem(args[0])
		if err != nil {
			return nil, err
		}
		s, err := set(args[1])
		if err != nil {
			return nil, err
		}
		return setdec.In(e, s), nil
	case "is-empty":
		if err := nary(1); err != nil {
			return nil, err
		}
		s, err := set(args[0])
		if err != nil {
			return nil, err
		}
		return setdec.IsEmpty(s), nil
	case "subset", "equal":
		if err := nary(2); err != nil {
			return nil, err
		}
		l, err := set(args[0])
		if err != nil {
			return nil, err
		}
		r, err := set(args[1])
		if err != nil {
			return nil, err
		}
		if head == "subset" {
			return setdec.Subset(l, r), nil
		}
		return setdec.SetEq(l, r), nil
	default:
		return nil, fmt.Errorf("line %d: unknown formula head %q", n.line, head)
	}
}

func elem(n node) (setdec.Elem, error) {
	if n.isSym() {
		return setdec.EVar(n.sym), nil
	}
	if len(n.list) == 0 || !n.list[0].isSym() {
		return nil, fmt.Errorf("line %d: malformed element term", n.line)
	}
	fn := n.list[0].sym
	args := make([]setdec.Elem, 0, len(n.list)-1)
	for _, a := range n.list[1:] {
		e, err := elem(a)
		if err != nil {
			return nil, err
		}
		args = append(args, e)
	}
	return setdec.EApp(fn, args...), nil
}

func set(n node) (setdec.Set, error) {
	if n.isSym() {
		if n.sym == "empty" {
			return setdec.SEmpty(), nil
		}
		return setdec.SVar(n.sym), nil
	}
	if len(n.list) == 0 || !n.list[0].isSym() {
		return nil, fmt.Errorf("line %d: malformed set term", n.line)
	}
	head := n.list[0].sym
	args := n.list[1:]

	nary := func(want int) error {
		if len(args) != want {
			return fmt.Errorf("line %d: %s wants %d arguments, got %d", n.line, head, want, len(args))
		}
		return nil
	}

	switch head {
	case "singleton":
		if err := nary(1); err != nil {
			return nil, err
		}
		e, err := elem(args[0])
		if err != nil {
			return nil, err
		}
		return setdec.SSingleton(e), nil
	case "add", "remove":
		if err := nary(2); err != nil {
			return nil, err
		}
		e, err := elem(args[0])
		if err != nil {
			return nil, err
		}
		s, err := set(args[1])
		if err != nil {
			return nil, err
		}
		if head == "add" {
			return setdec.SAdd(e, s), nil
		}
		return setdec.SRemove(e, s), nil
	case "union", "inter", "diff":
		if err := nary(2); err != nil {
			return nil, err
		}
		l, err := set(args[0])
		if err != nil {
			return nil, err
		}
		r, err := set(args[1])
		if err != nil {
			return nil, err
		}
		switch head {
		case "union":
			return setdec.SUnion(l, r), nil
		case "inter":
			return setdec.SInter(l, r), nil
		default:
			return setdec.SDiff(l, r), nil
		}
	default:
		return nil, fmt.Errorf("line %d: unknown set head %q", n.line, head)
	}
}

// ScriptExtensions lists the filename extensions watch mode re-proves.
var ScriptExtensions = []string{".sdc"}

// IsScriptFile reports whether the filename has a proof script
// extension.
func IsScriptFile(name string) bool {
	for _, ext := range ScriptExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
