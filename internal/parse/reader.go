// Package parse reads s-expression problem files. A problem is a
// sequence of top-level forms:
//
//	(inductive Name (levels u ...) NPARAMS TYPE (ctor Name TYPE) ...)
//	(class Name (levels u ...) NPARAMS TYPE (ctor Name TYPE) ...)
//	(mutual (inductive ...) (inductive ...) ...)
//	(hyp name TYPE)
//	(atom TYPE)
//	(target TYPE)
//	(goal TYPE)
//
// Terms use the same surface the diagnostic printer emits:
//
//	(pi x T B)  (lam x T B)  (-> A B ...)  (app f a ...)
//	(const Name LEVEL ...)  (sort LEVEL)  (lit N)  Prop  Type
//
// where a LEVEL is either a numeral or a universe parameter name.
// Named binders are elaborated to de Bruijn indices; a free symbol
// resolves to the innermost binder, then to a declared constant, then
// to a free variable. Comments run from ';' to end of line.
package parse

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSyntax wraps every reader and elaboration failure.
var ErrSyntax = errors.New("syntax error")

type pos struct {
	line, col int
}

func (p pos) String() string {
	return fmt.Sprintf("%d:%d", p.line, p.col)
}

// node is one s-expression: either an atom (Sym != "") or a list.
type node struct {
	Sym  string
	List []*node
	Pos  pos
}

func (n *node) isSym() bool { return n.Sym != "" }

func errAt(p pos, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrSyntax, p, fmt.Sprintf(format, args...))
}

type scanner struct {
	src  string
	off  int
	line int
	col  int
}

func newScanner(src string) *scanner {
	return &scanner{src: src, line: 1, col: 1}
}

func (s *scanner) peek() (byte, bool) {
	if s.off >= len(s.src) {
		return 0, false
	}
	return s.src[s.off], true
}

func (s *scanner) bump() byte {
	ch := s.src[s.off]
	s.off++
	if ch == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return ch
}

func (s *scanner) skipTrivia() {
	for {
		ch, ok := s.peek()
		if !ok {
			return
		}
		switch {
		case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n':
			s.bump()
		case ch == ';':
			for {
				ch, ok := s.peek()
				if !ok || ch == '\n' {
					break
				}
				s.bump()
			}
		default:
			return
		}
	}
}

func isDelim(ch byte) bool {
	switch ch {
	case '(', ')', ';', ' ', '\t', '\r', '\n':
		return true
	}
	return false
}

// readAll parses the whole source into top-level forms.
func readAll(src string) ([]*node, error) {
	s := newScanner(src)
	var out []*node
	for {
		s.skipTrivia()
		if _, ok := s.peek(); !ok {
			return out, nil
		}
		n, err := s.read()
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
}

func (s *scanner) read() (*node, error) {
	s.skipTrivia()
	start := pos{line: s.line, col: s.col}
	ch, ok := s.peek()
	if !ok {
		return nil, errAt(start, "unexpected end of input")
	}
	switch ch {
	case '(':
		s.bump()
		list := &node{Pos: start, List: []*node{}}
		for {
			s.skipTrivia()
			ch, ok := s.peek()
			if !ok {
				return nil, errAt(start, "unclosed list")
			}
			if ch == ')' {
				s.bump()
				return list, nil
			}
			child, err := s.read()
			if err != nil {
				return nil, err
			}
			list.List = append(list.List, child)
		}
	case ')':
		return nil, errAt(start, "unmatched ')'")
	default:
		var b strings.Builder
		for {
			ch, ok := s.peek()
			if !ok || isDelim(ch) {
				break
			}
			b.WriteByte(s.bump())
		}
		return &node{Sym: b.String(), Pos: start}, nil
	}
}
