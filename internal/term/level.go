package term

import "strconv"

// Level is a universe level: either a literal or a named parameter.
type Level struct {
	Param Name
	N     uint32
}

// LevelLit returns a literal universe level.
func LevelLit(n uint32) Level {
	return Level{N: n}
}

// LevelParam returns a universe parameter level.
func LevelParam(name Name) Level {
	return Level{Param: name}
}

// LevelZero is the level of the proposition sort.
var LevelZero = LevelLit(0)

// LevelOne is the level of small data types.
var LevelOne = LevelLit(1)

// IsParam reports whether the level is a parameter.
func (l Level) IsParam() bool {
	return l.Param != NoName
}

// Eq reports level equality.
func (l Level) Eq(other Level) bool {
	return l.Param == other.Param && l.N == other.N
}

// IsZero reports whether the level is the literal zero.
func (l Level) IsZero() bool {
	return !l.IsParam() && l.N == 0
}

func (l Level) String() string {
	if l.IsParam() {
		return string(l.Param)
	}
	return strconv.FormatUint(uint64(l.N), 10)
}

// Succ returns the successor of a literal level. Parameter levels have
// no computable successor in this fragment.
func (l Level) Succ() (Level, bool) {
	if l.IsParam() {
		return Level{}, false
	}
	return LevelLit(l.N + 1), true
}

// LevelMax returns the impredicative maximum of two literal levels:
// a codomain in the proposition sort keeps the whole type there.
func LevelMax(a, b Level) (Level, bool) {
	if a.IsParam() || b.IsParam() {
		return Level{}, false
	}
	if b.N == 0 {
		return LevelZero, true
	}
	if a.N > b.N {
		return a, true
	}
	return b, true
}

// substLevel replaces parameter levels according to the assignment.
func substLevel(l Level, params []Name, values []Level) Level {
	if !l.IsParam() {
		return l
	}
	for i, p := range params {
		if p == l.Param {
			return values[i]
		}
	}
	return l
}
