package attribute

import (
	"math"
	"strconv"
)

// Bool is a boolean attribute rendered as "true" or "false".
type Bool struct {
	cell[bool]
}

// NewBool creates a boolean attribute owned by owner.
func NewBool(owner Owner, name string, initial bool) *Bool {
	return &Bool{cell: newCell(owner, name, initial)}
}

func (a *Bool) Kind() Kind { return KindBool }
func (a *Bool) Set(v bool) { a.store(a, v) }
func (a *Bool) Reset() { a.store(a, a.initial) }
func (a *Bool) Memento() func() { return a.memento(a) }
func (a *Bool) String() string { return strconv.FormatBool(a.value) }

// UpdateFromText accepts the literals understood by strconv.ParseBool.
func (a *Bool) UpdateFromText(text string) error {
	v, err := strconv.ParseBool(text)
	if err != nil {
		return &ParseError{Attribute: a.name, Kind: KindBool, Text: text, Err: err}
	}
	a.store(a, v)
	return nil
}

// Float is a floating point attribute. It renders with the shortest
// representation that parses back to the same value.
type Float struct {
	cell[float64]
}

// NewFloat creates a float attribute owned by owner.
func NewFloat(owner Owner, name string, initial float64) *Float {
	c := newCell(owner, name, initial)
	c.equal = sameFloat
	return &Float{cell: c}
}

// sameFloat is == except that NaN equals NaN.
func sameFloat(a, b float64) bool {
	return a == b || math.IsNaN(a) && math.IsNaN(b)
}

func (a *Float) Kind() Kind { return KindFloat }
func (a *Float) Set(v float64) { a.store(a, v) }
func (a *Float) Reset() { a.store(a, a.initial) }
func (a *Float) Memento() func() { return a.memento(a) }
func (a *Float) String() string { return strconv.FormatFloat(a.value, 'g', -1, 64) }

func (a *Float) UpdateFromText(text string) error {
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return &ParseError{Attribute: a.name, Kind: KindFloat, Text: text, Err: err}
	}
	a.store(a, v)
	return nil
}
