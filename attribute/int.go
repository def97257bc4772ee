package attribute

import "strconv"

// Int is an integer-valued attribute. Its text form is the decimal
// representation of the value.
type Int struct {
	cell[int]
}

// NewInt creates an integer attribute owned by owner.
func NewInt(owner Owner, name string, initial int) *Int {
	return &Int{cell: newCell(owner, name, initial)}
}

func (a *Int) Kind() Kind { return KindInt }

// Set assigns v directly.
func (a *Int) Set(v int) { a.store(a, v) }

func (a *Int) Reset() { a.store(a, a.initial) }

func (a *Int) Memento() func() { return a.memento(a) }

func (a *Int) String() string {
	return strconv.Itoa(a.value)
}

// UpdateFromText accepts any base-10 literal that fits in an int,
// with an optional sign.
func (a *Int) UpdateFromText(text string) error {
	v, err := strconv.ParseInt(text, 10, strconv.IntSize)
	if err != nil {
		return &ParseError{Attribute: a.name, Kind: KindInt, Text: text, Err: err}
	}
	a.store(a, int(v))
	return nil
}
