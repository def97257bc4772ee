// Package attribute defines named, typed units of per-particle state.
//
// Every attribute can render its value as text and accept a textual update,
// so an inspector can display and edit particle state without knowing the
// native type behind it.
package attribute

// Kind identifies the native type of an attribute.
type Kind uint8

const (
	KindInt Kind = iota
	KindEnum
	KindBool
	KindFloat
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindEnum:
		return "enum"
	case KindBool:
		return "bool"
	case KindFloat:
		return "float"
	default:
		return "unknown"
	}
}

// Owner is the particle an attribute belongs to.
type Owner interface {
	ID() uint32
}

// Attribute is the capability set shared by all attribute variants.
type Attribute interface {
	// Name is the display name given at construction.
	Name() string
	Kind() Kind
	Owner() Owner

	// String renders the current value in its canonical text form.
	String() string
	// UpdateFromText parses text and replaces the current value.
	// On error the value is left unchanged.
	UpdateFromText(text string) error
	// Reset restores the value the attribute was constructed with.
	Reset()
	// Value returns the current native value.
	Value() any
	// OnChange registers fn to be called after every change of value.
	OnChange(fn func(Attribute))
	// Memento captures the current native value and returns a function that
	// puts it back, bypassing the text form.
	Memento() func()
}

// cell holds the state common to every variant. The store method is the
// single path through which values change, so Set and UpdateFromText notify
// observers identically.
type cell[T comparable] struct {
	owner     Owner
	name      string
	value     T
	initial   T
	observers []func(Attribute)

	// equal overrides == when set
	equal func(a, b T) bool
}

func newCell[T comparable](owner Owner, name string, initial T) cell[T] {
	return cell[T]{owner: owner, name: name, value: initial, initial: initial}
}

func (c *cell[T]) Name() string { return c.name }
func (c *cell[T]) Owner() Owner { return c.owner }
func (c *cell[T]) Get() T { return c.value }
func (c *cell[T]) Initial() T { return c.initial }
func (c *cell[T]) Value() any { return c.value }

func (c *cell[T]) OnChange(fn func(Attribute)) {
	if fn != nil {
		c.observers = append(c.observers, fn)
	}
}

// memento returns a function restoring the value held now.
func (c *cell[T]) memento(self Attribute) func() {
	v := c.value
	return func() { c.store(self, v) }
}

// store replaces the value and notifies observers with self if it changed.
func (c *cell[T]) store(self Attribute, v T) {
	same := c.value == v
	if c.equal != nil {
		same = c.equal(c.value, v)
	}
	if same {
		return
	}
	c.value = v
	for _, fn := range c.observers {
		fn(self)
	}
}
