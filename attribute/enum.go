package attribute

import (
	"fmt"
	"strconv"
)

// Integer is the set of underlying types an enumeration may use.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// EnumMember pairs a symbolic name with its value.
type EnumMember[T Integer] struct {
	Name  string
	Value T
}

// EnumType describes the members of an enumeration. Members are kept in
// declaration order.
type EnumType[T Integer] struct {
	name    string
	members []EnumMember[T]
	byName  map[string]T
	byValue map[T]string
}

// NewEnumType declares an enumeration. Duplicate names or values panic.
func NewEnumType[T Integer](name string, members ...EnumMember[T]) *EnumType[T] {
	et := &EnumType[T]{
		name:    name,
		members: make([]EnumMember[T], 0, len(members)),
		byName:  make(map[string]T, len(members)),
		byValue: make(map[T]string, len(members)),
	}
	for _, m := range members {
		if m.Name == "" {
			panic(fmt.Sprintf("attribute: enum %s has a member with an empty name", name))
		}
		if _, dup := et.byName[m.Name]; dup {
			panic(fmt.Sprintf("attribute: enum %s declares %q twice", name, m.Name))
		}
		if prev, dup := et.byValue[m.Value]; dup {
			panic(fmt.Sprintf("attribute: enum %s members %q and %q share a value", name, prev, m.Name))
		}
		et.members = append(et.members, m)
		et.byName[m.Name] = m.Value
		et.byValue[m.Value] = m.Name
	}
	return et
}

// EnumOf declares an enumeration whose i-th name has value i, matching
// constants declared with iota.
func EnumOf[T Integer](name string, names ...string) *EnumType[T] {
	members := make([]EnumMember[T], len(names))
	for i, n := range names {
		members[i] = EnumMember[T]{Name: n, Value: T(i)}
	}
	return NewEnumType(name, members...)
}

// TypeName returns the name the enumeration was declared with.
func (et *EnumType[T]) TypeName() string { return et.name }

// Names returns the member names in declaration order.
func (et *EnumType[T]) Names() []string {
	names := make([]string, len(et.members))
	for i, m := range et.members {
		names[i] = m.Name
	}
	return names
}

// Name returns the member name for v.
func (et *EnumType[T]) Name(v T) (string, bool) {
	n, ok := et.byValue[v]
	return n, ok
}

// Parse looks up a member by its exact name.
func (et *EnumType[T]) Parse(s string) (T, bool) {
	v, ok := et.byName[s]
	return v, ok
}

// Format renders v as its member name, or TypeName(v) for undeclared values.
func (et *EnumType[T]) Format(v T) string {
	if n, ok := et.byValue[v]; ok {
		return n
	}
	return et.name + "(" + formatInteger(v) + ")"
}

func formatInteger[T Integer](v T) string {
	if T(0)-1 > 0 {
		return strconv.FormatUint(uint64(v), 10)
	}
	return strconv.FormatInt(int64(v), 10)
}

// Enum is an enumeration-valued attribute. Its text form is the symbolic
// name of the current member.
type Enum[T Integer] struct {
	cell[T]
	typ *EnumType[T]
}

// NewEnum creates an enumeration attribute owned by owner.
func NewEnum[T Integer](owner Owner, name string, typ *EnumType[T], initial T) *Enum[T] {
	return &Enum[T]{cell: newCell(owner, name, initial), typ: typ}
}

func (a *Enum[T]) Kind() Kind { return KindEnum }

// Type returns the enumeration the attribute draws its values from.
func (a *Enum[T]) Type() *EnumType[T] { return a.typ }

// Members returns the member names the attribute accepts.
func (a *Enum[T]) Members() []string { return a.typ.Names() }

// Set assigns v directly.
func (a *Enum[T]) Set(v T) { a.store(a, v) }

func (a *Enum[T]) Reset() { a.store(a, a.initial) }

func (a *Enum[T]) Memento() func() { return a.memento(a) }

func (a *Enum[T]) String() string { return a.typ.Format(a.value) }

// UpdateFromText matches text against member names. Ordinals are not
// accepted, so renaming a member invalidates previously stored text.
func (a *Enum[T]) UpdateFromText(text string) error {
	v, ok := a.typ.Parse(text)
	if !ok {
		return &UnknownEnumMemberError{Attribute: a.name, Enum: a.typ.name, Text: text}
	}
	a.store(a, v)
	return nil
}
