package attribute

import (
	"errors"
	"fmt"
)

var (
	// ErrParse reports text that is not a valid literal of the attribute's type.
	ErrParse = errors.New("invalid attribute value")
	// ErrUnknownEnumMember reports text that names no member of the enumeration.
	ErrUnknownEnumMember = errors.New("unknown enum member")
)

// ParseError is returned when UpdateFromText cannot parse its input.
type ParseError struct {
	Attribute string
	Kind      Kind
	Text      string
	Err       error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("attribute %q: cannot parse %q as %s: %v", e.Attribute, e.Text, e.Kind, e.Err)
	}
	return fmt.Sprintf("attribute %q: cannot parse %q as %s", e.Attribute, e.Text, e.Kind)
}

func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrParse}
	}
	return []error{ErrParse, e.Err}
}

// UnknownEnumMemberError is returned when text matches no member name of an
// enumeration. Matching is exact and case-sensitive.
type UnknownEnumMemberError struct {
	Attribute string
	Enum      string
	Text      string
}

func (e *UnknownEnumMemberError) Error() string {
	return fmt.Sprintf("attribute %q: %q is not a member of %s", e.Attribute, e.Text, e.Enum)
}

func (e *UnknownEnumMemberError) Is(target error) bool {
	return target == ErrUnknownEnumMember
}
