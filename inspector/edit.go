package inspector

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pthm-cable/amoebot/particle"
)

var (
	// ErrMalformedEdit is returned for edits not of the form name=value.
	ErrMalformedEdit = errors.New("edit must have the form name=value")
	// ErrUnknownAttribute is returned when an edit names no declared attribute.
	ErrUnknownAttribute = errors.New("unknown attribute")
	// ErrNoSelection is returned when editing without a selected particle.
	ErrNoSelection = errors.New("no particle selected")
)

// Edit is a textual update of one attribute.
type Edit struct {
	Name string
	Text string
}

func (e Edit) String() string { return e.Name + "=" + e.Text }

// ParseEdit parses "name=value". The name is trimmed of surrounding spaces;
// the value is taken verbatim after the first '='.
func ParseEdit(s string) (Edit, error) {
	name, text, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return Edit{}, fmt.Errorf("%q: %w", s, ErrMalformedEdit)
	}
	return Edit{Name: name, Text: text}, nil
}

// ParseEdits parses a list of "name=value" strings.
func ParseEdits(list []string) ([]Edit, error) {
	edits := make([]Edit, 0, len(list))
	for _, s := range list {
		e, err := ParseEdit(s)
		if err != nil {
			return nil, err
		}
		edits = append(edits, e)
	}
	return edits, nil
}

// Apply performs edits on p in order and stops at the first failure. Edits
// applied before the failure are kept; the failing attribute is unchanged.
func Apply(p *particle.Particle, edits ...Edit) error {
	for _, e := range edits {
		a, ok := p.Attribute(e.Name)
		if !ok {
			return fmt.Errorf("particle %d: %w %q", p.ID(), ErrUnknownAttribute, e.Name)
		}
		if err := a.UpdateFromText(e.Text); err != nil {
			return fmt.Errorf("particle %d: %w", p.ID(), err)
		}
	}
	return nil
}
