// Package inspector displays and edits particle attributes as text.
package inspector

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/pthm-cable/amoebot/attribute"
	"github.com/pthm-cable/amoebot/particle"
)

// Inspector tracks one selected particle and whether its attributes changed
// since they were last displayed.
type Inspector struct {
	selected    *particle.Particle
	hasSelected bool
	dirty       bool

	// particles already carrying our change observer
	watched map[*particle.Particle]bool
	fields  []Field
}

// NewInspector creates a new inspector instance.
func NewInspector() *Inspector {
	return &Inspector{watched: make(map[*particle.Particle]bool)}
}

// Select makes p the inspected particle.
func (ins *Inspector) Select(p *particle.Particle) {
	ins.selected = p
	ins.hasSelected = p != nil
	ins.dirty = true
	if p == nil || ins.watched[p] {
		return
	}
	ins.watched[p] = true
	for _, a := range p.Attributes() {
		a.OnChange(func(changed attribute.Attribute) {
			if ins.hasSelected && changed.Owner() == attribute.Owner(ins.selected) {
				ins.dirty = true
			}
		})
	}
}

// Deselect clears the current selection.
func (ins *Inspector) Deselect() {
	ins.selected = nil
	ins.hasSelected = false
	ins.fields = nil
	ins.dirty = false
}

// Selected returns the inspected particle, if any.
func (ins *Inspector) Selected() (*particle.Particle, bool) {
	return ins.selected, ins.hasSelected
}

// Dirty reports whether the selected particle changed since the last Fields call.
func (ins *Inspector) Dirty() bool {
	return ins.dirty
}

// Fields returns the selected particle's fields, re-reading them only when
// something changed.
func (ins *Inspector) Fields() []Field {
	if !ins.hasSelected {
		return nil
	}
	if ins.dirty || ins.fields == nil {
		ins.fields = ExtractFields(ins.selected)
		ins.dirty = false
	}
	return ins.fields
}

// Edit applies textual edits to the selected particle.
func (ins *Inspector) Edit(edits ...Edit) error {
	if !ins.hasSelected {
		return ErrNoSelection
	}
	return Apply(ins.selected, edits...)
}

// Render writes a table of p's attributes to w.
func Render(w io.Writer, p *particle.Particle) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "particle %d at %s\n", p.ID(), p.Position())
	for _, f := range ExtractFields(p) {
		line := fmt.Sprintf("  %s\t%s\t%s", f.Name, f.Kind, f.Text)
		if m := f.Members; len(m) > 0 {
			line += "\t[" + strings.Join(m, " ") + "]"
		}
		fmt.Fprintln(tw, line)
	}
	return tw.Flush()
}
