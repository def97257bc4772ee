// Package particle provides the base every algorithm's particle type embeds.
package particle

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/amoebot/attribute"
)

// Host is the part of the simulation engine a particle may use.
type Host interface {
	Logger() *slog.Logger
	// Round is the number of completed activation passes.
	Round() int
}

// Position is a node on the triangular grid, in axial coordinates.
type Position struct {
	X, Y int
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Algorithm is implemented by every particle type an algorithm defines.
type Algorithm interface {
	Base() *Particle
	// Activate is called by the host once per activation of the particle.
	Activate()
}

// Particle holds the identity, placement and declared attributes of a
// particle. Attributes keep the order in which they were declared.
type Particle struct {
	id     uint32
	pos    Position
	host   Host
	attrs  []attribute.Attribute
	byName map[string]attribute.Attribute
}

// New creates a particle bound to host.
func New(host Host, id uint32, pos Position) *Particle {
	return &Particle{
		id:     id,
		pos:    pos,
		host:   host,
		byName: make(map[string]attribute.Attribute),
	}
}

func (p *Particle) ID() uint32 { return p.id }
func (p *Particle) Position() Position { return p.pos }
func (p *Particle) Host() Host { return p.host }
func (p *Particle) Base() *Particle { return p }

// Logger returns the host logger tagged with this particle's id.
func (p *Particle) Logger() *slog.Logger {
	var l *slog.Logger
	if p.host != nil {
		l = p.host.Logger()
	}
	if l == nil {
		l = slog.Default()
	}
	return l.With("particle", p.id)
}

// Attributes returns the declared attributes in declaration order.
func (p *Particle) Attributes() []attribute.Attribute {
	out := make([]attribute.Attribute, len(p.attrs))
	copy(out, p.attrs)
	return out
}

// Attribute looks up an attribute by display name.
func (p *Particle) Attribute(name string) (attribute.Attribute, bool) {
	a, ok := p.byName[name]
	return a, ok
}

// Reset restores every attribute to its initial value.
func (p *Particle) Reset() {
	for _, a := range p.attrs {
		a.Reset()
	}
}

// Declare registers an attribute. It panics if the name is already taken or
// the attribute is owned by another particle.
func (p *Particle) Declare(a attribute.Attribute) {
	if a.Owner() != attribute.Owner(p) {
		panic(fmt.Sprintf("particle %d: attribute %q has a different owner", p.id, a.Name()))
	}
	if _, dup := p.byName[a.Name()]; dup {
		panic(fmt.Sprintf("particle %d: attribute %q declared twice", p.id, a.Name()))
	}
	p.attrs = append(p.attrs, a)
	p.byName[a.Name()] = a
}

// Int declares an integer attribute.
func (p *Particle) Int(name string, initial int) *attribute.Int {
	a := attribute.NewInt(p, name, initial)
	p.Declare(a)
	return a
}

// Bool declares a boolean attribute.
func (p *Particle) Bool(name string, initial bool) *attribute.Bool {
	a := attribute.NewBool(p, name, initial)
	p.Declare(a)
	return a
}

// Float declares a float attribute.
func (p *Particle) Float(name string, initial float64) *attribute.Float {
	a := attribute.NewFloat(p, name, initial)
	p.Declare(a)
	return a
}

// Enum declares an enumeration attribute on p.
func Enum[T attribute.Integer](p *Particle, name string, typ *attribute.EnumType[T], initial T) *attribute.Enum[T] {
	a := attribute.NewEnum(p, name, typ, initial)
	p.Declare(a)
	return a
}
