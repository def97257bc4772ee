// Package example is the smallest possible particle algorithm. It declares
// one integer and one enumeration attribute, logs them when activated and
// overwrites them with fixed values.
package example

import (
	"github.com/pthm-cable/amoebot/algorithms"
	"github.com/pthm-cable/amoebot/attribute"
	"github.com/pthm-cable/amoebot/particle"
)

// Name is the registry key of this algorithm.
const Name = "example"

// State is the role a particle plays.
type State uint8

const (
	Idle State = iota
	Root
	Leader
)

// StateType lists the State members by name.
var StateType = attribute.EnumOf[State]("State", "IDLE", "ROOT", "LEADER")

func (s State) String() string { return StateType.Format(s) }

// Values written by Activate.
const (
	ActivatedInt   = 42
	ActivatedState = Leader
)

// Particle is the example algorithm's particle type.
type Particle struct {
	*particle.Particle

	MyInt   *attribute.Int
	MyState *attribute.Enum[State]
}

// New creates an example particle. It matches algorithms.Factory.
func New(host particle.Host, id uint32, pos particle.Position) particle.Algorithm {
	p := &Particle{Particle: particle.New(host, id, pos)}
	p.MyInt = p.Int("My Int Attribute", 0)
	p.MyState = particle.Enum(p.Particle, "My Enum Attribute", StateType, Idle)
	return p
}

// Activate logs the current attribute values, then assigns constants.
func (p *Particle) Activate() {
	round := 0
	if h := p.Host(); h != nil {
		round = h.Round()
	}
	p.Logger().Info("activated",
		"round", round,
		"int", p.MyInt.Get(),
		"state", p.MyState.String(),
	)

	p.MyInt.Set(ActivatedInt)
	p.MyState.Set(ActivatedState)
}

func init() {
	algorithms.Register(Name, New)
}
