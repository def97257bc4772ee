// Package telemetry records particle attribute state for offline analysis.
package telemetry

import (
	"github.com/pthm-cable/amoebot/particle"
)

// AttributeRecord is one attribute of one particle at the end of a round.
type AttributeRecord struct {
	Round     int    `csv:"round"`
	Particle  uint32 `csv:"particle"`
	X         int    `csv:"x"`
	Y         int    `csv:"y"`
	Attribute string `csv:"attribute"`
	Kind      string `csv:"kind"`
	Value     string `csv:"value"`
}

// Collect flattens the attributes of particles into records, in particle
// order and then declaration order.
func Collect(round int, particles []particle.Algorithm) []AttributeRecord {
	var records []AttributeRecord
	for _, alg := range particles {
		p := alg.Base()
		pos := p.Position()
		for _, a := range p.Attributes() {
			records = append(records, AttributeRecord{
				Round:     round,
				Particle:  p.ID(),
				X:         pos.X,
				Y:         pos.Y,
				Attribute: a.Name(),
				Kind:      a.Kind().String(),
				Value:     a.String(),
			})
		}
	}
	return records
}
