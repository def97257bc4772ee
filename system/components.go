package system

import "github.com/pthm-cable/amoebot/particle"

// GridPosition is the grid node a particle occupies.
type GridPosition struct {
	X, Y int
}

func (g GridPosition) Position() particle.Position {
	return particle.Position{X: g.X, Y: g.Y}
}

// Handle links an entity to the algorithm particle living on it.
type Handle struct {
	Algorithm particle.Algorithm
}
