// Package system is a minimal particle host. It stores particles as entities
// of an ECS world and gives them the logger and round counter they expect
// from an engine.
package system

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/amoebot/algorithms"
	"github.com/pthm-cable/amoebot/particle"
)

var (
	// ErrOccupied is returned when spawning onto a node that holds a particle.
	ErrOccupied = errors.New("grid node occupied")
	// ErrNoParticle is returned for ids that are not in the system.
	ErrNoParticle = errors.New("no such particle")
)

// System holds the particles and implements particle.Host.
type System struct {
	world  *ecs.World
	mapper *ecs.Map2[GridPosition, Handle]
	filter *ecs.Filter2[GridPosition, Handle]

	byPos  map[particle.Position]ecs.Entity
	byID   map[uint32]ecs.Entity
	nextID uint32
	round  int

	logger *slog.Logger
}

// New creates an empty system. A nil logger falls back to slog.Default.
func New(logger *slog.Logger) *System {
	if logger == nil {
		logger = slog.Default()
	}
	world := ecs.NewWorld()
	return &System{
		world:  world,
		mapper: ecs.NewMap2[GridPosition, Handle](world),
		filter: ecs.NewFilter2[GridPosition, Handle](world),
		byPos:  make(map[particle.Position]ecs.Entity),
		byID:   make(map[uint32]ecs.Entity),
		logger: logger,
	}
}

func (s *System) Logger() *slog.Logger { return s.logger }
func (s *System) Round() int { return s.round }
func (s *System) Len() int { return len(s.byID) }

// Spawn places a new particle built by f at pos. Ids are assigned in
// spawn order starting at 1 and are never reused.
func (s *System) Spawn(f algorithms.Factory, pos particle.Position) (particle.Algorithm, error) {
	if _, taken := s.byPos[pos]; taken {
		return nil, fmt.Errorf("spawn at %s: %w", pos, ErrOccupied)
	}

	s.nextID++
	id := s.nextID
	alg := f(s, id, pos)

	entity := s.mapper.NewEntity(
		&GridPosition{X: pos.X, Y: pos.Y},
		&Handle{Algorithm: alg},
	)
	s.byPos[pos] = entity
	s.byID[id] = entity

	s.logger.Debug("particle spawned", "particle", id, "x", pos.X, "y", pos.Y)
	return alg, nil
}

// Get returns the particle with the given id.
func (s *System) Get(id uint32) (particle.Algorithm, bool) {
	entity, ok := s.byID[id]
	if !ok {
		return nil, false
	}
	_, h := s.mapper.Get(entity)
	return h.Algorithm, true
}

// At returns the particle occupying pos.
func (s *System) At(pos particle.Position) (particle.Algorithm, bool) {
	entity, ok := s.byPos[pos]
	if !ok {
		return nil, false
	}
	_, h := s.mapper.Get(entity)
	return h.Algorithm, true
}

// Remove takes a particle out of the system.
func (s *System) Remove(id uint32) error {
	entity, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("remove %d: %w", id, ErrNoParticle)
	}
	gp, _ := s.mapper.Get(entity)
	delete(s.byPos, gp.Position())
	delete(s.byID, id)
	s.world.RemoveEntity(entity)
	return nil
}

// Particles returns all particles ordered by id.
func (s *System) Particles() []particle.Algorithm {
	out := make([]particle.Algorithm, 0, len(s.byID))
	query := s.filter.Query()
	for query.Next() {
		_, h := query.Get()
		out = append(out, h.Algorithm)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Base().ID() < out[j].Base().ID()
	})
	return out
}

// ActivateAll activates every particle once, in id order, then advances the
// round counter.
func (s *System) ActivateAll() {
	for _, p := range s.Particles() {
		p.Activate()
	}
	s.round++
}
