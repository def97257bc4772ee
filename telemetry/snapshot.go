package telemetry

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pthm-cable/amoebot/particle"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// ErrSnapshotMismatch is returned when a snapshot does not fit the system
// it is restored into.
var ErrSnapshotMismatch = errors.New("snapshot does not match system")

// Snapshot holds the attribute state of every particle. Values are stored in
// their text form, so restoring goes through UpdateFromText.
type Snapshot struct {
	Version   int             `json:"version"`
	Algorithm string          `json:"algorithm"`
	Round     int             `json:"round"`
	Particles []ParticleState `json:"particles"`
}

// ParticleState holds one particle's placement and attribute values.
type ParticleState struct {
	ID         uint32            `json:"id"`
	X          int               `json:"x"`
	Y          int               `json:"y"`
	Attributes map[string]string `json:"attributes"`
}

// TakeSnapshot captures the current state of particles.
func TakeSnapshot(algorithm string, round int, particles []particle.Algorithm) *Snapshot {
	s := &Snapshot{
		Version:   SnapshotVersion,
		Algorithm: algorithm,
		Round:     round,
		Particles: make([]ParticleState, 0, len(particles)),
	}
	for _, alg := range particles {
		p := alg.Base()
		ps := ParticleState{
			ID:         p.ID(),
			X:          p.Position().X,
			Y:          p.Position().Y,
			Attributes: make(map[string]string),
		}
		for _, a := range p.Attributes() {
			ps.Attributes[a.Name()] = a.String()
		}
		s.Particles = append(s.Particles, ps)
	}
	return s
}

// Restore writes the snapshot's values back into the particle at the same
// position. If any value fails to parse, the native values held before the
// call are put back and the particles are left as they were.
func (s *Snapshot) Restore(at func(particle.Position) (particle.Algorithm, bool)) error {
	if s.Version != SnapshotVersion {
		return fmt.Errorf("%w: version %d, want %d", ErrSnapshotMismatch, s.Version, SnapshotVersion)
	}

	type pending struct {
		p     *particle.Particle
		state ParticleState
	}
	var plan []pending
	for _, ps := range s.Particles {
		pos := particle.Position{X: ps.X, Y: ps.Y}
		alg, ok := at(pos)
		if !ok {
			return fmt.Errorf("%w: no particle at %s", ErrSnapshotMismatch, pos)
		}
		for name := range ps.Attributes {
			if _, ok := alg.Base().Attribute(name); !ok {
				return fmt.Errorf("%w: particle at %s has no attribute %q", ErrSnapshotMismatch, pos, name)
			}
		}
		plan = append(plan, pending{p: alg.Base(), state: ps})
	}

	var undo []func()
	for _, step := range plan {
		for _, a := range step.p.Attributes() {
			text, ok := step.state.Attributes[a.Name()]
			if !ok {
				continue
			}
			restore := a.Memento()
			if err := a.UpdateFromText(text); err != nil {
				for i := len(undo) - 1; i >= 0; i-- {
					undo[i]()
				}
				return fmt.Errorf("restore particle %d: %w", step.p.ID(), err)
			}
			undo = append(undo, restore)
		}
	}
	return nil
}

// SaveSnapshot writes snapshot as JSON into dir and returns the file path.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("snapshot_%d.json", snapshot.Round))

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads a snapshot written by SaveSnapshot.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}

	return &snapshot, nil
}
