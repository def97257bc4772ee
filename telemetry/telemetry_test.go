package telemetry

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/amoebot/algorithms/example"
	"github.com/pthm-cable/amoebot/attribute"
	"github.com/pthm-cable/amoebot/config"
	"github.com/pthm-cable/amoebot/particle"
)

func init() {
	config.MustInit("")
}

func newParticles(t *testing.T, ints ...string) []particle.Algorithm {
	t.Helper()
	var out []particle.Algorithm
	for i, s := range ints {
		p := example.New(nil, uint32(i+1), particle.Position{X: i}).(*example.Particle)
		if err := p.MyInt.UpdateFromText(s); err != nil {
			t.Fatal(err)
		}
		out = append(out, p)
	}
	return out
}

func lookup(particles []particle.Algorithm) func(particle.Position) (particle.Algorithm, bool) {
	return func(pos particle.Position) (particle.Algorithm, bool) {
		for _, p := range particles {
			if p.Base().Position() == pos {
				return p, true
			}
		}
		return nil, false
	}
}

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestCollect(t *testing.T) {
	records := Collect(2, newParticles(t, "5", "-3"))
	if len(records) != 4 {
		t.Fatalf("got %d records, want 4", len(records))
	}

	first := records[0]
	if first.Round != 2 || first.Particle != 1 || first.Attribute != "My Int Attribute" ||
		first.Kind != "int" || first.Value != "5" {
		t.Errorf("first record = %+v", first)
	}
	if records[1].Kind != "enum" || records[1].Value != "IDLE" {
		t.Errorf("second record = %+v", records[1])
	}
	if records[2].Particle != 2 || records[2].X != 1 || records[2].Value != "-3" {
		t.Errorf("third record = %+v", records[2])
	}
}

func TestSummarize(t *testing.T) {
	particles := newParticles(t, "1", "2", "3", "4", "5")
	particles[0].(*example.Particle).MyState.Set(example.Leader)

	summaries := Summarize(Collect(0, particles))
	if len(summaries) != 2 {
		t.Fatalf("got %d summaries, want 2", len(summaries))
	}

	ints := summaries[0]
	if ints.Count != 5 || ints.Mean != 3 || ints.Min != 1 || ints.Max != 5 || ints.P50 != 3 {
		t.Errorf("int summary = %+v", ints)
	}
	// sample standard deviation of 1..5
	if math.Abs(ints.Std-math.Sqrt(2.5)) > 1e-9 {
		t.Errorf("std = %v, want %v", ints.Std, math.Sqrt(2.5))
	}

	states := summaries[1]
	if states.Counts["IDLE"] != 4 || states.Counts["LEADER"] != 1 {
		t.Errorf("enum counts = %v", states.Counts)
	}
}

func TestSummarizeSingleValueHasZeroStd(t *testing.T) {
	s := Summarize(Collect(0, newParticles(t, "9")))
	if s[0].Std != 0 || s[0].Mean != 9 {
		t.Errorf("summary = %+v", s[0])
	}
}

func TestSnapshotSaveLoadRestore(t *testing.T) {
	src := newParticles(t, "11", "12")
	src[1].(*example.Particle).MyState.Set(example.Root)

	path, err := SaveSnapshot(TakeSnapshot(example.Name, 4, src), t.TempDir())
	if err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	if filepath.Base(path) != "snapshot_4.json" {
		t.Errorf("snapshot file = %s", path)
	}

	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if loaded.Algorithm != example.Name || loaded.Round != 4 || len(loaded.Particles) != 2 {
		t.Errorf("loaded snapshot = %+v", loaded)
	}

	dst := newParticles(t, "0", "0")
	if err := loaded.Restore(lookup(dst)); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	a, b := dst[0].(*example.Particle), dst[1].(*example.Particle)
	if a.MyInt.Get() != 11 || b.MyInt.Get() != 12 || b.MyState.Get() != example.Root {
		t.Errorf("restored values = %d, %d, %s", a.MyInt.Get(), b.MyInt.Get(), b.MyState.Get())
	}
}

func TestRestoreRollsBackOnBadValue(t *testing.T) {
	dst := newParticles(t, "1", "2")
	snap := &Snapshot{
		Version: SnapshotVersion,
		Particles: []ParticleState{
			{X: 0, Attributes: map[string]string{"My Int Attribute": "100"}},
			{X: 1, Attributes: map[string]string{"My Enum Attribute": "leader"}},
		},
	}

	err := snap.Restore(lookup(dst))
	if !errors.Is(err, attribute.ErrUnknownEnumMember) {
		t.Fatalf("Restore error = %v, want ErrUnknownEnumMember", err)
	}
	if got := dst[0].(*example.Particle).MyInt.Get(); got != 1 {
		t.Errorf("first particle int = %d after failed restore, want 1", got)
	}
}

func TestRestoreRollsBackUndeclaredEnumValue(t *testing.T) {
	dst := newParticles(t, "1", "2")
	first := dst[0].(*example.Particle)
	first.MyState.Set(example.State(9))

	snap := &Snapshot{
		Version: SnapshotVersion,
		Particles: []ParticleState{
			{X: 0, Attributes: map[string]string{"My Enum Attribute": "ROOT"}},
			{X: 1, Attributes: map[string]string{"My Enum Attribute": "bogus"}},
		},
	}

	err := snap.Restore(lookup(dst))
	if !errors.Is(err, attribute.ErrUnknownEnumMember) {
		t.Fatalf("Restore error = %v, want ErrUnknownEnumMember", err)
	}
	if got := first.MyState.Get(); got != example.State(9) {
		t.Errorf("first particle state = %s after failed restore, want %s", got, example.State(9))
	}
}

func TestRestoreMismatch(t *testing.T) {
	dst := newParticles(t, "1")
	tests := []struct {
		name string
		snap Snapshot
	}{
		{"version", Snapshot{Version: 99}},
		{"missing particle", Snapshot{Version: SnapshotVersion, Particles: []ParticleState{{X: 5}}}},
		{"unknown attribute", Snapshot{Version: SnapshotVersion, Particles: []ParticleState{
			{X: 0, Attributes: map[string]string{"nope": "1"}},
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.snap.Restore(lookup(dst)); !errors.Is(err, ErrSnapshotMismatch) {
				t.Errorf("Restore error = %v, want ErrSnapshotMismatch", err)
			}
		})
	}
}

func TestOutputManager(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("empty dir should disable output, got %v, %v", om, err)
	}
	if err := om.WriteAttributes([]AttributeRecord{{}}); err != nil {
		t.Errorf("nil manager write: %v", err)
	}

	dir := t.TempDir()
	om, err = NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	particles := newParticles(t, "3", "4")
	for round := 0; round < 2; round++ {
		records := Collect(round, particles)
		if err := om.WriteAttributes(records); err != nil {
			t.Fatal(err)
		}
		if err := om.WriteSummaries(Summarize(records)); err != nil {
			t.Fatal(err)
		}
	}
	if err := om.WriteConfig(config.Cfg()); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "attributes.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(data), "round,particle"); n != 1 {
		t.Errorf("attributes.csv has %d header lines, want 1", n)
	}

	var back []AttributeRecord
	if err := gocsv.UnmarshalBytes(data, &back); err != nil {
		t.Fatalf("reading attributes.csv: %v", err)
	}
	if len(back) != 8 {
		t.Errorf("attributes.csv has %d rows, want 8", len(back))
	}

	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config.yaml not written: %v", err)
	}
}
