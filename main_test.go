package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/amoebot/config"
	"github.com/pthm-cable/amoebot/telemetry"
)

func TestInitialEditsOrder(t *testing.T) {
	edits, err := initialEdits(
		map[string]string{"b": "2", "a": "1"},
		[]string{"a=3"},
	)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a=1", "b=2", "a=3"}
	if len(edits) != len(want) {
		t.Fatalf("edits = %v, want %v", edits, want)
	}
	for i := range want {
		if edits[i].String() != want[i] {
			t.Errorf("edit %d = %s, want %s", i, edits[i], want[i])
		}
	}
}

func TestInitialEditsMalformedFlag(t *testing.T) {
	if _, err := initialEdits(nil, []string{"oops"}); err == nil {
		t.Error("expected error for malformed -set value")
	}
}

func TestRunWritesOutput(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Output.Dir = t.TempDir()

	if err := run(cfg, []string{"My Int Attribute=5"}, true, ""); err != nil {
		t.Fatalf("run: %v", err)
	}

	for _, name := range []string{"attributes.csv", "summary.csv", "config.yaml", "snapshot_1.json"} {
		if _, err := os.Stat(filepath.Join(cfg.Output.Dir, name)); err != nil {
			t.Errorf("%s not written: %v", name, err)
		}
	}

	snap, err := telemetry.LoadSnapshot(filepath.Join(cfg.Output.Dir, "snapshot_1.json"))
	if err != nil {
		t.Fatal(err)
	}
	for _, ps := range snap.Particles {
		if ps.Attributes["My Int Attribute"] != "42" || ps.Attributes["My Enum Attribute"] != "LEADER" {
			t.Errorf("particle %d state after activation = %v", ps.ID, ps.Attributes)
		}
	}
}

func TestRunRejectsBadEdit(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	if err := run(cfg, []string{"My Enum Attribute=leader"}, false, ""); err == nil {
		t.Error("expected error for unknown enum member")
	}
}

func TestRunUnknownAlgorithm(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Algorithm = "missing"
	if err := run(cfg, nil, false, ""); err == nil {
		t.Error("expected error for unknown algorithm")
	}
}
