package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/pthm-cable/amoebot/algorithms"
	_ "github.com/pthm-cable/amoebot/algorithms/example"
	"github.com/pthm-cable/amoebot/config"
	"github.com/pthm-cable/amoebot/inspector"
	"github.com/pthm-cable/amoebot/particle"
	"github.com/pthm-cable/amoebot/system"
	"github.com/pthm-cable/amoebot/telemetry"
)

// editList collects repeated -set flags.
type editList []string

func (e *editList) String() string { return strings.Join(*e, ", ") }

func (e *editList) Set(v string) error {
	*e = append(*e, v)
	return nil
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	algorithm := flag.String("algorithm", "", "Algorithm to instantiate (empty = use config)")
	activate := flag.Bool("activate", false, "Activate every particle once before printing")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	restore := flag.String("restore", "", "Snapshot file to restore attribute values from")
	logFormat := flag.String("log-format", "", "Log format: json or text (empty = use config)")
	list := flag.Bool("list", false, "List registered algorithms and exit")
	var sets editList
	flag.Var(&sets, "set", "Attribute edit name=value applied to every particle (repeatable)")

	flag.Parse()

	if *list {
		for _, name := range algorithms.Names() {
			fmt.Println(name)
		}
		return
	}

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	if *algorithm != "" {
		cfg.Algorithm = *algorithm
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	if *outputDir != "" {
		cfg.Output.Dir = *outputDir
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		slog.Error("invalid log settings", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(logger)

	if err := run(cfg, sets, *activate, *restore); err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}

// newLogger builds the slog logger described by the log config.
func newLogger(lc config.LogConfig) (*slog.Logger, error) {
	level, err := lc.SlogLevel()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	switch lc.Format {
	case "json":
		return slog.New(slog.NewJSONHandler(os.Stderr, opts)), nil
	case "text":
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", lc.Format)
	}
}

func run(cfg *config.Config, sets []string, activate bool, restore string) error {
	factory, err := algorithms.Lookup(cfg.Algorithm)
	if err != nil {
		return err
	}

	sys := system.New(slog.Default())
	for _, pc := range cfg.System.Particles {
		if _, err := sys.Spawn(factory, particle.Position{X: pc.X, Y: pc.Y}); err != nil {
			return err
		}
	}
	slog.Info("system ready", "algorithm", cfg.Algorithm, "particles", sys.Len())

	edits, err := initialEdits(cfg.Attributes, sets)
	if err != nil {
		return err
	}
	for _, p := range sys.Particles() {
		if err := inspector.Apply(p.Base(), edits...); err != nil {
			return err
		}
	}

	if restore != "" {
		snap, err := telemetry.LoadSnapshot(restore)
		if err != nil {
			return err
		}
		if err := snap.Restore(sys.At); err != nil {
			return err
		}
		slog.Info("snapshot restored", "path", restore, "round", snap.Round)
	}

	om, err := telemetry.NewOutputManager(cfg.Output.Dir)
	if err != nil {
		return err
	}
	defer om.Close()
	if err := om.WriteConfig(cfg); err != nil {
		return err
	}
	if err := record(om, sys); err != nil {
		return err
	}

	if activate {
		sys.ActivateAll()
		if err := record(om, sys); err != nil {
			return err
		}
	}

	for _, p := range sys.Particles() {
		if err := inspector.Render(os.Stdout, p.Base()); err != nil {
			return err
		}
	}

	if path, err := om.WriteSnapshot(telemetry.TakeSnapshot(cfg.Algorithm, sys.Round(), sys.Particles())); err != nil {
		return err
	} else if path != "" {
		slog.Info("snapshot written", "path", path)
	}
	return nil
}

// initialEdits merges config attributes with -set flags. Config entries are
// applied in name order, flags afterwards in the order given.
func initialEdits(fromConfig map[string]string, sets []string) ([]inspector.Edit, error) {
	names := make([]string, 0, len(fromConfig))
	for name := range fromConfig {
		names = append(names, name)
	}
	sort.Strings(names)

	edits := make([]inspector.Edit, 0, len(names)+len(sets))
	for _, name := range names {
		edits = append(edits, inspector.Edit{Name: name, Text: fromConfig[name]})
	}
	flagEdits, err := inspector.ParseEdits(sets)
	if err != nil {
		return nil, err
	}
	return append(edits, flagEdits...), nil
}

// record writes the current attribute state and logs its summary.
func record(om *telemetry.OutputManager, sys *system.System) error {
	records := telemetry.Collect(sys.Round(), sys.Particles())
	summaries := telemetry.Summarize(records)
	for _, s := range summaries {
		slog.Info("attribute summary", "round", sys.Round(), "summary", s)
	}
	if err := om.WriteAttributes(records); err != nil {
		return err
	}
	return om.WriteSummaries(summaries)
}
