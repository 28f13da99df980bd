// Package main replays a recorded target trace through one configured
// creature and writes the solved positions as CSV.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/serpent/config"
	"github.com/pthm-cable/serpent/sim"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	input := flag.String("targets", "", "Input CSV with tick,x,y rows")
	output := flag.String("output", "trace.csv", "Output CSV of solved ticks")
	nodesOut := flag.String("nodes", "", "Optional output CSV of every node position per tick")
	creature := flag.Int("creature", 0, "Index of the configured creature to replay")
	ticks := flag.Int("ticks", 0, "Ticks to solve (0 = last target tick + 1)")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	if err := run(*configPath, *input, *output, *nodesOut, *creature, *ticks); err != nil {
		slog.Error("trace failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath, input, output, nodesOut string, creature, ticks int) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if input == "" {
		return fmt.Errorf("-targets is required")
	}
	if creature < 0 || creature >= len(cfg.Creatures) {
		return fmt.Errorf("creature index %d out of range, config has %d", creature, len(cfg.Creatures))
	}

	in, err := os.Open(input)
	if err != nil {
		return err
	}
	defer in.Close()

	var targets []TargetRecord
	if err := gocsv.UnmarshalFile(in, &targets); err != nil {
		return err
	}
	if err := sortTargets(targets); err != nil {
		return err
	}
	if ticks <= 0 && len(targets) > 0 {
		ticks = targets[len(targets)-1].Tick + 1
	}

	g, err := sim.BuildGroup(cfg.Creatures[creature], cfg.Fold.Band())
	if err != nil {
		return err
	}

	var nodes *[]NodeRecord
	if nodesOut != "" {
		nodes = &[]NodeRecord{}
	}
	records := replay(g, targets, ticks, nodes)

	if err := writeCSV(output, &records); err != nil {
		return err
	}
	if nodes != nil {
		if err := writeCSV(nodesOut, nodes); err != nil {
			return err
		}
	}

	slog.Info("trace written",
		"creature", cfg.Creatures[creature].Name,
		"targets", len(targets),
		"ticks", ticks,
		"output", output,
	)
	return nil
}

func writeCSV(path string, records any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := gocsv.MarshalFile(records, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
