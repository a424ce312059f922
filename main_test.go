package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/vehicles/config"
	"github.com/pthm-cable/vehicles/game"
)

func TestRunMissingConfig(t *testing.T) {
	err := run(runFlags{configPath: filepath.Join(t.TempDir(), "missing.yaml"), headless: true, maxTicks: 1})
	if err == nil {
		t.Fatal("expected error for a missing config file")
	}
}

func TestRunHeadlessBadArena(t *testing.T) {
	cfg := config.Default()
	cfg.Agents = append(cfg.Agents, config.AgentConfig{Name: "bad", Preset: "nope"})
	if err := runHeadless(cfg, game.Options{}, 1); err == nil {
		t.Fatal("expected error when the arena cannot be built")
	}
}

func TestRunHeadlessWritesOutput(t *testing.T) {
	dir := t.TempDir()
	if err := run(runFlags{headless: true, maxTicks: 5, outputDir: dir}); err != nil {
		t.Fatalf("run: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) == 0 {
		t.Error("output directory is empty after a headless run")
	}
}
