package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dice-conquest/internal/game"
	"dice-conquest/pkg/maps"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_DefaultValues(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, GridConfig{Rows: 10, Cols: 10, Cells: 30}, cfg.Grid)
	assert.Equal(t, []string{"red", "green", "blue"}, cfg.Players.Colors)
	assert.Equal(t, DiceConfig{Average: 4, Max: 8, Sides: 6}, cfg.Dice)
	assert.Equal(t, 2*time.Second, cfg.Combat.Delay)
	assert.Equal(t, 0.3, cfg.Generator.Fairness)
	assert.Equal(t, maps.DefaultMaxAttempts, cfg.Generator.MaxAttempts)
	assert.Zero(t, cfg.Generator.Seed)
	assert.Equal(t, ViewConfig{SideLength: 32, Width: 1280, Height: 720, PanelWidth: 260}, cfg.View)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.Dev)
	assert.Empty(t, cfg.History.Path)
	assert.Equal(t, ":30000", cfg.Server.Addr)
	assert.Equal(t, 50*time.Millisecond, cfg.Server.Tick)
	assert.Equal(t, 5*time.Second, cfg.Server.RestartDelay)
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	path := writeConfig(t, "dicewars.json", `{
		"grid": { "rows": 6, "cols": 7, "cells": 20 },
		"players": { "colors": ["blue", "orange"] },
		"combat": { "delay": "500ms" },
		"generator": { "fairness": 0.25, "seed": 1234 },
		"log": { "level": "debug" }
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, GridConfig{Rows: 6, Cols: 7, Cells: 20}, cfg.Grid)
	assert.Equal(t, []string{"blue", "orange"}, cfg.Players.Colors)
	assert.Equal(t, 500*time.Millisecond, cfg.Combat.Delay)
	assert.Equal(t, 0.25, cfg.Generator.Fairness)
	assert.Equal(t, int64(1234), cfg.Generator.Seed)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 8, cfg.Dice.Max, "unset keys keep defaults")
}

func TestLoad_YAML(t *testing.T) {
	path := writeConfig(t, "dicewars.yaml", "dice:\n  average: 5\n  max: 9\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Dice.Average)
	assert.Equal(t, 9, cfg.Dice.Max)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("DICEWARS_GRID_CELLS", "40")
	t.Setenv("DICEWARS_SERVER_ADDR", ":9999")
	t.Setenv("DICEWARS_COMBAT_DELAY", "750ms")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Grid.Cells)
	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.Equal(t, 750*time.Millisecond, cfg.Combat.Delay)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"fairness too low", func(c *Config) { c.Generator.Fairness = 0.1 }},
		{"fairness too high", func(c *Config) { c.Generator.Fairness = 0.45 }},
		{"average below three", func(c *Config) { c.Dice.Average = 2 }},
		{"average too close to max", func(c *Config) { c.Dice.Max = 5 }},
		{"one player", func(c *Config) { c.Players.Colors = []string{"red"} }},
		{"too many players", func(c *Config) {
			c.Players.Colors = []string{"red", "green", "blue", "orange", "cyan", "yellow", "purple", "red"}
		}},
		{"unknown color", func(c *Config) { c.Players.Colors = []string{"red", "pink"} }},
		{"too many cells", func(c *Config) { c.Grid.Cells = 101 }},
		{"fewer cells than players", func(c *Config) { c.Grid.Cells = 2 }},
		{"side too small", func(c *Config) { c.View.SideLength = 4 }},
		{"side too large", func(c *Config) { c.View.SideLength = 61 }},
		{"one-sided die", func(c *Config) { c.Dice.Sides = 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("")
			require.NoError(t, err)
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestGameOptions(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	cfg.Generator.Seed = 77

	opts := cfg.GameOptions()
	assert.Equal(t, 10, opts.Rows)
	assert.Equal(t, 32, opts.SideLength)
	assert.Equal(t, []game.PlayerColor{game.ColorRed, game.ColorGreen, game.ColorBlue}, opts.Colors)
	assert.Equal(t, 3, opts.Generator.Players)
	assert.Equal(t, 30, opts.Generator.Cells)
	assert.Equal(t, 6, opts.Settings.DieSides)
	assert.Equal(t, 2*time.Second, opts.Settings.FightDelay)
	assert.Equal(t, int64(77), opts.Seed)

	g, err := game.New(opts)
	require.NoError(t, err)
	assert.Equal(t, int64(77), g.Seed())
}
