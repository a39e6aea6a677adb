// Package config loads runtime settings from defaults, an optional file and
// DICEWARS_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"dice-conquest/internal/game"
	"dice-conquest/pkg/maps"
)

// EnvPrefix is prepended to every environment override, e.g.
// DICEWARS_GRID_CELLS=40.
const EnvPrefix = "DICEWARS"

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the full runtime configuration.
type Config struct {
	Grid      GridConfig      `mapstructure:"grid"`
	Players   PlayersConfig   `mapstructure:"players"`
	Dice      DiceConfig      `mapstructure:"dice"`
	Combat    CombatConfig    `mapstructure:"combat"`
	Generator GeneratorConfig `mapstructure:"generator"`
	View      ViewConfig      `mapstructure:"view"`
	Log       LogConfig       `mapstructure:"log"`
	History   HistoryConfig   `mapstructure:"history"`
	Server    ServerConfig    `mapstructure:"server"`
}

// GridConfig sizes the board.
type GridConfig struct {
	Rows  int `mapstructure:"rows"`
	Cols  int `mapstructure:"cols"`
	Cells int `mapstructure:"cells"`
}

// PlayersConfig lists seat colors, human first.
type PlayersConfig struct {
	Colors []string `mapstructure:"colors"`
}

type DiceConfig struct {
	Average int `mapstructure:"average"`
	Max     int `mapstructure:"max"`
	Sides   int `mapstructure:"sides"`
}

type CombatConfig struct {
	Delay time.Duration `mapstructure:"delay"`
}

type GeneratorConfig struct {
	Fairness    float64 `mapstructure:"fairness"`
	MaxAttempts int     `mapstructure:"maxAttempts"`
	Seed        int64   `mapstructure:"seed"` // 0 picks a seed from the clock
}

// ViewConfig holds window and board geometry for the desktop client.
type ViewConfig struct {
	SideLength int `mapstructure:"sideLength"`
	Width      int `mapstructure:"width"`
	Height     int `mapstructure:"height"`
	PanelWidth int `mapstructure:"panelWidth"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	Dev   bool   `mapstructure:"dev"`
	File  string `mapstructure:"file"`
}

// HistoryConfig points at the SQLite match journal; an empty path
// disables it.
type HistoryConfig struct {
	Path string `mapstructure:"path"`
}

// ServerConfig drives the headless server.
type ServerConfig struct {
	Addr         string        `mapstructure:"addr"`
	Tick         time.Duration `mapstructure:"tick"`
	RestartDelay time.Duration `mapstructure:"restartDelay"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("grid.rows", 10)
	v.SetDefault("grid.cols", 10)
	v.SetDefault("grid.cells", 30)

	v.SetDefault("players.colors", []string{"red", "green", "blue"})

	v.SetDefault("dice.average", 4)
	v.SetDefault("dice.max", 8)
	v.SetDefault("dice.sides", 6)

	v.SetDefault("combat.delay", 2000*time.Millisecond)

	v.SetDefault("generator.fairness", 0.3)
	v.SetDefault("generator.maxAttempts", maps.DefaultMaxAttempts)
	v.SetDefault("generator.seed", 0)

	v.SetDefault("view.sideLength", 32)
	v.SetDefault("view.width", 1280)
	v.SetDefault("view.height", 720)
	v.SetDefault("view.panelWidth", 260)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.dev", false)
	v.SetDefault("log.file", "")

	v.SetDefault("history.path", "")

	v.SetDefault("server.addr", ":30000")
	v.SetDefault("server.tick", 50*time.Millisecond)
	v.SetDefault("server.restartDelay", 5*time.Second)
}

// Load reads the configuration. path may be empty to use defaults and the
// environment only; otherwise the file must exist. The type is taken from
// the extension (json, yaml, toml).
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks ranges that would make generation or play impossible.
func (c *Config) Validate() error {
	if err := c.GeneratorOptions().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	players := len(c.Players.Colors)
	switch {
	case players > game.MaxPlayers:
		return fmt.Errorf("%w: at most %d players, got %d", ErrInvalidConfig, game.MaxPlayers, players)
	case c.Grid.Rows <= 0 || c.Grid.Cols <= 0:
		return fmt.Errorf("%w: grid %dx%d", ErrInvalidConfig, c.Grid.Rows, c.Grid.Cols)
	case c.Grid.Cells > c.Grid.Rows*c.Grid.Cols:
		return fmt.Errorf("%w: %d cells do not fit a %dx%d grid", ErrInvalidConfig, c.Grid.Cells, c.Grid.Rows, c.Grid.Cols)
	case c.View.SideLength < maps.MinSideLength || c.View.SideLength > maps.MaxSideLength:
		return fmt.Errorf("%w: side length %d", ErrInvalidConfig, c.View.SideLength)
	case c.Dice.Sides < 2:
		return fmt.Errorf("%w: dice need at least 2 sides", ErrInvalidConfig)
	case c.Combat.Delay < 0:
		return fmt.Errorf("%w: negative combat delay", ErrInvalidConfig)
	}

	for _, name := range c.Players.Colors {
		if !game.PlayerColor(name).IsValid() {
			return fmt.Errorf("%w: unknown color %q", ErrInvalidConfig, name)
		}
	}
	return nil
}

// GeneratorOptions converts the config into map generation options.
func (c *Config) GeneratorOptions() maps.GeneratorOptions {
	return maps.GeneratorOptions{
		Cells:       c.Grid.Cells,
		Players:     len(c.Players.Colors),
		AverageDice: c.Dice.Average,
		MaxDice:     c.Dice.Max,
		Fairness:    c.Generator.Fairness,
		MaxAttempts: c.Generator.MaxAttempts,
	}
}

// Settings converts the config into gameplay settings.
func (c *Config) Settings() game.Settings {
	return game.Settings{
		DieSides:   c.Dice.Sides,
		MaxDice:    c.Dice.Max,
		FightDelay: c.Combat.Delay,
	}
}

// GameOptions assembles everything game.New needs.
func (c *Config) GameOptions() game.Options {
	colors := make([]game.PlayerColor, len(c.Players.Colors))
	for i, name := range c.Players.Colors {
		colors[i] = game.PlayerColor(name)
	}
	return game.Options{
		Rows:       c.Grid.Rows,
		Cols:       c.Grid.Cols,
		SideLength: c.View.SideLength,
		Colors:     colors,
		Generator:  c.GeneratorOptions(),
		Settings:   c.Settings(),
		Seed:       c.Generator.Seed,
	}
}
