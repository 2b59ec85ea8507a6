// Package config provides Viper-based configuration loading for the dungeon.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/cory-johannsen/dungeon/internal/game/world"
)

// GameConfig holds the rules knobs of a play session.
type GameConfig struct {
	// Seed fixes the random source; 0 seeds from the operating system.
	Seed uint64 `mapstructure:"seed"`
	// FOVRadius is the player's sight radius, also the radius of placed torches.
	FOVRadius int `mapstructure:"fov_radius"`
	// SaveName is the save slot used by Continue.
	SaveName string `mapstructure:"save_name"`
	// BigFloor makes every BigFloor-th floor use the big map.
	BigFloor int `mapstructure:"big_floor"`
	// Debug shows the viewport guides and the turn counter.
	Debug bool `mapstructure:"debug"`
}

// MapConfig holds the sizes of the two floor kinds.
type MapConfig struct {
	Little world.MapParams `mapstructure:"little"`
	Big    world.MapParams `mapstructure:"big"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
}

// DSN returns the PostgreSQL connection string.
//
// Precondition: Host, Port, User, and Name must be non-empty.
// Postcondition: Returns a valid PostgreSQL DSN string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// Storage backends.
const (
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// StorageConfig selects and configures the save backend.
type StorageConfig struct {
	// Backend is one of "file", "sqlite" or "postgres".
	Backend string `mapstructure:"backend"`
	// Dir is the save directory of the file backend.
	Dir string `mapstructure:"dir"`
	// SQLitePath is the database file of the sqlite backend.
	SQLitePath string         `mapstructure:"sqlite_path"`
	Database   DatabaseConfig `mapstructure:"database"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// Output is the log file path. The terminal belongs to the game, so
	// logs never go to stdout.
	Output string `mapstructure:"output"`
}

// ContentConfig points the loaders at game content.
type ContentConfig struct {
	// Dir overrides the embedded content with a directory of the same layout.
	Dir string `mapstructure:"dir"`
	// ScriptDir overrides the embedded Lua scripts.
	ScriptDir string `mapstructure:"script_dir"`
	// InstructionLimit bounds each Lua hook call; 0 uses the scripting default.
	InstructionLimit int `mapstructure:"instruction_limit"`
}

// Config is the top-level application configuration.
type Config struct {
	Game    GameConfig    `mapstructure:"game"`
	Map     MapConfig     `mapstructure:"map"`
	Logging LoggingConfig `mapstructure:"logging"`
	Storage StorageConfig `mapstructure:"storage"`
	Content ContentConfig `mapstructure:"content"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	for _, err := range []error{
		validateGame(c.Game),
		validateMap("map.little", c.Map.Little),
		validateMap("map.big", c.Map.Big),
		validateLogging(c.Logging),
		validateStorage(c.Storage),
		validateContent(c.Content),
	} {
		if err != nil {
			errs = append(errs, err.Error())
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateGame(g GameConfig) error {
	var errs []string
	if g.FOVRadius < 1 {
		errs = append(errs, fmt.Sprintf("game.fov_radius must be >= 1, got %d", g.FOVRadius))
	}
	if g.SaveName == "" {
		errs = append(errs, "game.save_name must not be empty")
	}
	if g.BigFloor < 1 {
		errs = append(errs, fmt.Sprintf("game.big_floor must be >= 1, got %d", g.BigFloor))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateMap(section string, p world.MapParams) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("%s: %w", section, err)
	}
	return nil
}

func validateDatabase(d DatabaseConfig) error {
	var errs []string
	if d.Host == "" {
		errs = append(errs, "storage.database.host must not be empty")
	}
	if d.Port < 1 || d.Port > 65535 {
		errs = append(errs, fmt.Sprintf("storage.database.port must be 1-65535, got %d", d.Port))
	}
	if d.User == "" {
		errs = append(errs, "storage.database.user must not be empty")
	}
	if d.Name == "" {
		errs = append(errs, "storage.database.name must not be empty")
	}
	validSSL := map[string]bool{"disable": true, "require": true, "verify-ca": true, "verify-full": true}
	if !validSSL[d.SSLMode] {
		errs = append(errs, fmt.Sprintf("storage.database.sslmode must be one of [disable, require, verify-ca, verify-full], got %q", d.SSLMode))
	}
	if d.MaxConns < 1 {
		errs = append(errs, fmt.Sprintf("storage.database.max_conns must be >= 1, got %d", d.MaxConns))
	}
	if d.MinConns < 0 {
		errs = append(errs, fmt.Sprintf("storage.database.min_conns must be >= 0, got %d", d.MinConns))
	}
	if d.MinConns > d.MaxConns {
		errs = append(errs, "storage.database.min_conns must not exceed storage.database.max_conns")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateStorage(s StorageConfig) error {
	switch s.Backend {
	case BackendFile:
		if s.Dir == "" {
			return errors.New("storage.dir must not be empty for the file backend")
		}
	case BackendSQLite:
		if s.SQLitePath == "" {
			return errors.New("storage.sqlite_path must not be empty for the sqlite backend")
		}
	case BackendPostgres:
		return validateDatabase(s.Database)
	default:
		return fmt.Errorf("storage.backend must be one of [file, sqlite, postgres], got %q", s.Backend)
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	if l.Output == "" || l.Output == "stdout" {
		return fmt.Errorf("logging.output must be a file path, got %q", l.Output)
	}
	return nil
}

func validateContent(c ContentConfig) error {
	if c.InstructionLimit < 0 {
		return fmt.Errorf("content.instruction_limit must be >= 0, got %d", c.InstructionLimit)
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path loads defaults and the
// environment only.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	// Environment variable overrides with DUNGEON_ prefix
	v.SetEnvPrefix("DUNGEON")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// SetDefaults registers the default of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("game.seed", 0)
	v.SetDefault("game.fov_radius", 8)
	v.SetDefault("game.save_name", "savegame.sav")
	v.SetDefault("game.big_floor", 5)
	v.SetDefault("game.debug", false)

	v.SetDefault("map.little.width", 80)
	v.SetDefault("map.little.height", 43)
	v.SetDefault("map.little.max_rooms", 30)
	v.SetDefault("map.little.room_min_size", 6)
	v.SetDefault("map.little.room_max_size", 10)
	v.SetDefault("map.big.width", 120)
	v.SetDefault("map.big.height", 80)
	v.SetDefault("map.big.max_rooms", 60)
	v.SetDefault("map.big.room_min_size", 6)
	v.SetDefault("map.big.room_max_size", 12)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "dungeon.log")

	v.SetDefault("storage.backend", BackendFile)
	v.SetDefault("storage.dir", ".")
	v.SetDefault("storage.sqlite_path", "dungeon.db")
	v.SetDefault("storage.database.host", "localhost")
	v.SetDefault("storage.database.port", 5432)
	v.SetDefault("storage.database.user", "dungeon")
	v.SetDefault("storage.database.password", "dungeon")
	v.SetDefault("storage.database.name", "dungeon")
	v.SetDefault("storage.database.sslmode", "disable")
	v.SetDefault("storage.database.max_conns", 4)
	v.SetDefault("storage.database.min_conns", 1)
	v.SetDefault("storage.database.max_conn_lifetime", "1h")

	v.SetDefault("content.dir", "")
	v.SetDefault("content.script_dir", "")
	v.SetDefault("content.instruction_limit", 0)
}

// Default returns the configuration built from defaults alone.
func Default() Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := LoadFromViper(v)
	if err != nil {
		panic(fmt.Sprintf("config: defaults are invalid: %v", err))
	}
	return cfg
}
