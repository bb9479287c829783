// Package config provides Viper-based configuration loading for the limit
// break engine and its tooling.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DatabaseConfig holds PostgreSQL connection settings for gauge persistence.
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

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// SoundConfig holds the bar-filled notification sound settings.
type SoundConfig struct {
	// Enabled toggles the notification sound entirely.
	Enabled bool `mapstructure:"enabled"`
	// File is the sound effect name, without extension.
	File string `mapstructure:"file"`
	// Volume is the playback volume, 0-100.
	Volume int `mapstructure:"volume"`
	// Speed is the playback speed percentage, 50-150.
	Speed int `mapstructure:"speed"`
	// Pan is the stereo balance, 0 (left) to 100 (right).
	Pan int `mapstructure:"pan"`
}

// BattleConfig holds the engine's battle-wide settings.
type BattleConfig struct {
	// LimitCommandID is the battle command that arms the limit break swap.
	LimitCommandID int `mapstructure:"limit_command_id"`
	// UltimateCommandID arms the ultimate swap; 0 disables that path.
	UltimateCommandID int `mapstructure:"ultimate_command_id"`
	// UltimateGaugeSlot is the variable key storing the party-wide value;
	// 0 disables the ultimate system.
	UltimateGaugeSlot int `mapstructure:"ultimate_gauge_slot"`
	// FourActorUltimate requires all four party positions instead of three.
	FourActorUltimate bool `mapstructure:"four_actor_ultimate"`
	// Sound configures the bar-filled notification.
	Sound SoundConfig `mapstructure:"sound"`
}

// ContentConfig holds paths to the YAML content files.
type ContentConfig struct {
	// Profiles is the path to the actor profile file.
	Profiles string `mapstructure:"profiles"`
	// Equipment is the path to the equipment multiplier file.
	Equipment string `mapstructure:"equipment"`
}

// Config is the top-level application configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Battle   BattleConfig   `mapstructure:"battle"`
	Content  ContentConfig  `mapstructure:"content"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateDatabase(c.Database); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateBattle(c.Battle); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateContent(c.Content); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateDatabase(d DatabaseConfig) error {
	var errs []string
	if d.Host == "" {
		errs = append(errs, "database.host must not be empty")
	}
	if d.Port < 1 || d.Port > 65535 {
		errs = append(errs, fmt.Sprintf("database.port must be 1-65535, got %d", d.Port))
	}
	if d.User == "" {
		errs = append(errs, "database.user must not be empty")
	}
	if d.Name == "" {
		errs = append(errs, "database.name must not be empty")
	}
	validSSL := map[string]bool{"disable": true, "require": true, "verify-ca": true, "verify-full": true}
	if !validSSL[d.SSLMode] {
		errs = append(errs, fmt.Sprintf("database.sslmode must be one of [disable, require, verify-ca, verify-full], got %q", d.SSLMode))
	}
	if d.MaxConns < 1 {
		errs = append(errs, fmt.Sprintf("database.max_conns must be >= 1, got %d", d.MaxConns))
	}
	if d.MinConns < 0 {
		errs = append(errs, fmt.Sprintf("database.min_conns must be >= 0, got %d", d.MinConns))
	}
	if d.MinConns > d.MaxConns {
		errs = append(errs, "database.min_conns must not exceed database.max_conns")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
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
	return nil
}

func validateBattle(b BattleConfig) error {
	var errs []string
	if b.LimitCommandID < 1 {
		errs = append(errs, fmt.Sprintf("battle.limit_command_id must be >= 1, got %d", b.LimitCommandID))
	}
	if b.UltimateCommandID < 0 {
		errs = append(errs, fmt.Sprintf("battle.ultimate_command_id must be >= 0, got %d", b.UltimateCommandID))
	}
	if b.UltimateCommandID > 0 && b.UltimateCommandID == b.LimitCommandID {
		errs = append(errs, "battle.ultimate_command_id must differ from battle.limit_command_id")
	}
	if b.UltimateGaugeSlot < 0 {
		errs = append(errs, fmt.Sprintf("battle.ultimate_gauge_slot must be >= 0, got %d", b.UltimateGaugeSlot))
	}
	if err := validateSound(b.Sound); err != nil {
		errs = append(errs, err.Error())
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateSound(s SoundConfig) error {
	var errs []string
	if s.Enabled && s.File == "" {
		errs = append(errs, "battle.sound.file must not be empty when sound is enabled")
	}
	if s.Volume < 0 || s.Volume > 100 {
		errs = append(errs, fmt.Sprintf("battle.sound.volume must be 0-100, got %d", s.Volume))
	}
	if s.Speed < 50 || s.Speed > 150 {
		errs = append(errs, fmt.Sprintf("battle.sound.speed must be 50-150, got %d", s.Speed))
	}
	if s.Pan < 0 || s.Pan > 100 {
		errs = append(errs, fmt.Sprintf("battle.sound.pan must be 0-100, got %d", s.Pan))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateContent(c ContentConfig) error {
	var errs []string
	if c.Profiles == "" {
		errs = append(errs, "content.profiles must not be empty")
	}
	if c.Equipment == "" {
		errs = append(errs, "content.equipment must not be empty")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with LIMITBREAK_ prefix
	v.SetEnvPrefix("LIMITBREAK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
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

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "limitbreak")
	v.SetDefault("database.password", "limitbreak")
	v.SetDefault("database.name", "limitbreak")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.max_conn_lifetime", "1h")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("battle.limit_command_id", 0)
	v.SetDefault("battle.ultimate_command_id", 0)
	v.SetDefault("battle.ultimate_gauge_slot", 0)
	v.SetDefault("battle.four_actor_ultimate", false)
	v.SetDefault("battle.sound.enabled", true)
	v.SetDefault("battle.sound.file", "flash1")
	v.SetDefault("battle.sound.volume", 100)
	v.SetDefault("battle.sound.speed", 100)
	v.SetDefault("battle.sound.pan", 50)

	v.SetDefault("content.profiles", "content/profiles.yaml")
	v.SetDefault("content.equipment", "content/equipment.yaml")
}
