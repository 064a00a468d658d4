package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/udisondev/battlego/internal/game/combat"
	"github.com/udisondev/battlego/internal/game/hunt"
	"github.com/udisondev/battlego/internal/model"
)

// Server holds all configuration for the battle services.
type Server struct {
	LogLevel    string `yaml:"log_level" env:"LOG_LEVEL"`
	CatalogPath string `yaml:"catalog_path" env:"CATALOG_PATH"`

	// Database
	Database DatabaseConfig `yaml:"database" envPrefix:"DB_"`

	// Battle tuning
	Battle Battle `yaml:"battle" envPrefix:"BATTLE_"`

	// Character progression
	Progression Progression `yaml:"progression" envPrefix:"PROGRESSION_"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host" env:"HOST"`
	Port     int    `yaml:"port" env:"PORT"`
	User     string `yaml:"user" env:"USER"`
	Password string `yaml:"password" env:"PASSWORD"`
	DBName   string `yaml:"dbname" env:"NAME"`
	SSLMode  string `yaml:"sslmode" env:"SSLMODE"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// Battle holds engine tuning.
type Battle struct {
	MaxTurns      int           `yaml:"max_turns" env:"MAX_TURNS"`
	ArmorWeakness ArmorWeakness `yaml:"armor_weakness" envPrefix:"WEAKNESS_"`
}

// ArmorWeakness is the weakness contribution of each armor slot.
type ArmorWeakness struct {
	Head      float64 `yaml:"head" env:"HEAD"`
	Necklace  float64 `yaml:"necklace" env:"NECKLACE"`
	Shoulders float64 `yaml:"shoulders" env:"SHOULDERS"`
	Chest     float64 `yaml:"chest" env:"CHEST"`
	Feet      float64 `yaml:"feet" env:"FEET"`
}

// EngineConfig converts the tuning into the immutable engine configuration.
func (b Battle) EngineConfig() combat.Config {
	cfg := combat.Config{MaxTurns: b.MaxTurns}
	cfg.ArmorWeakness[model.SlotHead] = b.ArmorWeakness.Head
	cfg.ArmorWeakness[model.SlotNecklace] = b.ArmorWeakness.Necklace
	cfg.ArmorWeakness[model.SlotShoulders] = b.ArmorWeakness.Shoulders
	cfg.ArmorWeakness[model.SlotChest] = b.ArmorWeakness.Chest
	cfg.ArmorWeakness[model.SlotFeet] = b.ArmorWeakness.Feet
	return cfg
}

// Progression holds leveling and reward rules.
type Progression struct {
	// LevelGrowthRate: 1.5 makes every level 50% harder than the previous one.
	LevelGrowthRate float64 `yaml:"level_growth_rate" env:"LEVEL_GROWTH_RATE"`
	RewardOnDefeat  bool    `yaml:"reward_on_defeat" env:"REWARD_ON_DEFEAT"`
}

// HuntConfig assembles the hunt workflow configuration.
func (s Server) HuntConfig() hunt.Config {
	return hunt.Config{
		Battle:          s.Battle.EngineConfig(),
		LevelGrowthRate: s.Progression.LevelGrowthRate,
		RewardOnDefeat:  s.Progression.RewardOnDefeat,
	}
}

// DefaultServer returns Server config with sensible defaults.
func DefaultServer() Server {
	def := combat.DefaultConfig()
	return Server{
		LogLevel:    "info",
		CatalogPath: "config/catalog.yaml",
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "battlego",
			Password: "battlego",
			DBName:   "battlego",
			SSLMode:  "disable",
		},
		Battle: Battle{
			MaxTurns: def.MaxTurns,
			ArmorWeakness: ArmorWeakness{
				Head:      def.ArmorWeakness[model.SlotHead],
				Necklace:  def.ArmorWeakness[model.SlotNecklace],
				Shoulders: def.ArmorWeakness[model.SlotShoulders],
				Chest:     def.ArmorWeakness[model.SlotChest],
				Feet:      def.ArmorWeakness[model.SlotFeet],
			},
		},
		Progression: Progression{
			LevelGrowthRate: 1.5,
			RewardOnDefeat:  true,
		},
	}
}

// Validate checks value ranges.
func (s Server) Validate() error {
	var errs []error
	if s.Battle.MaxTurns < 1 || s.Battle.MaxTurns > combat.MaxTurns {
		errs = append(errs, fmt.Errorf("battle.max_turns must be within [1, %d], got %d", combat.MaxTurns, s.Battle.MaxTurns))
	}
	w := s.Battle.ArmorWeakness
	for name, v := range map[string]float64{
		"head": w.Head, "necklace": w.Necklace, "shoulders": w.Shoulders, "chest": w.Chest, "feet": w.Feet,
	} {
		if v < 0 {
			errs = append(errs, fmt.Errorf("battle.armor_weakness.%s must not be negative, got %v", name, v))
		}
	}
	if s.Progression.LevelGrowthRate <= 0 {
		errs = append(errs, fmt.Errorf("progression.level_growth_rate must be positive, got %v", s.Progression.LevelGrowthRate))
	}
	return errors.Join(errs...)
}

// LoadServer loads server config from a YAML file, then applies environment
// overrides. If the file doesn't exist, defaults are used.
func LoadServer(path string) (Server, error) {
	cfg := DefaultServer()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case !os.IsNotExist(err):
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}
	return cfg, nil
}
