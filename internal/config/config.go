// Package config loads releaseplan settings from defaults, an optional
// YAML or JSON file and RELEASEPLAN_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	EnvPrefix = "RELEASEPLAN_"
	// EnvConfigPath names the config file when --config is not given.
	EnvConfigPath = EnvPrefix + "CONFIG"

	// MaxInsights is the hard cap on insights per report.
	MaxInsights = 3
)

type Config struct {
	DBPath         string         `json:"db_path"`
	VelocityPerDay float64        `json:"velocity_per_day"`
	LogUseCases    bool           `json:"log_use_cases"`
	Trace          bool           `json:"trace"`
	Fix            FixConfig      `json:"fix"`
	Insights       InsightsConfig `json:"insights"`
}

type FixConfig struct {
	Weights WeightsConfig `json:"weights"`
}

// WeightsConfig holds the relative weights of the placement scoring factors.
type WeightsConfig struct {
	UtilizationFit float64 `json:"utilization_fit"`
	SkillMatch     float64 `json:"skill_match"`
	Continuity     float64 `json:"continuity"`
	Proximity      float64 `json:"proximity"`
}

type InsightsConfig struct {
	Max int `json:"max"`
}

// Default returns a Config with every field at its default.
func Default() Config {
	return Config{
		DBPath:         defaultDBPath(),
		VelocityPerDay: 1.0,
		Fix: FixConfig{Weights: WeightsConfig{
			UtilizationFit: 50,
			SkillMatch:     20,
			Continuity:     15,
			Proximity:      15,
		}},
		Insights: InsightsConfig{Max: MaxInsights},
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".releaseplan", "releaseplan.db")
	}
	return filepath.Join(home, ".releaseplan", "releaseplan.db")
}

// Load builds the effective configuration. An empty path falls back to
// RELEASEPLAN_CONFIG; when both are empty no file is read.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}

	k := koanf.New(".")
	if path != "" {
		parser, err := parserFor(path)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	cfg := Default()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func parserFor(path string) (koanf.Parser, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
}

// envKey maps RELEASEPLAN_FIX__WEIGHTS__SKILL_MATCH to fix.weights.skill_match.
func envKey(s string) string {
	s = strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// SetDefaults fills values that decode to zero and caps the insight count.
func (c *Config) SetDefaults() {
	if c.DBPath == "" {
		c.DBPath = defaultDBPath()
	}
	if c.VelocityPerDay == 0 {
		c.VelocityPerDay = 1.0
	}
	if c.Insights.Max <= 0 || c.Insights.Max > MaxInsights {
		c.Insights.Max = MaxInsights
	}
}

// Validate reports every invalid field.
func (c Config) Validate() error {
	var errs []error
	if c.VelocityPerDay < 0 {
		errs = append(errs, fmt.Errorf("velocity_per_day must not be negative (got %g)", c.VelocityPerDay))
	}
	w := c.Fix.Weights
	for name, v := range map[string]float64{
		"utilization_fit": w.UtilizationFit,
		"skill_match":     w.SkillMatch,
		"continuity":      w.Continuity,
		"proximity":       w.Proximity,
	} {
		if v < 0 {
			errs = append(errs, fmt.Errorf("fix.weights.%s must not be negative (got %g)", name, v))
		}
	}
	return errors.Join(errs...)
}
