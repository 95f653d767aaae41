package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

// SlotRuleConfig defines one recurring duty pattern of the planned year.
type SlotRuleConfig struct {
	RRule                string `yaml:"rrule" validate:"required"`
	Kind                 string `yaml:"kind" validate:"required"`
	RequiredDrivers      int    `yaml:"requiredDrivers" validate:"min=0"`
	RequiredFirefighters int    `yaml:"requiredFirefighters" validate:"min=0"`
	MinSeniors           int    `yaml:"minSeniors" validate:"min=0"`
}

// Config represents the application configuration
type Config struct {
	Year              int              `yaml:"year" validate:"required,min=1"`
	Seed              int64            `yaml:"seed"`
	RosterFile        string           `yaml:"rosterFile" validate:"required"`
	OutputDir         string           `yaml:"outputDir,omitempty"`
	SpecialRuleActive bool             `yaml:"specialRuleActive,omitempty"`
	Months            []int            `yaml:"months,omitempty" validate:"dive,min=1,max=12"`
	RelaxationOrder   []string         `yaml:"relaxationOrder,omitempty" validate:"dive,oneof=weekly-limit seniority-floor"`
	SlotRules         []SlotRuleConfig `yaml:"slotRules" validate:"required,min=1,dive"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

const configFileName = "turni_config.yaml"

// Load loads and validates the configuration from turni_config.yaml.
// It looks for the config file in the current directory first, then in
// the user's home directory.
func Load() (*Config, error) {
	configPath, err := findConfigFile(configFileName)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadWithEnv loads turni_config.<env>.yaml, falling back to the default
// file name when env is empty.
func LoadWithEnv(env string) (*Config, error) {
	if env == "" {
		return Load()
	}
	configPath, err := findConfigFile(fmt.Sprintf("turni_config.%s.yaml", env))
	if err != nil {
		return nil, fmt.Errorf("failed to find config file for env %q: %w", env, err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	if cfg.OutputDir == "" {
		cfg.OutputDir = "out"
	}

	return &cfg, nil
}

// Validate validates the configuration struct, the rrule syntax of every
// slot rule and the per-slot seat arithmetic.
func Validate(cfg *Config) error {
	// Run struct validation
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	for i, rule := range cfg.SlotRules {
		if _, err := rrule.StrToRRule(rule.RRule); err != nil {
			return fmt.Errorf("invalid rrule in slotRules[%d]: %w", i, err)
		}
		if rule.MinSeniors > rule.RequiredDrivers+rule.RequiredFirefighters {
			return fmt.Errorf("slotRules[%d] (%s): minSeniors %d exceeds %d total seats",
				i, rule.Kind, rule.MinSeniors, rule.RequiredDrivers+rule.RequiredFirefighters)
		}
	}

	seen := make(map[string]bool, len(cfg.RelaxationOrder))
	for _, r := range cfg.RelaxationOrder {
		if seen[r] {
			return fmt.Errorf("relaxationOrder lists %q twice", r)
		}
		seen[r] = true
	}

	return nil
}

// findConfigFile searches for the named file in the current directory
// and the home directory.
func findConfigFile(name string) (string, error) {
	// Check current directory
	if _, err := os.Stat(name); err == nil {
		return name, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, name)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file %s not found in current directory or home directory", name)
}
