package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"soldocs/internal/docblock"
	"soldocs/internal/syntax"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	LocatorPattern = "pattern"
	LocatorSyntax  = "syntax"
)

type Config struct {
	Project struct {
		Root   string   `yaml:"root"`
		Ignore []string `yaml:"ignore"`
	} `yaml:"project"`
	Languages docblock.Languages `yaml:"languages"`
	Docs      struct {
		SectionOrder     []string `yaml:"section_order"`
		RequiredSections []string `yaml:"required_sections"`
		Locator          string   `yaml:"locator"` // "pattern" or "syntax"
	} `yaml:"docs"`
	Storage struct {
		DB string `yaml:"db"`
	} `yaml:"storage"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"` // console, json or pretty
	} `yaml:"logging"`
	Workers int `yaml:"workers"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	var cfg Config
	cfg.Project.Root = "."
	cfg.Languages = docblock.DefaultLanguages()
	cfg.Docs.SectionOrder = append([]string(nil), docblock.SectionOrder...)
	cfg.Docs.RequiredSections = []string{"INTUITION", "APPROACH", "TIME COMPLEXITY", "SPACE COMPLEXITY"}
	cfg.Docs.Locator = LocatorPattern
	cfg.Storage.DB = "soldocs.db"
	cfg.Logging.Level = "info"
	cfg.Logging.Format = "console"
	cfg.Workers = 4
	return &cfg
}

// LoadConfig reads path on top of the defaults. A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	cfg := Default()

	// 2. Load YAML config
	file, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	// 3. Override with Environment Variables if present
	if root := os.Getenv("SOLDOCS_ROOT"); root != "" {
		cfg.Project.Root = root
	}
	if db := os.Getenv("SOLDOCS_DB"); db != "" {
		cfg.Storage.DB = db
	}
	if level := os.Getenv("SOLDOCS_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
	if locator := os.Getenv("SOLDOCS_LOCATOR"); locator != "" {
		cfg.Docs.Locator = locator
	}
	if workers := os.Getenv("SOLDOCS_WORKERS"); workers != "" {
		n, err := strconv.Atoi(workers)
		if err != nil {
			return nil, fmt.Errorf("invalid SOLDOCS_WORKERS %q: %w", workers, err)
		}
		cfg.Workers = n
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Docs.Locator)) {
	case "", LocatorPattern, LocatorSyntax:
	default:
		return fmt.Errorf("unsupported docs.locator %q", c.Docs.Locator)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative")
	}
	if len(c.Languages.Docstring) == 0 && len(c.Languages.JSDoc) == 0 {
		return fmt.Errorf("languages: at least one extension is required")
	}
	return nil
}

// Engine builds the documentation engine described by the configuration.
func (c *Config) Engine() *docblock.Engine {
	ec := docblock.Config{
		Languages:    c.Languages,
		SectionOrder: c.Docs.SectionOrder,
	}
	if strings.EqualFold(strings.TrimSpace(c.Docs.Locator), LocatorSyntax) {
		ec.Locator = syntax.NewLocator(nil)
	}
	return docblock.NewEngine(ec)
}
