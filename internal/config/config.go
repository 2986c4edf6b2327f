package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	ModePreview = "preview"
	ModeSource  = "source"
)

type Config struct {
	Viewer struct {
		TabWidth     int    `yaml:"tab_width"`
		Wrap         bool   `yaml:"wrap"`
		StartMode    string `yaml:"start_mode"`
		FormatTables bool   `yaml:"format_tables"`
	} `yaml:"viewer"`
	Export struct {
		Dir       string `yaml:"dir"`
		Overwrite bool   `yaml:"overwrite"`
	} `yaml:"export"`
	Log struct {
		Level    string `yaml:"level"`
		Encoding string `yaml:"encoding"` // console or json
		File     string `yaml:"file"`     // empty means stderr
	} `yaml:"log"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	var cfg Config
	cfg.Viewer.TabWidth = 4
	cfg.Viewer.Wrap = true
	cfg.Viewer.StartMode = ModePreview
	cfg.Viewer.FormatTables = true
	cfg.Export.Dir = "."
	cfg.Log.Level = "info"
	cfg.Log.Encoding = "console"
	return &cfg
}

// LoadEnvFile copies variables from a .env file in the working directory into
// the environment. Variables that are already set win. It is safe to call more
// than once; the CLI calls it before parsing flags so REPORTVIEW_CONFIG can come
// from .env.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// Load builds the configuration: defaults, then the YAML file at path (a
// missing file is fine), then REPORTVIEW_* environment variables, including
// any set by a .env file in the working directory.
func Load(path string) (*Config, error) {
	// 1. Load .env if exists
	LoadEnvFile()

	cfg := Default()

	// 2. Load YAML config
	if path != "" {
		file, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(file, cfg); err != nil {
				return nil, errors.Wrapf(err, "parse config %s", path)
			}
		case os.IsNotExist(err):
		default:
			return nil, errors.Wrap(err, "read config")
		}
	}

	// 3. Override with Environment Variables if present
	if err := applyEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup("REPORTVIEW_EXPORT_DIR"); ok && v != "" {
		cfg.Export.Dir = v
	}
	if v, ok := lookup("REPORTVIEW_LOG_LEVEL"); ok && v != "" {
		cfg.Log.Level = v
	}
	if v, ok := lookup("REPORTVIEW_LOG_FILE"); ok {
		cfg.Log.File = v
	}
	if v, ok := lookup("REPORTVIEW_START_MODE"); ok && v != "" {
		cfg.Viewer.StartMode = v
	}
	if v, ok := lookup("REPORTVIEW_TAB_WIDTH"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrap(err, "REPORTVIEW_TAB_WIDTH")
		}
		cfg.Viewer.TabWidth = n
	}
	return nil
}

// Validate normalizes case and rejects values the viewer cannot use.
func (c *Config) Validate() error {
	c.Viewer.StartMode = strings.ToLower(strings.TrimSpace(c.Viewer.StartMode))
	switch c.Viewer.StartMode {
	case "":
		c.Viewer.StartMode = ModePreview
	case ModePreview, ModeSource:
	default:
		return errors.Errorf("viewer.start_mode must be %q or %q, got %q", ModePreview, ModeSource, c.Viewer.StartMode)
	}
	if c.Viewer.TabWidth < 1 || c.Viewer.TabWidth > 16 {
		return errors.Errorf("viewer.tab_width must be between 1 and 16, got %d", c.Viewer.TabWidth)
	}
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.Errorf("unknown log level %q", c.Log.Level)
	}
	c.Log.Encoding = strings.ToLower(strings.TrimSpace(c.Log.Encoding))
	switch c.Log.Encoding {
	case "console", "json":
	default:
		return errors.Errorf("unknown log encoding %q", c.Log.Encoding)
	}
	return nil
}
