package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"github.com/neilberkman/scjournal/internal/core/format"
)

// DefaultExportTemplate renders one session as markdown. Override it with
// export_template.md in the config directory.
const DefaultExportTemplate = `# {{ship}} at {{location}}

- Started: {{start}}
- Ended: {{#ended}}{{end}}{{/ended}}{{^ended}}in progress{{/ended}}
- Duration: {{duration}}
- Earnings: {{earnings}}
- Expenses: {{expenses}}
- Net profit: {{net_profit}}

## Activities
{{#activities}}
- {{.}}
{{/activities}}
{{^activities}}
_No activities logged._
{{/activities}}
{{#notes}}

## Notes

{{notes}}
{{/notes}}
`

// DefaultListLimit is how many sessions list shows when not told otherwise.
const DefaultListLimit = 20

type Config struct {
	DBPath         string `toml:"db_path" env:"SCJOURNAL_DB"`
	TimeLayout     string `toml:"time_layout" env:"SCJOURNAL_TIME_LAYOUT"`
	ListLimit      int    `toml:"list_limit" env:"SCJOURNAL_LIST_LIMIT"`
	ExportTemplate string `toml:"-"`
}

// Dir returns ~/.config/scjournal, or a relative fallback when the home
// directory is unknown.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "scjournal")
	}
	return filepath.Join(home, ".config", "scjournal")
}

// Load reads config from ~/.config/scjournal/
func Load() (*Config, error) {
	return LoadFrom(Dir())
}

// LoadFrom reads config.toml and export_template.md from dir, then applies
// environment overrides. Missing files leave the defaults in place.
func LoadFrom(dir string) (*Config, error) {
	cfg := &Config{
		DBPath:         filepath.Join(dir, "journal.db"),
		TimeLayout:     format.DefaultLayout,
		ListLimit:      DefaultListLimit,
		ExportTemplate: DefaultExportTemplate,
	}

	tomlPath := filepath.Join(dir, "config.toml")
	if _, err := toml.DecodeFile(tomlPath, cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to parse %s: %w", tomlPath, err)
	}

	if data, err := os.ReadFile(filepath.Join(dir, "export_template.md")); err == nil {
		cfg.ExportTemplate = string(data)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.TimeLayout == "" {
		cfg.TimeLayout = format.DefaultLayout
	}
	return cfg, nil
}
