package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"vselect/internal/domain"
	"vselect/internal/eventbus"
)

// DefaultFileName is the config file looked up in the working directory
const DefaultFileName = ".vselect.toml"

// Config represents the application configuration
type Config struct {
	Version int            `toml:"version"`
	Field   FieldSettings  `toml:"field"`
	Source  SourceSettings `toml:"source"`
	UI      UISettings     `toml:"ui"`
}

// FieldSettings configures the select control
type FieldSettings struct {
	Multiple bool `toml:"multiple"`
	// PanelWidth is "auto", "" (unconstrained), a cell count or a raw width like "50%"
	PanelWidth          string `toml:"panel_width"`
	TypeaheadDebounceMS int    `toml:"typeahead_debounce_ms"`
	ReconcileDebounceMS int    `toml:"reconcile_debounce_ms"`
	Wrap                bool   `toml:"wrap"`
	PageStride          int    `toml:"page_stride"`
	SelectOnTabOut      bool   `toml:"select_on_tab_out"`
	Placeholder         string `toml:"placeholder"`
	Label               string `toml:"label"`
	Required            bool   `toml:"required"`
}

// SourceSettings tells where the options come from
type SourceSettings struct {
	Count int    `toml:"count"` // generated options when File is empty
	File  string `toml:"file"`  // one option per line, "!" prefix disables it
}

// UISettings represents UI-related configuration
type UISettings struct {
	VisibleRows int `toml:"visible_rows"`
}

// OverlayWidth returns the parsed panel width policy
func (f FieldSettings) OverlayWidth() domain.OverlayWidth {
	return domain.ParseOverlayWidth(f.PanelWidth)
}

// TypeaheadDebounce returns the typeahead window
func (f FieldSettings) TypeaheadDebounce() time.Duration {
	return time.Duration(f.TypeaheadDebounceMS) * time.Millisecond
}

// ReconcileDebounce returns the scroll reconciliation window
func (f FieldSettings) ReconcileDebounce() time.Duration {
	return time.Duration(f.ReconcileDebounceMS) * time.Millisecond
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a config service for path, or for
// DefaultFileName in the working directory when path is empty
func NewConfigService(path string) ConfigService {
	if path == "" {
		path = DefaultFileName
	}
	return &configService{filePath: path}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(path string, bus eventbus.EventBus) ConfigService {
	cs := NewConfigService(path).(*configService)
	cs.bus = bus
	return cs
}

// Load loads the configuration file, writing the defaults when it does not
// exist yet
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); errors.Is(err, fs.ErrNotExist) {
		cfg := DefaultConfig()
		if err := cs.SaveToPath(cfg, cs.filePath); err != nil {
			log.Printf("Could not write default config: %v", err)
		}
		cs.publishLoaded()
		return cfg, nil
	}

	cfg, err := cs.LoadFromPath(cs.filePath)
	if err != nil {
		return nil, err
	}
	cs.publishLoaded()
	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path. Keys missing from
// the file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func (cs *configService) publishLoaded() {
	if cs.bus != nil {
		cs.bus.Publish(domain.ConfigLoadedEvent{Path: cs.filePath})
	}
}

// normalize replaces out of range values with defaults
func (c *Config) normalize() {
	def := DefaultConfig()
	if c.Field.TypeaheadDebounceMS <= 0 {
		log.Printf("config: typeahead_debounce_ms %d out of range, using %d", c.Field.TypeaheadDebounceMS, def.Field.TypeaheadDebounceMS)
		c.Field.TypeaheadDebounceMS = def.Field.TypeaheadDebounceMS
	}
	if c.Field.ReconcileDebounceMS <= 0 {
		log.Printf("config: reconcile_debounce_ms %d out of range, using %d", c.Field.ReconcileDebounceMS, def.Field.ReconcileDebounceMS)
		c.Field.ReconcileDebounceMS = def.Field.ReconcileDebounceMS
	}
	if c.Field.PageStride <= 0 {
		c.Field.PageStride = def.Field.PageStride
	}
	if c.UI.VisibleRows <= 0 {
		c.UI.VisibleRows = def.UI.VisibleRows
	}
	if c.Source.Count < 0 {
		c.Source.Count = 0
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Field: FieldSettings{
			PanelWidth:          domain.PanelWidthAuto,
			TypeaheadDebounceMS: 100,
			ReconcileDebounceMS: 100,
			Wrap:                true,
			PageStride:          10,
			Placeholder:         "Pick an option",
			Label:               "Option",
		},
		Source: SourceSettings{
			Count: 100000,
		},
		UI: UISettings{
			VisibleRows: 10,
		},
	}
}
