// Package settings manages persistent user settings for the netsurvey CLI.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Built-in fallbacks used when neither a flag nor a setting provides a value.
const (
	DefaultInventory = "inventory.yaml"
	DefaultReportDir = "reports"
)

// Settings holds persistent user preferences
type Settings struct {
	// Inventory is the device inventory file used when --inventory is not given
	Inventory string `json:"inventory,omitempty"`

	// ReportDir is where DUT_<device>.txt reports are written
	ReportDir string `json:"report_dir,omitempty"`

	// RedisAddr enables the Redis report sink when set
	RedisAddr string `json:"redis_addr,omitempty"`

	// Journal overrides the run journal path
	Journal string `json:"journal,omitempty"`
}

// DefaultSettingsPath returns the default path for the settings file
func DefaultSettingsPath() string {
	return filepath.Join(baseDir(), "settings.json")
}

func baseDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".netsurvey"
	}
	return filepath.Join(home, ".netsurvey")
}

// Load reads settings from the default location
func Load() (*Settings, error) {
	return LoadFrom(DefaultSettingsPath())
}

// LoadFrom reads settings from a specific path
func LoadFrom(path string) (*Settings, error) {
	s := &Settings{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return s, nil
}

// Save writes settings to the default location
func (s *Settings) Save() error {
	return s.SaveTo(DefaultSettingsPath())
}

// SaveTo writes settings to a specific path
func (s *Settings) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// fields maps setting keys to their storage.
func (s *Settings) fields() map[string]*string {
	return map[string]*string{
		"inventory":  &s.Inventory,
		"report_dir": &s.ReportDir,
		"redis_addr": &s.RedisAddr,
		"journal":    &s.Journal,
	}
}

// Keys returns the settable keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, 4)
	for k := range (&Settings{}).fields() {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Set assigns value to the named key.
func (s *Settings) Set(key, value string) error {
	field, ok := s.fields()[key]
	if !ok {
		return fmt.Errorf("unknown setting %q (valid: %v)", key, Keys())
	}
	*field = value
	return nil
}

// Get returns the stored value for key, empty when unset.
func (s *Settings) Get(key string) (string, error) {
	field, ok := s.fields()[key]
	if !ok {
		return "", fmt.Errorf("unknown setting %q (valid: %v)", key, Keys())
	}
	return *field, nil
}

// GetInventory returns the inventory path (with fallback)
func (s *Settings) GetInventory() string {
	if s.Inventory != "" {
		return s.Inventory
	}
	return DefaultInventory
}

// GetReportDir returns the report directory (with fallback)
func (s *Settings) GetReportDir() string {
	if s.ReportDir != "" {
		return s.ReportDir
	}
	return DefaultReportDir
}

// GetJournal returns the journal path (with fallback)
func (s *Settings) GetJournal() string {
	if s.Journal != "" {
		return s.Journal
	}
	return filepath.Join(baseDir(), "journal.jsonl")
}

// Clear resets all settings to defaults
func (s *Settings) Clear() {
	*s = Settings{}
}
