package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrExclusiveLists is returned by Validate when both filetype lists are
// populated. The automatic heuristic must stay disabled in that case.
var ErrExclusiveLists = errors.New("auto_set_mode_filetype_allowlist and auto_set_mode_filetype_denylist cannot both be set")

// Softener controls how eagerly the heuristic favors soft wrap for a
// filetype: either a scaling factor for the average-line-length comparison,
// or a boolean that overrides the heuristic outright.
type Softener struct {
	override *bool
	factor   float64
}

func FactorSoftener(f float64) Softener {
	return Softener{factor: f}
}

func OverrideSoftener(on bool) Softener {
	return Softener{override: &on}
}

// Override returns the forced mode choice and whether one is set.
func (s Softener) Override() (bool, bool) {
	if s.override != nil {
		return *s.override, true
	}
	return false, false
}

func (s Softener) Factor() float64 { return s.factor }

// UnmarshalJSON accepts either a number or a boolean, the two value shapes
// user settings are allowed to use.
func (s *Softener) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		s.override = &b
		s.factor = 0
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("softener value must be a number or a boolean, got %s", data)
	}
	s.override = nil
	s.factor = f
	return nil
}

// Config is immutable once resolved.
type Config struct {
	Softener         map[string]Softener `json:"softener"`
	CreateCommands   bool                `json:"create_commands"`
	CreateKeymaps    bool                `json:"create_keymaps"`
	AutoHeuristic    bool                `json:"auto_set_mode_heuristically"`
	AutoAllowlist    []string            `json:"auto_set_mode_filetype_allowlist"`
	AutoDenylist     []string            `json:"auto_set_mode_filetype_denylist"`
	RedecideOnChange bool                `json:"redecide_on_change"`
}

func Default() *Config {
	return &Config{
		Softener: map[string]Softener{
			"default":   FactorSoftener(1.0),
			"gitcommit": OverrideSoftener(false),
		},
		CreateCommands: true,
		CreateKeymaps:  true,
		AutoHeuristic:  true,
		AutoAllowlist:  []string{"asciidoc", "gitcommit", "mail", "markdown", "text", "tex"},
	}
}

// Resolve merges user options over the defaults. Unmarshaling into the
// populated default struct merges recursively: absent fields keep their
// defaults and softener entries are added to the default map rather than
// replacing it.
func Resolve(userJSON []byte) (*Config, error) {
	cfg := Default()
	if len(userJSON) == 0 {
		return cfg, nil
	}
	if err := json.Unmarshal(userJSON, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects the one unrecoverable option combination. Callers surface
// the error to the user and leave the automatic heuristic off; the manual
// commands and keymaps are unaffected.
func (c *Config) Validate() error {
	if len(c.AutoAllowlist) > 0 && len(c.AutoDenylist) > 0 {
		return ErrExclusiveLists
	}
	return nil
}

// SoftenerFor looks up the filetype's softener, falling back to "default".
func (c *Config) SoftenerFor(filetype string) Softener {
	if s, ok := c.Softener[filetype]; ok {
		return s
	}
	if s, ok := c.Softener["default"]; ok {
		return s
	}
	return FactorSoftener(1.0)
}

func SettingsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "autowrap", "settings.json")
}

// Load reads the user settings file and resolves it over the defaults.
// A missing file is not an error.
func Load() (*Config, error) {
	data, err := os.ReadFile(SettingsPath())
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}
	return Resolve(data)
}
