// Package config loads vfm's settings from TOML or YAML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

var (
	// ErrMissing means an explicitly requested config file does not exist.
	ErrMissing = errors.New("config file not found")
	// ErrUnsupportedFormat means the file extension is neither TOML nor YAML.
	ErrUnsupportedFormat = errors.New("unsupported config format")
)

// Config holds every user-tunable setting.
type Config struct {
	CheckMismatch  bool                           `toml:"check_mismatch" yaml:"check_mismatch"`
	ShowHidden     bool                           `toml:"show_hidden" yaml:"show_hidden"`
	HiddenPatterns []string                       `toml:"hidden_patterns" yaml:"hidden_patterns"`
	Theme          Theme                          `toml:"theme" yaml:"theme"`
	Icons          Icons                          `toml:"icons" yaml:"icons"`
	MetadataBar    MetadataBar                    `toml:"metadata_bar" yaml:"metadata_bar"`
	Image          Image                          `toml:"image" yaml:"image"`
	Highlight      Highlight                      `toml:"highlight" yaml:"highlight"`
	OpenWith       OpenWith                       `toml:"open_with" yaml:"open_with"`
	MarkersFile    string                         `toml:"markers_file" yaml:"markers_file"`
	Keys           map[string]map[string]Bindings `toml:"keys" yaml:"keys"`

	// Path is the file the settings came from, empty for pure defaults.
	Path string `toml:"-" yaml:"-"`
}

// Theme names colours understood by tcell.GetColor.
type Theme struct {
	Background  string `toml:"background" yaml:"background"`
	Foreground  string `toml:"foreground" yaml:"foreground"`
	SelectionBg string `toml:"selection_bg" yaml:"selection_bg"`
	SelectionFg string `toml:"selection_fg" yaml:"selection_fg"`
	Accent      string `toml:"accent" yaml:"accent"`
	Folder      string `toml:"folder" yaml:"folder"`
	Warning     string `toml:"warning" yaml:"warning"`
	Error       string `toml:"error" yaml:"error"`
}

// Icons are glyphs drawn before entry names.
type Icons struct {
	Enabled bool   `toml:"enabled" yaml:"enabled"`
	Folder  string `toml:"folder" yaml:"folder"`
	File    string `toml:"file" yaml:"file"`
	Text    string `toml:"text" yaml:"text"`
	Image   string `toml:"image" yaml:"image"`
	Video   string `toml:"video" yaml:"video"`
	Audio   string `toml:"audio" yaml:"audio"`
	Archive string `toml:"archive" yaml:"archive"`
	Symlink string `toml:"symlink" yaml:"symlink"`
	Unknown string `toml:"unknown" yaml:"unknown"`
}

// MetadataBar controls the detail line under the preview.
type MetadataBar struct {
	Enabled         bool `toml:"enabled" yaml:"enabled"`
	ShowPermissions bool `toml:"show_permissions" yaml:"show_permissions"`
	ShowDates       bool `toml:"show_dates" yaml:"show_dates"`
	ShowOwner       bool `toml:"show_owner" yaml:"show_owner"`
}

// Image selects the image preview backend.
type Image struct {
	Backend string `toml:"backend" yaml:"backend"` // auto, halfblock, ascii, none
	Resize  string `toml:"resize" yaml:"resize"`   // fit, crop
}

// Highlight configures syntax highlighting of text previews.
type Highlight struct {
	Enabled bool   `toml:"enabled" yaml:"enabled"`
	Style   string `toml:"style" yaml:"style"`
}

// OpenWith maps quick-pick digits to program names.
type OpenWith struct {
	Quick map[string]string `toml:"quick" yaml:"quick"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Theme: Theme{
			Background:  "black",
			Foreground:  "white",
			SelectionBg: "blue",
			SelectionFg: "black",
			Accent:      "aqua",
			Folder:      "lightblue",
			Warning:     "yellow",
			Error:       "red",
		},
		Icons: Icons{
			Enabled: true,
			Folder:  "󰉋",
			File:    "󰈔",
			Text:    "󰈙",
			Image:   "󰈟",
			Video:   "󰕧",
			Audio:   "󰎆",
			Archive: "󰀼",
			Symlink: "󰌷",
			Unknown: "󰈚",
		},
		MetadataBar: MetadataBar{
			ShowPermissions: true,
			ShowDates:       true,
			ShowOwner:       true,
		},
		Image:     Image{Backend: "auto", Resize: "fit"},
		Highlight: Highlight{Enabled: true, Style: "monokai"},
		OpenWith:  OpenWith{Quick: map[string]string{}},
	}
}

// Load reads settings. An empty path consults VFM_CONFIG and then the default
// locations; nothing found means defaults. On any error the returned Config is
// the defaults, so callers may log the error and carry on.
func Load(path string) (*Config, error) {
	if path == "" {
		if env := os.Getenv("VFM_CONFIG"); env != "" {
			path = expandPath(env)
			if _, err := os.Stat(path); err != nil {
				return Default(), fmt.Errorf("%w: %s", ErrMissing, path)
			}
		} else {
			path = findDefault()
		}
	} else {
		path = expandPath(path)
		if _, err := os.Stat(path); err != nil {
			return Default(), fmt.Errorf("%w: %s", ErrMissing, path)
		}
	}
	if path == "" {
		return Default(), nil
	}

	cfg, err := loadFile(path)
	if err != nil {
		return Default(), err
	}
	return cfg, nil
}

func loadFile(path string) (*Config, error) {
	cfg := Default()
	cfg.Path = path

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("decode config %s: %w", path, err)
		}
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("decode config %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	if err := cfg.normalize(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	c.Image.Backend = strings.ToLower(strings.TrimSpace(c.Image.Backend))
	c.Image.Resize = strings.ToLower(strings.TrimSpace(c.Image.Resize))
	if c.Image.Backend == "" {
		c.Image.Backend = "auto"
	}
	if c.Image.Resize == "" {
		c.Image.Resize = "fit"
	}
	switch c.Image.Backend {
	case "auto", "halfblock", "ascii", "none":
	default:
		return fmt.Errorf("unknown image backend %q", c.Image.Backend)
	}
	switch c.Image.Resize {
	case "fit", "crop":
	default:
		return fmt.Errorf("unknown image resize mode %q", c.Image.Resize)
	}
	if c.OpenWith.Quick == nil {
		c.OpenWith.Quick = map[string]string{}
	}
	c.MarkersFile = expandPath(c.MarkersFile)
	return nil
}

// DefaultPaths lists the locations searched when no path is given.
func DefaultPaths() []string {
	var paths []string
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		base := filepath.Join(dir, "vfm")
		paths = append(paths,
			filepath.Join(base, "config.toml"),
			filepath.Join(base, "config.yaml"),
			filepath.Join(base, "config.yml"),
		)
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		paths = append(paths,
			filepath.Join(home, ".vfm.toml"),
			filepath.Join(home, ".vfm.yaml"),
			filepath.Join(home, ".vfm.yml"),
		)
	}
	return paths
}

func findDefault() string {
	for _, p := range DefaultPaths() {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// expandPath expands a leading ~ to the user's home directory.
func expandPath(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
