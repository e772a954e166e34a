package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	charmLog "github.com/charmbracelet/log"
	"github.com/hylla/tickit/internal/keymap"
	colorful "github.com/lucasb-eyer/go-colorful"
	toml "github.com/pelletier/go-toml/v2"
)

// Backend selects the task persistence implementation.
type Backend string

const (
	BackendJSON   Backend = "json"
	BackendSQLite Backend = "sqlite"
)

type Config struct {
	Storage StorageConfig `toml:"storage"`
	Colors  ColorsConfig  `toml:"colors"`
	Keys    KeyConfig     `toml:"keys"`
	Logging LoggingConfig `toml:"logging"`
	UI      UIConfig      `toml:"ui"`
}

type StorageConfig struct {
	Backend    Backend `toml:"backend"`
	JSONPath   string  `toml:"json_path"`
	SQLitePath string  `toml:"sqlite_path"`
}

// ColorsConfig holds the six theme slots. Values are #rrggbb hex or an ANSI index 0-255.
type ColorsConfig struct {
	Foreground     string `toml:"foreground"`
	Background     string `toml:"background"`
	SelectionFG    string `toml:"selection_fg"`
	SelectionBG    string `toml:"selection_bg"`
	CheckSign      string `toml:"check_sign"`
	WelcomeMessage string `toml:"welcome_message"`
}

// KeyConfig holds one key name per configurable action, e.g. "esc", "n", "up", "f5".
type KeyConfig struct {
	ExitApp    string `toml:"exit_app"`
	NewTask    string `toml:"new_task"`
	ToggleTask string `toml:"check_and_uncheck_task"`
	ListUp     string `toml:"list_up"`
	ListDown   string `toml:"list_down"`
	DeleteTask string `toml:"delete_task"`
	ExitAdding string `toml:"exit_adding"`
	SaveTask   string `toml:"save_task"`
}

type LoggingConfig struct {
	Level   string        `toml:"level"`
	DevFile DevFileConfig `toml:"dev_file"`
}

// UIConfig holds renderer text overrides. A %s in WelcomeText receives the new-task key
// label; blank keeps the built-in message.
type UIConfig struct {
	WelcomeText string `toml:"welcome_text"`
}

// DevFileConfig controls the workspace-local log file written in dev mode.
type DevFileConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

func Default(jsonPath, sqlitePath string) Config {
	return Config{
		Storage: StorageConfig{
			Backend:    BackendJSON,
			JSONPath:   jsonPath,
			SQLitePath: sqlitePath,
		},
		Colors: ColorsConfig{
			Foreground:     "#F23C93",
			Background:     "#000000",
			SelectionFG:    "#FFFFFF",
			SelectionBG:    "#008080",
			CheckSign:      "#D9C819",
			WelcomeMessage: "#F23C93",
		},
		Keys: keyConfigFrom(keymap.Default()),
		Logging: LoggingConfig{
			Level: "info",
			DevFile: DevFileConfig{
				Enabled: true,
				Dir:     ".tickit/log",
			},
		},
	}
}

// Load decodes path over defaults and validates the result.
func Load(path string, defaults Config) (Config, error) {
	cfg, err := Decode(path, defaults)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Decode reads path over defaults without validating, so callers can apply overrides
// before a single Validate. A missing or empty file yields defaults.
func Decode(path string, defaults Config) (Config, error) {
	cfg := defaults
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if len(content) == 0 {
		return cfg, nil
	}

	if err := toml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode toml: %w", err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Storage.Backend {
	case BackendJSON:
		if strings.TrimSpace(c.Storage.JSONPath) == "" {
			return errors.New("storage.json_path is required for the json backend")
		}
	case BackendSQLite:
		if strings.TrimSpace(c.Storage.SQLitePath) == "" {
			return errors.New("storage.sqlite_path is required for the sqlite backend")
		}
	default:
		return fmt.Errorf("invalid storage.backend: %q", c.Storage.Backend)
	}

	for _, slot := range c.Colors.slots() {
		if err := ValidateColor(slot.value); err != nil {
			return fmt.Errorf("colors.%s: %w", slot.name, err)
		}
	}

	if _, err := c.Bindings(); err != nil {
		return err
	}

	if _, err := charmLog.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("invalid logging.level: %q", c.Logging.Level)
	}
	return nil
}

// ActivePath returns the storage path for the configured backend.
func (c Config) ActivePath() string {
	if c.Storage.Backend == BackendSQLite {
		return c.Storage.SQLitePath
	}
	return c.Storage.JSONPath
}

// Bindings parses the [keys] table into a binding table.
func (c Config) Bindings() (keymap.Bindings, error) {
	return keymap.FromStrings(map[keymap.Action]string{
		keymap.ActionExitApp:    c.Keys.ExitApp,
		keymap.ActionNewTask:    c.Keys.NewTask,
		keymap.ActionToggleTask: c.Keys.ToggleTask,
		keymap.ActionListUp:     c.Keys.ListUp,
		keymap.ActionListDown:   c.Keys.ListDown,
		keymap.ActionDeleteTask: c.Keys.DeleteTask,
		keymap.ActionExitAdding: c.Keys.ExitAdding,
		keymap.ActionSaveTask:   c.Keys.SaveTask,
	})
}

func keyConfigFrom(b keymap.Bindings) KeyConfig {
	names := b.Strings()
	return KeyConfig{
		ExitApp:    names[keymap.ActionExitApp],
		NewTask:    names[keymap.ActionNewTask],
		ToggleTask: names[keymap.ActionToggleTask],
		ListUp:     names[keymap.ActionListUp],
		ListDown:   names[keymap.ActionListDown],
		DeleteTask: names[keymap.ActionDeleteTask],
		ExitAdding: names[keymap.ActionExitAdding],
		SaveTask:   names[keymap.ActionSaveTask],
	}
}

type colorSlot struct {
	name  string
	value string
}

func (c ColorsConfig) slots() []colorSlot {
	return []colorSlot{
		{"foreground", c.Foreground},
		{"background", c.Background},
		{"selection_fg", c.SelectionFG},
		{"selection_bg", c.SelectionBG},
		{"check_sign", c.CheckSign},
		{"welcome_message", c.WelcomeMessage},
	}
}

// ValidateColor accepts #rgb/#rrggbb hex or an ANSI palette index.
func ValidateColor(raw string) error {
	value := strings.TrimSpace(raw)
	if value == "" {
		return errors.New("color is required")
	}
	if idx, err := strconv.Atoi(value); err == nil {
		if idx < 0 || idx > 255 {
			return fmt.Errorf("ansi color %d out of range 0-255", idx)
		}
		return nil
	}
	if _, err := colorful.Hex(value); err != nil {
		return fmt.Errorf("invalid color %q: %w", raw, err)
	}
	return nil
}

func EnsureConfigDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

// Write encodes cfg as TOML at path, creating the parent directory.
func Write(path string, cfg Config) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("config path is required")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	encoded, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode toml: %w", err)
	}
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
