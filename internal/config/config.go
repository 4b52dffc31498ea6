package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "tasks.db"
	DefaultSlotKey        = "tasks"
	appDirName            = "tasklist"

	BackendSQLite = "sqlite"
	BackendFile   = "file"
)

type Keymap struct {
	Quit          string `toml:"quit"`
	Add           string `toml:"add"`
	Up            string `toml:"up"`
	Down          string `toml:"down"`
	Toggle        string `toml:"toggle"`
	Delete        string `toml:"delete"`
	Confirm       string `toml:"confirm"`
	Cancel        string `toml:"cancel"`
	Edit          string `toml:"edit"`
	Search        string `toml:"search"`
	FilterDate    string `toml:"filter_date"`
	HideCompleted string `toml:"hide_completed"`
	ClearFilters  string `toml:"clear_filters"`
	NextPage      string `toml:"next_page"`
	PrevPage      string `toml:"prev_page"`
}

type Config struct {
	SlotBackend string `toml:"slot_backend"`
	SlotPath    string `toml:"slot_path"`
	SlotKey     string `toml:"slot_key"`
	LogLevel    string `toml:"log_level"`
	LogFile     string `toml:"log_file"`
	Keys        Keymap `toml:"keys"`
}

// ResolveConfigPath returns the per-user config file location, or a file in
// the working directory when no user config dir is available.
func ResolveConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(dir, appDirName, DefaultConfigFileName)
}

func LoadOrCreate(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.normalize(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	if c.SlotBackend == "" {
		c.SlotBackend = BackendSQLite
	}
	if c.SlotKey == "" {
		c.SlotKey = DefaultSlotKey
	}
	if strings.ContainsAny(c.SlotKey, `/\`) || strings.Contains(c.SlotKey, "..") || c.SlotKey == "." {
		return fmt.Errorf("slot_key %q must not contain path separators or \"..\"", c.SlotKey)
	}
	switch c.SlotBackend {
	case BackendSQLite:
		if c.SlotPath == "" {
			c.SlotPath = defaultDataPath(DefaultDBName)
		}
	case BackendFile:
		if c.SlotPath == "" {
			c.SlotPath = defaultDataPath("slots")
		}
	default:
		return fmt.Errorf("unknown slot_backend %q", c.SlotBackend)
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	return nil
}

func write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultDataPath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join("."+appDirName, name)
	}
	return filepath.Join(home, ".local", "share", appDirName, name)
}

func Default() Config {
	return Config{
		SlotBackend: BackendSQLite,
		SlotPath:    defaultDataPath(DefaultDBName),
		SlotKey:     DefaultSlotKey,
		LogLevel:    "info",
		Keys: Keymap{
			Quit:          "q",
			Add:           "a",
			Up:            "k",
			Down:          "j",
			Toggle:        " ",
			Delete:        "d",
			Confirm:       "enter",
			Cancel:        "esc",
			Edit:          "e",
			Search:        "/",
			FilterDate:    "f",
			HideCompleted: "h",
			ClearFilters:  "c",
			NextPage:      "]",
			PrevPage:      "[",
		},
	}
}
