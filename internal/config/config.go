package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"tarefa/internal/storage"
	"tarefa/internal/view"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "tarefa.db"
	AppDirName            = "tarefa"
	EnvConfigPath         = "TAREFA_CONFIG"
)

type Keymap struct {
	Quit            string `toml:"quit"`
	Add             string `toml:"add"`
	Up              string `toml:"up"`
	Down            string `toml:"down"`
	Toggle          string `toml:"toggle"`
	Delete          string `toml:"delete"`
	Edit            string `toml:"edit"`
	ClearCompleted  string `toml:"clear_completed"`
	FilterAll       string `toml:"filter_all"`
	FilterPending   string `toml:"filter_pending"`
	FilterCompleted string `toml:"filter_completed"`
	CycleFilter     string `toml:"cycle_filter"`
	Grab            string `toml:"grab"`
	Confirm         string `toml:"confirm"`
	Cancel          string `toml:"cancel"`
}

type Config struct {
	DBPath        string `toml:"db_path"`
	StoreKey      string `toml:"store_key"`
	DefaultFilter string `toml:"default_filter"`
	Locale        string `toml:"locale"`
	LogLevel      string `toml:"log_level"`
	LogFile       string `toml:"log_file"`
	Mouse         bool   `toml:"mouse"`
	Keys          Keymap `toml:"keys"`
}

// ResolveConfigPath picks the config file: the explicit path, then
// $TAREFA_CONFIG, then <user config dir>/tarefa/config.toml.
func ResolveConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := strings.TrimSpace(os.Getenv(EnvConfigPath)); env != "" {
		return env
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(dir, AppDirName, DefaultConfigFileName)
}

// LoadOrCreate reads path, writing the defaults there first if it does not
// exist. Relative db and log paths are resolved against the config's
// directory.
func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg.resolve(path), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.DBPath == "" {
		cfg.DBPath = DefaultDBName
	}
	if cfg.StoreKey == "" {
		cfg.StoreKey = storage.DefaultKey
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg.resolve(path), nil
}

func (c Config) Validate() error {
	if _, err := view.ParseFilter(c.DefaultFilter); err != nil {
		return fmt.Errorf("default_filter: %w", err)
	}
	if _, err := view.MessagesFor(c.Locale); err != nil {
		return fmt.Errorf("locale: %w", err)
	}
	return nil
}

func (c Config) resolve(path string) Config {
	base := filepath.Dir(path)
	c.DBPath = resolvePath(base, c.DBPath)
	c.LogFile = resolvePath(base, c.LogFile)
	return c
}

func resolvePath(base, p string) string {
	if p == "" || p == storage.MemoryPath || strings.HasPrefix(p, "file:") || filepath.IsAbs(p) {
		return p
	}
	if strings.HasPrefix(p, "~"+string(filepath.Separator)) {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, p[2:])
		}
	}
	return filepath.Join(base, p)
}

func write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultConfig() Config {
	return Config{
		DBPath:        DefaultDBName,
		StoreKey:      storage.DefaultKey,
		DefaultFilter: string(view.FilterAll),
		Locale:        view.DefaultLocale,
		LogLevel:      "info",
		LogFile:       "tarefa.log",
		Mouse:         true,
		Keys: Keymap{
			Quit:            "q",
			Add:             "a",
			Up:              "k",
			Down:            "j",
			Toggle:          " ",
			Delete:          "d",
			Edit:            "e",
			ClearCompleted:  "c",
			FilterAll:       "1",
			FilterPending:   "2",
			FilterCompleted: "3",
			CycleFilter:     "f",
			Grab:            "m",
			Confirm:         "enter",
			Cancel:          "esc",
		},
	}
}
