package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	AppDirName            = "buckets"
	EnvConfigPath         = "BUCKETS_CONFIG"
)

type Keymap struct {
	Quit          string `toml:"quit"`
	Up            string `toml:"up"`
	Down          string `toml:"down"`
	Open          string `toml:"open"`
	Back          string `toml:"back"`
	Add           string `toml:"add"`
	Edit          string `toml:"edit"`
	Toggle        string `toml:"toggle"`
	Delete        string `toml:"delete"`
	ShowCompleted string `toml:"show_completed"`
	NextField     string `toml:"next_field"`
	PrevField     string `toml:"prev_field"`
	Submit        string `toml:"submit"`
	Cancel        string `toml:"cancel"`
}

type LogConfig struct {
	Path        string `toml:"path"`
	Development bool   `toml:"development"`
	Level       string `toml:"level"`
}

type Config struct {
	Seed bool `toml:"seed"`
	// ProcessingDelay is a duration string such as "1.5s". Empty or "0s"
	// applies changes immediately.
	ProcessingDelay string    `toml:"processing_delay"`
	Log             LogConfig `toml:"log"`
	Keys            Keymap    `toml:"keys"`
}

// Delay parses ProcessingDelay.
func (c Config) Delay() (time.Duration, error) {
	if c.ProcessingDelay == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.ProcessingDelay)
	if err != nil {
		return 0, fmt.Errorf("processing_delay: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("processing_delay: negative duration %s", d)
	}
	return d, nil
}

// ResolvePath picks the config file: the explicit flag value, then
// $BUCKETS_CONFIG, then the user config directory.
func ResolvePath(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if env := os.Getenv(EnvConfigPath); env != "" {
		return env, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, AppDirName, DefaultConfigFileName), nil
}

// LoadOrCreate reads the config at path, writing the defaults there first
// when the file does not exist. Keys missing from the file keep their
// default values.
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
	if _, err := cfg.Delay(); err != nil {
		return cfg, err
	}
	cfg.Keys = cfg.Keys.withDefaults(Default().Keys)
	return cfg, nil
}

func write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// withDefaults fills keys an edited file left blank.
func (k Keymap) withDefaults(d Keymap) Keymap {
	fill := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	fill(&k.Quit, d.Quit)
	fill(&k.Up, d.Up)
	fill(&k.Down, d.Down)
	fill(&k.Open, d.Open)
	fill(&k.Back, d.Back)
	fill(&k.Add, d.Add)
	fill(&k.Edit, d.Edit)
	fill(&k.Toggle, d.Toggle)
	fill(&k.Delete, d.Delete)
	fill(&k.ShowCompleted, d.ShowCompleted)
	fill(&k.NextField, d.NextField)
	fill(&k.PrevField, d.PrevField)
	fill(&k.Submit, d.Submit)
	fill(&k.Cancel, d.Cancel)
	return k
}

func Default() Config {
	return Config{
		Seed: true,
		Log: LogConfig{
			Level: "info",
		},
		Keys: Keymap{
			Quit:          "q",
			Up:            "k",
			Down:          "j",
			Open:          "enter",
			Back:          "esc",
			Add:           "a",
			Edit:          "e",
			Toggle:        " ",
			Delete:        "d",
			ShowCompleted: "c",
			NextField:     "tab",
			PrevField:     "shift+tab",
			Submit:        "ctrl+s",
			Cancel:        "esc",
		},
	}
}
