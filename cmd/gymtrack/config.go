package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// cliConfig is the per-user file at $XDG_CONFIG_HOME/gymtrack/config.toml.
type cliConfig struct {
	StorageMode string `toml:"storage_mode"`
	ServerURL   string `toml:"server_url"`
	Token       string `toml:"token"`
	Timezone    string `toml:"timezone"`
	DBPath      string `toml:"db_path"`
}

func defaultConfigPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "gymtrack", "config.toml")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "gymtrack", "config.toml")
	}
	return filepath.Join(".", "gymtrack.toml")
}

// loadCLIConfig returns an empty config when the file does not exist yet.
func loadCLIConfig(path string) (*cliConfig, error) {
	cfg := &cliConfig{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return cfg, nil
}

// saveCLIConfig writes cfg with owner-only permissions, the file holds the session token.
func saveCLIConfig(path string, cfg *cliConfig) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}

// resolveLocation picks the date-key time zone: the flag, then the file, then the device zone.
func resolveLocation(flagValue, configValue string) (*time.Location, error) {
	name := flagValue
	if name == "" {
		name = configValue
	}
	if name == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load time zone %q: %w", name, err)
	}
	return loc, nil
}
