// Package config loads runtime configuration from, in order of precedence,
// command-line flags, GRINDSTONE_ environment variables, and an optional YAML
// file. It also exposes watching of the snapshot file for external edits.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Driver names accepted for data.driver.
const (
	DriverCSV    = "csv"
	DriverSQLite = "sqlite"
)

// Config is the resolved runtime configuration.
type Config struct {
	Data struct {
		Path   string `koanf:"path"`
		Driver string `koanf:"driver"`
		Watch  bool   `koanf:"watch"`
	} `koanf:"data"`
	Backup struct {
		Repo string `koanf:"repo"`
	} `koanf:"backup"`
	Server struct {
		Addr string `koanf:"addr"`
	} `koanf:"server"`
}

// Load resolves configuration from the given command-line arguments.
func Load(args []string) (*Config, error) {
	f := pflag.NewFlagSet("grindstone", pflag.ContinueOnError)
	configPath := f.String("config", "", "Path to a YAML config file")
	f.String("data.path", "grindstone.csv", "Path to the snapshot file")
	f.String("data.driver", DriverCSV, "Snapshot driver: csv or sqlite")
	f.Bool("data.watch", false, "Reload when the snapshot file changes externally")
	f.String("backup.repo", "", "Git repository directory for snapshot history (empty disables)")
	f.String("server.addr", ":8642", "HTTP listen address")
	if err := f.Parse(args); err != nil {
		return nil, err
	}

	k := koanf.New(".")
	if *configPath != "" {
		if err := k.Load(file.Provider(*configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", *configPath, err)
		}
	}
	if err := k.Load(env.Provider("GRINDSTONE_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "GRINDSTONE_")), "_", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment config: %w", err)
	}
	if err := k.Load(posflag.Provider(f, ".", k), nil); err != nil {
		return nil, fmt.Errorf("failed to load flag config: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.Data.Driver != DriverCSV && cfg.Data.Driver != DriverSQLite {
		return nil, fmt.Errorf("unknown data driver %q", cfg.Data.Driver)
	}
	return &cfg, nil
}

// WatchFile invokes onChange whenever the file at path changes on disk. It
// returns after registering the watch; events arrive on a background
// goroutine owned by the file provider.
func WatchFile(path string, onChange func()) error {
	provider := file.Provider(path)
	return provider.Watch(func(event interface{}, err error) {
		if err != nil {
			slog.Warn("snapshot watch error", "path", path, "error", err)
			return
		}
		onChange()
	})
}
