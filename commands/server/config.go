package server

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/iov-one/lockbox/errors"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	// ConfigFile is the name of the node configuration inside the home
	// directory.
	ConfigFile = "config.toml"
	// GenesisFile is the name of the genesis file inside the home
	// directory.
	GenesisFile = "genesis.json"
)

// Config is the node configuration, stored as TOML.
type Config struct {
	// ListenAddress is where the HTTP API is served.
	ListenAddress string `toml:"listen_address"`
	// DBBackend is either "goleveldb" or "memdb".
	DBBackend string `toml:"db_backend"`
	// LogLevel is one of "debug", "info", "error" or "none".
	LogLevel string `toml:"log_level"`
	// Debug includes stack traces in API error responses.
	Debug bool `toml:"debug"`
	// NATSURL enables publishing of events to a NATS server.
	NATSURL string `toml:"nats_url"`
	// NATSSubjectPrefix is prepended to the kind of every published
	// event.
	NATSSubjectPrefix string `toml:"nats_subject_prefix"`
	// PausedModules are rejected from processing from the start.
	PausedModules []string `toml:"paused_modules"`
	// CurrencyIssuer is allowed to register new assets.
	CurrencyIssuer string `toml:"currency_issuer"`
}

// DefaultConfig returns the configuration written by the init command.
func DefaultConfig() *Config {
	return &Config{
		ListenAddress:     "localhost:8680",
		DBBackend:         "goleveldb",
		LogLevel:          "info",
		NATSSubjectPrefix: "lockbox",
		PausedModules:     []string{},
	}
}

// Validate returns an error if the configuration cannot start a node.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.ListenAddress) == "" {
		return errors.Wrap(errors.ErrEmpty, "listen_address")
	}
	switch c.DBBackend {
	case "goleveldb", "memdb":
	default:
		return errors.Wrapf(errors.ErrInput, "unsupported db_backend %q", c.DBBackend)
	}
	if _, err := log.AllowLevel(c.LogLevel); err != nil {
		return errors.Wrapf(errors.ErrInput, "log_level: %s", err)
	}
	return nil
}

// LoadConfig reads the configuration from a TOML file. Unknown keys are
// rejected so that a typo does not silently fall back to a default.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "config %s: %s", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, errors.Wrapf(errors.ErrInput, "config %s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// SaveConfig writes the configuration as TOML.
func SaveConfig(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(errors.ErrInput, "create directory: %s", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0o644)
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "open %s: %s", path, err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return errors.Wrapf(errors.ErrInput, "encode %s: %s", path, err)
	}
	return nil
}

// FilterLogger limits the logger to messages of given level or above.
func FilterLogger(logger log.Logger, level string) (log.Logger, error) {
	opt, err := log.AllowLevel(level)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "log level: %s", err)
	}
	return log.NewFilter(logger, opt), nil
}
