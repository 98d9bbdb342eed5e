package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// envOverrides mirrors the Config fields that may be set via NAMESWEEP_*
// environment variables. Empty values leave the config untouched so the
// file/flag layers keep their precedence.
type envOverrides struct {
	Network         string `envconfig:"NETWORK"`
	DataDir         string `envconfig:"DATADIR"`
	RegistryURL     string `envconfig:"REGISTRY_URL"`
	RelayURL        string `envconfig:"RELAY_URL"`
	RegistryTimeout int    `envconfig:"REGISTRY_TIMEOUT"`
	Destination     string `envconfig:"DESTINATION"`
	Fee             string `envconfig:"FEE"`
	MaxAccounts     int    `envconfig:"MAX_ACCOUNTS"`
	RPCAddr         string `envconfig:"RPC_ADDR"`
	RPCPort         int    `envconfig:"RPC_PORT"`
	LogLevel        string `envconfig:"LOG_LEVEL"`
	LogFile         string `envconfig:"LOG_FILE"`
}

// ApplyEnv applies NAMESWEEP_* environment variables to a Config struct.
func ApplyEnv(cfg *Config) error {
	env := &envOverrides{}
	if err := envconfig.Process("NAMESWEEP", env); err != nil {
		return fmt.Errorf("processing environment: %w", err)
	}

	if env.Network != "" {
		cfg.Network = NetworkType(env.Network)
	}
	if env.DataDir != "" {
		cfg.DataDir = env.DataDir
	}
	if env.RegistryURL != "" {
		cfg.Registry.URL = env.RegistryURL
	}
	if env.RelayURL != "" {
		cfg.Registry.RelayURL = env.RelayURL
	}
	if env.RegistryTimeout != 0 {
		cfg.Registry.Timeout = time.Duration(env.RegistryTimeout) * time.Second
	}
	if env.Destination != "" {
		cfg.Sweep.Destination = env.Destination
	}
	if env.Fee != "" {
		cfg.Sweep.Fee = env.Fee
	}
	if env.MaxAccounts != 0 {
		cfg.Sweep.MaxAccounts = env.MaxAccounts
	}
	if env.RPCAddr != "" {
		cfg.RPC.Addr = env.RPCAddr
	}
	if env.RPCPort != 0 {
		cfg.RPC.Port = env.RPCPort
	}
	if env.LogLevel != "" {
		cfg.Log.Level = env.LogLevel
	}
	if env.LogFile != "" {
		cfg.Log.File = env.LogFile
	}

	return nil
}
