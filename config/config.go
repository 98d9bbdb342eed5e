// Package config handles application configuration.
//
// Configuration comes from four layers, later layers winning: built-in
// defaults per network, an optional key = value config file, environment
// variables (NAMESWEEP_*), and command-line flags.
package config

import (
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// NetworkType identifies mainnet or testnet.
type NetworkType string

const (
	Mainnet NetworkType = "mainnet"
	Testnet NetworkType = "testnet"
)

// Coin is the number of smallest native units per coin. Fees are entered as
// decimal coin strings and converted to smallest units before signing.
const Coin = 1_000_000

// Config holds runtime configuration for the namesweepd daemon.
type Config struct {
	// Core
	Network NetworkType `conf:"network"`
	DataDir string      `conf:"datadir"` // logs only; no wallet data is ever written here

	// External services
	Registry RegistryConfig

	// Sweep policy
	Sweep SweepConfig

	// RPC server
	RPC RPCConfig

	// Logging
	Log LogConfig
}

// RegistryConfig holds the external registry/relay endpoints.
type RegistryConfig struct {
	URL      string        `conf:"registry.url"`     // name registry + balance API base URL
	RelayURL string        `conf:"registry.relay"`   // transaction relay base URL
	Timeout  time.Duration `conf:"registry.timeout"` // bound on every outbound call
}

// SweepConfig holds sweep policy settings.
type SweepConfig struct {
	Destination string `conf:"sweep.destination"` // address receiving swept names (optional; session_connect overrides)
	Fee         string `conf:"sweep.fee"`         // default fee in coins, e.g. "0.0005"
	MaxAccounts int    `conf:"sweep.maxaccounts"` // hard cap on derived accounts
}

// RPCConfig holds RPC server settings.
type RPCConfig struct {
	Enabled     bool     `conf:"rpc.enabled"`
	Addr        string   `conf:"rpc.addr"`
	Port        int      `conf:"rpc.port"`
	AllowedIPs  []string `conf:"rpc.allowed"`
	CORSOrigins []string `conf:"rpc.cors"` // Allowed CORS origins ("*" = all).
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `conf:"log.level"`
	File  string `conf:"log.file"`
	JSON  bool   `conf:"log.json"`
}

// DefaultDataDir returns the platform-specific default data directory.
//
//	Linux:   ~/.namesweep
//	macOS:   ~/Library/Application Support/Namesweep
//	Windows: %APPDATA%\Namesweep
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".namesweep"
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "Namesweep")
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData != "" {
			return filepath.Join(appData, "Namesweep")
		}
		return filepath.Join(home, "AppData", "Roaming", "Namesweep")
	default:
		return filepath.Join(home, ".namesweep")
	}
}

// LogsDir returns the logs directory.
func (c *Config) LogsDir() string {
	return filepath.Join(c.DataDir, "logs")
}

// ConfigFile returns the config file path.
func (c *Config) ConfigFile() string {
	return filepath.Join(c.DataDir, "namesweep.conf")
}
