package config

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

// Flags holds parsed command-line flags.
type Flags struct {
	// Commands
	Help    bool
	Version bool

	// Core
	Network string
	DataDir string
	Config  string

	// Registry
	RegistryURL     string
	RelayURL        string
	RegistryTimeout int

	// Sweep
	Destination string
	Fee         string
	MaxAccounts int

	// RPC
	RPC        bool
	RPCAddr    string
	RPCPort    int
	RPCAllowed string
	RPCCORS    string

	// Logging
	LogLevel string
	LogFile  string
	LogJSON  bool

	// Remaining args
	Args []string

	// Explicitly-set bool flags (for true/false overrides).
	SetRPC     bool
	SetLogJSON bool
}

// ParseFlags parses command-line flags.
func ParseFlags() *Flags {
	f := &Flags{}
	fs := flag.NewFlagSet("namesweepd", flag.ContinueOnError)

	// Commands
	fs.BoolVar(&f.Help, "help", false, "Show help message")
	fs.BoolVar(&f.Help, "h", false, "Show help message (shorthand)")
	fs.BoolVar(&f.Version, "version", false, "Show version information")
	fs.BoolVar(&f.Version, "v", false, "Show version (shorthand)")

	// Core
	fs.StringVar(&f.Network, "network", "", "Network type (mainnet or testnet)")
	fs.StringVar(&f.DataDir, "datadir", "", "Data directory path (logs only)")
	fs.StringVar(&f.Config, "config", "", "Config file path")
	fs.StringVar(&f.Config, "c", "", "Config file path (shorthand)")

	// Registry
	fs.StringVar(&f.RegistryURL, "registry", "", "Name registry base URL")
	fs.StringVar(&f.RelayURL, "relay", "", "Transaction relay base URL")
	fs.IntVar(&f.RegistryTimeout, "registry-timeout", 0, "Outbound HTTP timeout in seconds")

	// Sweep
	fs.StringVar(&f.Destination, "destination", "", "Address that receives swept names")
	fs.StringVar(&f.Fee, "fee", "", "Default transfer fee in coins (e.g. 0.0005)")
	fs.IntVar(&f.MaxAccounts, "max-accounts", 0, "Hard cap on derived accounts")

	// RPC
	fs.BoolVar(&f.RPC, "rpc", true, "Enable RPC server")
	fs.StringVar(&f.RPCAddr, "rpc-addr", "", "RPC listen address")
	fs.IntVar(&f.RPCPort, "rpc-port", 0, "RPC listen port")
	fs.StringVar(&f.RPCAllowed, "rpc-allowed", "", "Allowed IPs for RPC")
	fs.StringVar(&f.RPCCORS, "rpc-cors", "", "Allowed CORS origins for RPC (comma-separated)")

	// Logging
	fs.StringVar(&f.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&f.LogFile, "log-file", "", "Log file path")
	fs.BoolVar(&f.LogJSON, "log-json", false, "Output logs as JSON")

	fs.Usage = func() {
		printUsage()
	}

	// Parse
	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	f.SetRPC = isFlagSet(fs, "rpc")
	f.SetLogJSON = isFlagSet(fs, "log-json")

	f.Args = fs.Args()

	return f
}

// ApplyFlags applies command-line flags to a Config struct.
func ApplyFlags(cfg *Config, f *Flags) {
	// Core
	if f.Network != "" {
		cfg.Network = NetworkType(f.Network)
	}
	if f.DataDir != "" {
		cfg.DataDir = f.DataDir
	}

	// Registry
	if f.RegistryURL != "" {
		cfg.Registry.URL = f.RegistryURL
	}
	if f.RelayURL != "" {
		cfg.Registry.RelayURL = f.RelayURL
	}
	if f.RegistryTimeout != 0 {
		cfg.Registry.Timeout = secondsToDuration(f.RegistryTimeout)
	}

	// Sweep
	if f.Destination != "" {
		cfg.Sweep.Destination = f.Destination
	}
	if f.Fee != "" {
		cfg.Sweep.Fee = f.Fee
	}
	if f.MaxAccounts != 0 {
		cfg.Sweep.MaxAccounts = f.MaxAccounts
	}

	// RPC
	if f.SetRPC {
		cfg.RPC.Enabled = f.RPC
	}
	if f.RPCAddr != "" {
		cfg.RPC.Addr = f.RPCAddr
	}
	if f.RPCPort != 0 {
		cfg.RPC.Port = f.RPCPort
	}
	if f.RPCAllowed != "" {
		cfg.RPC.AllowedIPs = parseStringList(f.RPCAllowed)
	}
	if f.RPCCORS != "" {
		cfg.RPC.CORSOrigins = parseStringList(f.RPCCORS)
	}

	// Logging
	if f.LogLevel != "" {
		cfg.Log.Level = f.LogLevel
	}
	if f.LogFile != "" {
		cfg.Log.File = f.LogFile
	}
	if f.SetLogJSON {
		cfg.Log.JSON = f.LogJSON
	}
}

// isFlagSet checks if a flag was explicitly set.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

func printUsage() {
	usage := `Namesweep - sweep named assets from seed-derived accounts

Usage:
  namesweepd [options]
  namesweepd --help

Commands:
  --help, -h      Show this help message
  --version, -v   Show version information

Core Options:
  --network       Network type: mainnet (default) or testnet
  --datadir       Data directory for logs (default: ~/.namesweep)
  --config, -c    Config file path (default: <datadir>/namesweep.conf)

Registry Options:
  --registry          Name registry base URL
  --relay             Transaction relay base URL
  --registry-timeout  Outbound HTTP timeout in seconds (default: 15)

Sweep Options:
  --destination   Address that receives swept names
  --fee           Default transfer fee in coins (default: 0.0005)
  --max-accounts  Hard cap on derived accounts (default: 50)

RPC Options:
  --rpc           Enable RPC server (default: true)
  --rpc-addr      RPC listen address (default: 127.0.0.1)
  --rpc-port      RPC port (mainnet: 8720, testnet: 8721)
  --rpc-allowed   Allowed IPs for RPC (comma-separated)
  --rpc-cors      Allowed CORS origins for RPC (comma-separated)

Logging Options:
  --log-level     Log level: debug, info, warn, error (default: info)
  --log-file      Log file path (default: stdout)
  --log-json      Output logs as JSON

Environment:
  All options can also be set via NAMESWEEP_* environment variables,
  e.g. NAMESWEEP_REGISTRY_URL, NAMESWEEP_DESTINATION, NAMESWEEP_FEE.

Examples:
  # Start on mainnet with a destination address
  namesweepd --destination=nsw1...

  # Start against a local registry mock
  namesweepd --registry=http://127.0.0.1:3999 --relay=http://127.0.0.1:3999

Note:
  Seed phrases are never read from configuration. They are supplied at
  runtime over the session RPC and held only in memory.
`
	fmt.Print(usage)
}

// Load loads configuration with the following precedence:
// 1. Default values
// 2. Config file
// 3. Environment variables (NAMESWEEP_*)
// 4. Command-line flags
func Load() (*Config, *Flags, error) {
	flags := ParseFlags()

	// Handle help/version
	if flags.Help {
		printUsage()
		os.Exit(0)
	}
	if flags.Version {
		fmt.Println("namesweepd version 0.1.0")
		os.Exit(0)
	}

	// Determine network first (needed for defaults)
	network := Mainnet
	if strings.ToLower(flags.Network) == "testnet" {
		network = Testnet
	}

	// Start with defaults
	cfg := Default(network)

	// Override datadir if specified
	if flags.DataDir != "" {
		cfg.DataDir = flags.DataDir
	}

	// Auto-create the data dir (logs only) on first start.
	if err := EnsureDataDirs(cfg); err != nil {
		return nil, nil, fmt.Errorf("ensuring data dirs: %w", err)
	}

	// Determine config file path
	configPath := flags.Config
	if configPath == "" {
		configPath = cfg.ConfigFile()
	}

	// Load config file
	fileValues, err := LoadFile(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config file: %w", err)
	}

	// Apply file config
	if err := ApplyFileConfig(cfg, fileValues); err != nil {
		return nil, nil, fmt.Errorf("applying config file: %w", err)
	}

	// Apply environment overrides
	if err := ApplyEnv(cfg); err != nil {
		return nil, nil, fmt.Errorf("applying environment: %w", err)
	}

	// Apply flags (highest precedence)
	ApplyFlags(cfg, flags)
	if err := Validate(cfg); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, flags, nil
}

// EnsureDataDirs creates the data directory structure if it doesn't already
// exist. This is idempotent.
func EnsureDataDirs(cfg *Config) error {
	dirs := []string{
		cfg.DataDir,
		cfg.LogsDir(),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	return nil
}
