package config

import "time"

// DefaultMainnet returns the default configuration for mainnet.
func DefaultMainnet() *Config {
	return &Config{
		Network: Mainnet,
		DataDir: DefaultDataDir(),
		Registry: RegistryConfig{
			URL:      "https://registry.namesweep.io",
			RelayURL: "https://relay.namesweep.io",
			Timeout:  15 * time.Second,
		},
		Sweep: SweepConfig{
			Fee:         "0.0005",
			MaxAccounts: 50,
		},
		RPC: RPCConfig{
			Enabled:    true,
			Addr:       "127.0.0.1",
			Port:       8720,
			AllowedIPs: []string{"127.0.0.1"},
		},
		Log: LogConfig{
			Level: "info",
			JSON:  false,
		},
	}
}

// DefaultTestnet returns the default configuration for testnet.
func DefaultTestnet() *Config {
	cfg := DefaultMainnet()
	cfg.Network = Testnet
	cfg.Registry.URL = "https://registry.testnet.namesweep.io"
	cfg.Registry.RelayURL = "https://relay.testnet.namesweep.io"
	cfg.RPC.Port = 8721
	return cfg
}

// Default returns the default configuration for the given network.
func Default(network NetworkType) *Config {
	switch network {
	case Testnet:
		return DefaultTestnet()
	default:
		return DefaultMainnet()
	}
}
