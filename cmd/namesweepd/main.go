// namesweepd is the Namesweep daemon: it derives accounts from a seed phrase
// supplied over RPC, discovers named assets and sweeps them to a destination
// address with sponsored fees.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/namesweep/namesweep/config"
	"github.com/namesweep/namesweep/internal/log"
	"github.com/namesweep/namesweep/internal/registry"
	"github.com/namesweep/namesweep/internal/rpc"
	"github.com/namesweep/namesweep/internal/session"
	"github.com/namesweep/namesweep/pkg/types"
)

func main() {
	cfg, _, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if cfg.Network == config.Testnet {
		types.SetAddressHRP(types.TestnetHRP)
	} else {
		types.SetAddressHRP(types.MainnetHRP)
	}

	if err := log.Init(cfg.Log.Level, cfg.Log.JSON, cfg.Log.File); err != nil {
		fmt.Fprintf(os.Stderr, "Error: init logging: %v\n", err)
		os.Exit(1)
	}

	log.Info().
		Str("network", string(cfg.Network)).
		Str("registry", cfg.Registry.URL).
		Str("relay", cfg.Registry.RelayURL).
		Msg("Starting namesweepd")

	reg := registry.New(cfg.Registry)
	sess := session.New(cfg, reg)

	var server *rpc.Server
	if cfg.RPC.Enabled {
		addr := fmt.Sprintf("%s:%d", cfg.RPC.Addr, cfg.RPC.Port)
		server = rpc.New(addr, sess, cfg.RPC)
		if err := server.Start(); err != nil {
			log.Fatal().Err(err).Msg("Failed to start RPC server")
		}
		log.Info().Str("addr", server.Addr()).Msg("RPC server listening")
	} else {
		log.Warn().Msg("RPC disabled, nothing to serve")
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	log.Info().Str("signal", sig.String()).Msg("Shutting down")

	if server != nil {
		if err := server.Stop(); err != nil {
			log.Error().Err(err).Msg("RPC shutdown error")
		}
	}
	// Key material never outlives the process, but drop it eagerly anyway.
	sess.Clear()
}
