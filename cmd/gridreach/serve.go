package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridreach/internal/platform/tui"
	"github.com/vovakirdan/gridreach/internal/scenario"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the gridreach SSH server",
	Long: `Start an SSH server that lets users connect and explore scenarios.

Each SSH connection gets its own copy of the scenario, so edits made in one
session are never seen by another. Queries are recorded in the server's
history database.

A scenario can be chosen on connect by passing its ID as the SSH command;
otherwise the session starts with the scenario picker.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.gridreach/host_key

Examples:
  gridreach serve                           # Listen on the configured address
  gridreach serve --ssh :2222               # Listen on port 2222
  gridreach serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23235
  ssh -t localhost -p 23235 courtyard`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", -1, "Idle timeout in minutes before disconnecting (default from config)")
}

func runServe(_ *cobra.Command, _ []string) {
	scenarios, err := scenario.Catalog(scenarioDir())
	if err != nil {
		exitf("%v", err)
	}

	cfg := tui.NewSSHServerConfig(appConfig, scenarios)
	cfg.Logger = logger
	if flagSSHAddr != "" {
		cfg.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.HostKeyPath = flagHostKey
	}
	if flagIdleTimeout >= 0 {
		cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		exitf("creating server: %v", err)
	}

	fmt.Printf("Starting gridreach SSH server on %s with %d scenarios\n", server.Addr(), len(scenarios))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		exitf("server: %v", err)
	}
}
