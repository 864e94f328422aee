package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/mindgym/internal/config"
	"github.com/vovakirdan/mindgym/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MindGym SSH server",
	Long: `Start an SSH server that lets users connect and train remotely.

Each SSH connection gets its own menu and sessions. Results are stored
per-server in the history database (all users share it).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.mindgym/host_key

Examples:
  mindgym serve                           # Listen on :23234 with auto-generated key
  mindgym serve --ssh :2222               # Listen on port 2222
  mindgym serve --host-key ./my_host_key  # Use specific host key
  mindgym serve --db ./history.db         # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		logger.Warn("could not load settings, using defaults", "error", err)
		settings = config.DefaultSettings()
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = flagDBPath
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.Settings = settings
	cfg.Seed = flagSeed
	cfg.Logger = logger.WithPrefix("mindgym-ssh")

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	fmt.Printf("Starting MindGym SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}
