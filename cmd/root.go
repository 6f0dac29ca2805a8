// Package cmd implements CLI commands using cobra framework.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/seregonwar/rtnet-stack/internal/config"
	"github.com/seregonwar/rtnet-stack/internal/log"
)

var configFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "rtnet",
	Short: "rtnet - deterministic user-space IPv6 stack for real-time nodes",
	Long: `rtnet runs a deterministic, allocation-free IPv6 stack in user space
on top of an AF_PACKET socket. All tables are fixed-capacity and every
packet-path operation completes in bounded time, which makes behavior on a
congested link predictable instead of merely fast.

Subcommands attach the stack to a NIC, run small demo endpoints (UDP echo,
TCP GET), exercise the discovery boundary and validate configuration files.`,
	Version: "0.1.0",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "",
		"config file path")

	rootCmd.AddCommand(upCmd)
	rootCmd.AddCommand(echoCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(announceCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(validateCmd)
}

// loadConfig reads the --config file (or defaults) and initializes logging
// from it.
func loadConfig() *config.Config {
	cfg, err := config.Load(configFile)
	if err != nil {
		exitWithError("failed to load config", err)
	}
	if err := log.Init(&cfg.Log); err != nil {
		exitWithError("failed to initialize logging", err)
	}
	return cfg
}

// exitWithError prints error message and exits with code 1
func exitWithError(msg string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", msg)
	}
	os.Exit(1)
}
