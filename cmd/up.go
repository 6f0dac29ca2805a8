package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Attach the stack to a network interface and run it",
	Long: `Attach the stack to the configured interface and run the receive loop,
the maintenance ticker and the optional Prometheus endpoint until
interrupted.

Examples:
  rtnet up -c /etc/rtnet/rtnet.yml`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		n, err := startNode(cfg)
		if err != nil {
			exitWithError("failed to start node", err)
		}
		if err := n.run(context.Background()); err != nil {
			exitWithError("node stopped", err)
		}
	},
}
