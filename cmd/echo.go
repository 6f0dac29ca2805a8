package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/seregonwar/rtnet-stack/internal/core"
	"github.com/seregonwar/rtnet-stack/internal/log"
)

var echoPort uint16

var echoCmd = &cobra.Command{
	Use:   "echo",
	Short: "Run a UDP echo server on the stack",
	Long: `Run the node with a UDP handler that sends every datagram received on
the echo port straight back to its sender.

Examples:
  rtnet echo -c rtnet.yml --port 7777`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		n, err := startNode(cfg)
		if err != nil {
			exitWithError("failed to start node", err)
		}

		n.stack.SetUDPHandler(func(src core.Addr, srcPort, dstPort uint16, payload []byte) {
			if dstPort != echoPort {
				return
			}
			if err := n.stack.SendUDP(src, srcPort, echoPort, payload, core.QoSNormal); err != nil {
				log.GetLogger().WithError(err).Warnf("echo reply to %s:%d failed", src, srcPort)
			}
		})

		log.GetLogger().Infof("udp echo listening on port %d", echoPort)
		if err := n.run(context.Background()); err != nil {
			exitWithError("node stopped", err)
		}
	},
}

func init() {
	echoCmd.Flags().Uint16Var(&echoPort, "port", 7777, "UDP port to echo on")
}
