package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/seregonwar/rtnet-stack/internal/log"
)

var (
	announceName string
	announcePort uint16
	announceTTL  uint32
	queryName    string
)

var announceCmd = &cobra.Command{
	Use:   "announce",
	Short: "Run the node with a service announced on the discovery boundary",
	Long: `Run the node with a named service registered in the local discovery
table. Records live behind the discovery boundary; no mDNS frames are
emitted.

Examples:
  rtnet announce -c rtnet.yml --name sensor-hub --port 8080 --ttl 120`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		n, err := startNode(cfg)
		if err != nil {
			exitWithError("failed to start node", err)
		}

		if err := n.stack.Announce(announceName, announcePort, announceTTL); err != nil {
			exitWithError("announce failed", err)
		}

		log.GetLogger().Infof("service %q announced on port %d", announceName, announcePort)
		if err := n.run(context.Background()); err != nil {
			exitWithError("node stopped", err)
		}
	},
}

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Resolve a service name from the local discovery table",
	Long: `Look a service name up in this node's discovery table and print the
record as YAML. Resolution is local: a name this node has not announced
reports a timeout, the same verdict an unanswered wire query would get.

Examples:
  rtnet query -c rtnet.yml --name sensor-hub`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		n, err := startNode(cfg)
		if err != nil {
			exitWithError("failed to start node", err)
		}
		defer n.driver.Close()

		rec, err := n.stack.Query(queryName)
		if err != nil {
			exitWithError(fmt.Sprintf("query %q failed", queryName), err)
		}

		out, err := yaml.Marshal(map[string]interface{}{
			"name":    rec.Name,
			"address": rec.Addr.String(),
			"port":    rec.Port,
			"ttl_sec": rec.TTL,
		})
		if err != nil {
			exitWithError("failed to render record", err)
		}
		fmt.Print(string(out))
	},
}

func init() {
	announceCmd.Flags().StringVar(&announceName, "name", "", "service name (required)")
	announceCmd.Flags().Uint16Var(&announcePort, "port", 0, "service port (required)")
	announceCmd.Flags().Uint32Var(&announceTTL, "ttl", 120, "record TTL in seconds")
	announceCmd.MarkFlagRequired("name")
	announceCmd.MarkFlagRequired("port")

	queryCmd.Flags().StringVar(&queryName, "name", "", "service name to resolve (required)")
	queryCmd.MarkFlagRequired("name")
}
