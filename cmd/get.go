package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/seregonwar/rtnet-stack/internal/core"
)

var (
	getDest    string
	getPort    uint16
	getPath    string
	getWaitSec int
)

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Send an HTTP GET over a TCP-lite connection",
	Long: `Open a TCP-lite connection, send a minimal HTTP GET request and keep
the receive loop running briefly so inbound segments update the
connection, then report the stack statistics.

Examples:
  rtnet get -c rtnet.yml --dest fe80::2 --port 80 --path /status`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		n, err := startNode(cfg)
		if err != nil {
			exitWithError("failed to start node", err)
		}
		defer n.driver.Close()

		dest, err := core.ParseAddr(getDest)
		if err != nil {
			exitWithError("invalid destination", err)
		}

		id, err := n.stack.Connect(dest, getPort)
		if err != nil {
			exitWithError("connect failed", err)
		}

		request := fmt.Sprintf("GET %s HTTP/1.0\r\nHost: [%s]\r\n\r\n", getPath, dest)
		if err := n.stack.Send(id, []byte(request)); err != nil {
			exitWithError("send failed", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(getWaitSec)*time.Second)
		defer cancel()
		n.driver.Run(ctx, n.stack.ProcessRxPacket)

		if err := n.stack.Close(id); err != nil {
			exitWithError("close failed", err)
		}

		st := n.stack.GetStatistics()
		fmt.Printf("rx_packets=%d tx_packets=%d rx_errors=%d checksum_errors=%d\n",
			st.RxPackets, st.TxPackets, st.RxErrors, st.ChecksumErrors)
	},
}

func init() {
	getCmd.Flags().StringVar(&getDest, "dest", "", "destination IPv6 address (required)")
	getCmd.Flags().Uint16Var(&getPort, "port", 80, "destination TCP port")
	getCmd.Flags().StringVar(&getPath, "path", "/", "request path")
	getCmd.Flags().IntVar(&getWaitSec, "wait", 3, "seconds to keep receiving before closing")
	getCmd.MarkFlagRequired("dest")
}
