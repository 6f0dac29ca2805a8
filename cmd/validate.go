package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/seregonwar/rtnet-stack/internal/config"
)

var validateFile string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	Long: `Validate a configuration file without starting the node, and print the
effective configuration (after defaults) as YAML.

Examples:
  rtnet validate -f /etc/rtnet/rtnet.yml`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(validateFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "INVALID: %v\n", err)
			os.Exit(1)
		}

		out, err := yaml.Marshal(cfg)
		if err != nil {
			exitWithError("failed to render config", err)
		}
		fmt.Printf("VALID\n---\n%s", out)
	},
}

func init() {
	validateCmd.Flags().StringVarP(&validateFile, "file", "f", "",
		"configuration file to validate (required)")
	validateCmd.MarkFlagRequired("file")
}
