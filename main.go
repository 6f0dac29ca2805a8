// Package main is the entry point for the rtnet IPv6 stack node.
package main

import (
	"fmt"
	"os"

	"github.com/seregonwar/rtnet-stack/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
