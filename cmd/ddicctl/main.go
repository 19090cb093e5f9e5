// Command ddicctl is a demo harness around the ddic library: it drives
// Construct against a small fixed demo catalog so the discovery, synthesis,
// and execution pipeline can be exercised and watched interactively. It is
// not the host generator the library is designed to be embedded into.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd *cobra.Command

func init() {
	rootCmd = &cobra.Command{
		Use:   "ddicctl",
		Short: "Demo harness for the demand-driven input constructor",
	}

	rootCmd.AddCommand(newConstructCommand())
	rootCmd.AddCommand(newCatalogCommand())
	rootCmd.AddCommand(newWatchCommand())
	rootCmd.AddCommand(newReplCommand())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
