package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "hiveum",
		Short: "Hiveum - ants, colonies and the tunnels between them",
		Long: `hiveum releases ants into a map of colonies joined by tunnels.

Every tick each ant walks through a random tunnel. When two or more ants
meet in a colony, the colony and the ants in it are destroyed along with
the tunnels leading back into it. The run ends when every ant is dead or
the tick budget is spent, and the surviving map is printed.`,
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "Config file (default ~/.hiveum/config.yaml)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(),
		newValidateCmd(),
		newGraphCmd(),
		newHistoryCmd(),
		newConfigCmd(),
	)
	return rootCmd
}
