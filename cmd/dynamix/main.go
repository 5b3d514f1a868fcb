// Package main provides the dynamix CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dynamix",
	Short: "Dynamix generates declarative types over dynamic attribute sets",
	Long: `Dynamix generates Go types from a YAML schema. Each schema class becomes
a struct embedding dynamix.Declarative, with a constructor and typed
accessors over its declared attributes.`,
}

// configFile is set by the --config flag.
var configFile string

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: dynamix.yaml in the working directory)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(cleanCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("dynamix version %s\n", version)
	},
}
