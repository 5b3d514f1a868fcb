// Clean command removes generated files.
package main

import (
	"github.com/spf13/cobra"

	"github.com/pthm/dynamix/lib/generator"
)

var cleanDryRun bool

var cleanCmd = &cobra.Command{
	Use:   "clean [dir]",
	Short: "Remove generated files (*_dynamix.go)",
	Long: `Clean removes generated *_dynamix.go files from the target directory.

Example:
  dynamix clean
  dynamix clean ./people
  dynamix clean --dry-run`,
	Args: cobra.MaximumNArgs(1),
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().BoolVar(&cleanDryRun, "dry-run", false, "show what would be removed without deleting files")
}

func runClean(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(configFile)
	if err != nil {
		return err
	}

	dir := cfg.GetString(cfgKeyDir)
	if len(args) > 0 {
		dir = args[0]
	}

	gen := generator.New(generator.Options{DryRun: cleanDryRun})
	return gen.Clean(dir)
}
