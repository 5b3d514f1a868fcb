// Generate command renders Go source from a schema file.
package main

import (
	"github.com/spf13/cobra"

	"github.com/pthm/dynamix/lib/generator"
)

var (
	genDir     string
	genPackage string
	genDryRun  bool
	genWatch   bool
)

var generateCmd = &cobra.Command{
	Use:   "generate [schema]",
	Short: "Generate declarative types from a schema",
	Long: `Generate renders one Go file per schema class into the output directory.

The schema path defaults to the "schema" key in dynamix.yaml, then to
schema.yaml in the working directory.

Example:
  dynamix generate
  dynamix generate people.yaml --dir ./people --package people
  dynamix generate --watch`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&genDir, "dir", "", "output directory (default: config \"dir\" or \".\")")
	generateCmd.Flags().StringVar(&genPackage, "package", "", "override the schema's package name")
	generateCmd.Flags().BoolVar(&genDryRun, "dry-run", false, "show what would be generated without writing files")
	generateCmd.Flags().BoolVar(&genWatch, "watch", false, "re-generate whenever the schema file changes")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(configFile)
	if err != nil {
		return err
	}

	schemaPath := cfg.GetString(cfgKeySchema)
	if len(args) > 0 {
		schemaPath = args[0]
	}
	outDir := cfg.GetString(cfgKeyDir)
	if genDir != "" {
		outDir = genDir
	}
	pkg := cfg.GetString(cfgKeyPackage)
	if genPackage != "" {
		pkg = genPackage
	}

	gen := generator.New(generator.Options{
		OutDir:  outDir,
		Package: pkg,
		DryRun:  genDryRun,
	})

	if err := gen.Generate(schemaPath); err != nil {
		return err
	}

	if !genWatch {
		return nil
	}

	return watchSchema(schemaPath, gen)
}
