package main

import (
	"context"

	"github.com/spf13/cobra"

	"go.eggybyte.com/genex/core/log"
	"go.eggybyte.com/genex/internal/configschema"
	"go.eggybyte.com/genex/internal/pom"
	"go.eggybyte.com/genex/internal/projectfs"
	"go.eggybyte.com/genex/internal/ui"
)

var (
	pomPath string
	dedupe  bool
)

var addLombokMapstructCmd = &cobra.Command{
	Use:   "add-lombok-mapstruct",
	Short: "Declare Lombok and MapStruct in pom.xml",
	Long: `Add the Lombok and MapStruct version properties, dependencies and
annotation processor paths to the project descriptor.

Re-running replaces the compiler plugin configuration but appends the
dependencies again unless --dedupe (or dedupe_dependencies) is set.

Examples:
  genex add-lombok-mapstruct
  genex add-lombok-mapstruct --pom service/pom.xml --dedupe`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		path := cfg.Descriptor
		if cmd.Flags().Changed("pom") {
			path = pomPath
		}
		dedupeDeps := cfg.DedupeDependencies
		if cmd.Flags().Changed("dedupe") {
			dedupeDeps = dedupe
		}

		report, err := runAddLombokMapstruct(cmd.Context(), cfg, path, dedupeDeps, logger)
		if err != nil {
			return err
		}
		ui.Result(report, "Updated %s: %d properties, %d dependencies added, %d skipped",
			report.Path, len(report.PropertiesSet), len(report.DependenciesAdded), len(report.DependenciesSkipped))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addLombokMapstructCmd)
	addLombokMapstructCmd.Flags().StringVar(&pomPath, "pom", "pom.xml", "Project descriptor")
	addLombokMapstructCmd.Flags().BoolVar(&dedupe, "dedupe", false, "Skip dependencies that are already declared")
}

func runAddLombokMapstruct(ctx context.Context, config *configschema.Config, path string, dedupeDeps bool, logger log.Logger) (*pom.MergeReport, error) {
	req := pom.LombokMapstructPreset(pom.Versions{
		Lombok:                 config.Versions.Lombok,
		Mapstruct:              config.Versions.Mapstruct,
		LombokMapstructBinding: config.Versions.LombokMapstructBinding,
		CompilerPlugin:         config.Versions.CompilerPlugin,
	})
	req.Path = path
	req.DedupeDependencies = dedupeDeps

	merger := pom.NewMerger(projectfs.New("", logger), logger)
	return merger.MergeDependencies(ctx, req)
}
