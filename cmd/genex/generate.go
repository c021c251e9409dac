package main

import (
	"context"

	"github.com/spf13/cobra"

	"go.eggybyte.com/genex/core/errors"
	"go.eggybyte.com/genex/core/log"
	"go.eggybyte.com/genex/internal/configschema"
	"go.eggybyte.com/genex/internal/generator"
	"go.eggybyte.com/genex/internal/pom"
	"go.eggybyte.com/genex/internal/projectfs"
	"go.eggybyte.com/genex/internal/templates"
	"go.eggybyte.com/genex/internal/ui"
)

// generateOptions holds the raw generate flags. Empty strings select the
// configured default.
type generateOptions struct {
	Entity        string
	EntityID      string
	Attributes    string
	DTOAttributes string
	OutputDir     string
	Repository    string
	Mapper        string
	Lombok        string
}

var genOpts generateOptions

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate entity, DTO, mapper and repository sources",
	Long: `Generate Java sources for one entity.

Files are written below the output directory:
  model/<Entity>.java
  dto/<Entity>Dto.java
  mapper/<Entity>Mapper.java          (unless --mapper false)
  repository/<Entity>Repository.java  (unless --repository false)

The output directory defaults to base_dir followed by the project groupId.
Packages are derived from the path below the source root (java).

Examples:
  genex generate --entity person --attributes 'id:Long;name:String'
  genex generate --entity order --attributes 'orderId:UUID;total:BigDecimal' \
    --entity-id orderId --dto-attributes 'total:BigDecimal' --mapper f`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		report, err := runGenerate(cmd.Context(), cfg, genOpts, logger)
		if err != nil {
			return err
		}
		for _, segment := range report.SkippedSegments {
			ui.Warning("Skipped malformed attribute segment %q", segment)
		}
		for i, file := range report.Files {
			ui.Step(i+1, len(report.Files), "%s", file)
		}
		ui.Result(report, "Generated %d files for %s", len(report.Files), report.EntityName)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	f := generateCmd.Flags()
	f.StringVar(&genOpts.Entity, "entity", "", "Entity name (first letter is capitalized)")
	f.StringVar(&genOpts.Attributes, "attributes", "", "Entity attributes as 'name:Type;name:Type'")
	f.StringVar(&genOpts.DTOAttributes, "dto-attributes", "", "DTO attributes (default: the entity attributes)")
	f.StringVar(&genOpts.EntityID, "entity-id", "", "Identifier attribute (default: id, else the first attribute)")
	f.StringVar(&genOpts.OutputDir, "output-dir", "", "Output directory (default: base_dir/<groupId path>)")
	f.StringVar(&genOpts.Repository, "repository", "", "Generate the repository: true|t|false|f")
	f.StringVar(&genOpts.Mapper, "mapper", "", "Generate the mapper: true|t|false|f")
	f.StringVar(&genOpts.Lombok, "lombok", "", "Use Lombok: auto|true|false")
	_ = generateCmd.MarkFlagRequired("entity")
	_ = generateCmd.MarkFlagRequired("attributes")
}

func runGenerate(ctx context.Context, config *configschema.Config, opts generateOptions, logger log.Logger) (*generator.Report, error) {
	repository, err := boolFlag("--repository", opts.Repository, config.Generate.Repository)
	if err != nil {
		return nil, err
	}
	mapper, err := boolFlag("--mapper", opts.Mapper, config.Generate.Mapper)
	if err != nil {
		return nil, err
	}
	lombokValue := opts.Lombok
	if lombokValue == "" {
		lombokValue = config.Generate.Lombok
	}
	lombok, err := parseLombokMode("--lombok", lombokValue)
	if err != nil {
		return nil, err
	}

	fs := projectfs.New("", logger)

	groupID := config.GroupID
	var desc *pom.Descriptor
	if lombok.auto || (opts.OutputDir == "" && groupID == "") {
		desc, err = loadDescriptor(fs, config.Descriptor)
		if err != nil {
			return nil, err
		}
	}

	useLombok := lombok.enabled
	if lombok.auto {
		useLombok = desc != nil && desc.HasDependency(pom.LombokGroupID, pom.LombokArtifactID)
		logger.Debug("lombok detection", log.Bool("lombok", useLombok), log.Str("descriptor", config.Descriptor))
	}
	if groupID == "" && desc != nil {
		groupID = desc.GroupID()
	}

	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir = config.OutputDir(groupID)
	}

	loader, err := newTemplateLoader(config.TemplatesDir)
	if err != nil {
		return nil, err
	}

	gen := generator.New(fs, loader, logger, generator.WithSourceRoot(config.SourceRoot))
	return gen.Generate(ctx, generator.Request{
		EntityName:         opts.Entity,
		EntityID:           opts.EntityID,
		Attributes:         opts.Attributes,
		DTOAttributes:      opts.DTOAttributes,
		OutputDir:          outputDir,
		UseLombok:          useLombok,
		GenerateRepository: repository,
		GenerateMapper:     mapper,
		GroupID:            groupID,
	})
}

// loadDescriptor returns nil without error when path does not exist.
func loadDescriptor(fs *projectfs.ProjectFS, path string) (*pom.Descriptor, error) {
	exists, err := fs.FileExists(path)
	if err != nil || !exists {
		return nil, err
	}
	return pom.Load(fs.Path(path))
}

func newTemplateLoader(overrideDir string) (*templates.Loader, error) {
	if overrideDir == "" {
		return templates.NewLoader(), nil
	}
	loader := templates.NewLoader(templates.WithOverrideDir(overrideDir))
	if err := loader.ValidateAllTemplates(); err != nil {
		return nil, errors.Wrapf(errors.CodeInvalidConfig, "templates", err, "templates_dir %s", overrideDir)
	}
	return loader, nil
}
