// Package generator turns an entity description into Java source artifacts.
//
// Overview:
//   - Responsibility: Normalize the entity name, parse attributes, resolve the
//     identifier, and render each enabled artifact into its package directory
//   - Key Types: Generator, Request, Context, Artifact, Report
//   - Concurrency Model: One Generate call runs sequentially; no state is shared
//     between calls
//   - Error Semantics: Coded errors (core/errors); artifacts written before a
//     failure stay on disk
//   - Performance Notes: Each artifact is streamed straight into its file
//
// Usage:
//
//	gen := generator.New(projectfs.New("", logger), templates.NewLoader(), logger)
//	report, err := gen.Generate(ctx, generator.Request{
//	  EntityName: "person",
//	  Attributes: "id:Long;name:String",
//	  OutputDir:  "src/main/java/com/example",
//	})
package generator

import (
	"context"
	"io"
	"path/filepath"

	"go.eggybyte.com/genex/core/errors"
	"go.eggybyte.com/genex/core/log"
	"go.eggybyte.com/genex/internal/attribute"
)

// DefaultExtension is the extension of generated files.
const DefaultExtension = ".java"

// Renderer renders a named template into w.
type Renderer interface {
	Render(w io.Writer, name string, data any) error
}

// FileSystem creates artifact directories and files.
type FileSystem interface {
	EnsureDirectory(path string) error
	Create(path string) (io.WriteCloser, error)
}

// Request describes one generation run.
type Request struct {
	EntityName string
	// EntityID names the identifier attribute; empty selects "id" or the first attribute.
	EntityID string
	// Attributes is the "name:Type;..." entity specification.
	Attributes string
	// DTOAttributes is the DTO specification; empty reuses Attributes.
	DTOAttributes      string
	OutputDir          string
	UseLombok          bool
	GenerateRepository bool
	GenerateMapper     bool
	GroupID            string
}

// Report summarizes a generation run.
type Report struct {
	EntityName string
	IDType     string
	// Files lists written files in generation order.
	Files []string
	// SkippedSegments lists malformed attribute segments that were dropped.
	SkippedSegments []string
}

// Generator renders artifacts through a Renderer onto a FileSystem.
type Generator struct {
	fs         FileSystem
	renderer   Renderer
	logger     log.Logger
	sourceRoot string
	extension  string
}

// Option configures a Generator.
type Option func(*Generator)

// WithSourceRoot sets the source-root marker used for package derivation.
func WithSourceRoot(marker string) Option {
	return func(g *Generator) {
		if marker != "" {
			g.sourceRoot = marker
		}
	}
}

// WithExtension sets the extension of generated files.
func WithExtension(ext string) Option {
	return func(g *Generator) {
		if ext != "" {
			g.extension = ext
		}
	}
}

// New creates a Generator. A nil logger discards output.
func New(fs FileSystem, renderer Renderer, logger log.Logger, opts ...Option) *Generator {
	if logger == nil {
		logger = log.Nop()
	}
	g := &Generator{
		fs:         fs,
		renderer:   renderer,
		logger:     logger,
		sourceRoot: DefaultSourceRoot,
		extension:  DefaultExtension,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate renders the entity and DTO, plus the mapper and repository when
// requested, under req.OutputDir.
func (g *Generator) Generate(ctx context.Context, req Request) (*Report, error) {
	if req.EntityName == "" {
		return nil, errors.New(errors.CodeInvalidArgument, "entity name is required")
	}

	entityName := NormalizeEntityName(req.EntityName)
	logger := g.logger.With(log.Str("entity", entityName))

	parsed := attribute.Parse(req.Attributes)
	skipped := parsed.Skipped

	dtoAttributes := parsed.Attributes
	if req.DTOAttributes != "" {
		dtoParsed := attribute.Parse(req.DTOAttributes)
		dtoAttributes = dtoParsed.Attributes
		skipped = append(skipped, dtoParsed.Skipped...)
	}
	if len(skipped) > 0 {
		logger.Warn("dropped malformed attribute segments", "segments", skipped)
	}

	idIndex, err := attribute.ResolveIDIndex(parsed.Attributes, req.EntityID)
	if err != nil {
		return nil, err
	}
	id := parsed.Attributes[idIndex]

	basePackage, err := DerivePackage(req.OutputDir, g.sourceRoot)
	if err != nil {
		return nil, err
	}

	genCtx := Context{
		EntityName:    entityName,
		IDName:        id.Name,
		IDType:        id.Type,
		IDIndex:       idIndex,
		Attributes:    parsed.Attributes,
		DTOAttributes: dtoAttributes,
		BasePackage:   basePackage,
		UseLombok:     req.UseLombok,
		GroupID:       req.GroupID,
	}

	report := &Report{
		EntityName:      entityName,
		IDType:          id.Type,
		SkippedSegments: skipped,
	}

	for _, artifact := range Artifacts {
		if artifact.Enabled != nil && !artifact.Enabled(req) {
			logger.Debug("artifact disabled", log.Str("kind", artifact.Kind))
			continue
		}
		if err := ctx.Err(); err != nil {
			return report, errors.Wrap(errors.CodeCanceled, "generator.Generate", err)
		}

		path, err := g.writeArtifact(artifact, req, genCtx)
		if err != nil {
			logger.Error(err, "artifact generation failed", log.Str("kind", artifact.Kind))
			return report, err
		}
		report.Files = append(report.Files, path)
		logger.Info("artifact generated", log.Str("kind", artifact.Kind), log.Str("path", path))
	}

	return report, nil
}

func (g *Generator) writeArtifact(artifact Artifact, req Request, genCtx Context) (path string, err error) {
	dir := filepath.Join(req.OutputDir, artifact.SubDir)
	if err := g.fs.EnsureDirectory(dir); err != nil {
		return "", err
	}

	pkg, err := DerivePackage(dir, g.sourceRoot)
	if err != nil {
		return "", err
	}

	path = filepath.Join(dir, artifact.FileName(genCtx.EntityName, g.extension))
	w, err := g.fs.Create(path)
	if err != nil {
		return "", err
	}
	defer func() {
		if closeErr := w.Close(); closeErr != nil && err == nil {
			err = errors.Wrapf(errors.CodeIO, "generator.writeArtifact", closeErr, "close %s", path)
		}
	}()

	if err := g.renderer.Render(w, artifact.Template(req), genCtx.forArtifact(pkg)); err != nil {
		return "", err
	}
	return path, nil
}
