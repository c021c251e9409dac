package pom

import (
	"context"

	"go.eggybyte.com/genex/core/errors"
	"go.eggybyte.com/genex/core/log"
)

// Store reads descriptors and replaces them atomically.
type Store interface {
	ReadFile(path string) ([]byte, error)
	WriteFileAtomic(path string, data []byte) error
}

// MergeRequest lists what to declare in the descriptor at Path.
type MergeRequest struct {
	Path         string
	Properties   []Property
	Dependencies []Dependency
	Plugin       Plugin
	// DedupeDependencies skips dependencies whose groupId and artifactId
	// are already declared. When false every run appends again.
	DedupeDependencies bool
}

// MergeReport summarizes a merge.
type MergeReport struct {
	Path                  string
	PropertiesSet         []string
	PropertiesOverwritten []string
	DependenciesAdded     []Dependency
	DependenciesSkipped   []Dependency
	PluginReplaced        bool
}

// Merger applies MergeRequests to descriptors on disk.
type Merger struct {
	store  Store
	logger log.Logger
}

// NewMerger creates a Merger. A nil logger discards output.
func NewMerger(store Store, logger log.Logger) *Merger {
	if logger == nil {
		logger = log.Nop()
	}
	return &Merger{store: store, logger: logger}
}

// MergeDependencies reads the descriptor, sets properties, appends
// dependencies, merges the plugin and writes the result back.
//
// The descriptor is read fresh on every call and written only after the
// whole merge succeeded in memory, so a failure leaves the file unchanged.
func (m *Merger) MergeDependencies(ctx context.Context, req MergeRequest) (*MergeReport, error) {
	if req.Path == "" {
		return nil, errors.New(errors.CodeInvalidArgument, "descriptor path is required")
	}
	if req.Plugin.ArtifactID == "" {
		return nil, errors.New(errors.CodeInvalidArgument, "plugin artifactId is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(errors.CodeCanceled, "pom.MergeDependencies", err)
	}
	logger := m.logger.With(log.Str("descriptor", req.Path))

	data, err := m.store.ReadFile(req.Path)
	if err != nil {
		return nil, errors.Wrapf(errors.CodeDescriptorRead, "pom.MergeDependencies", err, "read %s", req.Path)
	}
	desc, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(errors.CodeDescriptorRead, "pom.MergeDependencies", err, "parse %s", req.Path)
	}

	report := &MergeReport{Path: req.Path}

	for _, prop := range req.Properties {
		if desc.SetProperty(prop.Key, prop.Value) {
			report.PropertiesOverwritten = append(report.PropertiesOverwritten, prop.Key)
		}
		report.PropertiesSet = append(report.PropertiesSet, prop.Key)
	}

	for _, dep := range req.Dependencies {
		if req.DedupeDependencies && desc.HasDependency(dep.GroupID, dep.ArtifactID) {
			logger.Debug("dependency already declared", log.Str("artifact", dep.GroupID+":"+dep.ArtifactID))
			report.DependenciesSkipped = append(report.DependenciesSkipped, dep)
			continue
		}
		desc.AddDependency(dep)
		report.DependenciesAdded = append(report.DependenciesAdded, dep)
	}

	report.PluginReplaced = desc.MergePlugin(req.Plugin)

	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(errors.CodeCanceled, "pom.MergeDependencies", err)
	}

	out, err := desc.Bytes()
	if err != nil {
		return nil, err
	}
	if err := m.store.WriteFileAtomic(req.Path, out); err != nil {
		return nil, errors.Wrapf(errors.CodeDescriptorWrite, "pom.MergeDependencies", err, "write %s", req.Path)
	}

	logger.Info("descriptor merged",
		log.Int("properties", len(report.PropertiesSet)),
		log.Int("dependencies_added", len(report.DependenciesAdded)),
		log.Int("dependencies_skipped", len(report.DependenciesSkipped)),
		log.Bool("plugin_replaced", report.PluginReplaced))
	return report, nil
}
