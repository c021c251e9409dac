package generator

import "go.eggybyte.com/genex/internal/templates"

// Artifact describes one generated source file.
type Artifact struct {
	// Kind names the artifact in logs and reports.
	Kind string
	// SubDir is the directory below the output directory.
	SubDir string
	// Suffix is appended to the entity name to form the file name.
	Suffix string
	// Template selects the template for a request.
	Template func(Request) string
	// Enabled reports whether the artifact is generated; nil means always.
	Enabled func(Request) bool
}

// FileName returns the file name for entity with the given extension.
func (a Artifact) FileName(entity, ext string) string {
	return entity + a.Suffix + ext
}

// Artifacts lists the generated files in generation order.
var Artifacts = []Artifact{
	{
		Kind:   "entity",
		SubDir: "model",
		Template: func(r Request) string {
			if r.UseLombok {
				return templates.LombokEntity
			}
			return templates.Entity
		},
	},
	{
		Kind:     "dto",
		SubDir:   "dto",
		Suffix:   "Dto",
		Template: func(Request) string { return templates.Dto },
	},
	{
		Kind:     "mapper",
		SubDir:   "mapper",
		Suffix:   "Mapper",
		Template: func(Request) string { return templates.Mapper },
		Enabled:  func(r Request) bool { return r.GenerateMapper },
	},
	{
		Kind:     "repository",
		SubDir:   "repository",
		Suffix:   "Repository",
		Template: func(Request) string { return templates.Repository },
		Enabled:  func(r Request) bool { return r.GenerateRepository },
	},
}
