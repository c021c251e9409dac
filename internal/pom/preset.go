package pom

// Default versions declared by LombokMapstructPreset.
const (
	DefaultLombokVersion                 = "1.18.30"
	DefaultMapstructVersion              = "1.5.5.Final"
	DefaultLombokMapstructBindingVersion = "0.2.0"
	DefaultCompilerPluginVersion         = "3.11.0"
)

// Property keys referenced by the preset's version placeholders.
const (
	MapstructVersionProperty = "org.mapstruct.version"
	LombokVersionProperty    = "lombok.version"
)

// Coordinates used by the preset.
const (
	LombokGroupID                = "org.projectlombok"
	LombokArtifactID             = "lombok"
	MapstructGroupID             = "org.mapstruct"
	MapstructArtifactID          = "mapstruct"
	MapstructProcessorArtifactID = "mapstruct-processor"
	LombokMapstructBindingID     = "lombok-mapstruct-binding"
	CompilerPluginGroupID        = "org.apache.maven.plugins"
	CompilerPluginArtifactID     = "maven-compiler-plugin"
)

// Versions selects the versions written by LombokMapstructPreset.
// Empty fields fall back to the defaults.
type Versions struct {
	Lombok                 string
	Mapstruct              string
	LombokMapstructBinding string
	CompilerPlugin         string
}

// DefaultVersions returns the default preset versions.
func DefaultVersions() Versions {
	return Versions{
		Lombok:                 DefaultLombokVersion,
		Mapstruct:              DefaultMapstructVersion,
		LombokMapstructBinding: DefaultLombokMapstructBindingVersion,
		CompilerPlugin:         DefaultCompilerPluginVersion,
	}
}

func (v Versions) withDefaults() Versions {
	d := DefaultVersions()
	if v.Lombok == "" {
		v.Lombok = d.Lombok
	}
	if v.Mapstruct == "" {
		v.Mapstruct = d.Mapstruct
	}
	if v.LombokMapstructBinding == "" {
		v.LombokMapstructBinding = d.LombokMapstructBinding
	}
	if v.CompilerPlugin == "" {
		v.CompilerPlugin = d.CompilerPlugin
	}
	return v
}

// LombokMapstructPreset returns the request that wires Lombok and MapStruct
// into a project: version properties, the three dependencies and the
// compiler plugin's annotation processor paths. Path is left empty.
func LombokMapstructPreset(versions Versions) MergeRequest {
	v := versions.withDefaults()
	mapstructRef := "${" + MapstructVersionProperty + "}"
	lombokRef := "${" + LombokVersionProperty + "}"

	return MergeRequest{
		Properties: []Property{
			{Key: MapstructVersionProperty, Value: v.Mapstruct},
			{Key: LombokVersionProperty, Value: v.Lombok},
		},
		Dependencies: []Dependency{
			{GroupID: MapstructGroupID, ArtifactID: MapstructArtifactID, Version: mapstructRef},
			{GroupID: MapstructGroupID, ArtifactID: MapstructProcessorArtifactID, Version: mapstructRef},
			{GroupID: LombokGroupID, ArtifactID: LombokArtifactID, Version: lombokRef, Scope: "provided"},
		},
		Plugin: Plugin{
			GroupID:    CompilerPluginGroupID,
			ArtifactID: CompilerPluginArtifactID,
			Version:    v.CompilerPlugin,
			ProcessorPaths: []ProcessorPath{
				{GroupID: LombokGroupID, ArtifactID: LombokArtifactID, Version: lombokRef},
				{GroupID: MapstructGroupID, ArtifactID: MapstructProcessorArtifactID, Version: mapstructRef},
				{GroupID: LombokGroupID, ArtifactID: LombokMapstructBindingID, Version: v.LombokMapstructBinding},
			},
		},
	}
}
