// Package pom reads, queries and mutates Maven project descriptors.
//
// Overview:
//   - Responsibility: Round-trip pom.xml through an XML DOM, merging
//     properties, dependencies and the compiler plugin's annotation
//     processor paths
//   - Key Types: Descriptor, Merger, MergeRequest, MergeReport
//   - Concurrency Model: A Descriptor is not safe for concurrent use; each
//     merge loads its own copy from disk
//   - Error Semantics: DESCRIPTOR_READ for missing or malformed input,
//     DESCRIPTOR_WRITE when the merged document cannot be stored
//   - Performance Notes: The whole document is held in memory
//
// Usage:
//
//	merger := pom.NewMerger(projectfs.New(".", logger), logger)
//	req := pom.LombokMapstructPreset(pom.DefaultVersions())
//	req.Path = "pom.xml"
//	report, err := merger.MergeDependencies(ctx, req)
package pom

import (
	"os"
	"strings"

	"github.com/beevik/etree"

	"go.eggybyte.com/genex/core/errors"
)

const (
	rootTag       = "project"
	defaultIndent = "    "
)

// Dependency is one <dependency> entry.
type Dependency struct {
	GroupID    string
	ArtifactID string
	Version    string
	Scope      string
}

// ProcessorPath is one annotationProcessorPaths/path entry.
type ProcessorPath struct {
	GroupID    string
	ArtifactID string
	Version    string
}

// Property is one <properties> entry.
type Property struct {
	Key   string
	Value string
}

// Plugin describes a build plugin and the annotation processor paths its
// configuration declares.
type Plugin struct {
	GroupID        string
	ArtifactID     string
	Version        string
	ProcessorPaths []ProcessorPath
}

// Descriptor is an in-memory pom.xml. Content it does not touch, whitespace,
// comments, CDATA sections and attributes included, is written back as read.
// Elements it creates are indented with the unit the document already uses.
type Descriptor struct {
	doc    *etree.Document
	indent string
}

// Parse reads a descriptor from data. The root element must be <project>.
func Parse(data []byte) (*Descriptor, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.PreserveCData = true
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, errors.Wrapf(errors.CodeDescriptorRead, "pom.Parse", err, "malformed descriptor")
	}

	root := doc.Root()
	if root == nil {
		return nil, errors.New(errors.CodeDescriptorRead, "descriptor has no root element")
	}
	if root.Tag != rootTag {
		return nil, errors.Newf(errors.CodeDescriptorRead, "descriptor root is <%s>, want <%s>", root.Tag, rootTag)
	}
	return &Descriptor{doc: doc, indent: detectIndent(root)}, nil
}

// Load reads and parses the descriptor at path.
func Load(path string) (*Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.CodeDescriptorRead, "pom.Load", err, "read %s", path)
	}
	d, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(errors.CodeDescriptorRead, "pom.Load", err, "parse %s", path)
	}
	return d, nil
}

// Bytes serializes the descriptor.
func (d *Descriptor) Bytes() ([]byte, error) {
	data, err := d.doc.WriteToBytes()
	if err != nil {
		return nil, errors.Wrap(errors.CodeDescriptorWrite, "pom.Bytes", err)
	}
	return data, nil
}

func (d *Descriptor) root() *etree.Element {
	return d.doc.Root()
}

// GroupID returns the project groupId, falling back to the parent's.
func (d *Descriptor) GroupID() string {
	if g := childText(d.root(), "groupId"); g != "" {
		return g
	}
	if parent := d.root().SelectElement("parent"); parent != nil {
		return childText(parent, "groupId")
	}
	return ""
}

// Property returns the value of a <properties> entry.
func (d *Descriptor) Property(key string) (string, bool) {
	props := d.root().SelectElement("properties")
	if props == nil {
		return "", false
	}
	el := props.SelectElement(key)
	if el == nil {
		return "", false
	}
	return el.Text(), true
}

// SetProperty sets key to value, creating <properties> when needed. An
// existing entry is overwritten in place. It reports whether an entry
// already existed.
func (d *Descriptor) SetProperty(key, value string) bool {
	props := d.ensureChild(d.root(), "properties")
	if el := props.SelectElement(key); el != nil {
		el.SetText(value)
		return true
	}
	el := etree.NewElement(key)
	el.SetText(value)
	d.appendElement(props, el)
	return false
}

// Dependencies returns the declared <dependencies> in document order.
func (d *Descriptor) Dependencies() []Dependency {
	deps := d.root().SelectElement("dependencies")
	if deps == nil {
		return nil
	}
	var out []Dependency
	for _, el := range deps.SelectElements("dependency") {
		out = append(out, Dependency{
			GroupID:    childText(el, "groupId"),
			ArtifactID: childText(el, "artifactId"),
			Version:    childText(el, "version"),
			Scope:      childText(el, "scope"),
		})
	}
	return out
}

// HasDependency reports whether a dependency with the given coordinates is declared.
func (d *Descriptor) HasDependency(groupID, artifactID string) bool {
	for _, dep := range d.Dependencies() {
		if dep.GroupID == groupID && dep.ArtifactID == artifactID {
			return true
		}
	}
	return false
}

// AddDependency appends dep to <dependencies>, creating it when needed.
// Existing declarations are not consulted.
func (d *Descriptor) AddDependency(dep Dependency) {
	deps := d.ensureChild(d.root(), "dependencies")
	el := etree.NewElement("dependency")
	el.CreateElement("groupId").SetText(dep.GroupID)
	el.CreateElement("artifactId").SetText(dep.ArtifactID)
	if dep.Version != "" {
		el.CreateElement("version").SetText(dep.Version)
	}
	if dep.Scope != "" {
		el.CreateElement("scope").SetText(dep.Scope)
	}
	d.appendElement(deps, el)
}

// Plugins returns the build/plugins/plugin entries whose artifactId matches.
func (d *Descriptor) Plugins(artifactID string) []Plugin {
	var out []Plugin
	for _, el := range d.pluginElements(artifactID) {
		p := Plugin{
			GroupID:    childText(el, "groupId"),
			ArtifactID: childText(el, "artifactId"),
			Version:    childText(el, "version"),
		}
		if cfg := el.SelectElement("configuration"); cfg != nil {
			if paths := cfg.SelectElement("annotationProcessorPaths"); paths != nil {
				for _, path := range paths.SelectElements("path") {
					p.ProcessorPaths = append(p.ProcessorPaths, ProcessorPath{
						GroupID:    childText(path, "groupId"),
						ArtifactID: childText(path, "artifactId"),
						Version:    childText(path, "version"),
					})
				}
			}
		}
		out = append(out, p)
	}
	return out
}

// MergePlugin declares plugin under build/plugins.
//
// Without a matching artifactId a new plugin is appended. Otherwise every
// match is removed, the first one gets plugin's configuration in place of
// its own and is appended again, so exactly one entry remains. It reports
// whether an existing entry was replaced.
func (d *Descriptor) MergePlugin(plugin Plugin) bool {
	plugins := d.ensureChild(d.ensureChild(d.root(), "build"), "plugins")

	matches := d.pluginElements(plugin.ArtifactID)
	if len(matches) == 0 {
		el := etree.NewElement("plugin")
		if plugin.GroupID != "" {
			el.CreateElement("groupId").SetText(plugin.GroupID)
		}
		el.CreateElement("artifactId").SetText(plugin.ArtifactID)
		if plugin.Version != "" {
			el.CreateElement("version").SetText(plugin.Version)
		}
		el.AddChild(configurationElement(plugin.ProcessorPaths))
		d.appendElement(plugins, el)
		return false
	}

	// The configuration is swapped while kept is still attached so its depth is known.
	kept := matches[0]
	if cfg := kept.SelectElement("configuration"); cfg != nil {
		removeElement(kept, cfg)
	}
	d.appendElement(kept, configurationElement(plugin.ProcessorPaths))

	for _, el := range matches {
		removeElement(plugins, el)
	}
	insertElement(plugins, kept, d.indentAt(depth(plugins)+1), d.indentAt(depth(plugins)))
	return true
}

func (d *Descriptor) pluginElements(artifactID string) []*etree.Element {
	build := d.root().SelectElement("build")
	if build == nil {
		return nil
	}
	plugins := build.SelectElement("plugins")
	if plugins == nil {
		return nil
	}
	var out []*etree.Element
	for _, el := range plugins.SelectElements("plugin") {
		if childText(el, "artifactId") == artifactID {
			out = append(out, el)
		}
	}
	return out
}

func configurationElement(paths []ProcessorPath) *etree.Element {
	cfg := etree.NewElement("configuration")
	list := cfg.CreateElement("annotationProcessorPaths")
	for _, p := range paths {
		path := list.CreateElement("path")
		path.CreateElement("groupId").SetText(p.GroupID)
		path.CreateElement("artifactId").SetText(p.ArtifactID)
		path.CreateElement("version").SetText(p.Version)
	}
	return cfg
}

func (d *Descriptor) ensureChild(parent *etree.Element, tag string) *etree.Element {
	if el := parent.SelectElement(tag); el != nil {
		return el
	}
	el := etree.NewElement(tag)
	d.appendElement(parent, el)
	return el
}

// appendElement indents the detached element el for its new depth and
// appends it as the last child element of parent.
func (d *Descriptor) appendElement(parent, el *etree.Element) {
	level := depth(parent)
	d.indentTree(el, level+1)
	insertElement(parent, el, d.indentAt(level+1), d.indentAt(level))
}

// indentTree puts each child element of el on its own line, recursively.
// Elements holding only text are left alone.
func (d *Descriptor) indentTree(el *etree.Element, level int) {
	children := el.ChildElements()
	if len(children) == 0 {
		return
	}
	for _, child := range children {
		el.InsertChildAt(child.Index(), etree.NewText("\n"+d.indentAt(level+1)))
		d.indentTree(child, level+1)
	}
	el.AddChild(etree.NewText("\n" + d.indentAt(level)))
}

func (d *Descriptor) indentAt(level int) string {
	return strings.Repeat(d.indent, level)
}

// insertElement places el after the last child of parent, before the
// whitespace that closes parent when there is some.
func insertElement(parent, el *etree.Element, lead, closing string) {
	if n := len(parent.Child); n > 0 && isBlank(parent.Child[n-1]) {
		parent.InsertChildAt(n-1, etree.NewText("\n"+lead))
		parent.InsertChildAt(n, el)
		return
	}
	parent.AddChild(etree.NewText("\n" + lead))
	parent.AddChild(el)
	parent.AddChild(etree.NewText("\n" + closing))
}

// removeElement detaches el from parent along with the whitespace that
// leads up to it.
func removeElement(parent, el *etree.Element) {
	if i := el.Index(); i > 0 && isBlank(parent.Child[i-1]) {
		parent.RemoveChildAt(i - 1)
	}
	parent.RemoveChild(el)
}

// depth counts the ancestors of el below the document node; the root element is at 0.
func depth(el *etree.Element) int {
	n := 0
	for p := el.Parent(); p != nil && p.Parent() != nil; p = p.Parent() {
		n++
	}
	return n
}

func isBlank(t etree.Token) bool {
	cd, ok := t.(*etree.CharData)
	return ok && !cd.IsCData() && strings.TrimSpace(cd.Data) == ""
}

// detectIndent returns the indentation of the root's first indented child,
// falling back to four spaces.
func detectIndent(root *etree.Element) string {
	for _, t := range root.Child {
		cd, ok := t.(*etree.CharData)
		if !ok || !isBlank(cd) {
			continue
		}
		if i := strings.LastIndexByte(cd.Data, '\n'); i >= 0 && i < len(cd.Data)-1 {
			return cd.Data[i+1:]
		}
	}
	return defaultIndent
}

func childText(parent *etree.Element, tag string) string {
	if el := parent.SelectElement(tag); el != nil {
		return strings.TrimSpace(el.Text())
	}
	return ""
}
