package generator

import "go.eggybyte.com/genex/internal/attribute"

// Context holds the values templates consume. It is built once per Generate
// call and copied per artifact with Package set to that artifact's package.
type Context struct {
	// EntityName is the capitalized entity name.
	EntityName string
	// IDName and IDType describe the resolved identifier attribute and
	// IDIndex is its position in Attributes.
	IDName  string
	IDType  string
	IDIndex int
	// Attributes are the entity fields; DTOAttributes the DTO fields.
	Attributes    attribute.List
	DTOAttributes attribute.List
	// Package is the package of the artifact being rendered.
	Package string
	// BasePackage is the package of the output directory itself.
	BasePackage string
	UseLombok   bool
	GroupID     string
}

// forArtifact returns a copy of c bound to the given package.
func (c Context) forArtifact(pkg string) Context {
	c.Package = pkg
	return c
}
