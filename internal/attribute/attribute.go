// Package attribute parses attribute specifications and resolves identifier types.
//
// Overview:
//   - Responsibility: Turn "name:Type;name:Type" strings into ordered attributes
//   - Key Types: Attribute, List, ParseResult
//   - Concurrency Model: Pure functions, safe for concurrent use
//   - Error Semantics: Parsing is lenient (malformed segments are reported, not raised);
//     identifier resolution returns coded errors
//   - Performance Notes: Single pass over the input
//
// Usage:
//
//	result := attribute.Parse("id:Long;name:String")
//	idType, err := attribute.ResolveIDType(result.Attributes, "")
package attribute

import (
	"strings"

	"go.eggybyte.com/genex/core/errors"
)

const (
	// SegmentSeparator separates attributes.
	SegmentSeparator = ";"
	// FieldSeparator separates an attribute's name from its type.
	FieldSeparator = ":"
	// DefaultIDName is the attribute name looked up when no identifier is given.
	DefaultIDName = "id"
)

// Attribute is a single (name, type) pair.
type Attribute struct {
	Name string
	Type string
}

// List is an ordered attribute sequence. Order drives generated field order
// and duplicate names are kept.
type List []Attribute

// Names returns the attribute names in order.
func (l List) Names() []string {
	names := make([]string, len(l))
	for i, a := range l {
		names[i] = a.Name
	}
	return names
}

// Types returns the attribute types in order.
func (l List) Types() []string {
	types := make([]string, len(l))
	for i, a := range l {
		types[i] = a.Type
	}
	return types
}

// ParseResult is the outcome of a lenient parse.
type ParseResult struct {
	Attributes List
	// Skipped holds the trimmed segments that did not form a name:type pair.
	Skipped []string
}

// Parse splits spec into attributes.
//
// Each ';'-separated segment must split on ':' into exactly two non-empty
// trimmed tokens, trailing empty tokens ignored ("id:Long:" is accepted).
// Other segments are dropped and recorded in Skipped; blank segments (for
// example after a trailing ';') are ignored.
func Parse(spec string) ParseResult {
	result := ParseResult{Attributes: List{}}
	if strings.TrimSpace(spec) == "" {
		return result
	}

	for _, segment := range strings.Split(spec, SegmentSeparator) {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}

		parts := trimTrailingEmpty(strings.Split(segment, FieldSeparator))
		if len(parts) != 2 {
			result.Skipped = append(result.Skipped, segment)
			continue
		}

		name := strings.TrimSpace(parts[0])
		typ := strings.TrimSpace(parts[1])
		if name == "" || typ == "" {
			result.Skipped = append(result.Skipped, segment)
			continue
		}

		result.Attributes = append(result.Attributes, Attribute{Name: name, Type: typ})
	}

	return result
}

func trimTrailingEmpty(parts []string) []string {
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}

// ResolveIDType returns the declared type of the entity identifier.
// See ResolveID for the selection rules.
func ResolveIDType(attrs List, explicitID string) (string, error) {
	id, err := ResolveID(attrs, explicitID)
	if err != nil {
		return "", err
	}
	return id.Type, nil
}

// ResolveID selects the identifier attribute.
//
// With explicitID empty, the first attribute named "id" (case-insensitive)
// wins, falling back to the first attribute. With explicitID set, the first
// case-insensitive match is required.
func ResolveID(attrs List, explicitID string) (Attribute, error) {
	i, err := ResolveIDIndex(attrs, explicitID)
	if err != nil {
		return Attribute{}, err
	}
	return attrs[i], nil
}

// ResolveIDIndex is ResolveID returning the position of the identifier in
// attrs. Only that position is the identifier when names repeat.
func ResolveIDIndex(attrs List, explicitID string) (int, error) {
	if explicitID == "" {
		if len(attrs) == 0 {
			return -1, errors.Build(errors.CodeEmptyAttributeList).
				WithOp("attribute.ResolveID").
				WithMsgf("cannot resolve an identifier without attributes").
				Err()
		}
		if i := attrs.Index(DefaultIDName); i >= 0 {
			return i, nil
		}
		return 0, nil
	}

	if i := attrs.Index(explicitID); i >= 0 {
		return i, nil
	}
	return -1, errors.Build(errors.CodeUnknownIdentifier).
		WithOp("attribute.ResolveID").
		WithMsgf("identifier %q is not one of the entity attributes %v", explicitID, attrs.Names()).
		WithDetails("identifier", explicitID).
		Err()
}

// Find returns the first attribute whose name equals name, ignoring case.
func (l List) Find(name string) (Attribute, bool) {
	if i := l.Index(name); i >= 0 {
		return l[i], true
	}
	return Attribute{}, false
}

// Index returns the position of the first attribute whose name equals name,
// ignoring case, or -1.
func (l List) Index(name string) int {
	for i, a := range l {
		if strings.EqualFold(a.Name, name) {
			return i
		}
	}
	return -1
}
