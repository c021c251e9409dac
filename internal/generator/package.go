package generator

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"go.eggybyte.com/genex/core/errors"
)

// DefaultSourceRoot is the directory name that marks the Java source root.
const DefaultSourceRoot = "java"

// DerivePackage converts the part of dir below the first segment equal to
// sourceRoot into a dotted package name.
//
// Both '/' and '\' are treated as separators, and empty and "." segments are
// ignored. A directory that is the source root itself yields the empty
// (default) package.
func DerivePackage(dir, sourceRoot string) (string, error) {
	normalized := strings.ReplaceAll(dir, `\`, "/")

	var segments []string
	for _, seg := range strings.Split(normalized, "/") {
		if seg == "" || seg == "." {
			continue
		}
		segments = append(segments, seg)
	}

	for i, seg := range segments {
		if seg == sourceRoot {
			return strings.Join(segments[i+1:], "."), nil
		}
	}

	return "", errors.Build(errors.CodePackageDerivation).
		WithOp("generator.DerivePackage").
		WithMsgf("output path %q has no %q source root segment", dir, sourceRoot).
		Err()
}

// NormalizeEntityName upper-cases the first character and leaves the rest untouched.
func NormalizeEntityName(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return string(unicode.ToUpper(r)) + name[size:]
}
