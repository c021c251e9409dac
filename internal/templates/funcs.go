package templates

import (
	"sort"
	"strings"
	"text/template"
	"unicode"
	"unicode/utf8"

	"github.com/Masterminds/sprig/v3"
	"github.com/go-openapi/inflect"
)

// javaImports maps simple type names to the import they need.
// java.lang types are absent because they need no import.
var javaImports = map[string]string{
	"BigDecimal":     "java.math.BigDecimal",
	"BigInteger":     "java.math.BigInteger",
	"Date":           "java.util.Date",
	"Instant":        "java.time.Instant",
	"List":           "java.util.List",
	"LocalDate":      "java.time.LocalDate",
	"LocalDateTime":  "java.time.LocalDateTime",
	"LocalTime":      "java.time.LocalTime",
	"Map":            "java.util.Map",
	"OffsetDateTime": "java.time.OffsetDateTime",
	"Set":            "java.util.Set",
	"UUID":           "java.util.UUID",
	"ZonedDateTime":  "java.time.ZonedDateTime",
}

// FuncMap returns sprig's text functions plus the naming helpers used by the
// Java templates.
func FuncMap() template.FuncMap {
	funcs := sprig.TxtFuncMap()
	funcs["plural"] = inflect.Pluralize
	funcs["snake"] = inflect.Underscore
	funcs["camel"] = inflect.Camelize
	funcs["upperFirst"] = upperFirst
	funcs["lowerFirst"] = lowerFirst
	funcs["getter"] = getterName
	funcs["setter"] = func(field string) string { return "set" + upperFirst(field) }
	funcs["javaImports"] = JavaImports
	return funcs
}

func getterName(field, typ string) string {
	if typ == "boolean" {
		return "is" + upperFirst(field)
	}
	return "get" + upperFirst(field)
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return inflect.Capitalize(s)
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

// JavaImports returns the sorted, de-duplicated imports needed by the given
// attribute types. Generic arguments such as List<UUID> are inspected too.
func JavaImports(types ...any) []string {
	set := map[string]bool{}
	for _, t := range types {
		for _, typ := range typeNames(t) {
			for _, part := range strings.FieldsFunc(typ, func(r rune) bool {
				return r == '<' || r == '>' || r == ',' || r == ' ' || r == '[' || r == ']'
			}) {
				if imp, ok := javaImports[part]; ok {
					set[imp] = true
				}
			}
		}
	}

	imports := make([]string, 0, len(set))
	for imp := range set {
		imports = append(imports, imp)
	}
	sort.Strings(imports)
	return imports
}

// typeNames accepts a type string, a string slice, or anything exposing
// a Types() []string method.
func typeNames(v any) []string {
	switch t := v.(type) {
	case string:
		return []string{t}
	case []string:
		return t
	case interface{ Types() []string }:
		return t.Types()
	default:
		return nil
	}
}
