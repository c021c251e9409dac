package templates

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.eggybyte.com/genex/core/errors"
	"go.eggybyte.com/genex/internal/attribute"
	"go.eggybyte.com/genex/testingx"
)

type renderData struct {
	EntityName    string
	IDName        string
	IDType        string
	IDIndex       int
	Attributes    attribute.List
	DTOAttributes attribute.List
	Package       string
	BasePackage   string
	UseLombok     bool
}

func personData(pkg string, lombok bool) renderData {
	attrs := attribute.List{
		{Name: "id", Type: "Long"},
		{Name: "name", Type: "String"},
		{Name: "active", Type: "boolean"},
		{Name: "born", Type: "LocalDate"},
	}
	return renderData{
		EntityName:    "Person",
		IDName:        "id",
		IDType:        "Long",
		Attributes:    attrs,
		DTOAttributes: attrs[1:],
		Package:       pkg,
		BasePackage:   "com.example",
		UseLombok:     lombok,
	}
}

func render(t *testing.T, loader *Loader, name string, data any) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, loader.Render(&buf, name, data))
	return buf.String()
}

func TestRenderEntity(t *testing.T) {
	out := render(t, NewLoader(), Entity, personData("com.example.model", false))

	assert.True(t, strings.HasPrefix(out, "package com.example.model;\n"))
	assert.Contains(t, out, `@Table(name = "people")`)
	assert.Contains(t, out, "import java.time.LocalDate;")
	assert.Contains(t, out, "    @Id\n    @GeneratedValue\n    private Long id;")
	assert.Contains(t, out, "public boolean isActive()")
	assert.Contains(t, out, "public void setBorn(LocalDate born)")
	assert.Equal(t, 1, strings.Count(out, "@Id"))
}

func TestRenderPluralNames(t *testing.T) {
	tests := []struct {
		entity string
		table  string
		list   string
	}{
		{"Person", "people", "people"},
		{"Order", "orders", "orders"},
		{"OrderLine", "order_lines", "orderLines"},
		{"Category", "categories", "categories"},
	}

	loader := NewLoader()
	for _, tt := range tests {
		t.Run(tt.entity, func(t *testing.T) {
			data := personData("com.example.model", false)
			data.EntityName = tt.entity

			assert.Contains(t, render(t, loader, Entity, data), `@Table(name = "`+tt.table+`")`)
			assert.Contains(t, render(t, loader, LombokEntity, data), `@Table(name = "`+tt.table+`")`)
			assert.Contains(t, render(t, loader, Mapper, data), "> "+tt.list+");")
		})
	}
}

func TestRenderEntityMarksOnlyResolvedID(t *testing.T) {
	data := personData("com.example.model", false)
	data.Attributes = attribute.List{
		{Name: "code", Type: "String"},
		{Name: "id", Type: "Long"},
		{Name: "id", Type: "String"},
	}
	data.IDIndex = 1

	for _, name := range []string{Entity, LombokEntity} {
		t.Run(name, func(t *testing.T) {
			out := render(t, NewLoader(), name, data)
			assert.Equal(t, 1, strings.Count(out, "@Id"))
			assert.Contains(t, out, "    @Id\n    @GeneratedValue\n    private Long id;")
			assert.NotContains(t, out, "@GeneratedValue\n    private String id;")
		})
	}
}

func TestRenderLombokEntity(t *testing.T) {
	out := render(t, NewLoader(), LombokEntity, personData("com.example.model", true))

	assert.Contains(t, out, "@Data")
	assert.Contains(t, out, "import lombok.Builder;")
	assert.NotContains(t, out, "getName")
}

func TestRenderDto(t *testing.T) {
	plain := render(t, NewLoader(), Dto, personData("com.example.dto", false))
	assert.Contains(t, plain, "public class PersonDto {")
	assert.Contains(t, plain, "public String getName()")
	assert.NotContains(t, plain, "private Long id;")
	assert.NotContains(t, plain, "lombok")

	lombok := render(t, NewLoader(), Dto, personData("com.example.dto", true))
	assert.Contains(t, lombok, "import lombok.Data;")
	assert.NotContains(t, lombok, "getName")
}

func TestRenderRepositoryAndMapper(t *testing.T) {
	loader := NewLoader()

	repo := render(t, loader, Repository, personData("com.example.repository", false))
	assert.Contains(t, repo, "import com.example.model.Person;")
	assert.Contains(t, repo, "JpaRepository<Person, Long>")

	mapper := render(t, loader, Mapper, personData("com.example.mapper", false))
	assert.Contains(t, mapper, "import com.example.dto.PersonDto;")
	assert.Contains(t, mapper, "PersonDto toDto(Person person);")
	assert.Contains(t, mapper, "List<PersonDto> toDtoList(List<Person> people);")
}

func TestRenderDefaultPackage(t *testing.T) {
	data := personData("", false)
	data.BasePackage = ""

	out := render(t, NewLoader(), Repository, data)
	assert.False(t, strings.HasPrefix(out, "package"))
	assert.Contains(t, out, "import model.Person;")
}

func TestRenderUnknownTemplate(t *testing.T) {
	err := NewLoader().Render(&bytes.Buffer{}, "missing.tmpl", nil)
	testingx.AssertError(t, err, errors.CodeRender)
}

func TestListTemplates(t *testing.T) {
	names, err := NewLoader().ListTemplates()
	require.NoError(t, err)
	assert.Equal(t, []string{Dto, Entity, Repository, LombokEntity, Mapper}, names)
}

func TestValidateAllTemplates(t *testing.T) {
	require.NoError(t, NewLoader().ValidateAllTemplates())
}

func TestOverrideDir(t *testing.T) {
	dir := t.TempDir()
	testingx.WriteFile(t, dir, Dto, "// custom {{ .EntityName }}")
	testingx.WriteFile(t, dir, "extra.tmpl", "extra")

	loader := NewLoader(WithOverrideDir(dir))

	assert.Equal(t, "// custom Person", render(t, loader, Dto, personData("", false)))
	assert.Contains(t, render(t, loader, Entity, personData("", false)), "public class Person")

	names, err := loader.ListTemplates()
	require.NoError(t, err)
	assert.Contains(t, names, "extra.tmpl")
	assert.Len(t, names, 6)
}

func TestOverrideDirInvalidTemplate(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, Entity), []byte("{{ .Broken "), 0o644))

	err := NewLoader(WithOverrideDir(dir)).ValidateAllTemplates()
	testingx.AssertError(t, err, errors.CodeRender)
}

func TestJavaImports(t *testing.T) {
	attrs := attribute.List{
		{Name: "ids", Type: "List<UUID>"},
		{Name: "total", Type: "BigDecimal"},
		{Name: "name", Type: "String"},
		{Name: "more", Type: "Map<String, BigDecimal>"},
	}

	assert.Equal(t, []string{
		"java.math.BigDecimal",
		"java.util.List",
		"java.util.Map",
		"java.util.UUID",
	}, JavaImports(attrs))
	assert.Equal(t, []string{"java.util.UUID"}, JavaImports("UUID"))
	assert.Empty(t, JavaImports("Long", []string{"int"}, 42))
}

func TestNamingFuncs(t *testing.T) {
	assert.Equal(t, "getName", getterName("name", "String"))
	assert.Equal(t, "isActive", getterName("active", "boolean"))
	assert.Equal(t, "getActive", getterName("active", "Boolean"))
	assert.Equal(t, "", upperFirst(""))
	assert.Equal(t, "orderLine", lowerFirst("OrderLine"))
	assert.Equal(t, "OrderLine", FuncMap()["camel"].(func(string) string)("order_line"))
}
