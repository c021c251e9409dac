package attribute

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.eggybyte.com/genex/core/errors"
	"go.eggybyte.com/genex/testingx"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		spec    string
		want    List
		skipped []string
	}{
		{
			name: "well formed",
			spec: "id:Long;username:String",
			want: List{{"id", "Long"}, {"username", "String"}},
		},
		{
			name:    "malformed segment dropped",
			spec:    "id:Long;bad;name:String",
			want:    List{{"id", "Long"}, {"name", "String"}},
			skipped: []string{"bad"},
		},
		{
			name:    "empty name or type dropped",
			spec:    ":Long;name:;age:Integer",
			want:    List{{"age", "Integer"}},
			skipped: []string{":Long", "name:"},
		},
		{
			name:    "too many separators dropped",
			spec:    "a:b:c;ok:Boolean",
			want:    List{{"ok", "Boolean"}},
			skipped: []string{"a:b:c"},
		},
		{
			name: "whitespace trimmed",
			spec: "  id : Long ; first name : String ",
			want: List{{"id", "Long"}, {"first name", "String"}},
		},
		{
			name: "trailing separator ignored",
			spec: "id:Long;",
			want: List{{"id", "Long"}},
		},
		{
			name: "trailing empty type tokens ignored",
			spec: "id:Long:;name:String::",
			want: List{{"id", "Long"}, {"name", "String"}},
		},
		{
			name:    "leading empty token kept",
			spec:    ":id:Long;ok:Boolean",
			want:    List{{"ok", "Boolean"}},
			skipped: []string{":id:Long"},
		},
		{
			name: "empty input",
			spec: "",
			want: List{},
		},
		{
			name: "duplicates kept",
			spec: "id:Long;id:String",
			want: List{{"id", "Long"}, {"id", "String"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Parse(tt.spec)
			assert.Equal(t, tt.want, result.Attributes)
			assert.Equal(t, tt.skipped, result.Skipped)
		})
	}
}

func TestParsePreservesOrderForAnyLength(t *testing.T) {
	for n := 1; n <= 25; n++ {
		segments := make([]string, n)
		for i := range segments {
			segments[i] = fmt.Sprintf("f%d:T%d", i, i)
		}

		result := Parse(strings.Join(segments, ";"))

		require.Len(t, result.Attributes, n)
		for i, a := range result.Attributes {
			assert.Equal(t, fmt.Sprintf("f%d", i), a.Name)
			assert.Equal(t, fmt.Sprintf("T%d", i), a.Type)
		}
	}
}

func TestResolveIDType(t *testing.T) {
	tests := []struct {
		name     string
		attrs    List
		explicit string
		want     string
	}{
		{"id attribute", List{{"id", "Long"}, {"name", "String"}}, "", "Long"},
		{"id matched case-insensitively", List{{"name", "String"}, {"ID", "UUID"}}, "", "UUID"},
		{"first attribute fallback", List{{"name", "String"}, {"age", "Integer"}}, "", "String"},
		{"first id wins", List{{"Id", "Long"}, {"id", "String"}}, "", "Long"},
		{"explicit identifier", List{{"code", "String"}, {"id", "Long"}}, "code", "String"},
		{"explicit identifier ignores case", List{{"isbn", "String"}}, "ISBN", "String"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveIDType(tt.attrs, tt.explicit)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveIDTypeUnknownIdentifier(t *testing.T) {
	_, err := ResolveIDType(List{{"name", "String"}}, "missing")

	testingx.AssertError(t, err, errors.CodeUnknownIdentifier)
	assert.Contains(t, err.Error(), `"missing"`)
}

func TestResolveIDTypeEmptyList(t *testing.T) {
	_, err := ResolveIDType(List{}, "")
	testingx.AssertError(t, err, errors.CodeEmptyAttributeList)

	_, err = ResolveIDType(nil, "id")
	testingx.AssertError(t, err, errors.CodeUnknownIdentifier)
}

func TestResolveIDReturnsAttribute(t *testing.T) {
	id, err := ResolveID(List{{"name", "String"}, {"Id", "Long"}}, "")
	require.NoError(t, err)
	assert.Equal(t, Attribute{Name: "Id", Type: "Long"}, id)
}

func TestResolveIDIndex(t *testing.T) {
	tests := []struct {
		name     string
		attrs    List
		explicit string
		want     int
	}{
		{"first of duplicated ids", List{{"id", "Long"}, {"id", "String"}}, "", 0},
		{"id after other fields", List{{"name", "String"}, {"ID", "UUID"}, {"id", "Long"}}, "", 1},
		{"first attribute fallback", List{{"name", "String"}, {"name", "Integer"}}, "", 0},
		{"explicit duplicated name", List{{"age", "Integer"}, {"code", "String"}, {"Code", "Long"}}, "code", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveIDIndex(tt.attrs, tt.explicit)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveIDIndexErrors(t *testing.T) {
	i, err := ResolveIDIndex(List{}, "")
	testingx.AssertError(t, err, errors.CodeEmptyAttributeList)
	assert.Equal(t, -1, i)

	i, err = ResolveIDIndex(List{{"name", "String"}}, "id")
	testingx.AssertError(t, err, errors.CodeUnknownIdentifier)
	assert.Equal(t, -1, i)
}

func TestListNames(t *testing.T) {
	assert.Equal(t, []string{"id", "name"}, List{{"id", "Long"}, {"name", "String"}}.Names())
	assert.Empty(t, List{}.Names())
}
