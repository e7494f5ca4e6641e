package pattern

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeclaration_Render(t *testing.T) {
	// Test: fields appear one per line, three-space indented, in declaration order
	decl := Declaration{
		Keyword:  KeywordStruct,
		TypeName: "Header",
		Fields: []Field{
			{TypeName: "u32", Name: "magic"},
			{TypeName: "u16", Name: "version"},
			{TypeName: "u16", Name: "flags"},
		},
	}

	expected := "struct Header {\n" +
		"   u32 magic;\n" +
		"   u16 version;\n" +
		"   u16 flags;\n" +
		"};\n"
	assert.Equal(t, expected, decl.Render())
}

func TestDeclaration_Render_Union(t *testing.T) {
	// Test: union keyword renders the same shape
	decl := Declaration{
		Keyword:  KeywordUnion,
		TypeName: "Value",
		Fields: []Field{
			{TypeName: "u64", Name: "raw"},
			{TypeName: "double", Name: "real"},
		},
	}

	expected := "union Value {\n" +
		"   u64 raw;\n" +
		"   double real;\n" +
		"};\n"
	assert.Equal(t, expected, decl.Render())
}

func TestDeclaration_Render_ZeroFields(t *testing.T) {
	// Test: zero members still produce a well-formed empty-bodied declaration
	decl := Declaration{Keyword: KeywordStruct, TypeName: "Empty"}

	assert.Equal(t, "struct Empty {\n};\n", decl.Render())
}

func TestDeclaration_Render_Envelope(t *testing.T) {
	// Test: output starts with "<keyword> <name> {\n" and ends with "};\n"
	decl := Declaration{
		Keyword:  KeywordStruct,
		TypeName: "T",
		Fields:   []Field{{TypeName: "u8", Name: "b"}},
	}

	out := decl.Render()
	assert.True(t, strings.HasPrefix(out, "struct T {\n"))
	assert.True(t, strings.HasSuffix(out, "};\n"))
	assert.Equal(t, 3, strings.Count(out, "\n"))
}
