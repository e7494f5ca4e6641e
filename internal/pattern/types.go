// Package pattern implements the type-reflection codegen pipeline: it inspects
// a script-authored type description through the TypeDescriptor capability
// interface and emits a struct/union declaration in the host's
// pattern-description language.
package pattern

// Keyword selects the kind of declaration to emit.
type Keyword string

const (
	KeywordStruct Keyword = "struct"
	KeywordUnion  Keyword = "union"
)

// TypeDescriptor is a read-only reflection handle over a scripted type. It is
// the only view of the scripting runtime's object model the codegen core sees;
// adapters implement it over whatever embedded runtime hosts the scripts.
type TypeDescriptor interface {
	// Name returns the type's runtime name.
	Name() string

	// DirectBaseName returns the name of the type's immediate base type.
	// The second result is false when the type has no base.
	DirectBaseName() (string, bool)

	// DeclaredMembers returns the type's own annotated members in declaration
	// order. It fails with a REFLECTION_ERROR when the runtime reports no
	// annotation table for the type; an existing but empty table is a valid
	// zero-member result.
	DeclaredMembers() ([]Member, error)
}

// TypeRef is an opaque reference to a scripted type. Instantiate invokes the
// type's zero-argument constructor and returns a descriptor of the resulting
// instance's runtime type.
type TypeRef interface {
	// Instantiate constructs a throwaway instance used only as a reflection
	// handle. The returned release func must be called on every path once the
	// descriptor is no longer needed; the instance outlives no call.
	Instantiate() (TypeDescriptor, ReleaseFunc, error)
}

// ReleaseFunc releases an instantiated reflection handle.
type ReleaseFunc func()

// Member is one annotated member of a scripted type. Type is nil when the
// script declared the member without a usable type annotation.
type Member struct {
	Name string
	Type TypeRef
}

// Field is one resolved member of a Declaration.
type Field struct {
	TypeName string
	Name     string
}

// Declaration is the validated input to the emitter: keyword, outer type name
// and the resolved fields in declaration order. Field order is significant, it
// defines the memory layout the declaration describes.
type Declaration struct {
	Keyword  Keyword
	TypeName string
	Fields   []Field
}
