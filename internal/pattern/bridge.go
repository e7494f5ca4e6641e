package pattern

import "github.com/hexload-tools/hexload/internal/event"

// Bridge orchestrates one declaration: instantiate the referenced type,
// validate it, enumerate its members, render the text and post it to the host.
type Bridge struct {
	bus *event.Bus
}

// NewBridge creates a bridge posting to bus.
func NewBridge(bus *event.Bus) *Bridge {
	return &Bridge{bus: bus}
}

// Declare builds a struct/union declaration for the referenced type and posts
// the rendered text as a single AppendPatternLanguageCode payload. The first
// invalid member fails the whole declaration: nothing is posted and no partial
// text escapes. The returned text is the posted payload.
func (b *Bridge) Declare(keyword Keyword, ref TypeRef) (string, error) {
	decl, err := b.build(keyword, ref)
	if err != nil {
		return "", err
	}

	code := decl.Render()
	b.bus.Post(event.AppendPatternLanguageCode, code)
	return code, nil
}

func (b *Bridge) build(keyword Keyword, ref TypeRef) (Declaration, error) {
	desc, release, err := ref.Instantiate()
	if err != nil {
		return Declaration{}, err
	}
	defer release()

	// The outer type is gated before any member is read.
	if err := ValidateOuterType(desc); err != nil {
		return Declaration{}, err
	}

	members, err := desc.DeclaredMembers()
	if err != nil {
		return Declaration{}, err
	}

	decl := Declaration{Keyword: keyword, TypeName: desc.Name()}
	for _, m := range members {
		if m.Type == nil {
			return Declaration{}, Errorf(KindCapability, "member %q must extend from %s", m.Name, MarkerTypeName)
		}

		field, err := resolveMember(m)
		if err != nil {
			return Declaration{}, err
		}
		decl.Fields = append(decl.Fields, field)
	}

	return decl, nil
}

// resolveMember instantiates the member's declared type to learn its resolved
// runtime name. The throwaway instance is released before returning, on the
// failure paths as well.
func resolveMember(m Member) (Field, error) {
	desc, release, err := m.Type.Instantiate()
	if err != nil {
		return Field{}, err
	}
	defer release()

	if err := ValidateMemberType(desc, m.Name); err != nil {
		return Field{}, err
	}

	return Field{TypeName: desc.Name(), Name: m.Name}, nil
}
