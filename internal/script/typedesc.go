package script

import (
	lua "github.com/Shopify/go-lua"

	"github.com/hexload-tools/hexload/internal/pattern"
)

// Adapter between Lua class tables and the codegen core's reflection
// interface. A scripted class is a table carrying __name, __base and
// __fields; calling it constructs an instance whose metatable is the class
// table. Descriptors and refs hold absolute stack indices; values stay pinned
// on the stack until the release func of the enclosing instantiation pops
// them, so everything lives within one command invocation.

// typeRefAt validates the value at index as a type reference: it must be
// present and callable.
func typeRefAt(l *lua.State, index int) (pattern.TypeRef, error) {
	if !callable(l, index) {
		return nil, pattern.Errorf(pattern.KindArgument, "type reference expected")
	}
	return &luaTypeRef{l: l, index: l.AbsIndex(index)}, nil
}

// callable reports whether the value at index can be invoked: a function, or
// a table with a __call metafield.
func callable(l *lua.State, index int) bool {
	switch l.TypeOf(index) {
	case lua.TypeFunction:
		return true
	case lua.TypeTable:
		if !l.MetaTable(index) {
			return false
		}
		l.Field(-1, "__call")
		ok := l.TypeOf(-1) == lua.TypeFunction
		l.Pop(2)
		return ok
	default:
		return false
	}
}

type luaTypeRef struct {
	l     *lua.State
	index int
}

// Instantiate invokes the referenced type's zero-argument constructor. The
// returned release func pops the instance and everything reflected off it.
func (r *luaTypeRef) Instantiate() (pattern.TypeDescriptor, pattern.ReleaseFunc, error) {
	l := r.l
	base := l.Top()

	l.PushValue(r.index)
	if err := l.ProtectedCall(0, 1, 0); err != nil {
		l.SetTop(base)
		return nil, nil, pattern.Errorf(pattern.KindInstantiation, "failed to construct type instance: %s", err)
	}

	release := func() { l.SetTop(base) }

	// The instance's runtime type is its metatable. An instance without one
	// is not a scripted class value; it carries no type identity and fails
	// the capability check downstream.
	desc := &luaTypeDescriptor{l: l}
	if l.MetaTable(-1) {
		desc.class = l.AbsIndex(-1)
	}
	return desc, release, nil
}

// luaTypeDescriptor reflects over a class table pinned at an absolute stack
// index. class is zero when the instance had no type identity.
type luaTypeDescriptor struct {
	l     *lua.State
	class int
}

// rawField pushes t[name] without invoking metamethods: reflection reads the
// type's own namespace, never an inherited one.
func rawField(l *lua.State, index int, name string) {
	index = l.AbsIndex(index)
	l.PushString(name)
	l.RawGet(index)
}

// Name returns the scripted type's __name.
func (d *luaTypeDescriptor) Name() string {
	if d.class == 0 {
		return "?"
	}
	l := d.l
	rawField(l, d.class, "__name")
	name, ok := l.ToString(-1)
	l.Pop(1)
	if !ok {
		return "?"
	}
	return name
}

// DirectBaseName returns the __name of the class's __base, when it has one.
func (d *luaTypeDescriptor) DirectBaseName() (string, bool) {
	if d.class == 0 {
		return "", false
	}
	l := d.l
	rawField(l, d.class, "__base")
	if l.TypeOf(-1) != lua.TypeTable {
		l.Pop(1)
		return "", false
	}
	rawField(l, -1, "__name")
	name, ok := l.ToString(-1)
	l.Pop(2)
	if !ok {
		return "", false
	}
	return name, true
}

// DeclaredMembers enumerates the class's own __fields array in declaration
// order. A missing __fields table is a reflection failure; an empty one is a
// valid zero-member type. Member type values are left pinned on the stack for
// the caller to instantiate; the enclosing release pops them.
func (d *luaTypeDescriptor) DeclaredMembers() ([]pattern.Member, error) {
	if d.class == 0 {
		return nil, pattern.Errorf(pattern.KindReflection, "type carries no member annotations")
	}

	l := d.l
	rawField(l, d.class, "__fields")
	if l.IsNoneOrNil(-1) {
		l.Pop(1)
		return nil, pattern.Errorf(pattern.KindReflection, "type %s carries no member annotations", d.Name())
	}
	if l.TypeOf(-1) != lua.TypeTable {
		l.Pop(1)
		return nil, pattern.Errorf(pattern.KindReflection, "member annotations of %s are malformed", d.Name())
	}

	fields := l.AbsIndex(-1)
	count := l.RawLength(fields)
	members := make([]pattern.Member, 0, count)

	for i := 1; i <= count; i++ {
		l.RawGetInt(fields, i)
		if l.TypeOf(-1) != lua.TypeTable {
			l.Pop(1)
			return nil, pattern.Errorf(pattern.KindReflection, "member annotation %d of %s is malformed", i, d.Name())
		}
		entry := l.AbsIndex(-1)

		l.Field(entry, "name")
		name, ok := l.ToString(-1)
		l.Pop(1)
		if !ok {
			return nil, pattern.Errorf(pattern.KindReflection, "member annotation %d of %s has no name", i, d.Name())
		}

		member := pattern.Member{Name: name}
		l.Field(entry, "type")
		if l.IsNoneOrNil(-1) {
			// Annotation without a type; the bridge rejects it by name.
			l.Pop(1)
		} else {
			member.Type = &luaTypeRef{l: l, index: l.AbsIndex(-1)}
		}
		members = append(members, member)
	}

	return members, nil
}
