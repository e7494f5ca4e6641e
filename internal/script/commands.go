package script

import (
	lua "github.com/Shopify/go-lua"

	"github.com/hexload-tools/hexload/internal/event"
	"github.com/hexload-tools/hexload/internal/pattern"
)

// The command gateway: the script-facing native commands. Each call validates
// its arguments, performs one synchronous operation against the host
// collaborators and returns before the script resumes. Failures are raised
// back into the script through the runtime's own error mechanism.

// getFilePath returns the path of the file under analysis.
func (r *Runtime) getFilePath(l *lua.State) int {
	l.PushString(r.provider.Path())
	return 1
}

// patch writes bytes at address after bounds-checking against the current
// data size. The check precedes the write, so a rejected patch writes
// nothing.
func (r *Runtime) patch(l *lua.State) int {
	address := checkAddress(l, 1)
	data := lua.CheckString(l, 2)

	if len(data) == 0 {
		return raise(l, pattern.Errorf(pattern.KindArgument, "invalid patch provided"))
	}
	if address >= r.provider.Size() {
		return raise(l, pattern.Errorf(pattern.KindRange, "address %d out of range", address))
	}
	if err := r.provider.WriteAt(address, []byte(data)); err != nil {
		return raise(l, pattern.Errorf(pattern.KindRange, "%s", err))
	}
	return 0
}

// addBookmark posts a bookmark over the given region. Ownership of the
// bookmark transfers to the host on post.
func (r *Runtime) addBookmark(l *lua.State) int {
	address := checkAddress(l, 1)
	size := checkAddress(l, 2)
	name := lua.OptString(l, 3, "")
	comment := lua.OptString(l, 4, "")

	if name == "" || comment == "" {
		return raise(l, pattern.Errorf(pattern.KindArgument, "bookmark name and comment are required"))
	}

	r.bus.Post(event.AddBookmark, event.Bookmark{
		Region:  event.Region{Address: address, Size: size},
		Name:    name,
		Comment: comment,
	})
	return 0
}

// addStruct declares the referenced type as a struct.
func (r *Runtime) addStruct(l *lua.State) int {
	return r.declare(l, pattern.KeywordStruct)
}

// addUnion declares the referenced type as a union.
func (r *Runtime) addUnion(l *lua.State) int {
	return r.declare(l, pattern.KeywordUnion)
}

func (r *Runtime) declare(l *lua.State, keyword pattern.Keyword) int {
	ref, err := typeRefAt(l, 1)
	if err != nil {
		return raise(l, err)
	}
	if _, err := r.bridge.Declare(keyword, ref); err != nil {
		return raise(l, err)
	}
	return 0
}

// checkAddress reads a non-negative integer argument as a u64 offset.
func checkAddress(l *lua.State, index int) uint64 {
	n := lua.CheckNumber(l, index)
	if n < 0 {
		lua.ArgumentError(l, index, "offset cannot be negative")
	}
	return uint64(n)
}

// raise surfaces err to the calling script as a runtime error. It does not
// return; the script unwinds to its caller.
func raise(l *lua.State, err error) int {
	lua.Errorf(l, "%s", err.Error())
	return 0
}
