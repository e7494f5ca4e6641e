package pattern

import "github.com/hexload-tools/hexload/internal/pattern/writer"

// declarationIndent is the member indentation the pattern-language parser
// conventionally uses; the emitted text must match it byte for byte.
const declarationIndent = "   "

// Render emits the declaration as pattern-language source:
//
//	struct Header {
//	   u32 magic;
//	   u16 version;
//	};
//
// Fields appear one per line, strictly in declaration order. The closing "};"
// is emitted even for zero fields. The text is opaque from here on; the
// emitter performs no further syntactic validation.
func (d Declaration) Render() string {
	w := writer.New(declarationIndent)
	w.WriteLinef("%s %s {", d.Keyword, d.TypeName)
	w.Indent()
	for _, f := range d.Fields {
		w.WriteLinef("%s %s;", f.TypeName, f.Name)
	}
	w.Dedent()
	w.WriteLine("};")
	return w.String()
}
