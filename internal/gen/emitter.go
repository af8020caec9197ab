package gen

import (
	"fmt"
	"strings"
)

// Emitter builds TypeScript source with two-space indentation.
type Emitter struct {
	buf    strings.Builder
	indent int
}

// Line writes a single line at the current indentation level.
func (e *Emitter) Line(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	if line == "" {
		e.buf.WriteByte('\n')
		return
	}
	e.pad()
	e.buf.WriteString(line)
	e.buf.WriteByte('\n')
}

// Raw writes s without indentation or newline.
func (e *Emitter) Raw(s string) { e.buf.WriteString(s) }

// Blank writes an empty line.
func (e *Emitter) Blank() { e.buf.WriteByte('\n') }

// Block writes the line followed by " {" and indents.
func (e *Emitter) Block(format string, args ...any) {
	e.pad()
	fmt.Fprintf(&e.buf, format, args...)
	e.buf.WriteString(" {\n")
	e.indent++
}

// EndBlockSuffix closes a block with "}" followed by suffix (e.g. ";").
func (e *Emitter) EndBlockSuffix(suffix string) {
	if e.indent > 0 {
		e.indent--
	}
	e.pad()
	e.buf.WriteString("}")
	e.buf.WriteString(suffix)
	e.buf.WriteByte('\n')
}

func (e *Emitter) pad() {
	for i := 0; i < e.indent; i++ {
		e.buf.WriteString("  ")
	}
}

// String returns the accumulated source.
func (e *Emitter) String() string { return e.buf.String() }
