package formatter

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/mcncl/jshape/internal/shape"
)

// DefaultIndentWidth is the number of spaces per indentation level.
const DefaultIndentWidth = 4

// Formatter renders a shape as an indented, human-readable description.
type Formatter struct {
	indent string
}

// NewFormatter creates a Formatter with the default indentation.
func NewFormatter() *Formatter {
	return NewFormatterWithIndent(DefaultIndentWidth)
}

// NewFormatterWithIndent creates a Formatter indenting by width spaces per
// nesting level.
func NewFormatterWithIndent(width int) *Formatter {
	if width <= 0 {
		width = DefaultIndentWidth
	}
	return &Formatter{indent: strings.Repeat(" ", width)}
}

// Render returns the textual description of s, without a trailing newline.
// Object keys are sorted lexicographically; Mixed alternatives display in
// kind order (null, Boolean, Number, String, Array, Object).
func (f *Formatter) Render(s shape.Shape) string {
	var b strings.Builder
	f.write(&b, s, 0)
	return b.String()
}

func (f *Formatter) write(b *strings.Builder, s shape.Shape, depth int) {
	switch s := s.(type) {
	case *shape.Null:
		b.WriteString("null")
	case *shape.Boolean:
		b.WriteString("Boolean")
	case *shape.Number:
		f.writeScalar(b, "Number", s.Examples, false)
	case *shape.String:
		f.writeScalar(b, "String", s.Examples, true)
	case *shape.Array:
		f.writeArray(b, s, depth)
	case *shape.Object:
		f.writeObject(b, s, depth)
	case *shape.Mixed:
		f.writeMixed(b, s, depth)
	case *shape.Unknown:
		// Only reachable as the element of an empty array, which renders
		// its brackets without entries.
	}
}

func (f *Formatter) writeScalar(b *strings.Builder, name string, examples *shape.Examples, quoted bool) {
	b.WriteString(name)
	values := examples.Values()
	if len(values) == 0 {
		return
	}
	b.WriteString(" (")
	for i, v := range values {
		if i > 0 {
			b.WriteString(", ")
		}
		if quoted {
			b.WriteString(strconv.Quote(v))
		} else {
			b.WriteString(v)
		}
	}
	if examples.Truncated() {
		b.WriteString(", ...")
	}
	b.WriteString(")")
}

func (f *Formatter) writeArray(b *strings.Builder, s *shape.Array, depth int) {
	if s.LenMin == s.LenMax {
		fmt.Fprintf(b, "Array (len %d) ", s.LenMin)
	} else {
		fmt.Fprintf(b, "Array (len %d..%d) ", s.LenMin, s.LenMax)
	}

	// A mixed element shape flattens into the bracket list, one entry per
	// alternative kind.
	var entries []shape.Shape
	switch el := s.Element.(type) {
	case *shape.Unknown:
	case *shape.Mixed:
		entries = sortedAlternatives(el)
	default:
		entries = []shape.Shape{s.Element}
	}

	if len(entries) == 0 {
		b.WriteString("[]")
		return
	}
	b.WriteString("[\n")
	f.writeEntries(b, entries, depth+1)
	b.WriteString(f.pad(depth))
	b.WriteString("]")
}

func (f *Formatter) writeObject(b *strings.Builder, s *shape.Object, depth int) {
	if len(s.Fields) == 0 {
		b.WriteString("{}")
		return
	}
	keys := make([]string, 0, len(s.Fields))
	for k := range s.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	b.WriteString("{\n")
	for i, key := range keys {
		field := s.Fields[key]
		b.WriteString(f.pad(depth + 1))
		b.WriteString(strconv.Quote(key))
		b.WriteString(": ")
		if field.Optional {
			b.WriteString("optional ")
		}
		f.write(b, field.Shape, depth+1)
		if i < len(keys)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString(f.pad(depth))
	b.WriteString("}")
}

// writeMixed renders alternatives outside an array context as a
// parenthesized group: inline when every alternative is a scalar kind,
// one per line otherwise.
func (f *Formatter) writeMixed(b *strings.Builder, s *shape.Mixed, depth int) {
	alternatives := sortedAlternatives(s)

	scalarOnly := true
	for _, alt := range alternatives {
		if alt.Kind() == shape.KindArray || alt.Kind() == shape.KindObject {
			scalarOnly = false
			break
		}
	}

	if scalarOnly {
		b.WriteString("(")
		for i, alt := range alternatives {
			if i > 0 {
				b.WriteString(", ")
			}
			f.write(b, alt, depth)
		}
		b.WriteString(")")
		return
	}

	b.WriteString("(\n")
	f.writeEntries(b, alternatives, depth+1)
	b.WriteString(f.pad(depth))
	b.WriteString(")")
}

func (f *Formatter) writeEntries(b *strings.Builder, entries []shape.Shape, depth int) {
	for i, entry := range entries {
		b.WriteString(f.pad(depth))
		f.write(b, entry, depth)
		if i < len(entries)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
}

func (f *Formatter) pad(depth int) string {
	return strings.Repeat(f.indent, depth)
}

// sortedAlternatives returns a copy of the alternatives in display order.
func sortedAlternatives(m *shape.Mixed) []shape.Shape {
	out := append([]shape.Shape(nil), m.Alternatives...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Kind() < out[j].Kind()
	})
	return out
}
