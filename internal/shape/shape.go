// Package shape implements the generalized structural description of JSON
// values and the pairwise merge that unifies repeated occurrences of the
// same logical slot into one such description.
package shape

import (
	"encoding/json"
	"strconv"

	"github.com/mcncl/jshape/internal/models"
)

// DefaultMaxExamples is the number of distinct example values retained for
// display per scalar shape. Once more distinct values than this have been
// observed, the rendered example list carries a trailing "..." marker.
const DefaultMaxExamples = 3

// Kind identifies a shape variant. The numeric order doubles as the display
// order for the alternatives of a Mixed shape.
type Kind int

const (
	KindUnknown Kind = iota
	KindNull
	KindBoolean
	KindNumber
	KindString
	KindArray
	KindObject
	KindMixed
)

// Shape describes the structure of one or more JSON values occupying the
// same logical slot. The variant set is closed: Null, Boolean, Number,
// String, Array, Object, Mixed, plus the Unknown placeholder used for the
// element slot of an array that never had elements.
type Shape interface {
	Kind() Kind
}

// Unknown is the element shape of an array with no observed elements.
// It is the identity of Merge.
type Unknown struct{}

// Null describes the JSON null value.
type Null struct{}

// Boolean describes JSON true/false.
type Boolean struct{}

// Number describes numeric values, with observed literals as examples.
type Number struct {
	Examples *Examples
}

// String describes string values, with observed literals as examples.
type String struct {
	Examples *Examples
}

// Array describes array values: the unified shape of every element seen
// across every merged occurrence, and the inclusive range of observed
// lengths.
type Array struct {
	Element Shape
	LenMin  int
	LenMax  int
}

// Field is one object key's merged shape. Optional is true iff at least one
// merged occurrence of the containing object lacked the key; it never
// reverts to false.
type Field struct {
	Shape    Shape
	Optional bool
}

// Object describes object values, key by key.
type Object struct {
	Fields map[string]Field
}

// Mixed holds the alternatives of a slot whose occurrences had differing
// kinds, e.g. an array holding both booleans and numbers. Alternatives are
// kept in encounter order, hold at most one shape per kind, and are never
// Mixed or Unknown themselves.
type Mixed struct {
	Alternatives []Shape
}

func (*Unknown) Kind() Kind { return KindUnknown }
func (*Null) Kind() Kind    { return KindNull }
func (*Boolean) Kind() Kind { return KindBoolean }
func (*Number) Kind() Kind  { return KindNumber }
func (*String) Kind() Kind  { return KindString }
func (*Array) Kind() Kind   { return KindArray }
func (*Object) Kind() Kind  { return KindObject }
func (*Mixed) Kind() Kind   { return KindMixed }

// Examples is an ordered, deduplicated set of observed scalar literals.
// The first cap distinct values are retained for display; every distinct
// value ever merged in is still counted, so the truncation marker reflects
// the full set rather than the retained slice.
type Examples struct {
	cap    int
	values []string
	seen   map[string]struct{}
}

// NewExamples creates an example set holding a single observed value.
func NewExamples(cap int, value string) *Examples {
	if cap <= 0 {
		cap = DefaultMaxExamples
	}
	return &Examples{
		cap:    cap,
		values: []string{value},
		seen:   map[string]struct{}{value: {}},
	}
}

// add records one observed value, keeping it for display if there is room.
func (e *Examples) add(value string) {
	if _, ok := e.seen[value]; ok {
		return
	}
	e.seen[value] = struct{}{}
	if len(e.values) < e.cap {
		e.values = append(e.values, value)
	}
}

// Values returns the retained example values in first-encounter order.
func (e *Examples) Values() []string { return e.values }

// Distinct returns how many distinct values were ever observed.
func (e *Examples) Distinct() int { return len(e.seen) }

// Truncated reports whether more distinct values were observed than are
// retained for display.
func (e *Examples) Truncated() bool { return len(e.seen) > len(e.values) }

// union returns a new set holding both operands' values. Display order is
// the receiver's values followed by the other side's, first encounter wins.
func (e *Examples) union(other *Examples) *Examples {
	out := &Examples{
		cap:    e.cap,
		values: append([]string(nil), e.values...),
		seen:   make(map[string]struct{}, len(e.seen)+len(other.seen)),
	}
	for v := range e.seen {
		out.seen[v] = struct{}{}
	}
	for _, v := range other.values {
		out.add(v)
	}
	// Values the other side observed but no longer displays still count
	// toward the truncation decision.
	for v := range other.seen {
		if _, ok := out.seen[v]; !ok {
			out.seen[v] = struct{}{}
		}
	}
	return out
}

// Lift converts a single decoded JSON value into its initial Shape: scalar
// shapes get a singleton example set, arrays get a length range of [n, n]
// with all elements folded into one element shape, and object keys all
// start out required. maxExamples bounds the example values retained for
// display per scalar shape; <= 0 selects DefaultMaxExamples.
func Lift(value models.JSONValue, maxExamples int) Shape {
	switch v := value.(type) {
	case nil:
		return &Null{}
	case bool:
		return &Boolean{}
	case json.Number:
		return &Number{Examples: NewExamples(maxExamples, v.String())}
	case float64:
		// Only seen when a caller decoded without UseNumber.
		return &Number{Examples: NewExamples(maxExamples, strconv.FormatFloat(v, 'g', -1, 64))}
	case string:
		return &String{Examples: NewExamples(maxExamples, v)}
	case models.JSONArray:
		element := Shape(&Unknown{})
		for _, el := range v {
			element = Merge(element, Lift(el, maxExamples))
		}
		return &Array{Element: element, LenMin: len(v), LenMax: len(v)}
	case models.JSONObject:
		fields := make(map[string]Field, len(v))
		for key, val := range v {
			fields[key] = Field{Shape: Lift(val, maxExamples)}
		}
		return &Object{Fields: fields}
	default:
		return &Unknown{}
	}
}
