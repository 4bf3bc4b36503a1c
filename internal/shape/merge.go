package shape

// Merge unifies two shapes describing occurrences of the same logical slot.
// It is total over the shape domain: same-kind scalars union their example
// sets, arrays merge element shapes and widen the length range, objects
// merge key by key with absence marking a key optional, and differing kinds
// accumulate into a Mixed shape. Neither operand is mutated; shared
// subtrees are safe because no later merge writes through them.
func Merge(a, b Shape) Shape {
	if a.Kind() == KindUnknown {
		return b
	}
	if b.Kind() == KindUnknown {
		return a
	}
	if am, ok := a.(*Mixed); ok {
		return mergeMixed(am.Alternatives, b)
	}
	if _, ok := b.(*Mixed); ok {
		return mergeMixed([]Shape{a}, b)
	}
	if a.Kind() != b.Kind() {
		return &Mixed{Alternatives: []Shape{a, b}}
	}

	switch a := a.(type) {
	case *Null:
		return &Null{}
	case *Boolean:
		return &Boolean{}
	case *Number:
		return &Number{Examples: a.Examples.union(b.(*Number).Examples)}
	case *String:
		return &String{Examples: a.Examples.union(b.(*String).Examples)}
	case *Array:
		other := b.(*Array)
		return &Array{
			Element: Merge(a.Element, other.Element),
			LenMin:  min(a.LenMin, other.LenMin),
			LenMax:  max(a.LenMax, other.LenMax),
		}
	case *Object:
		return mergeObjects(a, b.(*Object))
	}
	// Unreachable: the variant set is closed.
	return &Mixed{Alternatives: []Shape{a, b}}
}

// mergeMixed folds b into a copy of the given alternatives. Each incoming
// alternative merges into the existing alternative of the same kind, or is
// appended as a new one. A single surviving alternative collapses back to
// a plain shape.
func mergeMixed(alternatives []Shape, b Shape) Shape {
	merged := append([]Shape(nil), alternatives...)
	if bm, ok := b.(*Mixed); ok {
		for _, alt := range bm.Alternatives {
			merged = addAlternative(merged, alt)
		}
	} else {
		merged = addAlternative(merged, b)
	}
	if len(merged) == 1 {
		return merged[0]
	}
	return &Mixed{Alternatives: merged}
}

func addAlternative(alternatives []Shape, s Shape) []Shape {
	for i, alt := range alternatives {
		if alt.Kind() == s.Kind() {
			alternatives[i] = Merge(alt, s)
			return alternatives
		}
	}
	return append(alternatives, s)
}

// mergeObjects unifies two object shapes over the union of their keys.
// A key present on both sides merges recursively and carries the OR of the
// prior optional flags; a key present on one side only becomes optional.
func mergeObjects(a, b *Object) *Object {
	fields := make(map[string]Field, len(a.Fields)+len(b.Fields))
	for key, fa := range a.Fields {
		if fb, ok := b.Fields[key]; ok {
			fields[key] = Field{
				Shape:    Merge(fa.Shape, fb.Shape),
				Optional: fa.Optional || fb.Optional,
			}
		} else {
			fields[key] = Field{Shape: fa.Shape, Optional: true}
		}
	}
	for key, fb := range b.Fields {
		if _, ok := a.Fields[key]; !ok {
			fields[key] = Field{Shape: fb.Shape, Optional: true}
		}
	}
	return &Object{Fields: fields}
}
