package doc

// Normalize resolves cardinality ambiguity at a repeatable element. A mapping
// is the only instance and comes back as a one-element sequence; a sequence
// comes back item by item. Any other shape is a reader bug and reported as a
// *ShapeError.
//
// Call it exactly where the schema declares a repeatable element and nowhere
// else.
func Normalize(n Node) ([]Node, error) {
	switch v := n.value.(type) {
	case map[string]interface{}:
		return []Node{n}, nil
	case []interface{}:
		items := make([]Node, len(v))
		for i, item := range v {
			items[i] = Node{value: item}
		}
		return items, nil
	default:
		return nil, &ShapeError{Want: Sequence, Got: n.Kind()}
	}
}
