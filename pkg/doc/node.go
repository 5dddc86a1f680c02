// Package doc decodes NETCONF reply documents into an untyped tree and walks it.
//
// A decoded document keeps the cardinality ambiguity of its XML source: an
// element that the schema declares repeatable decodes as a mapping when the
// reply carries exactly one instance and as a sequence of mappings when it
// carries more. Normalize is the only place that ambiguity is resolved.
package doc

import (
	"fmt"
	"sort"
	"strings"

	"github.com/newtron-network/netsurvey/pkg/util"
)

// Kind is the shape of a Node.
type Kind int

const (
	Absent Kind = iota
	Leaf
	Mapping
	Sequence
)

func (k Kind) String() string {
	switch k {
	case Leaf:
		return "leaf"
	case Mapping:
		return "mapping"
	case Sequence:
		return "sequence"
	default:
		return "absent"
	}
}

// attrPrefix marks XML attributes in decoded mappings; textKey holds the
// character data of an element that also carries attributes.
const (
	attrPrefix = "-"
	textKey    = "#text"
)

// Node is one value of a decoded document: a leaf string, a mapping of tag
// name to child, or a sequence of mappings.
type Node struct {
	value interface{}
}

// New wraps a decoded value. Accepted values are string, map[string]interface{}
// and []interface{}; anything else reports Absent.
func New(v interface{}) Node {
	return Node{value: v}
}

// Value returns the underlying decoded value for pass-through consumers.
func (n Node) Value() interface{} {
	return n.value
}

// Kind reports the node's shape.
func (n Node) Kind() Kind {
	switch n.value.(type) {
	case string:
		return Leaf
	case map[string]interface{}:
		return Mapping
	case []interface{}:
		return Sequence
	default:
		return Absent
	}
}

// IsZero reports whether the node holds nothing.
func (n Node) IsZero() bool {
	return n.Kind() == Absent
}

// Has reports whether a mapping node has a child with the given tag.
func (n Node) Has(key string) bool {
	m, ok := n.value.(map[string]interface{})
	if !ok {
		return false
	}
	_, ok = m[key]
	return ok
}

// Populated reports whether the node is a mapping with at least one child
// element. Attribute-only and empty elements are not populated.
func (n Node) Populated() bool {
	return len(n.Keys()) > 0
}

// Keys returns the child element tags of a mapping in sorted order.
// Attributes and character data are skipped.
func (n Node) Keys() []string {
	m, ok := n.value.(map[string]interface{})
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		if strings.HasPrefix(k, attrPrefix) || k == textKey {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get walks the path from n and returns the node at its end. Every segment
// must resolve through a mapping: a missing tag yields a *PathError, and
// reaching a sequence yields a *ShapeError because the caller skipped a
// repeatable boundary without normalizing it.
func (n Node) Get(path ...string) (Node, error) {
	cur := n
	for i, seg := range path {
		switch v := cur.value.(type) {
		case map[string]interface{}:
			child, ok := v[seg]
			if !ok {
				return Node{}, &PathError{Path: path, Missing: i}
			}
			cur = Node{value: child}
		case []interface{}:
			return Node{}, &ShapeError{Path: path[:i], Want: Mapping, Got: Sequence}
		default:
			return Node{}, &PathError{Path: path, Missing: i}
		}
	}
	return cur, nil
}

// Text returns the character data of the leaf at path. An element decoded
// as a mapping because it carries attributes yields its text content.
func (n Node) Text(path ...string) (string, error) {
	node, err := n.Get(path...)
	if err != nil {
		return "", err
	}
	switch v := node.value.(type) {
	case string:
		return v, nil
	case map[string]interface{}:
		if s, ok := v[textKey].(string); ok {
			return s, nil
		}
	}
	return "", &ShapeError{Path: path, Want: Leaf, Got: node.Kind()}
}

// PathError reports a path segment that is not present in the document.
type PathError struct {
	Path    []string
	Missing int
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%s: missing %q at %s", util.ErrPathNotFound, e.Path[e.Missing], strings.Join(e.Path, "/"))
}

func (e *PathError) Unwrap() error {
	return util.ErrPathNotFound
}

// ShapeError reports a node whose shape does not match what the reader expected.
type ShapeError struct {
	Path []string
	Want Kind
	Got  Kind
}

func (e *ShapeError) Error() string {
	at := strings.Join(e.Path, "/")
	if at == "" {
		at = "."
	}
	return fmt.Sprintf("%s at %s: want %s, got %s", util.ErrUnexpectedShape, at, e.Want, e.Got)
}

func (e *ShapeError) Unwrap() error {
	return util.ErrUnexpectedShape
}
