package doc

import (
	"bytes"
	"fmt"

	"github.com/clbanning/mxj/v2"
)

// Parse decodes an XML document into a Node. Element text stays a string; no
// type casting is applied. The returned node is a mapping keyed by the root
// element tag.
func Parse(raw []byte) (Node, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return Node{}, fmt.Errorf("parsing reply: empty document")
	}
	m, err := mxj.NewMapXml(raw, false)
	if err != nil {
		return Node{}, fmt.Errorf("parsing reply: %w", err)
	}
	return Node{value: map[string]interface{}(m)}, nil
}
