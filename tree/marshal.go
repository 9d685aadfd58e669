package tree

import (
	"encoding/json"
	"fmt"

	"github.com/golang/snappy"

	"github.com/shaply/automesh/shared"
)

// wireNode is the JSON-friendly projection of Node used for persistence and
// over-the-wire transport (the recorder's stored snapshots, a future
// import/export endpoint). Node itself is kept unexported-field so callers
// go through the typed attribute adapters instead of touching the map
// directly.
type wireNode struct {
	Type       string              `json:"type"`
	Attributes map[string]string   `json:"attributes"`
	Children   []*wireNode         `json:"children,omitempty"`
}

func toWire(n *Node) *wireNode {
	w := &wireNode{
		Type:       n.typ,
		Attributes: n.attributes,
	}
	for _, c := range n.children {
		w.Children = append(w.Children, toWire(c))
	}
	return w
}

func fromWire(w *wireNode) *Node {
	n := New(w.Type)
	for k, v := range w.Attributes {
		n.attributes[k] = v
	}
	for _, c := range w.Children {
		n.AddChild(fromWire(c))
	}
	return n
}

// Marshal renders the tree rooted at n as snappy-compressed JSON. Large
// automaton description trees compress well (attribute maps repeat keys
// and matrix text is dominated by digit runs), which is why the engine
// reaches for snappy here rather than storing raw JSON, matching the
// teacher's own preference for a fast block compressor over a
// general-purpose one.
func Marshal(n *Node) ([]byte, error) {
	raw, err := json.Marshal(toWire(n))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrParseError, err)
	}
	return snappy.Encode(nil, raw), nil
}

// Unmarshal reverses Marshal. Returns shared.ErrParseError (wrapped) on any
// decompression or JSON failure.
func Unmarshal(data []byte) (*Node, error) {
	raw, err := snappy.Decode(nil, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrParseError, err)
	}

	var w wireNode
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrParseError, err)
	}
	return fromWire(&w), nil
}
