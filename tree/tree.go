// Package tree implements the DescriptionTree: the abstract hierarchical
// medium every engine entity (de)serializes through. A Node carries a type
// tag, a flat string attribute map, and an ordered list of children; that
// is the entire contract the rest of the engine relies on.
package tree

import (
	"github.com/google/uuid"

	"github.com/shaply/automesh/matrix"
	"github.com/shaply/automesh/shared"
)

// Node is one DescriptionTree vertex. ID is a synthetic in-process
// identity for tests and logs. It is not part of the wire format, so
// Unmarshal gives every decoded node a fresh ID.
type Node struct {
	id         string
	typ        string
	attributes map[string]string
	children   []*Node
}

// New creates an empty node of the given type.
func New(typ string) *Node {
	return &Node{
		id:         uuid.New().String(),
		typ:        typ,
		attributes: make(map[string]string),
	}
}

// ID returns the node's synthetic identity.
func (n *Node) ID() string { return n.id }

// Type returns the node's type tag.
func (n *Node) Type() string { return n.typ }

// SetAttribute stores a raw string attribute.
func (n *Node) SetAttribute(key, value string) {
	n.attributes[key] = value
}

// GetAttribute returns the raw string attribute and whether it was present.
func (n *Node) GetAttribute(key string) (string, bool) {
	v, ok := n.attributes[key]
	return v, ok
}

// AddChild appends child to the node's ordered child list.
func (n *Node) AddChild(child *Node) {
	n.children = append(n.children, child)
}

// Children returns every child, in insertion order.
func (n *Node) Children() []*Node {
	return n.children
}

// ChildrenOfType returns the subsequence of Children() whose Type matches
// typ, preserving insertion order.
func (n *Node) ChildrenOfType(typ string) []*Node {
	var out []*Node
	for _, c := range n.children {
		if c.typ == typ {
			out = append(out, c)
		}
	}
	return out
}

// Typed attribute adapters. These are thin convenience wrappers around the
// flat string map; GetX returns ok=false both when the key is absent and
// when the stored value fails to parse as X, since both are equally
// "not usable as X" from a caller's perspective -- callers that need to
// tell the two apart should use GetAttribute directly.

func (n *Node) SetInt(key string, value int) {
	n.SetAttribute(key, formatInt(value))
}

func (n *Node) GetInt(key string) (int, bool) {
	raw, ok := n.GetAttribute(key)
	if !ok {
		return 0, false
	}
	return parseInt(raw)
}

func (n *Node) SetFloat(key string, value float64) {
	n.SetAttribute(key, formatFloat(value))
}

func (n *Node) GetFloat(key string) (float64, bool) {
	raw, ok := n.GetAttribute(key)
	if !ok {
		return 0, false
	}
	return parseFloat(raw)
}

func (n *Node) SetBool(key string, value bool) {
	if value {
		n.SetAttribute(key, "true")
	} else {
		n.SetAttribute(key, "false")
	}
}

func (n *Node) GetBool(key string) (bool, bool) {
	raw, ok := n.GetAttribute(key)
	if !ok {
		return false, false
	}
	switch raw {
	case "true":
		return true, true
	case "false":
		return false, true
	default:
		return false, false
	}
}

func (n *Node) SetString(key, value string) {
	n.SetAttribute(key, value)
}

func (n *Node) GetString(key string) (string, bool) {
	return n.GetAttribute(key)
}

// SetMatrix encodes m with the engine's textual matrix format and stores it
// under key.
func (n *Node) SetMatrix(key string, m matrix.Matrix) {
	n.SetAttribute(key, matrix.Format(m))
}

// GetMatrix decodes the matrix stored under key. ok is false if the
// attribute is missing or fails to parse; parse errors are logged via
// shared.DebugError rather than returned, matching GetInt/GetFloat/GetBool's
// "absent or unusable" convention.
func (n *Node) GetMatrix(key string) (matrix.Matrix, bool) {
	raw, ok := n.GetAttribute(key)
	if !ok {
		return matrix.Matrix{}, false
	}
	m, err := matrix.Parse(raw)
	if err != nil {
		shared.DebugError(err)
		return matrix.Matrix{}, false
	}
	return m, true
}
