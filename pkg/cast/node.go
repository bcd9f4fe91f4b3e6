package cast

import "github.com/Faultbox/castview/pkg/math"

// Node is one entry of the scene tree.
type Node struct {
	Type       NodeType
	Hash       uint64
	Children   []*Node
	Properties map[string][]Value
}

// NewNode creates an empty node.
func NewNode(t NodeType, hash uint64) *Node {
	return &Node{
		Type:       t,
		Hash:       hash,
		Properties: make(map[string][]Value),
	}
}

// Set replaces the values stored under tag and returns the node for chaining.
func (n *Node) Set(tag string, values ...Value) *Node {
	if n.Properties == nil {
		n.Properties = make(map[string][]Value)
	}
	n.Properties[tag] = values
	return n
}

// Add appends children and returns the node for chaining.
func (n *Node) Add(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// Has reports whether the node carries a non-empty property under tag.
func (n *Node) Has(tag string) bool {
	return len(n.Properties[tag]) > 0
}

// Values returns every value stored under tag, in file order.
func (n *Node) Values(tag string) []Value {
	return n.Properties[tag]
}

// Lookup returns the first value stored under tag.
func (n *Node) Lookup(tag string) (Value, bool) {
	values := n.Properties[tag]
	if len(values) == 0 {
		return Value{}, false
	}
	return values[0], true
}

// ChildrenOfType returns the direct children with the given type, in order.
func (n *Node) ChildrenOfType(t NodeType) []*Node {
	var out []*Node
	for _, child := range n.Children {
		if child.Type == t {
			out = append(out, child)
		}
	}
	return out
}

// FirstChildOfType returns the first direct child with the given type, or nil.
func (n *Node) FirstChildOfType(t NodeType) *Node {
	for _, child := range n.Children {
		if child.Type == t {
			return child
		}
	}
	return nil
}

// ChildByHash returns the first direct child with the given type and hash, or nil.
func (n *Node) ChildByHash(t NodeType, hash uint64) *Node {
	for _, child := range n.Children {
		if child.Type == t && child.Hash == hash {
			return child
		}
	}
	return nil
}

// Err wraps err with this node's context.
func (n *Node) Err(tag string, err error) error {
	return &NodeError{Type: n.Type, Hash: n.Hash, Tag: tag, Err: err}
}

// first returns the first value under tag or a NodeError wrapping ErrMissingProperty.
func (n *Node) first(tag string) (Value, error) {
	v, ok := n.Lookup(tag)
	if !ok {
		return Value{}, n.Err(tag, ErrMissingProperty)
	}
	return v, nil
}

// String reads the first value under tag as a string.
func (n *Node) String(tag string) (string, error) {
	v, err := n.first(tag)
	if err != nil {
		return "", err
	}
	s, err := v.AsString()
	if err != nil {
		return "", n.Err(tag, err)
	}
	return s, nil
}

// Int reads the first value under tag as a signed integer.
func (n *Node) Int(tag string) (int32, error) {
	v, err := n.first(tag)
	if err != nil {
		return 0, err
	}
	i, err := v.AsInt()
	if err != nil {
		return 0, n.Err(tag, err)
	}
	return i, nil
}

// Long reads the first value under tag as a 64-bit integer.
func (n *Node) Long(tag string) (uint64, error) {
	v, err := n.first(tag)
	if err != nil {
		return 0, err
	}
	l, err := v.AsLong()
	if err != nil {
		return 0, n.Err(tag, err)
	}
	return l, nil
}

// Vec3 reads the first value under tag as a 3D vector.
func (n *Node) Vec3(tag string) (math.Vec3, error) {
	v, err := n.first(tag)
	if err != nil {
		return math.Vec3{}, err
	}
	vec, err := v.AsVec3()
	if err != nil {
		return math.Vec3{}, n.Err(tag, err)
	}
	return vec, nil
}

// Quat reads the first value under tag as a rotation.
func (n *Node) Quat(tag string) (math.Quat, error) {
	v, err := n.first(tag)
	if err != nil {
		return math.Quat{}, err
	}
	q, err := v.AsQuat()
	if err != nil {
		return math.Quat{}, n.Err(tag, err)
	}
	return q, nil
}

// Vec2s reads every value under tag as a 2D vector.
func (n *Node) Vec2s(tag string) ([]math.Vec2, error) {
	values := n.Properties[tag]
	out := make([]math.Vec2, len(values))
	for i, v := range values {
		vec, err := v.AsVec2()
		if err != nil {
			return nil, n.Err(tag, err)
		}
		out[i] = vec
	}
	return out, nil
}

// Vec3s reads every value under tag as a 3D vector.
func (n *Node) Vec3s(tag string) ([]math.Vec3, error) {
	values := n.Properties[tag]
	out := make([]math.Vec3, len(values))
	for i, v := range values {
		vec, err := v.AsVec3()
		if err != nil {
			return nil, n.Err(tag, err)
		}
		out[i] = vec
	}
	return out, nil
}

// Uints reads every value under tag as an unsigned integer of any width up to 32 bits.
func (n *Node) Uints(tag string) ([]uint32, error) {
	values := n.Properties[tag]
	out := make([]uint32, len(values))
	for i, v := range values {
		u, err := v.AsUint()
		if err != nil {
			return nil, n.Err(tag, err)
		}
		out[i] = u
	}
	return out, nil
}

// Floats reads every value under tag as a float32.
func (n *Node) Floats(tag string) ([]float32, error) {
	values := n.Properties[tag]
	out := make([]float32, len(values))
	for i, v := range values {
		f, err := v.AsFloat()
		if err != nil {
			return nil, n.Err(tag, err)
		}
		out[i] = f
	}
	return out, nil
}
