// Package cast provides a reader and writer for the Cast 3D scene exchange format.
//
// A Cast file is a list of root nodes. Every node carries a type identifier, an
// optional 64-bit hash, an ordered list of children and a property bag mapping short
// tags ("vp", "f", "n", ...) to ordered value lists.
package cast

import (
	"errors"
	"fmt"
)

// Magic is the little-endian "cast" file signature.
const Magic uint32 = 0x74736163

// Cast format errors.
var (
	ErrInvalidMagic        = errors.New("invalid cast magic: expected 'cast'")
	ErrTruncated           = errors.New("truncated cast data")
	ErrUnknownPropertyType = errors.New("unknown cast property type")
	ErrTypeMismatch        = errors.New("cast property type mismatch")
	ErrMissingProperty     = errors.New("missing cast property")
)

// NodeType is the four-character identifier stored in each node header.
type NodeType uint32

// Node types defined by the format.
const (
	NodeRoot              NodeType = 0x746F6F72
	NodeModel             NodeType = 0x6C646F6D
	NodeMesh              NodeType = 0x6873656D
	NodeHair              NodeType = 0x72696168
	NodeBlendShape        NodeType = 0x68736C62
	NodeSkeleton          NodeType = 0x6C656B73
	NodeBone              NodeType = 0x656E6F62
	NodeIKHandle          NodeType = 0x64686B69
	NodeConstraint        NodeType = 0x74736E63
	NodeAnimation         NodeType = 0x6D696E61
	NodeCurve             NodeType = 0x76727563
	NodeNotificationTrack NodeType = 0x6669746E
	NodeMaterial          NodeType = 0x6C74616D
	NodeFile              NodeType = 0x656C6966
	NodeInstance          NodeType = 0x74736E69
	NodeMetadata          NodeType = 0x6174656D
)

var nodeTypeNames = map[NodeType]string{
	NodeRoot:              "Root",
	NodeModel:             "Model",
	NodeMesh:              "Mesh",
	NodeHair:              "Hair",
	NodeBlendShape:        "BlendShape",
	NodeSkeleton:          "Skeleton",
	NodeBone:              "Bone",
	NodeIKHandle:          "IKHandle",
	NodeConstraint:        "Constraint",
	NodeAnimation:         "Animation",
	NodeCurve:             "Curve",
	NodeNotificationTrack: "NotificationTrack",
	NodeMaterial:          "Material",
	NodeFile:              "File",
	NodeInstance:          "Instance",
	NodeMetadata:          "Metadata",
}

// String returns a human-readable node type name.
func (t NodeType) String() string {
	if name, ok := nodeTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(0x%08X)", uint32(t))
}

// Known reports whether t is one of the identifiers defined by the format.
func (t NodeType) Known() bool {
	_, ok := nodeTypeNames[t]
	return ok
}

// NodeError attaches node context to a decoding error.
type NodeError struct {
	Type NodeType
	Hash uint64
	Tag  string // property tag, empty when the error is about the node itself
	Err  error
}

func (e *NodeError) Error() string {
	if e.Tag != "" {
		return fmt.Sprintf("%s node 0x%016X, property %q: %v", e.Type, e.Hash, e.Tag, e.Err)
	}
	return fmt.Sprintf("%s node 0x%016X: %v", e.Type, e.Hash, e.Err)
}

func (e *NodeError) Unwrap() error {
	return e.Err
}

// File is a decoded Cast file.
type File struct {
	Version uint32
	Flags   uint32
	Roots   []*Node
}

// Root returns the first root node, or nil for an empty file.
func (f *File) Root() *Node {
	if len(f.Roots) == 0 {
		return nil
	}
	return f.Roots[0]
}
