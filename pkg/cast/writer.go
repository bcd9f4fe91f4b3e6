package cast

import (
	"bytes"
	"encoding/binary"
	"fmt"
	gomath "math"
	"os"
	"sort"
)

// Encode serializes a file into the Cast binary layout.
// Property tags are written in sorted order so output is deterministic.
func Encode(f *File) ([]byte, error) {
	var buf bytes.Buffer

	header := [4]uint32{Magic, f.Version, uint32(len(f.Roots)), f.Flags}
	binary.Write(&buf, binary.LittleEndian, header)

	for _, root := range f.Roots {
		if err := writeNode(&buf, root); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// WriteFile encodes f and writes it to path.
func WriteFile(path string, f *File) error {
	data, err := Encode(f)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func sortedTags(n *Node) []string {
	tags := make([]string, 0, len(n.Properties))
	for tag := range n.Properties {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// nodeSize returns the encoded size of n including its subtree.
func nodeSize(n *Node) int {
	size := nodeHeaderSize
	for tag, values := range n.Properties {
		size += propertyHeaderSize + len(tag)
		for _, v := range values {
			if v.kind == KindString {
				size += len(v.s) + 1
			} else {
				size += v.kind.size()
			}
		}
	}
	for _, child := range n.Children {
		size += nodeSize(child)
	}
	return size
}

func writeNode(buf *bytes.Buffer, n *Node) error {
	le := binary.LittleEndian

	binary.Write(buf, le, uint32(n.Type))
	binary.Write(buf, le, uint32(nodeSize(n)))
	binary.Write(buf, le, n.Hash)
	binary.Write(buf, le, uint32(len(n.Properties)))
	binary.Write(buf, le, uint32(len(n.Children)))

	for _, tag := range sortedTags(n) {
		if err := writeProperty(buf, tag, n.Properties[tag]); err != nil {
			return n.Err(tag, err)
		}
	}
	for _, child := range n.Children {
		if err := writeNode(buf, child); err != nil {
			return err
		}
	}
	return nil
}

func writeProperty(buf *bytes.Buffer, tag string, values []Value) error {
	if len(tag) > gomath.MaxUint16 {
		return fmt.Errorf("property name too long: %d bytes", len(tag))
	}

	kind := KindByte
	if len(values) > 0 {
		kind = values[0].kind
	}
	for _, v := range values {
		if v.kind != kind {
			return fmt.Errorf("%w: mixed %s and %s values", ErrTypeMismatch, kind, v.kind)
		}
	}

	var code [2]byte
	copy(code[:], kind.Code())

	le := binary.LittleEndian
	buf.Write(code[:])
	binary.Write(buf, le, uint16(len(tag)))
	binary.Write(buf, le, uint32(len(values)))
	buf.WriteString(tag)

	for _, v := range values {
		switch v.kind {
		case KindByte:
			buf.WriteByte(uint8(v.u))
		case KindShort:
			binary.Write(buf, le, uint16(v.u))
		case KindInt:
			binary.Write(buf, le, uint32(v.u))
		case KindLong:
			binary.Write(buf, le, v.u)
		case KindFloat:
			binary.Write(buf, le, float32(v.f))
		case KindDouble:
			binary.Write(buf, le, v.f)
		case KindString:
			buf.WriteString(v.s)
			buf.WriteByte(0)
		case KindVector2:
			binary.Write(buf, le, v.v[:2])
		case KindVector3:
			binary.Write(buf, le, v.v[:3])
		case KindVector4:
			binary.Write(buf, le, v.v[:4])
		}
	}
	return nil
}
