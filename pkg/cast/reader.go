package cast

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	gomath "math"
	"os"

	"golang.org/x/text/encoding/unicode"
)

const (
	fileHeaderSize     = 16
	nodeHeaderSize     = 24
	propertyHeaderSize = 8
)

// Parse decodes a Cast file from a byte slice.
func Parse(data []byte) (*File, error) {
	if len(data) < fileHeaderSize {
		return nil, ErrTruncated
	}

	r := bytes.NewReader(data)

	var header struct {
		Magic     uint32
		Version   uint32
		RootNodes uint32
		Flags     uint32
	}
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, ErrTruncated
	}
	if header.Magic != Magic {
		return nil, ErrInvalidMagic
	}

	// Every root needs at least a node header.
	if int64(header.RootNodes)*nodeHeaderSize > int64(r.Len()) {
		return nil, fmt.Errorf("%w: %d root nodes declared", ErrTruncated, header.RootNodes)
	}

	file := &File{
		Version: header.Version,
		Flags:   header.Flags,
		Roots:   make([]*Node, 0, header.RootNodes),
	}
	for i := uint32(0); i < header.RootNodes; i++ {
		node, err := readNode(r)
		if err != nil {
			return nil, fmt.Errorf("parsing root node %d: %w", i, err)
		}
		file.Roots = append(file.Roots, node)
	}

	return file, nil
}

// ParseFile reads and decodes a Cast file from disk.
func ParseFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading cast file: %w", err)
	}
	return Parse(data)
}

func readNode(r *bytes.Reader) (*Node, error) {
	var header struct {
		Identifier    uint32
		NodeSize      uint32
		NodeHash      uint64
		PropertyCount uint32
		ChildCount    uint32
	}
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, ErrTruncated
	}

	node := NewNode(NodeType(header.Identifier), header.NodeHash)

	for i := uint32(0); i < header.PropertyCount; i++ {
		name, values, err := readProperty(r)
		if err != nil {
			return nil, node.Err(name, err)
		}
		// Duplicate names keep the first occurrence.
		if _, exists := node.Properties[name]; !exists {
			node.Properties[name] = values
		}
	}

	if int64(header.ChildCount)*nodeHeaderSize > int64(r.Len()) {
		return nil, node.Err("", fmt.Errorf("%w: %d children declared", ErrTruncated, header.ChildCount))
	}
	node.Children = make([]*Node, 0, header.ChildCount)
	for i := uint32(0); i < header.ChildCount; i++ {
		child, err := readNode(r)
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, child)
	}

	return node, nil
}

func readProperty(r *bytes.Reader) (string, []Value, error) {
	var header struct {
		Type       [2]byte
		NameLength uint16
		ValueCount uint32
	}
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return "", nil, ErrTruncated
	}

	nameBuf := make([]byte, header.NameLength)
	if _, err := io.ReadFull(r, nameBuf); err != nil {
		return "", nil, ErrTruncated
	}
	name := string(nameBuf)

	kind, err := KindFromCode(string(bytes.TrimRight(header.Type[:], "\x00")))
	if err != nil {
		return name, nil, err
	}

	count := int(header.ValueCount)
	if kind == KindString {
		// Each string is at least its terminator.
		if count > r.Len() {
			return name, nil, ErrTruncated
		}
		values := make([]Value, count)
		for i := range values {
			s, err := readCString(r)
			if err != nil {
				return name, nil, err
			}
			values[i] = StringValue(s)
		}
		return name, values, nil
	}

	size := kind.size()
	if int64(count)*int64(size) > int64(r.Len()) {
		return name, nil, ErrTruncated
	}
	raw := make([]byte, count*size)
	if _, err := io.ReadFull(r, raw); err != nil {
		return name, nil, ErrTruncated
	}

	values := make([]Value, count)
	for i := range values {
		values[i] = decodeFixed(kind, raw[i*size:(i+1)*size])
	}
	return name, values, nil
}

// decodeFixed decodes one fixed-size value. b holds exactly kind.size() bytes.
func decodeFixed(kind Kind, b []byte) Value {
	le := binary.LittleEndian
	f32 := func(off int) float32 { return gomath.Float32frombits(le.Uint32(b[off:])) }

	switch kind {
	case KindByte:
		return ByteValue(b[0])
	case KindShort:
		return ShortValue(le.Uint16(b))
	case KindInt:
		return IntValue(le.Uint32(b))
	case KindLong:
		return LongValue(le.Uint64(b))
	case KindFloat:
		return FloatValue(f32(0))
	case KindDouble:
		return DoubleValue(gomath.Float64frombits(le.Uint64(b)))
	case KindVector2:
		return Value{kind: KindVector2, v: [4]float32{f32(0), f32(4)}}
	case KindVector3:
		return Value{kind: KindVector3, v: [4]float32{f32(0), f32(4), f32(8)}}
	default:
		return Value{kind: KindVector4, v: [4]float32{f32(0), f32(4), f32(8), f32(12)}}
	}
}

// readCString reads a NUL-terminated string. Invalid UTF-8 is replaced with U+FFFD.
func readCString(r *bytes.Reader) (string, error) {
	var buf []byte
	for {
		b, err := r.ReadByte()
		if err != nil {
			return "", ErrTruncated
		}
		if b == 0 {
			break
		}
		buf = append(buf, b)
	}
	decoded, err := unicode.UTF8.NewDecoder().Bytes(buf)
	if err != nil {
		return string(buf), nil
	}
	return string(decoded), nil
}
