package model

import "errors"

// Format errors abort the whole import.
var (
	ErrNoModel           = errors.New("cast file has no model node")
	ErrMalformedSkeleton = errors.New("malformed skeleton")
	ErrMalformedMesh     = errors.New("malformed mesh")
	ErrDuplicateMaterial = errors.New("duplicate material hash")
)

// ErrUnresolvedMaterial is returned when a mesh references a material hash
// that no material node declared.
var ErrUnresolvedMaterial = errors.New("unresolved material")

// ErrUnsupportedUpAxis is a configuration error reported before decoding starts.
var ErrUnsupportedUpAxis = errors.New("unsupported up axis")
