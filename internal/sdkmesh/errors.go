package sdkmesh

import (
	"errors"
	"fmt"
)

var (
	ErrEmpty              = errors.New("empty input")
	ErrUnsupportedVersion = errors.New("unsupported version")
	ErrTruncated          = errors.New("truncated data")
	ErrBadOffset          = errors.New("offset outside buffer region")
)

// FormatError reports why a container could not be decoded.
type FormatError struct {
	Table  string // "header", "meshes", "vertex buffer 3", ...
	Offset uint64
	Detail string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("sdkmesh: %s at offset %d: %v (%s)", e.Table, e.Offset, e.Err, e.Detail)
	}
	return fmt.Sprintf("sdkmesh: %s at offset %d: %v", e.Table, e.Offset, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }
