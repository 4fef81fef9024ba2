package pblock

import (
	"fmt"
)

type (
	Type        uint8
	BlockHeader struct {
		Type Type   `json:"type"`
		Size uint32 `json:"size"`
	}
	// Entry is one child of a directory: a name and the absolute offset of the child's block header.
	Entry struct {
		Offset uint32 `json:"offset"`
		Name   string `json:"name"`
	}
)

const (
	TypeDirectory = Type(0xDD)
	TypeFile      = Type(0xFF)
)

const (
	HeaderSize      = 5
	EntryHeaderSize = 6
	MaxNameSize     = 1<<16 - 1
)

func (r Type) IsValid() bool {
	return r == TypeDirectory || r == TypeFile
}

func (r Type) String() string {
	switch r {
	case TypeDirectory:
		return "directory"
	case TypeFile:
		return "file"
	default:
		return fmt.Sprintf("unknown(%#02x)", uint8(r))
	}
}

func (r Type) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}
