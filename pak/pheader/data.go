package pheader

type (
	Header struct {
		Magic      uint16 `json:"magic"`
		Version    uint8  `json:"version"`
		RootOffset uint32 `json:"root_offset"`
	}
)

const (
	Magic            = uint16(0x10FA)
	SupportedVersion = uint8(0xEE)
	// Size is the encoded length of a Header, which is also the offset of the first block.
	Size = 7
)

func New(rootOffset uint32) Header {
	return Header{
		Magic:      Magic,
		Version:    SupportedVersion,
		RootOffset: rootOffset,
	}
}
