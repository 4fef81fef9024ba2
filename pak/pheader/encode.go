package pheader

import (
	"treepak/pak/pbytes"
)

func Encode(header Header) []byte {
	bs := make([]byte, 0, Size)
	bs = append(bs, pbytes.EncodeUint16(header.Magic)...)
	bs = append(bs, header.Version)
	bs = append(bs, pbytes.EncodeUint32(header.RootOffset)...)
	return bs
}
