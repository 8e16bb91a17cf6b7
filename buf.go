package ubytes

import "github.com/safing/structures/varint"

// Buf is the read side of the buffer interop surface: anything that can
// hand back its remaining bytes and be advanced past them.
type Buf interface {
	Bytes() []byte
	Remaining() int
	HasRemaining() bool
	Advance(skip int)
}

// BufMut is the write side: anything that can accept more bytes, either by
// growing (ExtBytes) or by writing into already-reserved capacity
// (MutBytes).
type BufMut interface {
	BytesMut() []byte
	RemainingMut() int
	AdvanceMut(skip int)
	Reserved() []byte
	PutSlice(data []byte)
	PutByte(b byte)
	PutU8(b uint8)
	PutI8(b int8)
}

// PutBlock writes data to dst prefixed with its length as a varint, the
// framing NextBlock expects.
func PutBlock(dst BufMut, data []byte) {
	dst.PutSlice(varint.Pack64(uint64(len(data))))
	dst.PutSlice(data)
}

// NextBlock reads a single length-prefixed block from src, advancing past
// both the varint header and the block body. The returned block is a copy,
// since advancing src can move its remaining bytes. It returns
// ErrTruncatedBlock if src doesn't hold a complete block.
func NextBlock(src Buf) ([]byte, error) {
	header := src.Bytes()
	if len(header) > 10 {
		header = header[:10]
	}
	size, n, err := varint.Unpack64(header)
	if err != nil {
		return nil, ErrTruncatedBlock
	}
	total := n + int(size)
	if total > src.Remaining() {
		return nil, ErrTruncatedBlock
	}
	block := append([]byte(nil), src.Bytes()[n:total]...)
	src.Advance(total)
	return block, nil
}
