package ubytes

import (
	"fmt"
	"hash"
)

// ExtBytes is an exclusively-owned, auto-growing mutable view. Unlike
// MutBytes, writes past the reserved capacity grow the backing storage
// instead of failing.
type ExtBytes struct {
	s storage
}

func NewExtBytesWithCapacity(capacity int) ExtBytes {
	return ExtBytes{s: withCapacity(capacity)}
}

func (e *ExtBytes) Len() int      { return e.s.len() }
func (e *ExtBytes) IsEmpty() bool { return e.s.isEmpty() }
func (e *ExtBytes) Capacity() int { return e.s.capacity() }

// Remaining is Len under the Buf interop name.
func (e *ExtBytes) Remaining() int { return e.s.len() }

// HasRemaining reports whether any unread bytes are left.
func (e *ExtBytes) HasRemaining() bool { return !e.s.isEmpty() }

// RemainingMut reports how many bytes can still be written without
// growing e, the BufMut interop name for Reserved's length.
func (e *ExtBytes) RemainingMut() int { return e.s.reservedLen() }

// AdvanceMut marks skip bytes of the reserved tail (as returned by
// BytesMut/Reserved) as logically written, without copying anything
// itself. The caller must have already filled them in.
func (e *ExtBytes) AdvanceMut(skip int) { e.s.incLen(skip) }

func (e *ExtBytes) Bytes() []byte    { return e.s.data() }
func (e *ExtBytes) BytesMut() []byte { return e.s.dataMut() }

func (e *ExtBytes) String() string { return storageString(&e.s) }

func (e *ExtBytes) Equal(other []byte) bool      { return storageEqual(&e.s, other) }
func (e *ExtBytes) Compare(other []byte) int     { return storageCompare(&e.s, other) }
func (e *ExtBytes) WriteHash(h hash.Hash)         { storageWriteHash(&e.s, h) }
func (e *ExtBytes) MarshalJSON() ([]byte, error) { return storageMarshalJSON(&e.s) }

func (e *ExtBytes) Format(f fmt.State, verb rune) { fmt.Fprintf(f, fmt.FormatString(f, verb), e.s.data()) }

// Freeze converts e into an immutable RoBytes with no copy.
func (e *ExtBytes) Freeze() RoBytes {
	b := RoBytes{s: e.s}
	e.s = storage{}
	return b
}

// Clone returns an independent copy of e's data.
func (e *ExtBytes) Clone() ExtBytes { return ExtBytes{s: fromData(e.s.data())} }

// SplitOff returns everything from at onward, including reserved capacity.
// e is truncated, capacity included, to at.
func (e *ExtBytes) SplitOff(at int) ExtBytes { return ExtBytes{s: e.s.splitOff(at)} }

// Take returns all current data, leaving e empty; any reserved space past
// the data stays with e.
func (e *ExtBytes) Take() ExtBytes { return ExtBytes{s: e.s.take()} }

// SplitTo is the mirror of SplitOff: it returns the initial at bytes, and e
// becomes the trailing part.
func (e *ExtBytes) SplitTo(at int) ExtBytes { return ExtBytes{s: e.s.splitTo(at)} }

func (e *ExtBytes) Truncate(length int) { e.s.truncate(length) }
func (e *ExtBytes) Advance(skip int)    { e.s.advance(skip) }
func (e *ExtBytes) Clear()              { e.s.truncate(0) }

// SetLen sets the logical length directly, trusting the caller to have
// already initialized the bytes up to it. Panics if n exceeds capacity.
func (e *ExtBytes) SetLen(n int) { e.s.setLen(n) }

// Reserved returns the writable-but-not-yet-logically-present tail.
func (e *ExtBytes) Reserved() []byte { return e.s.reserved() }

func (e *ExtBytes) Reserve(additional int) { e.s.reserve(additional) }

// ExtendFromSlice appends extend, growing e's storage if necessary.
func (e *ExtBytes) ExtendFromSlice(extend []byte) { e.s.extend(extend) }

// ExtendSeq drains a Go 1.23 byte iterator onto the end of e, growing
// storage as needed.
func (e *ExtBytes) ExtendSeq(seq func(yield func(byte) bool)) { storageExtendSeq(&e.s, seq) }

// PutSlice is an alias for ExtendFromSlice matching the wider package's
// naming for buffer writers.
func (e *ExtBytes) PutSlice(data []byte) { e.s.extend(data) }
func (e *ExtBytes) PutByte(b byte)       { e.s.appendByte(b) }
func (e *ExtBytes) PutU8(b uint8)        { e.s.appendByte(b) }
func (e *ExtBytes) PutI8(b int8)         { e.s.appendByte(byte(b)) }

// Write implements io.Writer. Unlike MutBytes.Write, this never fails: e
// grows to fit p.
func (e *ExtBytes) Write(p []byte) (int, error) {
	e.s.extend(p)
	return len(p), nil
}

// WriteByte implements io.ByteWriter. Always succeeds.
func (e *ExtBytes) WriteByte(b byte) error {
	e.s.appendByte(b)
	return nil
}

// WriteString implements io.StringWriter. Always succeeds.
func (e *ExtBytes) WriteString(s string) (int, error) {
	e.s.extend(stringToBytes(s))
	return len(s), nil
}

// TryUnsplit merges other onto the end of e if they describe adjacent
// memory. On success other is consumed (reset to empty); on failure other
// is left untouched.
func (e *ExtBytes) TryUnsplit(other *ExtBytes) bool { return e.s.tryUnsplit(&other.s) }

// Unsplit merges other onto the end of e, falling back to a copying append
// if they aren't adjacent. other is always consumed.
func (e *ExtBytes) Unsplit(other ExtBytes) {
	if !e.s.tryUnsplit(&other.s) {
		e.ExtendFromSlice(other.Bytes())
	}
}

// TryIntoVec extracts the backing array and the current offset into it, if
// e uniquely owns an owned-vector or shared backend. Consumes e on success.
func (e *ExtBytes) TryIntoVec() ([]byte, int, bool) {
	vec, offset, ok := e.s.tryIntoVec()
	if ok {
		e.s = storage{}
	}
	return vec, offset, ok
}

// ExtBytesFromRoBytes converts b into an ExtBytes, upgrading in place if b
// uniquely owns its storage and copying otherwise. Consumes b.
func ExtBytesFromRoBytes(b RoBytes) ExtBytes {
	if b.s.upgrade() {
		return ExtBytes{s: b.s}
	}
	return ExtBytes{s: fromData(b.s.data())}
}

// ExtBytesFromMutBytes converts m into an ExtBytes with no copy. Consumes m.
func ExtBytesFromMutBytes(m MutBytes) ExtBytes {
	return ExtBytes{s: m.s}
}
