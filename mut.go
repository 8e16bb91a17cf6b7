package ubytes

import (
	"fmt"
	"hash"
)

// MutBytes is an exclusively-owned, capacity-bounded mutable view. Write,
// WriteByte and WriteString fail past its reserved capacity, and the Put*
// methods panic, rather than growing it; only Reserve, ExtendFromSlice and
// ExtendSeq grow it. Use ExtBytes when the caller wants writes to always
// succeed.
type MutBytes struct {
	s storage
}

func NewMutBytesWithCapacity(capacity int) MutBytes {
	return MutBytes{s: withCapacity(capacity)}
}

func (m *MutBytes) Len() int      { return m.s.len() }
func (m *MutBytes) IsEmpty() bool { return m.s.isEmpty() }
func (m *MutBytes) Capacity() int { return m.s.capacity() }

// Remaining is Len under the Buf interop name.
func (m *MutBytes) Remaining() int { return m.s.len() }

// HasRemaining reports whether any unread bytes are left.
func (m *MutBytes) HasRemaining() bool { return !m.s.isEmpty() }

// RemainingMut reports how many bytes can still be written without
// growing m, the BufMut interop name for Reserved's length.
func (m *MutBytes) RemainingMut() int { return m.s.reservedLen() }

// AdvanceMut marks skip bytes of the reserved tail (as returned by
// BytesMut/Reserved) as logically written, without copying anything
// itself. The caller must have already filled them in.
func (m *MutBytes) AdvanceMut(skip int) { m.s.incLen(skip) }

// Bytes returns the current data as a slice aliasing m's storage.
func (m *MutBytes) Bytes() []byte { return m.s.data() }

// BytesMut returns the current data as a mutable slice aliasing m's
// storage.
func (m *MutBytes) BytesMut() []byte { return m.s.dataMut() }

func (m *MutBytes) String() string { return storageString(&m.s) }

func (m *MutBytes) Equal(other []byte) bool      { return storageEqual(&m.s, other) }
func (m *MutBytes) Compare(other []byte) int     { return storageCompare(&m.s, other) }
func (m *MutBytes) WriteHash(h hash.Hash)         { storageWriteHash(&m.s, h) }
func (m *MutBytes) MarshalJSON() ([]byte, error) { return storageMarshalJSON(&m.s) }

func (m *MutBytes) Format(f fmt.State, verb rune) { fmt.Fprintf(f, fmt.FormatString(f, verb), m.s.data()) }

// Freeze converts m into an immutable RoBytes with no copy.
func (m *MutBytes) Freeze() RoBytes {
	b := RoBytes{s: m.s}
	m.s = storage{}
	return b
}

// Clone returns an independent copy of m's data, always copying: unlike
// RoBytes.Clone, MutBytes is exclusively owned, so there is no cheaper
// option than an actual copy.
func (m *MutBytes) Clone() MutBytes { return MutBytes{s: fromData(m.s.data())} }

// SplitOff returns everything from at onward, including reserved capacity.
// m is truncated, capacity included, to at.
func (m *MutBytes) SplitOff(at int) MutBytes { return MutBytes{s: m.s.splitOff(at)} }

// Take returns all current data, leaving m empty; any reserved space past
// the data stays with m.
func (m *MutBytes) Take() MutBytes { return MutBytes{s: m.s.take()} }

// SplitTo is the mirror of SplitOff: it returns the initial at bytes, and m
// becomes the trailing part.
func (m *MutBytes) SplitTo(at int) MutBytes { return MutBytes{s: m.s.splitTo(at)} }

func (m *MutBytes) Truncate(length int) { m.s.truncate(length) }
func (m *MutBytes) Advance(skip int)    { m.s.advance(skip) }
func (m *MutBytes) Clear()              { m.s.truncate(0) }

// SetLen sets the logical length directly, trusting the caller to have
// already initialized the bytes up to it (e.g. via Reserved). Panics if n
// exceeds the current capacity.
func (m *MutBytes) SetLen(n int) { m.s.setLen(n) }

// Reserved returns the writable-but-not-yet-logically-present tail. After
// writing into it, call AdvanceMut or SetLen to make those bytes part of
// the data.
func (m *MutBytes) Reserved() []byte { return m.s.reserved() }

func (m *MutBytes) Reserve(additional int) { m.s.reserve(additional) }

func (m *MutBytes) ExtendFromSlice(extend []byte) { m.s.extend(extend) }

// ExtendSeq drains a Go 1.23 byte iterator onto the end of m, growing
// reserved capacity as needed.
func (m *MutBytes) ExtendSeq(seq func(yield func(byte) bool)) { storageExtendSeq(&m.s, seq) }

// PutSlice writes into already-reserved capacity; never allocates, panics
// if there isn't enough room reserved.
func (m *MutBytes) PutSlice(data []byte) { m.s.putSlice(data) }
func (m *MutBytes) PutByte(b byte)       { m.s.putByte(b) }
func (m *MutBytes) PutU8(b uint8)        { m.s.putByte(b) }
func (m *MutBytes) PutI8(b int8)         { m.s.putByte(byte(b)) }

// Write implements io.Writer. It never grows m's capacity: if p doesn't
// fit in the already-reserved tail, it returns ErrInsufficientCapacity and
// writes nothing.
func (m *MutBytes) Write(p []byte) (int, error) {
	if len(p) > m.s.reservedLen() {
		return 0, ErrInsufficientCapacity
	}
	m.s.putSlice(p)
	return len(p), nil
}

// WriteByte implements io.ByteWriter with the same no-grow contract as
// Write.
func (m *MutBytes) WriteByte(b byte) error {
	if m.s.reservedLen() < 1 {
		return ErrInsufficientCapacity
	}
	m.s.putByte(b)
	return nil
}

// WriteString implements io.StringWriter with the same no-grow contract as
// Write.
func (m *MutBytes) WriteString(s string) (int, error) {
	return m.Write(stringToBytes(s))
}

// TryUnsplit merges other onto the end of m if they describe adjacent
// memory. On success other is consumed (reset to empty); on failure other
// is left untouched.
func (m *MutBytes) TryUnsplit(other *MutBytes) bool { return m.s.tryUnsplit(&other.s) }

// Unsplit merges other onto the end of m, falling back to a copying append
// if they aren't adjacent. other is always consumed; the caller must not
// use it again afterward.
func (m *MutBytes) Unsplit(other MutBytes) {
	if !m.s.tryUnsplit(&other.s) {
		m.ExtendFromSlice(other.Bytes())
	}
}

// TryIntoVec extracts the backing array and the current offset into it, if
// m uniquely owns an owned-vector or shared backend. Consumes m on success.
func (m *MutBytes) TryIntoVec() ([]byte, int, bool) {
	vec, offset, ok := m.s.tryIntoVec()
	if ok {
		m.s = storage{}
	}
	return vec, offset, ok
}

// MutBytesFromRoBytes converts b into a MutBytes, upgrading in place if b
// uniquely owns its storage and copying otherwise. Consumes b.
func MutBytesFromRoBytes(b RoBytes) MutBytes {
	if b.s.upgrade() {
		return MutBytes{s: b.s}
	}
	return MutBytes{s: fromData(b.s.data())}
}

// MutBytesFromExtBytes converts e into a MutBytes with no copy. Consumes e.
func MutBytesFromExtBytes(e ExtBytes) MutBytes {
	return MutBytes{s: e.s}
}
