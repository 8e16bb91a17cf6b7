package ubytes

import (
	"fmt"
	"hash"
)

// RoBytes is an immutable, cheaply cloneable view over storage. Cloning
// never copies heap data: a uniquely-owned vector is promoted to a shared
// block on first clone so both handles can coexist (see shallowClone), and
// an already-shared or static backend is simply handed another reference
// (or, for static, another pointer to the same read-only memory). Inline
// data, at most inlineCap bytes, is copied along with the value.
type RoBytes struct {
	s storage
}

// NewRoBytesWithCapacity allocates an empty RoBytes with at least the given
// capacity reserved, for callers that plan to upgrade it via TryIntoMut or
// TryIntoExt and write into it before freezing it back.
func NewRoBytesWithCapacity(capacity int) RoBytes {
	return RoBytes{s: withCapacity(capacity)}
}

// NewRoBytesFromStatic wraps data with no copy and no ownership. data must
// outlive every RoBytes derived from it and must never be mutated by the
// caller afterward.
func NewRoBytesFromStatic(data []byte) RoBytes {
	return RoBytes{s: fromStatic(data)}
}

// NewRoBytesFromBytes copies data into a freshly owned RoBytes.
func NewRoBytesFromBytes(data []byte) RoBytes {
	return RoBytes{s: fromData(data)}
}

// NewRoBytesFromString copies s into a freshly owned RoBytes.
func NewRoBytesFromString(s string) RoBytes {
	return RoBytes{s: fromData(stringToBytes(s))}
}

// NewRoBytesFromSeq drains a Go 1.23 byte iterator into a freshly owned
// RoBytes, growing geometrically as it consumes seq so it doesn't
// reallocate on every single byte.
func NewRoBytesFromSeq(seq func(yield func(byte) bool)) RoBytes {
	var b RoBytes
	storageExtendSeq(&b.s, seq)
	return b
}

// NewRoBytesFromVector adopts vec directly as the backing array for a new
// RoBytes, starting its visible data at offset. No copy is made; vec must
// not be used by the caller afterward. If what remains past offset is
// small enough, it's copied into the inline backend instead and vec is
// left for the caller to reuse or discard.
func NewRoBytesFromVector(vec []byte, offset int) RoBytes {
	return RoBytes{s: fromVector(vec, offset)}
}

func (b *RoBytes) Len() int      { return b.s.len() }
func (b *RoBytes) IsEmpty() bool { return b.s.isEmpty() }

// Remaining is Len under the Buf interop name.
func (b *RoBytes) Remaining() int { return b.s.len() }

// HasRemaining reports whether any unread bytes are left.
func (b *RoBytes) HasRemaining() bool { return !b.s.isEmpty() }

// Bytes returns the current data as a read-only slice. The slice aliases
// b's storage and must not be mutated or retained past b's next mutation.
func (b *RoBytes) Bytes() []byte { return b.s.data() }

func (b *RoBytes) String() string { return storageString(&b.s) }

func (b *RoBytes) Equal(other []byte) bool      { return storageEqual(&b.s, other) }
func (b *RoBytes) Compare(other []byte) int     { return storageCompare(&b.s, other) }
func (b *RoBytes) WriteHash(h hash.Hash)         { storageWriteHash(&b.s, h) }
func (b *RoBytes) MarshalJSON() ([]byte, error) { return storageMarshalJSON(&b.s) }

func (b *RoBytes) Format(f fmt.State, verb rune) { fmt.Fprintf(f, fmt.FormatString(f, verb), b.s.data()) }

// Slice returns b.Bytes()[begin:end] as a new, independent RoBytes.
func (b *RoBytes) Slice(begin, end int) RoBytes { return RoBytes{s: b.s.slice(begin, end)} }

// SliceFrom returns b.Bytes()[begin:].
func (b *RoBytes) SliceFrom(begin int) RoBytes { return RoBytes{s: b.s.sliceFrom(begin)} }

// SliceTo returns b.Bytes()[:end].
func (b *RoBytes) SliceTo(end int) RoBytes { return RoBytes{s: b.s.sliceTo(end)} }

// SplitOff returns everything from at onward, including reserved capacity.
// b is truncated, capacity included, to at.
func (b *RoBytes) SplitOff(at int) RoBytes { return RoBytes{s: b.s.splitOff(at)} }

// SplitTo is the mirror of SplitOff: it returns the initial at bytes, and b
// becomes the trailing part.
func (b *RoBytes) SplitTo(at int) RoBytes { return RoBytes{s: b.s.splitTo(at)} }

func (b *RoBytes) Truncate(length int) { b.s.truncate(length) }
func (b *RoBytes) Advance(skip int)    { b.s.advance(skip) }
func (b *RoBytes) Clear()              { b.s.truncate(0) }

// Clone returns a second, independent handle to the same data. It never
// copies heap bytes (only inline data is copied with the value), but it can
// retag b in place (promoting an owned vector to a shared block): see the
// package doc's single-goroutine warning.
func (b *RoBytes) Clone() RoBytes { return RoBytes{s: b.s.shallowClone()} }

// ExtendFromSlice appends extend, upgrading through a temporary MutBytes
// (growing in place if b uniquely owns its storage, reallocating
// otherwise) and freezing the result back into b.
func (b *RoBytes) ExtendFromSlice(extend []byte) {
	if len(extend) == 0 {
		return
	}
	newCap := b.Len() + len(extend)
	if newCap < b.Len() {
		panic(ErrCapacityOverflow)
	}

	taken := *b
	*b = RoBytes{}
	m, ok := taken.TryIntoMut()
	if ok {
		m.ExtendFromSlice(extend)
	} else {
		m = NewMutBytesWithCapacity(newCap)
		m.PutSlice(taken.Bytes())
		m.PutSlice(extend)
	}
	*b = m.Freeze()
}

// ExtendSeq drains a Go 1.23 byte iterator onto the end of b, upgrading
// through a temporary MutBytes the same way ExtendFromSlice does.
func (b *RoBytes) ExtendSeq(seq func(yield func(byte) bool)) {
	taken := *b
	*b = RoBytes{}
	m, ok := taken.TryIntoMut()
	if !ok {
		m = MutBytesFromRoBytes(taken)
	}
	storageExtendSeq(&m.s, seq)
	*b = m.Freeze()
}

// TryIntoMut reclaims a MutBytes from b if b uniquely owns its storage.
func (b *RoBytes) TryIntoMut() (MutBytes, bool) {
	if b.s.upgrade() {
		m := MutBytes{s: b.s}
		b.s = storage{}
		return m, true
	}
	return MutBytes{}, false
}

// TryIntoExt reclaims an ExtBytes from b if b uniquely owns its storage.
func (b *RoBytes) TryIntoExt() (ExtBytes, bool) {
	if b.s.upgrade() {
		e := ExtBytes{s: b.s}
		b.s = storage{}
		return e, true
	}
	return ExtBytes{}, false
}

// TryUnsplit merges other onto the end of b if they describe adjacent
// memory. On success other is consumed (reset to empty); on failure other
// is left untouched.
func (b *RoBytes) TryUnsplit(other *RoBytes) bool { return b.s.tryUnsplit(&other.s) }

// Unsplit merges other onto the end of b, falling back to a copying append
// if they aren't adjacent. other is always consumed; the caller must not
// use it again afterward.
func (b *RoBytes) Unsplit(other RoBytes) {
	if !b.s.tryUnsplit(&other.s) {
		b.ExtendFromSlice(other.Bytes())
	}
}

// TryIntoVec extracts the backing array and the current offset into it, if
// b uniquely owns an owned-vector or shared backend. Consumes b on success.
func (b *RoBytes) TryIntoVec() ([]byte, int, bool) {
	vec, offset, ok := b.s.tryIntoVec()
	if ok {
		b.s = storage{}
	}
	return vec, offset, ok
}
