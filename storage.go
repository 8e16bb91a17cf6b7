package ubytes

import (
	"math/bits"
	"unsafe"
)

// rawStartPointer and rawEndPointer give the address-identity comparisons
// tryUnsplit needs to detect adjacent backing arrays, using
// unsafe.SliceData instead of converting through uintptr arithmetic.
func rawStartPointer(b []byte) unsafe.Pointer {
	return unsafe.Pointer(unsafe.SliceData(b))
}

func rawEndPointer(b []byte) unsafe.Pointer {
	if len(b) == 0 {
		return rawStartPointer(b)
	}
	return unsafe.Add(unsafe.Pointer(unsafe.SliceData(b)), len(b))
}

// storage is the single polymorphic representation shared by RoBytes,
// MutBytes and ExtBytes. Which of the four backends is active is recorded in
// tag; the remaining fields are simply unused for backends that don't need
// them (e.g. vec is nil unless tag.isVector()).
//
// The vector backend's offset into its backing array is packed into tag
// itself; the static and shared backends keep their offset in winOffset
// instead, since they never need to reconstruct a moved or reallocated
// backing array from the tag alone.
type storage struct {
	tag kindTag

	static []byte // kindStatic: immutable view, never reallocated

	vec []byte // kindVector: full backing array, always kept at len(vec)==cap(vec)

	shared    *sharedBlock // kindShared
	winOffset int          // start index into static/shared.buf; vector uses tag.vectorOffset() instead

	winLen int // logical length, for static/vector/shared (inline uses tag.inlineLen())
	winCap int // logical capacity, for static/vector/shared (inline uses inlineCap)

	inline [inlineCap]byte // kindInline payload
}

const maxVectorOffsetBits = bits.UintSize - 2

// capacityNeedsSharedPromotion reports whether capacity is too large to
// encode as a vector offset in kindTag's packed word, in which case the
// vector must be stored behind a sharedBlock instead (whose offset lives in
// a plain field, not packed).
func capacityNeedsSharedPromotion(capacity int) bool {
	return uint(capacity)>>maxVectorOffsetBits != 0
}

// fromStatic builds storage backed directly by data, with no copy and no
// ownership: mutation must never be attempted against it.
func fromStatic(data []byte) storage {
	var s storage
	s.tag.setStatic()
	s.static = data
	s.winLen = len(data)
	s.winCap = len(data)
	return s
}

// storeVector wraps full (the entire backing array, already at full
// capacity) as either an owned vector or, if its capacity can't be packed
// into the tag's offset field, a shared block with a single reference.
func storeVector(full []byte, offset, length int) storage {
	full = full[:cap(full)]
	capField := cap(full) - offset
	if capacityNeedsSharedPromotion(cap(full)) {
		var s storage
		s.tag.setShared()
		s.shared = newSharedBlock1(full)
		s.winOffset = offset
		s.winLen = length
		s.winCap = capField
		return s
	}
	var s storage
	s.tag.setVector(offset)
	s.vec = full
	s.winLen = length
	s.winCap = capField
	return s
}

// fromDataInline copies data into a fresh inline storage. Panics if data is
// larger than inlineCap.
func fromDataInline(data []byte) storage {
	if len(data) > inlineCap {
		panic("ubytes: inline data larger than inline capacity")
	}
	var s storage
	s.tag.setInlineLen(len(data))
	copy(s.inline[:], data)
	return s
}

// fromVector builds storage from a caller-owned vector and an offset into
// it, falling back to the inline backend if what remains past offset is
// small enough.
func fromVector(vec []byte, offset int) storage {
	if offset > len(vec) {
		panic("ubytes: offset beyond vector length")
	}
	if len(vec)-offset <= inlineCap {
		return fromDataInline(vec[offset:])
	}
	return storeVector(vec, offset, len(vec)-offset)
}

// allocVec allocates an owned vector backend of the given capacity; unlike
// withCapacity it never uses the inline backend, even for small capacities.
func allocVec(capacity int) storage {
	full := make([]byte, capacity)
	return storeVector(full, 0, 0)
}

// withCapacityAndData allocates owned storage of the given capacity,
// copying data into the start of it.
func withCapacityAndData(capacity int, data []byte) storage {
	if capacity <= inlineCap {
		return fromDataInline(data)
	}
	full := make([]byte, capacity)
	copy(full, data)
	return storeVector(full, 0, len(data))
}

// withCapacity allocates owned, mutable storage with at least the given
// capacity, picking inline or vector as appropriate.
func withCapacity(capacity int) storage {
	if capacity <= inlineCap {
		return storage{}
	}
	return allocVec(capacity)
}

// fromData allocates owned storage holding a copy of data: inline when it
// fits, otherwise a vector sized exactly to fit (no reserved tail).
func fromData(data []byte) storage {
	if len(data) <= inlineCap {
		return fromDataInline(data)
	}
	full := make([]byte, len(data))
	copy(full, data)
	return storeVector(full, 0, len(data))
}

func (s *storage) len() int {
	if s.tag.isInline() {
		return s.tag.inlineLen()
	}
	return s.winLen
}

func (s *storage) isEmpty() bool { return s.len() == 0 }

func (s *storage) capacity() int {
	if s.tag.isInline() {
		return inlineCap
	}
	return s.winCap
}

// rawWindow returns the current data window of a non-inline backend as a
// three-index slice of length s.winLen, so its own cap() reports exactly s.winCap rather than
// whatever capacity the backing array happens to have beyond that.
func (s *storage) rawWindow() []byte {
	switch s.tag.variant() {
	case kindStatic:
		return s.static[s.winOffset : s.winOffset+s.winLen : s.winOffset+s.winCap]
	case kindVector:
		off := s.tag.vectorOffset()
		return s.vec[off : off+s.winLen : off+s.winCap]
	case kindShared:
		return s.shared.buf[s.winOffset : s.winOffset+s.winLen : s.winOffset+s.winCap]
	default:
		panic("ubytes: rawWindow called on inline storage")
	}
}

// data returns a slice of length len().
func (s *storage) data() []byte {
	if s.tag.isInline() {
		return s.inline[:s.tag.inlineLen()]
	}
	return s.rawWindow()
}

// dataMut returns a mutable slice of length len(). Panics on static storage.
func (s *storage) dataMut() []byte {
	if s.tag.isStatic() {
		panic("ubytes: cannot mutate static storage")
	}
	return s.data()
}

// reserved returns the writable-but-not-yet-logically-present tail, of
// length capacity()-len(). After writing into it call incLen.
func (s *storage) reserved() []byte {
	if s.tag.isStatic() {
		panic("ubytes: cannot reserve static storage")
	}
	if s.tag.isInline() {
		n := s.tag.inlineLen()
		return s.inline[n:inlineCap]
	}
	w := s.rawWindow()
	full := w[:cap(w)]
	return full[len(w):]
}

func (s *storage) reservedLen() int {
	if s.tag.isStatic() {
		panic("ubytes: cannot reserve static storage")
	}
	return s.capacity() - s.len()
}

// truncate shortens the logical length; a no-op if newLen >= len().
func (s *storage) truncate(newLen int) {
	if s.tag.isInline() {
		if newLen < s.tag.inlineLen() {
			s.tag.setInlineLen(newLen)
		}
		return
	}
	if newLen < s.winLen {
		s.winLen = newLen
	}
}

// truncateCapacity shortens length and, for the shared backend, capacity
// too, so another handle into the same block can claim the freed tail as
// its own reserved space. Static and owned-vector backends never shrink
// capacity, since nothing else can be referencing their tail.
func (s *storage) truncateCapacity(newLen int) {
	switch s.tag.variant() {
	case kindInline:
		if newLen < s.tag.inlineLen() {
			s.tag.setInlineLen(newLen)
		}
	case kindStatic, kindVector:
		if newLen < s.winLen {
			s.winLen = newLen
		}
	case kindShared:
		if newLen < s.winLen {
			s.winLen = newLen
			s.winCap = newLen
		} else if newLen < s.winCap {
			s.winCap = newLen
		}
	}
}

// incLen grows the logical length by n, asserting it stays within capacity.
func (s *storage) incLen(n int) {
	if s.tag.isInline() {
		cur := s.tag.inlineLen()
		if n > inlineCap-cur {
			panic("ubytes: incLen exceeds inline capacity")
		}
		s.tag.setInlineLen(cur + n)
		return
	}
	if n > s.winCap-s.winLen {
		panic("ubytes: incLen exceeds capacity")
	}
	s.winLen += n
}

// setLen sets the logical length directly, asserting it stays within
// capacity. Prefer incLen; this exists mainly so callers mirroring the
// bytes.Buffer/bufio style of "write into Bytes() then fix up the length"
// have a way to do it.
func (s *storage) setLen(n int) {
	if s.tag.isInline() {
		if n > inlineCap {
			panic("ubytes: setLen exceeds inline capacity")
		}
		s.tag.setInlineLen(n)
		return
	}
	if n > s.winCap {
		panic("ubytes: setLen exceeds capacity")
	}
	s.winLen = n
}

// growVectorCapacity returns full grown to hold at least offset+contentLen+
// additional bytes, reusing the existing array when it's already large
// enough. When it does have to reallocate it doubles the existing capacity
// rather than growing to the exact minimum, the same amortization
// bytes.Buffer uses, so repeated small appends stay amortized O(1) instead
// of reallocating on every call.
func growVectorCapacity(full []byte, offset, contentLen, additional int) []byte {
	needed := offset + contentLen + additional
	if cap(full) >= needed {
		return full[:cap(full)]
	}
	doubled := 2 * cap(full)
	if doubled > needed {
		needed = doubled
	}
	grown := make([]byte, needed)
	copy(grown, full[:offset+contentLen])
	return grown
}

// reserveFromVec rebuilds storage for an owned vector backend that needs
// more room, choosing between relocating the content to the front of the
// existing array, growing the array in place while keeping the offset, or
// allocating a fresh, exactly-sized array - whichever wastes the least.
func reserveFromVec(full []byte, offset, contentLen, additional int) storage {
	required := contentLen + additional
	switch {
	case offset > 0 && required <= cap(full):
		copy(full, full[offset:offset+contentLen])
		return storeVector(full, 0, contentLen)
	case offset < 32:
		grown := growVectorCapacity(full, offset, contentLen, additional)
		return storeVector(grown, offset, contentLen)
	default:
		return withCapacityAndData(required, full[offset:offset+contentLen])
	}
}

// release drops one reference to a shared block, if any is held. It is a
// no-op for every other backend, since they have no refcount to maintain.
func (s *storage) release() {
	if s.tag.isShared() {
		s.shared.release()
	}
}

// becomeEmpty releases any held resources and resets to the canonical empty
// inline state.
func (s *storage) becomeEmpty() {
	s.release()
	*s = storage{}
}

// reserve ensures at least additional bytes of writable capacity past
// len(). Panics on static storage.
func (s *storage) reserve(additional int) {
	if additional == 0 {
		return
	}
	switch s.tag.variant() {
	case kindStatic:
		panic("ubytes: cannot reserve capacity on static storage")
	case kindVector:
		newCapacity := s.winLen + additional
		if newCapacity <= s.winCap {
			return
		}
		full, offset, contentLen := s.vec, s.tag.vectorOffset(), s.winLen
		*s = reserveFromVec(full, offset, contentLen, additional)
	case kindInline:
		cur := s.tag.inlineLen()
		if cur+additional <= inlineCap {
			return
		}
		data := append([]byte(nil), s.inline[:cur]...)
		*s = withCapacityAndData(cur+additional, data)
	case kindShared:
		contentLen := s.winLen
		newCapacity := contentLen + additional
		if newCapacity <= s.winCap {
			return
		}
		if full, offset, ok := s.tryIntoVec(); ok {
			*s = reserveFromVec(full, offset, contentLen, additional)
		} else {
			data := append([]byte(nil), s.data()...)
			s.release()
			*s = withCapacityAndData(newCapacity, data)
		}
	}
}

// extend reserves room for data, copies it in, and advances len().
func (s *storage) extend(data []byte) {
	s.reserve(len(data))
	copy(s.reserved(), data)
	s.incLen(len(data))
}

func (s *storage) appendByte(b byte) {
	s.reserve(1)
	s.reserved()[0] = b
	s.incLen(1)
}

// putSlice writes into already-reserved capacity; never allocates, panics
// if there isn't enough room.
func (s *storage) putSlice(data []byte) {
	copy(s.reserved(), data)
	s.incLen(len(data))
}

func (s *storage) putByte(b byte) {
	s.reserved()[0] = b
	s.incLen(1)
}

// sliceLen returns self.data()[begin:][:length], demoting to inline storage
// when the result is small enough to fit.
//
// The bound check is deliberately non-strict (begin+length <= s.len()): a
// slice that reaches exactly to the end of the data, like s.slice(0,
// s.len()), must succeed rather than panic. It runs unconditionally,
// before either fast path below: s.data() is only valid up to s.len(),
// not out to its full capacity, so a request past the logical end (past a
// Truncate, or into a MutBytes/ExtBytes's spare reserved tail) must panic
// rather than read whatever bytes happen to sit there.
func (s *storage) sliceLen(begin, length int) storage {
	if begin < 0 || length < 0 || begin+length > s.len() {
		panic("ubytes: slice out of range")
	}
	if length == 0 {
		return storage{}
	}
	if length <= inlineCap {
		return fromDataInline(s.data()[begin : begin+length])
	}
	clone := s.shallowClone()
	switch clone.tag.variant() {
	case kindStatic, kindShared:
		clone.winOffset += begin
	default:
		panic("ubytes: shallow clone unexpectedly owns a vector")
	}
	clone.winLen = length
	clone.winCap = length
	return clone
}

// slice returns self.data()[begin:end].
func (s *storage) slice(begin, end int) storage {
	if begin > end {
		panic("ubytes: slice begin after end")
	}
	return s.sliceLen(begin, end-begin)
}

// sliceFrom returns self.data()[begin:].
func (s *storage) sliceFrom(begin int) storage {
	n := s.len()
	return s.sliceLen(begin, n-begin)
}

// sliceTo returns self.data()[:end].
func (s *storage) sliceTo(end int) storage {
	return s.sliceLen(0, end)
}

// advance drops the first skip bytes. Panics if skip > len().
func (s *storage) advance(skip int) {
	if s.tag.isInline() {
		cur := s.tag.inlineLen()
		if skip > cur {
			panic("ubytes: advance past end of inline data")
		}
		newLen := cur - skip
		copy(s.inline[:newLen], s.inline[skip:cur])
		s.tag.setInlineLen(newLen)
		return
	}
	if skip > s.winLen {
		panic("ubytes: advance past end of data")
	}
	if skip == s.winCap {
		s.becomeEmpty()
		return
	}
	if s.tag.isVector() {
		s.tag.advanceVectorOffset(skip)
	} else {
		s.winOffset += skip
	}
	s.winLen -= skip
	s.winCap -= skip
}

// splitOff returns a new storage holding everything from at onward
// (including reserved capacity); self is truncated, capacity included, to
// at. Panics if at > len().
func (s *storage) splitOff(at int) storage {
	tail := s.shallowClone()
	tail.advance(at)
	s.truncateCapacity(at)
	return tail
}

// splitTo is the mirror of splitOff: it returns the initial at bytes, and
// self becomes the trailing part.
func (s *storage) splitTo(at int) storage {
	tail := s.shallowClone()
	s.advance(at)
	tail.truncateCapacity(at)
	return tail
}

// take returns all current data, with capacity equal to its length, leaving
// self empty; any reserved space past the data stays with self.
func (s *storage) take() storage {
	return s.splitTo(s.len())
}

// tryUnsplit attempts to merge other onto the end of s, succeeding only if
// they describe adjacent memory in the same non-vector backing array (or if
// either side is empty). On success other is consumed and reset to the
// empty state; on failure other is left untouched for the caller to keep.
func (s *storage) tryUnsplit(other *storage) bool {
	if other.isEmpty() {
		other.becomeEmpty()
		return true
	}

	if s.tag.isInline() {
		if !s.tag.inlineIsEmpty() {
			return false
		}
		s.release()
		*s = *other
		*other = storage{}
		return true
	}

	if s.winLen == 0 {
		s.release()
		*s = *other
		*other = storage{}
		return true
	}

	if other.tag.isInline() {
		return false
	}
	if s.tag.isVector() || other.tag.isVector() {
		return false
	}

	selfWindow := s.rawWindow()
	otherWindow := other.rawWindow()
	if rawEndPointer(selfWindow) != rawStartPointer(otherWindow) {
		return false
	}

	s.winCap += other.winCap
	s.winLen += other.winLen
	other.release()
	*other = storage{}
	return true
}

// upgrade reserves the full underlying capacity for self if it's the unique
// owner of its storage, and reports whether it is. Static storage is never
// unique (it isn't owned at all); shared storage is unique only when its
// refcount is 1.
func (s *storage) upgrade() bool {
	switch s.tag.variant() {
	case kindStatic:
		return false
	case kindShared:
		if s.shared.refCount != 1 {
			return false
		}
		s.winCap = cap(s.shared.buf) - s.winOffset
		return true
	default: // inline, vector
		return true
	}
}

// tryIntoVec extracts the backing array and offset for the owned-vector
// backend, or for the shared backend when uniquely held. Consumes s on
// success (leaving it reset to empty); leaves s untouched on failure.
func (s *storage) tryIntoVec() (vec []byte, offset int, ok bool) {
	switch s.tag.variant() {
	case kindVector:
		vec, offset = s.vec, s.tag.vectorOffset()
		*s = storage{}
		return vec, offset, true
	case kindShared:
		if s.shared.refCount != 1 {
			return nil, 0, false
		}
		vec, offset = s.shared.buf, s.winOffset
		*s = storage{}
		return vec, offset, true
	default:
		return nil, 0, false
	}
}

// shallowClone returns a second handle to the same data. An owned vector is
// promoted to a shared block (handing out two references at once) so both
// handles can coexist; a shared block simply gains one more reference;
// static and inline storage are plain, independent copies.
func (s *storage) shallowClone() storage {
	switch s.tag.variant() {
	case kindVector:
		full, offset := s.vec, s.tag.vectorOffset()
		s.tag.setShared()
		s.shared = newSharedBlock2(full)
		s.winOffset = offset
		s.vec = nil
		return *s
	case kindShared:
		s.shared.acquire()
		return *s
	default: // static, inline
		return *s
	}
}
