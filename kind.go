package ubytes

// backendKind identifies which of the four storage backends a value
// currently uses. It is packed into the low two bits of kindTag.word.
//
// kindInline is deliberately assigned 0: the zero value of kindTag (and
// therefore of storage, RoBytes, MutBytes and ExtBytes) is then exactly
// the canonical empty state (inline, length zero), so a zero-value
// wrapper is immediately usable without calling a constructor - the same
// zero-value-useful property bytes.Buffer has.
type backendKind uintptr

const (
	kindInline backendKind = 0 // bits 2-7 hold the inline length; zero value is empty
	kindVector backendKind = 1 // upper bits hold the offset into the backing vector
	kindShared backendKind = 2 // the real address lives in storage.shared, not in the tag
	kindStatic backendKind = 3 // the real address lives in storage.static, not in the tag
)

const (
	tagVariantMask       = uintptr(0x3)
	tagInlineLenShift    = uintptr(2)
	tagInlineLenMask     = uintptr(0x3f)
	tagVectorOffsetShift = uintptr(2)
)

// inlineCap is the number of bytes the inline backend can hold without
// allocating: 31 bytes, the same small-buffer threshold as a four-word
// struct minus one tag byte, kept in its own array field rather than
// overlapping the tag word (see DESIGN.md "Central adaptation").
const inlineCap = 31

// kindTag packs the backend discriminant plus, for the vector and inline
// backends, an auxiliary integer (the vector offset or the inline length)
// into a single machine word. It carries no pointer: the addresses for
// the vector/shared/static backends live in ordinary GC-tracked fields on
// storage, so retagging never risks exposing a stale or untracked heap
// pointer to the collector.
type kindTag struct {
	word uintptr
}

func (t *kindTag) variant() backendKind { return backendKind(t.word & tagVariantMask) }

func (t *kindTag) isInline() bool { return t.word&tagVariantMask == uintptr(kindInline) }
func (t *kindTag) isVector() bool { return t.word&tagVariantMask == uintptr(kindVector) }
func (t *kindTag) isShared() bool { return t.word&tagVariantMask == uintptr(kindShared) }
func (t *kindTag) isStatic() bool { return t.word&tagVariantMask == uintptr(kindStatic) }

// inlineLen returns the packed inline length. Only meaningful when
// isInline() is true.
func (t *kindTag) inlineLen() int {
	return int((t.word >> tagInlineLenShift) & tagInlineLenMask)
}

// inlineIsEmpty reports the canonical empty state: inline with length 0.
func (t *kindTag) inlineIsEmpty() bool {
	return t.word == uintptr(kindInline)
}

// setInlineLen packs a new inline length, keeping the inline marker.
func (t *kindTag) setInlineLen(n int) {
	t.word = uintptr(n) << tagInlineLenShift
}

// setEmpty resets the tag to the canonical empty (inline, length 0) state.
func (t *kindTag) setEmpty() {
	t.word = uintptr(kindInline)
}

// setVector retags as the owned-vector backend with the given offset.
func (t *kindTag) setVector(offset int) {
	t.word = (uintptr(offset) << tagVectorOffsetShift) | uintptr(kindVector)
}

// setShared retags as the shared backend. The shared block pointer itself
// lives in storage.shared.
func (t *kindTag) setShared() {
	t.word = uintptr(kindShared)
}

// setStatic retags as the static backend. The slice itself lives in
// storage.static.
func (t *kindTag) setStatic() {
	t.word = uintptr(kindStatic)
}

// vectorOffset returns the packed vector offset. Only meaningful when
// isVector() is true.
func (t *kindTag) vectorOffset() int {
	return int(t.word >> tagVectorOffsetShift)
}

// advanceVectorOffset increments the packed vector offset by skip bytes,
// preserving the low two tag bits: skip must be shifted into the offset's
// position before adding, not added first and then shifted, or the whole
// existing word (offset and tag bits) would be shifted a second time.
func (t *kindTag) advanceVectorOffset(skip int) {
	t.word += uintptr(skip) << tagVectorOffsetShift
}
