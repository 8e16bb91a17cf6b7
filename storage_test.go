package ubytes

import (
	"bytes"
	"testing"
)

func TestStorageZeroValueIsEmpty(t *testing.T) {
	var s storage
	if !s.isEmpty() || s.len() != 0 {
		t.Fatalf("zero-value storage should be empty, got len=%d", s.len())
	}
	if s.capacity() != inlineCap {
		t.Fatalf("zero-value storage capacity = %d, want %d", s.capacity(), inlineCap)
	}
	// Immediately usable for mutation, no constructor required.
	s.extend([]byte("hi"))
	if string(s.data()) != "hi" {
		t.Fatalf("data = %q, want %q", s.data(), "hi")
	}
}

func TestFromStatic(t *testing.T) {
	src := []byte("static payload")
	s := fromStatic(src)
	if !s.tag.isStatic() {
		t.Fatalf("expected static backend")
	}
	if !bytes.Equal(s.data(), src) {
		t.Fatalf("data() = %q, want %q", s.data(), src)
	}
	if s.capacity() != len(src) {
		t.Fatalf("capacity() = %d, want %d", s.capacity(), len(src))
	}
}

func TestFromDataPicksBackendBySize(t *testing.T) {
	small := fromData(bytes.Repeat([]byte{1}, inlineCap))
	if !small.tag.isInline() {
		t.Fatalf("expected inline backend for data at the inline threshold")
	}

	large := fromData(bytes.Repeat([]byte{2}, inlineCap+1))
	if !large.tag.isVector() {
		t.Fatalf("expected vector backend for data past the inline threshold")
	}
	if large.capacity() != inlineCap+1 {
		t.Fatalf("exact-fit allocation capacity = %d, want %d", large.capacity(), inlineCap+1)
	}
}

func TestReserveGrowsInlineToVector(t *testing.T) {
	var s storage
	s.extend(bytes.Repeat([]byte{9}, inlineCap))
	if !s.tag.isInline() {
		t.Fatalf("expected still inline before overflow")
	}
	s.extend([]byte{1})
	if !s.tag.isVector() {
		t.Fatalf("expected promotion to vector backend after exceeding inline capacity")
	}
	if s.len() != inlineCap+1 {
		t.Fatalf("len() = %d, want %d", s.len(), inlineCap+1)
	}
}

func TestReserveStaticPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic reserving on static storage")
		}
	}()
	s := fromStatic([]byte("x"))
	s.reserve(1)
}

func TestTruncateAndIncLen(t *testing.T) {
	var s storage
	s.extend([]byte("hello world"))
	s.truncate(5)
	if string(s.data()) != "hello" {
		t.Fatalf("data() after truncate = %q", s.data())
	}
	s.incLen(1)
	if s.len() != 6 {
		t.Fatalf("len() after incLen = %d, want 6", s.len())
	}
}

func TestSplitOffAndSplitTo(t *testing.T) {
	var s storage
	s.extend([]byte("abcdefgh"))

	tail := s.splitOff(3)
	if string(s.data()) != "abc" {
		t.Fatalf("self after splitOff = %q, want %q", s.data(), "abc")
	}
	if string(tail.data()) != "defgh" {
		t.Fatalf("tail after splitOff = %q, want %q", tail.data(), "defgh")
	}

	var s2 storage
	s2.extend([]byte("abcdefgh"))
	head := s2.splitTo(3)
	if string(head.data()) != "abc" {
		t.Fatalf("head after splitTo = %q, want %q", head.data(), "abc")
	}
	if string(s2.data()) != "defgh" {
		t.Fatalf("self after splitTo = %q, want %q", s2.data(), "defgh")
	}
}

func TestTakeEmptiesSelf(t *testing.T) {
	var s storage
	s.extend([]byte("payload"))
	taken := s.take()
	if string(taken.data()) != "payload" {
		t.Fatalf("taken = %q", taken.data())
	}
	if s.len() != 0 {
		t.Fatalf("self after take should be empty, len=%d", s.len())
	}
}

func TestShallowClonePromotesVectorToShared(t *testing.T) {
	var s storage
	s.extend(bytes.Repeat([]byte{7}, inlineCap+10))
	if !s.tag.isVector() {
		t.Fatalf("precondition: expected vector backend")
	}

	clone := s.shallowClone()
	if !s.tag.isShared() || !clone.tag.isShared() {
		t.Fatalf("expected both handles to be promoted to shared backend")
	}
	if s.shared != clone.shared {
		t.Fatalf("expected both handles to point at the same shared block")
	}
	if s.shared.refCount != 2 {
		t.Fatalf("refCount = %d, want 2", s.shared.refCount)
	}

	// mutation through one handle is visible through the other: they share
	// the same backing array.
	s.dataMut()[0] = 42
	if clone.data()[0] != 42 {
		t.Fatalf("mutation via s not visible via clone")
	}
}

func TestShallowCloneSharedAcquires(t *testing.T) {
	var s storage
	s.extend(bytes.Repeat([]byte{1}, inlineCap+10))
	clone1 := s.shallowClone()
	clone2 := s.shallowClone()
	if s.shared.refCount != 3 {
		t.Fatalf("refCount = %d, want 3", s.shared.refCount)
	}
	clone1.release()
	clone2.release()
	if s.shared.refCount != 1 {
		t.Fatalf("refCount after releasing clones = %d, want 1", s.shared.refCount)
	}
}

func TestUpgradeUniqueSharedReclaimsCapacity(t *testing.T) {
	var s storage
	s.extend(bytes.Repeat([]byte{1}, inlineCap+10))
	clone := s.shallowClone()
	clone.becomeEmpty() // drop the extra reference, s is unique again

	if !s.upgrade() {
		t.Fatalf("expected upgrade to succeed once unique")
	}
	if s.capacity() != cap(s.shared.buf) {
		t.Fatalf("capacity() after upgrade = %d, want full backing capacity %d", s.capacity(), cap(s.shared.buf))
	}
}

func TestUpgradeStaticAlwaysFails(t *testing.T) {
	s := fromStatic([]byte("x"))
	if s.upgrade() {
		t.Fatalf("expected upgrade to fail on static storage")
	}
}

func TestTryUnsplitMergesAdjacentSplit(t *testing.T) {
	var s storage
	s.extend(bytes.Repeat([]byte{1}, inlineCap+10))

	tail := s.splitOff(5)
	ok := s.tryUnsplit(&tail)
	if !ok {
		t.Fatalf("expected adjacent split halves to merge")
	}
	if s.len() != inlineCap+10 {
		t.Fatalf("merged len() = %d, want %d", s.len(), inlineCap+10)
	}
	if !tail.isEmpty() {
		t.Fatalf("tail should be reset to empty after a successful merge")
	}
}

func TestTryUnsplitFailsOnUnrelatedStorage(t *testing.T) {
	var a storage
	a.extend([]byte("hello world, long enough to leave inline"))
	var b storage
	b.extend([]byte("a completely unrelated buffer, also long enough"))

	ok := a.tryUnsplit(&b)
	if ok {
		t.Fatalf("expected unrelated storage to fail to merge")
	}
	if b.isEmpty() {
		t.Fatalf("other must be left untouched on failure")
	}
}

func TestTryUnsplitEmptyOtherAlwaysSucceeds(t *testing.T) {
	var s storage
	s.extend([]byte("abc"))
	var empty storage
	if !s.tryUnsplit(&empty) {
		t.Fatalf("merging an empty other should always succeed")
	}
	if string(s.data()) != "abc" {
		t.Fatalf("data() = %q, want unchanged %q", s.data(), "abc")
	}
}

// TestSliceToEndIsNotAnOffByOne pins the sliceLen bound check: a slice
// reaching exactly to the end of the data must succeed, not panic.
func TestSliceToEndIsNotAnOffByOne(t *testing.T) {
	var s storage
	payload := bytes.Repeat([]byte{5}, inlineCap+20)
	s.extend(payload)

	got := s.slice(10, s.len())
	if !bytes.Equal(got.data(), payload[10:]) {
		t.Fatalf("slice(10, len()) = %v, want %v", got.data(), payload[10:])
	}
}

func TestSliceDemotesToInlineWhenSmall(t *testing.T) {
	var s storage
	s.extend(bytes.Repeat([]byte{3}, inlineCap+20))
	got := s.slice(0, 4)
	if !got.tag.isInline() {
		t.Fatalf("expected small slice to demote to inline backend")
	}
}

func TestSliceSmallPastLogicalEndPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected slice past len() to panic even when length <= inlineCap")
		}
	}()
	var s storage
	s.extend([]byte("abc"))
	s.truncate(1)
	s.slice(0, 3) // within capacity (3 bytes were written), past the logical length (1)
}

func TestAdvanceToEndBecomesEmpty(t *testing.T) {
	var s storage
	s.extend([]byte("abc"))
	s.advance(3)
	if !s.isEmpty() {
		t.Fatalf("expected empty after advancing past all data")
	}
	if !s.tag.isInline() {
		t.Fatalf("expected canonical empty inline state after advance-to-end")
	}
}

func TestTryIntoVecFailsForStaticAndInline(t *testing.T) {
	s1 := fromStatic([]byte("x"))
	if _, _, ok := s1.tryIntoVec(); ok {
		t.Fatalf("expected tryIntoVec to fail on static storage")
	}

	var s2 storage
	s2.extend([]byte("short"))
	if _, _, ok := s2.tryIntoVec(); ok {
		t.Fatalf("expected tryIntoVec to fail on inline storage")
	}
}

func TestTryIntoVecSucceedsForOwnedVector(t *testing.T) {
	var s storage
	s.extend(bytes.Repeat([]byte{1}, inlineCap+10))
	vec, offset, ok := s.tryIntoVec()
	if !ok {
		t.Fatalf("expected tryIntoVec to succeed on owned vector")
	}
	if offset != 0 {
		t.Fatalf("offset = %d, want 0", offset)
	}
	if len(vec) < inlineCap+10 {
		t.Fatalf("vec too short: %d", len(vec))
	}
	if !s.isEmpty() {
		t.Fatalf("s should be consumed (reset to empty) after a successful tryIntoVec")
	}
}
