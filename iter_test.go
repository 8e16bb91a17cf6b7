package ubytes

import "testing"

func TestSliceIterFrontAndBack(t *testing.T) {
	it := NewSliceIter([]byte("abcd"))
	first, ok := it.Next()
	if !ok || first != 'a' {
		t.Fatalf("Next() = %v, %v, want 'a', true", first, ok)
	}
	last, ok := it.NextBack()
	if !ok || last != 'd' {
		t.Fatalf("NextBack() = %v, %v, want 'd', true", last, ok)
	}
	if it.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", it.Len())
	}
}

func TestSliceIterExhausted(t *testing.T) {
	it := NewSliceIter(nil)
	if _, ok := it.Next(); ok {
		t.Fatalf("expected Next() to report exhausted on empty iterator")
	}
	if _, ok := it.NextBack(); ok {
		t.Fatalf("expected NextBack() to report exhausted on empty iterator")
	}
}

func TestSliceIterAllYieldsInOrder(t *testing.T) {
	it := NewSliceIter([]byte("abc"))
	var got []byte
	for v := range it.All() {
		got = append(got, v)
	}
	if string(got) != "abc" {
		t.Fatalf("All() yielded %q, want %q", got, "abc")
	}
}

func TestOwnedIterConsumesHandle(t *testing.T) {
	it := NewOwnedIter(NewRoBytesFromString("xyz"))
	var got []byte
	for {
		v, ok := it.Next()
		if !ok {
			break
		}
		got = append(got, v)
	}
	if string(got) != "xyz" {
		t.Fatalf("collected %q, want %q", got, "xyz")
	}
	if it.Len() != 0 {
		t.Fatalf("expected iterator to be drained")
	}
}

func TestOwnedIterRemainingIsIndependent(t *testing.T) {
	it := NewOwnedIter(NewRoBytesFromString("hello"))
	it.Next()
	rest := it.Remaining()
	if rest.String() != "ello" {
		t.Fatalf("Remaining() = %q, want %q", rest.String(), "ello")
	}
}
