package ubytes

// SliceIter is a bidirectional byte iterator borrowing from a slice. It
// does not own the data it walks.
type SliceIter struct {
	data []byte
}

// NewSliceIter returns an iterator over data, borrowed: data must outlive
// the iterator and must not be mutated while it's in use.
func NewSliceIter(data []byte) SliceIter {
	return SliceIter{data: data}
}

// Next advances from the front, returning false once exhausted.
func (it *SliceIter) Next() (byte, bool) {
	if len(it.data) == 0 {
		return 0, false
	}
	v := it.data[0]
	it.data = it.data[1:]
	return v, true
}

// NextBack advances from the back, returning false once exhausted.
func (it *SliceIter) NextBack() (byte, bool) {
	n := len(it.data)
	if n == 0 {
		return 0, false
	}
	v := it.data[n-1]
	it.data = it.data[:n-1]
	return v, true
}

// Len reports how many bytes remain.
func (it *SliceIter) Len() int { return len(it.data) }

// Remaining returns the yet-unconsumed bytes as a slice, still aliasing
// the source slice the iterator was built from.
func (it *SliceIter) Remaining() []byte { return it.data }

// All returns a Go 1.23 iterator walking the remaining bytes front to
// back, without consuming it.
func (it *SliceIter) All() func(yield func(byte) bool) {
	data := it.data
	return func(yield func(byte) bool) {
		for _, v := range data {
			if !yield(v) {
				return
			}
		}
	}
}

// OwnedIter is a bidirectional byte iterator that owns an RoBytes handle.
// Unlike SliceIter it can outlive the value it was built from.
type OwnedIter struct {
	b RoBytes
}

// NewOwnedIter consumes b into an iterator over its bytes.
func NewOwnedIter(b RoBytes) OwnedIter {
	return OwnedIter{b: b}
}

func (it *OwnedIter) Next() (byte, bool) {
	if it.b.IsEmpty() {
		return 0, false
	}
	v := it.b.Bytes()[0]
	it.b.Advance(1)
	return v, true
}

func (it *OwnedIter) NextBack() (byte, bool) {
	n := it.b.Len()
	if n == 0 {
		return 0, false
	}
	v := it.b.Bytes()[n-1]
	it.b.Truncate(n - 1)
	return v, true
}

func (it *OwnedIter) Len() int { return it.b.Len() }

// Remaining returns the not-yet-consumed portion as a fresh RoBytes handle
// (a cheap clone, per RoBytes.Clone).
func (it *OwnedIter) Remaining() RoBytes { return it.b.Clone() }

// All returns a Go 1.23 iterator walking the remaining bytes, consuming
// the receiver as it goes.
func (it *OwnedIter) All() func(yield func(byte) bool) {
	return func(yield func(byte) bool) {
		for {
			v, ok := it.Next()
			if !ok || !yield(v) {
				return
			}
		}
	}
}
