package ubytes

import (
	"bytes"
	"encoding/json"
	"hash"
)

// RoBytes, MutBytes and ExtBytes share this behavior; it lives here as
// plain functions taking the embedded *storage so each wrapper's thin
// methods can just forward to them instead of repeating the logic three
// times.

func storageString(s *storage) string {
	return bytesToString(s.data())
}

func storageEqual(s *storage, other []byte) bool {
	return bytes.Equal(s.data(), other)
}

func storageCompare(s *storage, other []byte) int {
	return bytes.Compare(s.data(), other)
}

func storageWriteHash(s *storage, h hash.Hash) {
	h.Write(s.data())
}

func storageMarshalJSON(s *storage) ([]byte, error) {
	return json.Marshal(s.data())
}

// storageExtendSeq drains a Go 1.23 byte iterator into s, growing
// geometrically as it consumes seq so it doesn't reserve on every single
// byte.
func storageExtendSeq(s *storage, seq func(yield func(byte) bool)) {
	hint := s.len()
	seq(func(v byte) bool {
		if s.len() == hint {
			hint = s.capacity() + 1
			s.reserve(hint - s.len())
		}
		s.appendByte(v)
		return true
	})
}
