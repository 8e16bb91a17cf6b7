package ubytes

import "unsafe"

// bytesToString views b as a string without copying. The caller must not
// mutate b afterward: strings are assumed immutable throughout the
// standard library, and violating that assumption here is undefined
// behavior.
func bytesToString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(b), len(b))
}

// stringToBytes views s as a []byte without copying. The returned slice
// must never be written to.
func stringToBytes(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}
