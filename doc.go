// Package ubytes implements a tagged-union byte-buffer family sharing one
// polymorphic storage representation across three views:
//
//	RoBytes  - an immutable, cheaply cloneable, shareable view
//	MutBytes - a mutable, exclusive, capacity-bounded view
//	ExtBytes - a mutable, exclusive, auto-growing view
//
// The storage behind all three dynamically picks one of four backends: a
// small-buffer inline form that needs no heap allocation, a uniquely owned
// growable vector, a reference-counted shared block that several values can
// point into at independent offsets, and a zero-copy static slice. Mutation
// of a shared or static backend promotes the storage to an owned form
// first; cloning a uniquely-owned vector demotes it to a shared block so
// both handles can coexist safely.
//
// ubytes is for single-goroutine use only. None of the three views (nor the
// storage underneath them) does any internal synchronization: sharing a
// value across goroutines, even for reads, is undefined behavior, because
// RoBytes.Clone mutates the backend's tag word in place when it promotes an
// owned vector to a shared block.
package ubytes
