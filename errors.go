package ubytes

import "errors"

// ErrInsufficientCapacity is returned by MutBytes.Write and MutBytes.WriteByte
// when the reserved capacity cannot hold the data and MutBytes is not
// allowed to grow. ExtBytes never returns it: it reserves more capacity
// instead.
var ErrInsufficientCapacity = errors.New("ubytes: insufficient reserved capacity")

// ErrCapacityOverflow is the panic value used when a length computation
// would overflow int, raised by RoBytes.ExtendFromSlice and friends when
// the requested new length can't be represented.
var ErrCapacityOverflow = errors.New("ubytes: capacity overflow")

// ErrTruncatedBlock is returned by NextBlock when src does not yet hold a
// complete length-prefixed block.
var ErrTruncatedBlock = errors.New("ubytes: truncated block")
