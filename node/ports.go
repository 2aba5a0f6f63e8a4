package node

import "strconv"

// Input identifies a node's nth input. It is a distinct type from Output and
// from plain integers so that wiring code cannot confuse the two ends of a
// connection without an explicit conversion.
type Input uint32

// Output identifies a node's nth output. See Input.
type Output uint32

func (i Input) String() string {
	return "in" + strconv.FormatUint(uint64(i), 10)
}

func (o Output) String() string {
	return "out" + strconv.FormatUint(uint64(o), 10)
}
