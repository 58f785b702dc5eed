// Package io provides the input/output channels of the Little Man Computer.
// A channel supplies numbers to INP, accepts numbers from OUT, and is
// notified when the machine halts. Tape works over byte streams, Queue over
// in-memory slices, and ChannelFunc adapts plain callbacks.
package io

// Channel defines the interface for the machine's input/output collaborator.
// All methods are called synchronously from the execution engine; a
// blocking Receive blocks the whole machine.
type Channel interface {
	// Rewind resets the channel to its initial state.
	Rewind()
	// Receive returns the next number for an INP instruction.
	Receive() (value int, err error)
	// Send emits a number from an OUT instruction.
	Send(value int) error
	// Halt is called once when the machine halts.
	Halt()
}
