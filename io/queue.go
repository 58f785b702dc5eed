package io

// Queue is an in-memory channel. Inputs are consumed in FIFO order and
// outputs are collected up to Capacity values.
type Queue struct {
	Capacity int // Maximum outputs held; zero is unlimited.

	Inputs  []int // Values for INP, in order.
	Outputs []int // Values from OUT, in order.
	Halts   int   // Number of halt notifications.

	ReadIndex int
}

var _ Channel = (*Queue)(nil)

// Rewind restarts the inputs and clears outputs and halts.
func (q *Queue) Rewind() {
	q.ReadIndex = 0
	q.Outputs = q.Outputs[:0]
	q.Halts = 0
}

// Receive returns the next input.
// Returns ErrChannelEmpty once all inputs have been consumed.
func (q *Queue) Receive() (value int, err error) {
	if q.ReadIndex >= len(q.Inputs) {
		err = ErrChannelEmpty
		return
	}

	value = q.Inputs[q.ReadIndex]
	q.ReadIndex++

	return
}

// Send appends to the outputs.
// Returns ErrChannelFull if the queue has reached capacity.
func (q *Queue) Send(value int) (err error) {
	if q.Capacity > 0 && len(q.Outputs) >= q.Capacity {
		err = ErrChannelFull
		return
	}

	q.Outputs = append(q.Outputs, value)

	return
}

// Halt counts the notification.
func (q *Queue) Halt() {
	q.Halts++
}
