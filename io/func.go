package io

// ChannelFunc adapts plain callbacks to a Channel.
// A nil callback behaves as an absent device: a nil InputFunc reports
// ErrChannelInput, and nil OutputFunc and HaltFunc discard.
type ChannelFunc struct {
	InputFunc  func() (int, error)
	OutputFunc func(value int) error
	HaltFunc   func()
}

var _ Channel = (*ChannelFunc)(nil)

func (cf *ChannelFunc) Rewind() {
}

func (cf *ChannelFunc) Receive() (value int, err error) {
	if cf.InputFunc == nil {
		err = ErrChannelInput
		return
	}
	return cf.InputFunc()
}

func (cf *ChannelFunc) Send(value int) (err error) {
	if cf.OutputFunc == nil {
		return
	}
	return cf.OutputFunc(value)
}

func (cf *ChannelFunc) Halt() {
	if cf.HaltFunc != nil {
		cf.HaltFunc()
	}
}
