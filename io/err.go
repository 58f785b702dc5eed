package io

import (
	"errors"

	"github.com/JakubSzark/little-man-computer/translate"
)

var f = translate.From

var (
	// Channel errors
	ErrChannelFull  = errors.New(f("channel full"))
	ErrChannelEmpty = errors.New(f("channel empty"))
	ErrChannelInput = errors.New(f("channel has no input"))
)

// ErrParseInput is returned when a tape token is not a decimal number.
type ErrParseInput string

func (err ErrParseInput) Error() string {
	return f("input '%v' is not a number", string(err))
}
