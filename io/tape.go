package io

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// Tape provides sequential number I/O over byte streams.
// Input is read as whitespace separated decimal integers, and
// output is written as one decimal integer per line.
type Tape struct {
	Input  io.Reader
	Output io.Writer

	Interactive bool   // If set, Prompt is written to Output before each read.
	Prompt      string // Prompt for interactive input.

	scanner *bufio.Scanner
	reader  io.Reader
}

var _ Channel = (*Tape)(nil)

// Rewind drops any buffered input. The underlying streams are not rewound.
func (tc *Tape) Rewind() {
	tc.scanner = nil
	tc.reader = nil
}

// Receive reads the next number from the input stream.
// Returns io.EOF when the input is exhausted.
func (tc *Tape) Receive() (value int, err error) {
	if tc.Input == nil {
		err = ErrChannelInput
		return
	}

	if tc.scanner == nil || tc.reader != tc.Input {
		tc.scanner = bufio.NewScanner(tc.Input)
		tc.scanner.Split(bufio.ScanWords)
		tc.reader = tc.Input
	}

	if tc.Interactive && tc.Output != nil {
		fmt.Fprint(tc.Output, tc.Prompt)
	}

	if !tc.scanner.Scan() {
		err = tc.scanner.Err()
		if err == nil {
			err = io.EOF
		}
		return
	}

	word := tc.scanner.Text()
	value, err = strconv.Atoi(word)
	if err != nil {
		err = ErrParseInput(word)
		return
	}

	return
}

// Send writes a number to the output stream.
func (tc *Tape) Send(value int) (err error) {
	if tc.Output == nil {
		return
	}

	_, err = fmt.Fprintf(tc.Output, "%d\n", value)

	return
}

// Halt does nothing; a tape has no halt indicator.
func (tc *Tape) Halt() {
}
