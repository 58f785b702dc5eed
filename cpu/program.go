package cpu

import (
	"fmt"
	"io"
	"iter"
	"strings"
)

// Statement is a line of assembled source with its address and word.
type Statement struct {
	LineNo  int      // Source line, starting at 1.
	Address int      // Memory address of the word.
	Words   []string // Source tokens.
	Code    Code     // Assembled word.
	Label   string   // Label declared on the line, if any.
}

// Program is the output of the assembler.
type Program struct {
	Statements []Statement
}

// Debug returns the statement assembled at an address.
func (prog *Program) Debug(address int) (st *Statement, ok bool) {
	for n := range prog.Statements {
		if prog.Statements[n].Address == address {
			return &prog.Statements[n], true
		}
	}

	return
}

// Codes iterates over the assembled words by address.
func (prog *Program) Codes() iter.Seq2[int, Code] {
	return func(yield func(address int, code Code) bool) {
		for _, op := range prog.Statements {
			if !yield(op.Address, op.Code) {
				return
			}
		}
	}
}

// Binary returns the memory image of the program, up to its highest
// address. Unassembled addresses are zero.
func (prog *Program) Binary() (words []int) {
	size := 0
	for address := range prog.Codes() {
		size = max(size, address+1)
	}

	words = make([]int, size)
	for address, code := range prog.Codes() {
		words[address] = int(code)
	}

	return
}

// Listing writes the address, word and source of every statement.
func (prog *Program) Listing(w io.Writer) (err error) {
	for _, op := range prog.Statements {
		label := op.Label
		if len(label) > 0 {
			label += ":"
		}
		_, err = fmt.Fprintf(w, "%02d  %03d  %-10s %-12s ; %d: %v\n",
			op.Address, int(op.Code), label, op.Code.String(), op.LineNo, strings.Join(op.Words, " "))
		if err != nil {
			return
		}
	}

	return
}
