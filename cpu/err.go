package cpu

import (
	"errors"
	"strings"

	"github.com/JakubSzark/little-man-computer/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrNotLoaded      = errors.New(f("no program loaded"))
	ErrMemoryOverflow = errors.New(f("program exceeds memory"))
	ErrPcRange        = errors.New(f("program counter out of range"))

	// Assembler errors
	ErrOpcodeInvalid      = errors.New(f("invalid operation code"))
	ErrOpcodeMissing      = errors.New(f("opcode missing"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOperandMissing     = errors.New(f("operand missing"))
	ErrOperandUnexpected  = errors.New(f("operand unexpected"))
	ErrArgumentUnresolved = errors.New(f("argument could not be resolved"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrLabelInvalid       = errors.New(f("label invalid"))
	ErrProgramTooLarge    = errors.New(f("program too large"))
)

// ErrOpcode is an execution fault on a word that is not an instruction.
type ErrOpcode Code

func (eo ErrOpcode) Error() string {
	return f("bad opcode %03d", int(eo))
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

// ErrAddressRange is an explicit or label address outside of memory.
type ErrAddressRange int

func (err ErrAddressRange) Error() string {
	return f("address %d out of range", int(err))
}

// ErrValueRange is a DAT literal that does not fit in a word.
type ErrValueRange int

func (err ErrValueRange) Error() string {
	return f("value %d out of range", int(err))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// ErrDiagnostics collects the per-line errors of an assembly.
type ErrDiagnostics []error

func (errs ErrDiagnostics) Error() string {
	lines := make([]string, len(errs))
	for n, err := range errs {
		lines[n] = err.Error()
	}
	return strings.Join(lines, "\n")
}

func (errs ErrDiagnostics) Unwrap() []error {
	return errs
}
