package cpu

import (
	"fmt"
)

const (
	MEMORY_SIZE = 100 // Number of words of memory.
	WORD_MAX    = 999 // Largest value a DAT literal may hold.
	WORD_MIN    = -999
)

// Opcode is the decoded operation of a machine word.
type Opcode int

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_HLT = Opcode(0)   // HLT
	OP_ADD = Opcode(100) // ADD
	OP_SUB = Opcode(200) // SUB
	OP_STA = Opcode(300) // STA
	OP_LDA = Opcode(500) // LDA
	OP_BRA = Opcode(600) // BRA
	OP_BRZ = Opcode(700) // BRZ
	OP_BRP = Opcode(800) // BRP
	OP_INP = Opcode(901) // INP
	OP_OUT = Opcode(902) // OUT
)

// Valid returns true if the opcode is one of the ten executable opcodes.
func (op Opcode) Valid() bool {
	switch op {
	case OP_HLT, OP_ADD, OP_SUB, OP_STA, OP_LDA, OP_BRA, OP_BRZ, OP_BRP, OP_INP, OP_OUT:
		return true
	}
	return false
}

// Addressed returns true if the opcode takes a memory address operand.
func (op Opcode) Addressed() bool {
	switch op {
	case OP_ADD, OP_SUB, OP_STA, OP_LDA, OP_BRA, OP_BRZ, OP_BRP:
		return true
	}
	return false
}

// CodeClass is the kind of a decoded machine word.
type CodeClass int

//go:generate go tool stringer -linecomment -type=CodeClass
const (
	CLASS_INVALID = CodeClass(0) // invalid
	CLASS_IO      = CodeClass(1) // io
	CLASS_MEMORY  = CodeClass(2) // memory
	CLASS_BRANCH  = CodeClass(3) // branch
	CLASS_HALT    = CodeClass(4) // halt
)

// Code is a single machine word.
type Code int

// MakeCode creates an instruction word from an opcode and an address.
// The address is ignored for the zero-operand INP and OUT.
func MakeCode(op Opcode, address int) Code {
	if op >= 900 {
		return Code(op)
	}
	return Code(int(op) + address)
}

// Decode splits the word into opcode and operand.
// Words of 900 and above have no operand.
func (code Code) Decode() (op Opcode, operand int) {
	word := int(code)
	if word >= 900 {
		op = Opcode(word)
		return
	}

	hundreds := word / 100
	if word < 0 && word%100 != 0 {
		hundreds--
	}
	operand = word - hundreds*100
	op = Opcode(word - operand)
	return
}

// Class returns the instruction class of the word.
func (code Code) Class() CodeClass {
	op, _ := code.Decode()
	switch op {
	case OP_INP, OP_OUT:
		return CLASS_IO
	case OP_ADD, OP_SUB, OP_STA, OP_LDA:
		return CLASS_MEMORY
	case OP_BRA, OP_BRZ, OP_BRP:
		return CLASS_BRANCH
	case OP_HLT:
		return CLASS_HALT
	}
	return CLASS_INVALID
}

// String returns the assembly language representation of this word.
// Words that are not instructions, and halts with a non-zero operand,
// are shown as DAT so the text reassembles to the same word.
func (code Code) String() string {
	op, operand := code.Decode()
	switch code.Class() {
	case CLASS_IO:
		return op.String()
	case CLASS_HALT:
		if operand != 0 {
			return fmt.Sprintf("DAT %d", int(code))
		}
		return "HLT"
	case CLASS_MEMORY, CLASS_BRANCH:
		return fmt.Sprintf("%v $%02d", op, operand)
	}
	return fmt.Sprintf("DAT %d", int(code))
}
