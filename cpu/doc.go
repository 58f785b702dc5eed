// Package cpu implements the execution engine and assembler for the
// Little Man Computer.
//
// The machine has 100 words of decimal memory, a single accumulator and a
// program counter. A word is decoded as opcode*100 + address, except that
// 901 (INP) and 902 (OUT) have no address. The ten instructions are INP,
// OUT, LDA, STA, ADD, SUB, BRA, BRZ, BRP and HLT; BRP branches only when
// the accumulator is strictly greater than zero.
//
// The assembler accepts one instruction per line, in the form
//
//	[label] MNEMONIC [argument]
//
// where the argument is an explicit address ($NN), a label, or for the DAT
// pseudo-instruction a literal value. Any line containing '#' is a comment.
// Compile-time expressions $(...) are evaluated with Starlark.
package cpu
