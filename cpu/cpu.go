package cpu

import (
	"fmt"
	"log"

	"github.com/JakubSzark/little-man-computer/io"
)

// Channel is an I/O channel interface.
type Channel io.Channel

// Cpu is the machine state of a Little Man Computer.
//
// Step must not be called concurrently on the same Cpu.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Accumulator int              // The single general purpose register.
	Pc          int              // Address of the next instruction to fetch.
	Halted      bool             // Set once HLT, or a fault, stops the machine.
	Memory      [MEMORY_SIZE]int // Memory words.

	Ticks int // Instructions executed since reset.

	loaded bool
}

// NewCpu creates a new CPU. It must be Reset or Loaded before stepping.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{}

	return
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	state := "run"
	if cpu.Halted {
		state = "halt"
	}
	text += fmt.Sprintf("% 5s: %02d\n", "pc", cpu.Pc)
	text += fmt.Sprintf("% 5s: %d\n", "acc", cpu.Accumulator)
	text += fmt.Sprintf("% 5s: %v\n", "state", state)
	text += fmt.Sprintf("% 5s: %d\n", "ticks", cpu.Ticks)
	for row := 0; row < MEMORY_SIZE; row += 10 {
		text += fmt.Sprintf("%02d:", row)
		for _, word := range cpu.Memory[row : row+10] {
			text += fmt.Sprintf(" %03d", word)
		}
		text += "\n"
	}

	return
}

// Reset the CPU state.
// - Clears the accumulator and memory.
// - Sets the program counter to 0.
// - Zeros the tick counter.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Accumulator = 0
	cpu.Pc = 0
	cpu.Halted = false
	clear(cpu.Memory[:])
	cpu.Ticks = 0
	cpu.loaded = true
}

// Load resets the CPU and copies words to the start of memory.
// Remaining memory is zero. A program larger than memory is rejected
// with ErrMemoryOverflow, and the CPU is left unchanged.
func (cpu *Cpu) Load(words []int) (err error) {
	if len(words) > MEMORY_SIZE {
		err = ErrMemoryOverflow
		return
	}

	cpu.Reset()
	copy(cpu.Memory[:], words)

	if cpu.Verbose {
		log.Printf("cpu: loaded %d words", len(words))
	}

	return
}

// Loaded returns true once the CPU has been reset or loaded.
func (cpu *Cpu) Loaded() bool {
	return cpu.loaded
}

// Halt stops the CPU. Step does nothing until the next Reset or Load.
func (cpu *Cpu) Halt() {
	cpu.Halted = true
}

// Step executes a single instruction.
//
// Input and output instructions call the channel synchronously. If the
// channel fails, the error is returned and the program counter is not
// advanced, so the step may be retried. A word that is not an instruction
// halts the CPU and returns an ErrOpcode.
func (cpu *Cpu) Step(ch Channel) (err error) {
	if !cpu.loaded {
		err = ErrNotLoaded
		return
	}

	if cpu.Halted {
		return
	}

	if cpu.Pc < 0 || cpu.Pc >= MEMORY_SIZE {
		cpu.Halted = true
		ch.Halt()
		err = ErrPcRange
		return
	}

	code := Code(cpu.Memory[cpu.Pc])
	op, operand := code.Decode()

	if cpu.Verbose {
		log.Printf("%02d: %03d %v", cpu.Pc, int(code), code)
	}

	next_pc := cpu.Pc + 1

	switch op {
	case OP_INP:
		var value int
		value, err = ch.Receive()
		if err != nil {
			return
		}
		cpu.Accumulator = value
	case OP_OUT:
		err = ch.Send(cpu.Accumulator)
		if err != nil {
			return
		}
	case OP_ADD:
		cpu.Accumulator += cpu.Memory[operand]
	case OP_SUB:
		cpu.Accumulator -= cpu.Memory[operand]
	case OP_STA:
		cpu.Memory[operand] = cpu.Accumulator
	case OP_LDA:
		cpu.Accumulator = cpu.Memory[operand]
	case OP_BRA:
		next_pc = operand
	case OP_BRZ:
		if cpu.Accumulator == 0 {
			next_pc = operand
		}
	case OP_BRP:
		// Zero is not positive.
		if cpu.Accumulator > 0 {
			next_pc = operand
		}
	case OP_HLT:
		next_pc = cpu.Pc
		cpu.Halted = true
		ch.Halt()
	default:
		cpu.Halted = true
		ch.Halt()
		err = ErrOpcode(code)
		return
	}

	cpu.Pc = next_pc
	cpu.Ticks += 1

	return
}
