package emulator

import (
	"context"
	"errors"
	"io"
	"log"
	"time"

	"github.com/JakubSzark/little-man-computer/cpu"
	lmcio "github.com/JakubSzark/little-man-computer/io"
)

const (
	DEFAULT_SPEED = 0 // Run mode clock; zero runs without delay.
)

// Emulator state. CPU + program listing + IO channel.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently loaded program listing.

	Assembler cpu.Assembler // Assembler used by Assemble.

	Tape    lmcio.Tape    // Tape IO channel.
	Channel lmcio.Channel // Channel used by the CPU. Defaults to Tape.

	Speed time.Duration // Delay between instructions in run mode.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(),
		Program: &cpu.Program{},
		Speed:   DEFAULT_SPEED,
	}

	emu.Channel = &emu.Tape

	return
}

// Assemble assembles source text and loads it.
// A program with diagnostics is not loaded.
func (emu *Emulator) Assemble(input io.Reader) (err error) {
	emu.Assembler.Verbose = emu.Verbose

	prog, err := emu.Assembler.Parse(input)
	if err != nil {
		return
	}

	err = emu.Load(prog)

	return
}

// Load installs a program and resets the CPU with its memory image.
func (emu *Emulator) Load(prog *cpu.Program) (err error) {
	if prog == nil {
		err = ErrNoProgram
		return
	}

	emu.Cpu.Verbose = emu.Verbose

	err = emu.Cpu.Load(prog.Binary())
	if err != nil {
		return
	}

	emu.Program = prog
	emu.Channel.Rewind()

	return
}

// Reset the CPU and reload the current program.
func (emu *Emulator) Reset() (err error) {
	return emu.Load(emu.Program)
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Pc returns the current program counter.
func (emu *Emulator) Pc() int {
	return emu.Cpu.Pc
}

// Code returns the current instruction code.
func (emu *Emulator) Code() cpu.Code {
	if emu.Cpu.Pc < 0 || emu.Cpu.Pc >= cpu.MEMORY_SIZE {
		return cpu.Code(0)
	}

	return cpu.Code(emu.Cpu.Memory[emu.Cpu.Pc])
}

// LineNo returns the source line number of the current instruction, or 0
// if the program counter is not on an assembled line.
func (emu *Emulator) LineNo() int {
	st, ok := emu.Program.Debug(emu.Cpu.Pc)
	if !ok {
		return 0
	}

	return st.LineNo
}

// Halt stops the running program.
func (emu *Emulator) Halt() {
	if emu.Verbose {
		log.Printf("emulator: halt at %02d", emu.Cpu.Pc)
	}

	emu.Cpu.Halt()
}

// Tick performs a single instruction step of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	err = emu.Cpu.Step(emu.Channel)
	done = emu.Cpu.Halted

	return
}

// Run ticks the emulator until the program halts, a step fails, or the
// context is done. Ticks are spaced by Speed.
func (emu *Emulator) Run(ctx context.Context) (err error) {
	var clock <-chan time.Time
	if emu.Speed > 0 {
		ticker := time.NewTicker(emu.Speed)
		defer ticker.Stop()
		clock = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			err = ctx.Err()
			return
		default:
		}

		var done bool
		done, err = emu.Tick()
		if err != nil || done {
			return
		}

		if clock == nil {
			continue
		}

		select {
		case <-ctx.Done():
			err = ctx.Err()
			return
		case <-clock:
		}
	}
}

// Stopped returns true if err from Run reports a cancelled or expired
// context rather than a fault.
func Stopped(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
