package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/JakubSzark/little-man-computer/cpu"
	"github.com/JakubSzark/little-man-computer/emulator"
	lmcio "github.com/JakubSzark/little-man-computer/io"
	"github.com/JakubSzark/little-man-computer/translate"
)

// parseValues parses a comma separated list of input values.
func parseValues(text string) (values []int, err error) {
	for _, word := range strings.Split(text, ",") {
		word = strings.TrimSpace(word)
		if len(word) == 0 {
			continue
		}
		var value int
		value, err = strconv.Atoi(word)
		if err != nil {
			err = errors.Wrapf(err, "input value %q", word)
			return
		}
		values = append(values, value)
	}
	return
}

// printListing assembles the source and writes its listing.
// Lines that assembled are listed even when others have diagnostics.
func printListing(asm *cpu.Assembler, source io.Reader, w io.Writer) (err error) {
	prog, err := asm.Parse(source)
	if prog == nil {
		return
	}

	lerr := prog.Listing(w)
	if err == nil {
		err = lerr
	}

	return
}

func main() {
	var compile string
	var input string
	var output string
	var values string
	var speed time.Duration
	var timeout time.Duration
	var listing bool
	var positional bool
	var inline bool
	var verbose bool

	flag.StringVar(&compile, "c", "-", ".lmc file to assemble")
	flag.StringVar(&input, "i", "-", "Tape input")
	flag.StringVar(&output, "o", "-", "Tape output")
	flag.StringVar(&values, "n", "", "Comma separated input values, instead of tape input")
	flag.DurationVar(&speed, "r", 0, "Clock speed, as delay between instructions")
	flag.DurationVar(&timeout, "t", 0, "Stop after this long")
	flag.BoolVar(&listing, "l", false, "Print the listing, do not execute")
	flag.BoolVar(&positional, "p", false, "Positional addressing: line N is address N")
	flag.BoolVar(&inline, "x", false, "Allow trailing '#' comments")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	source := os.Stdin
	if compile != "-" {
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatal(errors.Wrap(err, "source"))
		}
		defer inf.Close()
		source = inf
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	emu.Speed = speed
	emu.Assembler.Positional = positional
	emu.Assembler.InlineComments = inline

	if listing {
		emu.Assembler.Verbose = verbose
		err := printListing(&emu.Assembler, source, os.Stdout)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		return
	}

	err := emu.Assemble(source)
	if err != nil {
		log.Fatalf("%v: %v", compile, err)
	}

	if len(values) != 0 {
		queue := &lmcio.Queue{}
		queue.Inputs, err = parseValues(values)
		if err != nil {
			log.Fatal(err)
		}
		emu.Channel = &lmcio.ChannelFunc{
			InputFunc:  queue.Receive,
			OutputFunc: emu.Tape.Send,
		}
	}

	if input == "-" {
		emu.Tape.Input = os.Stdin
		emu.Tape.Interactive = term.IsTerminal(int(os.Stdin.Fd()))
		emu.Tape.Prompt = "INP> "
	} else {
		inf, err := os.Open(input)
		if err != nil {
			log.Fatal(errors.Wrap(err, "tape input"))
		}
		defer inf.Close()
		emu.Tape.Input = inf
	}

	if output == "-" {
		emu.Tape.Output = os.Stdout
	} else {
		ouf, err := os.Create(output)
		if err != nil {
			log.Fatal(errors.Wrap(err, "tape output"))
		}
		defer ouf.Close()
		emu.Tape.Output = ouf
	}

	ctx := context.Background()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	err = emu.Run(ctx)
	if verbose {
		log.Print(emu.Cpu.String())
		log.Printf("%v: %v instructions", compile, translate.Number(emu.Ticks()))
	}
	if err != nil {
		if emulator.Stopped(err) {
			log.Printf("%v: stopped at %02d: %v", compile, emu.Pc(), emu.Code())
			return
		}
		log.Fatalf("%v: %v", compile, err)
	}
}
