package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// codeData is the base code of DAT; its operand is the word itself.
const codeData = -1

// mnemonicMap maps mnemonics to their base codes.
var mnemonicMap = map[string]int{
	"INP": int(OP_INP),
	"OUT": int(OP_OUT),
	"LDA": int(OP_LDA),
	"STA": int(OP_STA),
	"ADD": int(OP_ADD),
	"SUB": int(OP_SUB),
	"BRP": int(OP_BRP),
	"BRZ": int(OP_BRZ),
	"BRA": int(OP_BRA),
	"HLT": int(OP_HLT),
	"DAT": codeData,
}

// Predefined system equates
var sysEquate = map[string]int{
	"MEMORY_SIZE": MEMORY_SIZE,
	"LINENO":      0,
}

// parenRe matches a compile-time $(...) expression.
var parenRe = regexp.MustCompile(`\$\([^\$]*\)`)

// Assembler is a two pass assembler for the Little Man Computer.
//
// The first pass binds labels to addresses, so that branches may refer to
// labels declared later in the source. The second pass encodes one word per
// line. Errors are collected per line, and a line in error emits no word.
type Assembler struct {
	Verbose        bool // If set, verbosely logs the assembler actions.
	Positional     bool // If set, line N is address N, and labels are not recognized.
	InlineComments bool // If set, '#' starts a trailing comment instead of discarding the line.

	Statement []Statement    // List of assembled statements.
	Label     map[string]int // Map of labels to addresses.

	predefine map[string]int
}

// Predefine defines a name usable in $(...) expressions.
func (asm *Assembler) Predefine(name string, value int) {
	if asm.predefine == nil {
		asm.predefine = map[string]int{name: value}
	} else {
		asm.predefine[name] = value
	}
}

// Parse reads an input stream and assembles it. See Assemble.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	var lines []string

	scanner := bufio.NewScanner(input)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	err = scanner.Err()
	if err != nil {
		return
	}

	return asm.Assemble(lines)
}

// Assemble assembles source lines into a Program.
//
// The Program holds every line that assembled. If any line failed, err is
// an ErrDiagnostics with one ErrSyntax per failed line.
func (asm *Assembler) Assemble(lines []string) (prog *Program, err error) {
	var diags ErrDiagnostics

	report := func(lineno int, line string, err error) {
		if asm.Verbose {
			log.Printf("%v: %v", lineno, err)
		}
		diags = append(diags, ErrSyntax{LineNo: lineno, Line: line, Err: err})
	}

	if asm.Label == nil {
		asm.Label = make(map[string]int, 16)
	}
	clear(asm.Label)
	asm.Statement = asm.Statement[:0]

	if asm.Positional {
		asm.encodeLines(lines, report, nil)
	} else {
		bad := asm.bindLabels(lines, report)
		asm.encodeLines(lines, report, bad)
	}

	prog = &Program{
		Statements: slices.Clone(asm.Statement),
	}

	if len(diags) > 0 {
		err = diags
	}

	return
}

// stripComment returns the code portion of a line.
func (asm *Assembler) stripComment(line string) string {
	if asm.InlineComments {
		line, _, _ = strings.Cut(line, "#")
	} else if strings.Contains(line, "#") {
		return ""
	}

	return line
}

// splitWords splits a line on runs of spaces, commas and tabs.
func splitWords(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})
}

// isMnemonic returns true if the word is an instruction mnemonic.
func isMnemonic(word string) bool {
	_, ok := mnemonicMap[word]
	return ok
}

// bindLabels binds every label to the address of its line.
// Returns the line numbers of rejected labels.
func (asm *Assembler) bindLabels(lines []string, report func(int, string, error)) (bad map[int]bool) {
	bad = map[int]bool{}

	address := 0
	for n, text := range lines {
		line := parenRe.ReplaceAllString(asm.stripComment(text), "$$0")
		words := splitWords(line)
		if len(words) == 0 {
			continue
		}

		label := words[0]
		if !isMnemonic(label) {
			_, dup := asm.Label[label]
			switch {
			case strings.HasPrefix(label, "$"):
				report(n+1, text, ErrLabelInvalid)
				bad[n+1] = true
			case dup:
				report(n+1, text, ErrLabelDuplicate)
				bad[n+1] = true
			default:
				asm.Label[label] = address
			}
		}
		address++
	}

	return
}

// encodeLines runs the encoding pass.
func (asm *Assembler) encodeLines(lines []string, report func(int, string, error), bad map[int]bool) {
	address := -1
	for n, text := range lines {
		lineno := n + 1

		if asm.Verbose {
			log.Printf("%v: %v", lineno, text)
		}

		line := asm.stripComment(text)
		if asm.Positional {
			address = n
		} else {
			if len(splitWords(parenRe.ReplaceAllString(line, "$$0"))) == 0 {
				continue
			}
			address++
		}

		if bad[lineno] {
			continue
		}

		line, err := asm.expandLine(line, lineno)
		if err != nil {
			report(lineno, text, err)
			continue
		}

		words := splitWords(line)
		if len(words) == 0 {
			continue
		}

		if address >= MEMORY_SIZE {
			report(lineno, text, ErrProgramTooLarge)
			continue
		}

		code, label, err := asm.encode(words)
		if err != nil {
			report(lineno, text, err)
			continue
		}

		asm.Statement = append(asm.Statement, Statement{
			LineNo:  lineno,
			Address: address,
			Words:   words,
			Code:    code,
			Label:   label,
		})
	}
}

// expandLine replaces each $(...) expression with its value as $N.
func (asm *Assembler) expandLine(line string, lineno int) (out string, err error) {
	out = parenRe.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2:len(str)-1], lineno)
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("$%d", value)
	})

	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string, lineno int) (value int, err error) {
	thread := starlark.Thread{Name: "lmc"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, val := range sysEquate {
		pred[key] = starlark.MakeInt(val)
	}
	for key, val := range asm.predefine {
		pred[key] = starlark.MakeInt(val)
	}
	for key, val := range asm.Label {
		pred[key] = starlark.MakeInt(val)
	}
	pred["LINENO"] = starlark.MakeInt(lineno)

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		if asm.Verbose {
			log.Printf("$(%v): %v", expr, err)
		}
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = int(st_int64)
	return
}

// encode evaluates the words of a line of assembly text.
func (asm *Assembler) encode(words []string) (code Code, label string, err error) {
	if !asm.Positional && !isMnemonic(words[0]) {
		label = words[0]
		words = words[1:]
		if len(words) == 0 {
			err = ErrOpcodeMissing
			return
		}
	}

	base, ok := mnemonicMap[words[0]]
	if !ok {
		err = ErrOpcodeInvalid
		return
	}

	args := words[1:]
	if len(args) > 1 {
		err = ErrOpcodeExtraArgs
		return
	}

	op := Opcode(base)

	if base == codeData {
		if len(args) == 0 {
			code = 0
			return
		}
		code, err = asm.data(args[0])
		return
	}

	if !op.Addressed() {
		if len(args) != 0 {
			err = ErrOperandUnexpected
			return
		}
		code = MakeCode(op, 0)
		return
	}

	if len(args) == 0 {
		err = ErrOperandMissing
		return
	}

	address, err := asm.address(args[0])
	if err != nil {
		return
	}

	code = MakeCode(op, address)

	return
}

// address resolves an instruction argument to a memory address.
func (asm *Assembler) address(arg string) (address int, err error) {
	if strings.HasPrefix(arg, "$") {
		return parseAddress(arg[1:])
	}

	address, ok := asm.Label[arg]
	if ok {
		if address >= MEMORY_SIZE {
			err = ErrAddressRange(address)
		}
		return
	}

	// Saved positional programs use bare addresses.
	if asm.Positional {
		return parseAddress(arg)
	}

	err = ErrArgumentUnresolved
	return
}

// data resolves a DAT argument to the stored word.
func (asm *Assembler) data(arg string) (code Code, err error) {
	address, ok := asm.Label[arg]
	if ok {
		code = Code(address)
		return
	}

	word := strings.TrimPrefix(arg, "$")
	value, err := strconv.Atoi(word)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	if value < WORD_MIN || value > WORD_MAX {
		err = ErrValueRange(value)
		return
	}

	code = Code(value)
	return
}

// parseAddress parses a decimal memory address.
func parseAddress(word string) (address int, err error) {
	address, err = strconv.Atoi(word)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	if address < 0 || address >= MEMORY_SIZE {
		err = ErrAddressRange(address)
		return
	}

	return
}
