package cpu

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func diagnostics(t *testing.T, err error) (diags ErrDiagnostics) {
	if !errors.As(err, &diags) {
		t.Fatalf("expected diagnostics, got %v", err)
	}
	return
}

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog, err := asm.Parse(strings.NewReader(""))
	assert.NoError(err)
	assert.Equal(0, len(prog.Statements))
	assert.Equal(0, len(prog.Binary()))
}

func TestAssemblerOpcodes(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	program := []string{
		"INP",
		"OUT",
		"LDA $10",
		"STA $11",
		"ADD $12",
		"SUB $13",
		"BRP $14",
		"BRZ $15",
		"BRA $16",
		"HLT",
		"DAT 42",
		"DAT",
		"DAT -3",
	}

	prog, err := asm.Assemble(program)
	assert.NoError(err)

	expected := []int{901, 902, 510, 311, 112, 213, 814, 715, 616, 0, 42, 0, -3}
	assert.Equal(expected, prog.Binary())

	for n, op := range prog.Statements {
		assert.Equal(n+1, op.LineNo)
		assert.Equal(n, op.Address)
		assert.Equal(strings.Fields(program[n]), op.Words)
	}
}

func TestAssemblerLabels(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	program := []string{
		"# countdown",
		"",
		"start INP",
		"loop  BRZ done",
		"\tOUT",
		"      SUB,one",
		"      BRA loop",
		"done  HLT",
		"",
		"one   DAT 1",
		"ptr   DAT start",
	}

	prog, err := asm.Assemble(program)
	assert.NoError(err)

	expected := []Statement{
		{3, 0, []string{"start", "INP"}, 901, "start"},
		{4, 1, []string{"loop", "BRZ", "done"}, 705, "loop"},
		{5, 2, []string{"OUT"}, 902, ""},
		{6, 3, []string{"SUB", "one"}, 206, ""},
		{7, 4, []string{"BRA", "loop"}, 601, ""},
		{8, 5, []string{"done", "HLT"}, 0, "done"},
		{10, 6, []string{"one", "DAT", "1"}, 1, "one"},
		{11, 7, []string{"ptr", "DAT", "start"}, 0, "ptr"},
	}
	assert.Equal(expected, prog.Statements)

	assert.Equal(map[string]int{
		"start": 0, "loop": 1, "done": 5, "one": 6, "ptr": 7,
	}, asm.Label)
}

func TestAssemblerDat(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog, err := asm.Assemble([]string{"DAT 42"})
	assert.NoError(err)
	assert.Equal([]int{42}, prog.Binary())

	prog, err = asm.Assemble([]string{"x DAT 999", "y DAT -999", "z DAT $7"})
	assert.NoError(err)
	assert.Equal([]int{999, -999, 7}, prog.Binary())
}

func TestAssemblerComments(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"INP # read",
		"OUT",
		"# HLT",
	}

	// A '#' anywhere discards the whole line.
	asm := &Assembler{}
	prog, err := asm.Assemble(program)
	assert.NoError(err)
	assert.Equal([]int{902}, prog.Binary())

	asm = &Assembler{InlineComments: true}
	prog, err = asm.Assemble(program)
	assert.NoError(err)
	assert.Equal([]int{901, 902}, prog.Binary())
}

func TestAssemblerErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name string
		line string
		err  error
	}){
		{"badop", "BADOP $5", ErrOpcodeInvalid},
		{"lowercase", "lda $5", ErrOpcodeInvalid},
		{"label_only", "alone", ErrOpcodeMissing},
		{"unresolved", "LDA nowhere", ErrArgumentUnresolved},
		{"bare_address", "LDA 5", ErrArgumentUnresolved},
		{"address_range", "LDA $100", ErrAddressRange(100)},
		{"address_negative", "LDA $-1", ErrAddressRange(-1)},
		{"address_number", "LDA $x", ErrParseNumber("x")},
		{"data_number", "DAT x", ErrParseNumber("x")},
		{"data_range", "DAT 1000", ErrValueRange(1000)},
		{"operand_missing", "ADD", ErrOperandMissing},
		{"operand_unexpected", "OUT $5", ErrOperandUnexpected},
		{"hlt_operand", "HLT $5", ErrOperandUnexpected},
		{"extra", "LDA $5 $6", ErrOpcodeExtraArgs},
		{"label_invalid", "$x HLT", ErrLabelInvalid},
		{"expression", "DAT $(1 +)", ErrParseExpression("1 +")},
	}

	for _, entry := range table {
		asm := &Assembler{}
		prog, err := asm.Assemble([]string{"INP", entry.line, "HLT"})
		diags := diagnostics(t, err)
		assert.Equal(1, len(diags), entry.name)
		assert.ErrorIs(err, entry.err, entry.name)

		var syntax ErrSyntax
		if assert.True(errors.As(diags[0], &syntax), entry.name) {
			assert.Equal(2, syntax.LineNo, entry.name)
			assert.Equal(entry.line, syntax.Line, entry.name)
		}

		// The line in error emits no word, and leaves its address empty.
		assert.Equal(2, len(prog.Statements), entry.name)
		assert.Equal([]int{901, 0, 0}, prog.Binary(), entry.name)
	}
}

func TestAssemblerMultipleErrors(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog, err := asm.Assemble([]string{
		"a INP",
		"a OUT",
		"BRA b",
		"FOO",
		"HLT",
	})
	diags := diagnostics(t, err)
	assert.Equal(3, len(diags))
	assert.ErrorIs(diags[0], ErrLabelDuplicate)
	assert.ErrorIs(diags[1], ErrArgumentUnresolved)
	assert.ErrorIs(diags[2], ErrOpcodeMissing)
	assert.Equal(2, len(prog.Statements))
	assert.Contains(err.Error(), "line 2 'a OUT'")
}

func TestAssemblerTooLarge(t *testing.T) {
	assert := assert.New(t)

	var program []string
	for range MEMORY_SIZE {
		program = append(program, "OUT")
	}
	program = append(program, "last HLT", "BRA last")

	asm := &Assembler{}
	prog, err := asm.Assemble(program)
	diags := diagnostics(t, err)
	assert.Equal(2, len(diags))
	assert.ErrorIs(diags[0], ErrProgramTooLarge)
	assert.Equal(MEMORY_SIZE, len(prog.Binary()))
}

func TestAssemblerLabelRange(t *testing.T) {
	assert := assert.New(t)

	program := []string{"BRA far"}
	for range MEMORY_SIZE - 1 {
		program = append(program, "OUT")
	}
	program = append(program, "far HLT")

	asm := &Assembler{}
	_, err := asm.Assemble(program)
	diags := diagnostics(t, err)
	assert.Equal(2, len(diags))
	assert.ErrorIs(diags[0], ErrAddressRange(MEMORY_SIZE))
	assert.ErrorIs(diags[1], ErrProgramTooLarge)
}

func TestAssemblerExpressions(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("BASE", 40)

	prog, err := asm.Assemble([]string{
		"      LDA $(table + 1)",
		"      STA $(BASE + 2)",
		"      BRA $(MEMORY_SIZE - 1)",
		"      DAT $(LINENO * 10)",
		"      DAT $(-(3 * 4))",
		"table DAT 7",
		"      DAT 8",
	})
	assert.NoError(err)
	assert.Equal([]int{506, 342, 699, 40, -12, 7, 8}, prog.Binary())
	assert.Equal([]string{"LDA", "$6"}, prog.Statements[0].Words)
}

func TestAssemblerPositional(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{Positional: true}

	prog, err := asm.Assemble([]string{
		"INP",
		"BRZ 4",
		"OUT",
		"",
		"# stop",
		"HLT",
		"STA $9",
		"DAT 5",
	})
	assert.NoError(err)
	assert.Equal([]int{901, 704, 902, 0, 0, 0, 309, 5}, prog.Binary())
	assert.Equal(5, prog.Statements[3].Address)
	assert.Equal(6, prog.Statements[3].LineNo)

	// Labels are not recognized.
	_, err = asm.Assemble([]string{"loop OUT"})
	assert.ErrorIs(err, ErrOpcodeInvalid)
	_, err = asm.Assemble([]string{"BRA 100"})
	assert.ErrorIs(err, ErrAddressRange(100))
}

func TestAssemblerReuse(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	_, err := asm.Assemble([]string{"a HLT", "b HLT"})
	assert.NoError(err)

	prog, err := asm.Assemble([]string{"a OUT"})
	assert.NoError(err)
	assert.Equal(1, len(prog.Statements))
	assert.Equal(map[string]int{"a": 0}, asm.Label)
}

func ExampleAssembler() {
	asm := &Assembler{}
	prog, err := asm.Assemble([]string{
		"loop INP",
		"     BRZ end",
		"     OUT",
		"     BRA loop",
		"end  HLT",
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(prog.Binary())
	// Output: [901 704 902 600 0]
}
