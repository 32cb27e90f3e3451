package infer

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/regmach/cpu"
)

func TestParse(t *testing.T) {
	assert := assert.New(t)

	input := []string{
		"Before: [3, 2, 1, 1]",
		"9 2 1 2",
		"After:  [3, 2, 2, 1]",
		"",
		"Before: [0, 1, 2, 3]",
		"4 0 1 3",
		"After:  [0, 1, 2, 0]",
		"",
		"",
		"",
		"9 3 3 0",
		"4 0 2 1",
	}

	ps := &Parser{Registers: cpu.REGISTERS_SAMPLE}
	samples, prog, err := ps.Parse(strings.NewReader(strings.Join(input, "\n")))
	assert.NoError(err)

	assert.Equal([]Sample{
		{LineNo: 2, Code: cpu.MakeCodeNumber(9, 2, 1, 2), Before: cpu.Registers{3, 2, 1, 1}, After: cpu.Registers{3, 2, 2, 1}},
		{LineNo: 6, Code: cpu.MakeCodeNumber(4, 0, 1, 3), Before: cpu.Registers{0, 1, 2, 3}, After: cpu.Registers{0, 1, 2, 0}},
	}, samples)

	if assert.NotNil(prog) {
		assert.Equal(2, prog.Len())
		assert.Equal(11, prog.Opcodes[0].LineNo)
		assert.Equal(12, prog.Opcodes[1].LineNo)
		assert.Equal(cpu.MakeCodeNumber(4, 0, 2, 1), prog.Opcodes[1].Code)
	}
}

func TestParseSamplesOnly(t *testing.T) {
	assert := assert.New(t)

	ps := &Parser{}
	samples, prog, err := ps.Parse(strings.NewReader("Before: [1, 2]\n0 0 1 1\nAfter: [1, 3]\n"))
	assert.NoError(err)
	assert.Equal(1, len(samples))
	assert.Equal(0, prog.Len())
	assert.Equal(CandidatesOf(cpu.INSN_ADDR, cpu.INSN_BORR), Candidates(samples[0]))
}

func TestParseErrors(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		input  []string
		lineno int
		err    error
	}{
		{[]string{"Before: 3, 2, 1, 1", "9 2 1 2", "After: [3, 2, 2, 1]"}, 1, ErrSampleSyntax},
		{[]string{"Before: [3, 2, 1, 1", "9 2 1 2", "After: [3, 2, 2, 1]"}, 1, ErrSampleSyntax},
		{[]string{"Before: [3, x, 1, 1]", "9 2 1 2", "After: [3, 2, 2, 1]"}, 1, cpu.ErrParseNumber("x")},
		{[]string{"Before: [3, 2, 1, 1]", "9 2 1", "After: [3, 2, 2, 1]"}, 2, cpu.ErrOpcodeValueMissing},
		{[]string{"Before: [3, 2, 1, 1]", "9 2 1 2 0", "After: [3, 2, 2, 1]"}, 2, cpu.ErrOpcodeExtraArgs},
		{[]string{"Before: [3, 2, 1, 1]", "9 2 1 2", "Later: [3, 2, 2, 1]"}, 3, ErrSampleMissing},
		{[]string{"Before: [3, 2, 1, 1]", "9 2 1 2"}, 2, ErrSampleMissing},
		{[]string{"Before: [3, 2, 1, 1]", "9 2 1 2", "After: [3, 2, 2]"}, 3, ErrSampleBank},
		{[]string{"Before: [3, 2, 1, 1, 0]", "9 2 1 2", "After: [3, 2, 2, 1, 0]"}, 3, ErrSampleBank},
		{[]string{"Before: [3, 2, 1, 1]", "9 2 1 2", "After: [3, 2, 2, 1]", "", "mulx 0 0 0"}, 5, cpu.ErrInstructionInvalid},
	}

	for _, entry := range table {
		ps := &Parser{Registers: cpu.REGISTERS_SAMPLE}
		_, _, err := ps.Parse(strings.NewReader(strings.Join(entry.input, "\n")))
		assert.ErrorIs(err, entry.err, entry.input)

		var syntax *cpu.ErrSyntax
		if assert.True(errors.As(err, &syntax), entry.input) {
			assert.Equal(entry.lineno, syntax.LineNo, entry.input)
		}
	}
}
