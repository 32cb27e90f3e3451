package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeExecute(t *testing.T) {
	assert := assert.New(t)

	reg := Registers{0, 0, 0, 0}
	err := MakeCode(INSN_ADDR, 0, 1, 2).Execute(reg)
	assert.NoError(err)
	assert.Equal(Registers{0, 0, 0, 0}, reg)

	reg = Registers{7, 8, 9, 10}
	err = MakeCode(INSN_SETI, 5, 0, 3).Execute(reg)
	assert.NoError(err)
	assert.Equal(Registers{7, 8, 9, 5}, reg)

	reg = Registers{3, 2, 1, 1}
	err = MakeCode(INSN_MULR, 2, 1, 2).Execute(reg)
	assert.NoError(err)
	assert.Equal(Registers{3, 2, 2, 1}, reg)

	reg = Registers{3, 2, 1, 1}
	err = MakeCodeNoop().Execute(reg)
	assert.NoError(err)
	assert.Equal(Registers{3, 2, 1, 1}, reg)
}

func TestCodeExecuteFast(t *testing.T) {
	assert := assert.New(t)

	reg := Registers{1, 2}
	code := MakeCodeFast(func(reg Registers) error {
		reg[0] += reg[1]
		return nil
	})
	assert.NoError(code.Execute(reg))
	assert.Equal(Registers{3, 2}, reg)

	failure := errors.New("failed")
	code = MakeCodeFast(func(reg Registers) error { return failure })
	assert.ErrorIs(code.Execute(reg), failure)

	assert.ErrorIs(MakeCodeFast(nil).Execute(reg), ErrFastMissing)
}

func TestCodeUnbound(t *testing.T) {
	assert := assert.New(t)

	code := MakeCodeNumber(9, 2, 1, 2)
	assert.True(code.Unbound)
	assert.Equal(9, code.Number)
	assert.ErrorIs(code.Execute(Registers{3, 2, 1, 1}), ErrOpcodeUnbound)
	assert.NoError(code.Validate(1))
	assert.Equal("9 2 1 2", code.String())

	bound := code.Bind(INSN_MULR)
	assert.True(code.Unbound)
	assert.False(bound.Unbound)
	assert.Equal(9, bound.Number)

	reg := Registers{3, 2, 1, 1}
	assert.NoError(bound.Execute(reg))
	assert.Equal(Registers{3, 2, 2, 1}, reg)
}

func TestCodeValidate(t *testing.T) {
	assert := assert.New(t)

	assert.NoError(MakeCode(INSN_SETI, 100, 100, 3).Validate(4))
	assert.NoError(MakeCode(INSN_GTIR, 100, 3, 0).Validate(4))
	assert.ErrorIs(MakeCode(INSN_GTRI, 100, 3, 0).Validate(4), ErrRegisterInvalid)
	assert.ErrorIs(MakeCode(INSN_ADDR, 0, 4, 0).Validate(4), ErrRegisterInvalid)
	assert.ErrorIs(MakeCode(INSN_ADDI, 0, 4, 4).Validate(4), ErrRegisterInvalid)
	assert.ErrorIs(MakeCode(INSN_ADDI, -1, 4, 0).Validate(4), ErrRegisterInvalid)
	assert.NoError(MakeCodeNoop().Validate(4))
}

func TestCodeDescribe(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		code     Code
		describe string
		text     string
	}{
		{MakeCode(INSN_ADDR, 0, 1, 2), "A + B => C", "addr 0 1 2"},
		{MakeCode(INSN_ADDI, 3, 1, 3), "D + 1 => D", "addi 3 1 3"},
		{MakeCode(INSN_SETI, 5, 0, 3), "SET 5 => D", "seti 5 0 3"},
		{MakeCode(INSN_SETR, 5, 0, 3), "SET F => D", "setr 5 0 3"},
		{MakeCode(INSN_GTIR, 256, 3, 1), "256 > D => B", "gtir 256 3 1"},
		{MakeCode(INSN_EQRR, 1, 4, 1), "B == E => B", "eqrr 1 4 1"},
		{MakeCode(INSN_BANI, 9, 255, 7), "r9 & 255 => r7", "bani 9 255 7"},
		{MakeCodeNoop(), "NOOP", "noop"},
		{MakeCodeNumber(3, 1, 2, 0), "3: 1 / 2 / 0", "3 1 2 0"},
	}

	for _, entry := range table {
		assert.Equal(entry.describe, entry.code.Describe())
		assert.Equal(entry.text, entry.code.String())
	}
}
