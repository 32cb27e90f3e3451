package cpu

import (
	"fmt"
	"slices"
	"strings"
)

// Register bank sizes.
const (
	REGISTERS_SAMPLE  = 4 // Bank size of inference samples.
	REGISTERS_PROGRAM = 6 // Bank size when running programs.
)

// Registers is a register bank.
type Registers []int

// NewRegisters creates a zeroed register bank.
func NewRegisters(size int) Registers {
	return make(Registers, size)
}

// Clone returns an independent copy of the bank.
func (reg Registers) Clone() Registers {
	return slices.Clone(reg)
}

// Equal returns true if both banks hold the same values.
func (reg Registers) Equal(other Registers) bool {
	return slices.Equal(reg, other)
}

// Valid returns true if index is a register of the bank.
func (reg Registers) Valid(index int) bool {
	return index >= 0 && index < len(reg)
}

// String formats the bank the way samples are written: [a, b, c, d]
func (reg Registers) String() string {
	vals := make([]string, len(reg))
	for n, val := range reg {
		vals[n] = fmt.Sprintf("%d", val)
	}
	return "[" + strings.Join(vals, ", ") + "]"
}
