package cpu

import (
	"strings"
)

// Mode is the addressing mode of an instruction operand.
type Mode int

//go:generate go tool stringer -linecomment -type=Mode
const (
	MODE_NONE      = Mode(0) // -
	MODE_REGISTER  = Mode(1) // r
	MODE_IMMEDIATE = Mode(2) // i
)

// Instruction is one of the machine instructions.
//
// The first INSN_COUNT values form the closed instruction set that
// numeric opcodes may denote. INSN_NOOP and INSN_FAST are only
// produced by program rewriting.
type Instruction int

//go:generate go tool stringer -linecomment -type=Instruction
const (
	INSN_ADDR = Instruction(0)  // addr
	INSN_ADDI = Instruction(1)  // addi
	INSN_MULR = Instruction(2)  // mulr
	INSN_MULI = Instruction(3)  // muli
	INSN_BANR = Instruction(4)  // banr
	INSN_BANI = Instruction(5)  // bani
	INSN_BORR = Instruction(6)  // borr
	INSN_BORI = Instruction(7)  // bori
	INSN_SETR = Instruction(8)  // setr
	INSN_SETI = Instruction(9)  // seti
	INSN_GTIR = Instruction(10) // gtir
	INSN_GTRI = Instruction(11) // gtri
	INSN_GTRR = Instruction(12) // gtrr
	INSN_EQIR = Instruction(13) // eqir
	INSN_EQRI = Instruction(14) // eqri
	INSN_EQRR = Instruction(15) // eqrr
	INSN_NOOP = Instruction(16) // noop
	INSN_FAST = Instruction(17) // fast
)

// INSN_COUNT is the size of the inferable instruction set.
const INSN_COUNT = 16

// Instructions lists the inferable instruction set in opcode order.
var Instructions = [INSN_COUNT]Instruction{
	INSN_ADDR, INSN_ADDI,
	INSN_MULR, INSN_MULI,
	INSN_BANR, INSN_BANI,
	INSN_BORR, INSN_BORI,
	INSN_SETR, INSN_SETI,
	INSN_GTIR, INSN_GTRI, INSN_GTRR,
	INSN_EQIR, INSN_EQRI, INSN_EQRR,
}

// insnMap maps lower case instruction names.
var insnMap = func() map[string]Instruction {
	m := make(map[string]Instruction, INSN_COUNT)
	for _, insn := range Instructions {
		m[insn.String()] = insn
	}
	return m
}()

// LookupInstruction finds an instruction by name, ignoring case.
func LookupInstruction(name string) (insn Instruction, ok bool) {
	insn, ok = insnMap[strings.ToLower(name)]
	return
}

// Valid returns true for members of the inferable instruction set.
func (insn Instruction) Valid() bool {
	return insn >= INSN_ADDR && insn < INSN_COUNT
}

// Modes returns the addressing modes of the A and B operands.
func (insn Instruction) Modes() (a, b Mode) {
	switch insn {
	case INSN_ADDR, INSN_MULR, INSN_BANR, INSN_BORR, INSN_GTRR, INSN_EQRR:
		return MODE_REGISTER, MODE_REGISTER
	case INSN_ADDI, INSN_MULI, INSN_BANI, INSN_BORI, INSN_GTRI, INSN_EQRI:
		return MODE_REGISTER, MODE_IMMEDIATE
	case INSN_GTIR, INSN_EQIR:
		return MODE_IMMEDIATE, MODE_REGISTER
	case INSN_SETR:
		return MODE_REGISTER, MODE_NONE
	case INSN_SETI:
		return MODE_IMMEDIATE, MODE_NONE
	}

	return MODE_NONE, MODE_NONE
}

// Symbol returns the operator used in listings.
func (insn Instruction) Symbol() string {
	switch insn {
	case INSN_ADDR, INSN_ADDI:
		return "+"
	case INSN_MULR, INSN_MULI:
		return "*"
	case INSN_BANR, INSN_BANI:
		return "&"
	case INSN_BORR, INSN_BORI:
		return "|"
	case INSN_SETR, INSN_SETI:
		return "SET"
	case INSN_GTIR, INSN_GTRI, INSN_GTRR:
		return ">"
	case INSN_EQIR, INSN_EQRI, INSN_EQRR:
		return "=="
	}

	return "??"
}

// operand resolves an operand value for the addressing mode.
func operand(mode Mode, reg Registers, value int) int {
	switch mode {
	case MODE_REGISTER:
		return reg[value]
	case MODE_IMMEDIATE:
		return value
	}

	return 0
}

// Execute applies the instruction to operands a and b, and returns the
// value to be written to the destination register.
//
// The register bank is only read. Register mode operands must be valid
// indexes into the bank.
func (insn Instruction) Execute(reg Registers, a, b int) (value int) {
	mode_a, mode_b := insn.Modes()
	va := operand(mode_a, reg, a)
	vb := operand(mode_b, reg, b)

	switch insn {
	case INSN_ADDR, INSN_ADDI:
		value = va + vb
	case INSN_MULR, INSN_MULI:
		value = va * vb
	case INSN_BANR, INSN_BANI:
		value = va & vb
	case INSN_BORR, INSN_BORI:
		value = va | vb
	case INSN_SETR, INSN_SETI:
		value = va
	case INSN_GTIR, INSN_GTRI, INSN_GTRR:
		if va > vb {
			value = 1
		}
	case INSN_EQIR, INSN_EQRI, INSN_EQRR:
		if va == vb {
			value = 1
		}
	default:
		panic("instruction has no binary function")
	}

	return
}
