package cpu

import (
	"fmt"
)

// NUMBER_NONE is the Code.Number of an operation given by name.
const NUMBER_NONE = -1

// FastFunc computes the effect of a rewritten instruction range directly
// on the register bank.
type FastFunc func(reg Registers) error

// Code is a decoded operation: an instruction and its three operands.
type Code struct {
	Number  int         // Numeric opcode, or NUMBER_NONE.
	Unbound bool        // Set while Number is not yet mapped to Insn.
	Insn    Instruction // Bound instruction.
	A       int         // Operand A.
	B       int         // Operand B.
	C       int         // Destination register.
	Fast    FastFunc    // Fast path of an INSN_FAST code.
}

// MakeCode creates a code bound to an instruction.
func MakeCode(insn Instruction, a, b, c int) Code {
	return Code{Number: NUMBER_NONE, Insn: insn, A: a, B: b, C: c}
}

// MakeCodeNumber creates a code for a numeric opcode, not yet bound.
func MakeCodeNumber(number int, a, b, c int) Code {
	return Code{Number: number, Unbound: true, A: a, B: b, C: c}
}

// MakeCodeNoop creates a no-op code.
func MakeCodeNoop() Code {
	return Code{Number: NUMBER_NONE, Insn: INSN_NOOP}
}

// MakeCodeFast creates a code running a fast path.
func MakeCodeFast(fast FastFunc) Code {
	return Code{Number: NUMBER_NONE, Insn: INSN_FAST, Fast: fast}
}

// Bind returns a copy of the code bound to insn.
func (code Code) Bind(insn Instruction) Code {
	code.Insn = insn
	code.Unbound = false
	return code
}

// Execute runs the code against the register bank, updating the
// destination register.
func (code Code) Execute(reg Registers) (err error) {
	if code.Unbound {
		return ErrOpcodeUnbound
	}

	switch code.Insn {
	case INSN_NOOP:
		// pass
	case INSN_FAST:
		if code.Fast == nil {
			return ErrFastMissing
		}
		err = code.Fast(reg)
	default:
		if !code.Insn.Valid() {
			return ErrInstructionInvalid
		}
		reg[code.C] = code.Insn.Execute(reg, code.A, code.B)
	}

	return
}

// Validate checks that all register operands fit a bank of size registers.
func (code Code) Validate(size int) (err error) {
	if code.Unbound || !code.Insn.Valid() {
		return
	}

	mode_a, mode_b := code.Insn.Modes()
	if mode_a == MODE_REGISTER && (code.A < 0 || code.A >= size) {
		return &ErrRegister{Register: code.A, Size: size}
	}
	if mode_b == MODE_REGISTER && (code.B < 0 || code.B >= size) {
		return &ErrRegister{Register: code.B, Size: size}
	}
	if code.C < 0 || code.C >= size {
		return &ErrRegister{Register: code.C, Size: size}
	}

	return
}

// registerName names a register in listings.
func registerName(index int) string {
	const names = "ABCDEF"
	if index >= 0 && index < len(names) {
		return names[index : index+1]
	}
	return fmt.Sprintf("r%d", index)
}

// Describe returns a readable form of the code, such as "A + 3 => C".
func (code Code) Describe() string {
	if code.Unbound {
		return fmt.Sprintf("%d: %d / %d / %d", code.Number, code.A, code.B, code.C)
	}

	switch code.Insn {
	case INSN_NOOP:
		return "NOOP"
	case INSN_FAST:
		return "FAST"
	}

	mode_a, mode_b := code.Insn.Modes()
	arg := func(mode Mode, value int) string {
		if mode == MODE_REGISTER {
			return registerName(value)
		}
		return fmt.Sprintf("%d", value)
	}

	a := arg(mode_a, code.A)
	out := registerName(code.C)
	if mode_b == MODE_NONE {
		return fmt.Sprintf("SET %v => %v", a, out)
	}

	return fmt.Sprintf("%v %v %v => %v", a, code.Insn.Symbol(), arg(mode_b, code.B), out)
}

// String returns the assembly form of the code.
func (code Code) String() string {
	if code.Unbound {
		return fmt.Sprintf("%d %d %d %d", code.Number, code.A, code.B, code.C)
	}

	switch code.Insn {
	case INSN_NOOP, INSN_FAST:
		return code.Insn.String()
	}

	return fmt.Sprintf("%v %d %d %d", code.Insn, code.A, code.B, code.C)
}

// Opcode is a line of program text and the code decoded from it.
type Opcode struct {
	LineNo int      // Source line, 0 for rewritten code.
	Words  []string // Source words.
	Code   Code     // Decoded operation.
}
