package cpu

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// Program is an assembled instruction sequence.
//
// Programs are treated as values; rewriting passes return a new Program
// rather than modifying one in place.
type Program struct {
	IpBound    bool     // Set if the instruction pointer is bound to a register.
	IpRegister int      // Register the instruction pointer is bound to.
	Opcodes    []Opcode // Program text, one opcode per instruction.
}

// Len returns the number of instructions.
func (prog *Program) Len() int {
	return len(prog.Opcodes)
}

// Code returns the code at ip.
func (prog *Program) Code(ip int) (code Code, ok bool) {
	if ip < 0 || ip >= len(prog.Opcodes) {
		return
	}

	return prog.Opcodes[ip].Code, true
}

// Debug returns the source opcode at ip, or nil.
func (prog *Program) Debug(ip int) *Opcode {
	if ip < 0 || ip >= len(prog.Opcodes) {
		return nil
	}

	return &prog.Opcodes[ip]
}

// Codes iterates over the codes of the program by instruction pointer.
func (prog *Program) Codes() iter.Seq2[int, Code] {
	return func(yield func(ip int, code Code) bool) {
		for ip, op := range prog.Opcodes {
			if !yield(ip, op.Code) {
				return
			}
		}
	}
}

// Clone returns a copy of the program that shares no opcode storage.
func (prog *Program) Clone() *Program {
	clone := *prog
	clone.Opcodes = slices.Clone(prog.Opcodes)
	return &clone
}

// Bound returns true if every opcode is bound to an instruction.
func (prog *Program) Bound() bool {
	for _, code := range prog.Codes() {
		if code.Unbound {
			return false
		}
	}
	return true
}

// Validate checks the program against a register bank of size registers.
func (prog *Program) Validate(size int) (err error) {
	if prog.IpBound && (prog.IpRegister < 0 || prog.IpRegister >= size) {
		return &ErrRegister{Register: prog.IpRegister, Size: size}
	}

	for _, op := range prog.Opcodes {
		err = op.Code.Validate(size)
		if err != nil {
			var reg *ErrRegister
			reg, _ = err.(*ErrRegister)
			if reg != nil {
				reg.LineNo = op.LineNo
			}
			return
		}
	}

	return
}

// String returns the program listing.
func (prog *Program) String() string {
	var text strings.Builder

	if prog.IpBound {
		fmt.Fprintf(&text, "#ip %d\n", prog.IpRegister)
	}

	for ip, code := range prog.Codes() {
		fmt.Fprintf(&text, "%3d: %-16v ; %v\n", ip, code.String(), code.Describe())
	}

	return text.String()
}
