package infer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ezrec/regmach/translate"
)

var f = translate.From

var (
	ErrSampleSyntax  = errors.New(f("sample syntax"))
	ErrSampleBank    = errors.New(f("sample register bank"))
	ErrSampleMissing = errors.New(f("sample incomplete"))
	ErrUnresolvable  = errors.New(f("opcode mapping unresolved"))
)

// ErrUnresolved lists the opcodes left without an instruction.
type ErrUnresolved struct {
	Opcodes    []int               // Unresolved opcodes, in order.
	Candidates map[int]CandidateSet // Remaining candidates of each.
}

func (err *ErrUnresolved) Error() string {
	var parts []string
	for _, number := range err.Opcodes {
		parts = append(parts, fmt.Sprintf("%d:%v", number, err.Candidates[number]))
	}
	return f("opcode mapping unresolved: %v", strings.Join(parts, " "))
}

func (err *ErrUnresolved) Is(target error) bool {
	return target == ErrUnresolvable
}

// ErrOpcodeUnknown is a numeric opcode with no mapped instruction.
type ErrOpcodeUnknown struct {
	LineNo int
	Number int
}

func (err *ErrOpcodeUnknown) Error() string {
	return f("line %d opcode %d unknown", err.LineNo, err.Number)
}
