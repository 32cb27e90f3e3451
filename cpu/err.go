package cpu

import (
	"errors"

	"github.com/ezrec/regmach/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrIpEmpty        = errors.New(f("ip empty"))
	ErrIpRegister     = errors.New(f("ip register invalid"))
	ErrOpcodeUnbound  = errors.New(f("opcode not bound to an instruction"))
	ErrFastMissing    = errors.New(f("fast path missing"))
	ErrProgramMissing = errors.New(f("program missing"))

	// Assembler errors
	ErrIpDirective        = errors.New(f("#ip syntax"))
	ErrIpDuplicate        = errors.New(f("#ip duplicated"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
	ErrRegisterInvalid    = errors.New(f("register invalid"))
)

// ErrRegister is a register operand outside of the register bank.
type ErrRegister struct {
	LineNo   int
	Register int
	Size     int
}

func (err *ErrRegister) Error() string {
	if err.LineNo > 0 {
		return f("line %d register %d outside of bank of %d", err.LineNo, err.Register, err.Size)
	}
	return f("register %d outside of bank of %d", err.Register, err.Size)
}

func (err *ErrRegister) Is(target error) bool {
	return target == ErrRegisterInvalid
}

// ErrCode identifies the code that failed to execute.
type ErrCode Code

func (ec ErrCode) Error() string {
	return f("code %v", Code(ec).String())
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}
