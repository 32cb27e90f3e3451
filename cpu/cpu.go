package cpu

import (
	"errors"
	"fmt"
	"log"
)

// Cpu is the register machine.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Program  *Program  // Program being executed.
	Ip       int       // Current instruction pointer.
	Register Registers // Register bank.

	Ticks int // Instructions executed since the last reset.
}

// NewCpu creates a new CPU with a zeroed bank of size registers.
func NewCpu(size int) (cpu *Cpu) {
	cpu = &Cpu{
		Register: NewRegisters(size),
	}

	return
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text = fmt.Sprintf("   ip: %d\n", cpu.Ip)
	for n, val := range cpu.Register {
		mark := ""
		if cpu.Program != nil && cpu.Program.IpBound && cpu.Program.IpRegister == n {
			mark = " (ip)"
		}
		text += fmt.Sprintf("% 5s: %d%v\n", registerName(n), val, mark)
	}

	return
}

// Load checks a program against the register bank, and resets the CPU
// to run it.
func (cpu *Cpu) Load(prog *Program) (err error) {
	if prog == nil {
		return ErrProgramMissing
	}

	err = prog.Validate(len(cpu.Register))
	if err != nil {
		return
	}

	cpu.Program = prog
	cpu.Reset()

	return
}

// Reset the instruction pointer and statistics. The register bank is kept.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Ip = 0
	cpu.Ticks = 0
}

// Halted returns true if the instruction pointer is outside of the program.
func (cpu *Cpu) Halted() bool {
	return cpu.Program == nil || cpu.Ip < 0 || cpu.Ip >= cpu.Program.Len()
}

// Tick executes a single instruction.
//
// ErrIpEmpty is returned, and nothing is executed, once the instruction
// pointer has left the program.
func (cpu *Cpu) Tick() (err error) {
	if cpu.Halted() {
		err = ErrIpEmpty
		return
	}

	prog := cpu.Program
	code := prog.Opcodes[cpu.Ip].Code

	if prog.IpBound {
		cpu.Register[prog.IpRegister] = cpu.Ip
	}

	err = cpu.Execute(code)
	if err != nil {
		return
	}

	if prog.IpBound {
		cpu.Ip = cpu.Register[prog.IpRegister]
	}
	cpu.Ip += 1

	return
}

// Execute executes a single decoded instruction against the register bank.
func (cpu *Cpu) Execute(code Code) (err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrCode(code), err)
		}
	}()

	if cpu.Verbose {
		log.Printf("%03d: %-16v %v", cpu.Ip, code, cpu.Register)
	}

	err = code.Execute(cpu.Register)
	if err != nil {
		return
	}

	cpu.Ticks += 1

	return
}

// Run ticks the CPU until the instruction pointer leaves the program.
func (cpu *Cpu) Run() (err error) {
	for {
		err = cpu.Tick()
		if errors.Is(err, ErrIpEmpty) {
			return nil
		}
		if err != nil {
			return
		}
	}
}
