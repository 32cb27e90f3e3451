// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	"fmt"
	"log"

	"github.com/ezrec/regmach/cpu"
)

// Checkpoint is an instruction pointer at which a register is sampled.
type Checkpoint struct {
	Ip       int        // Sampled when execution arrives at this instruction.
	Register int        // Register sampled.
	Mode     DetectMode // Value reported.
}

// Emulator state. CPU + program + tick budget.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently running program listing.
	MaxTicks int          // If non-zero, the most instructions executed before ErrTickLimit.
}

// NewEmulator creates a new emulator with a bank of size registers.
func NewEmulator(size int) (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(size),
		Program: &cpu.Program{},
	}

	return
}

// Reset loads the program, and sets the register bank to the initial
// values. Registers without an initial value are zeroed.
func (emu *Emulator) Reset(initial cpu.Registers) (err error) {
	if len(initial) > len(emu.Cpu.Register) {
		err = fmt.Errorf("%w: %d initial values for %d registers",
			cpu.ErrRegisterInvalid, len(initial), len(emu.Cpu.Register))
		return
	}

	emu.Cpu.Verbose = emu.Verbose

	err = emu.Cpu.Load(emu.Program)
	if err != nil {
		return
	}

	clear(emu.Cpu.Register)
	copy(emu.Cpu.Register, initial)

	return
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Ip returns current instruction pointer.
func (emu *Emulator) Ip() int {
	return emu.Cpu.Ip
}

// LineNo returns the current line number for the executing opcode.
func (emu *Emulator) LineNo() int {
	op := emu.Program.Debug(emu.Cpu.Ip)
	if op == nil {
		return 0
	}

	return op.LineNo
}

// Tick performs a single tick of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	emu.Cpu.Verbose = emu.Verbose

	lineno := emu.LineNo()
	ip := emu.Cpu.Ip

	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Ip: ip, Err: err}
		}
	}()

	if emu.MaxTicks > 0 && emu.Cpu.Ticks >= emu.MaxTicks {
		err = ErrTickLimit
		return
	}

	err = emu.Cpu.Tick()
	if errors.Is(err, cpu.ErrIpEmpty) {
		done = true
		err = nil
		return
	}
	if err != nil {
		return
	}

	done = emu.Cpu.Halted()

	return
}

// Run executes the program from the initial registers until it halts,
// and returns the final register bank.
func (emu *Emulator) Run(initial cpu.Registers) (final cpu.Registers, err error) {
	err = emu.Reset(initial)
	if err != nil {
		return
	}

	for done := false; !done; {
		done, err = emu.Tick()
		if err != nil {
			return
		}
	}

	if emu.Verbose {
		log.Printf("emulator: halted after %d ticks, ip %d", emu.Cpu.Ticks, emu.Cpu.Ip)
	}

	final = emu.Cpu.Register.Clone()

	return
}

// FindCheckpoint executes the program from the initial registers, sampling
// the checkpoint register each time execution arrives at the checkpoint,
// including arrival at the start of execution. The value selected by the
// checkpoint mode is returned.
//
// ErrCheckpointUnreached is returned if the program halts first.
func (emu *Emulator) FindCheckpoint(initial cpu.Registers, checkpoint Checkpoint) (value int, err error) {
	if checkpoint.Register < 0 || checkpoint.Register >= len(emu.Cpu.Register) {
		err = &cpu.ErrRegister{Register: checkpoint.Register, Size: len(emu.Cpu.Register)}
		return
	}

	err = emu.Reset(initial)
	if err != nil {
		return
	}

	det := &Detector{Mode: checkpoint.Mode}

	for done := emu.Cpu.Halted(); !done; {
		if emu.Cpu.Ip == checkpoint.Ip {
			sample := emu.Cpu.Register[checkpoint.Register]
			value, done = det.Sample(sample)
			if done {
				if emu.Verbose {
					log.Printf("emulator: checkpoint %v value %d after %d samples, %d ticks",
						checkpoint.Mode, value, det.Samples(), emu.Cpu.Ticks)
				}
				return
			}
		}

		done, err = emu.Tick()
		if err != nil {
			return
		}
	}

	if last, ok := det.Last(); ok && checkpoint.Mode == DETECT_LAST {
		err = fmt.Errorf("%w: ip %d, %d samples, last value %d", ErrCheckpointUnreached, checkpoint.Ip, det.Samples(), last)
		return
	}

	err = fmt.Errorf("%w: ip %d, %d samples", ErrCheckpointUnreached, checkpoint.Ip, det.Samples())

	return
}

// Run executes a program with a bank of size registers.
func Run(prog *cpu.Program, size int, initial cpu.Registers) (final cpu.Registers, err error) {
	emu := NewEmulator(size)
	emu.Program = prog

	return emu.Run(initial)
}

// FindCheckpoint finds a checkpoint value of a program with a bank of
// size registers.
func FindCheckpoint(prog *cpu.Program, size int, initial cpu.Registers, checkpoint Checkpoint) (value int, err error) {
	emu := NewEmulator(size)
	emu.Program = prog

	return emu.FindCheckpoint(initial, checkpoint)
}
