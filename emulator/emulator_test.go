package emulator

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/regmach/cpu"
	"github.com/ezrec/regmach/optimize"
)

const hashSeed = 10605201

// hashNext computes the next checkpoint value of testdata/hash.txt.
func hashNext(d int) int {
	b := d | 65536
	d = hashSeed
	for {
		d = (((d + b&255) & 0xffffff) * 65899) & 0xffffff
		if b < 256 {
			return d
		}
		b /= 256
	}
}

// hashStep is the closed form of the hash loop at [8, 28).
func hashStep(reg cpu.Registers) error {
	b, d := reg[1], reg[3]
	for {
		d = (((d + b&255) & 0xffffff) * 65899) & 0xffffff
		if b < 256 {
			break
		}
		b /= 256
		reg[4] = 1
	}
	reg[1], reg[2], reg[3], reg[5] = b, 27, d, 1
	return nil
}

var hashRule = optimize.Rule{
	Name:  "hash",
	Start: 8,
	End:   28,
	Fast:  hashStep,
}

func parseProgram(t *testing.T, lines ...string) *cpu.Program {
	asm := &cpu.Assembler{Registers: cpu.REGISTERS_PROGRAM}
	prog, err := asm.Parse(strings.NewReader(strings.Join(lines, "\n")))
	if err != nil {
		t.Fatal(err)
	}
	return prog
}

func loadHash(t *testing.T) *cpu.Program {
	inf, err := os.Open("testdata/hash.txt")
	if err != nil {
		t.Fatal(err)
	}
	defer inf.Close()

	asm := &cpu.Assembler{Registers: cpu.REGISTERS_PROGRAM}
	prog, err := asm.Parse(inf)
	if err != nil {
		t.Fatal(err)
	}
	return prog
}

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(cpu.REGISTERS_PROGRAM)

	assert.False(emu.Verbose)
	assert.NotNil(emu.Cpu)
	assert.Equal(cpu.REGISTERS_PROGRAM, len(emu.Cpu.Register))
	assert.Equal(0, emu.MaxTicks)
}

func TestEmulatorHalt(t *testing.T) {
	assert := assert.New(t)

	prog := parseProgram(t, "#ip 0", "seti 5 0 0")

	emu := NewEmulator(cpu.REGISTERS_PROGRAM)
	emu.Program = prog

	final, err := emu.Run(nil)
	assert.NoError(err)
	assert.Equal(cpu.Registers{5, 0, 0, 0, 0, 0}, final)
	assert.Equal(6, emu.Ip())
	assert.Equal(1, emu.Ticks())

	done, err := emu.Tick()
	assert.NoError(err)
	assert.True(done)
}

func TestEmulatorLineNo(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(cpu.REGISTERS_PROGRAM)
	emu.Program = loadHash(t)

	err := emu.Reset(nil)
	assert.NoError(err)

	for ip := range 4 {
		assert.Equal(ip, emu.Ip())
		assert.Equal(ip+2, emu.LineNo())
		done, err := emu.Tick()
		assert.NoError(err)
		assert.False(done)
	}

	// Self test passed; skipped to ip 5.
	assert.Equal(5, emu.Ip())
}

func TestEmulatorReset(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(cpu.REGISTERS_SAMPLE)
	emu.Program = parseProgram(t, "addi 0 1 0")

	err := emu.Reset(cpu.Registers{1, 2, 3, 4, 5})
	assert.ErrorIs(err, cpu.ErrRegisterInvalid)

	final, err := emu.Run(cpu.Registers{1, 2})
	assert.NoError(err)
	assert.Equal(cpu.Registers{2, 2, 0, 0}, final)

	// Registers from the prior run are cleared.
	final, err = emu.Run(cpu.Registers{7})
	assert.NoError(err)
	assert.Equal(cpu.Registers{8, 0, 0, 0}, final)

	emu.Program = parseProgram(t, "addi 0 1 5")
	_, err = emu.Run(nil)
	assert.ErrorIs(err, cpu.ErrRegisterInvalid)
}

func TestEmulatorTickLimit(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(cpu.REGISTERS_PROGRAM)
	emu.Program = parseProgram(t, "#ip 0", "seti -1 0 0")
	emu.MaxTicks = 100

	_, err := emu.Run(nil)
	assert.ErrorIs(err, ErrTickLimit)
	assert.Equal(100, emu.Ticks())

	var runtime *ErrRuntime
	assert.ErrorAs(err, &runtime)
	assert.Equal(2, runtime.LineNo)
	assert.Equal(0, runtime.Ip)
}

func TestEmulatorUnbound(t *testing.T) {
	assert := assert.New(t)

	prog := parseProgram(t, "seti 1 0 0", "9 0 0 1")

	_, err := Run(prog, cpu.REGISTERS_PROGRAM, nil)
	assert.ErrorIs(err, cpu.ErrOpcodeUnbound)

	var runtime *ErrRuntime
	assert.ErrorAs(err, &runtime)
	assert.Equal(2, runtime.LineNo)
	assert.Equal(1, runtime.Ip)
}

func TestFindCheckpointStart(t *testing.T) {
	assert := assert.New(t)

	prog := parseProgram(t, "#ip 0", "seti 5 0 0")

	value, err := FindCheckpoint(prog, cpu.REGISTERS_PROGRAM, cpu.Registers{0, 7},
		Checkpoint{Ip: 0, Register: 1, Mode: DETECT_FIRST})
	assert.NoError(err)
	assert.Equal(7, value)

	_, err = FindCheckpoint(prog, cpu.REGISTERS_PROGRAM, cpu.Registers{0, 7},
		Checkpoint{Ip: 0, Register: 1, Mode: DETECT_LAST})
	assert.ErrorIs(err, ErrCheckpointUnreached)
	assert.ErrorContains(err, "last value 7")

	_, err = FindCheckpoint(prog, cpu.REGISTERS_PROGRAM, nil,
		Checkpoint{Ip: 3, Register: 1, Mode: DETECT_FIRST})
	assert.ErrorIs(err, ErrCheckpointUnreached)

	_, err = FindCheckpoint(prog, cpu.REGISTERS_PROGRAM, nil,
		Checkpoint{Ip: 0, Register: 6, Mode: DETECT_FIRST})
	assert.ErrorIs(err, cpu.ErrRegisterInvalid)
}

func TestFindCheckpointHash(t *testing.T) {
	prog := loadHash(t)

	optimized, err := optimize.Apply(prog, hashRule)
	if err != nil {
		t.Fatal(err)
	}

	first := hashNext(0)

	seen := map[int]bool{}
	last := 0
	for d := first; !seen[d]; d = hashNext(d) {
		seen[d] = true
		last = d
	}

	checkpoint := Checkpoint{Ip: 28, Register: 3}

	t.Run("first", func(t *testing.T) {
		assert := assert.New(t)

		checkpoint := checkpoint
		checkpoint.Mode = DETECT_FIRST

		value, err := FindCheckpoint(prog, cpu.REGISTERS_PROGRAM, nil, checkpoint)
		assert.NoError(err)
		assert.Equal(first, value)

		value, err = FindCheckpoint(optimized, cpu.REGISTERS_PROGRAM, nil, checkpoint)
		assert.NoError(err)
		assert.Equal(first, value)
	})

	t.Run("last", func(t *testing.T) {
		assert := assert.New(t)

		checkpoint := checkpoint
		checkpoint.Mode = DETECT_LAST

		emu := NewEmulator(cpu.REGISTERS_PROGRAM)
		emu.Program = optimized
		emu.MaxTicks = 100_000_000

		value, err := emu.FindCheckpoint(nil, checkpoint)
		assert.NoError(err)
		assert.Equal(last, value)
	})

	t.Run("halt", func(t *testing.T) {
		assert := assert.New(t)

		final, err := Run(optimized, cpu.REGISTERS_PROGRAM, cpu.Registers{first})
		assert.NoError(err)
		assert.Equal(first, final[0])
		assert.Equal(first, final[3])
	})
}

func TestHashRuleVerify(t *testing.T) {
	assert := assert.New(t)

	prog := loadHash(t)

	var states []cpu.Registers
	for _, b := range []int{0, 1, 255, 256, 65536, 0x12345 | 65536} {
		states = append(states, cpu.Registers{0, b, 0, hashSeed, 0, 0})
	}

	err := optimize.Verify(prog, hashRule, states, 0)
	assert.NoError(err)
}
