// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"io"
	"log"
	"slices"
	"strconv"
	"strings"
)

// Assembler loads program text.
//
// Each line is either an instruction `<name> <a> <b> <c>`, with the name
// matched without regard to case, a numeric operation `<opcode> <a> <b> <c>`
// whose instruction is not yet known, or the directive `#ip <register>`.
// Text after a ';' is a comment.
type Assembler struct {
	Verbose   bool     // If set, verbosely logs the assembler actions.
	Registers int      // If non-zero, register operands are checked against this bank size.
	Opcode    []Opcode // List of generated opcodes.

	ipBound    bool
	ipRegister int
}

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (value int, err error) {
	v64, err := strconv.ParseInt(word, 10, 64)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	value = int(v64)
	return
}

// parseDirective handles the `#ip` directive.
func (asm *Assembler) parseDirective(words []string) (err error) {
	if words[0] != "#ip" || len(words) != 2 {
		err = ErrIpDirective
		return
	}
	if asm.ipBound {
		err = ErrIpDuplicate
		return
	}

	reg, err := asm.valueOf(words[1])
	if err != nil {
		return
	}
	if reg < 0 || (asm.Registers > 0 && reg >= asm.Registers) {
		err = &ErrRegister{Register: reg, Size: asm.Registers}
		return
	}

	asm.ipBound = true
	asm.ipRegister = reg

	return
}

// parseWords evaluates the words in a line of program text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	if len(words) == 0 {
		return
	}

	if strings.HasPrefix(words[0], "#") {
		return asm.parseDirective(words)
	}

	if len(words) < 4 {
		err = ErrOpcodeValueMissing
		return
	}
	if len(words) > 4 {
		err = ErrOpcodeExtraArgs
		return
	}

	var args [3]int
	for n, word := range words[1:] {
		args[n], err = asm.valueOf(word)
		if err != nil {
			return
		}
	}

	var code Code
	if number, num_err := strconv.Atoi(words[0]); num_err == nil {
		code = MakeCodeNumber(number, args[0], args[1], args[2])
	} else {
		insn, ok := LookupInstruction(words[0])
		if !ok {
			err = ErrInstructionInvalid
			return
		}
		code = MakeCode(insn, args[0], args[1], args[2])
	}

	if asm.Registers > 0 {
		err = code.Validate(asm.Registers)
		if err != nil {
			return
		}
	}

	asm.Opcode = append(asm.Opcode, Opcode{LineNo: lineno, Words: words, Code: code})

	return
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Opcode = asm.Opcode[:0]
	asm.ipBound = false
	asm.ipRegister = 0

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])

		err = asm.parseWords(strings.Fields(line), lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	prog = &Program{
		IpBound:    asm.ipBound,
		IpRegister: asm.ipRegister,
		Opcodes:    slices.Clone(asm.Opcode),
	}

	return
}
