package infer

import (
	"bufio"
	"errors"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/ezrec/regmach/cpu"
)

// Sample is one observed execution of a numeric opcode.
type Sample struct {
	LineNo int           // Line of the opcode in the sample text.
	Code   cpu.Code      // Numeric opcode and operands.
	Before cpu.Registers // Bank before execution.
	After  cpu.Registers // Bank after execution.
}

// Parser reads observed samples, optionally followed by a program of
// numeric opcodes.
//
// Samples are groups of lines:
//
//	Before: [3, 2, 1, 1]
//	9 2 1 2
//	After:  [3, 2, 2, 1]
//
// Every other line is handed to the assembler.
type Parser struct {
	Verbose   bool // If set, logs each sample parsed.
	Registers int  // If non-zero, the required bank size of samples.
}

// parseBank parses a `Label: [a, b, c]` register bank.
func parseBank(line string, label string) (reg cpu.Registers, err error) {
	text, ok := strings.CutPrefix(line, label)
	if !ok {
		err = ErrSampleMissing
		return
	}

	text = strings.TrimSpace(text)
	text, ok = strings.CutPrefix(text, "[")
	if !ok {
		err = ErrSampleSyntax
		return
	}
	text, ok = strings.CutSuffix(text, "]")
	if !ok {
		err = ErrSampleSyntax
		return
	}

	for _, word := range strings.Split(text, ",") {
		var value int
		value, err = strconv.Atoi(strings.TrimSpace(word))
		if err != nil {
			err = cpu.ErrParseNumber(strings.TrimSpace(word))
			return
		}
		reg = append(reg, value)
	}

	return
}

// parseCode parses the `<opcode> <a> <b> <c>` line of a sample.
func parseCode(line string) (code cpu.Code, err error) {
	words := strings.Fields(line)
	if len(words) < 4 {
		err = cpu.ErrOpcodeValueMissing
		return
	}
	if len(words) > 4 {
		err = cpu.ErrOpcodeExtraArgs
		return
	}

	var args [4]int
	for n, word := range words {
		args[n], err = strconv.Atoi(word)
		if err != nil {
			err = cpu.ErrParseNumber(word)
			return
		}
	}

	code = cpu.MakeCodeNumber(args[0], args[1], args[2], args[3])
	return
}

// Parse reads samples and the trailing program from input.
//
// Program line numbers refer to the whole input.
func (ps *Parser) Parse(input io.Reader) (samples []Sample, prog *cpu.Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		var syntax *cpu.ErrSyntax
		if err != nil && !errors.As(err, &syntax) {
			err = &cpu.ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	next := func() bool {
		if !scanner.Scan() {
			return false
		}
		lineno += 1
		line = strings.TrimSpace(scanner.Text())
		return true
	}

	// Consumed sample lines stay as blank lines, so the assembler
	// reports program lines by their input line number.
	var program strings.Builder

	for next() {
		if !strings.HasPrefix(line, "Before:") {
			program.WriteString(line)
			program.WriteString("\n")
			continue
		}

		var sample Sample
		sample.Before, err = parseBank(line, "Before:")
		if err != nil {
			return
		}

		if !next() {
			err = ErrSampleMissing
			return
		}
		sample.LineNo = lineno
		sample.Code, err = parseCode(line)
		if err != nil {
			return
		}

		if !next() {
			err = ErrSampleMissing
			return
		}
		sample.After, err = parseBank(line, "After:")
		if err != nil {
			return
		}

		if len(sample.Before) != len(sample.After) {
			err = ErrSampleBank
			return
		}
		if ps.Registers > 0 && len(sample.Before) != ps.Registers {
			err = ErrSampleBank
			return
		}

		if ps.Verbose {
			log.Printf("sample %d: %v %v %v", len(samples), sample.Before, sample.Code, sample.After)
		}

		samples = append(samples, sample)
		program.WriteString("\n\n\n")
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	asm := &cpu.Assembler{Verbose: ps.Verbose, Registers: ps.Registers}
	prog, err = asm.Parse(strings.NewReader(program.String()))

	return
}
