package infer

import (
	"log"
	"maps"
	"slices"

	"github.com/ezrec/regmach/cpu"
)

// AMBIGUOUS_CANDIDATES is the candidate count at which a sample is
// counted as ambiguous.
const AMBIGUOUS_CANDIDATES = 3

// Mapping binds numeric opcodes to instructions.
type Mapping map[int]cpu.Instruction

// Bind returns a copy of prog with every numeric opcode bound.
func (mapping Mapping) Bind(prog *cpu.Program) (bound *cpu.Program, err error) {
	bound = prog.Clone()

	for n := range bound.Opcodes {
		op := &bound.Opcodes[n]
		if !op.Code.Unbound {
			continue
		}
		insn, ok := mapping[op.Code.Number]
		if !ok {
			return nil, &ErrOpcodeUnknown{LineNo: op.LineNo, Number: op.Code.Number}
		}
		op.Code = op.Code.Bind(insn)
	}

	return
}

// Engine collects samples and resolves the opcode mapping.
type Engine struct {
	Verbose bool // If set, logs the resolution passes.

	Samples    int                  // Samples seen.
	Ambiguous  int                  // Samples with AMBIGUOUS_CANDIDATES or more candidates.
	Candidates map[int]CandidateSet // Candidates of each opcode, over all of its samples.
}

// NewEngine creates an engine with no samples.
func NewEngine() *Engine {
	return &Engine{
		Candidates: make(map[int]CandidateSet),
	}
}

// Add records a sample, narrowing the candidates of its opcode.
// The candidates of the sample alone are returned.
func (eng *Engine) Add(sample Sample) (set CandidateSet) {
	if eng.Candidates == nil {
		eng.Candidates = make(map[int]CandidateSet)
	}

	set = Candidates(sample)

	eng.Samples += 1
	if set.Count() >= AMBIGUOUS_CANDIDATES {
		eng.Ambiguous += 1
	}

	number := sample.Code.Number
	prior, ok := eng.Candidates[number]
	if !ok {
		prior = CANDIDATES_ALL
	}
	eng.Candidates[number] = prior & set

	if eng.Verbose {
		log.Printf("infer: opcode %d sample %v, now %v", number, set, eng.Candidates[number])
	}

	return
}

// Opcodes returns the numeric opcodes seen, in order.
func (eng *Engine) Opcodes() []int {
	return slices.Sorted(maps.Keys(eng.Candidates))
}

// Resolve assigns each opcode the single instruction left to it once the
// instructions claimed by other opcodes are set aside.
//
// Resolution gives up with ErrUnresolved when a pass assigns nothing.
func (eng *Engine) Resolve() (mapping Mapping, err error) {
	opcodes := eng.Opcodes()
	mapping = make(Mapping, len(opcodes))

	var claimed CandidateSet
	for pass := 0; pass < len(opcodes) && len(mapping) < len(opcodes); pass++ {
		progress := false
		for _, number := range opcodes {
			if _, done := mapping[number]; done {
				continue
			}
			insn, ok := (eng.Candidates[number] &^ claimed).Only()
			if !ok {
				continue
			}
			mapping[number] = insn
			claimed = claimed.Add(insn)
			progress = true

			if eng.Verbose {
				log.Printf("infer: pass %d opcode %d is %v", pass, number, insn)
			}
		}
		if !progress {
			break
		}
	}

	if len(mapping) < len(opcodes) {
		unresolved := &ErrUnresolved{Candidates: make(map[int]CandidateSet)}
		for _, number := range opcodes {
			if _, done := mapping[number]; done {
				continue
			}
			unresolved.Opcodes = append(unresolved.Opcodes, number)
			unresolved.Candidates[number] = eng.Candidates[number] &^ claimed
		}
		return mapping, unresolved
	}

	return
}

// Infer resolves the opcode mapping of a set of samples.
func Infer(samples []Sample) (mapping Mapping, err error) {
	eng := NewEngine()
	for _, sample := range samples {
		eng.Add(sample)
	}

	return eng.Resolve()
}
