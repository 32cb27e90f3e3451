package infer

import (
	"iter"
	"math/bits"
	"strings"

	"github.com/ezrec/regmach/cpu"
)

// CandidateSet is a set of instructions, one bit per instruction.
type CandidateSet uint16

// CANDIDATES_ALL holds the whole instruction set.
const CANDIDATES_ALL = CandidateSet(1<<cpu.INSN_COUNT - 1)

// CandidatesOf creates a set of the listed instructions.
func CandidatesOf(insns ...cpu.Instruction) (set CandidateSet) {
	for _, insn := range insns {
		set = set.Add(insn)
	}
	return
}

// Add returns the set with insn included.
func (set CandidateSet) Add(insn cpu.Instruction) CandidateSet {
	if !insn.Valid() {
		return set
	}
	return set | (1 << insn)
}

// Has returns true if insn is in the set.
func (set CandidateSet) Has(insn cpu.Instruction) bool {
	return insn.Valid() && (set&(1<<insn)) != 0
}

// Count returns the number of instructions in the set.
func (set CandidateSet) Count() int {
	return bits.OnesCount16(uint16(set))
}

// Only returns the single member of a set of one.
func (set CandidateSet) Only() (insn cpu.Instruction, ok bool) {
	if set.Count() != 1 {
		return
	}
	return cpu.Instruction(bits.TrailingZeros16(uint16(set))), true
}

// All iterates over the members of the set in opcode order.
func (set CandidateSet) All() iter.Seq[cpu.Instruction] {
	return func(yield func(insn cpu.Instruction) bool) {
		for _, insn := range cpu.Instructions {
			if set.Has(insn) && !yield(insn) {
				return
			}
		}
	}
}

// String lists the members, such as {addr,seti}.
func (set CandidateSet) String() string {
	var names []string
	for insn := range set.All() {
		names = append(names, insn.String())
	}
	return "{" + strings.Join(names, ",") + "}"
}

// Candidates returns the instructions that turn the sample's before bank
// into its after bank with the sample's operands.
func Candidates(sample Sample) (set CandidateSet) {
	size := len(sample.Before)
	if len(sample.After) != size {
		return
	}

	for _, insn := range cpu.Instructions {
		code := sample.Code.Bind(insn)
		if code.Validate(size) != nil {
			continue
		}

		reg := sample.Before.Clone()
		if code.Execute(reg) != nil {
			continue
		}
		if reg.Equal(sample.After) {
			set = set.Add(insn)
		}
	}

	return
}
