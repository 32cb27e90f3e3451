package optimize

import (
	"github.com/google/go-cmp/cmp"

	"github.com/ezrec/regmach/cpu"
)

// VERIFY_TICKS bounds the ticks of one verification run.
const VERIFY_TICKS = 10_000_000

// exit is where a run left a rewritten range.
type exit struct {
	Ip       int
	Register cpu.Registers
}

// runRange runs prog from rule.Start until the instruction pointer leaves
// the rule's range.
func runRange(prog *cpu.Program, rule *Rule, state cpu.Registers, limit int) (out exit, err error) {
	machine := cpu.NewCpu(len(state))
	err = machine.Load(prog)
	if err != nil {
		return
	}

	copy(machine.Register, state)
	machine.Ip = rule.Start

	for machine.Ip >= rule.Start && machine.Ip < rule.End {
		if machine.Ticks >= limit {
			err = ErrTickLimit
			return
		}
		err = machine.Tick()
		if err != nil {
			return
		}
	}

	out = exit{Ip: machine.Ip, Register: machine.Register}
	return
}

// Verify checks that the rule's fast path leaves prog's range with the
// same instruction pointer and register bank as the original code, from
// each of the given states.
//
// A limit of zero uses VERIFY_TICKS.
func Verify(prog *cpu.Program, rule Rule, states []cpu.Registers, limit int) (err error) {
	if limit <= 0 {
		limit = VERIFY_TICKS
	}

	optimized, err := Apply(prog, rule)
	if err != nil {
		return
	}

	for _, state := range states {
		var want, got exit
		want, err = runRange(prog, &rule, state, limit)
		if err != nil {
			return
		}
		got, err = runRange(optimized, &rule, state, limit)
		if err != nil {
			return
		}

		diff := cmp.Diff(want, got)
		if diff != "" {
			return &ErrNotEquivalent{Rule: rule.Name, State: state.String(), Diff: diff}
		}
	}

	return
}
