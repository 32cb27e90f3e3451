package optimize

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ezrec/regmach/cpu"
)

// Rule replaces the hot loop [Start, End) of a program with Fast.
type Rule struct {
	Name  string       // Name, for listings and errors.
	Start int          // First instruction of the loop.
	End   int          // Instruction after the loop.
	Fast  cpu.FastFunc // Computes the loop's effect.

	// Shape, if set, lists the expected instructions of the range, either
	// as a name ("mulr") or in full ("mulr 5 2 1").
	Shape []string
}

// Check that the rule fits the program.
func (rule *Rule) Check(prog *cpu.Program) (err error) {
	if rule.Fast == nil {
		return fmt.Errorf("%w: %v", cpu.ErrFastMissing, rule.Name)
	}
	if rule.Start < 0 || rule.End <= rule.Start || rule.End > prog.Len() {
		return fmt.Errorf("%w: %v [%d, %d) of %d", ErrRuleRange, rule.Name, rule.Start, rule.End, prog.Len())
	}
	if len(rule.Shape) == 0 {
		return
	}
	if len(rule.Shape) != rule.End-rule.Start {
		return fmt.Errorf("%w: %v has %d shape entries for %d instructions",
			ErrRuleRange, rule.Name, len(rule.Shape), rule.End-rule.Start)
	}

	for n, want := range rule.Shape {
		ip := rule.Start + n
		code, _ := prog.Code(ip)
		got := code.String()
		want = strings.ToLower(strings.Join(strings.Fields(want), " "))
		if strings.Contains(want, " ") {
			if got != want {
				return &ErrShape{Rule: rule.Name, Ip: ip, Want: want, Got: got}
			}
		} else if code.Unbound || code.Insn.String() != want {
			return &ErrShape{Rule: rule.Name, Ip: ip, Want: want, Got: got}
		}
	}

	return
}

// Apply returns a copy of prog with each rule's range rewritten.
// The original program is not modified.
func Apply(prog *cpu.Program, rules ...Rule) (optimized *cpu.Program, err error) {
	for n := range rules {
		err = rules[n].Check(prog)
		if err != nil {
			return
		}
	}

	ordered := slices.Clone(rules)
	slices.SortFunc(ordered, func(a, b Rule) int { return a.Start - b.Start })
	for n := 1; n < len(ordered); n++ {
		if ordered[n].Start < ordered[n-1].End {
			return nil, fmt.Errorf("%w: %v and %v", ErrRuleOverlap, ordered[n-1].Name, ordered[n].Name)
		}
	}

	optimized = prog.Clone()
	for _, rule := range ordered {
		for ip := rule.Start; ip < rule.End; ip++ {
			op := &optimized.Opcodes[ip]
			if ip == rule.Start {
				*op = cpu.Opcode{LineNo: op.LineNo, Words: []string{"fast", rule.Name}, Code: cpu.MakeCodeFast(rule.Fast)}
			} else {
				*op = cpu.Opcode{LineNo: op.LineNo, Words: []string{"noop"}, Code: cpu.MakeCodeNoop()}
			}
		}
	}

	return
}
