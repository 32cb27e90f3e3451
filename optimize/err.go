package optimize

import (
	"errors"

	"github.com/ezrec/regmach/translate"
)

var f = translate.From

var (
	ErrRuleRange   = errors.New(f("rule range invalid"))
	ErrRuleOverlap = errors.New(f("rules overlap"))
	ErrRuleShape   = errors.New(f("rule shape mismatch"))
	ErrRuleScript  = errors.New(f("rule script"))
	ErrEquivalence = errors.New(f("fast path not equivalent"))
	ErrTickLimit   = errors.New(f("tick limit reached"))
)

// ErrShape is a program instruction that differs from the rule's shape.
type ErrShape struct {
	Rule string
	Ip   int
	Want string
	Got  string
}

func (err *ErrShape) Error() string {
	return f("rule %v: ip %d is %v, expected %v", err.Rule, err.Ip, err.Got, err.Want)
}

func (err *ErrShape) Is(target error) bool {
	return target == ErrRuleShape
}

// ErrNotEquivalent is a register bank where the fast path and the
// original range disagree.
type ErrNotEquivalent struct {
	Rule  string
	State string
	Diff  string
}

func (err *ErrNotEquivalent) Error() string {
	return f("rule %v: from %v (-original +fast):\n%v", err.Rule, err.State, err.Diff)
}

func (err *ErrNotEquivalent) Is(target error) bool {
	return target == ErrEquivalence
}
