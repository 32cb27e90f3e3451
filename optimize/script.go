package optimize

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"slices"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/regmach/cpu"
	"github.com/ezrec/regmach/internal"
)

// Registers are predeclared by letter in rule scripts.
var scriptRegisters = starlark.StringDict{
	"A": starlark.MakeInt(0),
	"B": starlark.MakeInt(1),
	"C": starlark.MakeInt(2),
	"D": starlark.MakeInt(3),
	"E": starlark.MakeInt(4),
	"F": starlark.MakeInt(5),
}

// scriptFast wraps a Starlark callable as a fast path.
//
// The callable receives the register bank as a list, and returns the new
// bank as a list of the same length.
func scriptFast(name string, fn starlark.Callable) cpu.FastFunc {
	thread := &starlark.Thread{Name: name}

	return func(reg cpu.Registers) (err error) {
		in := make([]starlark.Value, len(reg))
		for n, val := range reg {
			in[n] = starlark.MakeInt(val)
		}

		rc, err := starlark.Call(thread, fn, starlark.Tuple{starlark.NewList(in)}, nil)
		if err != nil {
			return errors.Join(ErrRuleScript, err)
		}

		seq, ok := rc.(starlark.Indexable)
		if !ok || seq.Len() != len(reg) {
			return fmt.Errorf("%w: %v returned %v, expected %d registers", ErrRuleScript, name, rc, len(reg))
		}

		out := make(cpu.Registers, len(reg))
		for n := range out {
			st_int, ok := seq.Index(n).(starlark.Int)
			if !ok {
				return fmt.Errorf("%w: %v register %d is %v", ErrRuleScript, name, n, seq.Index(n).Type())
			}
			st_int64, ok := st_int.Int64()
			if !ok {
				return fmt.Errorf("%w: %v register %d overflows", ErrRuleScript, name, n)
			}
			out[n] = int(st_int64)
		}
		copy(reg, out)

		return
	}
}

// ScriptLoader loads rules from Starlark scripts.
//
// A script declares rules with the builtin
//
//	rule(name, start, end, fast, shape=[])
//
// where fast is a function from the register list to the new register
// list. The registers are predeclared as A through F.
type ScriptLoader struct {
	Verbose bool // If set, logs each rule declared.
}

// Load executes a rule script. src is as for starlark.ExecFileOptions: nil
// to read filename, or the script text.
func (ld *ScriptLoader) Load(filename string, src any) (rules []Rule, err error) {
	builtin := func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var name string
		var start, end int
		var fast starlark.Callable
		var shape *starlark.List
		err := starlark.UnpackArgs(b.Name(), args, kwargs,
			"name", &name, "start", &start, "end", &end, "fast", &fast, "shape?", &shape)
		if err != nil {
			return nil, err
		}

		rule := Rule{Name: name, Start: start, End: end, Fast: scriptFast(name, fast)}
		if shape != nil {
			for n := range shape.Len() {
				word, ok := starlark.AsString(shape.Index(n))
				if !ok {
					return nil, fmt.Errorf("%v: shape[%d] is not a string", name, n)
				}
				rule.Shape = append(rule.Shape, word)
			}
		}

		if ld.Verbose {
			log.Printf("rule %v: [%d, %d) via %v", name, start, end, fast.Name())
		}

		rules = append(rules, rule)
		return starlark.None, nil
	}

	predeclared := starlark.StringDict{
		"rule": starlark.NewBuiltin("rule", builtin),
	}
	for key, val := range scriptRegisters {
		predeclared[key] = val
	}

	thread := &starlark.Thread{Name: filename}
	opts := syntax.FileOptions{While: true}
	_, err = starlark.ExecFileOptions(&opts, thread, filename, src, predeclared)
	if err != nil {
		return nil, errors.Join(ErrRuleScript, err)
	}

	return
}

// LoadFiles loads the rules of each script file, in order.
func (ld *ScriptLoader) LoadFiles(filenames ...string) (rules []Rule, err error) {
	sets := make([]iter.Seq[Rule], len(filenames))
	for n, filename := range filenames {
		var loaded []Rule
		loaded, err = ld.Load(filename, nil)
		if err != nil {
			return nil, fmt.Errorf("%v: %w", filename, err)
		}
		sets[n] = slices.Values(loaded)
	}

	rules = slices.Collect(internal.Concat(sets...))

	return
}

// LoadRules loads the rules of script files.
func LoadRules(filenames ...string) (rules []Rule, err error) {
	ld := &ScriptLoader{}
	return ld.LoadFiles(filenames...)
}
