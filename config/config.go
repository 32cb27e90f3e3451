// Package config loads run configuration from TOML files.
//
// A configuration names the program (or sample) file to load, the rule
// scripts to apply, the initial registers, and optionally a checkpoint:
//
//	program = "divisors.txt"
//	rules = ["divisors.star"]
//	registers = [1]
//	max_ticks = 100000000
//
//	[checkpoint]
//	ip = 28
//	register = 3
//	mode = "last"
//
// Relative file names are resolved against the directory of the
// configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/ezrec/regmach/cpu"
	"github.com/ezrec/regmach/emulator"
	"github.com/ezrec/regmach/translate"
)

var f = translate.From

var (
	ErrConfigKey      = errors.New(f("configuration key unknown"))
	ErrConfigInput    = errors.New(f("configuration needs a program or samples"))
	ErrConfigRegister = errors.New(f("register assignment invalid"))
)

// Checkpoint configures checkpoint sampling.
type Checkpoint struct {
	Ip       int    `toml:"ip"`
	Register int    `toml:"register"`
	Mode     string `toml:"mode"`
}

// Config is a run configuration.
type Config struct {
	Program    string      `toml:"program"`   // Program text file.
	Samples    string      `toml:"samples"`   // Sample file, with an optional numeric program.
	Rules      []string    `toml:"rules"`     // Rule scripts.
	Registers  []int       `toml:"registers"` // Initial registers, from register 0.
	Checkpoint *Checkpoint `toml:"checkpoint"`
	MaxTicks   int         `toml:"max_ticks"`
	Verbose    bool        `toml:"verbose"`

	Dir string `toml:"-"` // Directory of the configuration file.
}

// Decode parses configuration text. Relative paths are resolved
// against dir.
func Decode(text string, dir string) (cfg *Config, err error) {
	cfg = &Config{}

	md, err := toml.Decode(text, cfg)
	if err != nil {
		return nil, err
	}

	if undecoded := md.Undecoded(); len(undecoded) != 0 {
		keys := make([]string, len(undecoded))
		for n, key := range undecoded {
			keys[n] = key.String()
		}
		return nil, fmt.Errorf("%w: %v", ErrConfigKey, strings.Join(keys, ", "))
	}

	cfg.Dir = dir
	cfg.Program = cfg.path(cfg.Program)
	cfg.Samples = cfg.path(cfg.Samples)
	for n, rule := range cfg.Rules {
		cfg.Rules[n] = cfg.path(rule)
	}

	err = cfg.Validate()
	if err != nil {
		return nil, err
	}

	return
}

// Load reads a configuration file.
func Load(filename string) (cfg *Config, err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("%v: %w", filename, err)
		}
	}()

	data, err := os.ReadFile(filename)
	if err != nil {
		return
	}

	return Decode(string(data), filepath.Dir(filename))
}

func (cfg *Config) path(name string) string {
	if name == "" || filepath.IsAbs(name) || cfg.Dir == "" {
		return name
	}
	return filepath.Join(cfg.Dir, name)
}

// Validate checks the configuration.
func (cfg *Config) Validate() (err error) {
	if cfg.Program == "" && cfg.Samples == "" {
		return ErrConfigInput
	}

	if len(cfg.Registers) > cpu.REGISTERS_PROGRAM {
		return fmt.Errorf("%w: %d registers", ErrConfigRegister, len(cfg.Registers))
	}

	if cfg.MaxTicks < 0 {
		return fmt.Errorf("%w: max_ticks %d", emulator.ErrTickLimit, cfg.MaxTicks)
	}

	if cfg.Checkpoint != nil {
		_, err = cfg.Checkpoint.Emulator()
		if err != nil {
			return
		}
	}

	return
}

// Emulator returns the checkpoint for the emulator.
func (cp *Checkpoint) Emulator() (checkpoint emulator.Checkpoint, err error) {
	mode := emulator.DETECT_FIRST
	if cp.Mode != "" {
		mode, err = emulator.ParseDetectMode(cp.Mode)
		if err != nil {
			err = fmt.Errorf("%w: '%v'", err, cp.Mode)
			return
		}
	}

	if cp.Register < 0 || cp.Register >= cpu.REGISTERS_PROGRAM {
		err = &cpu.ErrRegister{Register: cp.Register, Size: cpu.REGISTERS_PROGRAM}
		return
	}

	checkpoint = emulator.Checkpoint{Ip: cp.Ip, Register: cp.Register, Mode: mode}

	return
}

// ParseRegisters parses register assignments, as "r0=1,r3=5".
// Registers not assigned are zero.
func ParseRegisters(text string) (reg cpu.Registers, err error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	for _, item := range strings.Split(text, ",") {
		name, value, ok := strings.Cut(strings.TrimSpace(item), "=")
		index, ok_name := strings.CutPrefix(strings.ToLower(name), "r")
		if !ok || !ok_name {
			return nil, fmt.Errorf("%w: '%v'", ErrConfigRegister, item)
		}

		var n, v int
		n, err = strconv.Atoi(index)
		if err != nil || n < 0 || n >= cpu.REGISTERS_PROGRAM {
			return nil, fmt.Errorf("%w: '%v'", ErrConfigRegister, item)
		}
		v, err = strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConfigRegister, cpu.ErrParseNumber(value))
		}

		if n >= len(reg) {
			reg = append(reg, make(cpu.Registers, n+1-len(reg))...)
		}
		reg[n] = v
	}

	return
}
