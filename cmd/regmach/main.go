// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ezrec/regmach/config"
	"github.com/ezrec/regmach/cpu"
	"github.com/ezrec/regmach/emulator"
	"github.com/ezrec/regmach/infer"
	"github.com/ezrec/regmach/optimize"
)

func openFile(filename string) *os.File {
	inf, err := os.Open(filename)
	if err != nil {
		log.Fatalf("%v: %v", filename, err)
	}
	return inf
}

// loadProgram assembles the program, and binds numeric opcodes from the
// samples, if any.
func loadProgram(cfg *config.Config) (prog *cpu.Program) {
	prog = &cpu.Program{}

	if len(cfg.Program) != 0 {
		inf := openFile(cfg.Program)
		defer inf.Close()

		asm := &cpu.Assembler{Verbose: cfg.Verbose, Registers: cpu.REGISTERS_PROGRAM}
		var err error
		prog, err = asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", cfg.Program, err)
		}
	}

	if len(cfg.Samples) == 0 {
		return
	}

	inf := openFile(cfg.Samples)
	defer inf.Close()

	ps := &infer.Parser{Verbose: cfg.Verbose, Registers: cpu.REGISTERS_SAMPLE}
	samples, sample_prog, err := ps.Parse(inf)
	if err != nil {
		log.Fatalf("%v: %v", cfg.Samples, err)
	}
	if prog.Len() == 0 {
		prog = sample_prog
	}

	eng := infer.NewEngine()
	eng.Verbose = cfg.Verbose
	for _, sample := range samples {
		eng.Add(sample)
	}
	fmt.Printf("%d of %d samples match %d or more instructions\n",
		eng.Ambiguous, eng.Samples, infer.AMBIGUOUS_CANDIDATES)

	mapping, err := eng.Resolve()
	if err != nil {
		log.Fatalf("%v: %v", cfg.Samples, err)
	}
	for _, number := range eng.Opcodes() {
		fmt.Printf("%3d: %v\n", number, mapping[number])
	}

	prog, err = mapping.Bind(prog)
	if err != nil {
		log.Fatalf("%v: %v", cfg.Samples, err)
	}

	return
}

func main() {
	var config_file string
	var program string
	var samples string
	var rules string
	var registers string
	var checkpoint int
	var register int
	var mode string
	var ticks int
	var list bool
	var verbose bool

	flag.StringVar(&config_file, "f", "", ".toml run configuration")
	flag.StringVar(&program, "c", "", "Program file to run")
	flag.StringVar(&samples, "s", "", "Sample file to infer opcodes from")
	flag.StringVar(&rules, "r", "", "Comma separated .star rule scripts")
	flag.StringVar(&registers, "R", "", "Initial registers, as r0=1,r3=5")
	flag.IntVar(&checkpoint, "checkpoint", 0, "Checkpoint instruction pointer")
	flag.IntVar(&register, "reg", 0, "Checkpoint register")
	flag.StringVar(&mode, "mode", "first", "Checkpoint value: first or last")
	flag.IntVar(&ticks, "t", 0, "Maximum ticks, 0 for unlimited")
	flag.BoolVar(&list, "l", false, "List the program, do not execute")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	cfg := &config.Config{}
	if len(config_file) != 0 {
		var err error
		cfg, err = config.Load(config_file)
		if err != nil {
			log.Fatal(err)
		}
	}

	// Flags override the configuration file.
	flag.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "c":
			cfg.Program = program
		case "s":
			cfg.Samples = samples
		case "r":
			cfg.Rules = strings.Split(rules, ",")
		case "R":
			reg, err := config.ParseRegisters(registers)
			if err != nil {
				log.Fatalf("-R: %v", err)
			}
			cfg.Registers = reg
		case "checkpoint", "reg", "mode":
			if cfg.Checkpoint == nil {
				cfg.Checkpoint = &config.Checkpoint{Ip: checkpoint, Register: register, Mode: mode}
			}
			switch fl.Name {
			case "checkpoint":
				cfg.Checkpoint.Ip = checkpoint
			case "reg":
				cfg.Checkpoint.Register = register
			case "mode":
				cfg.Checkpoint.Mode = mode
			}
		case "t":
			cfg.MaxTicks = ticks
		case "v":
			cfg.Verbose = verbose
		}
	})

	err := cfg.Validate()
	if err != nil {
		log.Fatal(err)
	}

	prog := loadProgram(cfg)
	if prog.Len() == 0 {
		return
	}

	if len(cfg.Rules) != 0 {
		ld := &optimize.ScriptLoader{Verbose: cfg.Verbose}
		rule_list, err := ld.LoadFiles(cfg.Rules...)
		if err != nil {
			log.Fatal(err)
		}
		prog, err = optimize.Apply(prog, rule_list...)
		if err != nil {
			log.Fatal(err)
		}
	}

	if list {
		fmt.Print(prog.String())
		return
	}

	emu := emulator.NewEmulator(cpu.REGISTERS_PROGRAM)
	emu.Program = prog
	emu.Verbose = cfg.Verbose
	emu.MaxTicks = cfg.MaxTicks

	initial := cpu.Registers(cfg.Registers)

	if cfg.Checkpoint != nil {
		cp, err := cfg.Checkpoint.Emulator()
		if err != nil {
			log.Fatal(err)
		}
		value, err := emu.FindCheckpoint(initial, cp)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(value)
		return
	}

	final, err := emu.Run(initial)
	if err != nil {
		log.Fatal(err)
	}
	if cfg.Verbose {
		log.Printf("registers: %v after %d ticks", final, emu.Ticks())
	}
	fmt.Println(final[0])
}
