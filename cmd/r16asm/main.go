package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/retroenv/retrogolib/buildinfo"

	"github.com/ezrec/risc16/cpu"
	"github.com/ezrec/risc16/emulator"
)

var (
	version = "0.1.0"
	commit  = ""
	date    = ""
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %v [options] <input.asm> <output.bin>\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Assembles assembly code into binary machine code\n")
	flag.PrintDefaults()
}

func main() {
	var verbose bool
	var listing bool
	var show_version bool

	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.BoolVar(&listing, "l", false, "Print the program listing")
	flag.BoolVar(&show_version, "version", false, "Show version and exit")
	flag.Usage = usage

	flag.Parse()

	if show_version {
		fmt.Printf("r16asm version: %v\n", buildinfo.Version(version, commit, date))
		return
	}

	if flag.NArg() != 2 {
		usage()
		os.Exit(1)
	}

	input := flag.Arg(0)
	output := flag.Arg(1)

	inf, err := os.Open(input)
	if err != nil {
		log.Fatalf("%v: %v", input, err)
	}
	defer inf.Close()

	asm := &cpu.Assembler{Verbose: verbose}
	for name, value := range emulator.Defines() {
		asm.Predefine(name, value)
	}

	prog, err := asm.Parse(inf)
	if err != nil {
		log.Fatalf("%v: %v", input, err)
	}

	if listing {
		fmt.Print(prog.Listing())
	}

	err = os.WriteFile(output, prog.Binary(), 0o644)
	if err != nil {
		log.Fatalf("%v: %v", output, err)
	}
}
