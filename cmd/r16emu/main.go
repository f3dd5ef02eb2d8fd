package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/retroenv/retrogolib/buildinfo"

	"github.com/ezrec/risc16/emulator"
)

var (
	version = "0.1.0"
	commit  = ""
	date    = ""
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %v [options] <binary>\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Executes binary machine code\n")
	flag.PrintDefaults()
}

func main() {
	var debug bool
	var memdump bool
	var verbose bool
	var show_version bool

	flag.BoolVar(&debug, "d", false, "Enable debug mode (show instruction execution)")
	flag.BoolVar(&debug, "debug", false, "Enable debug mode (show instruction execution)")
	flag.BoolVar(&memdump, "m", false, "Dump memory after execution")
	flag.BoolVar(&memdump, "memdump", false, "Dump memory after execution")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.BoolVar(&show_version, "version", false, "Show version and exit")
	flag.Usage = usage

	flag.Parse()

	if show_version {
		fmt.Printf("r16emu version: %v\n", buildinfo.Version(version, commit, date))
		return
	}

	if flag.NArg() != 1 {
		usage()
		os.Exit(1)
	}

	input := flag.Arg(0)

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	emu.Debug = debug

	err := emu.LoadFile(input, 0)
	if err != nil {
		log.Fatalf("%v: %v", input, err)
	}

	if debug {
		fmt.Println("\n=== Debug Mode Enabled ===")
	}

	fmt.Println("\n=== Starting Execution ===")

	err = emu.Run()
	if err != nil {
		log.Printf("r16emu: %v", err)
	}

	fmt.Println("\n=== Execution Complete ===")
	fmt.Print(emu.Statistics())

	if memdump {
		fmt.Println("\n=== Memory Dump ===")
		fmt.Print(emu.MemDump())
	}
}
