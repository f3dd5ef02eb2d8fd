// Package emulator wires memory, CPU, and devices into a runnable
// machine session.
package emulator

import (
	"fmt"
	"io"
	"iter"
	"maps"
	"os"

	"github.com/ezrec/risc16/cpu"
	"github.com/ezrec/risc16/internal"
	riscio "github.com/ezrec/risc16/io"
)

var _emulator_defines = map[string]string{
	"CONSOLE": fmt.Sprintf("0x%04x", cpu.IO_CONSOLE_OUT),
}

// Emulator state. Memory + CPU + console device.
type Emulator struct {
	Verbose bool // If set, enables verbose logging.
	Debug   bool // If set, traces each instruction to Trace.

	*cpu.Cpu
	Mem     *cpu.Memory
	Program *cpu.Program // Listing of the running program, when known.

	Console riscio.Console

	Trace io.Writer // Debug trace destination.
}

// NewEmulator creates a new emulator with the console attached.
func NewEmulator() (emu *Emulator) {
	mem := cpu.NewMemory()

	emu = &Emulator{
		Mem:     mem,
		Cpu:     cpu.NewCpu(mem),
		Program: &cpu.Program{},
		Trace:   os.Stdout,
	}

	emu.Console.Output = os.Stdout
	mem.Attach(cpu.IO_CONSOLE_OUT, &emu.Console)

	return
}

// Defines returns an iterator over all of the defines
func Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		cpu.Defines(),
	)
}

// Load copies a flat binary into memory at start and resets the CPU
// to begin execution there.
func (emu *Emulator) Load(binary []byte, start uint16) (err error) {
	err = emu.Mem.LoadProgram(binary, start)
	if err != nil {
		return err
	}

	emu.Cpu.Reset()
	emu.Cpu.Pc = start

	return nil
}

// LoadFile loads a flat binary image file at start.
func (emu *Emulator) LoadFile(path string, start uint16) (err error) {
	binary, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	return emu.Load(binary, start)
}

// Assemble runs assembly source through the assembler with the
// emulator's defines predefined, loads the result at address zero,
// and keeps the listing for the debug trace.
func (emu *Emulator) Assemble(input io.Reader) (err error) {
	asm := cpu.Assembler{Verbose: emu.Verbose}
	for name, value := range Defines() {
		asm.Predefine(name, value)
	}

	prog, err := asm.Parse(input)
	if err != nil {
		return err
	}

	emu.Program = prog

	return emu.Load(prog.Binary(), 0)
}

// LineNo returns the source line of the instruction at PC, when the
// program listing is known.
func (emu *Emulator) LineNo() int {
	stmt := emu.Program.Debug(emu.Cpu.Pc)
	if stmt == nil {
		return 0
	}

	return stmt.LineNo
}

// Step executes one instruction, tracing it when Debug is set. An
// unknown opcode halts the CPU and is reported as a runtime error.
func (emu *Emulator) Step() (err error) {
	if emu.Cpu.Halted {
		return nil
	}

	emu.Cpu.Verbose = emu.Verbose

	instr := emu.Mem.ReadWord(emu.Cpu.Pc)
	if !cpu.GetOpcode(instr).Valid() {
		err = &ErrRuntime{LineNo: emu.LineNo(), Err: cpu.ErrOpcode(instr)}
	}

	if emu.Debug {
		text, _ := cpu.Disassemble(emu.Mem, emu.Cpu.Pc)
		fmt.Fprintf(emu.Trace, "\n[%v] %v\n", emu.Cpu.Instructions, text)
	}

	emu.Cpu.Step()

	if emu.Debug {
		fmt.Fprintf(emu.Trace, "%v\n", emu.Cpu)
		if emu.Cpu.Halted {
			fmt.Fprintf(emu.Trace, "CPU HALTED\n")
		}
	}

	return err
}

// Run executes until the CPU halts. The last runtime trap, if any, is
// returned after the halt.
func (emu *Emulator) Run() (err error) {
	for !emu.Cpu.Halted {
		if step_err := emu.Step(); step_err != nil {
			err = step_err
		}
	}

	return err
}

// Statistics renders the post-run execution summary.
func (emu *Emulator) Statistics() string {
	return fmt.Sprintf("Instructions executed: %v\n%v\n", emu.Cpu.Instructions, emu.Cpu)
}

// MemDump renders the first 256 bytes of memory.
func (emu *Emulator) MemDump() string {
	return emu.Mem.Dump(0x0000, 0x00FF)
}
