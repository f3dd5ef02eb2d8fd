package cpu

import (
	"fmt"
	"iter"
	"log"
	"maps"
	"slices"
	"strings"
)

// Cpu executes the fetch-decode-execute loop over a Memory.
type Cpu struct {
	Verbose bool // Log every instruction as it executes.

	Mem      *Memory
	Register [NUM_REGISTERS]uint16
	Pc       uint16
	Flags    uint16
	Stack    Stack

	Halted       bool
	Instructions int // Instructions retired since Reset.
}

func NewCpu(mem *Memory) (cpu *Cpu) {
	cpu = &Cpu{Mem: mem}
	cpu.Stack.Mem = mem
	cpu.Reset()

	return cpu
}

// Reset returns the CPU to its power-on state. Memory contents are
// left alone.
func (cpu *Cpu) Reset() {
	cpu.Register = [NUM_REGISTERS]uint16{}
	cpu.Pc = PROGRAM_START
	cpu.Flags = 0
	cpu.Stack.Reset()
	cpu.Halted = false
	cpu.Instructions = 0
}

// Halt stops execution. Only Reset can restart a halted CPU.
func (cpu *Cpu) Halt() {
	cpu.Halted = true
}

// Step fetches and executes a single instruction. A halted CPU does
// nothing.
func (cpu *Cpu) Step() {
	if cpu.Halted {
		return
	}

	if cpu.Verbose {
		text, _ := Disassemble(cpu.Mem, cpu.Pc)
		log.Printf("cpu: [%v] %v", cpu.Instructions, text)
	}

	instr := cpu.Mem.ReadWord(cpu.Pc)
	cpu.Pc += 2

	cpu.Execute(instr)
	cpu.Instructions++
}

// Run executes instructions until the CPU halts.
func (cpu *Cpu) Run() {
	for !cpu.Halted {
		cpu.Step()
	}
}

// fetchAddr consumes the trailing address word of the current
// instruction.
func (cpu *Cpu) fetchAddr() (addr uint16) {
	addr = cpu.Mem.ReadWord(cpu.Pc)
	cpu.Pc += 2

	return addr
}

// branch consumes the trailing address word and redirects Pc to it
// when taken.
func (cpu *Cpu) branch(taken bool) {
	addr := cpu.fetchAddr()
	if taken {
		cpu.Pc = addr
	}
}

// Execute runs one decoded instruction. Pc already points past the
// instruction word; forms with a trailing address consume it here.
func (cpu *Cpu) Execute(instr uint16) {
	op := GetOpcode(instr)
	rd := GetRd(instr)
	rs := GetRs(instr)
	rt := GetRt(instr)
	imm4 := GetImm4(instr)

	switch op {
	case OP_NOP:
		// MOV Rd, Rs shares the encoding; rd == rs is a true no-op.
		if rd != rs {
			cpu.Register[rd] = cpu.Register[rs]
		}
	case OP_MOVI:
		cpu.Register[rd] = SignExtend7(GetImm7(instr))
	case OP_LOAD_IND:
		cpu.Register[rd] = cpu.Mem.ReadWord(cpu.Register[rs])
	case OP_LOAD_DIR:
		cpu.Register[rd] = cpu.Mem.ReadWord(cpu.fetchAddr())
	case OP_STORE_IND:
		cpu.Mem.WriteWord(cpu.Register[rd], cpu.Register[rs])
	case OP_STORE_DIR:
		cpu.Mem.WriteWord(cpu.fetchAddr(), cpu.Register[rs])
	case OP_ADD:
		cpu.Register[rd], cpu.Flags = Add(cpu.Register[rs], cpu.Register[rt])
	case OP_ADDI:
		cpu.Register[rd], cpu.Flags = Add(cpu.Register[rs], SignExtend4(imm4))
	case OP_SUB:
		cpu.Register[rd], cpu.Flags = Sub(cpu.Register[rs], cpu.Register[rt])
	case OP_SUBI:
		cpu.Register[rd], cpu.Flags = Sub(cpu.Register[rs], SignExtend4(imm4))
	case OP_MUL:
		cpu.Register[rd], cpu.Flags = Mul(cpu.Register[rs], cpu.Register[rt])
	case OP_DIV:
		cpu.Register[rd], cpu.Flags = Div(cpu.Register[rs], cpu.Register[rt])
	case OP_INC:
		cpu.Register[rd], cpu.Flags = Add(cpu.Register[rd], 1)
	case OP_DEC:
		cpu.Register[rd], cpu.Flags = Sub(cpu.Register[rd], 1)
	case OP_AND:
		cpu.Register[rd], cpu.Flags = And(cpu.Register[rs], cpu.Register[rt])
	case OP_ANDI:
		cpu.Register[rd], cpu.Flags = And(cpu.Register[rs], imm4)
	case OP_OR:
		cpu.Register[rd], cpu.Flags = Or(cpu.Register[rs], cpu.Register[rt])
	case OP_ORI:
		cpu.Register[rd], cpu.Flags = Or(cpu.Register[rs], imm4)
	case OP_XOR:
		cpu.Register[rd], cpu.Flags = Xor(cpu.Register[rs], cpu.Register[rt])
	case OP_NOT:
		cpu.Register[rd], cpu.Flags = Not(cpu.Register[rs])
	case OP_SHL:
		cpu.Register[rd], cpu.Flags = Shl(cpu.Register[rs], cpu.Register[rt])
	case OP_SHLI:
		cpu.Register[rd], cpu.Flags = Shl(cpu.Register[rs], imm4)
	case OP_SHR:
		cpu.Register[rd], cpu.Flags = Shr(cpu.Register[rs], cpu.Register[rt])
	case OP_SHRI:
		cpu.Register[rd], cpu.Flags = Shr(cpu.Register[rs], imm4)
	case OP_CMP:
		cpu.Flags = Compare(cpu.Register[rs], cpu.Register[rt])
	case OP_CMPI:
		cpu.Flags = Compare(cpu.Register[rs], SignExtend4(imm4))
	case OP_JMP:
		cpu.branch(true)
	case OP_JZ:
		cpu.branch(cpu.Flags&FLAG_ZERO != 0)
	case OP_JNZ:
		cpu.branch(cpu.Flags&FLAG_ZERO == 0)
	case OP_JC:
		cpu.branch(cpu.Flags&FLAG_CARRY != 0)
	case OP_JNC:
		cpu.branch(cpu.Flags&FLAG_CARRY == 0)
	case OP_JN:
		cpu.branch(cpu.Flags&FLAG_NEGATIVE != 0)
	case OP_CALL:
		addr := cpu.fetchAddr()
		cpu.Stack.Push(cpu.Pc)
		cpu.Pc = addr
	case OP_RET:
		cpu.Pc = cpu.Stack.Pop()
	case OP_PUSH:
		cpu.Stack.Push(cpu.Register[rs])
	case OP_POP:
		cpu.Register[rd] = cpu.Stack.Pop()
	case OP_HALT:
		cpu.Halt()
	default:
		log.Printf("cpu: %v at 0x%04x", ErrOpcode(instr), cpu.Pc-2)
		cpu.Halt()
	}
}

func flagBit(flags, mask uint16) int {
	if flags&mask != 0 {
		return 1
	}
	return 0
}

// String renders the register file and flags, one line each.
func (cpu *Cpu) String() string {
	var sb strings.Builder

	sb.WriteString("Registers: ")
	for i, val := range cpu.Register {
		fmt.Fprintf(&sb, "R%d=0x%04x ", i, val)
	}
	fmt.Fprintf(&sb, "PC=0x%04x SP=0x%04x\n", cpu.Pc, cpu.Stack.Sp)

	fmt.Fprintf(&sb, "Flags: Z=%d C=%d N=%d V=%d",
		flagBit(cpu.Flags, FLAG_ZERO),
		flagBit(cpu.Flags, FLAG_CARRY),
		flagBit(cpu.Flags, FLAG_NEGATIVE),
		flagBit(cpu.Flags, FLAG_OVERFLOW))

	return sb.String()
}

// Defines returns the memory map symbols every assembly program can
// reference without declaring.
func Defines() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, name := range slices.Sorted(maps.Keys(_cpu_defines)) {
			if !yield(name, _cpu_defines[name]) {
				return
			}
		}
	}
}
