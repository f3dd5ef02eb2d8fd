package cpu

import (
	"fmt"
)

func disasmImm(spec *OpSpec, imm4 uint16) int {
	if spec.Signed {
		return int(int16(SignExtend4(imm4)))
	}
	return int(imm4)
}

// Disassemble renders the instruction at pc in listing form: address,
// raw word, mnemonic, operands. It returns the text and the encoded
// size in bytes, so callers can walk a region instruction by
// instruction.
func Disassemble(mem *Memory, pc uint16) (text string, size int) {
	instr := mem.ReadWord(pc)
	op := GetOpcode(instr)
	rd := GetRd(instr)
	rs := GetRs(instr)
	rt := GetRt(instr)

	spec := op.Spec()
	if spec == nil {
		return fmt.Sprintf("0x%04x: %04x  DW 0x%04x", pc, instr, instr), 2
	}

	name := spec.Name
	var operands string

	switch spec.Form {
	case FORM_NONE:
		// NOP with distinct registers disassembles as the MOV alias.
		if op == OP_NOP && rd != rs {
			name = "MOV"
			operands = fmt.Sprintf("R%d, R%d", rd, rs)
		}
	case FORM_REG:
		operands = fmt.Sprintf("R%d", rd)
	case FORM_REG_SRC:
		operands = fmt.Sprintf("R%d", rs)
	case FORM_REG_REG:
		operands = fmt.Sprintf("R%d, R%d", rd, rs)
	case FORM_REG_REG_REG:
		operands = fmt.Sprintf("R%d, R%d, R%d", rd, rs, rt)
	case FORM_REG_REG_IMM:
		operands = fmt.Sprintf("R%d, R%d, %d", rd, rs, disasmImm(spec, GetImm4(instr)))
	case FORM_REG_IMM7:
		operands = fmt.Sprintf("R%d, %d", rd, int16(SignExtend7(GetImm7(instr))))
	case FORM_REG_IND:
		operands = fmt.Sprintf("R%d, [R%d]", rd, rs)
	case FORM_IND_REG:
		operands = fmt.Sprintf("[R%d], R%d", rd, rs)
	case FORM_REG_ADDR:
		operands = fmt.Sprintf("R%d, 0x%04x", rd, mem.ReadWord(pc+2))
	case FORM_SRC_ADDR:
		operands = fmt.Sprintf("R%d, 0x%04x", rs, mem.ReadWord(pc+2))
	case FORM_ADDR:
		operands = fmt.Sprintf("0x%04x", mem.ReadWord(pc+2))
	case FORM_CMP_REG:
		operands = fmt.Sprintf("R%d, R%d", rs, rt)
	case FORM_CMP_IMM:
		operands = fmt.Sprintf("R%d, %d", rs, disasmImm(spec, GetImm4(instr)))
	}

	text = fmt.Sprintf("0x%04x: %04x  %v", pc, instr, name)
	if operands != "" {
		text += " " + operands
	}

	return text, spec.Size()
}
