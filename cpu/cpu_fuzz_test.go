package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func FuzzExecute(f *testing.F) {
	for op := range opSpecs {
		f.Add(MakeInstr(Op(op), 1, 2, 3), uint16(0x1234))
	}
	f.Add(uint16(0xFFFF), uint16(0x0000))
	f.Add(uint16(0x0000), uint16(0xFFFF))

	f.Fuzz(func(t *testing.T, instr uint16, value uint16) {
		assert := assert.New(t)

		mem := NewMemory()
		mem.WriteWord(0x0000, instr)
		mem.WriteWord(0x0002, value)

		cpu := NewCpu(mem)
		cpu.Register[1] = value
		cpu.Register[2] = value

		// Any instruction stream either executes or halts; it never
		// takes the machine down.
		for range 8 {
			if cpu.Halted {
				break
			}
			cpu.Step()
		}

		assert.GreaterOrEqual(cpu.Instructions, 1)
	})
}
