package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errDevice = errors.New("device failed")

// testDevice records every byte sent to it.
type testDevice struct {
	sent   []byte
	resets int
	err    error
}

func (dev *testDevice) Name() string { return "test" }

func (dev *testDevice) Reset() { dev.resets++ }

func (dev *testDevice) Send(value byte) error {
	if dev.err != nil {
		return dev.err
	}
	dev.sent = append(dev.sent, value)
	return nil
}

func TestMemoryWord(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory()

	mem.WriteWord(0x1000, 0x1234)
	assert.Equal(byte(0x34), mem.ReadByte(0x1000))
	assert.Equal(byte(0x12), mem.ReadByte(0x1001))
	assert.Equal(uint16(0x1234), mem.ReadWord(0x1000))

	mem.WriteByte(0x2000, 0xCD)
	mem.WriteByte(0x2001, 0xAB)
	assert.Equal(uint16(0xABCD), mem.ReadWord(0x2000))
}

func TestMemoryWordWrap(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory()

	mem.WriteWord(0xFFFF, 0x1234)
	assert.Equal(byte(0x34), mem.ReadByte(0xFFFF))
	assert.Equal(byte(0x12), mem.ReadByte(0x0000))
	assert.Equal(uint16(0x1234), mem.ReadWord(0xFFFF))
}

func TestMemoryDevice(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory()
	dev := &testDevice{}
	mem.Attach(IO_CONSOLE_OUT, dev)

	mem.WriteByte(IO_CONSOLE_OUT, 'A')
	assert.Equal([]byte{'A'}, dev.sent)

	// Device writes never reach the backing store.
	assert.Equal(byte(0), mem.ReadByte(IO_CONSOLE_OUT))

	// A word write sends only the port byte to the device.
	mem.WriteWord(IO_CONSOLE_OUT, 0x1242)
	assert.Equal([]byte{'A', 0x42}, dev.sent)
	assert.Equal(byte(0x12), mem.ReadByte(IO_CONSOLE_OUT+1))
}

func TestMemoryDeviceError(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory()
	dev := &testDevice{err: errDevice}
	mem.Attach(IO_CONSOLE_OUT, dev)

	// A failing device drops the byte; memory stays untouched.
	mem.WriteByte(IO_CONSOLE_OUT, 'A')
	assert.Empty(dev.sent)
	assert.Equal(byte(0), mem.ReadByte(IO_CONSOLE_OUT))
}

func TestMemoryReset(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory()
	dev := &testDevice{}
	mem.Attach(IO_CONSOLE_OUT, dev)

	mem.WriteWord(0x1000, 0x1234)
	mem.Reset()

	assert.Equal(uint16(0), mem.ReadWord(0x1000))
	assert.Equal(1, dev.resets)
}

func TestLoadProgram(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory()

	err := mem.LoadProgram([]byte{0x01, 0x02, 0x03}, 0x0100)
	assert.NoError(err)
	assert.Equal(byte(0x01), mem.ReadByte(0x0100))
	assert.Equal(byte(0x03), mem.ReadByte(0x0102))

	err = mem.LoadProgram(make([]byte, 0x20), 0xFFF0)
	assert.ErrorIs(err, ErrProgramTooLarge)

	// An image that ends exactly at the top of memory fits.
	err = mem.LoadProgram(make([]byte, 0x10), 0xFFF0)
	assert.NoError(err)
}

func TestMemoryDump(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory()
	mem.WriteByte(0x0000, 'H')
	mem.WriteByte(0x0001, 'i')

	dump := mem.Dump(0x0000, 0x000F)
	assert.Contains(dump, "Memory Dump [0x0000 - 0x000f]:")
	assert.Contains(dump, "0x0000: 48 69 00")
	assert.Contains(dump, "Hi..")
}
