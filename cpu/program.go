package cpu

import (
	"fmt"
	"iter"
	"strings"
)

// Link is an unresolved label reference inside a statement's emitted
// bytes. Offset locates the 16-bit little-endian slot to patch.
type Link struct {
	Offset int
	Label  string
}

// Statement is one assembled source statement: the bytes it emits and
// where they land.
type Statement struct {
	LineNo int      // Source line the statement came from.
	Addr   uint16   // Load address of the first emitted byte.
	Words  []string // Parsed source words, for listings.
	Bytes  []byte   // Emitted bytes.
	Links  []Link   // Label references resolved during linking.
}

// Program is the output of the assembler.
type Program struct {
	Statements []Statement
	Label      map[string]uint16 // Symbol table, label to address.
}

// Size returns one past the highest emitted address, which is also the
// length of the flat binary image.
func (prog *Program) Size() int {
	size := 0
	for _, stmt := range prog.Statements {
		if end := int(stmt.Addr) + len(stmt.Bytes); end > size {
			size = end
		}
	}

	return size
}

// Binary renders the program as a flat image based at address zero.
// Gaps between statements are zero filled.
func (prog *Program) Binary() (bins []byte) {
	bins = make([]byte, prog.Size())
	for addr, data := range prog.Emitted() {
		bins[addr] = data
	}

	return bins
}

// Emitted yields every emitted byte with its load address, in
// statement order.
func (prog *Program) Emitted() iter.Seq2[uint16, byte] {
	return func(yield func(addr uint16, data byte) bool) {
		for _, stmt := range prog.Statements {
			for n, data := range stmt.Bytes {
				if !yield(stmt.Addr+uint16(n), data) {
					return
				}
			}
		}
	}
}

// Debug returns the statement whose bytes cover addr, or nil.
func (prog *Program) Debug(addr uint16) *Statement {
	for n, stmt := range prog.Statements {
		if addr >= stmt.Addr && int(addr) < int(stmt.Addr)+len(stmt.Bytes) {
			return &prog.Statements[n]
		}
	}

	return nil
}

// Listing renders the program one statement per line: address, bytes,
// and source words.
func (prog *Program) Listing() string {
	var sb strings.Builder

	for _, stmt := range prog.Statements {
		fmt.Fprintf(&sb, "0x%04x:", stmt.Addr)
		for _, data := range stmt.Bytes {
			fmt.Fprintf(&sb, " %02x", data)
		}
		fmt.Fprintf(&sb, "\t%v\n", strings.Join(stmt.Words, " "))
	}

	return sb.String()
}
