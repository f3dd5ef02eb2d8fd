package io

import (
	"fmt"
	"io"
	"os"
)

// Console is the output device behind the console port. Every byte
// sent to it is written through to the output stream unchanged.
type Console struct {
	Output io.Writer // Defaults to os.Stdout when nil.
}

var _ Device = (*Console)(nil)

func (con *Console) Name() string { return "console" }

func (con *Console) Reset() {}

// Send writes one byte to the output stream.
func (con *Console) Send(value byte) error {
	out := con.Output
	if out == nil {
		out = os.Stdout
	}

	if _, err := out.Write([]byte{value}); err != nil {
		return fmt.Errorf("%w: %w", ErrConsoleWrite, err)
	}

	return nil
}
