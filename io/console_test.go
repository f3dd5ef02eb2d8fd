package io

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errWrite = errors.New("write failed")

type failWriter struct{}

func (failWriter) Write(data []byte) (int, error) {
	return 0, errWrite
}

func TestConsole(t *testing.T) {
	assert := assert.New(t)

	output := &bytes.Buffer{}
	con := &Console{Output: output}

	assert.Equal("console", con.Name())

	for _, ch := range []byte("Hi\n") {
		assert.NoError(con.Send(ch))
	}
	assert.Equal("Hi\n", output.String())

	con.Reset()
	assert.NoError(con.Send('!'))
	assert.Equal("Hi\n!", output.String())
}

func TestConsoleWriteError(t *testing.T) {
	assert := assert.New(t)

	con := &Console{Output: failWriter{}}

	err := con.Send('x')
	assert.ErrorIs(err, ErrConsoleWrite)
	assert.ErrorIs(err, errWrite)
}
