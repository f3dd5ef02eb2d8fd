package io

import (
	"errors"

	"github.com/ezrec/risc16/translate"
)

var f = translate.From

var (
	// ErrConsoleWrite indicates the console output stream rejected a byte.
	ErrConsoleWrite = errors.New(f("console write failed"))
)
