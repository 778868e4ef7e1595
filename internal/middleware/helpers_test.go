package middleware

import (
	"bytes"
	"io"

	"github.com/chybatronik/driftiAPI/internal/logging"
)

func newTestLogger(out io.Writer) *logging.Logger {
	if out == nil {
		out = io.Discard
	}
	return logging.New(logging.Options{Level: "debug", Format: "json", Service: "test", Output: out})
}

func bufferedLogger() (*logging.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return newTestLogger(&buf), &buf
}
