package main

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootCmd_RejectsArguments(t *testing.T) {
	code := 0
	cmd := newRootCmd(&code)
	cmd.SetArgs([]string{"extra"})
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)

	err := cmd.Execute()
	assert.Error(t, err)
	assert.Equal(t, 0, code)
}

func TestExecute_ErrorsArePlainWhenNotStyled(t *testing.T) {
	var stderr bytes.Buffer

	code := execute([]string{"extra"}, &console{w: &stderr, plain: true})

	assert.Equal(t, 1, code)
	assert.True(t, strings.HasPrefix(stderr.String(), "Error: "), stderr.String())
	assert.NotContains(t, stderr.String(), "\x1b[")
}
