package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun_TooManyArgs(t *testing.T) {
	var stderr bytes.Buffer
	code := run([]string{"a", "b"}, &stderr)
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr.String(), "usage: ted [file]")
}

func TestRun_RefusesNonTerminal(t *testing.T) {
	orig := isTerminal
	isTerminal = func(int) bool { return false }
	defer func() { isTerminal = orig }()

	var stderr bytes.Buffer
	code := run([]string{"x.txt"}, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "not a terminal")
}
