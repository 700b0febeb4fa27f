package util

import (
	"testing"

	"github.com/pkg/errors"
	"gotest.tools/assert"
)

func TestCatchErrsRecoversErrorPanic(t *testing.T) {
	err := CatchErrs(func() error {
		panic(errors.New("hci gone"))
	})
	assert.ErrorContains(t, err, "hci gone")
}

func TestCatchErrsRecoversValuePanic(t *testing.T) {
	err := CatchErrs(func() error {
		panic("boom")
	})
	assert.ErrorContains(t, err, "panic: boom")
}

func TestCatchErrsPassesThrough(t *testing.T) {
	assert.NilError(t, CatchErrs(func() error { return nil }))
	expected := errors.New("plain failure")
	assert.Equal(t, CatchErrs(func() error { return expected }), expected)
}
