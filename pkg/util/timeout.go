package util

import (
	"time"

	"github.com/pkg/errors"
)

// Timeout runs fn and gives up after the specified duration. The wrapped call
// keeps running in its goroutine; op names it in the returned error.
func Timeout(op string, fn func() error, duration time.Duration) error {
	ch := make(chan error, 1)
	go func() {
		ch <- fn()
	}()
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case err := <-ch:
		return err
	case <-timer.C:
		return errors.Errorf("Timeout waiting for %s", op)
	}
}
