package util

import "github.com/pkg/errors"

// CatchErrs runs fn and converts panics from the ble stack into returned errors
func CatchErrs(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			err = errors.Errorf("panic: %v", r)
		}
	}()
	return fn()
}
