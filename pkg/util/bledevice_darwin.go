//go:build darwin
// +build darwin

package util

import (
	"github.com/go-ble/ble"
	"github.com/go-ble/ble/darwin"
)

// NewDevice will return ble.Device for correct OS
func NewDevice() (ble.Device, error) {
	return darwin.NewDevice()
}
