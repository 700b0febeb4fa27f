package util

import (
	"strings"

	"github.com/go-ble/ble"
)

// UuidEqualStr compares a parsed ble UUID against its textual form
func UuidEqualStr(u ble.UUID, s string) bool {
	compare := strings.ReplaceAll(s, "-", "")
	return strings.EqualFold(compare, u.String())
}
