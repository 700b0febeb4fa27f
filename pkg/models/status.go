package models

// PeripheralStatus is an enum for all possible status conditions for the ble peripheral
type PeripheralStatus int

const (
	// Advertising indicates the peripheral is healthy and broadcasting
	Advertising PeripheralStatus = iota
	// Crashed indicates the peripheral is not advertising and has returned error in execution
	Crashed
)

func (s PeripheralStatus) String() string {
	if s == Advertising {
		return "Advertising"
	}
	return "Crashed"
}
