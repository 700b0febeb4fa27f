package config

import "time"

const (
	// ServiceUUID represents UUID for the ble service advertised by the device
	ServiceUUID = "12345678-1234-5678-1234-56789abcdef0"
	// DataCharUUID represents UUID for the ble characteristic which serves encoded sensor readings
	DataCharUUID = "87654321-4321-8765-4321-fedcba987654"
	// DeviceID is the stable identity string for the physical unit
	DeviceID = "EDGECHAIN_DEMO_001"
	// LocalName is the human readable name broadcast in ble advertisements
	LocalName = "EdgeChain-Demo"
	// ReadingInterval is the cadence of the periodic sensor sampling loop
	ReadingInterval = 5000 * time.Millisecond
	// BaudRate is the signaling rate of the serial transport in bits per second
	BaudRate = 115200
	// JSONBufferSize is the max size of bytes allowed for one encoded reading
	JSONBufferSize = 64
	// TxPayloadMaxSize is the max size of bytes allowed for an outbound payload (also the frame size for chunked links)
	TxPayloadMaxSize = 256
)
