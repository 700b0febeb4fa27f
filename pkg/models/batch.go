package models

import (
	"bytes"
	"sync"

	"github.com/pkg/errors"

	"github.com/edgechain/edgechain-device/pkg/config"
)

// Batch accumulates encoded readings into one outbound json array payload
// bounded by the tx payload size
type Batch struct {
	mutex sync.Mutex
	items [][]byte
}

// NewBatch makes an empty batch
func NewBatch() *Batch {
	return &Batch{}
}

// brackets plus a separator per item
func encodedLen(items [][]byte) int {
	n := 1
	for _, item := range items {
		n += len(item) + 1
	}
	return n
}

// Append adds one encoded reading. It reports whether the batch can no longer
// fit another reading of the max encoded size.
func (b *Batch) Append(item []byte) (bool, error) {
	if len(item) == 0 {
		return false, errors.New("empty reading to batch")
	}
	if len(item) > config.JSONBufferSize {
		return false, errors.Errorf("reading is %d bytes, exceeds json buffer size %d", len(item), config.JSONBufferSize)
	}
	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.items = append(b.items, item)
	full := encodedLen(b.items)+config.JSONBufferSize+1 > config.TxPayloadMaxSize
	return full, nil
}

// Len returns the number of buffered readings
func (b *Batch) Len() int {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return len(b.items)
}

// Flush returns the encoded json array and resets the batch. It returns nil
// and zero when the batch is empty.
func (b *Batch) Flush() ([]byte, int) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	n := len(b.items)
	if n == 0 {
		return nil, 0
	}
	payload := bytes.NewBuffer([]byte("["))
	payload.Write(bytes.Join(b.items, []byte(",")))
	payload.WriteString("]")
	b.items = nil
	return payload.Bytes(), n
}
