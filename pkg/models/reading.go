package models

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/edgechain/edgechain-device/pkg/config"
)

// Reading is one sensor sample. Keys are kept short so an encoded reading fits
// the json buffer bound.
type Reading struct {
	ID    string  `json:"id"`
	TS    int64   `json:"ts"`
	Value float64 `json:"v"`
}

// Data serializes the reading, enforcing the single message bound
func (r *Reading) Data() ([]byte, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	if len(b) > config.JSONBufferSize {
		return nil, errors.Errorf("encoded reading is %d bytes, exceeds json buffer size %d", len(b), config.JSONBufferSize)
	}
	return b, nil
}

// GetReadingFromBytes constructs a reading from an encoded payload
func GetReadingFromBytes(data []byte) (*Reading, error) {
	var r Reading
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, errors.Wrap(err, "decode reading issue")
	}
	if r.ID == "" {
		return nil, errors.New("reading is missing device id")
	}
	if r.TS <= 0 {
		return nil, errors.New("reading is missing timestamp")
	}
	return &r, nil
}

// GetReadingsFromBytes constructs a batch of readings from an encoded payload
func GetReadingsFromBytes(data []byte) ([]Reading, error) {
	var readings []Reading
	if err := json.Unmarshal(data, &readings); err != nil {
		return nil, errors.Wrap(err, "decode readings issue")
	}
	return readings, nil
}
