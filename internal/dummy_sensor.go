package internal

import (
	"context"
	"sync"

	"github.com/pkg/errors"
)

// DummySensor replays a fixed sequence of values, repeating the last one
type DummySensor struct {
	mutex  sync.Mutex
	values []float64
	index  int
}

func NewDummySensor(values ...float64) *DummySensor {
	return &DummySensor{values: values}
}

func (s *DummySensor) Read(_ context.Context) (float64, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	v := s.values[s.index]
	if s.index < len(s.values)-1 {
		s.index++
	}
	return v, nil
}

// BrokenSensor fails every read
type BrokenSensor struct{}

func (s *BrokenSensor) Read(_ context.Context) (float64, error) {
	return 0, errors.New("sensor hardware fault")
}
