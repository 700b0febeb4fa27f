package sensor

import (
	"context"
	"math"
	"math/rand"
	"sync"
)

const (
	simInitialValue = 22.0
	simMinValue     = -40.0
	simMaxValue     = 85.0
	simMaxStep      = 0.5
)

// Simulated is a demo sensor producing a bounded random walk, so examples and
// tests can run without hardware
type Simulated struct {
	mutex sync.Mutex
	rng   *rand.Rand
	value float64
}

// NewSimulated makes a simulated sensor; the same seed yields the same walk
func NewSimulated(seed int64) *Simulated {
	return &Simulated{rng: rand.New(rand.NewSource(seed)), value: simInitialValue}
}

func (s *Simulated) Read(_ context.Context) (float64, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.value += (s.rng.Float64()*2 - 1) * simMaxStep
	if s.value < simMinValue {
		s.value = simMinValue
	}
	if s.value > simMaxValue {
		s.value = simMaxValue
	}
	// rounded so encoded readings stay short
	return math.Round(s.value*100) / 100, nil
}
