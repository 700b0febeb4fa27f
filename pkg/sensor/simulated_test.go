package sensor

import (
	"context"
	"testing"

	"gotest.tools/assert"

	"github.com/edgechain/edgechain-device/pkg/config"
	"github.com/edgechain/edgechain-device/pkg/models"
)

func TestSimulatedStaysInBounds(t *testing.T) {
	s := NewSimulated(42)
	for i := 0; i < 1000; i++ {
		v, err := s.Read(context.Background())
		assert.NilError(t, err)
		assert.Assert(t, v >= simMinValue && v <= simMaxValue)
	}
}

func TestSimulatedIsDeterministic(t *testing.T) {
	a := NewSimulated(7)
	b := NewSimulated(7)
	for i := 0; i < 10; i++ {
		va, err := a.Read(context.Background())
		assert.NilError(t, err)
		vb, err := b.Read(context.Background())
		assert.NilError(t, err)
		assert.Equal(t, va, vb)
	}
}

func TestSimulatedReadingsFitBuffer(t *testing.T) {
	s := NewSimulated(99)
	for i := 0; i < 100; i++ {
		v, err := s.Read(context.Background())
		assert.NilError(t, err)
		r := models.Reading{ID: config.DeviceID, TS: 1756500000000, Value: v}
		data, err := r.Data()
		assert.NilError(t, err)
		assert.Assert(t, len(data) <= config.JSONBufferSize)
	}
}
