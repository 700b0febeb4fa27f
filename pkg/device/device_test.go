package device

import (
	"context"
	"testing"
	"time"

	"gotest.tools/assert"

	"github.com/edgechain/edgechain-device/internal"
	"github.com/edgechain/edgechain-device/pkg/config"
	"github.com/edgechain/edgechain-device/pkg/models"
	"github.com/edgechain/edgechain-device/pkg/util"
)

func fastProfile() config.Profile {
	p := config.DefaultProfile()
	p.ReadingIntervalMS = 10
	return p
}

func TestNewRejectsInvalidProfile(t *testing.T) {
	p := fastProfile()
	p.BaudRate = 1
	_, err := New(p, internal.NewDummySensor(1), internal.NewDummyPort(), &internal.DummyDevice{},
		&internal.RecordingDeviceListener{}, &internal.RecordingPeripheralListener{})
	assert.ErrorContains(t, err, "invalid profile")
}

func TestRunSamplesAndFlushes(t *testing.T) {
	dListener := &internal.RecordingDeviceListener{}
	pListener := &internal.RecordingPeripheralListener{}
	port := internal.NewDummyPort()
	dev, err := New(fastProfile(), internal.NewDummySensor(20.5, 21.0, 21.5), port, &internal.DummyDevice{}, dListener, pListener)
	assert.NilError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond*150)
	defer cancel()
	assert.NilError(t, dev.Run(ctx))

	assert.Assert(t, dListener.ReadingCount() >= 3)
	first := dListener.Readings[0]
	assert.Equal(t, first.ID, config.DeviceID)
	assert.Equal(t, first.Value, 20.5)

	// the final flush covers whatever the cadence left unbatched
	assert.Assert(t, dListener.BatchCount() >= 1)
	total := 0
	for _, n := range dListener.Batches {
		total += n
	}
	assert.Equal(t, total, dListener.ReadingCount())

	// every serial write is a frame; together they reassemble into json batches
	buffer := util.NewFrameBuffer()
	decoded := 0
	for _, w := range port.Writes() {
		payload, err := buffer.Set(w)
		assert.NilError(t, err)
		if payload == nil {
			continue
		}
		readings, err := models.GetReadingsFromBytes(payload)
		assert.NilError(t, err)
		decoded += len(readings)
	}
	assert.Equal(t, decoded, total)
}

func TestRunReportsSensorFailures(t *testing.T) {
	dListener := &internal.RecordingDeviceListener{}
	dev, err := New(fastProfile(), &internal.BrokenSensor{}, internal.NewDummyPort(), &internal.DummyDevice{},
		dListener, &internal.RecordingPeripheralListener{})
	assert.NilError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond*60)
	defer cancel()
	assert.NilError(t, dev.Run(ctx))

	assert.Equal(t, dListener.ReadingCount(), 0)
	assert.Assert(t, len(dListener.Errors) >= 1)
	assert.ErrorContains(t, dListener.Errors[0], "sensor read issue")
}
