package internal

import (
	"sync"

	"github.com/edgechain/edgechain-device/pkg/models"
)

// RecordingDeviceListener captures every device callback for assertions
type RecordingDeviceListener struct {
	mutex    sync.Mutex
	Readings []models.Reading
	Batches  []int
	Errors   []error
}

func (l *RecordingDeviceListener) OnReading(r models.Reading) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.Readings = append(l.Readings, r)
}

func (l *RecordingDeviceListener) OnBatchFlushed(readings int, _ int) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.Batches = append(l.Batches, readings)
}

func (l *RecordingDeviceListener) OnInternalError(err error) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.Errors = append(l.Errors, err)
}

func (l *RecordingDeviceListener) ReadingCount() int {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	return len(l.Readings)
}

func (l *RecordingDeviceListener) BatchCount() int {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	return len(l.Batches)
}

// RecordingPeripheralListener captures every peripheral callback
type RecordingPeripheralListener struct {
	mutex    sync.Mutex
	Statuses []models.PeripheralStatus
	Served   []int
	Errors   []error
}

func (l *RecordingPeripheralListener) OnStatusChanged(s models.PeripheralStatus, _ error) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.Statuses = append(l.Statuses, s)
}

func (l *RecordingPeripheralListener) OnPayloadServed(_ string, frames int) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.Served = append(l.Served, frames)
}

func (l *RecordingPeripheralListener) OnInternalError(err error) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.Errors = append(l.Errors, err)
}

func (l *RecordingPeripheralListener) ErrorCount() int {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	return len(l.Errors)
}
