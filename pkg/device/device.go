package device

import (
	"context"

	"github.com/go-ble/ble"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/edgechain/edgechain-device/pkg/config"
	"github.com/edgechain/edgechain-device/pkg/models"
	"github.com/edgechain/edgechain-device/pkg/peripheral"
	"github.com/edgechain/edgechain-device/pkg/sensor"
	"github.com/edgechain/edgechain-device/pkg/transport"
)

// Device wires the sampling loop to the ble peripheral and the serial
// transport: every reading updates the advertised payload, full batches go out
// over the serial link.
type Device struct {
	profile    config.Profile
	sampler    *sensor.Sampler
	peripheral *peripheral.Peripheral
	tx         *transport.Transmitter
	batch      *models.Batch
	listener   models.DeviceListener
	log        *logrus.Entry
}

// New makes a device from its parts. A nil dev opens the OS bluetooth device
// on Run.
func New(profile config.Profile, s sensor.Sensor, port transport.Port, dev ble.Device,
	listener models.DeviceListener, pListener models.PeripheralListener) (*Device, error) {
	if err := profile.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid profile: ")
	}
	d := &Device{
		profile:  profile,
		tx:       transport.NewTransmitter(port),
		batch:    models.NewBatch(),
		listener: listener,
		log:      logrus.WithField("component", "device"),
	}
	d.sampler = sensor.NewSampler(profile.DeviceID, profile.Interval(), s, d.handleReading, listener.OnInternalError)
	d.peripheral = peripheral.New(profile, pListener, dev)
	return d, nil
}

// Run advertises and samples until ctx is canceled, then flushes the pending
// batch
func (d *Device) Run(ctx context.Context) error {
	go func() {
		if err := d.peripheral.Advertise(ctx); err != nil {
			d.listener.OnInternalError(err)
		}
	}()
	d.sampler.Run(ctx)
	return d.flush()
}

func (d *Device) handleReading(r models.Reading) {
	d.listener.OnReading(r)
	data, err := r.Data()
	if err != nil {
		d.listener.OnInternalError(err)
		return
	}
	d.peripheral.SetPayload(data)
	full, err := d.batch.Append(data)
	if err != nil {
		d.listener.OnInternalError(err)
		return
	}
	if full {
		if err := d.flush(); err != nil {
			d.listener.OnInternalError(err)
		}
	}
}

func (d *Device) flush() error {
	payload, n := d.batch.Flush()
	if payload == nil {
		return nil
	}
	if err := d.tx.Send(payload); err != nil {
		return errors.Wrap(err, "serial send issue: ")
	}
	d.log.WithFields(logrus.Fields{"readings": n, "bytes": len(payload)}).Info("batch flushed")
	d.listener.OnBatchFlushed(n, len(payload))
	return nil
}
