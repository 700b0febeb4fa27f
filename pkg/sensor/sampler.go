package sensor

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/edgechain/edgechain-device/pkg/models"
	"github.com/edgechain/edgechain-device/pkg/util"
)

// Sampler drives the periodic sensor reading loop
type Sampler struct {
	deviceID  string
	interval  time.Duration
	sensor    Sensor
	onReading func(models.Reading)
	onError   func(error)
	log       *logrus.Entry
}

// NewSampler makes a sampler which hands each reading to onReading and each
// failed read to onError
func NewSampler(deviceID string, interval time.Duration, s Sensor, onReading func(models.Reading), onError func(error)) *Sampler {
	return &Sampler{
		deviceID:  deviceID,
		interval:  interval,
		sensor:    s,
		onReading: onReading,
		onError:   onError,
		log:       logrus.WithField("component", "sampler"),
	}
}

// Run blocks sampling at the configured interval until ctx is canceled
func (s *Sampler) Run(ctx context.Context) {
	s.log.WithField("interval", s.interval).Info("sampling loop started")
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.log.Info("sampling loop stopped")
			return
		case <-ticker.C:
			s.sample(ctx)
		}
	}
}

func (s *Sampler) sample(ctx context.Context) {
	value, err := s.sensor.Read(ctx)
	if err != nil {
		s.onError(errors.Wrap(err, "sensor read issue: "))
		return
	}
	s.onReading(models.Reading{ID: s.deviceID, TS: util.UnixTS(), Value: value})
}
