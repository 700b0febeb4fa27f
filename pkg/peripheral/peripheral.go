package peripheral

import (
	"context"
	"sync"

	"github.com/go-ble/ble"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/edgechain/edgechain-device/pkg/config"
	"github.com/edgechain/edgechain-device/pkg/models"
	"github.com/edgechain/edgechain-device/pkg/util"
)

// Peripheral advertises the device service and serves the latest sensor
// payload through the data characteristic
type Peripheral struct {
	name         string
	serviceUUID  string
	dataCharUUID string
	status       models.PeripheralStatus
	payloadMutex sync.RWMutex
	payload      []byte
	queues       *frameQueue
	extra        []*ReadCharacteristic
	device       ble.Device
	listener     models.PeripheralListener
	log          *logrus.Entry
}

// New makes a peripheral from the profile. A nil dev opens the OS bluetooth
// device on Advertise; tests pass a dummy.
func New(profile config.Profile, listener models.PeripheralListener, dev ble.Device, moreReadChars ...*ReadCharacteristic) *Peripheral {
	return &Peripheral{
		name:         profile.LocalName,
		serviceUUID:  profile.ServiceUUID,
		dataCharUUID: profile.DataCharUUID,
		status:       models.Advertising,
		queues:       newFrameQueue(),
		extra:        moreReadChars,
		device:       dev,
		listener:     listener,
		log:          logrus.WithField("component", "peripheral"),
	}
}

// SetPayload replaces the payload served by the data characteristic. It is
// safe to call concurrently with ATT reads.
func (p *Peripheral) SetPayload(data []byte) {
	p.payloadMutex.Lock()
	p.payload = data
	p.payloadMutex.Unlock()
}

func (p *Peripheral) latestPayload() []byte {
	p.payloadMutex.RLock()
	defer p.payloadMutex.RUnlock()
	return p.payload
}

// Advertise registers the service and broadcasts the local name until ctx is
// canceled
func (p *Peripheral) Advertise(ctx context.Context) error {
	dev := p.device
	if dev == nil {
		d, err := util.NewDevice()
		if err != nil {
			err = errors.Wrap(err, "NewDevice issue: ")
			p.setStatus(models.Crashed, err)
			return err
		}
		dev = d
	}
	ble.SetDefaultDevice(dev)
	if err := util.CatchErrs(func() error {
		return ble.AddService(getService(p))
	}); err != nil {
		err = errors.Wrap(err, "AddService issue: ")
		p.setStatus(models.Crashed, err)
		return err
	}
	p.setStatus(models.Advertising, nil)
	p.log.WithFields(logrus.Fields{"name": p.name, "service": p.serviceUUID}).Info("advertising")
	err := util.CatchErrs(func() error {
		return ble.AdvertiseNameAndServices(ctx, p.name, ble.MustParse(p.serviceUUID))
	})
	if err != nil && ctx.Err() == nil {
		err = errors.Wrap(err, "AdvertiseNameAndServices issue: ")
		p.setStatus(models.Crashed, err)
		return err
	}
	return nil
}

func (p *Peripheral) setStatus(status models.PeripheralStatus, err error) {
	p.status = status
	p.listener.OnStatusChanged(status, err)
}

func getService(p *Peripheral) *ble.Service {
	service := ble.NewService(ble.MustParse(p.serviceUUID))
	readChars := []*ReadCharacteristic{newDataChar(p)}
	readChars = append(readChars, p.extra...)
	for _, char := range readChars {
		service.AddCharacteristic(constructReadChar(p, char))
	}
	return service
}

func newDataChar(p *Peripheral) *ReadCharacteristic {
	return &ReadCharacteristic{p.dataCharUUID, func(_ string, _ context.Context) ([]byte, error) {
		data := p.latestPayload()
		if len(data) == 0 {
			return nil, errors.New("no reading sampled yet")
		}
		return data, nil
	}, func() {}}
}
