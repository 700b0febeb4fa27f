package transport

import (
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.bug.st/serial"

	"github.com/edgechain/edgechain-device/pkg/config"
	"github.com/edgechain/edgechain-device/pkg/util"
)

const writeTimeout = time.Second * 2

// Port is the minimal write surface of a serial device
type Port interface {
	io.WriteCloser
}

// OpenSerial opens the profile's serial device at its baud rate, 8N1
func OpenSerial(profile config.Profile) (Port, error) {
	mode := &serial.Mode{
		BaudRate: profile.BaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(profile.SerialPort, mode)
	if err != nil {
		return nil, errors.Wrap(err, "open serial port issue: ")
	}
	return port, nil
}

// Transmitter frames outbound payloads and writes them to a port
type Transmitter struct {
	port Port
	log  *logrus.Entry
}

// NewTransmitter makes a transmitter over an open port
func NewTransmitter(port Port) *Transmitter {
	return &Transmitter{port: port, log: logrus.WithField("component", "serial")}
}

// Send frames the payload and writes it one frame at a time. A wedged port is
// bounded by the write timeout.
func (t *Transmitter) Send(payload []byte) error {
	frames, err := util.EncodeFrames(payload)
	if err != nil {
		return errors.Wrap(err, "EncodeFrames issue: ")
	}
	for i, f := range frames {
		frame := f
		err := util.Timeout("serial write", func() error {
			_, e := t.port.Write(frame)
			return e
		}, writeTimeout)
		if err != nil {
			return errors.Wrapf(err, "serial write issue (frame %d of %d): ", i+1, len(frames))
		}
	}
	t.log.WithFields(logrus.Fields{"frames": len(frames), "bytes": len(payload)}).Debug("payload sent")
	return nil
}

// Close closes the underlying port
func (t *Transmitter) Close() error {
	return t.port.Close()
}
