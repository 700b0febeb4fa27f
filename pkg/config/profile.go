package config

import (
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// standardBaudRates holds the usual asynchronous serial signaling rates
var standardBaudRates = map[int]bool{
	1200:   true,
	2400:   true,
	4800:   true,
	9600:   true,
	19200:  true,
	38400:  true,
	57600:  true,
	115200: true,
	230400: true,
}

// Profile is the runtime view of the configuration table. The constants stay
// the source of truth; a profile only exists so bench setups can override
// identity and transport settings without recompiling.
type Profile struct {
	ServiceUUID       string `yaml:"service_uuid"`
	DataCharUUID      string `yaml:"data_char_uuid"`
	DeviceID          string `yaml:"device_id"`
	LocalName         string `yaml:"local_name"`
	ReadingIntervalMS int    `yaml:"reading_interval_ms"`
	SerialPort        string `yaml:"serial_port"`
	BaudRate          int    `yaml:"baud_rate"`
}

// Interval returns the sampling cadence as a duration
func (p Profile) Interval() time.Duration {
	return time.Duration(p.ReadingIntervalMS) * time.Millisecond
}

// DefaultProfile returns a profile mirroring the configuration table
func DefaultProfile() Profile {
	return Profile{
		ServiceUUID:       ServiceUUID,
		DataCharUUID:      DataCharUUID,
		DeviceID:          DeviceID,
		LocalName:         LocalName,
		ReadingIntervalMS: int(ReadingInterval.Milliseconds()),
		BaudRate:          BaudRate,
	}
}

// LoadProfile reads yaml overrides from path on top of the defaults
func LoadProfile(path string) (Profile, error) {
	p := DefaultProfile()
	raw, err := os.ReadFile(path)
	if err != nil {
		return p, errors.Wrap(err, "read profile issue")
	}
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return p, errors.Wrap(err, "parse profile issue")
	}
	if err := p.Validate(); err != nil {
		return p, err
	}
	return p, nil
}

// Validate reports authoring mistakes in an overridden profile
func (p Profile) Validate() error {
	if !isCanonicalUUID(p.ServiceUUID) {
		return errors.Errorf("service uuid is not in canonical form: %s", p.ServiceUUID)
	}
	if !isCanonicalUUID(p.DataCharUUID) {
		return errors.Errorf("data characteristic uuid is not in canonical form: %s", p.DataCharUUID)
	}
	if p.ServiceUUID == p.DataCharUUID {
		return errors.New("service and data characteristic uuids must be distinct")
	}
	if p.DeviceID == "" {
		return errors.New("device id must not be empty")
	}
	if p.LocalName == "" {
		return errors.New("local name must not be empty")
	}
	if p.ReadingIntervalMS <= 0 {
		return errors.Errorf("reading interval must be positive: %d ms", p.ReadingIntervalMS)
	}
	if !standardBaudRates[p.BaudRate] {
		return errors.Errorf("baud rate is not a standard serial rate: %d", p.BaudRate)
	}
	return nil
}

// isCanonicalUUID accepts only the 36 character hyphenated hexadecimal form
func isCanonicalUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}
