package sensor

import "context"

// Sensor is the read surface of the physical sampling hardware
type Sensor interface {
	Read(context.Context) (float64, error)
}
