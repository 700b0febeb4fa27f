package models

type PeripheralListener interface {
	OnStatusChanged(PeripheralStatus, error)
	OnPayloadServed(addr string, frames int)
	OnInternalError(error)
}

type DeviceListener interface {
	OnReading(Reading)
	OnBatchFlushed(readings int, payloadSize int)
	OnInternalError(error)
}
