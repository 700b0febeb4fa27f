package util

import "time"

// UnixTS returns the current unix (epoch) timestamp in milliseconds
func UnixTS() int64 {
	return time.Now().UnixNano() / int64(time.Millisecond)
}
