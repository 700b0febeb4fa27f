package util

import (
	"crypto/rand"
	"testing"

	"gotest.tools/assert"

	"github.com/edgechain/edgechain-device/pkg/config"
)

const (
	largeDataSize = 5 * 1000 * 1000 // 5 MB
	smallDataSize = 50              // one encoded reading
)

func getRandBytes(t *testing.T, size int) []byte {
	t.Helper()
	b := make([]byte, size)
	_, err := rand.Read(b)
	assert.NilError(t, err)
	return b
}

func TestBytesToNum(t *testing.T) {
	expected := uint32(123)
	x := numToBytes(expected)
	actual := bytesToNum(x)
	assert.Equal(t, expected, actual)
}

func TestEncodeFramesBound(t *testing.T) {
	frames, err := EncodeFrames(getRandBytes(t, largeDataSize))
	assert.NilError(t, err)
	for _, f := range frames {
		assert.Assert(t, len(f) <= config.TxPayloadMaxSize)
	}
}

func TestEncodeFramesEmptyPayload(t *testing.T) {
	_, err := EncodeFrames(nil)
	assert.ErrorContains(t, err, "empty payload")
}

func testEncodeAndBuff(size int) func(*testing.T) {
	return func(t *testing.T) {
		expected := getRandBytes(t, size)
		frames, err := EncodeFrames(expected)
		assert.NilError(t, err)
		buff := NewFrameBuffer()
		var actual []byte
		for _, f := range frames {
			actual, err = buff.Set(f)
			assert.NilError(t, err)
		}
		assert.DeepEqual(t, expected, actual)
	}
}

func TestEncodeAndBuff(t *testing.T) {
	t.Run("Small", testEncodeAndBuff(smallDataSize))
	t.Run("Large", testEncodeAndBuff(largeDataSize))
}

func TestEncodeAndBuffOutOfOrder(t *testing.T) {
	expected := getRandBytes(t, config.TxPayloadMaxSize*3)
	frames, err := EncodeFrames(expected)
	assert.NilError(t, err)
	assert.Assert(t, len(frames) > 2)
	buff := NewFrameBuffer()
	var actual []byte
	for i := len(frames) - 1; i >= 0; i-- {
		actual, err = buff.Set(frames[i])
		assert.NilError(t, err)
	}
	assert.DeepEqual(t, expected, actual)
}

func TestBuffChecksumMismatch(t *testing.T) {
	frames, err := EncodeFrames(getRandBytes(t, config.TxPayloadMaxSize*2))
	assert.NilError(t, err)
	// corrupt a chunk byte in the last frame
	corrupted := frames[len(frames)-1]
	corrupted[len(corrupted)-1] ^= 0xff
	buff := NewFrameBuffer()
	var lastErr error
	for _, f := range frames {
		_, lastErr = buff.Set(f)
	}
	assert.ErrorContains(t, lastErr, "checksum mismatch")
}

func TestBuffTruncatedFrame(t *testing.T) {
	buff := NewFrameBuffer()
	_, err := buff.Set([]byte{1, 2, 3})
	assert.ErrorContains(t, err, "shorter than header")
}

func TestBuffInterleavedStreams(t *testing.T) {
	first := getRandBytes(t, config.TxPayloadMaxSize*2)
	second := getRandBytes(t, config.TxPayloadMaxSize*2)
	framesA, err := EncodeFrames(first)
	assert.NilError(t, err)
	framesB, err := EncodeFrames(second)
	assert.NilError(t, err)
	buff := NewFrameBuffer()
	for i := range framesA {
		payloadA, err := buff.Set(framesA[i])
		assert.NilError(t, err)
		payloadB, err := buff.Set(framesB[i])
		assert.NilError(t, err)
		if i == len(framesA)-1 {
			assert.DeepEqual(t, payloadA, first)
			assert.DeepEqual(t, payloadB, second)
		}
	}
}

func TestChecksumIsStable(t *testing.T) {
	data := []byte("Hello World!")
	assert.DeepEqual(t, Checksum(data), Checksum([]byte("Hello World!")))
	assert.Assert(t, len(Checksum(data)) == sumSize)
}
