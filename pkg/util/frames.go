package util

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"sync"

	"github.com/bradfitz/slice"
	mapset "github.com/deckarep/golang-set"
	"github.com/google/uuid"

	"github.com/edgechain/edgechain-device/pkg/config"
)

const (
	idSize     = 16
	sumSize    = sha256.Size
	headerSize = idSize + sumSize + 4 + 4 + 4
)

const (
	errChecksumMismatch  = "Frame data is corrupted! Reason: checksum mismatch"
	errTotalMismatch     = "Frame data is corrupted! Reason: frame total mismatch"
	errIndexOutOfBounds  = "Frame data is corrupted! Reason: frame index out of bounds"
	errMixedStreams      = "Frame data is corrupted! Reason: frames are from mixed streams"
	errDuplicateFrames   = "Frame data is corrupted! Reason: duplicate frame indexes"
	errFrameTooShort     = "Frame data is corrupted! Reason: frame shorter than header"
	errChunkSizeMismatch = "Frame data is corrupted! Reason: chunk size mismatch"
	errFrameSizeOverflow = "frame size overflow"
)

type header struct {
	ID        []byte
	Checksum  []byte
	Index     uint32
	Total     uint32
	ChunkSize uint32
}

type frame struct {
	header *header
	chunk  []byte
}

func numToBytes(x uint32) []byte {
	bs := make([]byte, 4)
	binary.LittleEndian.PutUint32(bs, x)
	return bs
}

func bytesToNum(b []byte) uint32 {
	return binary.LittleEndian.Uint32(b)
}

func split(buf []byte, lim int) [][]byte {
	var chunk []byte
	chunks := make([][]byte, 0, len(buf)/lim+1)
	for len(buf) >= lim {
		chunk, buf = buf[:lim], buf[lim:]
		chunks = append(chunks, chunk)
	}
	if len(buf) > 0 {
		chunks = append(chunks, buf)
	}
	return chunks
}

func encodeToFrame(chunk []byte, h header) ([]byte, error) {
	f := bytes.NewBuffer([]byte{})
	f.Write(h.ID)
	f.Write(h.Checksum)
	f.Write(numToBytes(h.Index))
	f.Write(numToBytes(h.Total))
	f.Write(numToBytes(h.ChunkSize))
	f.Write(chunk)
	b := f.Bytes()
	if len(b) > config.TxPayloadMaxSize {
		return nil, errors.New(errFrameSizeOverflow)
	}
	return b, nil
}

func decodeFromFrame(data []byte) (*header, []byte, error) {
	if len(data) < headerSize {
		return nil, nil, errors.New(errFrameTooShort)
	}
	h := &header{
		ID:        append([]byte{}, data[:idSize]...),
		Checksum:  append([]byte{}, data[idSize:idSize+sumSize]...),
		Index:     bytesToNum(data[idSize+sumSize : idSize+sumSize+4]),
		Total:     bytesToNum(data[idSize+sumSize+4 : idSize+sumSize+8]),
		ChunkSize: bytesToNum(data[idSize+sumSize+8 : headerSize]),
	}
	if int(h.ChunkSize) != len(data)-headerSize {
		return nil, nil, errors.New(errChunkSizeMismatch)
	}
	chunk := append([]byte{}, data[headerSize:]...)
	return h, chunk, nil
}

// Checksum returns the sha256 digest used for frame stream integrity
func Checksum(data []byte) []byte {
	sum := sha256.Sum256(data)
	return sum[:]
}

// EncodeFrames chunks payload into frames sized for links whose write unit is the tx payload bound
func EncodeFrames(payload []byte) ([][]byte, error) {
	if len(payload) == 0 {
		return nil, errors.New("empty payload to frame")
	}
	id := uuid.New()
	sum := Checksum(payload)
	chunks := split(payload, config.TxPayloadMaxSize-headerSize)
	total := len(chunks)
	frames := [][]byte{}
	for i, chunk := range chunks {
		h := header{
			ID:        id[:],
			Checksum:  sum,
			Index:     uint32(i),
			Total:     uint32(total),
			ChunkSize: uint32(len(chunk)),
		}
		f, err := encodeToFrame(chunk, h)
		if err != nil {
			return nil, err
		}
		frames = append(frames, f)
	}
	return frames, nil
}

func reassemble(frames []frame) ([]byte, error) {
	slice.Sort(frames, func(i, j int) bool {
		return frames[i].header.Index < frames[j].header.Index
	})
	total := len(frames)
	ids := mapset.NewSet()
	indexes := mapset.NewSet()
	payload := []byte{}
	for _, f := range frames {
		ids.Add(string(f.header.ID))
		indexes.Add(f.header.Index)
		if total != int(f.header.Total) {
			return nil, errors.New(errTotalMismatch)
		}
		if int(f.header.Index) >= total {
			return nil, errors.New(errIndexOutOfBounds)
		}
		payload = append(payload, f.chunk...)
	}
	if len(ids.ToSlice()) != 1 {
		return nil, errors.New(errMixedStreams)
	}
	if len(indexes.ToSlice()) != total {
		return nil, errors.New(errDuplicateFrames)
	}
	if !bytes.Equal(Checksum(payload), frames[0].header.Checksum) {
		return nil, errors.New(errChecksumMismatch)
	}
	return payload, nil
}

// FrameBuffer reassembles frame streams on the receiving end of a link
type FrameBuffer struct {
	mutex sync.Mutex
	data  map[string][]frame
}

// NewFrameBuffer makes an empty buffer
func NewFrameBuffer() *FrameBuffer {
	return &FrameBuffer{data: map[string][]frame{}}
}

// Set adds one raw frame to the buffer. It returns the full payload once every
// frame of the stream has arrived, nil until then.
func (buff *FrameBuffer) Set(raw []byte) ([]byte, error) {
	buff.mutex.Lock()
	defer buff.mutex.Unlock()
	h, chunk, err := decodeFromFrame(raw)
	if err != nil {
		return nil, err
	}
	key := string(h.ID)
	buff.data[key] = append(buff.data[key], frame{header: h, chunk: chunk})
	frames := buff.data[key]
	if uint32(len(frames)) < h.Total {
		return nil, nil
	}
	delete(buff.data, key)
	return reassemble(frames)
}
