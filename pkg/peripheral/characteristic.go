package peripheral

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/go-ble/ble"
	"github.com/pkg/errors"

	"github.com/edgechain/edgechain-device/pkg/util"
)

// ReadCharacteristic is a struct representation of a characteristic that can
// handle read operations from centrals
type ReadCharacteristic struct {
	Uuid           string
	HandleRead     func(string, context.Context) ([]byte, error)
	DoInBackground func()
}

type loadFn func(string, context.Context) ([]byte, error)

func getAddrFromReq(req ble.Request) string {
	return strings.ToUpper(req.Conn().RemoteAddr().String())
}

func getSessionKey(uuid string, addr string) string {
	return fmt.Sprintf("session || %s || %s", uuid, addr)
}

// frameQueue holds pending outbound frames per read session. A central drains
// one stream with sequential reads; the queue keeps them in order.
type frameQueue struct {
	mutex  sync.Mutex
	frames map[string][][]byte
}

func newFrameQueue() *frameQueue {
	return &frameQueue{frames: map[string][][]byte{}}
}

func (q *frameQueue) pending(session string) bool {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	return len(q.frames[session]) > 0
}

func (q *frameQueue) push(session string, frames [][]byte) {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	q.frames[session] = frames
}

func (q *frameQueue) pop(session string) ([]byte, bool, error) {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	pending := q.frames[session]
	if len(pending) == 0 {
		return nil, false, errors.New("no pending frames in read session")
	}
	f := pending[0]
	q.frames[session] = pending[1:]
	last := len(pending) == 1
	if last {
		delete(q.frames, session)
	}
	return f, last, nil
}

func generateReadHandler(p *Peripheral, uuid string, load loadFn) func(req ble.Request, rsp ble.ResponseWriter) {
	return func(req ble.Request, rsp ble.ResponseWriter) {
		addr := getAddrFromReq(req)
		session := getSessionKey(uuid, addr)
		if !p.queues.pending(session) {
			data, err := load(addr, req.Conn().Context())
			if err != nil {
				p.listener.OnInternalError(errors.Wrap(err, "read char loader issue: "))
				return
			}
			frames, err := util.EncodeFrames(data)
			if err != nil {
				p.listener.OnInternalError(errors.Wrap(err, "EncodeFrames issue: "))
				return
			}
			p.queues.push(session, frames)
			p.listener.OnPayloadServed(addr, len(frames))
		}
		f, _, err := p.queues.pop(session)
		if err != nil {
			p.listener.OnInternalError(errors.Wrap(err, "frame pop issue: "))
			return
		}
		rsp.Write(f)
	}
}

func newReadChar(p *Peripheral, uuid string, load loadFn) *ble.Characteristic {
	c := ble.NewCharacteristic(ble.MustParse(uuid))
	c.HandleRead(ble.ReadHandlerFunc(generateReadHandler(p, uuid, load)))
	return c
}

func constructReadChar(p *Peripheral, char *ReadCharacteristic) *ble.Characteristic {
	c := newReadChar(p, char.Uuid, char.HandleRead)
	go char.DoInBackground()
	return c
}
