package internal

import "sync"

// DummyPort is an in-memory serial port capturing every write
type DummyPort struct {
	mutex  sync.Mutex
	writes [][]byte
	closed bool
}

func NewDummyPort() *DummyPort {
	return &DummyPort{}
}

func (p *DummyPort) Write(b []byte) (int, error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.writes = append(p.writes, append([]byte{}, b...))
	return len(b), nil
}

func (p *DummyPort) Close() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.closed = true
	return nil
}

// Writes returns a copy of every write seen so far
func (p *DummyPort) Writes() [][]byte {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	ret := make([][]byte, len(p.writes))
	copy(ret, p.writes)
	return ret
}

func (p *DummyPort) Closed() bool {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.closed
}
