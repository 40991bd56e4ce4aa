package mocks

import (
	"context"
	"errors"
	"github.com/yahengsu/bullpen/interfaces"
	"sync"
	"time"
)

var ErrConnClosed = errors.New("mock connection closed")

// TransportMock hands out in-memory connections and remembers every dial
type TransportMock struct {
	mutex   sync.Mutex
	dialErr error
	urls    []string
	dialed  chan *ConnMock
}

func NewTransportMock() *TransportMock {
	return &TransportMock{dialed: make(chan *ConnMock, 64)}
}

func (transportMock *TransportMock) SetDialError(err error) {
	transportMock.mutex.Lock()
	defer transportMock.mutex.Unlock()
	transportMock.dialErr = err
}

func (transportMock *TransportMock) Dial(ctx context.Context, url string) (interfaces.FeedConn, error) {
	transportMock.mutex.Lock()
	defer transportMock.mutex.Unlock()
	transportMock.urls = append(transportMock.urls, url)
	if transportMock.dialErr != nil {
		return nil, transportMock.dialErr
	}
	conn := NewConnMock()
	transportMock.dialed <- conn
	return conn, nil
}

// WaitConn returns the next dialed connection or nil after a second
func (transportMock *TransportMock) WaitConn() *ConnMock {
	select {
	case conn := <-transportMock.dialed:
		return conn
	case <-time.After(time.Second):
		return nil
	}
}

func (transportMock *TransportMock) DialCount() int {
	transportMock.mutex.Lock()
	defer transportMock.mutex.Unlock()
	return len(transportMock.urls)
}

func (transportMock *TransportMock) URLs() []string {
	transportMock.mutex.Lock()
	defer transportMock.mutex.Unlock()
	urls := make([]string, len(transportMock.urls))
	copy(urls, transportMock.urls)
	return urls
}

// ConnMock is fed with Push and dropped with Close
type ConnMock struct {
	messages chan []byte
	closed   chan struct{}
	once     sync.Once
}

func NewConnMock() *ConnMock {
	return &ConnMock{
		messages: make(chan []byte, 64),
		closed:   make(chan struct{}),
	}
}

func (connMock *ConnMock) ReadMessage() (int, []byte, error) {
	select {
	case message := <-connMock.messages:
		return 1, message, nil
	case <-connMock.closed:
		return 0, nil, ErrConnClosed
	}
}

func (connMock *ConnMock) Close() error {
	connMock.once.Do(func() { close(connMock.closed) })
	return nil
}

func (connMock *ConnMock) Push(message []byte) {
	connMock.messages <- message
}

func (connMock *ConnMock) IsClosed() bool {
	select {
	case <-connMock.closed:
		return true
	default:
		return false
	}
}
