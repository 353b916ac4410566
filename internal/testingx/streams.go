package testingx

import (
	"errors"
	"fmt"
	"net"
	"os"
	"sync"
	"sync/atomic"

	"github.com/ooni/securetransport/internal/model"
	"github.com/ooni/securetransport/internal/runtimex"
)

// NotReadyStream is a [model.Stream] that is never ready, i.e., it behaves
// like a non-blocking socket for which no data is ever available.
//
// The zero value of this struct is ready to use.
type NotReadyStream struct {
	closed atomic.Int64
}

var _ model.Stream = &NotReadyStream{}

// Read implements model.Stream.
func (s *NotReadyStream) Read(b []byte) (int, error) {
	return 0, os.ErrDeadlineExceeded
}

// Write implements model.Stream.
func (s *NotReadyStream) Write(b []byte) (int, error) {
	return 0, os.ErrDeadlineExceeded
}

// Close implements io.Closer.
func (s *NotReadyStream) Close() error {
	s.closed.Add(1)
	return nil
}

// CloseCount returns the number of times Close has been called.
func (s *NotReadyStream) CloseCount() int64 {
	return s.closed.Load()
}

// ToggleStream wraps a [net.Conn] and behaves like a non-blocking socket
// that is not ready as long as Blocked is true.
type ToggleStream struct {
	// Blocked controls whether I/O fails with [os.ErrDeadlineExceeded].
	Blocked atomic.Bool

	// Conn is the wrapped connection.
	Conn net.Conn
}

var _ model.Stream = &ToggleStream{}

// Read implements model.Stream.
func (s *ToggleStream) Read(b []byte) (int, error) {
	if s.Blocked.Load() {
		return 0, os.ErrDeadlineExceeded
	}
	return s.Conn.Read(b)
}

// Write implements model.Stream.
func (s *ToggleStream) Write(b []byte) (int, error) {
	if s.Blocked.Load() {
		return 0, os.ErrDeadlineExceeded
	}
	return s.Conn.Write(b)
}

// Close implements io.Closer.
func (s *ToggleStream) Close() error {
	return s.Conn.Close()
}

// CloseVerify verifies that we're closing all the streams.
//
// The zero value of this struct is ready to use.
type CloseVerify struct {
	mu      sync.Mutex
	streams map[string]struct{}
}

func (cv *CloseVerify) add(key string) {
	defer cv.mu.Unlock()
	cv.mu.Lock()
	if cv.streams == nil {
		cv.streams = make(map[string]struct{})
	}
	_, good := cv.streams[key]
	runtimex.PanicIfTrue(good, fmt.Sprintf("we're already tracking: %s", key))
	cv.streams[key] = struct{}{}
}

func (cv *CloseVerify) remove(key string) {
	defer cv.mu.Unlock()
	cv.mu.Lock()
	_, good := cv.streams[key]
	runtimex.PanicIfFalse(good, fmt.Sprintf("we're not tracking: %s", key))
	delete(cv.streams, key)
}

// CheckForOpenStreams returns an error if we still have some open streams.
func (cv *CloseVerify) CheckForOpenStreams() error {
	defer cv.mu.Unlock()
	cv.mu.Lock()
	var errorv []error
	for key := range cv.streams {
		errorv = append(errorv, fmt.Errorf("%s has not been closed", key))
	}
	return errors.Join(errorv...) // returns nil if empty
}

// WrapStream returns a stream that tells cv when it is closed. Closing the
// returned stream more than once only closes stream once.
func (cv *CloseVerify) WrapStream(key string, stream model.Stream) model.Stream {
	cv.add(key)
	return &closeVerifyStream{Stream: stream, cv: cv, key: key}
}

type closeVerifyStream struct {
	model.Stream
	cv   *CloseVerify
	key  string
	once sync.Once
}

// Close implements io.Closer.
func (s *closeVerifyStream) Close() (err error) {
	s.once.Do(func() {
		s.cv.remove(s.key)
		if closer, good := s.Stream.(interface{ Close() error }); good {
			err = closer.Close()
		}
	})
	return
}
