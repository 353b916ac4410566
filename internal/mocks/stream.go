package mocks

import "github.com/ooni/securetransport/internal/model"

// Stream allows mocking a model.Stream that is also an io.Closer and a
// model.Flusher.
type Stream struct {
	MockRead  func(b []byte) (int, error)
	MockWrite func(b []byte) (int, error)
	MockClose func() error
	MockFlush func() error
}

var (
	_ model.Stream  = &Stream{}
	_ model.Flusher = &Stream{}
)

// Read calls MockRead.
func (s *Stream) Read(b []byte) (int, error) {
	return s.MockRead(b)
}

// Write calls MockWrite.
func (s *Stream) Write(b []byte) (int, error) {
	return s.MockWrite(b)
}

// Close calls MockClose.
func (s *Stream) Close() error {
	return s.MockClose()
}

// Flush calls MockFlush.
func (s *Stream) Flush() error {
	return s.MockFlush()
}
