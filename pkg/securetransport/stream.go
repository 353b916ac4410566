package securetransport

import (
	"io"
	"net"

	"github.com/ooni/securetransport/internal/model"
)

// Stream is an established session.
type Stream struct {
	s *session
}

var _ io.ReadWriteCloser = &Stream{}

// Read reads plaintext. It returns [io.EOF] once the peer has closed the
// session and an error for which errors.Is(err, ErrWouldBlock) is true
// when the stream is not ready.
func (s *Stream) Read(p []byte) (int, error) {
	if s.s.released {
		return 0, net.ErrClosed
	}
	if len(p) <= 0 {
		return 0, nil
	}
	count, status := s.s.ctx.engine.Read(p)
	metricBytes.WithLabelValues("read").Add(float64(count))
	switch {
	case status == model.StatusSuccess:
		return count, nil
	case status.IsClosed():
		s.s.conn.takeError()
		return count, io.EOF
	default:
		return count, newErrWrapper(ReadOperation, status, s.s.conn.takeError())
	}
}

// Write writes plaintext. When the stream is not ready the engine may keep
// the data and return len(p) along with an error for which errors.Is(err,
// ErrWouldBlock) is true; the next Write, even with empty p, finishes
// sending it.
func (s *Stream) Write(p []byte) (int, error) {
	if s.s.released {
		return 0, net.ErrClosed
	}
	count, status := s.s.ctx.engine.Write(p)
	metricBytes.WithLabelValues("write").Add(float64(count))
	if status != model.StatusSuccess {
		return count, newErrWrapper(WriteOperation, status, s.s.conn.takeError())
	}
	return count, nil
}

// Flush flushes the underlying stream, if it implements [model.Flusher].
func (s *Stream) Flush() error {
	if s.s.released {
		return net.ErrClosed
	}
	if flusher, ok := s.s.stream.(model.Flusher); ok {
		return flusher.Flush()
	}
	return nil
}

// Close closes the session, releases the engine, and closes the underlying
// stream if it is an [io.Closer]. It is idempotent.
func (s *Stream) Close() error {
	return s.s.teardown()
}

// Context returns the session handle.
func (s *Stream) Context() *Context {
	return s.s.ctx
}

// Underlying returns the stream passed to [*Context.Handshake].
func (s *Stream) Underlying() model.Stream {
	return s.s.stream
}
