package securetransport

import (
	"io"
	"time"

	"github.com/ooni/securetransport/internal/model"
	"github.com/ooni/securetransport/internal/runtimex"
)

// session ties together the engine, the shim, and the caller's stream so
// that they are torn down together, exactly once.
type session struct {
	conn     *connection
	ctx      *Context
	ref      model.ConnectionRef
	released bool
	stream   model.Stream
}

// teardown closes the engine session, releases the shim in the same step
// in which we clear the engine reference to it, disposes of the engine, and
// closes the stream if it is an [io.Closer].
func (s *session) teardown() error {
	if s.released {
		return nil
	}
	s.released = true
	engine := s.ctx.engine
	if status := engine.Close(); status != model.StatusSuccess {
		err := newErrWrapper(CloseOperation, status, s.conn.takeError())
		s.ctx.logger.Debugf("securetransport[%s]: close... %s", s.ctx.id, err)
	}
	ref, status := engine.Connection()
	runtimex.PanicIfFalse(status == model.StatusSuccess && ref == s.ref,
		"securetransport: engine returned an unexpected connection reference")
	if status := engine.SetConnection(0); status != model.StatusSuccess {
		s.ctx.logger.Debugf("securetransport[%s]: clear connection... %s", s.ctx.id, status)
	}
	connections.release(ref)
	s.ctx.release()
	if closer, ok := s.stream.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// Handshake installs stream into the engine and runs the first handshake
// step. On success it returns a [*Stream]. When the handshake pauses the
// error is a [*HandshakeInterrupted]. If we cannot install the stream, the
// error is a [*SetupError] carrying the stream back. Otherwise the error is
// an [*ErrWrapper], and the engine and the stream have been closed.
//
// A Context can only be used for a single handshake.
func (c *Context) Handshake(stream model.Stream) (*Stream, error) {
	runtimex.PanicIfNil(stream, "securetransport: passed a nil stream")
	if err := c.usable(); err != nil {
		return nil, &SetupError{Stream: stream, Err: err}
	}
	if c.consumed {
		return nil, &SetupError{Stream: stream, Err: ErrContextConsumed}
	}
	c.consumed = true
	if status := c.engine.SetIOFuncs(connectionRead, connectionWrite); status != model.StatusSuccess {
		c.release()
		return nil, &SetupError{Stream: stream, Err: newErrWrapper(ConfigureOperation, status, nil)}
	}
	conn := &connection{stream: stream}
	ref := connections.register(conn)
	if status := c.engine.SetConnection(ref); status != model.StatusSuccess {
		connections.release(ref)
		c.release()
		return nil, &SetupError{Stream: stream, Err: newErrWrapper(ConfigureOperation, status, nil)}
	}
	mid := &MidHandshakeStream{
		s:  &session{conn: conn, ctx: c, ref: ref, stream: stream},
		t0: time.Now(),
	}
	name, _ := c.engine.PeerDomainName()
	c.logger.Debugf("securetransport[%s]: handshake {side=%s sni=%s}...", c.id, c.side, name)
	return mid.step()
}

// MidHandshakeStream is a paused handshake. Resume it by calling Handshake,
// or abandon it by calling Close.
type MidHandshakeStream struct {
	done bool
	s    *session
	t0   time.Time
}

// Handshake resumes the handshake. It returns [ErrHandshakeConsumed] once
// the handshake has completed or failed.
func (m *MidHandshakeStream) Handshake() (*Stream, error) {
	if m.done {
		return nil, ErrHandshakeConsumed
	}
	return m.step()
}

// Context returns the session handle, which allows to inspect the peer trust
// and to install a client certificate while the handshake is paused.
func (m *MidHandshakeStream) Context() *Context {
	return m.s.ctx
}

// Underlying returns the stream passed to [*Context.Handshake].
func (m *MidHandshakeStream) Underlying() model.Stream {
	return m.s.stream
}

// Close abandons the handshake and releases the engine, the shim, and
// the stream. It does nothing once the handshake has completed, since the
// resources then belong to the returned [*Stream].
func (m *MidHandshakeStream) Close() error {
	if m.done {
		return nil
	}
	m.done = true
	m.s.ctx.logger.Debugf("securetransport[%s]: handshake abandoned", m.s.ctx.id)
	return m.s.teardown()
}

// step invokes the engine handshake exactly once and interprets the status.
func (m *MidHandshakeStream) step() (*Stream, error) {
	status := m.s.ctx.engine.Handshake()
	switch status {
	case model.StatusSuccess:
		metricHandshakeSteps.WithLabelValues("success").Inc()
		m.s.conn.takeError()
		m.done = true
		m.s.ctx.logHandshakeDone(m.t0, nil)
		return &Stream{s: m.s}, nil
	case model.StatusPeerAuthCompleted:
		return nil, m.interrupt(ServerAuthCompleted)
	case model.StatusClientCertRequested:
		return nil, m.interrupt(ClientCertRequested)
	case model.StatusWouldBlock:
		return nil, m.interrupt(WouldBlock)
	default:
		metricHandshakeSteps.WithLabelValues("failure").Inc()
		err := newErrWrapper(TLSHandshakeOperation, status, m.s.conn.takeError())
		m.done = true
		m.s.ctx.logHandshakeDone(m.t0, err)
		_ = m.s.teardown()
		return nil, err
	}
}

func (m *MidHandshakeStream) interrupt(reason InterruptReason) error {
	metricHandshakeSteps.WithLabelValues(reason.String()).Inc()
	m.s.conn.takeError()
	m.s.ctx.logger.Debugf("securetransport[%s]: handshake... interrupted: %s", m.s.ctx.id, reason)
	return &HandshakeInterrupted{Reason: reason, Stream: m}
}
