package tlsengine

import (
	"errors"
	"net"

	"github.com/ooni/securetransport/internal/model"
)

func (e *Engine) checkConnected() model.Status {
	if e.disposed {
		return model.StatusBadReq
	}
	state, _ := e.SessionState()
	switch state {
	case model.SessionStateConnected:
		return model.StatusSuccess
	case model.SessionStateClosed:
		return model.StatusClosedGraceful
	default:
		return model.StatusBadReq
	}
}

// Read implements model.Engine.
func (e *Engine) Read(data []byte) (int, model.Status) {
	if status := e.checkConnected(); status != model.StatusSuccess {
		return 0, status
	}
	if len(e.plaintext) > 0 {
		n := copy(data, e.plaintext)
		e.plaintext = e.plaintext[n:]
		return n, model.StatusSuccess
	}
	if e.readErr != nil {
		return 0, e.readFailed()
	}
	if len(data) <= 0 {
		return 0, model.StatusSuccess
	}
	if e.readOp == nil {
		e.readBuf = make([]byte, len(data))
		session, buf := e.session, e.readBuf
		e.readOp = e.pump.start(func() (int, error) {
			return session.Read(buf)
		})
	}
	res, status := e.drive(e.readOp, true, false)
	if status != model.StatusSuccess {
		return 0, status
	}
	e.readOp = nil
	e.readErr = res.err
	e.plaintext = e.readBuf[:res.n]
	e.readBuf = nil
	if n := copy(data, e.plaintext); n > 0 {
		e.plaintext = e.plaintext[n:]
		return n, model.StatusSuccess
	}
	if e.readErr != nil {
		return 0, e.readFailed()
	}
	return 0, model.StatusSuccess
}

func (e *Engine) readFailed() model.Status {
	status := statusFromError(e.readErr)
	if status.IsClosed() {
		e.setState(model.SessionStateClosed)
	} else {
		e.setState(model.SessionStateAborted)
	}
	return status
}

// Write implements model.Engine. When the stream is not ready we keep the
// record in flight, report the whole data as accepted along with
// [model.StatusWouldBlock], and finish sending it on the next call.
func (e *Engine) Write(data []byte) (int, model.Status) {
	if status := e.checkConnected(); status != model.StatusSuccess {
		return 0, status
	}
	if e.writeOp != nil {
		res, status := e.drive(e.writeOp, false, false)
		if status != model.StatusSuccess {
			return 0, status
		}
		e.writeOp = nil
		if res.err != nil {
			return 0, e.writeFailed(res.err)
		}
	}
	if len(data) <= 0 {
		return 0, model.StatusSuccess
	}
	session, buf := e.session, append([]byte{}, data...)
	e.writeOp = e.pump.start(func() (int, error) {
		return session.Write(buf)
	})
	res, status := e.drive(e.writeOp, false, false)
	if status != model.StatusSuccess {
		return len(data), status
	}
	e.writeOp = nil
	if res.err != nil {
		return res.n, e.writeFailed(res.err)
	}
	return res.n, model.StatusSuccess
}

func (e *Engine) writeFailed(err error) model.Status {
	status := statusFromError(err)
	e.setState(model.SessionStateAborted)
	return status
}

// Close implements model.Engine. We only send close_notify once the
// handshake has completed.
func (e *Engine) Close() model.Status {
	if e.disposed {
		return model.StatusBadReq
	}
	state, _ := e.SessionState()
	if state != model.SessionStateConnected {
		if state != model.SessionStateAborted {
			e.setState(model.SessionStateClosed)
		}
		if e.pump != nil {
			e.pump.close()
		}
		return model.StatusSuccess
	}
	if e.closeOp == nil {
		session := e.session
		e.closeOp = e.pump.start(func() (int, error) {
			return 0, session.Close()
		})
	}
	res, status := e.drive(e.closeOp, false, false)
	if status != model.StatusSuccess {
		return status
	}
	e.closeOp = nil
	e.setState(model.SessionStateClosed)
	if res.err != nil && !errors.Is(res.err, net.ErrClosed) {
		return statusFromError(res.err)
	}
	return model.StatusSuccess
}
