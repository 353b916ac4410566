package tlsengine

import (
	"net"
	"sync"

	"github.com/ooni/securetransport/internal/model"
	"github.com/ooni/securetransport/internal/runtimex"
)

// ioRequest asks the caller goroutine to fill or drain buf. The done field
// is only accessed by the caller goroutine and accumulates across calls when
// the stream is not ready.
type ioRequest struct {
	buf   []byte
	done  int
	reply chan ioReply
}

type ioReply struct {
	n   int
	err error
}

// operation is a crypto/tls call running in the background.
type operation struct {
	done chan opResult
}

type opResult struct {
	n   int
	err error
}

// pump connects the goroutines running crypto/tls to the caller goroutine.
type pump struct {
	closeOnce sync.Once
	closed    chan struct{}
	events    chan model.Status
	reads     chan *ioRequest
	resume    chan struct{}
	writes    chan *ioRequest

	// the following fields belong to the caller goroutine
	paused       bool
	pendingRead  *ioRequest
	pendingWrite *ioRequest
}

func newPump() *pump {
	return &pump{
		closed: make(chan struct{}),
		events: make(chan model.Status),
		reads:  make(chan *ioRequest),
		resume: make(chan struct{}),
		writes: make(chan *ioRequest),
	}
}

// close unblocks every goroutine using the pump. It is idempotent.
func (p *pump) close() {
	p.closeOnce.Do(func() { close(p.closed) })
}

// start runs fn in a background goroutine.
func (p *pump) start(fn func() (int, error)) *operation {
	op := &operation{done: make(chan opResult, 1)}
	go func() {
		n, err := fn()
		op.done <- opResult{n: n, err: err}
	}()
	return op
}

// request is called by a background goroutine and blocks until the caller
// goroutine has fully served buf or the pump is closed.
func (p *pump) request(ch chan *ioRequest, buf []byte) (int, error) {
	req := &ioRequest{buf: buf, reply: make(chan ioReply, 1)}
	select {
	case ch <- req:
	case <-p.closed:
		return 0, net.ErrClosed
	}
	select {
	case r := <-req.reply:
		return r.n, r.err
	case <-p.closed:
		return 0, net.ErrClosed
	}
}

// pause is called by the handshake goroutine to hand control back to the
// caller with the given status. It returns once the caller resumes.
func (p *pump) pause(status model.Status) error {
	select {
	case p.events <- status:
	case <-p.closed:
		return net.ErrClosed
	}
	select {
	case <-p.resume:
		return nil
	case <-p.closed:
		return net.ErrClosed
	}
}

// drive serves the I/O requests of the background goroutines until op
// completes, the stream is not ready, or the handshake pauses. In the two
// latter cases the returned status is not success and op is still running.
func (e *Engine) drive(op *operation, allowReads, allowEvents bool) (opResult, model.Status) {
	p := e.pump
	if allowReads && p.pendingRead != nil {
		if e.serve(p.pendingRead, e.readFn) {
			return opResult{}, model.StatusWouldBlock
		}
		p.pendingRead = nil
	}
	if p.pendingWrite != nil {
		if e.serve(p.pendingWrite, e.writeFn) {
			return opResult{}, model.StatusWouldBlock
		}
		p.pendingWrite = nil
	}
	var reads <-chan *ioRequest
	if allowReads && p.pendingRead == nil {
		reads = p.reads
	}
	var events <-chan model.Status
	if allowEvents {
		events = p.events
	}
	for {
		select {
		case req := <-p.writes:
			if e.serve(req, e.writeFn) {
				p.pendingWrite = req
				return opResult{}, model.StatusWouldBlock
			}
		case req := <-reads:
			if e.serve(req, e.readFn) {
				p.pendingRead = req
				return opResult{}, model.StatusWouldBlock
			}
		case status := <-events:
			p.paused = true
			return opResult{}, status
		case res := <-op.done:
			return res, model.StatusSuccess
		}
	}
}

// serve invokes fn until req is complete and returns true if the stream
// is not ready, in which case req should be served again later.
func (e *Engine) serve(req *ioRequest, fn func(model.ConnectionRef, []byte) (int, model.Status)) bool {
	for req.done < len(req.buf) {
		n, status := fn(e.conn, req.buf[req.done:])
		runtimex.PanicIfFalse(n >= 0 && n <= len(req.buf)-req.done, "tlsengine: callback returned an invalid length")
		req.done += n
		switch {
		case status == model.StatusWouldBlock:
			return true
		case status != model.StatusSuccess:
			req.reply <- ioReply{n: req.done, err: newStatusError(status, nil)}
			return false
		case n == 0:
			req.reply <- ioReply{n: req.done, err: newStatusError(model.StatusClosedNoNotify, nil)}
			return false
		}
	}
	req.reply <- ioReply{n: req.done}
	return false
}
