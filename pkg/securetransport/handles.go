package securetransport

import (
	"sync"

	"github.com/ooni/securetransport/internal/model"
	"github.com/ooni/securetransport/internal/runtimex"
)

// handleTable owns the connection shims. Engines only see the integer
// reference, so a shim is alive exactly as long as its entry is.
type handleTable struct {
	conns map[model.ConnectionRef]*connection
	mu    sync.Mutex
	next  model.ConnectionRef
}

// connections is the process-wide table used by the engine callbacks.
var connections = newHandleTable()

func newHandleTable() *handleTable {
	return &handleTable{conns: make(map[model.ConnectionRef]*connection)}
}

// register adds conn to the table and returns its reference, which is never zero.
func (t *handleTable) register(conn *connection) model.ConnectionRef {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.next++
	ref := t.next
	t.conns[ref] = conn
	metricConnectionsAlive.Inc()
	return ref
}

// lookup returns the shim for ref and panics if there is none, since that
// means the engine is using a reference we did not give it.
func (t *handleTable) lookup(ref model.ConnectionRef) *connection {
	t.mu.Lock()
	defer t.mu.Unlock()
	conn, found := t.conns[ref]
	runtimex.PanicIfFalse(found, "securetransport: unknown connection reference")
	return conn
}

// release removes and returns the shim for ref. Releasing twice panics.
func (t *handleTable) release(ref model.ConnectionRef) *connection {
	t.mu.Lock()
	defer t.mu.Unlock()
	conn, found := t.conns[ref]
	runtimex.PanicIfFalse(found, "securetransport: connection released twice")
	delete(t.conns, ref)
	metricConnectionsAlive.Dec()
	return conn
}

// Len returns the number of registered shims.
func (t *handleTable) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.conns)
}
