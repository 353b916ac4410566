package tlsengine

import (
	"bytes"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/ooni/securetransport/internal/model"
)

func TestPumpConnReadsWholeRecords(t *testing.T) {
	records := [][]byte{
		{22, 3, 3, 0, 3, 'a', 'b', 'c'},
		{23, 3, 3, 0, 0},
		{23, 3, 3, 0, 1, 'd'},
	}
	wire := bytes.NewReader(bytes.Join(records, nil))

	engine := newTestEngine(model.ClientSide)
	engine.pump = newPump()
	defer engine.Dispose()

	var requested []int
	engine.readFn = func(_ model.ConnectionRef, data []byte) (int, model.Status) {
		requested = append(requested, len(data))
		count, err := wire.Read(data)
		if err != nil {
			return count, model.StatusClosedGraceful
		}
		return count, model.StatusSuccess
	}

	conn := &pumpConn{p: engine.pump}
	var got []byte
	op := engine.pump.start(func() (int, error) {
		buffer := make([]byte, 2)
		for {
			count, err := conn.Read(buffer)
			got = append(got, buffer[:count]...)
			if err != nil {
				return len(got), err
			}
		}
	})
	res, status := engine.drive(op, true, false)
	if status != model.StatusSuccess {
		t.Fatal(status)
	}
	if statusFromError(res.err) != model.StatusClosedGraceful {
		t.Fatal("unexpected error", res.err)
	}
	if diff := cmp.Diff(bytes.Join(records, nil), got); diff != "" {
		t.Fatal(diff)
	}
	// header, body, header, header, body, header
	if diff := cmp.Diff([]int{5, 3, 5, 5, 1, 5}, requested); diff != "" {
		t.Fatal(diff)
	}
}

func TestPumpServeZeroLengthIsClosedNoNotify(t *testing.T) {
	engine := newTestEngine(model.ClientSide)
	engine.pump = newPump()
	defer engine.Dispose()
	engine.writeFn = func(_ model.ConnectionRef, data []byte) (int, model.Status) {
		return 0, model.StatusSuccess
	}
	conn := &pumpConn{p: engine.pump}
	op := engine.pump.start(func() (int, error) {
		return conn.Write([]byte("abc"))
	})
	res, status := engine.drive(op, false, false)
	if status != model.StatusSuccess {
		t.Fatal(status)
	}
	if statusFromError(res.err) != model.StatusClosedNoNotify {
		t.Fatal("unexpected error", res.err)
	}
}

func TestPumpCloseUnblocksRequests(t *testing.T) {
	p := newPump()
	conn := &pumpConn{p: p}
	done := make(chan error, 1)
	go func() {
		_, err := conn.Read(make([]byte, 4))
		done <- err
	}()
	if err := conn.Close(); err != nil {
		t.Fatal(err)
	}
	if err := <-done; !errors.Is(err, net.ErrClosed) {
		t.Fatal("unexpected error", err)
	}
	if err := p.pause(model.StatusPeerAuthCompleted); !errors.Is(err, net.ErrClosed) {
		t.Fatal("unexpected error", err)
	}
	p.close() // idempotent
}

func TestPumpConnAddresses(t *testing.T) {
	conn := &pumpConn{p: newPump()}
	if conn.LocalAddr().String() != "securetransport" || conn.RemoteAddr().Network() != "securetransport" {
		t.Fatal("unexpected addresses")
	}
	if conn.SetDeadline(time.Time{}) != nil || conn.SetReadDeadline(time.Time{}) != nil || conn.SetWriteDeadline(time.Time{}) != nil {
		t.Fatal("deadlines should be ignored")
	}
}
