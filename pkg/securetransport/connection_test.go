package securetransport

import (
	"errors"
	"io"
	"net"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ooni/securetransport/internal/mocks"
	"github.com/ooni/securetransport/internal/model"
)

func TestConnectionRead(t *testing.T) {
	t.Run("we loop until the buffer is full", func(t *testing.T) {
		chunks := [][]byte{[]byte("ab"), []byte("c"), []byte("def")}
		conn := &connection{stream: &mocks.Stream{
			MockRead: func(b []byte) (int, error) {
				chunk := chunks[0]
				chunks = chunks[1:]
				return copy(b, chunk), nil
			},
		}}
		buffer := make([]byte, 6)
		count, status := conn.read(buffer)
		if count != 6 || status != model.StatusSuccess {
			t.Fatal("unexpected result", count, status)
		}
		if diff := cmp.Diff([]byte("abcdef"), buffer); diff != "" {
			t.Fatal(diff)
		}
		if conn.takeError() != nil {
			t.Fatal("expected no error")
		}
	})

	t.Run("EOF along with the last bytes is success", func(t *testing.T) {
		conn := &connection{stream: &mocks.Stream{
			MockRead: func(b []byte) (int, error) {
				return copy(b, "abc"), io.EOF
			},
		}}
		count, status := conn.read(make([]byte, 3))
		if count != 3 || status != model.StatusSuccess {
			t.Fatal("unexpected result", count, status)
		}
		if conn.takeError() != nil {
			t.Fatal("expected no error")
		}
	})

	t.Run("EOF with a partial buffer is a close without notify", func(t *testing.T) {
		conn := &connection{stream: &mocks.Stream{
			MockRead: func(b []byte) (int, error) {
				return copy(b, "ab"), io.EOF
			},
		}}
		count, status := conn.read(make([]byte, 3))
		if count != 2 || status != model.StatusClosedNoNotify {
			t.Fatal("unexpected result", count, status)
		}
		if err := conn.takeError(); !errors.Is(err, io.EOF) {
			t.Fatal("unexpected error", err)
		}
		if conn.takeError() != nil {
			t.Fatal("takeError should clear the error")
		}
	})

	t.Run("partial progress is reported when the stream would block", func(t *testing.T) {
		var calls int
		conn := &connection{stream: &mocks.Stream{
			MockRead: func(b []byte) (int, error) {
				calls++
				if calls == 1 {
					return copy(b, "a"), nil
				}
				return 0, ErrWouldBlock
			},
		}}
		count, status := conn.read(make([]byte, 3))
		if count != 1 || status != model.StatusWouldBlock {
			t.Fatal("unexpected result", count, status)
		}
		if err := conn.takeError(); !errors.Is(err, ErrWouldBlock) {
			t.Fatal("unexpected error", err)
		}
	})

	t.Run("zero bytes without error means no progress", func(t *testing.T) {
		conn := &connection{stream: &mocks.Stream{
			MockRead: func(b []byte) (int, error) {
				return 0, nil
			},
		}}
		count, status := conn.read(make([]byte, 3))
		if count != 0 || status != model.StatusClosedNoNotify {
			t.Fatal("unexpected result", count, status)
		}
		if err := conn.takeError(); !errors.Is(err, io.ErrNoProgress) {
			t.Fatal("unexpected error", err)
		}
	})

	t.Run("an invalid count panics", func(t *testing.T) {
		conn := &connection{stream: &mocks.Stream{
			MockRead: func(b []byte) (int, error) {
				return len(b) + 1, nil
			},
		}}
		defer func() {
			if recover() == nil {
				t.Fatal("expected a panic")
			}
		}()
		conn.read(make([]byte, 3))
	})
}

func TestConnectionWrite(t *testing.T) {
	t.Run("we loop until everything is written", func(t *testing.T) {
		var written []byte
		conn := &connection{stream: &mocks.Stream{
			MockWrite: func(b []byte) (int, error) {
				written = append(written, b[0])
				return 1, nil
			},
		}}
		count, status := conn.write([]byte("abc"))
		if count != 3 || status != model.StatusSuccess {
			t.Fatal("unexpected result", count, status)
		}
		if diff := cmp.Diff([]byte("abc"), written); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("the stream error is preserved", func(t *testing.T) {
		expected := errors.New("mocked error")
		conn := &connection{stream: &mocks.Stream{
			MockWrite: func(b []byte) (int, error) {
				return 1, expected
			},
		}}
		count, status := conn.write([]byte("abc"))
		if count != 1 || status != model.StatusIO {
			t.Fatal("unexpected result", count, status)
		}
		if err := conn.takeError(); !errors.Is(err, expected) {
			t.Fatal("unexpected error", err)
		}
	})

	t.Run("a closed stream aborts", func(t *testing.T) {
		conn := &connection{stream: &mocks.Stream{
			MockWrite: func(b []byte) (int, error) {
				return 0, net.ErrClosed
			},
		}}
		if _, status := conn.write([]byte("abc")); status != model.StatusClosedAbort {
			t.Fatal("unexpected status", status)
		}
	})

	t.Run("zero bytes without error is a short write", func(t *testing.T) {
		conn := &connection{stream: &mocks.Stream{
			MockWrite: func(b []byte) (int, error) {
				return 0, nil
			},
		}}
		count, status := conn.write([]byte("abc"))
		if count != 0 || status != model.StatusClosedNoNotify {
			t.Fatal("unexpected result", count, status)
		}
		if err := conn.takeError(); !errors.Is(err, io.ErrShortWrite) {
			t.Fatal("unexpected error", err)
		}
	})
}

func TestConnectionCallbacks(t *testing.T) {
	conn := &connection{stream: &mocks.Stream{
		MockRead: func(b []byte) (int, error) {
			return copy(b, "xy"), nil
		},
		MockWrite: func(b []byte) (int, error) {
			return len(b), nil
		},
	}}
	ref := connections.register(conn)
	defer connections.release(ref)

	buffer := make([]byte, 2)
	if count, status := connectionRead(ref, buffer); count != 2 || status != model.StatusSuccess {
		t.Fatal("unexpected result", count, status)
	}
	if count, status := connectionWrite(ref, []byte("abc")); count != 3 || status != model.StatusSuccess {
		t.Fatal("unexpected result", count, status)
	}
}
