package securetransport

import (
	"errors"
	"io"
	"net"
	"testing"

	"github.com/ooni/securetransport/internal/mocks"
	"github.com/ooni/securetransport/internal/model"
)

// newMockStream performs a successful handshake with a mocked engine.
func newMockStream(t *testing.T, underlying model.Stream) (*Stream, *mocks.Engine, *engineState) {
	engine, st := newMockEngine(model.StatusSuccess)
	ctx := newMockContext(t, engine)
	stream, err := ctx.Handshake(underlying)
	if err != nil {
		t.Fatal(err)
	}
	return stream, engine, st
}

// newQuietStream returns a stream we can close.
func newQuietStream() *mocks.Stream {
	return &mocks.Stream{
		MockClose: func() error {
			return nil
		},
	}
}

func TestStreamRead(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		stream, engine, _ := newMockStream(t, newQuietStream())
		defer stream.Close()
		engine.MockRead = func(data []byte) (int, model.Status) {
			return copy(data, "abc"), model.StatusSuccess
		}
		buffer := make([]byte, 8)
		count, err := stream.Read(buffer)
		if err != nil || string(buffer[:count]) != "abc" {
			t.Fatal("unexpected result", count, err)
		}
	})

	t.Run("empty buffer", func(t *testing.T) {
		stream, engine, _ := newMockStream(t, newQuietStream())
		defer stream.Close()
		engine.MockRead = func(data []byte) (int, model.Status) {
			panic("should not be called")
		}
		if count, err := stream.Read(nil); count != 0 || err != nil {
			t.Fatal("unexpected result", count, err)
		}
	})

	t.Run("closed statuses become EOF", func(t *testing.T) {
		for _, status := range []model.Status{
			model.StatusClosedGraceful, model.StatusClosedAbort, model.StatusClosedNoNotify} {
			stream, engine, _ := newMockStream(t, newQuietStream())
			engine.MockRead = func(data []byte) (int, model.Status) {
				return 0, status
			}
			if _, err := stream.Read(make([]byte, 4)); !errors.Is(err, io.EOF) {
				t.Fatal("unexpected error", status, err)
			}
			stream.Close()
		}
	})

	t.Run("would block", func(t *testing.T) {
		stream, engine, _ := newMockStream(t, newQuietStream())
		defer stream.Close()
		engine.MockRead = func(data []byte) (int, model.Status) {
			return 0, model.StatusWouldBlock
		}
		_, err := stream.Read(make([]byte, 4))
		var ew *ErrWrapper
		if !errors.Is(err, ErrWouldBlock) || !errors.As(err, &ew) || ew.Operation != ReadOperation {
			t.Fatal("unexpected error", err)
		}
	})

	t.Run("the stream error is preserved", func(t *testing.T) {
		expected := errors.New("mocked error")
		stream, engine, st := newMockStream(t, &mocks.Stream{
			MockRead: func(b []byte) (int, error) {
				return 0, expected
			},
			MockClose: func() error {
				return nil
			},
		})
		defer stream.Close()
		engine.MockRead = func(data []byte) (int, model.Status) {
			return st.read(st.conn, data)
		}
		if _, err := stream.Read(make([]byte, 4)); !errors.Is(err, expected) {
			t.Fatal("unexpected error", err)
		}
	})

	t.Run("after close", func(t *testing.T) {
		stream, _, _ := newMockStream(t, newQuietStream())
		stream.Close()
		if _, err := stream.Read(make([]byte, 4)); !errors.Is(err, net.ErrClosed) {
			t.Fatal("unexpected error", err)
		}
		if _, err := stream.Write([]byte("abc")); !errors.Is(err, net.ErrClosed) {
			t.Fatal("unexpected error", err)
		}
		if err := stream.Flush(); !errors.Is(err, net.ErrClosed) {
			t.Fatal("unexpected error", err)
		}
	})
}

func TestStreamWrite(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		stream, engine, _ := newMockStream(t, newQuietStream())
		defer stream.Close()
		engine.MockWrite = func(data []byte) (int, model.Status) {
			return len(data), model.StatusSuccess
		}
		if count, err := stream.Write([]byte("abc")); count != 3 || err != nil {
			t.Fatal("unexpected result", count, err)
		}
	})

	t.Run("would block keeps the count", func(t *testing.T) {
		stream, engine, _ := newMockStream(t, newQuietStream())
		defer stream.Close()
		engine.MockWrite = func(data []byte) (int, model.Status) {
			return len(data), model.StatusWouldBlock
		}
		count, err := stream.Write([]byte("abc"))
		if count != 3 || !errors.Is(err, ErrWouldBlock) {
			t.Fatal("unexpected result", count, err)
		}
	})

	t.Run("failure", func(t *testing.T) {
		stream, engine, _ := newMockStream(t, newQuietStream())
		defer stream.Close()
		engine.MockWrite = func(data []byte) (int, model.Status) {
			return 0, model.StatusClosedAbort
		}
		var ew *ErrWrapper
		_, err := stream.Write([]byte("abc"))
		if !errors.As(err, &ew) || ew.Failure != FailureClosedAbort || ew.Operation != WriteOperation {
			t.Fatal("unexpected error", err)
		}
	})
}

func TestStreamFlush(t *testing.T) {
	t.Run("with a flusher", func(t *testing.T) {
		var flushed bool
		stream, _, _ := newMockStream(t, &mocks.Stream{
			MockFlush: func() error {
				flushed = true
				return nil
			},
			MockClose: func() error {
				return nil
			},
		})
		defer stream.Close()
		if err := stream.Flush(); err != nil || !flushed {
			t.Fatal("expected a flush", err)
		}
	})

	t.Run("without a flusher", func(t *testing.T) {
		stream, _, _ := newMockStream(t, struct{ model.Stream }{newQuietStream()})
		defer stream.Close()
		if err := stream.Flush(); err != nil {
			t.Fatal(err)
		}
	})
}
