package securetransport

import (
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"syscall"
	"testing"

	"github.com/ooni/securetransport/internal/model"
)

type timeoutError struct{}

func (timeoutError) Error() string {
	return "mocked timeout"
}

func (timeoutError) Timeout() bool {
	return true
}

func (timeoutError) Temporary() bool {
	return true
}

func TestTranslateError(t *testing.T) {
	type testcase struct {
		name   string
		err    error
		expect model.Status
	}

	testcases := []testcase{{
		name:   "EOF",
		err:    io.EOF,
		expect: model.StatusClosedNoNotify,
	}, {
		name:   "unexpected EOF",
		err:    io.ErrUnexpectedEOF,
		expect: model.StatusClosedNoNotify,
	}, {
		name:   "closed",
		err:    fmt.Errorf("read: %w", net.ErrClosed),
		expect: model.StatusClosedAbort,
	}, {
		name:   "connection reset",
		err:    &net.OpError{Op: "read", Err: os.NewSyscallError("read", syscall.ECONNRESET)},
		expect: model.StatusClosedAbort,
	}, {
		name:   "would block",
		err:    ErrWouldBlock,
		expect: model.StatusWouldBlock,
	}, {
		name:   "deadline exceeded",
		err:    os.ErrDeadlineExceeded,
		expect: model.StatusWouldBlock,
	}, {
		name:   "EAGAIN",
		err:    os.NewSyscallError("read", syscall.EAGAIN),
		expect: model.StatusWouldBlock,
	}, {
		name:   "timeout",
		err:    timeoutError{},
		expect: model.StatusWouldBlock,
	}, {
		name:   "anything else",
		err:    errors.New("mocked error"),
		expect: model.StatusIO,
	}}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			if got := translateError(tc.err); got != tc.expect {
				t.Fatal("expected", tc.expect, "got", got)
			}
		})
	}
}
