package securetransport

import (
	"errors"
	"io"
	"net"
	"os"

	"github.com/ooni/securetransport/internal/model"
)

// translateError maps an error returned by the caller's stream to the
// status we report to the engine. End of input means that the peer went
// away without a close_notify, like a zero-length read.
func translateError(err error) model.Status {
	switch {
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return model.StatusClosedNoNotify
	case errors.Is(err, net.ErrClosed), isResetErrno(err):
		return model.StatusClosedAbort
	case errors.Is(err, ErrWouldBlock), errors.Is(err, os.ErrDeadlineExceeded), isWouldBlockErrno(err):
		return model.StatusWouldBlock
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return model.StatusWouldBlock
	}
	return model.StatusIO
}
