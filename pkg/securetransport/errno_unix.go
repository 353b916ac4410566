//go:build unix

package securetransport

import (
	"errors"

	"golang.org/x/sys/unix"
)

var resetErrnos = []unix.Errno{
	unix.ECONNABORTED,
	unix.ECONNRESET,
	unix.ENOTCONN,
	unix.EPIPE,
}

var wouldBlockErrnos = []unix.Errno{
	unix.EAGAIN,
	unix.EWOULDBLOCK,
}

func isResetErrno(err error) bool {
	return matchesErrno(err, resetErrnos)
}

func isWouldBlockErrno(err error) bool {
	return matchesErrno(err, wouldBlockErrnos)
}

func matchesErrno(err error, errnos []unix.Errno) bool {
	for _, errno := range errnos {
		if errors.Is(err, errno) {
			return true
		}
	}
	return false
}
