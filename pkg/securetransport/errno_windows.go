//go:build windows

package securetransport

import (
	"errors"

	"golang.org/x/sys/windows"
)

var resetErrnos = []windows.Errno{
	windows.ECONNRESET,
	windows.ERROR_BROKEN_PIPE,
	windows.WSAECONNABORTED,
	windows.WSAECONNRESET,
}

var wouldBlockErrnos = []windows.Errno{
	windows.EAGAIN,
}

func isResetErrno(err error) bool {
	return matchesErrno(err, resetErrnos)
}

func isWouldBlockErrno(err error) bool {
	return matchesErrno(err, wouldBlockErrnos)
}

func matchesErrno(err error, errnos []windows.Errno) bool {
	for _, errno := range errnos {
		if errors.Is(err, errno) {
			return true
		}
	}
	return false
}
