//go:build !unix && !windows

package securetransport

func isResetErrno(err error) bool {
	return false
}

func isWouldBlockErrno(err error) bool {
	return false
}
