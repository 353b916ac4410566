package tlsengine

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"

	"github.com/ooni/securetransport/internal/model"
)

// statusError carries a [model.Status] through crypto/tls.
type statusError struct {
	status model.Status
	err    error
}

func newStatusError(status model.Status, err error) *statusError {
	return &statusError{status: status, err: err}
}

func (e *statusError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("tlsengine: %s: %s", e.status, e.err.Error())
	}
	return fmt.Sprintf("tlsengine: %s", e.status)
}

func (e *statusError) Unwrap() error {
	return e.err
}

var (
	errNoCertificate      = errors.New("tlsengine: no certificate configured")
	errNoPeerCertificates = errors.New("tlsengine: peer did not present any certificate")
)

// statusFromError maps an error returned by crypto/tls to a status.
func statusFromError(err error) model.Status {
	if err == nil {
		return model.StatusSuccess
	}
	var serr *statusError
	if errors.As(err, &serr) {
		return serr.status
	}
	if errors.Is(err, io.EOF) {
		return model.StatusClosedGraceful
	}
	if errors.Is(err, net.ErrClosed) {
		return model.StatusClosedAbort
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "remote error" {
		return model.StatusFatalAlert
	}
	var recordErr tls.RecordHeaderError
	if errors.As(err, &recordErr) {
		return model.StatusProtocol
	}
	return classifyTLSErrorString(err.Error())
}

func classifyTLSErrorString(s string) model.Status {
	switch {
	case strings.Contains(s, "no certificates configured"):
		return model.StatusBadConfiguration
	case strings.Contains(s, "no cipher suite supported"),
		strings.Contains(s, "no mutual cipher suite"),
		strings.Contains(s, "protocol version not supported"),
		strings.Contains(s, "no supported versions"):
		return model.StatusNegotiation
	case strings.HasPrefix(s, "tls: "):
		return model.StatusProtocol
	default:
		return model.StatusInternal
	}
}

// classifyVerifyError maps an x509 verification error to a status.
func classifyVerifyError(err error) model.Status {
	var hostErr x509.HostnameError
	if errors.As(err, &hostErr) {
		return model.StatusHostNameMismatch
	}
	var authErr x509.UnknownAuthorityError
	if errors.As(err, &authErr) {
		return model.StatusUnknownRootCert
	}
	var invalidErr x509.CertificateInvalidError
	if errors.As(err, &invalidErr) {
		if invalidErr.Reason == x509.Expired {
			return model.StatusCertExpired
		}
		return model.StatusXCertChainInvalid
	}
	return model.StatusBadCert
}
