package securetransport

import (
	"errors"
	"fmt"

	"github.com/ooni/securetransport/internal/model"
)

// ErrWrapper is the error returned when an engine operation fails. Failure,
// which is also returned by Error, is one of the FailureXXX strings or a
// string like `unknown_failure: ...` for statuses we have not mapped.
type ErrWrapper struct {
	// Failure is the failure string.
	Failure string

	// Operation is one of the XXXOperation strings.
	Operation string

	// WrappedErr is the original stream error, if the stream failed, or
	// a [*StatusError] otherwise.
	WrappedErr error
}

// Error returns the failure string for this error.
func (e *ErrWrapper) Error() string {
	return e.Failure
}

// Unwrap allows to access the underlying error.
func (e *ErrWrapper) Unwrap() error {
	return e.WrappedErr
}

// Is makes errors.Is(err, ErrWouldBlock) true for would-block failures
// regardless of the error the stream used to signal them.
func (e *ErrWrapper) Is(target error) bool {
	return target == ErrWouldBlock && e.Failure == FailureWouldBlock
}

// StatusError is the error we synthesize from an engine status when the
// stream itself did not fail.
type StatusError struct {
	Status model.Status
}

// Error implements error.
func (e *StatusError) Error() string {
	return fmt.Sprintf("securetransport: engine status %s (%d)", e.Status, int32(e.Status))
}

// Operations that may fail.
const (
	ConfigureOperation    = "configure"
	TLSHandshakeOperation = "tls_handshake"
	ReadOperation         = "read"
	WriteOperation        = "write"
	CloseOperation        = "close"
	PeerTrustOperation    = "peer_trust"
)

// Failure strings.
const (
	FailureClosedGraceful     = "ssl_closed_graceful"
	FailureClosedAbort        = "ssl_closed_abort"
	FailureClosedNoNotify     = "ssl_closed_no_notify"
	FailureWouldBlock         = "ssl_would_block"
	FailureInvalidHostname    = "ssl_invalid_hostname"
	FailureUnknownAuthority   = "ssl_unknown_authority"
	FailureInvalidCertificate = "ssl_invalid_certificate"
	FailureCertExpired        = "ssl_cert_expired"
	FailureProtocolError      = "ssl_protocol_error"
	FailureNegotiationFailed  = "ssl_negotiation_failed"
	FailureFatalAlert         = "ssl_fatal_alert"
	FailureBadConfiguration   = "ssl_bad_configuration"
	FailureBadRequest         = "ssl_bad_request"
	FailureParamError         = "ssl_param_error"
	FailureGenericIOFailure   = "generic_io_failure"
	FailureUnimplemented      = "ssl_unimplemented"
)

var failures = map[model.Status]string{
	model.StatusClosedGraceful:    FailureClosedGraceful,
	model.StatusClosedAbort:       FailureClosedAbort,
	model.StatusClosedNoNotify:    FailureClosedNoNotify,
	model.StatusWouldBlock:        FailureWouldBlock,
	model.StatusHostNameMismatch:  FailureInvalidHostname,
	model.StatusUnknownRootCert:   FailureUnknownAuthority,
	model.StatusNoRootCert:        FailureUnknownAuthority,
	model.StatusXCertChainInvalid: FailureInvalidCertificate,
	model.StatusBadCert:           FailureInvalidCertificate,
	model.StatusCertExpired:       FailureCertExpired,
	model.StatusProtocol:          FailureProtocolError,
	model.StatusNegotiation:       FailureNegotiationFailed,
	model.StatusFatalAlert:        FailureFatalAlert,
	model.StatusPeerHandshakeFail: FailureFatalAlert,
	model.StatusBadConfiguration:  FailureBadConfiguration,
	model.StatusBadReq:            FailureBadRequest,
	model.StatusParam:             FailureParamError,
	model.StatusIO:                FailureGenericIOFailure,
	model.StatusUnimplemented:     FailureUnimplemented,
}

// classifyStatus maps an engine status to a failure string.
func classifyStatus(status model.Status) string {
	if failure, found := failures[status]; found {
		return failure
	}
	return fmt.Sprintf("unknown_failure: %s", status)
}

// newErrWrapper wraps cause, when not nil, or a [*StatusError].
func newErrWrapper(op string, status model.Status, cause error) *ErrWrapper {
	if cause == nil {
		cause = &StatusError{Status: status}
	}
	return &ErrWrapper{
		Failure:    classifyStatus(status),
		Operation:  op,
		WrappedErr: cause,
	}
}

var (
	// ErrWouldBlock indicates that the stream is not ready. Streams may
	// return it, or any error for which errors.Is is true, to signal that
	// the engine should retry later.
	ErrWouldBlock = errors.New("securetransport: operation would block")

	// ErrServerAuthCompleted indicates that the handshake paused to let
	// the caller evaluate the peer trust.
	ErrServerAuthCompleted = errors.New("securetransport: server authentication completed")

	// ErrClientCertRequested indicates that the handshake paused because
	// the server requested a client certificate.
	ErrClientCertRequested = errors.New("securetransport: client certificate requested")

	// ErrIdleSession indicates that the session has not started yet.
	ErrIdleSession = errors.New("securetransport: the session is idle")

	// ErrContextConsumed indicates that the Context was already used for a handshake.
	ErrContextConsumed = errors.New("securetransport: context already used for a handshake")

	// ErrHandshakeConsumed indicates that the handshake has already completed or failed.
	ErrHandshakeConsumed = errors.New("securetransport: handshake already completed")

	// ErrContextClosed indicates that the engine has been released.
	ErrContextClosed = errors.New("securetransport: context closed")
)

// SetupError is returned by [*Context.Handshake] when we cannot install the
// stream into the engine. The Stream is returned to the caller unchanged.
type SetupError struct {
	Stream model.Stream
	Err    error
}

// Error implements error.
func (e *SetupError) Error() string {
	return "securetransport: cannot setup the handshake: " + e.Err.Error()
}

// Unwrap allows to access the underlying error.
func (e *SetupError) Unwrap() error {
	return e.Err
}

// InterruptReason explains why the handshake was interrupted.
type InterruptReason int

const (
	// ServerAuthCompleted means the caller should evaluate the peer trust.
	ServerAuthCompleted = InterruptReason(iota)

	// ClientCertRequested means the caller may install a certificate.
	ClientCertRequested

	// WouldBlock means the caller should wait for the stream to be ready.
	WouldBlock
)

// String implements fmt.Stringer.
func (r InterruptReason) String() string {
	switch r {
	case ServerAuthCompleted:
		return "server_auth_completed"
	case ClientCertRequested:
		return "client_cert_requested"
	default:
		return "would_block"
	}
}

func (r InterruptReason) sentinel() error {
	switch r {
	case ServerAuthCompleted:
		return ErrServerAuthCompleted
	case ClientCertRequested:
		return ErrClientCertRequested
	default:
		return ErrWouldBlock
	}
}

// HandshakeInterrupted is the error returned when the handshake pauses. Call
// Stream.Handshake to resume it or Stream.Close to abandon it.
type HandshakeInterrupted struct {
	Reason InterruptReason
	Stream *MidHandshakeStream
}

// Error implements error.
func (e *HandshakeInterrupted) Error() string {
	return "securetransport: handshake interrupted: " + e.Reason.String()
}

// Unwrap returns the sentinel matching the Reason.
func (e *HandshakeInterrupted) Unwrap() error {
	return e.Reason.sentinel()
}
