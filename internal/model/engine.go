package model

//
// TLS engine
//

import (
	"crypto/tls"
	"crypto/x509"
)

// ProtocolSide is the engine code for the side of a session.
type ProtocolSide int32

const (
	ServerSide = ProtocolSide(0)
	ClientSide = ProtocolSide(1)
)

// ConnectionType is the engine code for the kind of session.
type ConnectionType int32

const (
	StreamType   = ConnectionType(0)
	DatagramType = ConnectionType(1)
)

// SessionStateCode is the engine code for the session state.
type SessionStateCode int32

const (
	SessionStateIdle      = SessionStateCode(0)
	SessionStateHandshake = SessionStateCode(1)
	SessionStateConnected = SessionStateCode(2)
	SessionStateClosed    = SessionStateCode(3)
	SessionStateAborted   = SessionStateCode(4)
)

// ProtocolCode is the engine code for a protocol version.
type ProtocolCode int32

const (
	ProtocolUnknown  = ProtocolCode(0)
	ProtocolSSL2     = ProtocolCode(1)
	ProtocolSSL3     = ProtocolCode(2)
	ProtocolSSL3Only = ProtocolCode(3)
	ProtocolTLS1     = ProtocolCode(4)
	ProtocolTLS1Only = ProtocolCode(5)
	ProtocolAll      = ProtocolCode(6)
	ProtocolTLS11    = ProtocolCode(7)
	ProtocolTLS12    = ProtocolCode(8)
	ProtocolDTLS1    = ProtocolCode(9)
	ProtocolTLS13    = ProtocolCode(10)
	ProtocolDTLS12   = ProtocolCode(11)
)

// AuthenticateCode is the engine code for the client authentication policy.
type AuthenticateCode int32

const (
	AuthenticateNever  = AuthenticateCode(0)
	AuthenticateAlways = AuthenticateCode(1)
	AuthenticateTry    = AuthenticateCode(2)
)

// ClientCertStateCode is the engine code for the client certificate state.
type ClientCertStateCode int32

const (
	ClientCertNone      = ClientCertStateCode(0)
	ClientCertRequested = ClientCertStateCode(1)
	ClientCertSent      = ClientCertStateCode(2)
	ClientCertRejected  = ClientCertStateCode(3)
)

// SessionOption is the engine code for a boolean session option.
type SessionOption int32

const (
	SessionOptionBreakOnServerAuth    = SessionOption(0)
	SessionOptionBreakOnCertRequested = SessionOption(1)
	SessionOptionBreakOnClientAuth    = SessionOption(2)
	SessionOptionFalseStart           = SessionOption(3)
	SessionOptionSendOneByteRecord    = SessionOption(4)
)

// ConnectionRef is the opaque back-reference the engine passes to the
// I/O callbacks. The engine MUST NOT interpret it.
type ConnectionRef uintptr

// ReadFunc is the callback the engine invokes to pull len(data) bytes
// of ciphertext. It returns the number of bytes written into data.
type ReadFunc func(conn ConnectionRef, data []byte) (int, Status)

// WriteFunc is the callback the engine invokes to push data. It returns
// the number of bytes actually consumed.
type WriteFunc func(conn ConnectionRef, data []byte) (int, Status)

// Engine is a callback-driven TLS/DTLS engine modeled after Secure Transport.
//
// The engine invokes the ReadFunc and WriteFunc only while one of its own
// methods is executing on the caller's goroutine and never concurrently. The
// caller MUST NOT use the same Engine from multiple goroutines.
type Engine interface {
	// SetIOFuncs installs the I/O callbacks.
	SetIOFuncs(read ReadFunc, write WriteFunc) Status

	// SetConnection installs the opaque reference passed to the callbacks.
	SetConnection(conn ConnectionRef) Status

	// Connection returns the reference installed by SetConnection.
	Connection() (ConnectionRef, Status)

	// Handshake advances the handshake by one step.
	Handshake() Status

	// Read reads plaintext once the session is connected.
	Read(data []byte) (int, Status)

	// Write writes plaintext once the session is connected.
	Write(data []byte) (int, Status)

	// Close performs an orderly close of the session.
	Close() Status

	// SessionState returns the current session state code.
	SessionState() (SessionStateCode, Status)

	SetPeerDomainName(name string) Status
	PeerDomainName() (string, Status)

	// SetCertificate installs the identity and the extra chain certificates.
	SetCertificate(identity *tls.Certificate, chain []*x509.Certificate) Status

	SetPeerID(peerID []byte) Status

	// PeerID returns nil when no peer ID has been set.
	PeerID() ([]byte, Status)

	SupportedCiphers() ([]uint16, Status)
	EnabledCiphers() ([]uint16, Status)
	SetEnabledCiphers(ciphers []uint16) Status
	NegotiatedCipher() (uint16, Status)

	SetClientSideAuthenticate(auth AuthenticateCode) Status
	ClientCertificateState() (ClientCertStateCode, Status)

	// CopyPeerTrust returns the trust object describing the peer chain.
	CopyPeerTrust() (Trust, Status)

	NegotiatedProtocolVersion() (ProtocolCode, Status)
	ProtocolVersionMax() (ProtocolCode, Status)
	SetProtocolVersionMax(version ProtocolCode) Status
	ProtocolVersionMin() (ProtocolCode, Status)
	SetProtocolVersionMin(version ProtocolCode) Status

	// BufferedReadSize returns how many plaintext bytes we can read without
	// invoking the ReadFunc.
	BufferedReadSize() (int, Status)

	SetSessionOption(option SessionOption, value bool) Status
	SessionOption(option SessionOption) (bool, Status)

	// Dispose releases the engine state. The engine is unusable afterwards.
	Dispose()
}

// EngineFactory allocates engine instances.
type EngineFactory interface {
	NewEngine(side ProtocolSide, ctype ConnectionType) (Engine, Status)
}
