package securetransport

import (
	"crypto/tls"
	"fmt"

	"github.com/ooni/securetransport/internal/model"
	"github.com/ooni/securetransport/internal/runtimex"
)

// ProtocolSide is the side of the session.
type ProtocolSide int32

const (
	ServerSide = ProtocolSide(model.ServerSide)
	ClientSide = ProtocolSide(model.ClientSide)
)

// String implements fmt.Stringer.
func (s ProtocolSide) String() string {
	if s == ServerSide {
		return "server"
	}
	return "client"
}

// ConnectionType is the kind of session.
type ConnectionType int32

const (
	StreamType   = ConnectionType(model.StreamType)
	DatagramType = ConnectionType(model.DatagramType)
)

// String implements fmt.Stringer.
func (t ConnectionType) String() string {
	if t == DatagramType {
		return "datagram"
	}
	return "stream"
}

// SessionState is the state of the engine session.
type SessionState int32

const (
	SessionIdle      = SessionState(model.SessionStateIdle)
	SessionHandshake = SessionState(model.SessionStateHandshake)
	SessionConnected = SessionState(model.SessionStateConnected)
	SessionClosed    = SessionState(model.SessionStateClosed)
	SessionAborted   = SessionState(model.SessionStateAborted)
)

var sessionStateNames = map[SessionState]string{
	SessionIdle:      "idle",
	SessionHandshake: "handshake",
	SessionConnected: "connected",
	SessionClosed:    "closed",
	SessionAborted:   "aborted",
}

// String implements fmt.Stringer.
func (s SessionState) String() string {
	return sessionStateNames[s]
}

// sessionStateFromCode panics when the engine returns an unknown code.
func sessionStateFromCode(code model.SessionStateCode) SessionState {
	state := SessionState(code)
	_, found := sessionStateNames[state]
	runtimex.PanicIfFalse(found, fmt.Sprintf("bad session state value %d", code))
	return state
}

// Protocol is a protocol version.
type Protocol int32

const (
	ProtocolUnknown  = Protocol(model.ProtocolUnknown)
	ProtocolSSL2     = Protocol(model.ProtocolSSL2)
	ProtocolSSL3     = Protocol(model.ProtocolSSL3)
	ProtocolSSL3Only = Protocol(model.ProtocolSSL3Only)
	ProtocolTLS1     = Protocol(model.ProtocolTLS1)
	ProtocolTLS1Only = Protocol(model.ProtocolTLS1Only)
	ProtocolAll      = Protocol(model.ProtocolAll)
	ProtocolTLS11    = Protocol(model.ProtocolTLS11)
	ProtocolTLS12    = Protocol(model.ProtocolTLS12)
	ProtocolDTLS1    = Protocol(model.ProtocolDTLS1)
	ProtocolTLS13    = Protocol(model.ProtocolTLS13)
	ProtocolDTLS12   = Protocol(model.ProtocolDTLS12)
)

var protocolNames = map[Protocol]string{
	ProtocolUnknown:  "unknown",
	ProtocolSSL2:     "ssl2",
	ProtocolSSL3:     "ssl3",
	ProtocolSSL3Only: "ssl3_only",
	ProtocolTLS1:     "tls1",
	ProtocolTLS1Only: "tls1_only",
	ProtocolAll:      "all",
	ProtocolTLS11:    "tls11",
	ProtocolTLS12:    "tls12",
	ProtocolDTLS1:    "dtls1",
	ProtocolTLS13:    "tls13",
	ProtocolDTLS12:   "dtls12",
}

// String implements fmt.Stringer.
func (p Protocol) String() string {
	return protocolNames[p]
}

// protocolFromCode panics when the engine returns an unknown code.
func protocolFromCode(code model.ProtocolCode) Protocol {
	protocol := Protocol(code)
	_, found := protocolNames[protocol]
	runtimex.PanicIfFalse(found, fmt.Sprintf("bad protocol value %d", code))
	return protocol
}

// Authenticate is the client authentication policy of a server.
type Authenticate int32

const (
	AuthenticateNever  = Authenticate(model.AuthenticateNever)
	AuthenticateAlways = Authenticate(model.AuthenticateAlways)
	AuthenticateTry    = Authenticate(model.AuthenticateTry)
)

// ClientCertificateState is the state of the client certificate exchange.
type ClientCertificateState int32

const (
	ClientCertStateNone      = ClientCertificateState(model.ClientCertNone)
	ClientCertStateRequested = ClientCertificateState(model.ClientCertRequested)
	ClientCertStateSent      = ClientCertificateState(model.ClientCertSent)
	ClientCertStateRejected  = ClientCertificateState(model.ClientCertRejected)
)

var clientCertStateNames = map[ClientCertificateState]string{
	ClientCertStateNone:      "none",
	ClientCertStateRequested: "requested",
	ClientCertStateSent:      "sent",
	ClientCertStateRejected:  "rejected",
}

// String implements fmt.Stringer.
func (s ClientCertificateState) String() string {
	return clientCertStateNames[s]
}

// clientCertStateFromCode panics when the engine returns an unknown code.
func clientCertStateFromCode(code model.ClientCertStateCode) ClientCertificateState {
	state := ClientCertificateState(code)
	_, found := clientCertStateNames[state]
	runtimex.PanicIfFalse(found, fmt.Sprintf("bad client certificate state value %d", code))
	return state
}

// CipherSuite is a cipher suite ID as assigned by IANA.
type CipherSuite uint16

// String returns the standard name of the suite.
func (cs CipherSuite) String() string {
	return tls.CipherSuiteName(uint16(cs))
}

func ciphersFromIDs(ids []uint16) (out []CipherSuite) {
	for _, id := range ids {
		out = append(out, CipherSuite(id))
	}
	return
}

func ciphersToIDs(ciphers []CipherSuite) (out []uint16) {
	for _, cs := range ciphers {
		out = append(out, uint16(cs))
	}
	return
}
