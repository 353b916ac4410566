package mocks

import (
	"crypto/tls"
	"crypto/x509"

	"github.com/ooni/securetransport/internal/model"
)

// Engine allows mocking a model.Engine.
type Engine struct {
	MockSetIOFuncs                func(read model.ReadFunc, write model.WriteFunc) model.Status
	MockSetConnection             func(conn model.ConnectionRef) model.Status
	MockConnection                func() (model.ConnectionRef, model.Status)
	MockHandshake                 func() model.Status
	MockRead                      func(data []byte) (int, model.Status)
	MockWrite                     func(data []byte) (int, model.Status)
	MockClose                     func() model.Status
	MockSessionState              func() (model.SessionStateCode, model.Status)
	MockSetPeerDomainName         func(name string) model.Status
	MockPeerDomainName            func() (string, model.Status)
	MockSetCertificate            func(identity *tls.Certificate, chain []*x509.Certificate) model.Status
	MockSetPeerID                 func(peerID []byte) model.Status
	MockPeerID                    func() ([]byte, model.Status)
	MockSupportedCiphers          func() ([]uint16, model.Status)
	MockEnabledCiphers            func() ([]uint16, model.Status)
	MockSetEnabledCiphers         func(ciphers []uint16) model.Status
	MockNegotiatedCipher          func() (uint16, model.Status)
	MockSetClientSideAuthenticate func(auth model.AuthenticateCode) model.Status
	MockClientCertificateState    func() (model.ClientCertStateCode, model.Status)
	MockCopyPeerTrust             func() (model.Trust, model.Status)
	MockNegotiatedProtocolVersion func() (model.ProtocolCode, model.Status)
	MockProtocolVersionMax        func() (model.ProtocolCode, model.Status)
	MockSetProtocolVersionMax     func(version model.ProtocolCode) model.Status
	MockProtocolVersionMin        func() (model.ProtocolCode, model.Status)
	MockSetProtocolVersionMin     func(version model.ProtocolCode) model.Status
	MockBufferedReadSize          func() (int, model.Status)
	MockSetSessionOption          func(option model.SessionOption, value bool) model.Status
	MockSessionOption             func(option model.SessionOption) (bool, model.Status)
	MockDispose                   func()
}

var _ model.Engine = &Engine{}

// SetIOFuncs calls MockSetIOFuncs.
func (e *Engine) SetIOFuncs(read model.ReadFunc, write model.WriteFunc) model.Status {
	return e.MockSetIOFuncs(read, write)
}

// SetConnection calls MockSetConnection.
func (e *Engine) SetConnection(conn model.ConnectionRef) model.Status {
	return e.MockSetConnection(conn)
}

// Connection calls MockConnection.
func (e *Engine) Connection() (model.ConnectionRef, model.Status) {
	return e.MockConnection()
}

// Handshake calls MockHandshake.
func (e *Engine) Handshake() model.Status {
	return e.MockHandshake()
}

// Read calls MockRead.
func (e *Engine) Read(data []byte) (int, model.Status) {
	return e.MockRead(data)
}

// Write calls MockWrite.
func (e *Engine) Write(data []byte) (int, model.Status) {
	return e.MockWrite(data)
}

// Close calls MockClose.
func (e *Engine) Close() model.Status {
	return e.MockClose()
}

// SessionState calls MockSessionState.
func (e *Engine) SessionState() (model.SessionStateCode, model.Status) {
	return e.MockSessionState()
}

// SetPeerDomainName calls MockSetPeerDomainName.
func (e *Engine) SetPeerDomainName(name string) model.Status {
	return e.MockSetPeerDomainName(name)
}

// PeerDomainName calls MockPeerDomainName.
func (e *Engine) PeerDomainName() (string, model.Status) {
	return e.MockPeerDomainName()
}

// SetCertificate calls MockSetCertificate.
func (e *Engine) SetCertificate(identity *tls.Certificate, chain []*x509.Certificate) model.Status {
	return e.MockSetCertificate(identity, chain)
}

// SetPeerID calls MockSetPeerID.
func (e *Engine) SetPeerID(peerID []byte) model.Status {
	return e.MockSetPeerID(peerID)
}

// PeerID calls MockPeerID.
func (e *Engine) PeerID() ([]byte, model.Status) {
	return e.MockPeerID()
}

// SupportedCiphers calls MockSupportedCiphers.
func (e *Engine) SupportedCiphers() ([]uint16, model.Status) {
	return e.MockSupportedCiphers()
}

// EnabledCiphers calls MockEnabledCiphers.
func (e *Engine) EnabledCiphers() ([]uint16, model.Status) {
	return e.MockEnabledCiphers()
}

// SetEnabledCiphers calls MockSetEnabledCiphers.
func (e *Engine) SetEnabledCiphers(ciphers []uint16) model.Status {
	return e.MockSetEnabledCiphers(ciphers)
}

// NegotiatedCipher calls MockNegotiatedCipher.
func (e *Engine) NegotiatedCipher() (uint16, model.Status) {
	return e.MockNegotiatedCipher()
}

// SetClientSideAuthenticate calls MockSetClientSideAuthenticate.
func (e *Engine) SetClientSideAuthenticate(auth model.AuthenticateCode) model.Status {
	return e.MockSetClientSideAuthenticate(auth)
}

// ClientCertificateState calls MockClientCertificateState.
func (e *Engine) ClientCertificateState() (model.ClientCertStateCode, model.Status) {
	return e.MockClientCertificateState()
}

// CopyPeerTrust calls MockCopyPeerTrust.
func (e *Engine) CopyPeerTrust() (model.Trust, model.Status) {
	return e.MockCopyPeerTrust()
}

// NegotiatedProtocolVersion calls MockNegotiatedProtocolVersion.
func (e *Engine) NegotiatedProtocolVersion() (model.ProtocolCode, model.Status) {
	return e.MockNegotiatedProtocolVersion()
}

// ProtocolVersionMax calls MockProtocolVersionMax.
func (e *Engine) ProtocolVersionMax() (model.ProtocolCode, model.Status) {
	return e.MockProtocolVersionMax()
}

// SetProtocolVersionMax calls MockSetProtocolVersionMax.
func (e *Engine) SetProtocolVersionMax(version model.ProtocolCode) model.Status {
	return e.MockSetProtocolVersionMax(version)
}

// ProtocolVersionMin calls MockProtocolVersionMin.
func (e *Engine) ProtocolVersionMin() (model.ProtocolCode, model.Status) {
	return e.MockProtocolVersionMin()
}

// SetProtocolVersionMin calls MockSetProtocolVersionMin.
func (e *Engine) SetProtocolVersionMin(version model.ProtocolCode) model.Status {
	return e.MockSetProtocolVersionMin(version)
}

// BufferedReadSize calls MockBufferedReadSize.
func (e *Engine) BufferedReadSize() (int, model.Status) {
	return e.MockBufferedReadSize()
}

// SetSessionOption calls MockSetSessionOption.
func (e *Engine) SetSessionOption(option model.SessionOption, value bool) model.Status {
	return e.MockSetSessionOption(option, value)
}

// SessionOption calls MockSessionOption.
func (e *Engine) SessionOption(option model.SessionOption) (bool, model.Status) {
	return e.MockSessionOption(option)
}

// Dispose calls MockDispose.
func (e *Engine) Dispose() {
	e.MockDispose()
}

// EngineFactory allows mocking a model.EngineFactory.
type EngineFactory struct {
	MockNewEngine func(side model.ProtocolSide, ctype model.ConnectionType) (model.Engine, model.Status)
}

var _ model.EngineFactory = &EngineFactory{}

// NewEngine calls MockNewEngine.
func (f *EngineFactory) NewEngine(side model.ProtocolSide, ctype model.ConnectionType) (model.Engine, model.Status) {
	return f.MockNewEngine(side, ctype)
}
