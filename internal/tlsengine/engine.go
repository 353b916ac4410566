package tlsengine

import (
	"crypto/tls"
	"crypto/x509"
	"slices"
	"sync"

	"github.com/ooni/securetransport/internal/model"
)

// Engine is the crypto/tls based [model.Engine].
//
// The fields protected by mu are also accessed by the goroutine running the
// handshake through the crypto/tls callbacks. All the other fields belong to
// the caller goroutine.
type Engine struct {
	clientCAs *x509.CertPool
	logger    model.DebugLogger
	rootCAs   *x509.CertPool
	side      model.ProtocolSide

	mu               sync.Mutex
	chain            []*x509.Certificate
	clientAuth       model.AuthenticateCode
	clientCertState  model.ClientCertStateCode
	enabledCiphers   []uint16
	identity         *tls.Certificate
	maxVersion       model.ProtocolCode
	minVersion       model.ProtocolCode
	negotiatedCipher uint16
	negotiatedVer    model.ProtocolCode
	options          map[model.SessionOption]bool
	peerCerts        []*x509.Certificate
	peerDomainName   string
	peerID           []byte
	state            model.SessionStateCode

	closeOp   *operation
	conn      model.ConnectionRef
	disposed  bool
	hsOp      *operation
	plaintext []byte
	pump      *pump
	readBuf   []byte
	readErr   error
	readFn    model.ReadFunc
	readOp    *operation
	session   *tls.Conn
	writeFn   model.WriteFunc
	writeOp   *operation
}

var _ model.Engine = &Engine{}

func newEngine(f *Factory, side model.ProtocolSide) *Engine {
	return &Engine{
		clientCAs:       f.ClientCAs,
		logger:          model.ValidLoggerOrDefault(f.Logger),
		rootCAs:         f.RootCAs,
		side:            side,
		clientAuth:      model.AuthenticateNever,
		clientCertState: model.ClientCertNone,
		enabledCiphers:  supportedCiphers(),
		maxVersion:      model.ProtocolTLS13,
		minVersion:      model.ProtocolTLS12,
		options:         make(map[model.SessionOption]bool),
		state:           model.SessionStateIdle,
	}
}

// configurableLocked returns whether we can still change the configuration.
func (e *Engine) configurableLocked() model.Status {
	if e.disposed || e.state != model.SessionStateIdle {
		return model.StatusBadReq
	}
	return model.StatusSuccess
}

func (e *Engine) setState(state model.SessionStateCode) {
	e.mu.Lock()
	e.state = state
	e.mu.Unlock()
}

// SetIOFuncs implements model.Engine.
func (e *Engine) SetIOFuncs(read model.ReadFunc, write model.WriteFunc) model.Status {
	if read == nil || write == nil {
		return model.StatusParam
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if status := e.configurableLocked(); status != model.StatusSuccess {
		return status
	}
	e.readFn, e.writeFn = read, write
	return model.StatusSuccess
}

// SetConnection implements model.Engine.
func (e *Engine) SetConnection(conn model.ConnectionRef) model.Status {
	if e.disposed {
		return model.StatusBadReq
	}
	e.conn = conn
	return model.StatusSuccess
}

// Connection implements model.Engine.
func (e *Engine) Connection() (model.ConnectionRef, model.Status) {
	if e.disposed {
		return 0, model.StatusBadReq
	}
	return e.conn, model.StatusSuccess
}

// SessionState implements model.Engine.
func (e *Engine) SessionState() (model.SessionStateCode, model.Status) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state, model.StatusSuccess
}

// SetPeerDomainName implements model.Engine.
func (e *Engine) SetPeerDomainName(name string) model.Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	if status := e.configurableLocked(); status != model.StatusSuccess {
		return status
	}
	e.peerDomainName = name
	return model.StatusSuccess
}

// PeerDomainName implements model.Engine.
func (e *Engine) PeerDomainName() (string, model.Status) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.peerDomainName, model.StatusSuccess
}

// SetCertificate implements model.Engine. Clients may also call it while the
// handshake is paused because the server requested a certificate.
func (e *Engine) SetCertificate(identity *tls.Certificate, chain []*x509.Certificate) model.Status {
	if identity == nil || len(identity.Certificate) <= 0 {
		return model.StatusParam
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.disposed || (e.state != model.SessionStateIdle && e.state != model.SessionStateHandshake) {
		return model.StatusBadReq
	}
	e.identity = identity
	e.chain = slices.Clone(chain)
	return model.StatusSuccess
}

// certificateLocked returns the identity followed by the extra chain.
func (e *Engine) certificateLocked() *tls.Certificate {
	cert := *e.identity
	cert.Certificate = slices.Clone(e.identity.Certificate)
	for _, c := range e.chain {
		cert.Certificate = append(cert.Certificate, c.Raw)
	}
	return &cert
}

// SetPeerID implements model.Engine.
func (e *Engine) SetPeerID(peerID []byte) model.Status {
	if len(peerID) <= 0 {
		return model.StatusParam
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if status := e.configurableLocked(); status != model.StatusSuccess {
		return status
	}
	e.peerID = slices.Clone(peerID)
	return model.StatusSuccess
}

// PeerID implements model.Engine.
func (e *Engine) PeerID() ([]byte, model.Status) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.peerID), model.StatusSuccess
}

// SupportedCiphers implements model.Engine.
func (e *Engine) SupportedCiphers() ([]uint16, model.Status) {
	return supportedCiphers(), model.StatusSuccess
}

// EnabledCiphers implements model.Engine.
func (e *Engine) EnabledCiphers() ([]uint16, model.Status) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.enabledCiphers), model.StatusSuccess
}

// SetEnabledCiphers implements model.Engine.
func (e *Engine) SetEnabledCiphers(ciphers []uint16) model.Status {
	if len(ciphers) <= 0 {
		return model.StatusParam
	}
	for _, id := range ciphers {
		if !isSupportedCipher(id) {
			return model.StatusParam
		}
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if status := e.configurableLocked(); status != model.StatusSuccess {
		return status
	}
	e.enabledCiphers = slices.Clone(ciphers)
	return model.StatusSuccess
}

// NegotiatedCipher implements model.Engine.
func (e *Engine) NegotiatedCipher() (uint16, model.Status) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != model.SessionStateConnected {
		return 0, model.StatusBadReq
	}
	return e.negotiatedCipher, model.StatusSuccess
}

// SetClientSideAuthenticate implements model.Engine.
func (e *Engine) SetClientSideAuthenticate(auth model.AuthenticateCode) model.Status {
	switch auth {
	case model.AuthenticateNever, model.AuthenticateAlways, model.AuthenticateTry:
	default:
		return model.StatusParam
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if status := e.configurableLocked(); status != model.StatusSuccess {
		return status
	}
	e.clientAuth = auth
	return model.StatusSuccess
}

// ClientCertificateState implements model.Engine.
func (e *Engine) ClientCertificateState() (model.ClientCertStateCode, model.Status) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.clientCertState, model.StatusSuccess
}

// CopyPeerTrust implements model.Engine.
func (e *Engine) CopyPeerTrust() (model.Trust, model.Status) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == model.SessionStateIdle || len(e.peerCerts) <= 0 {
		return nil, model.StatusBadReq
	}
	trust := &Trust{
		certs: slices.Clone(e.peerCerts),
		roots: e.rootCAs,
		usage: x509.ExtKeyUsageServerAuth,
	}
	if e.side == model.ClientSide {
		trust.dnsName = e.peerDomainName
	} else {
		trust.roots = e.clientCAs
		trust.usage = x509.ExtKeyUsageClientAuth
	}
	return trust, model.StatusSuccess
}

// NegotiatedProtocolVersion implements model.Engine.
func (e *Engine) NegotiatedProtocolVersion() (model.ProtocolCode, model.Status) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != model.SessionStateConnected {
		return model.ProtocolUnknown, model.StatusSuccess
	}
	return e.negotiatedVer, model.StatusSuccess
}

// ProtocolVersionMax implements model.Engine.
func (e *Engine) ProtocolVersionMax() (model.ProtocolCode, model.Status) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.maxVersion, model.StatusSuccess
}

// SetProtocolVersionMax implements model.Engine.
func (e *Engine) SetProtocolVersionMax(version model.ProtocolCode) model.Status {
	return e.setProtocolVersion(version, &e.maxVersion)
}

// ProtocolVersionMin implements model.Engine.
func (e *Engine) ProtocolVersionMin() (model.ProtocolCode, model.Status) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.minVersion, model.StatusSuccess
}

// SetProtocolVersionMin implements model.Engine.
func (e *Engine) SetProtocolVersionMin(version model.ProtocolCode) model.Status {
	return e.setProtocolVersion(version, &e.minVersion)
}

func (e *Engine) setProtocolVersion(version model.ProtocolCode, dest *model.ProtocolCode) model.Status {
	if _, found := tlsVersions[version]; !found {
		return model.StatusParam
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if status := e.configurableLocked(); status != model.StatusSuccess {
		return status
	}
	*dest = version
	return model.StatusSuccess
}

// BufferedReadSize implements model.Engine.
func (e *Engine) BufferedReadSize() (int, model.Status) {
	return len(e.plaintext), model.StatusSuccess
}

// SetSessionOption implements model.Engine.
func (e *Engine) SetSessionOption(option model.SessionOption, value bool) model.Status {
	if !isValidOption(option) {
		return model.StatusParam
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if status := e.configurableLocked(); status != model.StatusSuccess {
		return status
	}
	e.options[option] = value
	return model.StatusSuccess
}

// SessionOption implements model.Engine.
func (e *Engine) SessionOption(option model.SessionOption) (bool, model.Status) {
	if !isValidOption(option) {
		return false, model.StatusParam
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.options[option], model.StatusSuccess
}

func isValidOption(option model.SessionOption) bool {
	return option >= model.SessionOptionBreakOnServerAuth && option <= model.SessionOptionSendOneByteRecord
}

// Dispose implements model.Engine.
func (e *Engine) Dispose() {
	if e.disposed {
		return
	}
	e.disposed = true
	if e.pump != nil {
		e.pump.close()
	}
	e.plaintext = nil
	e.mu.Lock()
	e.peerCerts = nil
	e.mu.Unlock()
}
