package securetransport

import (
	"crypto/tls"
	"crypto/x509"
	"time"

	"github.com/google/uuid"
	"github.com/ooni/securetransport/internal/model"
	"github.com/ooni/securetransport/internal/tlsengine"
)

// Context is the session handle. It owns one engine and allows to configure
// it before calling [*Context.Handshake]. The configuration methods forward
// to the engine and only check for obviously invalid arguments.
type Context struct {
	ctype    ConnectionType
	consumed bool
	engine   model.Engine
	id       string
	logger   model.DebugLogger
	released bool
	side     ProtocolSide
}

// NewContext creates a Context using the crypto/tls engine and the system
// certificate pool. The logger is OPTIONAL.
func NewContext(logger model.DebugLogger, side ProtocolSide, ctype ConnectionType) (*Context, error) {
	return NewContextWithFactory(logger, &tlsengine.Factory{Logger: logger}, side, ctype)
}

// NewContextWithFactory is like NewContext but allocates the engine using factory.
func NewContextWithFactory(
	logger model.DebugLogger, factory model.EngineFactory, side ProtocolSide, ctype ConnectionType) (*Context, error) {
	engine, status := factory.NewEngine(model.ProtocolSide(side), model.ConnectionType(ctype))
	if status != model.StatusSuccess {
		return nil, newErrWrapper(ConfigureOperation, status, nil)
	}
	metricEnginesAlive.Inc()
	ctx := &Context{
		ctype:  ctype,
		engine: engine,
		id:     uuid.NewString(),
		logger: model.ValidLoggerOrDefault(logger),
		side:   side,
	}
	ctx.logger.Debugf("securetransport[%s]: new %s %s context", ctx.id, side, ctype)
	return ctx, nil
}

// ID returns the unique identifier we use in logs.
func (c *Context) ID() string {
	return c.id
}

// Side returns the side passed to the constructor.
func (c *Context) Side() ProtocolSide {
	return c.side
}

// ConnectionType returns the connection type passed to the constructor.
func (c *Context) ConnectionType() ConnectionType {
	return c.ctype
}

// Close releases the engine of a Context that was never used for a
// handshake. Once Handshake has been called, the engine belongs to the
// returned stream and Close does nothing.
func (c *Context) Close() error {
	if !c.consumed {
		c.release()
	}
	return nil
}

// release disposes of the engine exactly once.
func (c *Context) release() {
	if c.released {
		return
	}
	c.released = true
	c.engine.Dispose()
	metricEnginesAlive.Dec()
	c.logger.Debugf("securetransport[%s]: engine released", c.id)
}

// check maps a configuration status to an error.
func (c *Context) check(status model.Status) error {
	if status != model.StatusSuccess {
		return newErrWrapper(ConfigureOperation, status, nil)
	}
	return nil
}

// usable returns ErrContextClosed after the engine has been released.
func (c *Context) usable() error {
	if c.released {
		return ErrContextClosed
	}
	return nil
}

// configure runs fn if the engine is still alive.
func (c *Context) configure(fn func() model.Status) error {
	if err := c.usable(); err != nil {
		return err
	}
	return c.check(fn())
}

// query runs fn if the engine is still alive and returns its value.
func query[T any](c *Context, fn func() (T, model.Status)) (T, error) {
	var zero T
	if err := c.usable(); err != nil {
		return zero, err
	}
	value, status := fn()
	if err := c.check(status); err != nil {
		return zero, err
	}
	return value, nil
}

// SetPeerDomainName sets the name used for SNI and for verifying the
// server certificate. The empty string disables both.
func (c *Context) SetPeerDomainName(name string) error {
	return c.configure(func() model.Status {
		return c.engine.SetPeerDomainName(name)
	})
}

// PeerDomainName returns the peer domain name, which is empty by default.
func (c *Context) PeerDomainName() (string, error) {
	return query(c, c.engine.PeerDomainName)
}

// SetCertificate installs our identity and the certificates to send along
// with it. Clients may call this while the handshake is interrupted with
// [ClientCertRequested].
func (c *Context) SetCertificate(identity *tls.Certificate, chain []*x509.Certificate) error {
	if identity == nil {
		return newErrWrapper(ConfigureOperation, model.StatusParam, nil)
	}
	return c.configure(func() model.Status {
		return c.engine.SetCertificate(identity, chain)
	})
}

// SetPeerID sets the identifier used to resume sessions. It MUST NOT be empty.
func (c *Context) SetPeerID(peerID []byte) error {
	if len(peerID) <= 0 {
		return newErrWrapper(ConfigureOperation, model.StatusParam, nil)
	}
	return c.configure(func() model.Status {
		return c.engine.SetPeerID(peerID)
	})
}

// PeerID returns the resumption identifier or nil if none has been set.
func (c *Context) PeerID() ([]byte, error) {
	return query(c, c.engine.PeerID)
}

// SupportedCiphers returns the cipher suites the engine implements.
func (c *Context) SupportedCiphers() ([]CipherSuite, error) {
	ids, err := query(c, c.engine.SupportedCiphers)
	return ciphersFromIDs(ids), err
}

// EnabledCiphers returns the cipher suites we may negotiate.
func (c *Context) EnabledCiphers() ([]CipherSuite, error) {
	ids, err := query(c, c.engine.EnabledCiphers)
	return ciphersFromIDs(ids), err
}

// SetEnabledCiphers sets the cipher suites we may negotiate. The list
// MUST NOT be empty.
func (c *Context) SetEnabledCiphers(ciphers []CipherSuite) error {
	if len(ciphers) <= 0 {
		return newErrWrapper(ConfigureOperation, model.StatusParam, nil)
	}
	return c.configure(func() model.Status {
		return c.engine.SetEnabledCiphers(ciphersToIDs(ciphers))
	})
}

// NegotiatedCipher returns the suite selected by the handshake.
func (c *Context) NegotiatedCipher() (CipherSuite, error) {
	id, err := query(c, c.engine.NegotiatedCipher)
	return CipherSuite(id), err
}

// SetClientSideAuthenticate sets whether a server requests client certificates.
func (c *Context) SetClientSideAuthenticate(auth Authenticate) error {
	return c.configure(func() model.Status {
		return c.engine.SetClientSideAuthenticate(model.AuthenticateCode(auth))
	})
}

// ClientCertificateState returns the state of the client certificate exchange.
func (c *Context) ClientCertificateState() (ClientCertificateState, error) {
	code, err := query(c, c.engine.ClientCertificateState)
	if err != nil {
		return ClientCertStateNone, err
	}
	return clientCertStateFromCode(code), nil
}

// PeerTrust returns the trust object describing the peer certificate chain,
// which is typically evaluated while the handshake is interrupted with
// [ServerAuthCompleted]. It fails with [ErrIdleSession] before the first
// handshake step.
func (c *Context) PeerTrust() (model.Trust, error) {
	state, err := c.State()
	if err != nil {
		return nil, err
	}
	if state == SessionIdle {
		return nil, &ErrWrapper{
			Failure:    FailureBadRequest,
			Operation:  PeerTrustOperation,
			WrappedErr: ErrIdleSession,
		}
	}
	trust, status := c.engine.CopyPeerTrust()
	if status != model.StatusSuccess {
		return nil, newErrWrapper(PeerTrustOperation, status, nil)
	}
	return trust, nil
}

// State returns the session state.
func (c *Context) State() (SessionState, error) {
	code, err := query(c, c.engine.SessionState)
	if err != nil {
		return SessionAborted, err
	}
	return sessionStateFromCode(code), nil
}

// NegotiatedProtocolVersion returns the version selected by the handshake
// or [ProtocolUnknown] if the handshake has not completed.
func (c *Context) NegotiatedProtocolVersion() (Protocol, error) {
	return c.protocol(c.engine.NegotiatedProtocolVersion)
}

// ProtocolVersionMax returns the maximum version we may negotiate.
func (c *Context) ProtocolVersionMax() (Protocol, error) {
	return c.protocol(c.engine.ProtocolVersionMax)
}

// SetProtocolVersionMax sets the maximum version we may negotiate.
func (c *Context) SetProtocolVersionMax(version Protocol) error {
	return c.configure(func() model.Status {
		return c.engine.SetProtocolVersionMax(model.ProtocolCode(version))
	})
}

// ProtocolVersionMin returns the minimum version we may negotiate.
func (c *Context) ProtocolVersionMin() (Protocol, error) {
	return c.protocol(c.engine.ProtocolVersionMin)
}

// SetProtocolVersionMin sets the minimum version we may negotiate.
func (c *Context) SetProtocolVersionMin(version Protocol) error {
	return c.configure(func() model.Status {
		return c.engine.SetProtocolVersionMin(model.ProtocolCode(version))
	})
}

func (c *Context) protocol(fn func() (model.ProtocolCode, model.Status)) (Protocol, error) {
	code, err := query(c, fn)
	if err != nil {
		return ProtocolUnknown, err
	}
	return protocolFromCode(code), nil
}

// BufferedReadSize returns the number of plaintext bytes we can read
// without reading from the stream.
func (c *Context) BufferedReadSize() (int, error) {
	return query(c, c.engine.BufferedReadSize)
}

// logHandshakeDone logs and measures a terminated handshake.
func (c *Context) logHandshakeDone(t0 time.Time, err error) {
	elapsed := time.Since(t0)
	metricHandshakeDurationSeconds.Observe(elapsed.Seconds())
	c.logger.Debugf("securetransport[%s]: handshake... %s in %s", c.id, model.ErrorToStringOrOK(err), elapsed)
}
