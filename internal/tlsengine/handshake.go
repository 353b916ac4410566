package tlsengine

import (
	"crypto/tls"
	"crypto/x509"
	"time"

	"github.com/ooni/securetransport/internal/model"
)

// Handshake implements model.Engine.
func (e *Engine) Handshake() model.Status {
	if e.disposed || e.readFn == nil || e.writeFn == nil {
		return model.StatusBadReq
	}
	state, _ := e.SessionState()
	switch state {
	case model.SessionStateConnected:
		return model.StatusSuccess
	case model.SessionStateClosed, model.SessionStateAborted:
		return model.StatusBadReq
	case model.SessionStateIdle:
		e.startHandshake()
	}
	if e.pump.paused {
		e.pump.paused = false
		select {
		case e.pump.resume <- struct{}{}:
		case <-e.pump.closed:
		}
	}
	res, status := e.drive(e.hsOp, true, true)
	if status != model.StatusSuccess {
		return status
	}
	e.hsOp = nil
	if res.err != nil {
		e.setState(model.SessionStateAborted)
		status := statusFromError(res.err)
		e.logger.Debugf("tlsengine: handshake... %s (%s)", res.err.Error(), status)
		return status
	}
	cs := e.session.ConnectionState()
	e.mu.Lock()
	e.negotiatedCipher = cs.CipherSuite
	e.negotiatedVer = protocolFromTLSVersion(cs.Version)
	e.state = model.SessionStateConnected
	e.mu.Unlock()
	e.logger.Debugf(
		"tlsengine: handshake... ok {cipher=%s version=%s resumed=%v}",
		tls.CipherSuiteName(cs.CipherSuite),
		tls.VersionName(cs.Version),
		cs.DidResume,
	)
	return model.StatusSuccess
}

func (e *Engine) startHandshake() {
	e.pump = newPump()
	conn := &pumpConn{p: e.pump}
	config := e.newTLSConfig()
	if e.side == model.ClientSide {
		e.session = tls.Client(conn, config)
	} else {
		e.session = tls.Server(conn, config)
	}
	e.mu.Lock()
	e.state = model.SessionStateHandshake
	if e.side == model.ServerSide && e.clientAuth != model.AuthenticateNever {
		e.clientCertState = model.ClientCertRequested
	}
	e.mu.Unlock()
	session := e.session
	e.hsOp = e.pump.start(func() (int, error) {
		return 0, session.Handshake()
	})
}

func (e *Engine) newTLSConfig() *tls.Config {
	e.mu.Lock()
	defer e.mu.Unlock()
	config := &tls.Config{
		CipherSuites: cipherSuitesForConfig(e.enabledCiphers),
		// the chain is verified by verifyConnection
		InsecureSkipVerify: true,
		MaxVersion:         tlsVersions[e.maxVersion],
		MinVersion:         tlsVersions[e.minVersion],
		ServerName:         e.peerDomainName,
		Time:               time.Now,
		VerifyConnection:   e.verifyConnection,
	}
	if e.side == model.ServerSide {
		config.ClientAuth = clientAuthType(e.clientAuth)
		config.GetCertificate = e.getCertificate
		return config
	}
	config.GetClientCertificate = e.getClientCertificate
	if len(e.peerID) > 0 {
		config.ClientSessionCache = newPeerIDSessionCache(e.peerID)
	}
	return config
}

func (e *Engine) getCertificate(*tls.ClientHelloInfo) (*tls.Certificate, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.identity == nil {
		return nil, newStatusError(model.StatusBadConfiguration, errNoCertificate)
	}
	return e.certificateLocked(), nil
}

func (e *Engine) getClientCertificate(*tls.CertificateRequestInfo) (*tls.Certificate, error) {
	e.mu.Lock()
	e.clientCertState = model.ClientCertRequested
	shouldBreak := e.options[model.SessionOptionBreakOnCertRequested]
	e.mu.Unlock()
	if shouldBreak {
		if err := e.pump.pause(model.StatusClientCertRequested); err != nil {
			return nil, err
		}
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.identity == nil {
		return &tls.Certificate{}, nil
	}
	e.clientCertState = model.ClientCertSent
	return e.certificateLocked(), nil
}

// verifyConnection runs in the handshake goroutine once crypto/tls has
// received the peer certificates.
func (e *Engine) verifyConnection(cs tls.ConnectionState) error {
	e.mu.Lock()
	e.peerCerts = cs.PeerCertificates
	peerName := e.peerDomainName
	breakOnServerAuth := e.options[model.SessionOptionBreakOnServerAuth]
	breakOnClientAuth := e.options[model.SessionOptionBreakOnClientAuth]
	e.mu.Unlock()

	if e.side == model.ClientSide {
		if breakOnServerAuth {
			return e.pump.pause(model.StatusPeerAuthCompleted)
		}
		return verifyChain(cs.PeerCertificates, peerName, x509.ExtKeyUsageServerAuth, e.rootCAs)
	}

	if len(cs.PeerCertificates) <= 0 {
		return nil
	}
	if breakOnClientAuth {
		err := e.pump.pause(model.StatusPeerAuthCompleted)
		if err == nil {
			e.setClientCertState(model.ClientCertSent)
		}
		return err
	}
	if err := verifyChain(cs.PeerCertificates, "", x509.ExtKeyUsageClientAuth, e.clientCAs); err != nil {
		e.setClientCertState(model.ClientCertRejected)
		return err
	}
	e.setClientCertState(model.ClientCertSent)
	return nil
}

func (e *Engine) setClientCertState(state model.ClientCertStateCode) {
	e.mu.Lock()
	e.clientCertState = state
	e.mu.Unlock()
}

// verifyChain verifies certs using roots or the system pool when roots is nil.
func verifyChain(certs []*x509.Certificate, dnsName string, usage x509.ExtKeyUsage, roots *x509.CertPool) error {
	if len(certs) <= 0 {
		return newStatusError(model.StatusXCertChainInvalid, errNoPeerCertificates)
	}
	intermediates := x509.NewCertPool()
	for _, cert := range certs[1:] {
		intermediates.AddCert(cert)
	}
	opts := x509.VerifyOptions{
		DNSName:       dnsName,
		Intermediates: intermediates,
		KeyUsages:     []x509.ExtKeyUsage{usage},
		Roots:         roots,
	}
	if _, err := certs[0].Verify(opts); err != nil {
		return newStatusError(classifyVerifyError(err), err)
	}
	return nil
}
