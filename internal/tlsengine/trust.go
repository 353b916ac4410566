package tlsengine

import (
	"crypto/x509"
	"slices"

	"github.com/ooni/securetransport/internal/model"
)

// Trust is the [model.Trust] returned by [*Engine.CopyPeerTrust].
type Trust struct {
	anchors     []*x509.Certificate
	anchorsOnly bool
	certs       []*x509.Certificate
	dnsName     string
	roots       *x509.CertPool
	usage       x509.ExtKeyUsage
}

var _ model.Trust = &Trust{}

// Certificates implements model.Trust.
func (t *Trust) Certificates() []*x509.Certificate {
	return slices.Clone(t.certs)
}

// SetAnchorCertificates implements model.Trust. Like Secure Transport, this
// also makes the anchors the only trusted roots.
func (t *Trust) SetAnchorCertificates(anchors []*x509.Certificate) error {
	t.anchors = slices.Clone(anchors)
	t.anchorsOnly = true
	return nil
}

// SetAnchorCertificatesOnly implements model.Trust.
func (t *Trust) SetAnchorCertificatesOnly(only bool) error {
	t.anchorsOnly = only
	return nil
}

// Evaluate implements model.Trust.
func (t *Trust) Evaluate() (model.TrustResult, error) {
	if len(t.certs) <= 0 {
		return model.TrustResultInvalid, errNoPeerCertificates
	}
	roots, err := t.rootPool()
	if err != nil {
		return model.TrustResultOtherError, err
	}
	if err := verifyChain(t.certs, t.dnsName, t.usage, roots); err != nil {
		return model.TrustResultRecoverableTrustFailure, nil
	}
	return model.TrustResultUnspecified, nil
}

func (t *Trust) rootPool() (*x509.CertPool, error) {
	var pool *x509.CertPool
	switch {
	case len(t.anchors) > 0 && t.anchorsOnly:
		pool = x509.NewCertPool()
	case t.roots != nil:
		pool = t.roots.Clone()
	default:
		system, err := x509.SystemCertPool()
		if err != nil {
			return nil, err
		}
		pool = system
	}
	for _, cert := range t.anchors {
		pool.AddCert(cert)
	}
	return pool, nil
}
