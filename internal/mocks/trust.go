package mocks

import (
	"crypto/x509"

	"github.com/ooni/securetransport/internal/model"
)

// Trust allows mocking a model.Trust.
type Trust struct {
	MockCertificates              func() []*x509.Certificate
	MockSetAnchorCertificates     func(anchors []*x509.Certificate) error
	MockSetAnchorCertificatesOnly func(only bool) error
	MockEvaluate                  func() (model.TrustResult, error)
}

var _ model.Trust = &Trust{}

// Certificates calls MockCertificates.
func (t *Trust) Certificates() []*x509.Certificate {
	return t.MockCertificates()
}

// SetAnchorCertificates calls MockSetAnchorCertificates.
func (t *Trust) SetAnchorCertificates(anchors []*x509.Certificate) error {
	return t.MockSetAnchorCertificates(anchors)
}

// SetAnchorCertificatesOnly calls MockSetAnchorCertificatesOnly.
func (t *Trust) SetAnchorCertificatesOnly(only bool) error {
	return t.MockSetAnchorCertificatesOnly(only)
}

// Evaluate calls MockEvaluate.
func (t *Trust) Evaluate() (model.TrustResult, error) {
	return t.MockEvaluate()
}
