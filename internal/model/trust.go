package model

//
// Peer trust
//

import "crypto/x509"

// TrustResult is the outcome of evaluating a [Trust].
type TrustResult int

const (
	TrustResultInvalid = TrustResult(iota)
	TrustResultProceed
	TrustResultDeny
	TrustResultUnspecified
	TrustResultRecoverableTrustFailure
	TrustResultFatalTrustFailure
	TrustResultOtherError
)

// Success returns whether the evaluated chain should be trusted.
func (r TrustResult) Success() bool {
	return r == TrustResultProceed || r == TrustResultUnspecified
}

// Trust describes the certificate chain presented by a peer and allows to
// evaluate it out of band while the handshake is paused.
type Trust interface {
	// Certificates returns the chain presented by the peer, leaf first.
	Certificates() []*x509.Certificate

	// SetAnchorCertificates configures the roots used by Evaluate.
	SetAnchorCertificates(anchors []*x509.Certificate) error

	// SetAnchorCertificatesOnly controls whether Evaluate also uses the
	// default roots together with the anchors.
	SetAnchorCertificatesOnly(only bool) error

	// Evaluate evaluates the chain. The error is non-nil only when the
	// evaluation could not be performed at all.
	Evaluate() (TrustResult, error)
}
