package model

//
// Engine status vocabulary
//

import "fmt"

// Status is the result code returned by every [Engine] operation. The numeric
// values follow Apple's Secure Transport so that traces from either world map
// one-to-one onto each other.
type Status int32

// Generic statuses.
const (
	StatusSuccess       = Status(0)
	StatusUnimplemented = Status(-4)
	StatusIO            = Status(-36)
	StatusParam         = Status(-50)
	StatusAllocate      = Status(-108)
	StatusBadReq        = Status(-909)
)

// TLS statuses.
const (
	StatusProtocol            = Status(-9800)
	StatusNegotiation         = Status(-9801)
	StatusFatalAlert          = Status(-9802)
	StatusWouldBlock          = Status(-9803)
	StatusSessionNotFound     = Status(-9804)
	StatusClosedGraceful      = Status(-9805)
	StatusClosedAbort         = Status(-9806)
	StatusXCertChainInvalid   = Status(-9807)
	StatusBadCert             = Status(-9808)
	StatusCrypto              = Status(-9809)
	StatusInternal            = Status(-9810)
	StatusUnknownRootCert     = Status(-9812)
	StatusNoRootCert          = Status(-9813)
	StatusCertExpired         = Status(-9814)
	StatusClosedNoNotify      = Status(-9816)
	StatusPeerHandshakeFail   = Status(-9824)
	StatusPeerAuthCompleted   = Status(-9841)
	StatusClientCertRequested = Status(-9842)
	StatusHostNameMismatch    = Status(-9843)
	StatusConnectionRefused   = Status(-9844)
	StatusBadConfiguration    = Status(-9848)
)

var statusName = map[Status]string{
	StatusSuccess:             "errSecSuccess",
	StatusUnimplemented:       "errSecUnimplemented",
	StatusIO:                  "errSecIO",
	StatusParam:               "errSecParam",
	StatusAllocate:            "errSecAllocate",
	StatusBadReq:              "errSecBadReq",
	StatusProtocol:            "errSSLProtocol",
	StatusNegotiation:         "errSSLNegotiation",
	StatusFatalAlert:          "errSSLFatalAlert",
	StatusWouldBlock:          "errSSLWouldBlock",
	StatusSessionNotFound:     "errSSLSessionNotFound",
	StatusClosedGraceful:      "errSSLClosedGraceful",
	StatusClosedAbort:         "errSSLClosedAbort",
	StatusXCertChainInvalid:   "errSSLXCertChainInvalid",
	StatusBadCert:             "errSSLBadCert",
	StatusCrypto:              "errSSLCrypto",
	StatusInternal:            "errSSLInternal",
	StatusUnknownRootCert:     "errSSLUnknownRootCert",
	StatusNoRootCert:          "errSSLNoRootCert",
	StatusCertExpired:         "errSSLCertExpired",
	StatusClosedNoNotify:      "errSSLClosedNoNotify",
	StatusPeerHandshakeFail:   "errSSLPeerHandshakeFail",
	StatusPeerAuthCompleted:   "errSSLPeerAuthCompleted",
	StatusClientCertRequested: "errSSLClientCertRequested",
	StatusHostNameMismatch:    "errSSLHostNameMismatch",
	StatusConnectionRefused:   "errSSLConnectionRefused",
	StatusBadConfiguration:    "errSSLBadConfiguration",
}

// String returns the symbolic name of the status or `status(ddd)` for
// values we don't know about.
func (s Status) String() string {
	if name, found := statusName[s]; found {
		return name
	}
	return fmt.Sprintf("status(%d)", int32(s))
}

// IsClosed returns whether the status indicates that the peer closed the session.
func (s Status) IsClosed() bool {
	switch s {
	case StatusClosedGraceful, StatusClosedAbort, StatusClosedNoNotify:
		return true
	default:
		return false
	}
}
