package tlsengine

import (
	"crypto/tls"

	"github.com/ooni/securetransport/internal/model"
)

// supportedCiphers returns the IDs of the secure suites crypto/tls implements.
func supportedCiphers() []uint16 {
	var out []uint16
	for _, cs := range tls.CipherSuites() {
		out = append(out, cs.ID)
	}
	return out
}

func isSupportedCipher(id uint16) bool {
	for _, cs := range tls.CipherSuites() {
		if cs.ID == id {
			return true
		}
	}
	return false
}

// isTLS13Cipher returns true for the suites crypto/tls does not let us configure.
func isTLS13Cipher(id uint16) bool {
	switch id {
	case tls.TLS_AES_128_GCM_SHA256, tls.TLS_AES_256_GCM_SHA384, tls.TLS_CHACHA20_POLY1305_SHA256:
		return true
	default:
		return false
	}
}

// cipherSuitesForConfig returns the value for tls.Config.CipherSuites.
func cipherSuitesForConfig(enabled []uint16) (out []uint16) {
	for _, id := range enabled {
		if !isTLS13Cipher(id) {
			out = append(out, id)
		}
	}
	return
}

var tlsVersions = map[model.ProtocolCode]uint16{
	model.ProtocolTLS1:  tls.VersionTLS10,
	model.ProtocolTLS11: tls.VersionTLS11,
	model.ProtocolTLS12: tls.VersionTLS12,
	model.ProtocolTLS13: tls.VersionTLS13,
}

func protocolFromTLSVersion(version uint16) model.ProtocolCode {
	for code, value := range tlsVersions {
		if value == version {
			return code
		}
	}
	return model.ProtocolUnknown
}

func clientAuthType(auth model.AuthenticateCode) tls.ClientAuthType {
	switch auth {
	case model.AuthenticateAlways:
		return tls.RequireAnyClientCert
	case model.AuthenticateTry:
		return tls.RequestClientCert
	default:
		return tls.NoClientCert
	}
}
