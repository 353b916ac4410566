package testingx

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"math/big"
	"time"

	"github.com/ooni/securetransport/internal/runtimex"
)

// MustNewSelfSignedCertificate returns a self-signed certificate for name
// that is valid for servers and clients. The returned Leaf is also a CA,
// so it can be used as a trust anchor.
func MustNewSelfSignedCertificate(name string) *tls.Certificate {
	now := time.Now()
	return mustNewSelfSignedCertificate(name, now.Add(-time.Hour), now.Add(24*time.Hour))
}

// MustNewExpiredSelfSignedCertificate is like [MustNewSelfSignedCertificate]
// but the certificate expired yesterday.
func MustNewExpiredSelfSignedCertificate(name string) *tls.Certificate {
	now := time.Now()
	return mustNewSelfSignedCertificate(name, now.Add(-48*time.Hour), now.Add(-24*time.Hour))
}

func mustNewSelfSignedCertificate(name string, notBefore, notAfter time.Time) *tls.Certificate {
	key := runtimex.Try1(ecdsa.GenerateKey(elliptic.P256(), rand.Reader))
	serial := runtimex.Try1(rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 64)))
	template := &x509.Certificate{
		SerialNumber:          serial,
		Subject:               pkix.Name{CommonName: name},
		DNSNames:              []string{name},
		NotBefore:             notBefore,
		NotAfter:              notAfter,
		KeyUsage:              x509.KeyUsageDigitalSignature | x509.KeyUsageCertSign,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth, x509.ExtKeyUsageClientAuth},
		BasicConstraintsValid: true,
		IsCA:                  true,
	}
	der := runtimex.Try1(x509.CreateCertificate(rand.Reader, template, template, &key.PublicKey, key))
	leaf := runtimex.Try1(x509.ParseCertificate(der))
	return &tls.Certificate{
		Certificate: [][]byte{der},
		PrivateKey:  key,
		Leaf:        leaf,
	}
}

// CertPool returns a pool containing the leaf of the given certificates.
func CertPool(certs ...*tls.Certificate) *x509.CertPool {
	pool := x509.NewCertPool()
	for _, cert := range certs {
		pool.AddCert(cert.Leaf)
	}
	return pool
}
