package tlsengine

import (
	"crypto/x509"
	"testing"

	"github.com/ooni/securetransport/internal/model"
	"github.com/ooni/securetransport/internal/testingx"
)

func TestTrustEvaluate(t *testing.T) {
	cert := testingx.MustNewSelfSignedCertificate("www.example.com")
	other := testingx.MustNewSelfSignedCertificate("www.example.org")

	type testcase struct {
		name        string
		trust       *Trust
		anchors     []*x509.Certificate
		anchorsOnly *bool
		expect      model.TrustResult
		expectErr   bool
	}

	no := false

	testcases := []testcase{{
		name:      "without certificates",
		trust:     &Trust{usage: x509.ExtKeyUsageServerAuth},
		expect:    model.TrustResultInvalid,
		expectErr: true,
	}, {
		name: "with the right anchor",
		trust: &Trust{
			certs:   []*x509.Certificate{cert.Leaf},
			dnsName: "www.example.com",
			usage:   x509.ExtKeyUsageServerAuth,
		},
		anchors: []*x509.Certificate{cert.Leaf},
		expect:  model.TrustResultUnspecified,
	}, {
		name: "with the wrong anchor",
		trust: &Trust{
			certs:   []*x509.Certificate{cert.Leaf},
			dnsName: "www.example.com",
			usage:   x509.ExtKeyUsageServerAuth,
		},
		anchors: []*x509.Certificate{other.Leaf},
		expect:  model.TrustResultRecoverableTrustFailure,
	}, {
		name: "with the wrong anchor but including the roots",
		trust: &Trust{
			certs:   []*x509.Certificate{cert.Leaf},
			dnsName: "www.example.com",
			roots:   testingx.CertPool(cert),
			usage:   x509.ExtKeyUsageServerAuth,
		},
		anchors:     []*x509.Certificate{other.Leaf},
		anchorsOnly: &no,
		expect:      model.TrustResultUnspecified,
	}, {
		name: "with the right anchor and the wrong name",
		trust: &Trust{
			certs:   []*x509.Certificate{cert.Leaf},
			dnsName: "www.example.org",
			usage:   x509.ExtKeyUsageServerAuth,
		},
		anchors: []*x509.Certificate{cert.Leaf},
		expect:  model.TrustResultRecoverableTrustFailure,
	}, {
		name: "with custom roots",
		trust: &Trust{
			certs: []*x509.Certificate{cert.Leaf},
			roots: testingx.CertPool(cert),
			usage: x509.ExtKeyUsageClientAuth,
		},
		expect: model.TrustResultUnspecified,
	}}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.anchors != nil {
				if err := tc.trust.SetAnchorCertificates(tc.anchors); err != nil {
					t.Fatal(err)
				}
			}
			if tc.anchorsOnly != nil {
				if err := tc.trust.SetAnchorCertificatesOnly(*tc.anchorsOnly); err != nil {
					t.Fatal(err)
				}
			}
			result, err := tc.trust.Evaluate()
			if (err != nil) != tc.expectErr {
				t.Fatal("unexpected error", err)
			}
			if result != tc.expect {
				t.Fatal("expected", tc.expect, "got", result)
			}
		})
	}
}
