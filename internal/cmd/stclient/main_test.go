package main

import (
	"bytes"
	"encoding/pem"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/apex/log"
	"github.com/ooni/securetransport/internal/testingx"
)

func writeCertFile(t *testing.T, der []byte) string {
	path := filepath.Join(t.TempDir(), "ca.pem")
	data := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRootCommand(t *testing.T) {
	cert := testingx.MustNewSelfSignedCertificate("www.example.com")
	server := testingx.MustNewTLSServer(testingx.TLSHandlerHTTPResponder(cert))
	defer server.Close()

	output := &bytes.Buffer{}
	cmd := newRootCommand()
	cmd.SetArgs([]string{"-v", "--sni", "www.example.com", "--ca-file", writeCertFile(t, cert.Certificate[0]), server.Endpoint()})
	cmd.SetOut(output)
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if output.String() != "HTTP/1.0 200 OK\r\n" {
		t.Fatalf("unexpected output %q", output.String())
	}
}

func TestClientRun(t *testing.T) {
	cert := testingx.MustNewSelfSignedCertificate("www.example.com")
	server := testingx.MustNewTLSServer(testingx.TLSHandlerHTTPResponder(cert))
	defer server.Close()

	t.Run("with the wrong anchors", func(t *testing.T) {
		other := testingx.MustNewSelfSignedCertificate("www.example.com")
		c := &client{
			caFile:   writeCertFile(t, other.Certificate[0]),
			endpoint: server.Endpoint(),
			logger:   log.Log,
			output:   &bytes.Buffer{},
			sni:      "www.example.com",
			timeout:  10 * time.Second,
		}
		if err := c.run(); !errors.Is(err, errUntrusted) {
			t.Fatal("unexpected error", err)
		}
	})

	t.Run("without anchors we use the system roots", func(t *testing.T) {
		c := &client{
			endpoint: server.Endpoint(),
			logger:   log.Log,
			output:   &bytes.Buffer{},
			sni:      "www.example.com",
			timeout:  10 * time.Second,
		}
		if err := c.run(); err == nil {
			t.Fatal("expected an error")
		}
	})

	t.Run("with an invalid CA file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "ca.pem")
		if err := os.WriteFile(path, []byte("nothing here"), 0600); err != nil {
			t.Fatal(err)
		}
		c := &client{caFile: path, endpoint: server.Endpoint(), logger: log.Log, timeout: time.Second}
		if err := c.run(); err == nil {
			t.Fatal("expected an error")
		}
	})
}
