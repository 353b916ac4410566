package main

import (
	"bufio"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"time"

	"github.com/ooni/securetransport/internal/model"
	"github.com/ooni/securetransport/pkg/securetransport"
)

// defaultTimeout is the default value of the --timeout flag.
const defaultTimeout = 30 * time.Second

// errUntrusted indicates that the server chain did not pass the evaluation.
var errUntrusted = errors.New("stclient: the server certificate is not trusted")

// client is the stclient state. The zero value is invalid; the fields
// are set by the root command.
type client struct {
	caFile   string
	endpoint string
	logger   model.Logger
	output   io.Writer
	sni      string
	timeout  time.Duration
}

func (c *client) run() error {
	sni := c.sni
	if sni == "" {
		host, _, err := net.SplitHostPort(c.endpoint)
		if err != nil {
			return err
		}
		sni = host
	}

	var anchors []*x509.Certificate
	if c.caFile != "" {
		data, err := os.ReadFile(c.caFile)
		if err != nil {
			return err
		}
		anchors, err = parseCertificates(data)
		if err != nil {
			return err
		}
	}

	ctx, err := securetransport.NewContext(c.logger, securetransport.ClientSide, securetransport.StreamType)
	if err != nil {
		return err
	}
	defer ctx.Close()
	if err := ctx.SetPeerDomainName(sni); err != nil {
		return err
	}
	if len(anchors) > 0 {
		if err := ctx.SetBreakOnServerAuth(true); err != nil {
			return err
		}
	}

	c.logger.Infof("stclient: connect %s...", c.endpoint)
	conn, err := net.DialTimeout("tcp", c.endpoint, c.timeout)
	if err != nil {
		return err
	}
	_ = conn.SetDeadline(time.Now().Add(c.timeout))

	stream, err := c.handshake(ctx, conn, anchors)
	if err != nil {
		return err
	}
	defer stream.Close()

	version, _ := ctx.NegotiatedProtocolVersion()
	cipher, _ := ctx.NegotiatedCipher()
	c.logger.Infof("stclient: connected {version=%s cipher=%s}", version, cipher)

	request := fmt.Sprintf("GET / HTTP/1.0\r\nHost: %s\r\n\r\n", sni)
	if _, err := stream.Write([]byte(request)); err != nil {
		return err
	}
	line, err := bufio.NewReader(stream).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	fmt.Fprint(c.output, line)
	return nil
}

// handshake runs the handshake and evaluates the server chain using the
// anchors when the handshake stops after the server authentication.
func (c *client) handshake(
	ctx *securetransport.Context, conn net.Conn, anchors []*x509.Certificate) (*securetransport.Stream, error) {
	stream, err := ctx.Handshake(conn)
	var interrupted *securetransport.HandshakeInterrupted
	if !errors.As(err, &interrupted) {
		var setup *securetransport.SetupError
		if errors.As(err, &setup) {
			conn.Close()
		}
		return stream, err
	}
	mid := interrupted.Stream
	if interrupted.Reason != securetransport.ServerAuthCompleted {
		mid.Close()
		return nil, err
	}
	trust, err := mid.Context().PeerTrust()
	if err != nil {
		mid.Close()
		return nil, err
	}
	if err := trust.SetAnchorCertificates(anchors); err != nil {
		mid.Close()
		return nil, err
	}
	result, err := trust.Evaluate()
	if err != nil {
		mid.Close()
		return nil, err
	}
	if !result.Success() {
		mid.Close()
		return nil, errUntrusted
	}
	c.logger.Debug("stclient: the server certificate is trusted")
	return mid.Handshake()
}

// parseCertificates parses all the CERTIFICATE blocks in data.
func parseCertificates(data []byte) ([]*x509.Certificate, error) {
	var certs []*x509.Certificate
	for {
		var block *pem.Block
		block, data = pem.Decode(data)
		if block == nil {
			break
		}
		if block.Type != "CERTIFICATE" {
			continue
		}
		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return nil, err
		}
		certs = append(certs, cert)
	}
	if len(certs) <= 0 {
		return nil, errors.New("stclient: no certificates found")
	}
	return certs, nil
}
