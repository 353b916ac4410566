package testingx

import (
	"bufio"
	"context"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"net"
	"net/textproto"
	"sync"

	"github.com/apex/log"
	"github.com/ooni/securetransport/internal/runtimex"
)

// TLSHandler handles TLS connections. A handler should first handle the TLS handshake
// in the GetCertificate method. If GetCertificate did not return an error, and the
// handler implements [TLSConnHandler], its HandleTLSConn method will be called after
// the handshake to handle the lifecycle of the TLS conn itself.
type TLSHandler interface {
	// GetCertificate handles the TLS handshake.
	GetCertificate(ctx context.Context, tcpConn net.Conn, chi *tls.ClientHelloInfo) (*tls.Certificate, error)
}

// TLSConnHandler is the interface implemented by handlers that want to handle
// and manage the established TLS connection after the handshake.
type TLSConnHandler interface {
	HandleTLSConn(conn *tls.Conn)
}

// TLSConfigurer is the interface implemented by handlers that need to
// modify the server configuration, e.g., to request client certificates.
type TLSConfigurer interface {
	ConfigureTLS(config *tls.Config)
}

// TLSServer is a TLS server listening on the loopback interface.
type TLSServer struct {
	// cancel unblocks background goroutines blocked on the context contolling their lifecycle.
	cancel context.CancelFunc

	// closeOnce provides "once" semantics when closing.
	closeOnce sync.Once

	// endpoint is the endpoint where we're listening.
	endpoint string

	// handler contains the TLSHandler.
	handler TLSHandler

	// listener is the listening socket controller.
	listener net.Listener

	// ticketKey is shared by all the connections so that clients can resume sessions.
	ticketKey [32]byte

	// wg waits until the listening loop has finished running.
	wg sync.WaitGroup
}

// MustNewTLSServer creates and starts a new TLSServer that executes
// the given action during the TLS handshake.
func MustNewTLSServer(handler TLSHandler) *TLSServer {
	listener := runtimex.Try1(net.ListenTCP("tcp", &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1)}))
	ctx, cancel := context.WithCancel(context.Background())
	srv := &TLSServer{
		cancel:   cancel,
		endpoint: listener.Addr().String(),
		handler:  handler,
		listener: listener,
	}
	runtimex.Try1(rand.Read(srv.ticketKey[:]))
	srv.wg.Add(1)
	go srv.mainloop(ctx)
	return srv
}

// Endpoint returns the endpoint where the server is listening.
func (p *TLSServer) Endpoint() string {
	return p.endpoint
}

// Close closes this server as soon as possible.
func (p *TLSServer) Close() (err error) {
	p.closeOnce.Do(func() {
		err = p.listener.Close()
		p.cancel()
		p.wg.Wait()
	})
	return
}

func (p *TLSServer) mainloop(ctx context.Context) {
	defer p.wg.Done()
	for {
		conn, err := p.listener.Accept()
		if errors.Is(err, net.ErrClosed) {
			return
		}
		if err != nil {
			log.Warnf("TLSServer.mainloop: %s", err.Error())
			continue
		}
		go p.handle(ctx, conn)
	}
}

func (p *TLSServer) handle(ctx context.Context, tcpConn net.Conn) {
	defer runtimex.CatchLogAndIgnorePanic(log.Log, "TLSServer.handle")
	defer tcpConn.Close()

	tlsConfig := &tls.Config{
		GetCertificate: func(chi *tls.ClientHelloInfo) (*tls.Certificate, error) {
			return p.handler.GetCertificate(ctx, tcpConn, chi)
		},
		SessionTicketKey: p.ticketKey,
	}
	if c, good := p.handler.(TLSConfigurer); good {
		c.ConfigureTLS(tlsConfig)
	}

	tlsConn := tls.Server(tcpConn, tlsConfig)
	if err := tlsConn.HandshakeContext(ctx); err != nil {
		return
	}
	defer tlsConn.Close()

	if h, good := p.handler.(TLSConnHandler); good {
		h.HandleTLSConn(tlsConn)
	}
}

const (
	// TLSAlertInternalError is the alter sent on internal errors
	TLSAlertInternalError = byte(80)

	// TLSAlertUnrecognizedName is the alert sent when the name is not recognized
	TLSAlertUnrecognizedName = byte(112)
)

// TLSHandlerSendAlert sends the alert given as argument to the client.
func TLSHandlerSendAlert(alert byte) TLSHandler {
	return &tlsHandlerSendAlert{alert}
}

type tlsHandlerSendAlert struct {
	alert byte
}

// GetCertificate implements TLSHandler.
func (thx *tlsHandlerSendAlert) GetCertificate(
	ctx context.Context, tcpConn net.Conn, chi *tls.ClientHelloInfo) (*tls.Certificate, error) {
	alertdata := []byte{
		21, // alert
		3,  // version[0]
		3,  // version[1]
		0,  // length[0]
		2,  // length[1]
		2,  // fatal
		thx.alert,
	}
	_, _ = tcpConn.Write(alertdata)
	_ = tcpConn.Close() // close connection to avoid the caller trying to send another alert
	return nil, errors.New("internal error")
}

// TLSHandlerEOF closes the connection during the handshake.
func TLSHandlerEOF() TLSHandler {
	return &tlsHandlerEOF{}
}

type tlsHandlerEOF struct{}

// GetCertificate implements TLSHandler.
func (*tlsHandlerEOF) GetCertificate(ctx context.Context, tcpConn net.Conn, chi *tls.ClientHelloInfo) (*tls.Certificate, error) {
	tcpConn.Close() // close the TCP connection to force EOF during the handshake
	return nil, errors.New("internal error")
}

// TLSHandlerReset resets the connection during the handshake.
func TLSHandlerReset() TLSHandler {
	return &tlsHandlerReset{}
}

type tlsHandlerReset struct{}

// GetCertificate implements TLSHandler.
func (*tlsHandlerReset) GetCertificate(ctx context.Context, tcpConn net.Conn, chi *tls.ClientHelloInfo) (*tls.Certificate, error) {
	if tc, good := tcpConn.(*net.TCPConn); good {
		_ = tc.SetLinger(0)
	}
	tcpConn.Close() // closing with zero linger sends a RST
	return nil, errors.New("internal error")
}

// HTTPResponse is the response written by [TLSHandlerHTTPResponder].
var HTTPResponse = []byte("HTTP/1.0 200 OK\r\nContent-Type: text/plain\r\nContent-Length: 14\r\n\r\nHello, world!\n")

// TLSHandlerHTTPResponder returns a [TLSHandler] that completes the handshake
// using cert, reads an HTTP request header, and writes [HTTPResponse].
func TLSHandlerHTTPResponder(cert *tls.Certificate) TLSHandler {
	return &tlsHandlerHTTPResponder{cert}
}

var _ TLSConnHandler = &tlsHandlerHTTPResponder{}

type tlsHandlerHTTPResponder struct {
	cert *tls.Certificate
}

// GetCertificate implements TLSHandler.
func (thx *tlsHandlerHTTPResponder) GetCertificate(
	ctx context.Context, tcpConn net.Conn, chi *tls.ClientHelloInfo) (*tls.Certificate, error) {
	return thx.cert, nil
}

// HandleTLSConn implements TLSConnHandler.
func (thx *tlsHandlerHTTPResponder) HandleTLSConn(conn *tls.Conn) {
	reader := textproto.NewReader(bufio.NewReader(conn))
	if _, err := reader.ReadLine(); err != nil {
		return
	}
	if _, err := reader.ReadMIMEHeader(); err != nil {
		return
	}
	_, _ = conn.Write(HTTPResponse)
}

// TLSHandlerRequireClientCert is like [TLSHandlerHTTPResponder] but also
// requires the client to present a certificate signed by clientCAs.
func TLSHandlerRequireClientCert(cert *tls.Certificate, clientCAs *x509.CertPool) TLSHandler {
	return &tlsHandlerRequireClientCert{tlsHandlerHTTPResponder{cert}, clientCAs}
}

var _ TLSConfigurer = &tlsHandlerRequireClientCert{}

type tlsHandlerRequireClientCert struct {
	tlsHandlerHTTPResponder
	clientCAs *x509.CertPool
}

// ConfigureTLS implements TLSConfigurer.
func (thx *tlsHandlerRequireClientCert) ConfigureTLS(config *tls.Config) {
	config.ClientAuth = tls.RequireAndVerifyClientCert
	config.ClientCAs = thx.clientCAs
}
