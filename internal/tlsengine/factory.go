package tlsengine

import (
	"crypto/x509"

	"github.com/ooni/securetransport/internal/model"
)

// Factory creates engines. The zero value is ready to use and verifies peers
// using the system certificate pool.
type Factory struct {
	// ClientCAs is the OPTIONAL pool servers use to verify client
	// certificates. When nil, we use the system pool.
	ClientCAs *x509.CertPool

	// Logger is the OPTIONAL logger.
	Logger model.DebugLogger

	// RootCAs is the OPTIONAL pool clients use to verify servers. When
	// nil, we use the system pool.
	RootCAs *x509.CertPool
}

var _ model.EngineFactory = &Factory{}

// NewEngine implements model.EngineFactory. Datagram sessions are not
// supported and yield [model.StatusUnimplemented].
func (f *Factory) NewEngine(side model.ProtocolSide, ctype model.ConnectionType) (model.Engine, model.Status) {
	if side != model.ServerSide && side != model.ClientSide {
		return nil, model.StatusParam
	}
	switch ctype {
	case model.StreamType:
		return newEngine(f, side), model.StatusSuccess
	case model.DatagramType:
		return nil, model.StatusUnimplemented
	default:
		return nil, model.StatusParam
	}
}
