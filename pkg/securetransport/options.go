package securetransport

import "github.com/ooni/securetransport/internal/model"

func (c *Context) sessionOption(option model.SessionOption) (bool, error) {
	if err := c.usable(); err != nil {
		return false, err
	}
	value, status := c.engine.SessionOption(option)
	if err := c.check(status); err != nil {
		return false, err
	}
	return value, nil
}

func (c *Context) setSessionOption(option model.SessionOption, value bool) error {
	return c.configure(func() model.Status {
		return c.engine.SetSessionOption(option, value)
	})
}

// BreakOnServerAuth returns whether the handshake is interrupted with
// [ServerAuthCompleted] instead of verifying the server certificate.
func (c *Context) BreakOnServerAuth() (bool, error) {
	return c.sessionOption(model.SessionOptionBreakOnServerAuth)
}

// SetBreakOnServerAuth sets whether the handshake is interrupted with
// [ServerAuthCompleted] instead of verifying the server certificate.
func (c *Context) SetBreakOnServerAuth(value bool) error {
	return c.setSessionOption(model.SessionOptionBreakOnServerAuth, value)
}

// BreakOnCertRequested returns whether the handshake is interrupted with
// [ClientCertRequested] when the server requests a certificate.
func (c *Context) BreakOnCertRequested() (bool, error) {
	return c.sessionOption(model.SessionOptionBreakOnCertRequested)
}

// SetBreakOnCertRequested sets whether the handshake is interrupted with
// [ClientCertRequested] when the server requests a certificate.
func (c *Context) SetBreakOnCertRequested(value bool) error {
	return c.setSessionOption(model.SessionOptionBreakOnCertRequested, value)
}

// BreakOnClientAuth returns whether a server interrupts the handshake with
// [ServerAuthCompleted] instead of verifying the client certificate.
func (c *Context) BreakOnClientAuth() (bool, error) {
	return c.sessionOption(model.SessionOptionBreakOnClientAuth)
}

// SetBreakOnClientAuth sets whether a server interrupts the handshake with
// [ServerAuthCompleted] instead of verifying the client certificate.
func (c *Context) SetBreakOnClientAuth(value bool) error {
	return c.setSessionOption(model.SessionOptionBreakOnClientAuth, value)
}

// FalseStart returns whether TLS False Start is enabled.
func (c *Context) FalseStart() (bool, error) {
	return c.sessionOption(model.SessionOptionFalseStart)
}

// SetFalseStart sets whether TLS False Start is enabled. The default
// engine stores this option but crypto/tls does not implement False Start,
// so the setting has no effect on the handshake.
func (c *Context) SetFalseStart(value bool) error {
	return c.setSessionOption(model.SessionOptionFalseStart, value)
}

// SendOneByteRecord returns whether 1/n-1 record splitting is enabled.
func (c *Context) SendOneByteRecord() (bool, error) {
	return c.sessionOption(model.SessionOptionSendOneByteRecord)
}

// SetSendOneByteRecord sets whether 1/n-1 record splitting is enabled. The
// default engine stores this option but crypto/tls never splits records,
// so the setting has no effect on the wire.
func (c *Context) SetSendOneByteRecord(value bool) error {
	return c.setSessionOption(model.SessionOptionSendOneByteRecord, value)
}
