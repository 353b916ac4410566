package tlsengine

import (
	"encoding/binary"
	"net"
	"time"
)

// recordHeaderLen is the length of a TLS record header.
const recordHeaderLen = 5

// pumpConn is the net.Conn crypto/tls uses. It reads one record at a time.
type pumpConn struct {
	p    *pump
	rbuf []byte
}

var _ net.Conn = &pumpConn{}

// Read implements net.Conn.
func (c *pumpConn) Read(b []byte) (int, error) {
	if len(c.rbuf) <= 0 {
		record, err := c.readRecord()
		if err != nil {
			return 0, err
		}
		c.rbuf = record
	}
	n := copy(b, c.rbuf)
	c.rbuf = c.rbuf[n:]
	return n, nil
}

func (c *pumpConn) readRecord() ([]byte, error) {
	header := make([]byte, recordHeaderLen)
	if _, err := c.p.request(c.p.reads, header); err != nil {
		return nil, err
	}
	length := int(binary.BigEndian.Uint16(header[3:]))
	record := make([]byte, recordHeaderLen+length)
	copy(record, header)
	if length > 0 {
		if _, err := c.p.request(c.p.reads, record[recordHeaderLen:]); err != nil {
			return nil, err
		}
	}
	return record, nil
}

// Write implements net.Conn.
func (c *pumpConn) Write(b []byte) (int, error) {
	return c.p.request(c.p.writes, b)
}

// Close implements net.Conn.
func (c *pumpConn) Close() error {
	c.p.close()
	return nil
}

// LocalAddr implements net.Conn.
func (c *pumpConn) LocalAddr() net.Addr {
	return pumpAddr{}
}

// RemoteAddr implements net.Conn.
func (c *pumpConn) RemoteAddr() net.Addr {
	return pumpAddr{}
}

// SetDeadline implements net.Conn.
func (c *pumpConn) SetDeadline(t time.Time) error {
	return nil
}

// SetReadDeadline implements net.Conn.
func (c *pumpConn) SetReadDeadline(t time.Time) error {
	return nil
}

// SetWriteDeadline implements net.Conn.
func (c *pumpConn) SetWriteDeadline(t time.Time) error {
	return nil
}

type pumpAddr struct{}

func (pumpAddr) Network() string {
	return "securetransport"
}

func (pumpAddr) String() string {
	return "securetransport"
}
