package securetransport

import (
	"errors"
	"io"

	"github.com/ooni/securetransport/internal/model"
	"github.com/ooni/securetransport/internal/runtimex"
)

// connection is the shim between the engine callbacks and the caller's
// stream. The engine never re-enters a callback, so there is no locking.
type connection struct {
	// err is the last error returned by the stream.
	err error

	// stream is the caller's stream.
	stream model.Stream
}

// read fills data from the stream.
func (c *connection) read(data []byte) (int, model.Status) {
	var total int
	for total < len(data) {
		count, err := c.stream.Read(data[total:])
		runtimex.PanicIfFalse(count >= 0 && count <= len(data)-total, "securetransport: stream returned an invalid count")
		total += count
		if err != nil {
			if total >= len(data) && errors.Is(err, io.EOF) {
				break
			}
			c.err = err
			return total, translateError(err)
		}
		if count == 0 {
			c.err = io.ErrNoProgress
			return total, model.StatusClosedNoNotify
		}
	}
	return total, model.StatusSuccess
}

// write drains data into the stream.
func (c *connection) write(data []byte) (int, model.Status) {
	var total int
	for total < len(data) {
		count, err := c.stream.Write(data[total:])
		runtimex.PanicIfFalse(count >= 0 && count <= len(data)-total, "securetransport: stream returned an invalid count")
		total += count
		if err != nil {
			c.err = err
			return total, translateError(err)
		}
		if count == 0 {
			c.err = io.ErrShortWrite
			return total, model.StatusClosedNoNotify
		}
	}
	return total, model.StatusSuccess
}

// takeError returns and clears the last stream error.
func (c *connection) takeError() error {
	err := c.err
	c.err = nil
	return err
}

// connectionRead is the [model.ReadFunc] we install into engines.
func connectionRead(ref model.ConnectionRef, data []byte) (int, model.Status) {
	return connections.lookup(ref).read(data)
}

// connectionWrite is the [model.WriteFunc] we install into engines.
func connectionWrite(ref model.ConnectionRef, data []byte) (int, model.Status) {
	return connections.lookup(ref).write(data)
}
