package model

//
// Application streams
//

import "io"

// Stream is the duplex byte stream an application hands to the handshake. It
// may be blocking or non-blocking: a non-blocking stream reports not-ready
// conditions using errors that the translator recognizes as would-block.
type Stream interface {
	io.Reader
	io.Writer
}

// Flusher is optionally implemented by a [Stream] buffering writes.
type Flusher interface {
	Flush() error
}
