// Package securetransport runs a TLS session over a caller-supplied byte
// stream by driving a callback-based [model.Engine].
//
// The caller creates a [*Context], configures it, and calls
// [*Context.Handshake] with a stream. The handshake either completes and
// returns a [*Stream], fails with an [*ErrWrapper], or pauses with a
// [*HandshakeInterrupted] error carrying a [*MidHandshakeStream] that can be
// resumed once the caller has evaluated the peer trust, installed a client
// certificate, or waited for the stream to become ready.
//
// A Context, and the streams derived from it, MUST NOT be used from
// multiple goroutines concurrently.
package securetransport
