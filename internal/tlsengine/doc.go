// Package tlsengine implements [model.Engine] on top of crypto/tls.
//
// The engine runs each crypto/tls operation in its own goroutine and
// connects it to the caller through a pump: whenever the session needs
// to move ciphertext, it posts a request that the caller goroutine serves
// by invoking the installed [model.ReadFunc] or [model.WriteFunc]. Hence,
// callbacks only run while the caller is inside an Engine method.
//
// Ciphertext is requested one TLS record at a time (five bytes of header
// followed by the record body) so that a callback returning less than what
// was asked for always means the stream is not ready, closed, or broken.
package tlsengine
