package tlsengine

import (
	"crypto/tls"
	"encoding/hex"
)

// clientSessions is shared by all the client engines of this process.
var clientSessions = tls.NewLRUClientSessionCache(0)

// peerIDSessionCache stores sessions under the caller-provided peer ID rather
// than under the server name, so sessions are only resumed for the same ID.
type peerIDSessionCache struct {
	key string
}

var _ tls.ClientSessionCache = &peerIDSessionCache{}

func newPeerIDSessionCache(peerID []byte) *peerIDSessionCache {
	return &peerIDSessionCache{key: "peerid:" + hex.EncodeToString(peerID)}
}

// Get implements tls.ClientSessionCache.
func (c *peerIDSessionCache) Get(string) (*tls.ClientSessionState, bool) {
	return clientSessions.Get(c.key)
}

// Put implements tls.ClientSessionCache.
func (c *peerIDSessionCache) Put(_ string, cs *tls.ClientSessionState) {
	clientSessions.Put(c.key, cs)
}
