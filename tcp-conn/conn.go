// Package tcp_conn implements the Conn interface from
// https://github.com/SirGFM/go-chat-room over a raw stream connection,
// using the chat room's fixed-frame wire protocol.
//
// This is the transport spoken by the terminal clients: each
// inbound frame is a fixed-size text frame, and each outbound event is
// the usual name/id/payload triple.
package tcp_conn

import (
    gochat "github.com/SirGFM/go-chat-room"
    "net"
    "sync"
    "sync/atomic"
)

// streamConn wrap a stream connection into a gochat.Conn.
type streamConn struct {
    // The underlying stream connection.
    conn net.Conn

    // max length of a text frame, in bytes.
    max int

    // sendMutex synchronizes write operations on `conn`, so the three
    // frames of an event are never interleaved with another event's.
    sendMutex sync.Mutex

    // Whether the connection is currently active.
    active uint32
}

// Close the connection.
//
// This can safely be called multiple times (and from multiple
// goroutines), as it will only run on the first call.
func (c *streamConn) Close() error {
    if atomic.CompareAndSwapUint32(&c.active, 1, 0) {
        c.conn.Close()
    }

    return nil
}

// Recv blocks until a new text frame was received.
//
// Any read failure, a partial read included, means the remote endpoint
// is gone, so the connection closes itself and reports `ConnEOF`.
func (c *streamConn) Recv() (string, error) {
    txt, err := gochat.ReadText(c.conn, c.max)
    if err != nil {
        c.Close()
        return "", gochat.ConnEOF
    }

    return txt, nil
}

// Send one event as its three wire frames.
func (c *streamConn) Send(ev gochat.Event) error {
    c.sendMutex.Lock()
    defer c.sendMutex.Unlock()

    if atomic.LoadUint32(&c.active) == 0 {
        return gochat.ConnEOF
    }

    err := gochat.WriteEvent(c.conn, ev, c.max)
    if err != nil {
        c.Close()
        return gochat.ConnEOF
    }

    return nil
}

// New wrap `conn` into a chat connection with `max` bytes per text
// frame. If `max` isn't positive, the protocol's default is used.
//
// The returned connection owns `conn`, closing it on `Close()`.
func New(conn net.Conn, max int) gochat.Conn {
    if max <= 0 {
        max = gochat.MaxTextLen
    }

    return &streamConn {
        conn: conn,
        max: max,
        active: 1,
    }
}
