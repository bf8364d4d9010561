package go_chat_room

import (
    "io"
)

// Conn is a generic interface for exchanging chat events with a remote
// client.
type Conn interface {
    io.Closer

    // Recv blocks until a new text frame was received from the remote
    // client: first its display name, then one chat line at a time.
    Recv() (string, error)

    // Send one event to the remote client.
    //
    // Send may be called by different goroutines concurrently, as the
    // broadcast engine borrows the connection to write from whichever
    // session originated the event. Implementations must synchronize
    // their writes.
    Send(ev Event) error
}
