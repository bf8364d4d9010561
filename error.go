package go_chat_room

// Error type for this package.
type ChatError uint

const (
    // The connection was closed by its remote endpoint.
    ConnEOF ChatError = iota
    // The room was closed and doesn't accept new connections.
    RoomClosed
    // A test timed out waiting for a message.
    TestTimeout
)

func (c ChatError) Error() string {
    switch c {
    case ConnEOF:
        return "Connection closed by the remote endpoint"
    case RoomClosed:
        return "The chat room was closed"
    case TestTimeout:
        return "Timed out waiting for a message"
    default:
        return "Unknown error"
    }
}
