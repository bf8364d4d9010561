package go_chat_room

import (
    "sync/atomic"
    "time"
)

// A simple mock connection, used to test the chat room without an actual
// network connection.
//
// Although the `room` and its handlers may use the `Conn` API to use
// this connection, tests must access this structure directly to simulate
// interactions.
//
// To simulate a text frame arriving from the client's remote endpoint,
// push it into `fromClient`:
//
//     c := NewMockConn().(*mockConn)
//     /* Attach it to the room. */
//     c.fromClient <- "the message"
//
// On the other hand, to simulate a client receiving an event, pop it
// from `fromServer`. Be sure to check that the channel isn't empty, to
// avoid causing tests to hang:
//
//     c := NewMockConn().(*mockConn)
//     /* Attach it to the room. */
//     select {
//     case <-c.fromServer:
//         /* Got an event back from the room. */
//     default:
//         t.Error("Room did not respond.")
//     }
type mockConn struct {
    // fromClient simulates incoming text frames (from the room's
    // perspective) from the client's remote endpoint. Therefore, tests
    // must push directly to this channel.
    fromClient chan string

    // fromServer simulates outgoing events (from the room's
    // perspective) to the client's remote endpoint. Therefore, tests
    // must read directly from this channel.
    fromServer chan Event

    // stop signals, by getting closed, that the connection should get
    // closed.
    stop chan struct{}

    // Whether the connection is currently running.
    running uint32
}

// isClosed check if the connection is closed.
func (mc *mockConn) isClosed() bool {
    return atomic.LoadUint32(&mc.running) == 0
}

// Close the connection.
//
// This can safely be called multiple times without any issue.
func (mc *mockConn) Close() error {
    if atomic.CompareAndSwapUint32(&mc.running, 1, 0) {
        close(mc.stop)
    }
    return nil
}

// Recv blocks until a new text frame was received.
func (mc *mockConn) Recv() (string, error) {
    var msg string

    select {
    case msg = <-mc.fromClient:
        return msg, nil
    case <-mc.stop:
        return msg, ConnEOF
    }
}

// Send one event to the remote client.
func (mc *mockConn) Send(ev Event) error {
    if mc.isClosed() {
        return ConnEOF
    }

    mc.fromServer <- ev

    return nil
}

// TestSend send a text frame from the client to the room.
func (mc *mockConn) TestSend(msg string) error {
    if mc.isClosed() {
        return ConnEOF
    }

    mc.fromClient <- msg
    return nil
}

// TestRecv wait for `timeout` to receive an event from the room.
func (mc *mockConn) TestRecv(timeout time.Duration) (Event, error) {
    select {
    case ev := <-mc.fromServer:
        return ev, nil
    case <-time.After(timeout):
        return Event{}, TestTimeout
    case <-mc.stop:
        return Event{}, ConnEOF
    }
}

// NewMockConn() create a dummy, mock connection that may be used in tests.
func NewMockConn() Conn {
    return &mockConn {
        fromClient: make(chan string),
        fromServer: make(chan Event, 100),
        stop: make(chan struct{}),
        running: 1,
    }
}
