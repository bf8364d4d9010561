/*
Package go_chat_room implements a connection-agnostic, many-to-many chat
room.

The chat room is divided into three components:

 - `ChatRoom`: The interface for the room itself
 - `Conn`: A connection to the remote client
 - `Event`: One chat happening (a chat line or a system announcement)

Internally, there are also two unexported components: the `registry`, the
shared collection of live sessions, and the `handler`, which drives one
client's session from join to leave. Neither is ever exported by the API.

The first step to start a chat room is to instantiate it through `NewRoom`
or `NewRoomConf`. The last one should be the preferred variant, as it's
the one that allows the most customization:

    conf := go_chat_room.GetDefaultRoomConf()
    // Modify 'conf' as desired
    room := go_chat_room.NewRoomConf(conf)

A `ChatRoom` by itself doesn't listen on anything. Accepting connections
is left entirely to the caller, which must wrap whatever transport it uses
into the `Conn` interface and hand it over to the room. `tcp-conn`
implements `Conn` over a raw stream connection, using the room's
fixed-frame wire protocol, and `gorilla-ws-conn` implements it over a
WebSocket connection. `conn_test.go` implements `mockConn`, which uses
channels to send and receive messages and may be used in tests.

A client is attached to the room by calling either `Connect`, which
spawns a goroutine to wait for messages from the client, or
`ConnectAndWait`, which blocks until the `Conn` gets closed. This second
option may be useful if the listener already spawns a goroutine to handle
each accepted connection.

    var conn go_chat_room.Conn
    err := room.Connect(conn)
    if err != nil {
        // Handle the error
    }

From this point onward, the room assigns the client a unique numeric id,
which doubles as its display color tag, and waits for the client's first
frame, which must be its display name. Every subsequent frame is a chat
line, broadcast to every other connected client as an `Event` carrying
the sender's name, id and text. Sending the exact text `#exit` leaves the
room; so does simply closing the connection. Either way, the remaining
clients receive an announcement telling for how long the client stayed
connected.

The room never echoes an event back to its sender, and a client that
joins late never receives lines sent before it joined.

Closing the `ChatRoom` force-closes every registered connection: sessions
block reading from their connection and have no other wake-up point, so
waiting for them to finish could take forever.
*/
package go_chat_room
