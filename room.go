package go_chat_room

import (
    "io"
    "sync/atomic"
)

// The public interface of a chat room.
type ChatRoom interface {
    io.Closer

    // Connect attach a new client to the room.
    //
    // Connect spawns a goroutine to handle messages received from the
    // client. To stop that goroutine and clean up its resources, close
    // the connection (or the room).
    //
    // The room does properly synchronize this function, so it may be
    // called by different goroutines concurrently.
    //
    // If `conn` is nil, then this function will panic!
    Connect(conn Conn) error

    // ConnectAndWait attach a new client to the room and block until the
    // client leaves.
    //
    // Differently from `Connect`, this function handles messages from
    // the remote client in the calling goroutine. This may be
    // advantageous if the listener already spawns a new goroutine to
    // handle each accepted connection.
    //
    // If `conn` is nil, then this function will panic!
    ConnectAndWait(conn Conn) error

    // Broadcast send `ev` to every connected client whose id differs
    // from `excludeId`. Use a negative `excludeId` to send the event to
    // everyone.
    Broadcast(ev Event, excludeId int)

    // Count how many clients are currently connected.
    Count() int

    // Names retrieve the display name of every connected client. If
    // `list` is supplied, the names are appended to that list, so be
    // sure to empty it before calling this function.
    Names(list []string) []string

    // IsClosed check if the room is closed.
    IsClosed() bool
}

// room implements ChatRoom on top of a session registry.
type room struct {
    // clients currently connected to this room.
    clients *registry

    // conf used to create this room.
    conf RoomConf

    // Whether the room is currently running.
    running uint32
}

// IsClosed check if the room is closed.
//
// The room reports itself as being closed as soon as `Close()` was first
// called, regardless of whether every session finished running.
func (r *room) IsClosed() bool {
    return atomic.LoadUint32(&r.running) == 0
}

// Count how many clients are currently connected.
func (r *room) Count() int {
    return r.clients.count()
}

// Names retrieve the display name of every connected client.
func (r *room) Names(list []string) []string {
    return r.clients.names(list)
}

// Broadcast send `ev` to every connected client whose id differs from
// `excludeId`.
//
// The registry is only locked while its index is copied; the writes
// themselves happen on that snapshot, outside the lock.
//
// A failed write is logged and skipped, never aborting delivery to the
// remaining recipients: the failure belongs to that recipient's own
// session, whose read loop will notice the broken connection and run the
// usual departure path.
func (r *room) Broadcast(ev Event, excludeId int) {
    if r.conf.DebugLog && r.conf.Logger != nil {
        r.conf.Logger.Printf("[DEBUG] go_chat_room/room: Broadcasting...\n\tevent: \"%s\"\n\texcluding: %d",
                ev, excludeId)
    }

    for _, e := range r.clients.snapshot() {
        if e.id == excludeId {
            continue
        }

        err := e.conn.Send(ev)
        if err == ConnEOF {
            if r.conf.DebugLog && r.conf.Logger != nil {
                r.conf.Logger.Printf("[DEBUG] go_chat_room/room: Connection to a client was closed.\n\trecipient: %d",
                        e.id)
            }
        } else if err != nil && r.conf.Logger != nil {
            r.conf.Logger.Printf("[ERROR] go_chat_room/room: Couldn't send an event.\n\trecipient: %d\n\terror: %+v",
                    e.id, err)
        }
    }
}

// Connect attach `conn` to the room, spawning a goroutine to handle its
// messages.
//
// See `ChatRoom.Connect` for a more complete description.
func (r *room) Connect(conn Conn) error {
    if conn == nil {
        panic("go_chat_room/room Connect: nil conn")
    }
    if r.IsClosed() {
        return RoomClosed
    }

    h := newHandler(r, conn)
    go h.run()

    return nil
}

// ConnectAndWait attach `conn` to the room and handle its messages on
// the calling goroutine, blocking until the client leaves.
//
// See `ChatRoom.ConnectAndWait` for a more complete description.
func (r *room) ConnectAndWait(conn Conn) error {
    if conn == nil {
        panic("go_chat_room/room ConnectAndWait: nil conn")
    }
    if r.IsClosed() {
        return RoomClosed
    }

    h := newHandler(r, conn)
    h.run()

    return nil
}

// Close the room, removing every client and closing their connections.
//
// Sessions block reading from their connection and have no other wake-up
// point, so shutdown force-closes every registered connection instead of
// waiting: each handler's read then fails, and its departure path finds
// the session already removed and skips the announcement.
//
// This can safely be called multiple times (and from multiple
// goroutines), as it will only run on the first call.
func (r *room) Close() error {
    if atomic.CompareAndSwapUint32(&r.running, 1, 0) {
        if r.conf.Logger != nil {
            r.conf.Logger.Printf("[INFO] go_chat_room/room: Closing the room...\n\tclients: %d",
                    r.clients.count())
        }

        for _, e := range r.clients.snapshot() {
            if s, ok := r.clients.remove(e.id); ok {
                s.conn.Close()
            }
        }
    }

    return nil
}

// NewRoomConf create a new chat room configured by `conf`.
//
// Zeroed fields on `conf` fall back to their defaults, so a partially
// filled configuration is fine.
func NewRoomConf(conf RoomConf) ChatRoom {
    if conf.MaxTextLen <= 0 {
        conf.MaxTextLen = MaxTextLen
    }
    if conf.Palette <= 0 {
        conf.Palette = defPalette
    }

    return &room {
        clients: newRegistry(conf.Palette),
        conf: conf,
        running: 1,
    }
}

// NewRoom create a new chat room with the default configurations.
func NewRoom() ChatRoom {
    return NewRoomConf(GetDefaultRoomConf())
}
