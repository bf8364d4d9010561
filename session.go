package go_chat_room

import (
    "fmt"
    "time"
)

// handler drives one client's session from join to leave.
//
// The session's life is: register on the room (becoming visible to
// broadcasts), receive the client's display name, announce the join,
// then broadcast every received line until the client either sends the
// exit command or its connection breaks. Both end the session the same
// way: departure announced, session removed, connection closed.
type handler struct {
    // room this session belongs to.
    room *room

    // The session's registry record, assigned on registration.
    self *session

    // The connection to the remote client. Owned by this handler.
    conn Conn
}

// run the session.
//
// An error on this session's connection ends only this session; the
// listener and every other session keep running.
func (h *handler) run() {
    conf := &h.room.conf

    h.self = h.room.clients.register(h.conn)
    if h.room.IsClosed() {
        // The room closed while this session was being attached, and
        // its shutdown may have missed the just-inserted record.
        if s, ok := h.room.clients.remove(h.self.id); ok {
            s.conn.Close()
        }
        return
    }
    if conf.DebugLog && conf.Logger != nil {
        conf.Logger.Printf("[DEBUG] go_chat_room/session: Session registered.\n\tid: %d",
                h.self.id)
    }

    // The first frame received from the client is its display name. The
    // name's content isn't validated: empty and duplicated names are
    // accepted, as the id is what actually identifies the session.
    name, err := h.conn.Recv()
    if err != nil {
        h.leave()
        return
    }
    name = h.bound(name)
    h.room.clients.rename(h.self.id, name)

    joined := name + " has joined"
    h.room.Broadcast(NewSystem(h.self.id, joined), h.self.id)
    conf.Console.PrintColored(joined, h.self.colorTag)
    if conf.Logger != nil {
        conf.Logger.Printf("[INFO] go_chat_room/session: Client joined.\n\tid: %d\n\tname: \"%s\"",
                h.self.id, name)
    }

    for {
        text, err := h.conn.Recv()
        if err != nil {
            break
        }

        // The exit command must be checked before any broadcast, so it's
        // never echoed to the other clients as a chat line.
        if text == ExitCommand {
            break
        }
        text = h.bound(text)

        h.room.Broadcast(NewChat(h.self.id, name, text), h.self.id)
        conf.Console.PrintChat(name, text, h.self.colorTag)
    }

    h.leave()
}

// bound truncate `txt` to the room's maximum text length.
//
// The fixed-frame transport already bounds whatever it receives, but
// other transports (the websocket ones, say) have no fixed frame size,
// so the room enforces the bound itself. Oversized texts are truncated,
// never rejected.
func (h *handler) bound(txt string) string {
    if max := h.room.conf.MaxTextLen; len(txt) > max {
        return txt[:max]
    }
    return txt
}

// leave remove the session from the room, announce its departure to the
// remaining clients and close the connection.
//
// leave is idempotent: if the session was already removed (by a
// concurrent disconnect, or by the room closing), nothing is announced
// and the connection isn't touched.
func (h *handler) leave() {
    s, ok := h.room.clients.remove(h.self.id)
    if !ok {
        return
    }

    elapsed := int(time.Since(s.joinedAt).Seconds())
    departed := fmt.Sprintf("%s has left the chat after %d minute(s) and %d second(s)",
            s.name, elapsed/60, elapsed%60)

    h.room.Broadcast(NewSystem(s.id, departed), s.id)
    h.room.conf.Console.PrintColored(departed, s.colorTag)
    if h.room.conf.Logger != nil {
        h.room.conf.Logger.Printf("[INFO] go_chat_room/session: Client left.\n\tid: %d\n\tname: \"%s\"\n\tconnected for: %ds",
                s.id, s.name, elapsed)
    }

    s.conn.Close()
}

// newHandler create a handler for a client connected through `conn`.
//
// The handler only starts interacting with the room once `h.run()` is
// called.
func newHandler(r *room, conn Conn) *handler {
    return &handler {
        room: r,
        conn: conn,
    }
}
