package go_chat_room

import (
    "sort"
    "sync"
    "time"
)

// Placeholder name of sessions that haven't sent their display name yet.
const anonymousName = "Anonymous"

// session is the server-side record of one connected client.
type session struct {
    // id uniquely identifies this session. Ids are assigned
    // monotonically and never reused while the process runs.
    id int

    // The session's display name. Guarded by the registry's mutex, as
    // it's set after the session already became broadcast-visible.
    name string

    // The connection to the remote client. Owned by the session's
    // handler; the broadcast engine only borrows it to write, and never
    // closes it.
    conn Conn

    // joinedAt is when this session was registered, used to report for
    // how long the client stayed connected.
    joinedAt time.Time

    // colorTag indexes this session's display color.
    colorTag int
}

// entry is the broadcast view of a session: its identity and the
// connection to write to. Both are immutable after registration, so
// entries may be used after the registry's lock was released.
type entry struct {
    id int
    conn Conn
}

// registry is the shared collection of live sessions.
//
// Every operation synchronizes on the registry's mutex, so they may be
// called by different goroutines concurrently. `snapshot` only holds the
// lock while copying the index, so network I/O never happens under the
// lock and a slow recipient doesn't block sessions joining or leaving.
type registry struct {
    // sessions currently connected, keyed by their id.
    sessions map[int]*session

    // nextId to be assigned.
    nextId int

    // palette size used to derive each session's color tag.
    palette int

    // mutex guards `sessions`, `nextId` and each session's `name`.
    mutex sync.Mutex
}

// register create a session for `conn`, assigning it the next id, its
// color tag and the placeholder display name.
//
// The session becomes visible to concurrent broadcasts as soon as this
// returns; there's no window in which a partially-constructed session
// may be observed, as the record is fully built before insertion.
func (r *registry) register(conn Conn) *session {
    r.mutex.Lock()
    defer r.mutex.Unlock()

    r.nextId++
    s := &session {
        id: r.nextId,
        name: anonymousName,
        conn: conn,
        joinedAt: time.Now(),
        colorTag: r.nextId % r.palette,
    }
    r.sessions[s.id] = s

    return s
}

// rename set the display name of the session `id`.
//
// Renaming an absent session does nothing: the session may legitimately
// have been removed while its first frame was in flight.
func (r *registry) rename(id int, name string) {
    r.mutex.Lock()
    defer r.mutex.Unlock()

    if s, ok := r.sessions[id]; ok {
        s.name = name
    }
}

// remove delete the session `id` and return its record, so the caller
// may compute for how long the client was connected.
//
// remove reports false if the session was already gone. Removal races
// between an explicit exit, a dropped connection and the room closing
// are expected and harmless, and whoever loses the race must skip the
// departure announcement.
//
// Closing the removed session's connection is left to the caller, after
// the removal completed.
func (r *registry) remove(id int) (*session, bool) {
    r.mutex.Lock()
    defer r.mutex.Unlock()

    s, ok := r.sessions[id]
    if ok {
        delete(r.sessions, id)
    }

    return s, ok
}

// snapshot copy the current index of sessions, ordered by id, so the
// caller may iterate over it without holding the registry's lock during
// network writes.
func (r *registry) snapshot() []entry {
    r.mutex.Lock()
    list := make([]entry, 0, len(r.sessions))
    for _, s := range r.sessions {
        list = append(list, entry{id: s.id, conn: s.conn})
    }
    r.mutex.Unlock()

    sort.Slice(list, func(i, j int) bool {
        return list[i].id < list[j].id
    })

    return list
}

// count how many sessions are connected.
func (r *registry) count() int {
    r.mutex.Lock()
    defer r.mutex.Unlock()

    return len(r.sessions)
}

// names retrieve the display name of every connected session. If `list`
// is supplied, the names are appended to that list, so be sure to empty
// it before calling this function.
func (r *registry) names(list []string) []string {
    r.mutex.Lock()
    defer r.mutex.Unlock()

    for _, s := range r.sessions {
        list = append(list, s.name)
    }

    return list
}

// newRegistry create an empty registry, deriving color tags from a
// palette of `palette` colors.
func newRegistry(palette int) *registry {
    return &registry {
        sessions: make(map[int]*session),
        palette: palette,
    }
}
