package go_chat_room

// EventKind distinguishes chat lines sent by users from server-generated
// announcements.
type EventKind uint8

const (
    // EventChat is a regular chat line sent by a named user.
    EventChat EventKind = iota
    // EventSystem is a server-generated announcement (someone joined,
    // someone left...). On the wire, its name frame carries the
    // `NullName` sentinel instead of a username.
    EventSystem
)

// Event is one logical chat happening, a chat line or a system
// announcement, alongside the identity of the session it originated
// from.
//
// The sender's id doubles as its color tag: receivers derive the display
// color as `SenderID` modulo the size of their palette. System events
// keep the id of the session they are about, so receivers may still
// color the announcement accordingly.
type Event struct {
    // Kind of this event.
    Kind EventKind

    // SenderID of the session this event originated from.
    SenderID int

    // SenderName is the sender's display name. Empty for system events.
    SenderName string

    // Text is the chat line or the announcement.
    Text string
}

// NewChat create a chat event for the line `text`, sent by the session
// `id` named `name`.
func NewChat(id int, name, text string) Event {
    return Event {
        Kind: EventChat,
        SenderID: id,
        SenderName: name,
        Text: text,
    }
}

// NewSystem create a system announcement about the session `id`.
func NewSystem(id int, text string) Event {
    return Event {
        Kind: EventSystem,
        SenderID: id,
        Text: text,
    }
}

// String format the event the way it should be displayed to a user.
func (ev Event) String() string {
    if ev.Kind == EventSystem || len(ev.SenderName) == 0 {
        return ev.Text
    }

    return ev.SenderName + " : " + ev.Text
}
