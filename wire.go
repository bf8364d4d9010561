package go_chat_room

import (
    "bytes"
    "encoding/binary"
    "io"
)

// MaxTextLen is the default size, in bytes, of a text frame on the wire.
const MaxTextLen = 200

// NullName is the sentinel sent on the name frame of system events. A
// receiver must special-case it when rendering, as it marks that the
// following id and payload frames don't belong to a user message.
const NullName = "#NULL"

// ExitCommand is the payload a client sends to leave the chat. It's
// compared for exact equality, and checked before any broadcast happens.
const ExitCommand = "#exit"

// One logical event travels as three consecutive frames: the sender's
// name (or `NullName`), the sender's id and the payload. Text frames are
// fixed-size and NUL-padded; the id frame is a 4-byte little-endian
// integer. The fixed sizes are the framing: there's no delimiter nor
// length prefix on the wire.
//
// A partial or zero-length read doesn't mean a malformed frame, it means
// the remote endpoint is gone. Every failure below maps to `ConnEOF` so
// callers may run their usual departure path.

// WriteText send `text` as one fixed-size text frame of `max` bytes.
//
// Longer texts are silently truncated; the frame's last byte stays NUL so
// the remote end always finds a terminator.
func WriteText(w io.Writer, text string, max int) error {
    buf := make([]byte, max)
    copy(buf[:max-1], text)

    _, err := w.Write(buf)
    if err != nil {
        return ConnEOF
    }

    return nil
}

// ReadText receive one fixed-size text frame of `max` bytes and strip its
// NUL padding.
func ReadText(r io.Reader, max int) (string, error) {
    buf := make([]byte, max)

    _, err := io.ReadFull(r, buf)
    if err != nil {
        return "", ConnEOF
    }

    if i := bytes.IndexByte(buf, 0); i >= 0 {
        buf = buf[:i]
    }
    return string(buf), nil
}

// WriteID send `id` as a fixed-width, little-endian integer frame.
func WriteID(w io.Writer, id int) error {
    var buf [4]byte

    binary.LittleEndian.PutUint32(buf[:], uint32(id))

    _, err := w.Write(buf[:])
    if err != nil {
        return ConnEOF
    }

    return nil
}

// ReadID receive one fixed-width integer frame.
func ReadID(r io.Reader) (int, error) {
    var buf [4]byte

    _, err := io.ReadFull(r, buf[:])
    if err != nil {
        return 0, ConnEOF
    }

    return int(int32(binary.LittleEndian.Uint32(buf[:]))), nil
}

// WriteEvent send one event as its three frames: name (or the `NullName`
// sentinel, for system events), id and payload.
//
// The caller must guarantee that no other event is written to `w`
// concurrently, otherwise frames from different events could interleave.
func WriteEvent(w io.Writer, ev Event, max int) error {
    name := ev.SenderName
    if ev.Kind == EventSystem {
        name = NullName
    }

    err := WriteText(w, name, max)
    if err == nil {
        err = WriteID(w, ev.SenderID)
    }
    if err == nil {
        err = WriteText(w, ev.Text, max)
    }

    return err
}

// ReadEvent receive the three frames of one event.
func ReadEvent(r io.Reader, max int) (Event, error) {
    var ev Event

    name, err := ReadText(r, max)
    if err != nil {
        return ev, err
    }

    id, err := ReadID(r)
    if err != nil {
        return ev, err
    }

    text, err := ReadText(r, max)
    if err != nil {
        return ev, err
    }

    if name == NullName {
        ev = NewSystem(id, text)
    } else {
        ev = NewChat(id, name, text)
    }

    return ev, nil
}
