package go_chat_room

import (
    "bytes"
    "strings"
    "testing"
)

// TestTextFrame check that text frames have the exact fixed size and
// that longer texts are truncated instead of rejected.
func TestTextFrame(t *testing.T) {
    var buf bytes.Buffer

    err := WriteText(&buf, "hello", MaxTextLen)
    if err != nil {
        t.Fatalf("Couldn't write the frame: %+v", err)
    }
    if want, got := MaxTextLen, buf.Len(); want != got {
        t.Errorf("Invalid frame size: expected '%d' but got '%d'", want, got)
    }

    txt, err := ReadText(&buf, MaxTextLen)
    if err != nil {
        t.Fatalf("Couldn't read the frame: %+v", err)
    }
    if want, got := "hello", txt; want != got {
        t.Errorf("Invalid text retrieved: expected '%s' but got '%s'", want, got)
    }

    // A text longer than the frame must be silently bounded, keeping the
    // frame NUL-terminated.
    long := strings.Repeat("a", MaxTextLen+50)
    err = WriteText(&buf, long, MaxTextLen)
    if err != nil {
        t.Fatalf("Couldn't write the oversized frame: %+v", err)
    }
    if want, got := MaxTextLen, buf.Len(); want != got {
        t.Errorf("Invalid frame size: expected '%d' but got '%d'", want, got)
    }

    txt, err = ReadText(&buf, MaxTextLen)
    if err != nil {
        t.Fatalf("Couldn't read the oversized frame: %+v", err)
    }
    if want, got := long[:MaxTextLen-1], txt; want != got {
        t.Errorf("Invalid truncation: expected %d bytes but got %d", len(want), len(got))
    }
}

// TestIDFrame check the id frame's width and byte order.
func TestIDFrame(t *testing.T) {
    var buf bytes.Buffer

    err := WriteID(&buf, 0x01020304)
    if err != nil {
        t.Fatalf("Couldn't write the frame: %+v", err)
    }

    want := []byte{0x04, 0x03, 0x02, 0x01}
    if got := buf.Bytes(); !bytes.Equal(want, got) {
        t.Errorf("Invalid encoding: expected '%+v' but got '%+v'", want, got)
    }

    id, err := ReadID(&buf)
    if err != nil {
        t.Fatalf("Couldn't read the frame: %+v", err)
    }
    if want, got := 0x01020304, id; want != got {
        t.Errorf("Invalid id retrieved: expected '%d' but got '%d'", want, got)
    }
}

// TestEventFrames check that one event travels as its three frames and
// that system events carry the sentinel on the name frame.
func TestEventFrames(t *testing.T) {
    var buf bytes.Buffer

    err := WriteEvent(&buf, NewChat(3, "alice", "hello"), MaxTextLen)
    if err != nil {
        t.Fatalf("Couldn't write the event: %+v", err)
    }
    if want, got := 2*MaxTextLen+4, buf.Len(); want != got {
        t.Errorf("Invalid event size: expected '%d' but got '%d'", want, got)
    }

    ev, err := ReadEvent(&buf, MaxTextLen)
    if err != nil {
        t.Fatalf("Couldn't read the event: %+v", err)
    }
    if want, got := EventChat, ev.Kind; want != got {
        t.Errorf("Invalid kind: expected '%d' but got '%d'", want, got)
    } else if want, got := "alice", ev.SenderName; want != got {
        t.Errorf("Invalid name: expected '%s' but got '%s'", want, got)
    } else if want, got := 3, ev.SenderID; want != got {
        t.Errorf("Invalid id: expected '%d' but got '%d'", want, got)
    } else if want, got := "hello", ev.Text; want != got {
        t.Errorf("Invalid text: expected '%s' but got '%s'", want, got)
    }

    // System events replace the name frame by the sentinel.
    err = WriteEvent(&buf, NewSystem(7, "someone has joined"), MaxTextLen)
    if err != nil {
        t.Fatalf("Couldn't write the event: %+v", err)
    }
    if want, got := NullName, string(bytes.TrimRight(buf.Bytes()[:MaxTextLen], "\x00")); want != got {
        t.Errorf("Invalid name frame: expected '%s' but got '%s'", want, got)
    }

    ev, err = ReadEvent(&buf, MaxTextLen)
    if err != nil {
        t.Fatalf("Couldn't read the event: %+v", err)
    }
    if want, got := EventSystem, ev.Kind; want != got {
        t.Errorf("Invalid kind: expected '%d' but got '%d'", want, got)
    } else if len(ev.SenderName) != 0 {
        t.Errorf("Invalid name: expected an empty name but got '%s'", ev.SenderName)
    } else if want, got := 7, ev.SenderID; want != got {
        t.Errorf("Invalid id: expected '%d' but got '%d'", want, got)
    }
}

// TestShortRead check that a partial read is reported as a closed
// connection, not as a malformed frame.
func TestShortRead(t *testing.T) {
    buf := bytes.NewBufferString("too short")

    _, err := ReadText(buf, MaxTextLen)
    if err == nil {
        t.Error("Successfully read a truncated frame")
    } else if got, ok := err.(ChatError); !ok {
        t.Errorf("Invalid error! Expected a 'ChatError' but got '%+v'", err)
    } else if want := ConnEOF; want != got {
        t.Errorf("Invalid error! Expected '%+v' but got '%+v'", want, got)
    }

    // An event truncated after its name frame reports the same.
    var half bytes.Buffer
    WriteText(&half, "alice", MaxTextLen)

    _, err = ReadEvent(&half, MaxTextLen)
    if err == nil {
        t.Error("Successfully read a truncated event")
    } else if want, got := ConnEOF, err; want != got {
        t.Errorf("Invalid error! Expected '%+v' but got '%+v'", want, got)
    }
}
