package go_chat_room

import (
    "log"
)

// Number of colors in the default display palette.
const defPalette = 6

// RoomConf configure a chat room.
type RoomConf struct {
    // Logger used by the room to report events. If this is nil, no
    // message shall be logged!
    Logger *log.Logger

    // Whether debug messages should be logged.
    DebugLog bool

    // MaxTextLen bounds the name and the payload of every event. Longer
    // texts are silently truncated, never rejected.
    MaxTextLen int

    // Palette is the number of display colors. A session's color tag is
    // its id modulo this value.
    Palette int

    // Console used to echo chat activity on the server's own terminal.
    // If this is nil, nothing is echoed.
    Console *Console
}

// GetDefaultRoomConf retrieve the default configurations for a chat room.
func GetDefaultRoomConf() RoomConf {
    return RoomConf {
        MaxTextLen: MaxTextLen,
        Palette: defPalette,
    }
}
