package go_chat_room

import (
    "fmt"
    "github.com/fatih/color"
    "github.com/mattn/go-isatty"
    "os"
    "sync"
)

// defColors is the default display palette. These are the same six ANSI
// colors used by the terminal clients, in the same order, so a session
// shows up in the same color on the server's console and on every
// client's terminal.
var defColors = []*color.Color {
    color.New(color.FgRed),
    color.New(color.FgGreen),
    color.New(color.FgYellow),
    color.New(color.FgBlue),
    color.New(color.FgMagenta),
    color.New(color.FgCyan),
}

// Console serialize concurrent prints to the server's terminal.
//
// Sessions print announcements and chat lines from their own goroutines,
// so each logical print must be a single mutual-exclusion region,
// otherwise lines from different sessions would interleave character by
// character.
type Console struct {
    // mutex guards every print as a single unit.
    mutex sync.Mutex

    // palette of colors, indexed by a session's color tag.
    palette []*color.Color
}

// Print `msg` on its own line, with no coloring.
//
// Calling this on a nil Console does nothing.
func (c *Console) Print(msg string) {
    if c == nil {
        return
    }

    c.mutex.Lock()
    fmt.Println(msg)
    c.mutex.Unlock()
}

// PrintColored print `msg` on its own line, in the color of the tag
// `tag`.
//
// Calling this on a nil Console does nothing.
func (c *Console) PrintColored(msg string, tag int) {
    if c == nil {
        return
    }

    c.mutex.Lock()
    c.palette[tag%len(c.palette)].Println(msg)
    c.mutex.Unlock()
}

// PrintChat print one chat line, coloring only the sender's name.
//
// Calling this on a nil Console does nothing.
func (c *Console) PrintChat(name, text string, tag int) {
    if c == nil {
        return
    }

    c.mutex.Lock()
    c.palette[tag%len(c.palette)].Print(name + " : ")
    fmt.Println(text)
    c.mutex.Unlock()
}

// NewConsole create a console on the process's stdout, with the default
// color palette.
//
// Coloring is disabled if stdout isn't a terminal, so piping the server's
// output to a file doesn't litter it with escape codes.
func NewConsole() *Console {
    if !isatty.IsTerminal(os.Stdout.Fd()) &&
            !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
        color.NoColor = true
    }

    return &Console {
        palette: defColors,
    }
}
