// Command chat-client is the interactive terminal client for the chat
// room.
//
// It connects to the server over TCP, sends the user's display name as
// the handshake frame and then runs two loops: one reading chat lines
// from stdin and one decoding events received from the server, rendered
// in each sender's display color. Typing `#exit` (or hitting Ctrl+C)
// leaves the chat.
package main

import (
    "bufio"
    "flag"
    "fmt"
    gochat "github.com/SirGFM/go-chat-room"
    "github.com/fatih/color"
    "github.com/mattn/go-isatty"
    "log"
    "net"
    "os"
    "os/signal"
    "sync/atomic"
)

// palette mirrors the server's display palette, indexed by a sender's
// color tag.
var palette = []*color.Color {
    color.New(color.FgRed),
    color.New(color.FgGreen),
    color.New(color.FgYellow),
    color.New(color.FgBlue),
    color.New(color.FgMagenta),
    color.New(color.FgCyan),
}

// prompt used before every line typed by the user.
var prompt = color.New(color.FgGreen)

// banner printed right after the handshake.
var banner = color.New(color.FgCyan)

type client struct {
    // The connection to the chat server.
    conn net.Conn

    // in reads the user's input, one line at a time.
    in *bufio.Scanner

    // max length of a text frame, in bytes.
    max int

    // closing is set when this client started leaving on purpose, so
    // the receive loop doesn't report the closed socket as a failure.
    closing uint32
}

// leave notify the server and close the socket.
//
// This can safely be called multiple times (and from multiple
// goroutines): the extra exit frames are either discarded by the server
// or fail on the already closed socket, which is fine either way.
func (c *client) leave() {
    atomic.StoreUint32(&c.closing, 1)
    gochat.WriteText(c.conn, gochat.ExitCommand, c.max)
    c.conn.Close()
}

// sendLoop read lines from stdin and send each one as a text frame.
func (c *client) sendLoop() {
    for {
        prompt.Print("You: ")
        if !c.in.Scan() {
            // stdin was closed, so leave gracefully.
            c.leave()
            return
        }

        line := c.in.Text()
        err := gochat.WriteText(c.conn, line, c.max)
        if err != nil {
            return
        }

        if line == gochat.ExitCommand {
            atomic.StoreUint32(&c.closing, 1)
            c.conn.Close()
            return
        }
    }
}

// recvLoop decode events received from the server and print each one in
// its sender's color.
func (c *client) recvLoop() {
    for {
        ev, err := gochat.ReadEvent(c.conn, c.max)
        if err != nil {
            if atomic.LoadUint32(&c.closing) == 0 {
                fmt.Println("\nDisconnected from the server.")
            }
            return
        }

        // Overwrite the pending "You: " prompt before printing.
        fmt.Print("\r")

        col := palette[ev.SenderID%len(palette)]
        if ev.Kind == gochat.EventSystem {
            col.Println(ev.Text)
        } else {
            col.Print(ev.SenderName + " : ")
            fmt.Println(ev.Text)
        }

        prompt.Print("You: ")
    }
}

func main() {
    var addr string
    var max int

    log.SetFlags(0)

    flag.StringVar(&addr, "Addr", "127.0.0.1:29001", "Address of the chat server")
    flag.IntVar(&max, "MaxTextLen", gochat.MaxTextLen, "Maximum length of display names and chat lines, in bytes. Must match the server's")
    flag.Parse()

    if !isatty.IsTerminal(os.Stdout.Fd()) &&
            !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
        color.NoColor = true
    }

    conn, err := net.Dial("tcp", addr)
    if err != nil {
        log.Fatalf("Couldn't connect to %s: %+v", addr, err)
    }

    c := &client {
        conn: conn,
        in: bufio.NewScanner(os.Stdin),
        max: max,
    }

    // The handshake: the first frame sent must be the display name. The
    // server accepts anything, an empty line included.
    fmt.Print("Enter your name: ")
    if !c.in.Scan() {
        conn.Close()
        return
    }
    err = gochat.WriteText(conn, c.in.Text(), max)
    if err != nil {
        log.Fatalf("Couldn't send the name: %+v", err)
    }

    banner.Println("\n\t  ====== Welcome to the chat-room ======   ")

    // Ctrl+C leaves the chat gracefully. The signal handler only
    // notifies the client, which observes the closed socket at its next
    // read or write; no chat work happens on the handler itself.
    intHndlr := make(chan os.Signal, 1)
    signal.Notify(intHndlr, os.Interrupt)
    go func() {
        <-intHndlr
        c.leave()
    } ()

    go c.sendLoop()

    // The process lives for as long as the connection to the server.
    c.recvLoop()
}
