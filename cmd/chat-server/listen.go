package main

import (
    "fmt"
    gochat "github.com/SirGFM/go-chat-room"
    tcp_conn "github.com/SirGFM/go-chat-room/tcp-conn"
    "io"
    "log"
    "net"
)

// Tag of the color used by the startup banner (the same cyan used by
// the terminal clients).
const bannerColor = 5

type server struct {
    // The TCP listener accepting chat clients.
    ln net.Listener

    // The chat room every accepted client connects to.
    room gochat.ChatRoom

    // max length of a text frame, in bytes.
    max int
}

// acceptLoop hand every accepted connection over to the chat room, each
// on its own goroutine.
//
// A failure on one client's connection only ends that client's session;
// the loop itself only stops when the listener is closed.
func (s *server) acceptLoop() {
    for {
        conn, err := s.ln.Accept()
        if err != nil {
            if s.room.IsClosed() {
                // The listener was closed by the shutdown path.
                return
            }
            log.Fatalf("Failed to accept: %+v", err)
        }

        log.Printf("%s - connected", conn.RemoteAddr())
        go s.room.ConnectAndWait(tcp_conn.New(conn, s.max))
    }
}

// Close the chat room and the listener, dropping every client.
func (s *server) Close() error {
    s.room.Close()
    if s.ln != nil {
        s.ln.Close()
        s.ln = nil
    }

    return nil
}

// runServer bind the listening socket and start accepting clients in a
// new goroutine.
//
// Failing to bind is fatal: the process can't serve anyone, so it exits
// with a non-zero status.
func runServer(args Args) io.Closer {
    ln, err := net.Listen("tcp", fmt.Sprintf("%s:%d", args.IP, args.Port))
    if err != nil {
        log.Fatalf("Failed to listen on %s:%d: %+v", args.IP, args.Port, err)
    }

    console := gochat.NewConsole()

    conf := gochat.GetDefaultRoomConf()
    conf.Logger = log.Default()
    conf.DebugLog = args.Debug
    conf.MaxTextLen = args.MaxTextLen
    conf.Console = console

    s := &server {
        ln: ln,
        room: gochat.NewRoomConf(conf),
        max: args.MaxTextLen,
    }

    console.PrintColored("\n\t  ====== Welcome to the chat-room ======   ", bannerColor)

    go func() {
        log.Printf("Waiting...")
        s.acceptLoop()
    } ()

    return s
}
