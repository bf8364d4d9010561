// Command gobwas-ws-chat serves the same chat room over raw WebSocket
// connections, upgraded with github.com/gobwas/ws straight from the TCP
// listener (no net/http involved).
//
// Events are sent as single JSON text messages, in the same layout used
// by the gorilla-ws-conn package.
package main

import (
    "encoding/json"
    "flag"
    "fmt"
    gochat "github.com/SirGFM/go-chat-room"
    "github.com/gobwas/ws"
    "github.com/gobwas/ws/wsutil"
    "log"
    "net"
    "os"
    "os/signal"
    "sync"
    "sync/atomic"
)

// wireEvent is the JSON layout of an event on this transport.
type wireEvent struct {
    Kind uint8 `json:"kind"`
    Id int `json:"id"`
    Name string `json:"name,omitempty"`
    Text string `json:"text"`
}

// wsConn wrap an upgraded raw websocket connection into a gochat.Conn.
type wsConn struct {
    // The underlying network connection.
    conn net.Conn

    // sendMutex synchronizes write operations on `conn`, as pongs and
    // broadcast events may be written by different goroutines.
    sendMutex sync.Mutex

    // Whether the connection is currently active.
    active uint32
}

// Close the connection.
//
// This can safely be called multiple times (and from multiple
// goroutines), as it will only run on the first call.
func (c *wsConn) Close() error {
    if atomic.CompareAndSwapUint32(&c.active, 1, 0) {
        c.conn.Close()
    }

    return nil
}

// Recv blocks until a new text message was received, answering pings on
// the way.
func (c *wsConn) Recv() (string, error) {
    for {
        msgs, err := wsutil.ReadClientMessage(c.conn, nil)
        if err != nil {
            c.Close()
            return "", gochat.ConnEOF
        }

        for i := range msgs {
            data := &(msgs[i])
            switch data.OpCode {
            case ws.OpClose:
                c.Close()
                return "", gochat.ConnEOF
            case ws.OpPing:
                c.sendMutex.Lock()
                err = wsutil.WriteServerMessage(c.conn, ws.OpPong, data.Payload)
                c.sendMutex.Unlock()
                if err != nil {
                    c.Close()
                    return "", gochat.ConnEOF
                }
            case ws.OpText:
                return string(data.Payload), nil
            default:
                log.Printf("Ignoring message of type: %+v", data.OpCode)
            }
        }
    }
}

// Send one event as a single JSON text message.
func (c *wsConn) Send(ev gochat.Event) error {
    data, err := json.Marshal(wireEvent {
        Kind: uint8(ev.Kind),
        Id: ev.SenderID,
        Name: ev.SenderName,
        Text: ev.Text,
    })
    if err != nil {
        return err
    }

    c.sendMutex.Lock()
    defer c.sendMutex.Unlock()

    if atomic.LoadUint32(&c.active) == 0 {
        return gochat.ConnEOF
    }

    err = wsutil.WriteServerMessage(c.conn, ws.OpText, data)
    if err != nil {
        c.Close()
        return gochat.ConnEOF
    }

    return nil
}

type runningServer struct {
    // The TCP listener whose connections get upgraded to websockets.
    ln net.Listener

    // The chat room every upgraded client connects to.
    room gochat.ChatRoom
}

// handle accepted connections, upgrading each to a websocket and
// attaching it to the chat room.
func (s *runningServer) handle() {
    wsUpgrader := ws.Upgrader{}

    for {
        conn, err := s.ln.Accept()
        if err != nil {
            if s.room.IsClosed() {
                return
            }
            log.Fatalf("Failed to accept: %+v", err)
        }

        // Try to upgrade the connection to a websocket connection
        _, err = wsUpgrader.Upgrade(conn)
        if err != nil {
            log.Printf("Not a websocket! %+v", err)
            conn.Close()
            continue
        }

        log.Printf("%s - connected", conn.RemoteAddr())
        err = s.room.Connect(&wsConn {
            conn: conn,
            active: 1,
        })
        if err != nil {
            conn.Close()
        }
    }
}

// Close the chat room and halt the server, if still running.
func (s *runningServer) Close() {
    s.room.Close()
    if s.ln != nil {
        s.ln.Close()
        s.ln = nil
    }
}

func main() {
    var ip string
    var port int

    log.SetFlags(log.Lshortfile | log.Ldate | log.Ltime)

    flag.StringVar(&ip, "IP", "0.0.0.0", "IP on which the server will accept connections")
    flag.IntVar(&port, "Port", 8888, "Port on which the server will accept connections")
    flag.Parse()

    ln, err := net.Listen("tcp", fmt.Sprintf("%s:%d", ip, port))
    if err != nil {
        log.Fatalf("Failed to listen: %+v", err)
    }

    conf := gochat.GetDefaultRoomConf()
    conf.Logger = log.Default()
    conf.Console = gochat.NewConsole()

    srv := runningServer {
        ln: ln,
        room: gochat.NewRoomConf(conf),
    }

    intHndlr := make(chan os.Signal, 1)
    signal.Notify(intHndlr, os.Interrupt)

    go func() {
        <-intHndlr
        log.Printf("Exiting...")
        srv.Close()
    } ()

    log.Printf("Waiting...")
    srv.handle()
}
