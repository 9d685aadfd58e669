package blackboard

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/shaply/automesh/shared"
)

// upgrader promotes an incoming HTTP request to a websocket connection for
// Serve. Origin checking is left permissive, matching the engine's other
// network-facing defaults; a deployment fronting this with a reverse proxy
// should tighten it.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

const (
	networkWriteInterval = 100 * time.Millisecond
	networkWriteTimeout  = 5 * time.Second
	networkPongTimeout   = 30 * time.Second
)

// Serve upgrades r to a websocket connection and runs the blackboard's
// network thread on it until the connection closes or ctx-equivalent
// shutdown occurs (the caller closes the underlying listener). It touches
// the buffers only through replaceIncoming/snapshotOutgoing, which hold a
// lock just for a map copy, and the tick path only ever TryLocks, so a slow
// or stalled client can never stall a tick. A BlackBoard built with
// usesNetwork false refuses the request with 404 and returns an error.
//
// Two goroutines are spawned: readPump decodes inbound {key,value} frames
// into the incoming buffer; writePump periodically snapshots the outgoing
// buffer and sends it as a single frame. Serve returns when writePump
// does: after readPump exits, or on a write error.
func (b *BlackBoard) Serve(w http.ResponseWriter, r *http.Request) error {
	if !b.usesNetwork {
		http.Error(w, "blackboard network endpoint is disabled", http.StatusNotFound)
		return fmt.Errorf("%w: blackboard built without network use", shared.ErrInvalidInput)
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		b.readPump(conn)
	}()
	b.writePump(conn, done)
	return nil
}

// wireMessage is the inbound frame readPump decodes: a single key/value
// update. Outbound frames are whole snapshot maps written by writePump.
type wireMessage struct {
	Key   string      `json:"key"`
	Value interface{} `json:"value"`
}

func (b *BlackBoard) readPump(conn *websocket.Conn) {
	conn.SetReadDeadline(time.Now().Add(networkPongTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(networkPongTimeout))
		return nil
	})

	for {
		var msg wireMessage
		if err := conn.ReadJSON(&msg); err != nil {
			shared.DebugError(err)
			return
		}
		b.replaceIncoming(map[string]interface{}{msg.Key: msg.Value})
	}
}

func (b *BlackBoard) writePump(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(networkWriteInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			snapshot := b.snapshotOutgoing()
			conn.SetWriteDeadline(time.Now().Add(networkWriteTimeout))
			if err := conn.WriteJSON(snapshot); err != nil {
				shared.DebugError(err)
				return
			}
		}
	}
}

// MarshalSnapshot renders the current outgoing buffer as JSON, useful for a
// non-websocket caller (e.g. httpapi's status endpoint) that wants a single
// point-in-time read without holding a persistent connection.
func (b *BlackBoard) MarshalSnapshot() ([]byte, error) {
	return json.Marshal(b.snapshotOutgoing())
}
