package http

import (
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/segmentio/encoding/json"
	"golang.org/x/net/websocket"
)

// HandleWatch streams index snapshots to a WebSocket client on the given
// interval, for debug visualizers that poll the grid occupancy.
func HandleWatch(source DebugSource, interval time.Duration) websocket.Server {
	return websocket.Server{
		Handler: func(conn *websocket.Conn) {
			defer conn.Close()

			ticker := time.NewTicker(interval)
			defer ticker.Stop()

			for range ticker.C {
				b, err := json.Marshal(source.DebugInfo())
				if err != nil {
					logs.Warn(errors.New("encoding debug info failed").Wrap(err))
					return
				}

				if err := websocket.Message.Send(conn, string(b)); err != nil {
					// client went away.
					return
				}
			}
		},
	}
}
