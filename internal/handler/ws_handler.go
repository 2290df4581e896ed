/*
Package handler provides the HTTP handlers and routing setup for the chat hub.

This file contains the WebSocket endpoint: it upgrades the HTTP connection
and starts the client pumps. Session registration happens on the first
inbound join event, not at upgrade time.
*/
package handler

import (
	"net/http"

	"github.com/gorilla/websocket"

	"chathub/internal/app/hub"
	"chathub/internal/pkg/logx"
)

// HandleWebSocket creates an HTTP HandlerFunc that upgrades the connection
// and hands it to a hub client. The handler blocks in ReadPump for the life
// of the connection.
func HandleWebSocket(upgrader websocket.Upgrader, deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logx.Error(err, "Failed to upgrade connection to WebSocket")
			return
		}

		client := hub.NewClient(deps.Hub, conn, deps.Config.MaxPayloadBytes)

		go client.WritePump()

		logx.Info("WebSocket connection established", "remote_addr", conn.RemoteAddr().String())

		client.ReadPump()
	}
}
