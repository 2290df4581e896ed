/*
Package hub contains the core logic of the chat hub.

This file defines the Client struct, the transport adapter for one WebSocket
connection. It runs the read and write pumps, decodes inbound envelopes into
hub operations, and implements the Sender contract the hub core uses to
deliver events. The hub core never touches the raw socket.
*/
package hub

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"chathub/internal/pkg/logx"
)

const (
	// timeout duration for writing to the WebSocket connection.
	writeWait = 10 * time.Second

	// maximum time allowed for the server to wait for a Pong message from the client.
	pongWait = 60 * time.Second

	// frequency at which the server sends a Ping message.
	pingPeriod = (pongWait * 9) / 10

	// sendQueueSize is the capacity of the per-client outbound queue.
	sendQueueSize = 256
)

// Client adapts one WebSocket connection to the hub. It owns the connection
// exclusively: ReadPump is the only reader, WritePump the only writer.
type Client struct {
	// hub receives the operations decoded from this connection.
	hub *Hub

	// underlying WebSocket connection object.
	conn *websocket.Conn

	// sessionID is empty until the join event registers the session.
	// Written and read only by ReadPump.
	sessionID string

	// maxPayload caps the size of a single inbound frame.
	maxPayload int64

	// send queues marshaled frames for WritePump, preserving push order.
	send chan []byte

	// done signals WritePump to terminate; closed at most once.
	done      chan struct{}
	closeOnce sync.Once

	// structured logger with connection context.
	logger zerolog.Logger
}

// NewClient constructs a Client for an upgraded connection.
func NewClient(h *Hub, conn *websocket.Conn, maxPayload int64) *Client {
	clientLogger := logx.Logger().With().
		Str("component", "Client").
		Str("remote_addr", conn.RemoteAddr().String()).
		Logger()

	return &Client{
		hub:        h,
		conn:       conn,
		maxPayload: maxPayload,
		send:       make(chan []byte, sendQueueSize),
		done:       make(chan struct{}),
		logger:     clientLogger,
	}
}

// Send implements the Sender contract. It marshals the envelope and enqueues
// it without blocking; a full queue or a closed connection drops the frame.
func (c *Client) Send(event string, data any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		c.logger.Error().Err(err).Str("event", event).Msg("Error marshaling event data")
		return err
	}

	frame, err := json.Marshal(Envelope{Event: event, Data: raw})
	if err != nil {
		c.logger.Error().Err(err).Str("event", event).Msg("Error marshaling envelope")
		return err
	}

	select {
	case <-c.done:
		return fmt.Errorf("connection closed")
	default:
	}

	select {
	case c.send <- frame:
		return nil
	default:
		c.logger.Warn().
			Str("event", event).
			Int("queue_len", len(c.send)).
			Msg("Client send queue full, dropping frame")
		return fmt.Errorf("client send queue full")
	}
}

// Close implements the Sender contract, signaling WritePump to finish.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}

// ReadPump reads frames from the connection until it fails, dispatching each
// decoded envelope, then unregisters the session and releases the transport.
func (c *Client) ReadPump() {
	defer c.cleanupOnDisconnect()

	c.conn.SetReadLimit(c.maxPayload)

	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set read deadline")
		return
	}

	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, messageBytes, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Info().Err(err).Msg("Error reading message (client close/going away)")
			}
			break
		}

		c.processInboundMessage(messageBytes)
	}
}

// cleanupOnDisconnect runs when ReadPump terminates. Unregister is
// idempotent, so a duplicate disconnect leaves hub state untouched.
func (c *Client) cleanupOnDisconnect() {
	if c.sessionID != "" {
		c.hub.Unregister(c.sessionID)
	}

	c.Close()

	if err := c.conn.Close(); err != nil {
		c.logger.Debug().Err(err).Msg("Client connection close error")
	}
}

// processInboundMessage decodes one envelope and dispatches it. A malformed
// frame is dropped without affecting the session — one connection's bad
// input must never disturb others.
func (c *Client) processInboundMessage(messageBytes []byte) {
	var env Envelope
	if err := json.Unmarshal(messageBytes, &env); err != nil {
		c.logger.Warn().Err(err).Msg("Client sent invalid JSON")
		return
	}

	// The first event on a connection must be join; anything earlier has no
	// session to act on.
	if c.sessionID == "" {
		if env.Event != EventJoin {
			c.logger.Warn().Str("event", env.Event).Msg("Event before join dropped")
			return
		}

		var info JoinInfo
		if err := json.Unmarshal(env.Data, &info); err != nil {
			c.logger.Warn().Err(err).Msg("Client sent invalid join payload")
			return
		}

		c.sessionID = c.hub.Register(c, info)
		c.logger = c.logger.With().Str("session_id", c.sessionID).Logger()
		return
	}

	switch env.Event {
	case EventJoin:
		// Profiles are immutable after join; a repeated join is ignored.
		c.logger.Warn().Msg("Duplicate join event ignored")

	case EventSwitchRoom:
		var p SwitchRoomPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			c.logger.Warn().Err(err).Msg("Client sent invalid switchRoom payload")
			return
		}
		c.hub.SwitchRoom(c.sessionID, p.NewRoom)

	case EventRoomMessage:
		var p RoomMessageInbound
		if err := json.Unmarshal(env.Data, &p); err != nil {
			c.logger.Warn().Err(err).Msg("Client sent invalid roomMessage payload")
			return
		}
		c.hub.RouteRoomMessage(c.sessionID, p.Room, p.Text)

	case EventPrivateMessage:
		var p PrivateMessageInbound
		if err := json.Unmarshal(env.Data, &p); err != nil {
			c.logger.Warn().Err(err).Msg("Client sent invalid privateMessage payload")
			return
		}
		c.hub.RoutePrivateMessage(c.sessionID, p.ToID, p.Text, p.IsImage)

	default:
		c.logger.Warn().Str("event", env.Event).Msg("Client sent unsupported event")
	}
}

// WritePump drains the send queue to the connection in FIFO order and keeps
// the heartbeat alive with periodic pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()

		if err := c.conn.Close(); err != nil {
			c.logger.Debug().Err(err).Msg("Client connection close error in WritePump")
		}
	}()

	for {
		select {
		case frame := <-c.send:
			if !c.writeFrame(frame) {
				return
			}

		case <-ticker.C:
			if !c.writePing() {
				return
			}

		case <-c.done:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err == nil {
				if err := c.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					c.logger.Debug().Err(err).Msg("Error writing close message")
				}
			}
			return
		}
	}
}

// writeFrame writes one queued frame. Returns false when WritePump should terminate.
func (c *Client) writeFrame(frame []byte) bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline")
		return false
	}

	if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
		c.logger.Warn().Err(err).Msg("Error writing message")
		return false
	}

	return true
}

// writePing sends a heartbeat ping. Returns false when WritePump should terminate.
func (c *Client) writePing() bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline on ping")
		return false
	}

	if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
		c.logger.Warn().Err(err).Msg("Error writing ping")
		return false
	}

	return true
}
