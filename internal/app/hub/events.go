/*
Package hub contains the core logic of the chat hub: the session registry,
room membership, message routing, and presence broadcasting.

This file defines the wire protocol: event names and the payload structures
exchanged with clients inside the {event, data} envelope.
*/
package hub

import "encoding/json"

// Event names exchanged between client and hub.
const (
	// EventJoin registers a session; must be the first event on a connection.
	EventJoin = "join"

	// EventSwitchRoom moves the session to another room.
	EventSwitchRoom = "switchRoom"

	// EventRoomMessage carries a room broadcast in either direction.
	EventRoomMessage = "roomMessage"

	// EventSystemMessage carries a hub-generated notice to a client.
	EventSystemMessage = "systemMessage"

	// EventSession tells a freshly joined client its own session id, which it
	// compares against fromId fields to recognize its own echoed messages.
	EventSession = "session"

	// EventUserList replaces the client's online-user list.
	EventUserList = "userList"

	// EventPrivateMessage carries a point-to-point message in either direction.
	EventPrivateMessage = "privateMessage"
)

// Envelope is the outer frame of every WebSocket message.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// JoinInfo is the client-supplied profile sent with the join event.
// All fields are opaque optional strings; absent fields store as empty.
type JoinInfo struct {
	Name    string `json:"name"`
	Age     string `json:"age"`
	Country string `json:"country"`
	Room    string `json:"room"`
}

// SwitchRoomPayload asks the hub to move the session to NewRoom.
type SwitchRoomPayload struct {
	NewRoom string `json:"newRoom"`
}

// RoomMessageInbound is a client's room broadcast request. The Room field is
// advisory only; the hub routes by the sender's tracked room.
type RoomMessageInbound struct {
	Room string `json:"room"`
	Text string `json:"text"`
}

// RoomMessagePayload is the room broadcast delivered to every member,
// including the sender. Clients compare FromID against their own session id
// to distinguish their own echoed messages.
type RoomMessagePayload struct {
	Text     string `json:"text"`
	FromID   string `json:"fromId"`
	FromName string `json:"fromName"`
}

// SessionPayload carries the session id assigned to a connection.
type SessionPayload struct {
	ID string `json:"id"`
}

// SystemMessagePayload is a hub-generated notice rendered by the client.
type SystemMessagePayload struct {
	Text string `json:"text"`
}

// PrivateMessageInbound is a client's private message request. Text holds
// either plain text or an image data URI, distinguished by IsImage.
type PrivateMessageInbound struct {
	ToID    string `json:"toId"`
	Text    string `json:"text"`
	IsImage bool   `json:"isImage"`
}

// PrivateMessagePayload is delivered to both the destination session and
// back to the sender, so both ends render the identical message object.
type PrivateMessagePayload struct {
	FromID   string `json:"fromId"`
	ToID     string `json:"toId"`
	FromName string `json:"fromName"`
	Text     string `json:"text"`
	IsImage  bool   `json:"isImage"`
}

// UserEntry is one element of the online-user snapshot.
type UserEntry struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Age     string `json:"age"`
	Country string `json:"country"`
	Room    string `json:"room"`
}
