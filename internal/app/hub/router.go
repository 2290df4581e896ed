/*
Package hub contains the core logic of the chat hub.

This file implements the message router. The router's only job is correct
fan-out: it never distinguishes "sent by me" — clients compare the echoed
fromId against their own session id. Malformed input and unknown recipients
drop silently, since the protocol has no acknowledgment channel.
*/
package hub

import "strings"

// RouteRoomMessage delivers a room broadcast carrying (fromId, fromName,
// text) to every member of the sender's room, including the sender. Text
// that trims to empty is dropped. The sender's tracked room is
// authoritative: the room named in the request cannot direct a message into
// a room the sender is not a member of.
func (h *Hub) RouteRoomMessage(senderID, requestedRoom, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	s, ok := h.sessions[senderID]
	if !ok {
		return
	}

	if requestedRoom != "" && requestedRoom != s.Room {
		h.logger.Warn().
			Str("session_id", senderID).
			Str("requested_room", requestedRoom).
			Str("tracked_room", s.Room).
			Msg("Room message request disagrees with tracked room. Using tracked room.")
	}

	payload := RoomMessagePayload{
		Text:     text,
		FromID:   s.ID,
		FromName: s.Name,
	}

	for id, member := range h.rooms[s.Room] {
		if err := member.sender.Send(EventRoomMessage, payload); err != nil {
			h.logger.Warn().
				Str("session_id", id).
				Str("room", s.Room).
				Err(err).
				Msg("Dropped room message for member.")
		}
	}
}

// RoutePrivateMessage delivers a private message to the destination session
// and echoes it back to the sender, so both ends render the identical
// message object. Text holds an opaque image data URI when isImage is set;
// the router relays it without re-encoding. An unknown or disconnected
// destination drops the message silently.
func (h *Hub) RoutePrivateMessage(senderID, toID, text string, isImage bool) {
	if !isImage && strings.TrimSpace(text) == "" {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	s, ok := h.sessions[senderID]
	if !ok {
		return
	}

	dst, ok := h.sessions[toID]
	if !ok {
		h.logger.Warn().
			Str("session_id", senderID).
			Str("to_id", toID).
			Msg("Private message to unknown recipient dropped.")
		return
	}

	payload := PrivateMessagePayload{
		FromID:   s.ID,
		ToID:     dst.ID,
		FromName: s.Name,
		Text:     text,
		IsImage:  isImage,
	}

	if err := dst.sender.Send(EventPrivateMessage, payload); err != nil {
		h.logger.Warn().
			Str("session_id", dst.ID).
			Err(err).
			Msg("Dropped private message for recipient.")
	}

	// Echo to the sender unless they messaged themselves, in which case the
	// delivery above already covers both roles.
	if dst.ID != s.ID {
		if err := s.sender.Send(EventPrivateMessage, payload); err != nil {
			h.logger.Warn().
				Str("session_id", s.ID).
				Err(err).
				Msg("Dropped private message echo for sender.")
		}
	}
}
