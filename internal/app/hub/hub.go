/*
Package hub contains the core logic of the chat hub.

This file defines the Hub struct, which owns the session registry and room
directory. A single coarse mutex guards both, so a session is a member of
exactly one room at every observable point. All fan-out is a non-blocking
enqueue performed while holding the mutex, which gives every session a
strictly ordered stream of pushes without ever blocking on another
connection.
*/
package hub

import (
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"chathub/internal/pkg/logx"
	"chathub/internal/pkg/randx"
)

// Hub is the central coordinator: session registry, room directory,
// message router, and presence broadcaster.
type Hub struct {
	// mu guards sessions, rooms, and every Session.Room field.
	mu sync.Mutex

	// sessions maps session id to its record.
	sessions map[string]*Session

	// rooms maps room key to its member set. Invariant: rooms[k] contains
	// exactly the sessions whose Room field equals k; empty rooms are removed.
	rooms map[string]map[string]*Session

	// defaultRoom receives sessions that join without a room.
	defaultRoom string

	// joinSeq increments per registration for stable presence ordering.
	joinSeq uint64

	// structured logger with Hub context.
	logger zerolog.Logger
}

// New constructs a Hub. Sessions joining with a blank room land in defaultRoom.
func New(defaultRoom string) *Hub {
	return &Hub{
		sessions:    make(map[string]*Session),
		rooms:       make(map[string]map[string]*Session),
		defaultRoom: defaultRoom,
		logger:      logx.Logger().With().Str("component", "Hub").Logger(),
	}
}

// Register allocates a session for the given transport sender, stores its
// profile, places it in its initial room, and announces the change. A blank
// name becomes a generated guest name, a blank room the default room.
// There is no failure path: all profile fields are opaque optional strings.
func (h *Hub) Register(sender Sender, info JoinInfo) string {
	name := strings.TrimSpace(info.Name)
	if name == "" {
		name = randx.GuestName()
	}

	room := strings.TrimSpace(info.Room)
	if room == "" {
		room = h.defaultRoom
	}

	s := &Session{
		ID:      randx.SessionID(),
		Name:    name,
		Age:     info.Age,
		Country: info.Country,
		sender:  sender,
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.joinSeq++
	s.joinSeq = h.joinSeq

	h.sessions[s.ID] = s
	h.joinLocked(s, room)

	h.logger.Info().
		Str("session_id", s.ID).
		Str("name", s.Name).
		Str("room", room).
		Int("total_sessions", len(h.sessions)).
		Msg("Session registered.")

	// The session id must reach the client before any fromId it could be
	// compared against.
	if err := sender.Send(EventSession, SessionPayload{ID: s.ID}); err != nil {
		h.logger.Warn().Str("session_id", s.ID).Err(err).Msg("Dropped session id push.")
	}

	h.notifyRoomLocked(room, s.ID, fmt.Sprintf("%s joined %s", s.Name, room))
	h.broadcastUserListLocked()

	return s.ID
}

// Unregister removes the session and announces the change. It is idempotent:
// a second call for an already-removed id is a no-op, because disconnect
// notifications can race with other cleanup.
func (h *Hub) Unregister(sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	s, ok := h.sessions[sessionID]
	if !ok {
		return
	}

	room := s.Room
	h.leaveLocked(s)
	delete(h.sessions, sessionID)

	h.logger.Info().
		Str("session_id", sessionID).
		Str("room", room).
		Int("total_sessions", len(h.sessions)).
		Msg("Session unregistered.")

	h.notifyRoomLocked(room, sessionID, fmt.Sprintf("%s left %s", s.Name, room))
	h.broadcastUserListLocked()
}

// SwitchRoom atomically moves the session to newRoom and announces the
// change to both rooms. Switching to the currently-held room is a no-op,
// as is a blank room key or an unknown session.
func (h *Hub) SwitchRoom(sessionID, newRoom string) {
	newRoom = strings.TrimSpace(newRoom)
	if newRoom == "" {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	s, ok := h.sessions[sessionID]
	if !ok {
		return
	}

	oldRoom := s.Room
	if oldRoom == newRoom {
		return
	}

	h.moveLocked(s, newRoom)

	h.logger.Info().
		Str("session_id", sessionID).
		Str("old_room", oldRoom).
		Str("new_room", newRoom).
		Msg("Session switched room.")

	h.notifyRoomLocked(oldRoom, sessionID, fmt.Sprintf("%s left %s", s.Name, oldRoom))
	h.notifyRoomLocked(newRoom, sessionID, fmt.Sprintf("%s joined %s", s.Name, newRoom))
	h.broadcastUserListLocked()
}

// notifyRoomLocked pushes a system notice to every member of room except
// exceptID (the subject of the notice). Caller must hold h.mu.
func (h *Hub) notifyRoomLocked(room, exceptID, text string) {
	payload := SystemMessagePayload{Text: text}

	for id, member := range h.rooms[room] {
		if id == exceptID {
			continue
		}
		if err := member.sender.Send(EventSystemMessage, payload); err != nil {
			h.logger.Warn().
				Str("session_id", id).
				Err(err).
				Msg("Dropped system message.")
		}
	}
}

// Shutdown closes every session's transport and clears all state.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.logger.Info().Int("total_sessions", len(h.sessions)).Msg("Shutting down hub.")

	for _, s := range h.sessions {
		s.sender.Close()
	}

	h.sessions = make(map[string]*Session)
	h.rooms = make(map[string]map[string]*Session)
}
