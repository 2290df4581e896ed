/*
Package hub contains the core logic of the chat hub.

This file implements the room directory: the join/move/leave primitives that
maintain the member sets, plus the read-only views used by the router and
the diagnostic API. Rooms are created implicitly on first join and removed
when their last member leaves; emptiness is not an error.
*/
package hub

import "sort"

// joinLocked adds s to room's member set and sets its Room field.
// Caller must hold h.mu and guarantee s is not currently in any room.
func (h *Hub) joinLocked(s *Session, room string) {
	members, ok := h.rooms[room]
	if !ok {
		members = make(map[string]*Session)
		h.rooms[room] = members
	}

	members[s.ID] = s
	s.Room = room
}

// leaveLocked removes s from its current room's member set.
// Caller must hold h.mu.
func (h *Hub) leaveLocked(s *Session) {
	members, ok := h.rooms[s.Room]
	if !ok {
		return
	}

	delete(members, s.ID)
	if len(members) == 0 {
		delete(h.rooms, s.Room)
	}
}

// moveLocked atomically transfers s from its current room to newRoom.
// Both member sets and the session's Room field change under the same
// critical section, so no caller ever observes zero or dual membership.
// Caller must hold h.mu.
func (h *Hub) moveLocked(s *Session, newRoom string) {
	h.leaveLocked(s)
	h.joinLocked(s, newRoom)
}

// MembersOf returns a snapshot of the given room's members ordered by join
// sequence. The second return value reports whether the room exists (has at
// least one member).
func (h *Hub) MembersOf(room string) ([]UserEntry, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	members, ok := h.rooms[room]
	if !ok {
		return nil, false
	}

	sessions := make([]*Session, 0, len(members))
	for _, s := range members {
		sessions = append(sessions, s)
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].joinSeq < sessions[j].joinSeq
	})

	entries := make([]UserEntry, 0, len(sessions))
	for _, s := range sessions {
		entries = append(entries, s.entry())
	}

	return entries, true
}

// RoomCounts returns a snapshot of member counts per room.
func (h *Hub) RoomCounts() map[string]int {
	h.mu.Lock()
	defer h.mu.Unlock()

	counts := make(map[string]int, len(h.rooms))
	for room, members := range h.rooms {
		counts[room] = len(members)
	}

	return counts
}
