/*
Package hub contains the core logic of the chat hub.

This file implements the presence broadcaster. Every membership change
rebuilds the full online-user snapshot and pushes it to every connected
session — the client-side list is shown globally across rooms with a room
annotation per user, so there is no per-room scoping and no diffing.
Snapshots are enqueued while holding the hub mutex and each connection
drains its queue in order, so a session can never receive a stale list
after a newer one.
*/
package hub

import "sort"

// Users returns the current online-user snapshot ordered by join sequence.
func (h *Hub) Users() []UserEntry {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.userListLocked()
}

// userListLocked builds the ordered presence snapshot. Caller must hold h.mu.
func (h *Hub) userListLocked() []UserEntry {
	sessions := make([]*Session, 0, len(h.sessions))
	for _, s := range h.sessions {
		sessions = append(sessions, s)
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].joinSeq < sessions[j].joinSeq
	})

	list := make([]UserEntry, 0, len(sessions))
	for _, s := range sessions {
		list = append(list, s.entry())
	}

	return list
}

// broadcastUserListLocked pushes the full snapshot to every connected
// session. Caller must hold h.mu.
func (h *Hub) broadcastUserListLocked() {
	list := h.userListLocked()

	for id, s := range h.sessions {
		if err := s.sender.Send(EventUserList, list); err != nil {
			h.logger.Warn().
				Str("session_id", id).
				Err(err).
				Msg("Dropped user list push.")
		}
	}
}
