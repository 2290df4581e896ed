/*
Package hub contains the core logic of the chat hub.

This file defines the Session struct, representing one live connection's
identity and room state, and the Sender contract the hub uses to reach it.
*/
package hub

// Sender is the per-session send primitive provided by the transport layer.
// Send must never block: a full or closed outbound queue drops the frame and
// returns an error. Close releases the underlying transport.
type Sender interface {
	Send(event string, data any) error
	Close()
}

// Session represents one live connection. Name, Age and Country are set once
// at join and immutable afterwards; Room is mutated only while holding the
// hub mutex.
type Session struct {
	// ID is the opaque session identifier, stable for the connection's lifetime.
	ID string

	// Name is the display name, defaulted to a generated guest name if blank.
	Name string

	// Age is an optional client-asserted free-form string.
	Age string

	// Country is an optional client-asserted free-form string.
	Country string

	// Room is the key of the room the session currently belongs to.
	Room string

	// joinSeq orders sessions by registration for stable presence snapshots.
	joinSeq uint64

	// sender delivers events to this session's connection.
	sender Sender
}

// entry builds the presence snapshot element for this session.
func (s *Session) entry() UserEntry {
	return UserEntry{
		ID:      s.ID,
		Name:    s.Name,
		Age:     s.Age,
		Country: s.Country,
		Room:    s.Room,
	}
}
