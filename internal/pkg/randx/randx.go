/*
Package randx provides generators for session identifiers and guest display names.

Session IDs are standard UUID v4 strings, stable for the life of a connection
and unique across concurrently connected sessions. Guest names use a
cryptographically secure random digit suffix.
*/
package randx

import (
	"crypto/rand"
	"math/big"

	"github.com/google/uuid"
)

const (
	// GuestNamePrefix is prepended to the random digits of a generated guest name.
	GuestNamePrefix = "Guest"

	// GuestNameDigits is the number of random digits in a generated guest name.
	GuestNameDigits = 3
)

// SessionID generates a UUID v4 string identifying a single live connection.
func SessionID() string {
	return uuid.New().String()
}

// GuestName generates a display name of the form "GuestNNN" for sessions
// that join without a name. Generation never fails: in the (practically
// impossible) event crypto/rand errors, the affected digit falls back to '0'.
func GuestName() string {
	result := make([]byte, GuestNameDigits)

	for i := range result {
		num, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			result[i] = '0'
			continue
		}
		result[i] = '0' + byte(num.Int64())
	}

	return GuestNamePrefix + string(result)
}
