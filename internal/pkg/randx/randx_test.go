package randx_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"chathub/internal/pkg/randx"
)

func TestSessionIDUniqueness(t *testing.T) {
	seen := make(map[string]struct{})

	for i := 0; i < 1000; i++ {
		id := randx.SessionID()
		assert.NotEmpty(t, id)

		_, dup := seen[id]
		assert.False(t, dup, "duplicate session id %q", id)
		seen[id] = struct{}{}
	}
}

func TestGuestNameShape(t *testing.T) {
	for i := 0; i < 100; i++ {
		name := randx.GuestName()

		assert.True(t, strings.HasPrefix(name, randx.GuestNamePrefix))
		digits := strings.TrimPrefix(name, randx.GuestNamePrefix)
		assert.Len(t, digits, randx.GuestNameDigits)

		for _, ch := range digits {
			assert.True(t, ch >= '0' && ch <= '9', "unexpected character %q in %q", ch, name)
		}
	}
}
