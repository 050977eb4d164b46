package unsubscribe

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	token := Encode("user-123", issued)
	userID, at, err := Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
	assert.True(t, at.Equal(issued))
}

func TestTokenUserIDWithDots(t *testing.T) {
	// User ids containing the separator survive, since the timestamp is
	// split off the last dot.
	issued := time.Unix(1700000000, 0)

	userID, at, err := Decode(Encode("a.b.c", issued))
	require.NoError(t, err)
	assert.Equal(t, "a.b.c", userID)
	assert.Equal(t, issued.Unix(), at.Unix())
}

func TestTokenMalformed(t *testing.T) {
	cases := []string{
		"",
		"%%%not-base64%%%",
		"bm9kb3Q",         // "nodot"
		"dXNlci0xMjMu",    // "user-123." trailing separator
		"LjE3MDAwMDAwMDA", // ".1700000000" empty user id
		"dXNlci5hYmM",     // "user.abc" non-numeric timestamp
	}
	for _, token := range cases {
		_, _, err := Decode(token)
		assert.Error(t, err, token)
	}
}
