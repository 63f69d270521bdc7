package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNow() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func TestNewMinterRequiresCredentials(t *testing.T) {
	_, err := NewMinter("", "", "ws://localhost:7880", 2, nil)
	require.Error(t, err)
}

func TestMintAndVerify(t *testing.T) {
	m, err := NewMinter("devkey", "devsecret", "ws://localhost:7880", 2, fixedNow)
	require.NoError(t, err)

	tok, err := m.Mint("alice", "algebra-101", "")
	require.NoError(t, err)
	assert.Equal(t, "algebra-101", tok.Room)
	assert.Equal(t, "alice", tok.Identity)
	assert.Equal(t, "ws://localhost:7880", tok.URL)
	assert.Equal(t, fixedNow().Add(2*time.Hour), tok.ExpiresAt)
	assert.NotEmpty(t, tok.JWT)

	identity, room, err := m.Verify(tok.JWT)
	require.NoError(t, err)
	assert.Equal(t, "alice", identity)
	assert.Equal(t, "algebra-101", room)
}

func TestMintRejectsEmptyIdentity(t *testing.T) {
	m, err := NewMinter("devkey", "devsecret", "", 2, fixedNow)
	require.NoError(t, err)

	_, err = m.Mint("", "roomA", "")
	require.Error(t, err)
}

func TestMintGeneratesRoomNameWhenMissing(t *testing.T) {
	m, err := NewMinter("devkey", "devsecret", "", 2, fixedNow)
	require.NoError(t, err)

	tok, err := m.Mint("alice", "", "")
	require.NoError(t, err)
	assert.Regexp(t, `^room-[0-9a-f-]{8}$`, tok.Room)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	m1, err := NewMinter("devkey", "devsecret", "", 2, fixedNow)
	require.NoError(t, err)
	m2, err := NewMinter("devkey", "othersecret", "", 2, fixedNow)
	require.NoError(t, err)

	tok, err := m1.Mint("alice", "roomA", "")
	require.NoError(t, err)

	_, _, err = m2.Verify(tok.JWT)
	require.Error(t, err)
}

func TestGenerateRoomNameUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		name := GenerateRoomName()
		assert.False(t, seen[name], "duplicate room name %s", name)
		seen[name] = true
	}
}
