package files

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PunithVT/livekit-voice-agent/pkg/logger"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s, err := NewStore(t.TempDir(), logger.NewLogger("error", ""), func() time.Time { return now })
	require.NoError(t, err)
	return s
}

func TestSaveAndOpen(t *testing.T) {
	s := testStore(t)
	content := "algebra notes"

	info, err := s.Save("alice", "notes.txt", int64(len(content)), strings.NewReader(content))
	require.NoError(t, err)
	assert.Equal(t, "notes.txt", info.Original)
	assert.Equal(t, int64(len(content)), info.Size)
	assert.True(t, strings.HasSuffix(info.Name, ".txt"))
	assert.Contains(t, info.MimeType, "text/plain")

	sum := sha256.Sum256([]byte(content))
	assert.Equal(t, hex.EncodeToString(sum[:]), info.SHA256)

	r, err := s.Open("alice", info.Name)
	require.NoError(t, err)
	defer r.Close()
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, content, string(got))
}

func TestSaveRejectsExtension(t *testing.T) {
	s := testStore(t)
	_, err := s.Save("alice", "malware.exe", 4, strings.NewReader("data"))
	assert.ErrorIs(t, err, ErrUnsupportedExt)
}

func TestSaveRejectsDeclaredOversize(t *testing.T) {
	s := testStore(t)
	_, err := s.Save("alice", "big.pdf", MaxUploadSize+1, strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestListScopedPerUser(t *testing.T) {
	s := testStore(t)

	_, err := s.Save("alice", "a.txt", 1, strings.NewReader("a"))
	require.NoError(t, err)
	_, err = s.Save("bob", "b.txt", 1, strings.NewReader("b"))
	require.NoError(t, err)

	aliceFiles, err := s.List("alice")
	require.NoError(t, err)
	assert.Len(t, aliceFiles, 1)

	empty, err := s.List("carol")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestDelete(t *testing.T) {
	s := testStore(t)

	info, err := s.Save("alice", "a.txt", 1, strings.NewReader("a"))
	require.NoError(t, err)
	require.NoError(t, s.Delete("alice", info.Name))
	assert.ErrorIs(t, s.Delete("alice", info.Name), ErrNotFound)
}

func TestResolveRejectsTraversal(t *testing.T) {
	s := testStore(t)

	_, err := s.Open("alice", "../other/file.txt")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete("alice", ".hidden"), ErrNotFound)
}
