package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "tutor.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open("  ")
	require.Error(t, err)
}

func TestSubtopicRoundTrip(t *testing.T) {
	store := openTestStore(t)

	created, err := store.CreateSubtopic("algebra", "linear equations", "ax + b = 0 ...")
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	got, ok, err := store.GetSubtopic(created.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "algebra", got.Topic)
	assert.Equal(t, "linear equations", got.Subtopic)

	_, ok, err = store.GetSubtopic(9999)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = store.CreateSubtopic("algebra", "quadratics", "x^2 ...")
	require.NoError(t, err)
	subs, err := store.ListSubtopics("algebra")
	require.NoError(t, err)
	assert.Len(t, subs, 2)
}

func TestConversationLifecycle(t *testing.T) {
	store := openTestStore(t)

	conv, err := store.CreateConversation("algebra-101", "alice", map[string]interface{}{"subject": "math"})
	require.NoError(t, err)
	assert.Equal(t, "active", conv.Status)

	_, err = store.AddMessage(conv.ID, "user", "what is a slope?", nil)
	require.NoError(t, err)
	_, err = store.AddMessage(conv.ID, "assistant", "slope measures steepness", nil)
	require.NoError(t, err)
	_, err = store.AddMessage(conv.ID, "bogus", "nope", nil)
	require.Error(t, err)

	msgs, err := store.ConversationMessages(conv.ID, 0)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "user", msgs[0].Role)
	assert.Equal(t, "assistant", msgs[1].Role)

	require.NoError(t, store.EndConversation(conv.ID))
	got, ok, err := store.GetConversation(conv.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "ended", got.Status)
	require.NotNil(t, got.EndedAt)
	assert.Equal(t, map[string]interface{}{"subject": "math"}, got.Metadata)
}

func TestConversationMessagesLimit(t *testing.T) {
	store := openTestStore(t)

	conv, err := store.CreateConversation("roomA", "alice", nil)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		_, err = store.AddMessage(conv.ID, "user", "msg", nil)
		require.NoError(t, err)
	}

	msgs, err := store.ConversationMessages(conv.ID, 3)
	require.NoError(t, err)
	assert.Len(t, msgs, 3)
}

func TestUserProfileUpsert(t *testing.T) {
	store := openTestStore(t)

	_, ok, err := store.UserProfile("alice")
	require.NoError(t, err)
	assert.False(t, ok)

	created, err := store.UpsertUserProfile("alice", "Alice", map[string]interface{}{"pace": "slow"})
	require.NoError(t, err)
	assert.Equal(t, "Alice", created.DisplayName)

	updated, err := store.UpsertUserProfile("alice", "Alice L.", map[string]interface{}{"pace": "fast"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Alice L.", updated.DisplayName)
	assert.Equal(t, "fast", updated.Preferences["pace"])
}

func TestAnalytics(t *testing.T) {
	store := openTestStore(t)

	conv, err := store.CreateConversation("roomA", "alice", nil)
	require.NoError(t, err)
	for _, role := range []string{"user", "user", "assistant", "system"} {
		_, err = store.AddMessage(conv.ID, role, "x", nil)
		require.NoError(t, err)
	}

	stats, err := store.Stats(conv.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.TotalMessages)
	assert.Equal(t, 2, stats.UserMessages)
	assert.Equal(t, 1, stats.AssistantMessages)
	assert.Equal(t, 1, stats.SystemMessages)

	_, err = store.CreateSubtopic("algebra", "slopes", "...")
	require.NoError(t, err)
	_, err = store.CreateSubtopic("algebra", "intercepts", "...")
	require.NoError(t, err)
	_, err = store.CreateSubtopic("geometry", "angles", "...")
	require.NoError(t, err)

	summary, err := store.PlatformSummary()
	require.NoError(t, err)
	assert.Equal(t, 1, summary.TotalConversations)
	assert.Equal(t, 1, summary.ActiveConversations)
	assert.Equal(t, 4, summary.TotalMessages)
	assert.Equal(t, 3, summary.TotalSubtopics)
	require.NotEmpty(t, summary.TopTopics)
	assert.Equal(t, "algebra", summary.TopTopics[0].Topic)
	assert.Equal(t, 2, summary.TopTopics[0].Count)
}
