package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/deep-coffee/internal/domain/entity"
)

func TestMemoryEditor_SessionLifecycle(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	repo := newMemoryEditorRepository(func() time.Time { return clock })

	ok, err := repo.IsEditor(ctx, 7)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.CreateSession(ctx, entity.EditorSession{UserID: 7, LoginTime: clock}))
	ok, _ = repo.IsEditor(ctx, 7)
	assert.True(t, ok)

	clock = clock.Add(SessionTTL + time.Minute)
	ok, _ = repo.IsEditor(ctx, 7)
	assert.False(t, ok, "session should expire")

	require.NoError(t, repo.Touch(ctx, 7))
	ok, _ = repo.IsEditor(ctx, 7)
	assert.True(t, ok, "touch should revive")

	require.NoError(t, repo.DeleteSession(ctx, 7))
	ok, _ = repo.IsEditor(ctx, 7)
	assert.False(t, ok)
	assert.Error(t, repo.Touch(ctx, 7))
}

func TestMemoryEditor_ActionsNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryEditorRepository()

	for _, a := range []string{"login", "add_item", "logout"} {
		require.NoError(t, repo.LogAction(ctx, entity.EditorAction{Action: a}))
	}

	actions, err := repo.Actions(ctx, 2)
	require.NoError(t, err)
	require.Len(t, actions, 2)
	assert.Equal(t, "logout", actions[0].Action)
	assert.Equal(t, "add_item", actions[1].Action)

	all, _ := repo.Actions(ctx, 0)
	assert.Len(t, all, 3)
}

func TestMemoryConversation_TrimsToMaxSize(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryConversationRepository(3)

	for _, q := range []string{"a", "b", "c", "d"} {
		require.NoError(t, repo.SaveTurn(ctx, entity.Turn{UserID: 1, Question: q}))
	}

	history, err := repo.History(ctx, 1, 0)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "b", history[0].Question)

	last, _ := repo.History(ctx, 1, 1)
	assert.Equal(t, "d", last[0].Question)

	require.NoError(t, repo.Clear(ctx, 1))
	empty, _ := repo.History(ctx, 1, 0)
	assert.Empty(t, empty)
}
