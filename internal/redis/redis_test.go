package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careerai/internal/models"
)

func setUpHistory(t *testing.T) (*HistoryStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewHistoryStore(client, time.Hour), mr
}

func TestHistoryStore_SaveLoad(t *testing.T) {
	store, mr := setUpHistory(t)
	ctx := context.Background()

	history := []models.Message{
		{Role: models.RoleUser, Content: "I'm learning to code. What language should I start with?"},
		{Role: models.RoleAssistant, Content: "Python."},
	}
	require.NoError(t, store.Save(ctx, "session-1", history))

	got, err := store.Load(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, history, got)

	assert.True(t, mr.Exists("chat:session-1"))
	assert.Equal(t, time.Hour, mr.TTL("chat:session-1"))
}

func TestHistoryStore_UnknownSession(t *testing.T) {
	store, _ := setUpHistory(t)

	_, err := store.Load(context.Background(), "missing")

	assert.True(t, errors.Is(err, ErrUnknownSession))
}

func TestHistoryStore_Expires(t *testing.T) {
	store, mr := setUpHistory(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "s", []models.Message{{Role: models.RoleUser, Content: "hi"}}))
	mr.FastForward(2 * time.Hour)

	_, err := store.Load(ctx, "s")
	assert.True(t, errors.Is(err, ErrUnknownSession))
}

func TestHistoryStore_Append(t *testing.T) {
	store, _ := setUpHistory(t)
	ctx := context.Background()

	first, err := store.Append(ctx, "session-3",
		models.Message{Role: models.RoleUser, Content: "I'm learning to code. What language should I start with?"},
		models.Message{Role: models.RoleAssistant, Content: "Python."},
	)
	require.NoError(t, err)
	assert.Len(t, first, 2)

	got, err := store.Append(ctx, "session-3", models.Message{Role: models.RoleUser, Content: "Why is that better than JavaScript?"})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Python.", got[1].Content)
	assert.Equal(t, "Why is that better than JavaScript?", got[2].Content)

	loaded, err := store.Load(ctx, "session-3")
	require.NoError(t, err)
	assert.Equal(t, got, loaded)
}

func TestNew_ConnectsAndPings(t *testing.T) {
	mr := miniredis.RunT(t)

	c, err := New(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	defer c.Close()

	_, err = New(context.Background(), "::not a url::")
	assert.Error(t, err)
}
