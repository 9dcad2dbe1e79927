package kvstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreMissReturnsNil(t *testing.T) {
	store := NewMemoryStore()

	value, err := store.Read(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, value)
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Write(ctx, "k", []byte("v"), time.Hour))

	value, err := store.Read(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), value)
	assert.Equal(t, 1, store.Len())
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Now()
	store.SetClock(func() time.Time { return now })

	require.NoError(t, store.Write(ctx, "k", []byte("v"), time.Minute))

	now = now.Add(2 * time.Minute)
	value, err := store.Read(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, value)

	// The expired entry was dropped on read
	assert.Equal(t, 0, store.Len())
}

func TestMemoryStoreOverwriteRearmsTTL(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Now()
	store.SetClock(func() time.Time { return now })

	require.NoError(t, store.Write(ctx, "k", []byte("old"), time.Minute))

	now = now.Add(30 * time.Second)
	require.NoError(t, store.Write(ctx, "k", []byte("new"), time.Minute))

	// Past the first deadline but inside the re-armed one
	now = now.Add(45 * time.Second)
	value, err := store.Read(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), value)
}
