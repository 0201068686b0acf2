package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"
	"golang.org/x/exp/slog"
)

func TestBolt_SaveLoad(t *testing.T) {
	b, err := NewBolt(slog.Default(), filepath.Join(t.TempDir(), "quizpoll.db"))
	require.NoError(t, err)
	defer func() { assert.NoError(t, b.Close()) }()

	ctx := context.Background()
	assert.Equal(t, NewRegistry(), b.Load(ctx))

	r := sampleRegistry()
	require.NoError(t, b.Save(ctx, r))
	assert.Equal(t, r, b.Load(ctx))

	t.Run("save replaces chats", func(t *testing.T) {
		r2 := NewRegistry()
		r2.GetOrCreate(1).RecordNewQuizzes([]Quiz{{Title: "only"}})
		require.NoError(t, b.Save(ctx, r2))
		assert.Equal(t, r2, b.Load(ctx))
	})

	t.Run("malformed entries dropped", func(t *testing.T) {
		err := b.db.Update(func(tx *bolt.Tx) error {
			bkt := tx.Bucket([]byte(chatsBktName))
			if err := bkt.Put([]byte("abc"), []byte(`{}`)); err != nil {
				return err
			}
			return bkt.Put([]byte("2"), []byte(`"broken"`))
		})
		require.NoError(t, err)

		loaded := b.Load(ctx)
		assert.Len(t, loaded.Chats, 1)
		assert.Contains(t, loaded.Chats, int64(1))
	})
}
