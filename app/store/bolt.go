package store

import (
	"context"
	"fmt"
	"strconv"

	bolt "go.etcd.io/bbolt"
	"golang.org/x/exp/slog"
)

const chatsBktName = "chats"

// Bolt is a storage that uses BoltDB as a backend, one key per chat.
type Bolt struct {
	log *slog.Logger
	db  *bolt.DB
}

// NewBolt creates new Bolt storage.
func NewBolt(lg *slog.Logger, path string) (*Bolt, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to make boltdb at %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(chatsBktName)); err != nil {
			return fmt.Errorf("create top-level bucket %s: %w", chatsBktName, err)
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("make buckets: %w", err)
	}

	return &Bolt{log: lg, db: db}, nil
}

// Load reads all chats from the storage.
func (b *Bolt) Load(ctx context.Context) *Registry {
	reg := NewRegistry()

	err := b.db.View(func(tx *bolt.Tx) error {
		bkt := tx.Bucket([]byte(chatsBktName))
		return bkt.ForEach(func(k, v []byte) error {
			id, err := strconv.ParseInt(string(k), 10, 64)
			if err != nil {
				b.log.WarnCtx(ctx, "dropped chat with malformed key", slog.String("key", string(k)))
				return nil
			}

			st, dropped, err := decodeChat(v)
			if err != nil {
				b.log.WarnCtx(ctx, "dropped malformed chat", slog.Int64("chat_id", id), slog.Any("err", err))
				return nil
			}
			for _, e := range dropped {
				b.log.WarnCtx(ctx, "dropped malformed registry entry", slog.Int64("chat_id", id), slog.Any("err", e))
			}

			reg.Chats[id] = st
			return nil
		})
	})
	if err != nil {
		b.log.ErrorCtx(ctx, "failed to read registry, starting empty", slog.Any("err", err))
		return NewRegistry()
	}

	return reg
}

// Save replaces all chats in the storage with the registry ones.
func (b *Bolt) Save(_ context.Context, r *Registry) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket([]byte(chatsBktName)); err != nil {
			return fmt.Errorf("drop bucket: %w", err)
		}

		bkt, err := tx.CreateBucket([]byte(chatsBktName))
		if err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}

		for id, st := range r.Chats {
			chat, err := encodeChat(st)
			if err != nil {
				return fmt.Errorf("encode chat %d: %w", id, err)
			}

			bts, err := marshal(chat)
			if err != nil {
				return fmt.Errorf("marshal chat %d: %w", id, err)
			}

			if err = bkt.Put([]byte(strconv.FormatInt(id, 10)), bts); err != nil {
				return fmt.Errorf("put chat %d: %w", id, err)
			}
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("update storage: %w", err)
	}

	return nil
}

// Close closes the storage.
func (b *Bolt) Close() error { return b.db.Close() }
