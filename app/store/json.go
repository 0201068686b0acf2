package store

import (
	"context"
	"errors"
	"fmt"
	"os"

	"golang.org/x/exp/slog"
)

// JSON keeps the whole registry in a single JSON document on disk.
type JSON struct {
	log  *slog.Logger
	path string
}

// NewJSON makes a new JSON file storage.
func NewJSON(lg *slog.Logger, path string) *JSON {
	return &JSON{log: lg, path: path}
}

// Load reads the registry from the file.
func (j *JSON) Load(ctx context.Context) *Registry {
	data, err := os.ReadFile(j.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			j.log.InfoCtx(ctx, "no registry file found, starting empty", slog.String("path", j.path))
			return NewRegistry()
		}

		j.log.ErrorCtx(ctx, "failed to read registry, starting empty",
			slog.String("path", j.path), slog.Any("err", err))
		return NewRegistry()
	}

	res, err := Decode(data)
	if err != nil {
		j.log.ErrorCtx(ctx, "failed to decode registry, starting empty",
			slog.String("path", j.path), slog.Any("err", err))
		return NewRegistry()
	}

	for _, e := range res.Dropped {
		j.log.WarnCtx(ctx, "dropped malformed registry entry", slog.Any("err", e))
	}

	return res.Registry
}

// Save overwrites the file with the registry.
func (j *JSON) Save(_ context.Context, r *Registry) error {
	data, err := Encode(r)
	if err != nil {
		return fmt.Errorf("encode registry: %w", err)
	}

	if err = os.WriteFile(j.path, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", j.path, err)
	}

	return nil
}
