package dictionary

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/singleflight"
)

// Service resolves words to definitions, serving from the cache when possible.
type Service struct {
	cache  *Cache
	client Client
	group  singleflight.Group
}

func NewService(cache *Cache, client Client) *Service {
	return &Service{
		cache:  cache,
		client: client,
	}
}

// Lookup returns the definition of word. A dictionary answer without a usable
// definition is a Result with Found false, not an error. Concurrent lookups of the
// same word share one dictionary call.
func (s *Service) Lookup(ctx context.Context, word string) (Result, error) {
	key := Normalize(word)
	if key == "" {
		return Result{}, ErrInvalidInput
	}

	if entry, ok := s.cache.Get(key); ok {
		slog.Default().Debug("using cached definition", slog.String("word", key))
		return Result{
			Word:       key,
			Definition: entry.Definition,
			Found:      true,
			Cached:     true,
		}, nil
	}

	// The shared fetch must outlive any single caller; each caller stops waiting on its own ctx.
	ch := s.group.DoChan(key, func() (any, error) {
		return s.fetch(context.WithoutCancel(ctx), key)
	})
	select {
	case <-ctx.Done():
		return Result{}, fmt.Errorf("lookup %q > %w", key, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return Result{}, res.Err
		}
		return res.Val.(Result), nil
	}
}

func (s *Service) fetch(ctx context.Context, key string) (Result, error) {
	entries, err := s.client.FetchEntries(ctx, key)
	if err != nil {
		slog.Default().Warn("failed to fetch definition",
			slog.String("word", key),
			slog.Any("error", err),
		)
		return Result{}, fmt.Errorf("client.FetchEntries > %w", err)
	}

	definition, found := ExtractDefinition(entries)
	if !found {
		return Result{Word: key}, nil
	}
	s.cache.Put(key, definition)
	return Result{
		Word:       key,
		Definition: definition,
		Found:      true,
	}, nil
}
