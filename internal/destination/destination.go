// Package destination maps screenshot categories to chat channels.
package destination

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"runeshot/internal/classify"
	"runeshot/internal/logging"
	"runeshot/internal/messenger"
)

// Destination is a resolved channel for a category.
type Destination struct {
	Category  classify.Category
	Name      string
	ChannelID string
}

// NameFor returns the channel name for a category.
func NameFor(category classify.Category) string {
	switch category {
	case classify.LevelUp:
		return "level-ups"
	case classify.Quest:
		return "quests"
	case classify.Barrows:
		return "barrows"
	case classify.Pet:
		return "pets"
	default:
		return "misc"
	}
}

// Resolver finds or creates destination channels and caches the handles.
type Resolver struct {
	messenger messenger.Messenger
	logger    *slog.Logger

	mu    sync.Mutex
	cache map[classify.Category]Destination
}

// NewResolver returns a resolver with an empty cache.
func NewResolver(m messenger.Messenger, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Resolver{
		messenger: m,
		logger:    logging.NewComponentLogger(logger, "destination"),
		cache:     make(map[classify.Category]Destination, len(classify.Categories)),
	}
}

// EnsureAll resolves every category in creation order. It stops at the first
// failure; categories already resolved stay cached.
func (r *Resolver) EnsureAll(ctx context.Context) error {
	for _, category := range classify.Categories {
		if _, err := r.Resolve(ctx, category); err != nil {
			return err
		}
	}
	return nil
}

// Resolve returns the destination for category, finding or creating its
// channel on a cache miss.
func (r *Resolver) Resolve(ctx context.Context, category classify.Category) (Destination, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if dest, ok := r.cache[category]; ok {
		return dest, nil
	}

	name := NameFor(category)
	ch, found, err := r.messenger.FindChannel(ctx, name)
	if err != nil {
		return Destination{}, fmt.Errorf("find channel %s: %w", name, err)
	}
	if !found {
		ch, err = r.messenger.CreateChannel(ctx, name)
		if err != nil {
			return Destination{}, fmt.Errorf("create channel %s: %w", name, err)
		}
		r.logger.Info("destination channel created",
			logging.String(logging.FieldEventType, "destination_created"),
			logging.String(logging.FieldDestination, name),
		)
	}

	dest := Destination{Category: category, Name: name, ChannelID: ch.ID}
	r.cache[category] = dest
	r.logger.Debug("destination resolved",
		logging.String(logging.FieldDestination, name),
		logging.String(logging.FieldCategory, category.String()),
		logging.Bool("created", !found),
	)
	return dest, nil
}

// Cached returns the resolved destinations in creation order.
func (r *Resolver) Cached() []Destination {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Destination, 0, len(r.cache))
	for _, category := range classify.Categories {
		if dest, ok := r.cache[category]; ok {
			out = append(out, dest)
		}
	}
	return out
}
