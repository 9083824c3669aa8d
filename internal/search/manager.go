package search

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/quickkart/storefront/internal/bus"
	"github.com/quickkart/storefront/internal/domain"
	"github.com/quickkart/storefront/internal/kvstore"
)

const (
	KeyRecent    = "search:recent"
	KeyLastScope = "search:lastScope"
)

const (
	defaultScope = "all"
	maxRecent    = 8
)

// Manager remembers recent search terms (deduped case-insensitively, newest
// first, capped) and the last category scope used.
type Manager struct {
	store  kvstore.Store
	bus    *bus.Bus
	logger *slog.Logger
}

func NewManager(store kvstore.Store, b *bus.Bus, logger *slog.Logger) *Manager {
	return &Manager{store: store, bus: b, logger: logger}
}

// Recent returns recent search terms, empty when absent or corrupt.
func (m *Manager) Recent(ctx context.Context) ([]string, error) {
	raw, ok, err := m.store.Get(ctx, KeyRecent)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []string{}, nil
	}

	var terms []string
	if err := json.Unmarshal([]byte(raw), &terms); err != nil {
		m.logger.Warn("discarding corrupt recent searches", "error", err)
		return []string{}, nil
	}
	return terms, nil
}

func (m *Manager) LastScope(ctx context.Context) string {
	v, ok, err := m.store.Get(ctx, KeyLastScope)
	if err != nil {
		m.logger.Warn("failed to read search scope", "error", err)
		return defaultScope
	}
	if !ok || v == "" {
		return defaultScope
	}
	return v
}

// Remember records a submitted search and publishes search.submitted. Blank
// terms are ignored.
func (m *Manager) Remember(ctx context.Context, term, scope string) error {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}

	recent, err := m.Recent(ctx)
	if err != nil {
		return err
	}

	deduped := []string{term}
	for _, t := range recent {
		if !strings.EqualFold(t, term) {
			deduped = append(deduped, t)
		}
	}
	if len(deduped) > maxRecent {
		deduped = deduped[:maxRecent]
	}

	data, err := json.Marshal(deduped)
	if err != nil {
		return err
	}
	if err := m.store.Set(ctx, KeyRecent, string(data)); err != nil {
		return err
	}

	if scope != "" {
		if err := m.store.Set(ctx, KeyLastScope, scope); err != nil {
			return err
		}
	}

	if err := m.bus.Publish(domain.TopicSearchSubmitted); err != nil {
		m.logger.Error("failed to publish search submission", "error", err)
	}
	return nil
}
