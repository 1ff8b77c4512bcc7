package faqstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/yanqian/faq-widget/internal/domain/faq"
	"github.com/yanqian/faq-widget/pkg/util"
)

type statKey struct {
	query   string
	outcome faq.Outcome
}

type statValue struct {
	count     int64
	updatedAt time.Time
}

// MemoryStore is an in-memory implementation of faq.Stats for tests/dev.
type MemoryStore struct {
	mu    sync.RWMutex
	stats map[statKey]statValue
	now   util.Clock
}

// NewMemoryStore constructs a store backed by process memory.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		stats: make(map[statKey]statValue),
		now:   util.NowUTC,
	}
}

// Record bumps the counter for a canonical query and outcome.
func (s *MemoryStore) Record(_ context.Context, query string, outcome faq.Outcome) error {
	if query == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	key := statKey{query: query, outcome: outcome}
	v := s.stats[key]
	v.count++
	v.updatedAt = s.now()
	s.stats[key] = v
	return nil
}

// Top returns the most frequent queries across outcomes.
func (s *MemoryStore) Top(_ context.Context, limit int) ([]faq.QueryStat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit <= 0 {
		limit = len(s.stats)
	}
	items := make([]faq.QueryStat, 0, len(s.stats))
	for key, v := range s.stats {
		items = append(items, faq.QueryStat{
			Query:     key.query,
			Outcome:   key.outcome,
			Count:     v.count,
			UpdatedAt: v.updatedAt,
		})
	}
	sortStats(items)
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func sortStats(items []faq.QueryStat) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Count != items[j].Count {
			return items[i].Count > items[j].Count
		}
		if items[i].Query != items[j].Query {
			return items[i].Query < items[j].Query
		}
		return items[i].Outcome < items[j].Outcome
	})
}

var _ faq.Stats = (*MemoryStore)(nil)
