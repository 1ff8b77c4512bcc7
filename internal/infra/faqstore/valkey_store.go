package faqstore

import (
	"context"
	"fmt"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/faq-widget/internal/domain/faq"
)

// ValkeyStore persists query statistics in Valkey sorted sets, one per outcome.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a new store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "faq"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

// Record increments the query's score in the outcome's sorted set.
func (s *ValkeyStore) Record(ctx context.Context, query string, outcome faq.Outcome) error {
	if query == "" {
		return nil
	}
	cmd := s.client.B().Zincrby().Key(s.statsKey(outcome)).Increment(1).Member(query).Build()
	return s.client.Do(ctx, cmd).Error()
}

// Top merges the highest scoring members of every outcome set.
func (s *ValkeyStore) Top(ctx context.Context, limit int) ([]faq.QueryStat, error) {
	if limit <= 0 {
		limit = 10
	}
	var out []faq.QueryStat
	for _, outcome := range []faq.Outcome{faq.OutcomeFAQ, faq.OutcomeNotFound} {
		items, err := s.topForOutcome(ctx, outcome, limit)
		if err != nil {
			return nil, err
		}
		out = append(out, items...)
	}
	sortStats(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *ValkeyStore) topForOutcome(ctx context.Context, outcome faq.Outcome, limit int) ([]faq.QueryStat, error) {
	resp := s.client.Do(ctx, s.client.B().Zrevrange().Key(s.statsKey(outcome)).Start(0).Stop(int64(limit-1)).Withscores().Build())
	arr, err := resp.ToArray()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, nil
		}
		return nil, err
	}
	out := make([]faq.QueryStat, 0, len(arr))
	for i := 0; i < len(arr); {
		var (
			member string
			score  float64
		)
		if tuple, tupleErr := arr[i].ToArray(); tupleErr == nil && len(tuple) == 2 {
			// RESP3 returns [member, score] per element.
			if member, err = tuple[0].ToString(); err != nil {
				return nil, err
			}
			if score, err = tuple[1].AsFloat64(); err != nil {
				return nil, err
			}
			i++
		} else {
			// RESP2 returns a flat alternating array with scores as strings.
			if i+1 >= len(arr) {
				break
			}
			if member, err = arr[i].ToString(); err != nil {
				return nil, err
			}
			if score, err = arr[i+1].AsFloat64(); err != nil {
				return nil, err
			}
			i += 2
		}
		out = append(out, faq.QueryStat{Query: member, Outcome: outcome, Count: int64(score)})
	}
	return out, nil
}

func (s *ValkeyStore) statsKey(outcome faq.Outcome) string {
	switch outcome {
	case faq.OutcomeFAQ:
		return fmt.Sprintf("%s:hits", s.prefix)
	default:
		return fmt.Sprintf("%s:misses", s.prefix)
	}
}

var _ faq.Stats = (*ValkeyStore)(nil)
