package corpus

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/yanqian/faq-widget/internal/domain/faq"
)

// Provider holds the current corpus snapshot. The snapshot is empty until
// the first successful load and is replaced wholesale, never mutated.
type Provider struct {
	source   Source
	logger   *slog.Logger
	snapshot atomic.Pointer[[]faq.Entry]
	loadedAt atomic.Int64
}

// NewProvider constructs a provider with an empty snapshot.
func NewProvider(source Source, logger *slog.Logger) *Provider {
	p := &Provider{
		source: source,
		logger: logger.With("component", "corpus.provider", "source", source.Describe()),
	}
	empty := []faq.Entry{}
	p.snapshot.Store(&empty)
	return p
}

// Entries implements faq.Corpus.
func (p *Provider) Entries() []faq.Entry {
	return *p.snapshot.Load()
}

// LoadedAt reports when the snapshot was last replaced; zero if never.
func (p *Provider) LoadedAt() time.Time {
	ts := p.loadedAt.Load()
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(0, ts).UTC()
}

// Load fetches the corpus once. A failure is logged and leaves the corpus
// empty so matching degrades to the fallback answer.
func (p *Provider) Load(ctx context.Context) {
	entries, err := p.source.Load(ctx)
	if err != nil {
		p.logger.Error("corpus load failed, serving empty corpus", "error", err)
		p.store([]faq.Entry{})
		return
	}
	p.store(entries)
	p.logger.Info("corpus loaded", "entries", len(entries))
}

// Reload fetches the corpus again, keeping the previous snapshot on failure.
func (p *Provider) Reload(ctx context.Context) error {
	entries, err := p.source.Load(ctx)
	if err != nil {
		p.logger.Warn("corpus reload failed, keeping previous snapshot", "error", err)
		return err
	}
	p.store(entries)
	p.logger.Info("corpus reloaded", "entries", len(entries))
	return nil
}

func (p *Provider) store(entries []faq.Entry) {
	cleaned := make([]faq.Entry, 0, len(entries))
	for _, e := range entries {
		tags := make([]string, len(e.Tags))
		copy(tags, e.Tags)
		cleaned = append(cleaned, faq.Entry{Question: e.Question, Answer: e.Answer, Tags: tags})
	}
	p.snapshot.Store(&cleaned)
	p.loadedAt.Store(time.Now().UnixNano())
}

var _ faq.Corpus = (*Provider)(nil)
