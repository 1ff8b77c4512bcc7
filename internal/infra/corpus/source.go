package corpus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/yanqian/faq-widget/internal/domain/faq"
)

// Source loads the FAQ corpus from an external location.
type Source interface {
	Load(ctx context.Context) ([]faq.Entry, error)
	Describe() string
}

// maxCorpusBytes bounds the payload read from remote sources.
const maxCorpusBytes = 8 << 20

func decodeJSON(r io.Reader) ([]faq.Entry, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxCorpusBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}
	if len(data) > maxCorpusBytes {
		return nil, fmt.Errorf("corpus exceeds %d bytes", maxCorpusBytes)
	}
	var entries []faq.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse corpus: %w", err)
	}
	return entries, nil
}
