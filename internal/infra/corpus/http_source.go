package corpus

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/yanqian/faq-widget/internal/domain/faq"
)

// HTTPSource fetches the corpus JSON from a static URL.
type HTTPSource struct {
	url        string
	httpClient *http.Client
}

// NewHTTPSource constructs the source with a bounded http client.
func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPSource{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Load implements Source.
func (s *HTTPSource) Load(ctx context.Context) ([]faq.Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build corpus request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch corpus: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch corpus: unexpected status %d", resp.StatusCode)
	}
	return decodeJSON(resp.Body)
}

// Describe implements Source.
func (s *HTTPSource) Describe() string {
	return "http:" + s.url
}

var _ Source = (*HTTPSource)(nil)
