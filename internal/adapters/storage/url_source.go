package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aryan-gupta7/track-it-v1/internal/domain"
)

// maxBodyBytes caps a remote activity document.
const maxBodyBytes = 64 << 20

// URLSource fetches the activity document over HTTP, once per Load.
type URLSource struct {
	url        string
	httpClient *http.Client
}

func NewURLSource(url string) *URLSource {
	return &URLSource{
		url: url,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (s *URLSource) Describe() string {
	return s.url
}

func (s *URLSource) Load(ctx context.Context) (*domain.RawActivity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return Decode(io.LimitReader(resp.Body, maxBodyBytes))
}
