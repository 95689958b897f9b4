// File: services/retrieval/client.go
package retrieval

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"time"

	"careflow/utils"

	"go.uber.org/zap"
)

// HTTPSearcher queries the vector-search sidecar over HTTP.
type HTTPSearcher struct {
	baseURL string
	client  *http.Client
}

// NewHTTPSearcher builds a searcher for the given sidecar base URL.
func NewHTTPSearcher(baseURL string) *HTTPSearcher {
	return &HTTPSearcher{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type searchRequest struct {
	Index string `json:"index"`
	Query string `json:"query"`
	K     int    `json:"k"`
}

type searchResponse struct {
	Results []Scored `json:"results"`
}

// Search posts a query to the sidecar and returns ranked hits.
func (s *HTTPSearcher) Search(ctx context.Context, index, query string, k int) ([]Scored, error) {
	u, err := url.Parse(s.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid retrieval URL: %w", err)
	}
	u.Path = path.Join(u.Path, "search")

	body, err := json.Marshal(searchRequest{Index: index, Query: query, K: k})
	if err != nil {
		return nil, fmt.Errorf("marshal search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("retrieval service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		utils.GetLogger().Warn("Retrieval search failed",
			zap.Int("status", resp.StatusCode),
			zap.String("index", index),
			zap.ByteString("detail", detail))
		return nil, fmt.Errorf("retrieval service returned status %d", resp.StatusCode)
	}

	var out searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	return out.Results, nil
}
