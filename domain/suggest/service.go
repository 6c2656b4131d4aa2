package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/spf13/viper"
)

// Fields the editor can request suggestions for.
var suggestableFields = map[string]bool{
	"title":           true,
	"excerpt":         true,
	"seo_title":       true,
	"seo_description": true,
}

// PostContext is the draft state sent along so the provider can ground
// its suggestions.
type PostContext struct {
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
	Title    string   `json:"title"`
	Excerpt  string   `json:"excerpt"`
	Author   string   `json:"author"`
	Content  string   `json:"content"`
}

// Result carries the provider's suggestions plus a placeholder the
// editor shows while the field is still empty.
type Result struct {
	Suggestions []string `json:"suggestions"`
	Placeholder string   `json:"placeholder"`
}

// Service proxies field suggestion requests to an external completion
// provider. Requests are numbered with a monotonic sequence so that when
// a caller fires overlapping requests, only the result of the latest
// issued one is accepted; earlier in-flight responses are reported stale.
type Service struct {
	client *http.Client
	seq    atomic.Int64
}

// ErrStale is returned when a newer request was issued while this one was
// in flight.
var ErrStale = fmt.Errorf("suggest: result superseded by a newer request")

// ErrUnknownField is returned for fields the provider cannot suggest.
var ErrUnknownField = fmt.Errorf("suggest: unknown field")

func NewService() *Service {
	return &Service{
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

// next issues a new sequence number, invalidating all in-flight requests.
func (s *Service) next() int64 {
	return s.seq.Add(1)
}

// current reports the most recently issued sequence number.
func (s *Service) current() int64 {
	return s.seq.Load()
}

type providerRequest struct {
	Model   string      `json:"model"`
	Field   string      `json:"field"`
	Context PostContext `json:"context"`
}

type providerResponse struct {
	Suggestions []string `json:"suggestions"`
	Placeholder string   `json:"placeholder"`
}

// Suggest asks the provider for suggestions for one post field, grounded
// on the draft context. If a newer Suggest call was made before the
// response arrives, the result is discarded and ErrStale is returned.
func (s *Service) Suggest(ctx context.Context, field string, pc PostContext) (*Result, error) {
	if !suggestableFields[field] {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	seq := s.next()

	endpoint := viper.GetString("SUGGEST_API_URL")
	apiKey := viper.GetString("SUGGEST_API_KEY")
	if endpoint == "" || apiKey == "" {
		return nil, fmt.Errorf("suggest: provider not configured")
	}

	payload, err := json.Marshal(providerRequest{
		Model:   viper.GetString("SUGGEST_MODEL"),
		Field:   field,
		Context: pc,
	})
	if err != nil {
		return nil, fmt.Errorf("suggest: encode request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("suggest: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("suggest: call provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("suggest: provider returned %d: %s", resp.StatusCode, body)
	}

	var out providerResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("suggest: decode response: %w", err)
	}

	if s.current() != seq {
		return nil, ErrStale
	}

	res := &Result{
		Suggestions: out.Suggestions,
		Placeholder: out.Placeholder,
	}
	if res.Placeholder == "" {
		res.Placeholder = defaultPlaceholder(field)
	}
	return res, nil
}

func defaultPlaceholder(field string) string {
	return "Suggested " + strings.ReplaceAll(field, "_", " ")
}
