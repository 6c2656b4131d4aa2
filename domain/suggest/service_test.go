package suggest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProvider(t *testing.T, resp providerResponse) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(resp)
	}))
}

func configureProvider(t *testing.T, url string) {
	t.Helper()
	viper.Set("SUGGEST_API_URL", url)
	viper.Set("SUGGEST_API_KEY", "test-key")
	viper.Set("SUGGEST_MODEL", "test-model")
	t.Cleanup(func() {
		viper.Set("SUGGEST_API_URL", "")
		viper.Set("SUGGEST_API_KEY", "")
	})
}

func TestSuggestReturnsProviderResult(t *testing.T) {
	srv := newProvider(t, providerResponse{
		Suggestions: []string{"Better Title", "Best Title"},
		Placeholder: "Give it a name",
	})
	defer srv.Close()
	configureProvider(t, srv.URL)

	svc := NewService()
	got, err := svc.Suggest(context.Background(), "title", PostContext{Title: "draft"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Better Title", "Best Title"}, got.Suggestions)
	assert.Equal(t, "Give it a name", got.Placeholder)
}

func TestSuggestDefaultPlaceholder(t *testing.T) {
	srv := newProvider(t, providerResponse{Suggestions: []string{"x"}})
	defer srv.Close()
	configureProvider(t, srv.URL)

	svc := NewService()
	got, err := svc.Suggest(context.Background(), "seo_description", PostContext{})
	require.NoError(t, err)
	assert.Equal(t, "Suggested seo description", got.Placeholder)
}

func TestSuggestUnknownField(t *testing.T) {
	svc := NewService()
	_, err := svc.Suggest(context.Background(), "body", PostContext{})
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestSuggestStaleResultDiscarded(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		json.NewEncoder(w).Encode(providerResponse{Suggestions: []string{"old"}})
	}))
	defer srv.Close()
	configureProvider(t, srv.URL)

	svc := NewService()

	var wg sync.WaitGroup
	wg.Add(1)
	var firstErr error
	go func() {
		defer wg.Done()
		_, firstErr = svc.Suggest(context.Background(), "title", PostContext{Title: "first"})
	}()

	// Give the first request time to reach the provider, then supersede it.
	time.Sleep(50 * time.Millisecond)
	svc.next()
	close(release)
	wg.Wait()

	assert.ErrorIs(t, firstErr, ErrStale)
}

func TestSuggestLatestRequestWins(t *testing.T) {
	srv := newProvider(t, providerResponse{Suggestions: []string{"winner"}})
	defer srv.Close()
	configureProvider(t, srv.URL)

	svc := NewService()
	svc.next() // a prior request was issued and abandoned

	got, err := svc.Suggest(context.Background(), "title", PostContext{Title: "latest"})
	require.NoError(t, err)
	assert.Equal(t, []string{"winner"}, got.Suggestions)
}

func TestSuggestUnconfiguredProvider(t *testing.T) {
	viper.Set("SUGGEST_API_URL", "")
	viper.Set("SUGGEST_API_KEY", "")

	svc := NewService()
	_, err := svc.Suggest(context.Background(), "title", PostContext{})
	assert.Error(t, err)
}

func TestSuggestProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()
	configureProvider(t, srv.URL)

	svc := NewService()
	_, err := svc.Suggest(context.Background(), "title", PostContext{})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrStale)
}
