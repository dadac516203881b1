package analyzer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := New(Options{URL: srv.URL + "/analyze", APIKey: "k1", Timeout: 2 * time.Second})
	require.NoError(t, err)
	return c
}

func TestNew_InvalidURL(t *testing.T) {
	for _, raw := range []string{"", "localhost:8080", "ftp://host/analyze", "http://"} {
		_, err := New(Options{URL: raw})
		assert.Error(t, err, raw)
	}
}

func TestAnalyze_SendsCodeAndReturnsReport(t *testing.T) {
	var got analyzeRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/analyze", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "k1", r.Header.Get("X-API-Key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("Identificadores (1):\r\nx\r\n"))
	})

	text, err := c.Analyze(context.Background(), "x = 1")
	require.NoError(t, err)
	assert.Equal(t, "x = 1", got.Code)
	assert.Equal(t, "Identificadores (1):\nx\n", text)
	assert.Equal(t, 0, c.Limiter().ActiveCount())
}

func TestAnalyze_EmptyCode(t *testing.T) {
	called := false
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := c.Analyze(context.Background(), "  \n\t")
	assert.ErrorIs(t, err, ErrEmptyCode)
	assert.False(t, called, "empty code must not reach the analyzer")
}

func TestAnalyze_UpstreamError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "JSON inválido o malformado", http.StatusBadRequest)
	})

	_, err := c.Analyze(context.Background(), "print(1)")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUpstream)

	var ue *UpstreamError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, http.StatusBadRequest, ue.Status)
	assert.Equal(t, "JSON inválido o malformado", ue.Body)
	assert.Contains(t, err.Error(), "status 400")
}

func TestAnalyze_UpstreamErrorBodyTruncated(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(strings.Repeat("x", 2000)))
	})

	_, err := c.Analyze(context.Background(), "print(1)")
	var ue *UpstreamError
	require.True(t, errors.As(err, &ue))
	assert.Len(t, ue.Body, maxErrorBody)
}

func TestAnalyze_Unavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := New(Options{URL: url, Timeout: time.Second})
	require.NoError(t, err)

	_, err = c.Analyze(context.Background(), "print(1)")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "analyzer unavailable")
}

func TestAnalyze_ContextCanceled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.Analyze(ctx, "print(1)")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestAnalyze_LimitsConcurrency(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{}, 4)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		entered <- struct{}{}
		<-release
		_, _ = w.Write([]byte("✅ ok"))
	}))
	defer srv.Close()

	c, err := New(Options{URL: srv.URL, MaxConcurrent: 1, MaxWait: 50 * time.Millisecond})
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := c.Analyze(context.Background(), "a")
		assert.NoError(t, err)
	}()
	<-entered

	_, err = c.Analyze(context.Background(), "b")
	assert.ErrorIs(t, err, ErrBusy)

	close(release)
	wg.Wait()
	assert.Equal(t, 0, c.Limiter().ActiveCount())
}
