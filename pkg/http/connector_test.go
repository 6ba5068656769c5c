package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestConnector(baseURL string, opts ...HttpOpts) *Connector {
	return NewConnector(&ConnectorConfig{BaseURL: baseURL, Logger: zap.NewNop()}, opts...)
}

func TestDoRawReturnsBodyUntouched(t *testing.T) {
	const body = "{\"answer\":  \"spacing is kept\" }\n"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"question":"hi"}`, string(payload))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "abc", r.Header.Get("X-Request-ID"))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		io.WriteString(w, body)
	}))
	defer srv.Close()

	c := newTestConnector(srv.URL, WithRequestLogging())
	raw, err := c.DoRaw(context.Background(), http.MethodPost, "/api/query",
		map[string]string{"question": "hi"}, WithHeader("X-Request-ID", "abc"))
	require.NoError(t, err)

	assert.Equal(t, http.StatusAccepted, raw.StatusCode)
	assert.Equal(t, "application/json", raw.ContentType)
	assert.Equal(t, body, string(raw.Body))
}

func TestDoRawNon2xxIsHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		io.WriteString(w, `{"detail":"bad"}`)
	}))
	defer srv.Close()

	c := newTestConnector(srv.URL)
	_, err := c.DoRaw(context.Background(), http.MethodGet, "/health", nil)

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnprocessableEntity, httpErr.StatusCode)
	assert.Equal(t, `{"detail":"bad"}`, httpErr.Message)
}

func TestDoRawUnreachableIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := newTestConnector(url, WithConnClientTimeout(time.Second))
	_, err := c.DoRaw(context.Background(), http.MethodGet, "/health", nil)

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.NotNil(t, errors.Unwrap(err))
}

func TestAuthTransportSetsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := newTestConnector(srv.URL, WithAuthToken("secret"))
	raw, err := c.DoRaw(context.Background(), http.MethodGet, "/", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, raw.StatusCode)
	assert.Empty(t, raw.Body)
}

func TestClientHasNoDeadlineByDefault(t *testing.T) {
	for name, client := range map[string]*http.Client{
		"defaults":      newClient(),
		"explicit zero": newClient(WithRequestTimeout(0), WithResponseHeaderTimeout(0)),
	} {
		assert.Zero(t, client.Timeout, name)

		transport, ok := client.Transport.(*http.Transport)
		require.True(t, ok, name)
		assert.Zero(t, transport.ResponseHeaderTimeout, name)
	}

	assert.Equal(t, 2*time.Second, newClient(WithRequestTimeout(2*time.Second)).Timeout)
}

func TestDoRawWaitsForSlowAnswer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		io.WriteString(w, `{"answer":"late but fine"}`)
	}))
	defer srv.Close()

	raw, err := newTestConnector(srv.URL).DoRaw(context.Background(), http.MethodPost, "/api/query", map[string]string{"question": "hi"})
	require.NoError(t, err)
	assert.Equal(t, `{"answer":"late but fine"}`, string(raw.Body))
}

func TestDoRawTruncatedBodyIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, buf, err := w.(http.Hijacker).Hijack()
		require.NoError(t, err)
		defer conn.Close()

		buf.WriteString("HTTP/1.1 200 OK\r\nContent-Length: 64\r\n\r\n{\"answer\":")
		buf.Flush()
	}))
	defer srv.Close()

	_, err := newTestConnector(srv.URL).DoRaw(context.Background(), http.MethodGet, "/health", nil)

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Contains(t, err.Error(), "read response body")
}
