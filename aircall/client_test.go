package aircall

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, baseURL string, opts ...Option) *Client {
	t.Helper()
	opts = append([]Option{WithBaseURL(baseURL)}, opts...)
	client, err := NewClient("test-id", "test-token", zerolog.Nop(), opts...)
	require.NoError(t, err)
	return client
}

func TestNewClient(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name     string
		apiID    string
		apiToken string
		wantErr  bool
		errMsg   string
	}{
		{
			name:     "valid credentials",
			apiID:    "test-id",
			apiToken: "test-token",
			wantErr:  false,
		},
		{
			name:     "missing API ID",
			apiID:    "",
			apiToken: "test-token",
			wantErr:  true,
			errMsg:   "API ID is required",
		},
		{
			name:     "missing API token",
			apiID:    "test-id",
			apiToken: "",
			wantErr:  true,
			errMsg:   "API token is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// No mock server: construction must never touch the network.
			client, err := NewClient(tt.apiID, tt.apiToken, logger)
			if tt.wantErr {
				require.Error(t, err)
				var cfgErr *ConfigurationError
				require.ErrorAs(t, err, &cfgErr)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}

			require.NoError(t, err)
			assert.NotNil(t, client)
			assert.Equal(t, defaultBaseURL, client.baseURL)
			assert.NotNil(t, client.Calls)
			assert.NotNil(t, client.Contacts)
			assert.NotNil(t, client.Numbers)
			assert.NotNil(t, client.Users)
			assert.NotNil(t, client.Teams)
			assert.NotNil(t, client.Tags)
			assert.NotNil(t, client.Webhooks)
			assert.NotNil(t, client.AIVoiceAgents)
		})
	}
}

func TestClientOptions(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("with timeout", func(t *testing.T) {
		client, err := NewClient("id", "token", logger, WithTimeout(5*time.Second))
		require.NoError(t, err)
		assert.Equal(t, 5*time.Second, client.httpClient.Timeout)
	})

	t.Run("with page size", func(t *testing.T) {
		client, err := NewClient("id", "token", logger, WithPageSize(25))
		require.NoError(t, err)
		assert.Equal(t, 25, client.pageSize)
	})

	t.Run("page size must be positive", func(t *testing.T) {
		client, err := NewClient("id", "token", logger, WithPageSize(-1))
		require.NoError(t, err)
		assert.Equal(t, defaultPageSize, client.pageSize)
	})

	t.Run("with custom http client", func(t *testing.T) {
		customClient := &http.Client{Timeout: 10 * time.Second}
		client, err := NewClient("id", "token", logger, WithHTTPClient(customClient))
		require.NoError(t, err)
		assert.Equal(t, customClient, client.httpClient)
	})

	t.Run("with user agent", func(t *testing.T) {
		client, err := NewClient("id", "token", logger, WithUserAgent("custom/1.0"))
		require.NoError(t, err)
		assert.Equal(t, "custom/1.0", client.userAgent)
	})

	t.Run("base url trailing slash is trimmed", func(t *testing.T) {
		client, err := NewClient("id", "token", logger, WithBaseURL("http://localhost:3000/v1/"))
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:3000/v1", client.baseURL)
	})
}

func TestPing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ping", r.URL.Path)

		id, token, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "test-id", id)
		assert.Equal(t, "test-token", token)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))

		json.NewEncoder(w).Encode(map[string]string{"ping": "pong"})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	require.NoError(t, client.Ping(context.Background()))
}

func TestPingUnexpectedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"ping": "nope"})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	err := client.Ping(context.Background())
	require.Error(t, err)

	var decodeErr *DecodeError
	assert.ErrorAs(t, err, &decodeErr)
}

func TestTransportError(t *testing.T) {
	// Point the client at a server that is already gone.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := newTestClient(t, server.URL)
	err := client.Ping(context.Background())
	require.Error(t, err)

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, http.MethodGet, transportErr.Op)
	assert.NotNil(t, errors.Unwrap(transportErr))
}

func TestContextTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		json.NewEncoder(w).Encode(map[string]string{"ping": "pong"})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := client.Ping(ctx)
	require.Error(t, err)

	var transportErr *TransportError
	assert.ErrorAs(t, err, &transportErr)
}
