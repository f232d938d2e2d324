package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boostlab/smm-panel/internal/domain/entity"
	errs "github.com/boostlab/smm-panel/internal/domain/error"
	"github.com/boostlab/smm-panel/internal/infrastructure/adapter/logger"
)

func newTestProvider(apiURL string) *entity.Provider {
	return &entity.Provider{
		ID:       1,
		Name:     "upstream",
		APIURL:   apiURL,
		APIKey:   "secret-key",
		IsActive: true,
	}
}

func newClient() *HTTPClient {
	return NewHTTPClient(5*time.Second, logger.NewNoopLogger())
}

func TestServices(t *testing.T) {
	t.Run("Parses the catalog listing", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "secret-key", r.PostFormValue("key"))
			assert.Equal(t, "services", r.PostFormValue("action"))
			assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[
				{"service": 881, "name": "Followers", "category": "Instagram", "type": "Default", "rate": "2.50", "min": 100, "max": 10000},
				{"service": 882, "name": "Likes", "category": "Instagram", "type": "Default", "rate": "0.90", "min": 50, "max": 5000.0}
			]`))
		}))
		defer server.Close()

		services, err := newClient().Services(context.Background(), newTestProvider(server.URL))
		require.NoError(t, err)

		require.Len(t, services, 2)
		assert.Equal(t, "881", services[0].ServiceID)
		assert.Equal(t, "2.50", services[0].Rate)
		assert.Equal(t, int64(100), services[0].Min)
		assert.Equal(t, "882", services[1].ServiceID)
		assert.Equal(t, int64(5000), services[1].Max)
	})

	t.Run("Malformed body is a provider error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"error": "not a list"}`))
		}))
		defer server.Close()

		_, err := newClient().Services(context.Background(), newTestProvider(server.URL))
		assert.ErrorIs(t, err, errs.ErrProviderUnavailable)
	})
}

func TestAddOrder(t *testing.T) {
	t.Run("Returns the provider order id", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "add", r.PostFormValue("action"))
			assert.Equal(t, "881", r.PostFormValue("service"))
			assert.Equal(t, "https://example.com/p", r.PostFormValue("link"))
			assert.Equal(t, "2000", r.PostFormValue("quantity"))

			_, _ = w.Write([]byte(`{"order": 12345}`))
		}))
		defer server.Close()

		orderID, err := newClient().AddOrder(context.Background(), newTestProvider(server.URL), "881", "https://example.com/p", 2000)
		require.NoError(t, err)
		assert.Equal(t, "12345", orderID)
	})

	t.Run("Provider-reported error surfaces", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"error": "not enough funds"}`))
		}))
		defer server.Close()

		_, err := newClient().AddOrder(context.Background(), newTestProvider(server.URL), "881", "https://example.com/p", 2000)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrProviderUnavailable)
		assert.Contains(t, err.Error(), "not enough funds")
	})

	t.Run("Missing order id is an error, never a silent success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		}))
		defer server.Close()

		_, err := newClient().AddOrder(context.Background(), newTestProvider(server.URL), "881", "https://example.com/p", 2000)
		assert.ErrorIs(t, err, errs.ErrProviderUnavailable)
	})

	t.Run("Non-2xx status is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		_, err := newClient().AddOrder(context.Background(), newTestProvider(server.URL), "881", "https://example.com/p", 2000)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "502")
	})
}

func TestGetOrderStatus(t *testing.T) {
	t.Run("Parses a status report", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "status", r.PostFormValue("action"))
			assert.Equal(t, "12345", r.PostFormValue("order"))

			_, _ = w.Write([]byte(`{"status": "Partial", "start_count": 120, "remains": 380, "charge": "1.50"}`))
		}))
		defer server.Close()

		status, err := newClient().GetOrderStatus(context.Background(), newTestProvider(server.URL), "12345")
		require.NoError(t, err)

		assert.Equal(t, "Partial", status.Status)
		assert.Equal(t, int64(120), status.StartCount)
		assert.Equal(t, int64(380), status.Remains)
		assert.Equal(t, "1.50", status.Charge)
	})

	t.Run("Unreachable provider", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		server.Close()

		_, err := newClient().GetOrderStatus(context.Background(), newTestProvider(server.URL), "12345")
		assert.ErrorIs(t, err, errs.ErrProviderUnavailable)
	})

	t.Run("Request timeout", func(t *testing.T) {
		block := make(chan struct{})
		server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			<-block
		}))
		defer func() {
			close(block)
			server.Close()
		}()

		client := NewHTTPClient(50*time.Millisecond, logger.NewNoopLogger())
		_, err := client.GetOrderStatus(context.Background(), newTestProvider(server.URL), "12345")
		assert.ErrorIs(t, err, errs.ErrProviderUnavailable)
	})
}
