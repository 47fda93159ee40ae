package coingecko

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// setupTestServer creates a new test server and a RestClient configured to use it.
func setupTestServer(handler http.Handler) (*RestClient, *httptest.Server) {
	server := httptest.NewServer(handler)

	client := resty.New().SetBaseURL(server.URL)
	logger := zap.NewNop() // Use a no-op logger for tests

	rc := &RestClient{
		client:   client,
		currency: "usd",
		logger:   logger,
		limiter:  rate.NewLimiter(rate.Inf, 1), // Allow all requests in tests
	}

	return rc, server
}

func TestGetPrices(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/simple/price", r.URL.Path)
			assert.Equal(t, "bitcoin,ethereum", r.URL.Query().Get("ids"))
			assert.Equal(t, "usd", r.URL.Query().Get("vs_currencies"))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"bitcoin": {"usd": 40000.0}, "ethereum": {"usd": 2000.5}}`))
		})

		rc, server := setupTestServer(handler)
		defer server.Close()

		// Act
		prices, err := rc.GetPrices([]string{"bitcoin", "ethereum"})

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, map[string]float64{"bitcoin": 40000.0, "ethereum": 2000.5}, prices)
	})

	t.Run("PartialResponse", func(t *testing.T) {
		// Arrange: provider silently drops the unknown id
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"bitcoin": {"usd": 40000.0}}`))
		})

		rc, server := setupTestServer(handler)
		defer server.Close()

		// Act
		prices, err := rc.GetPrices([]string{"bitcoin", "no-such-coin"})

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, map[string]float64{"bitcoin": 40000.0}, prices)
	})

	t.Run("EmptyInput", func(t *testing.T) {
		// Arrange: no request should be made at all
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("unexpected request for empty id list")
		})

		rc, server := setupTestServer(handler)
		defer server.Close()

		// Act
		prices, err := rc.GetPrices(nil)

		// Assert
		assert.NoError(t, err)
		assert.Empty(t, prices)
	})

	t.Run("APIError", func(t *testing.T) {
		// Arrange
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		rc, server := setupTestServer(handler)
		defer server.Close()

		// Act
		_, err := rc.GetPrices([]string{"bitcoin"})

		// Assert
		assert.Error(t, err)
	})
}

func TestSearchCoin(t *testing.T) {
	t.Run("ExactSymbolMatch", func(t *testing.T) {
		// Arrange
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/search", r.URL.Path)
			assert.Equal(t, "BTC", r.URL.Query().Get("query"))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"coins": [
				{"id": "batcat", "symbol": "BTCT", "name": "BatCat"},
				{"id": "bitcoin", "symbol": "btc", "name": "Bitcoin"}
			]}`))
		})

		rc, server := setupTestServer(handler)
		defer server.Close()

		// Act
		id, err := rc.SearchCoin("BTC")

		// Assert: first exact symbol match, case-insensitive
		assert.NoError(t, err)
		assert.Equal(t, "bitcoin", id)
	})

	t.Run("NoMatch", func(t *testing.T) {
		// Arrange
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"coins": []}`))
		})

		rc, server := setupTestServer(handler)
		defer server.Close()

		// Act
		id, err := rc.SearchCoin("NOPE")

		// Assert: unknown symbol is not an error, just unresolved
		assert.NoError(t, err)
		assert.Empty(t, id)
	})
}

func TestGetCoinHistory(t *testing.T) {
	// Arrange
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/coins/bitcoin/market_chart", r.URL.Path)
		assert.Equal(t, "7", r.URL.Query().Get("days"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"prices": [[1700000000000, 39000.0], [1700086400000, 40000.0]]}`))
	})

	rc, server := setupTestServer(handler)
	defer server.Close()

	// Act
	history, err := rc.GetCoinHistory("bitcoin", 7)

	// Assert
	assert.NoError(t, err)
	assert.Len(t, history, 2)
	assert.Equal(t, 40000.0, history[1][1])
}

func TestPing(t *testing.T) {
	// Arrange
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ping", r.URL.Path)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"gecko_says": "(V3) To the Moon!"}`))
	})

	rc, server := setupTestServer(handler)
	defer server.Close()

	// Act & Assert
	assert.NoError(t, rc.Ping())
}
