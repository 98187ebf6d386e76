package quantplay

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, baseURL string, opts ...Option) *Client {
	t.Helper()
	c, err := NewClient("test-key", append([]Option{WithBaseURL(baseURL)}, opts...)...)
	require.NoError(t, err)
	return c
}

func TestGetAccounts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/accounts", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","data":[{"broker":"zerodha","username":"u1","nickname":"n1","expiry":"2099-01-01"}]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	accounts, err := c.GetAccounts(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, Account{
		Broker:   "zerodha",
		Username: "u1",
		Nickname: "n1",
		Expiry:   "2099-01-01",
	}, accounts[0])
}

func TestGetAccountsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"bad key"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.GetAccounts(context.Background())
	require.True(t, IsAPIRequest(err), "expected API request error, got %v", err)

	cerr, _ := AsError(err)
	assert.Equal(t, http.StatusUnauthorized, cerr.StatusCode)
	assert.Equal(t, "bad key", cerr.Message)
}

func TestGetPositions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/accounts/n1/positions", r.URL.Path)
		w.Write([]byte(`{"status":"ok","data":[{"tradingsymbol":"SBIN-EQ","quantity":10}]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	records, err := c.GetPositions(context.Background(), "n1")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "SBIN-EQ", records[0]["tradingsymbol"])
}

func TestGetHoldingsParseError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/accounts/n1/holdings", r.URL.Path)
		w.Write([]byte("<html>gateway</html>"))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.GetHoldings(context.Background(), "n1")
	assert.True(t, IsParse(err), "expected parse error, got %v", err)
}

func TestPlaceOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/execution/order/place", r.URL.Path)
		assert.Equal(t, "n1", r.URL.Query().Get("nickname"))

		var order map[string]any
		if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
			t.Errorf("decode order body: %v", err)
			return
		}
		assert.Equal(t, "SBIN-EQ", order["tradingsymbol"])
		assert.Equal(t, "BUY", order["transaction_type"])
		assert.Equal(t, "CNC", order["product"])
		assert.Equal(t, "MARKET", order["order_type"])
		assert.Equal(t, "NSE", order["exchange"])
		assert.Equal(t, "MCP", order["tag"])
		assert.Equal(t, float64(0), order["price"])

		w.Write([]byte(`{"status":"ok","data":{"order_id":"240830000123"}}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	ack, err := c.PlaceOrder(context.Background(), OrderRequest{
		Nickname:        "n1",
		TradingSymbol:   "SBIN-EQ",
		Quantity:        1,
		TransactionType: "BUY",
	})
	require.NoError(t, err)
	assert.Equal(t, "240830000123", ack["order_id"])
}

func TestPlaceOrderExplicitFieldsNotOverridden(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var order map[string]any
		if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
			t.Errorf("decode order body: %v", err)
			return
		}
		assert.Equal(t, "MIS", order["product"])
		assert.Equal(t, "LIMIT", order["order_type"])
		assert.Equal(t, 101.5, order["price"])
		w.Write([]byte(`{"status":"ok","data":{"order_id":"1"}}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.PlaceOrder(context.Background(), OrderRequest{
		Nickname:        "n1",
		TradingSymbol:   "SBIN-EQ",
		Quantity:        1,
		TransactionType: "SELL",
		Product:         "MIS",
		OrderType:       "LIMIT",
		Price:           101.5,
	})
	require.NoError(t, err)
}

func TestOperationTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, WithTimeout(50*time.Millisecond))
	_, err := c.GetAccounts(context.Background())
	require.True(t, IsTimeout(err), "expected timeout error, got %v", err)

	cerr, _ := AsError(err)
	assert.Equal(t, 50*time.Millisecond, cerr.Timeout)
}

func TestOperationNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := srv.URL
	srv.Close()

	c := newTestClient(t, baseURL)
	_, err := c.GetAccounts(context.Background())
	assert.True(t, IsNetwork(err), "expected network error, got %v", err)
}
