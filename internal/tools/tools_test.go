package tools

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantplay/quantplay-go/quantplay"
)

func newService(t *testing.T, handler http.HandlerFunc) (*Service, *atomic.Int32) {
	t.Helper()
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	client, err := quantplay.NewClient("test-key", quantplay.WithBaseURL(srv.URL))
	require.NoError(t, err)
	return NewService(client), &requests
}

func TestGetAccountsTool(t *testing.T) {
	s, _ := newService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok","data":[{"broker":"zerodha","username":"u1","nickname":"n1","expiry":"2099-01-01"}]}`))
	})

	_, raw, err := s.GetAccounts(context.Background(), nil, struct{}{})
	require.NoError(t, err)
	out, ok := raw.([]map[string]any)
	require.True(t, ok, "expected a list of account records, got %T", raw)
	require.Len(t, out, 1)
	assert.Equal(t, "n1", out[0]["nickname"])
	assert.Len(t, out[0], 4)
}

func TestNicknameToolsRejectEmptyNickname(t *testing.T) {
	s, requests := newService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok","data":[]}`))
	})

	_, _, err := s.GetPositions(context.Background(), nil, NicknameArgs{})
	require.Error(t, err)

	_, _, err = s.GetHoldings(context.Background(), nil, NicknameArgs{})
	require.Error(t, err)

	_, _, err = s.PlaceOrder(context.Background(), nil, PlaceOrderArgs{TradingSymbol: "SBIN-EQ"})
	require.Error(t, err)

	assert.Equal(t, int32(0), requests.Load(), "no HTTP call may happen for an empty nickname")
}

func TestPlaceOrderTool(t *testing.T) {
	s, _ := newService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "n1", r.URL.Query().Get("nickname"))
		w.Write([]byte(`{"status":"ok","data":{"order_id":"42"}}`))
	})

	_, raw, err := s.PlaceOrder(context.Background(), nil, PlaceOrderArgs{
		Nickname:        "n1",
		TradingSymbol:   "SBIN-EQ",
		Quantity:        1,
		TransactionType: "BUY",
	})
	require.NoError(t, err)
	ack, ok := raw.(map[string]any)
	require.True(t, ok, "expected an order acknowledgment record, got %T", raw)
	assert.Equal(t, "42", ack["order_id"])
}

func TestToolErrorsPassThroughClassifiedMessage(t *testing.T) {
	s, _ := newService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"bad key"}`))
	})

	_, _, err := s.GetAccounts(context.Background(), nil, struct{}{})
	require.Error(t, err)
	assert.True(t, quantplay.IsAPIRequest(err))
	assert.Contains(t, err.Error(), "bad key")
}
