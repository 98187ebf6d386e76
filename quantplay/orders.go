package quantplay

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Order placement defaults applied when the caller leaves a field empty.
const (
	DefaultProduct   = "CNC"
	DefaultOrderType = "MARKET"
	DefaultExchange  = "NSE"
	DefaultOrderTag  = "MCP"
)

// OrderRequest carries the caller-supplied order fields. Business semantics
// are not validated locally; the service owns them.
type OrderRequest struct {
	Nickname        string  `json:"nickname"`
	TradingSymbol   string  `json:"tradingsymbol"`
	Quantity        int     `json:"quantity"`
	TransactionType string  `json:"transaction_type"`
	Product         string  `json:"product"`
	Price           float64 `json:"price"`
	OrderType       string  `json:"order_type"`
	Exchange        string  `json:"exchange"`
	Tag             string  `json:"tag"`
}

func (r *OrderRequest) applyDefaults() {
	if r.Product == "" {
		r.Product = DefaultProduct
	}
	if r.OrderType == "" {
		r.OrderType = DefaultOrderType
	}
	if r.Exchange == "" {
		r.Exchange = DefaultExchange
	}
	if r.Tag == "" {
		r.Tag = DefaultOrderTag
	}
}

// PlaceOrder submits one order for the account identified by req.Nickname
// and returns the service's acknowledgment record.
func (c *Client) PlaceOrder(ctx context.Context, req OrderRequest) (map[string]any, error) {
	req.applyDefaults()
	data, err := c.do(ctx, http.MethodPost, fmt.Sprintf(EndpointPlaceOrder, req.Nickname), req)
	if err != nil {
		return nil, err
	}
	return decodeOrderAck(data)
}

func decodeOrderAck(data json.RawMessage) (map[string]any, error) {
	var ack map[string]any
	if err := json.Unmarshal(data, &ack); err != nil {
		return nil, newParseError(err)
	}
	return ack, nil
}
