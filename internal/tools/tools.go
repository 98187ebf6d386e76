package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/pkg/errors"

	"github.com/quantplay/quantplay-go/quantplay"
)

// Service adapts the QuantPlay client to MCP tool handlers. The client is
// built once at startup and shared; it is never rebuilt here.
type Service struct {
	client *quantplay.Client
}

// NewService wraps an already-constructed client.
func NewService(client *quantplay.Client) *Service {
	return &Service{client: client}
}

// NicknameArgs address one connected account by its caller-facing alias.
type NicknameArgs struct {
	Nickname string `json:"nickname" jsonschema:"the account nickname to query"`
}

// PlaceOrderArgs carries the order fields exposed to the tool caller.
// Fields left empty take the service defaults.
type PlaceOrderArgs struct {
	Nickname        string  `json:"nickname" jsonschema:"the account nickname to trade on"`
	TradingSymbol   string  `json:"tradingsymbol" jsonschema:"instrument symbol, e.g. SBIN-EQ"`
	Quantity        int     `json:"quantity" jsonschema:"number of units to trade"`
	TransactionType string  `json:"transaction_type" jsonschema:"BUY or SELL"`
	Product         string  `json:"product,omitempty" jsonschema:"product type, default CNC"`
	Price           float64 `json:"price,omitempty" jsonschema:"limit price, default 0"`
	OrderType       string  `json:"order_type,omitempty" jsonschema:"order type, default MARKET"`
	Exchange        string  `json:"exchange,omitempty" jsonschema:"exchange, default NSE"`
	Tag             string  `json:"tag,omitempty" jsonschema:"order tag, default MCP"`
}

// Register adds the trading-account tools to the MCP server.
func Register(server *mcp.Server, client *quantplay.Client) {
	s := NewService(client)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_accounts",
		Description: "Get all broker accounts for the user",
	}, s.GetAccounts)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_positions",
		Description: "Get positions for a given account nickname",
	}, s.GetPositions)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_holdings",
		Description: "Get holdings for a given account nickname",
	}, s.GetHoldings)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "place_order",
		Description: "Place an order on a given account nickname",
	}, s.PlaceOrder)
}

// GetAccounts lists every connected broker account.
func (s *Service) GetAccounts(ctx context.Context, req *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
	accounts, err := s.client.GetAccounts(ctx)
	if err != nil {
		return nil, nil, err
	}
	out := make([]map[string]any, 0, len(accounts))
	for _, acct := range accounts {
		out = append(out, acct.ToMap())
	}
	return nil, out, nil
}

// GetPositions lists positions for one account nickname.
func (s *Service) GetPositions(ctx context.Context, req *mcp.CallToolRequest, args NicknameArgs) (*mcp.CallToolResult, any, error) {
	if err := requireNickname(args.Nickname); err != nil {
		return nil, nil, err
	}
	records, err := s.client.GetPositions(ctx, args.Nickname)
	if err != nil {
		return nil, nil, err
	}
	return nil, records, nil
}

// GetHoldings lists holdings for one account nickname.
func (s *Service) GetHoldings(ctx context.Context, req *mcp.CallToolRequest, args NicknameArgs) (*mcp.CallToolResult, any, error) {
	if err := requireNickname(args.Nickname); err != nil {
		return nil, nil, err
	}
	records, err := s.client.GetHoldings(ctx, args.Nickname)
	if err != nil {
		return nil, nil, err
	}
	return nil, records, nil
}

// PlaceOrder submits one order and returns the service acknowledgment.
func (s *Service) PlaceOrder(ctx context.Context, req *mcp.CallToolRequest, args PlaceOrderArgs) (*mcp.CallToolResult, any, error) {
	if err := requireNickname(args.Nickname); err != nil {
		return nil, nil, err
	}
	ack, err := s.client.PlaceOrder(ctx, quantplay.OrderRequest{
		Nickname:        args.Nickname,
		TradingSymbol:   args.TradingSymbol,
		Quantity:        args.Quantity,
		TransactionType: args.TransactionType,
		Product:         args.Product,
		Price:           args.Price,
		OrderType:       args.OrderType,
		Exchange:        args.Exchange,
		Tag:             args.Tag,
	})
	if err != nil {
		return nil, nil, err
	}
	return nil, ack, nil
}

// requireNickname rejects an empty alias before any HTTP call is made. The
// SDK's URL builder deliberately leaves this to its callers.
func requireNickname(nickname string) error {
	if nickname == "" {
		return errors.New("nickname is required")
	}
	return nil
}
