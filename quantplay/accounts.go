package quantplay

import (
	"context"
	"encoding/json"
	"fmt"
)

// GetAccounts returns every broker account connected for the caller.
func (c *Client) GetAccounts(ctx context.Context) ([]Account, error) {
	data, err := c.get(ctx, EndpointAccounts)
	if err != nil {
		return nil, err
	}
	return decodeAccounts(data)
}

// GetPositions returns open positions for one account nickname. The record
// schema is owned by the service and passed through untouched.
func (c *Client) GetPositions(ctx context.Context, nickname string) ([]map[string]any, error) {
	data, err := c.get(ctx, fmt.Sprintf(EndpointPositions, nickname))
	if err != nil {
		return nil, err
	}
	return decodeRecords(data)
}

// GetHoldings returns holdings for one account nickname. Like positions,
// the record schema is owned by the service.
func (c *Client) GetHoldings(ctx context.Context, nickname string) ([]map[string]any, error) {
	data, err := c.get(ctx, fmt.Sprintf(EndpointHoldings, nickname))
	if err != nil {
		return nil, err
	}
	return decodeRecords(data)
}

func decodeAccounts(data json.RawMessage) ([]Account, error) {
	items, err := decodeRecords(data)
	if err != nil {
		return nil, err
	}
	accounts := make([]Account, 0, len(items))
	for _, item := range items {
		acct, err := AccountFromMap(item)
		if err != nil {
			return nil, newParseError(err)
		}
		accounts = append(accounts, acct)
	}
	return accounts, nil
}

func decodeRecords(data json.RawMessage) ([]map[string]any, error) {
	var records []map[string]any
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, newParseError(err)
	}
	return records, nil
}
