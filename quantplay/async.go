package quantplay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pkg/errors"
)

// AccountsResult is delivered by GetAccountsAsync.
type AccountsResult struct {
	Accounts []Account
	Err      error
}

// RecordsResult is delivered by the async positions and holdings calls.
type RecordsResult struct {
	Records []map[string]any
	Err     error
}

// OrderResult is delivered by PlaceOrderAsync.
type OrderResult struct {
	Ack map[string]any
	Err error
}

// GetAccountsAsync issues the accounts request on its own goroutine and
// delivers exactly one result before closing the returned channel.
//
// When session is nil a transport scoped to this single call is created
// with the client's timeout and released on every exit path. A
// caller-supplied session is never closed; its lifetime stays with the
// caller.
func (c *Client) GetAccountsAsync(ctx context.Context, session *http.Client) <-chan AccountsResult {
	out := make(chan AccountsResult, 1)
	go func() {
		defer close(out)
		data, err := c.doAsync(ctx, http.MethodGet, EndpointAccounts, nil, session)
		if err != nil {
			out <- AccountsResult{Err: err}
			return
		}
		accounts, err := decodeAccounts(data)
		out <- AccountsResult{Accounts: accounts, Err: err}
	}()
	return out
}

// GetPositionsAsync is the asynchronous variant of GetPositions. Session
// ownership follows the GetAccountsAsync rules.
func (c *Client) GetPositionsAsync(ctx context.Context, nickname string, session *http.Client) <-chan RecordsResult {
	return c.recordsAsync(ctx, fmt.Sprintf(EndpointPositions, nickname), session)
}

// GetHoldingsAsync is the asynchronous variant of GetHoldings. Session
// ownership follows the GetAccountsAsync rules.
func (c *Client) GetHoldingsAsync(ctx context.Context, nickname string, session *http.Client) <-chan RecordsResult {
	return c.recordsAsync(ctx, fmt.Sprintf(EndpointHoldings, nickname), session)
}

// PlaceOrderAsync is the asynchronous variant of PlaceOrder. Session
// ownership follows the GetAccountsAsync rules.
func (c *Client) PlaceOrderAsync(ctx context.Context, req OrderRequest, session *http.Client) <-chan OrderResult {
	out := make(chan OrderResult, 1)
	go func() {
		defer close(out)
		req.applyDefaults()
		data, err := c.doAsync(ctx, http.MethodPost, fmt.Sprintf(EndpointPlaceOrder, req.Nickname), req, session)
		if err != nil {
			out <- OrderResult{Err: err}
			return
		}
		ack, err := decodeOrderAck(data)
		out <- OrderResult{Ack: ack, Err: err}
	}()
	return out
}

func (c *Client) recordsAsync(ctx context.Context, endpoint string, session *http.Client) <-chan RecordsResult {
	out := make(chan RecordsResult, 1)
	go func() {
		defer close(out)
		data, err := c.doAsync(ctx, http.MethodGet, endpoint, nil, session)
		if err != nil {
			out <- RecordsResult{Err: err}
			return
		}
		records, err := decodeRecords(data)
		out <- RecordsResult{Records: records, Err: err}
	}()
	return out
}

// doAsync issues one request over the given session. Ownership is decided at
// entry: a nil session means this call owns the transport it creates and
// must release it on every exit path.
func (c *Client) doAsync(ctx context.Context, method, endpoint string, body any, session *http.Client) (json.RawMessage, error) {
	ownsSession := session == nil
	if ownsSession {
		session = &http.Client{Timeout: c.timeout}
		defer session.CloseIdleConnections()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "encode request body")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.buildURL(endpoint), reader)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := session.Do(req)
	if err != nil {
		return nil, c.classifyTransportError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.classifyTransportError(err)
	}
	return handleResponse(resp.StatusCode, raw)
}
