package quantplay

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// do issues one blocking request and runs the outcome through the shared
// response contract. Transport failures are classified at this boundary;
// classified errors raised deeper pass through unchanged.
func (c *Client) do(ctx context.Context, method, endpoint string, body any) (json.RawMessage, error) {
	reqURL := c.buildURL(endpoint)
	fields := log.Fields{
		"request_id": uuid.NewString(),
		"method":     method,
		"url":        reqURL,
	}
	log.WithFields(fields).Debug("quantplay: dispatching request")

	req := c.restClient().R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}

	var resp *resty.Response
	var err error
	switch method {
	case http.MethodGet:
		resp, err = req.Get(reqURL)
	case http.MethodPost:
		resp, err = req.Post(reqURL)
	default:
		return nil, errors.Errorf("unsupported method: %s", method)
	}
	if err != nil {
		cerr := c.classifyTransportError(err)
		log.WithFields(fields).WithError(err).Error("quantplay: request failed")
		return nil, cerr
	}

	return handleResponse(resp.StatusCode(), resp.Body())
}

func (c *Client) get(ctx context.Context, endpoint string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, endpoint, nil)
}
