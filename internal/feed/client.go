// Package feed talks to the spreadsheet-backed HTTP endpoints that publish pending records.
package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

var ErrRejected = errors.New("feed rejected request")

// Client reads and writes rows on a single feed endpoint per call.
type Client struct {
	http *resty.Client
}

// NewClient returns a client whose requests give up after timeout. Zero means no limit.
func NewClient(timeout time.Duration) *Client {
	c := resty.New()
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	c.SetHeader("Accept", "application/json")
	return &Client{http: c}
}

// Fetch returns every row the endpoint currently lists.
func (c *Client) Fetch(ctx context.Context, endpoint string) ([]Row, error) {
	resp, err := c.http.R().SetContext(ctx).Get(endpoint)
	if err != nil {
		return nil, err
	}

	env, err := decodeEnvelope(resp)
	if err != nil {
		return nil, err
	}

	if len(env.Data) == 0 || string(env.Data) == "null" {
		return []Row{}, nil
	}

	var rows []Row
	if err := json.Unmarshal(env.Data, &rows); err != nil {
		return nil, fmt.Errorf("decode feed rows: %w", err)
	}
	return rows, nil
}

// Append adds row to the sheet behind endpoint.
func (c *Client) Append(ctx context.Context, endpoint string, row Row) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(row).
		Post(endpoint)
	if err != nil {
		return err
	}

	_, err = decodeEnvelope(resp)
	return err
}

// Delete removes the row with transCode from the sheet behind endpoint.
func (c *Client) Delete(ctx context.Context, endpoint string, transCode string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"action":    "delete",
			"transCode": transCode,
		}).
		Get(endpoint)
	if err != nil {
		return err
	}

	_, err = decodeEnvelope(resp)
	return err
}

func decodeEnvelope(resp *resty.Response) (*Envelope, error) {
	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("feed request status: %d", resp.StatusCode())
	}

	env := &Envelope{}
	if err := json.Unmarshal(resp.Body(), env); err != nil {
		return nil, fmt.Errorf("decode feed response: %w", err)
	}

	if !env.Success {
		if env.Error != "" {
			return nil, fmt.Errorf("%w: %s", ErrRejected, env.Error)
		}
		return nil, ErrRejected
	}

	return env, nil
}
