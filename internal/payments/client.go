package payments

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Receipt states reported by the payment provider.
const (
	ReceiptStateCreated  = 0
	ReceiptStateWaiting  = 1
	ReceiptStatePaid     = 4
	ReceiptStateCanceled = 50
)

// Client talks to the Paycom merchant API over JSON-RPC.
type Client struct {
	baseURL    string
	authHeader string
	httpClient *http.Client
}

func NewClient(baseURL, key string) *Client {
	return &Client{
		baseURL:    baseURL,
		authHeader: base64.StdEncoding.EncodeToString([]byte(key + ":")),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type rpcRequest struct {
	ID     int64          `json:"id"`
	Method string         `json:"method"`
	Params map[string]any `json:"params"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

// Receipt is the provider-side payment object.
type Receipt struct {
	ID     string `json:"_id"`
	State  int    `json:"state"`
	Amount int64  `json:"amount"`
}

type receiptResult struct {
	Receipt Receipt `json:"receipt"`
}

// CreateReceipt opens a receipt for the given amount in tiyin, tagged with
// the contribution it pays for.
func (c *Client) CreateReceipt(ctx context.Context, amount int64, contributionID int64) (Receipt, error) {
	result, err := c.call(ctx, "receipts.create", map[string]any{
		"amount": amount,
		"account": map[string]any{
			"contribution_id": contributionID,
		},
	})
	if err != nil {
		return Receipt{}, err
	}
	var parsed receiptResult
	if err := json.Unmarshal(result, &parsed); err != nil {
		return Receipt{}, fmt.Errorf("payments: decode receipt: %w", err)
	}
	return parsed.Receipt, nil
}

// CheckReceipt fetches the current state of a receipt.
func (c *Client) CheckReceipt(ctx context.Context, receiptID string) (Receipt, error) {
	result, err := c.call(ctx, "receipts.check", map[string]any{
		"id": receiptID,
	})
	if err != nil {
		return Receipt{}, err
	}
	var parsed receiptResult
	if err := json.Unmarshal(result, &parsed); err != nil {
		return Receipt{}, fmt.Errorf("payments: decode receipt: %w", err)
	}
	return parsed.Receipt, nil
}

func (c *Client) call(ctx context.Context, method string, params map[string]any) (json.RawMessage, error) {
	body, err := json.Marshal(rpcRequest{
		ID:     time.Now().UnixNano(),
		Method: method,
		Params: params,
	})
	if err != nil {
		return nil, fmt.Errorf("payments: marshal %s: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("payments: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Auth", c.authHeader)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("payments: %s: %w", method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("payments: %s: unexpected status %d", method, resp.StatusCode)
	}

	var rpc rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&rpc); err != nil {
		return nil, fmt.Errorf("payments: decode %s: %w", method, err)
	}
	if rpc.Error != nil {
		return nil, fmt.Errorf("payments: %s: provider error %d: %s", method, rpc.Error.Code, rpc.Error.Message)
	}
	return rpc.Result, nil
}
