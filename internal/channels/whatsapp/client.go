package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultGraphAPIBase = "https://graph.facebook.com/v17.0"
	defaultSendTimeout  = 10 * time.Second
)

// Client sends messages via the WhatsApp Cloud API (Meta Graph).
type Client struct {
	token         string
	phoneNumberID string
	graphAPIBase  string
	httpClient    *http.Client
}

// NewClient creates a new Cloud API client. Missing credentials are not an
// error here; Send reports a *ConfigurationError before any network call.
func NewClient(token, phoneNumberID string) *Client {
	return &Client{
		token:         token,
		phoneNumberID: phoneNumberID,
		graphAPIBase:  defaultGraphAPIBase,
		httpClient:    &http.Client{Timeout: defaultSendTimeout},
	}
}

// SetGraphAPIBase overrides the Graph API base URL (useful for testing).
func (c *Client) SetGraphAPIBase(base string) {
	c.graphAPIBase = base
}

// SetTimeout bounds the outbound send. Keep this well under Meta's webhook
// response deadline or unanswered deliveries get redelivered.
func (c *Client) SetTimeout(d time.Duration) {
	if d > 0 {
		c.httpClient.Timeout = d
	}
}

// SendText sends a text message to the given user. Options, when non-empty,
// are attached as quick-reply buttons in order; each option string is both
// the button title and the payload echoed back on tap. Exactly one send
// attempt is made per invocation.
func (c *Client) SendText(ctx context.Context, to, body string, options []string) (*SendResponse, error) {
	var missing []string
	if c.token == "" {
		missing = append(missing, "WHATSAPP_TOKEN")
	}
	if c.phoneNumberID == "" {
		missing = append(missing, "WHATSAPP_PHONE_NUMBER_ID")
	}
	if len(missing) > 0 {
		return nil, &ConfigurationError{Missing: missing}
	}

	req := SendRequest{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "text",
		Text:             SendText{Body: body},
	}
	if len(options) > 0 {
		noPreview := false
		req.Text.PreviewURL = &noPreview
		for _, option := range options {
			req.Text.QuickReplies = append(req.Text.QuickReplies, QuickReply{
				Type:    "text",
				Title:   option,
				Payload: option,
			})
		}
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("whatsapp: marshal send request: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", c.graphAPIBase, c.phoneNumberID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("whatsapp: create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.token)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &DeliveryError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &DeliveryError{Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &DeliveryError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var sendResp SendResponse
	if err := json.Unmarshal(respBody, &sendResp); err != nil {
		return nil, fmt.Errorf("whatsapp: unmarshal response: %w", err)
	}
	if sendResp.Error != nil {
		return &sendResp, &DeliveryError{
			StatusCode: resp.StatusCode,
			Body:       fmt.Sprintf("API error %d: %s", sendResp.Error.Code, sendResp.Error.Message),
		}
	}

	return &sendResp, nil
}
