package aircall

import (
	"context"
	"errors"
	"net/http"
	"net/url"
)

// Webhook represents a subscription delivering Aircall events to a URL.
// Webhooks are identified by an opaque webhook_id token.
type Webhook struct {
	WebhookID  string   `json:"webhook_id,omitempty"`
	DirectLink string   `json:"direct_link,omitempty"`
	CustomName string   `json:"custom_name,omitempty"`
	URL        string   `json:"url"`
	Active     bool     `json:"active"`
	Events     []string `json:"events,omitempty"`
	CreatedAt  string   `json:"created_at,omitempty"`
}

func (w *Webhook) validate() error {
	if w.WebhookID == "" {
		return errors.New("webhook is missing required field webhook_id")
	}
	return nil
}

// WebhooksService exposes the webhook endpoints.
type WebhooksService struct {
	client *Client
}

// Get retrieves a single webhook by its webhook_id.
func (s *WebhooksService) Get(ctx context.Context, webhookID string) (*Webhook, error) {
	if webhookID == "" {
		return nil, newValidationError("webhook_id is required")
	}
	return fetchOne[Webhook](ctx, s.client, http.MethodGet, "webhooks/"+url.PathEscape(webhookID), nil, nil, "webhook")
}

// List returns a lazy iterator over all webhooks.
func (s *WebhooksService) List() *Iterator[Webhook] {
	query := withDefaultPageSize(url.Values{}, s.client.pageSize)
	return newIterator[Webhook](s.client, "webhooks", "webhooks", query)
}

// Create registers a new webhook subscription. URL and at least one event
// are required.
func (s *WebhooksService) Create(ctx context.Context, webhook *Webhook) (*Webhook, error) {
	if webhook == nil || webhook.URL == "" {
		return nil, newValidationError("webhook url is required")
	}
	if len(webhook.Events) == 0 {
		return nil, newValidationError("webhook needs at least one event")
	}
	return fetchOne[Webhook](ctx, s.client, http.MethodPost, "webhooks", nil, webhook, "webhook")
}

// Update modifies an existing webhook, including toggling Active.
func (s *WebhooksService) Update(ctx context.Context, webhookID string, webhook *Webhook) (*Webhook, error) {
	if webhookID == "" {
		return nil, newValidationError("webhook_id is required")
	}
	if webhook == nil {
		return nil, newValidationError("webhook is required")
	}
	return fetchOne[Webhook](ctx, s.client, http.MethodPut, "webhooks/"+url.PathEscape(webhookID), nil, webhook, "webhook")
}

// Delete removes a webhook subscription.
func (s *WebhooksService) Delete(ctx context.Context, webhookID string) error {
	if webhookID == "" {
		return newValidationError("webhook_id is required")
	}
	return s.client.do(ctx, http.MethodDelete, "webhooks/"+url.PathEscape(webhookID), nil, nil, nil)
}
