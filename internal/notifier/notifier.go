// Package notifier posts resource-changed events to the downstream consumer
// after each successful mutation. Persistence and notification are not
// atomic: a persisted-but-unnotified window exists and the caller retries.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/companieshouse/company-exemptions-api/internal/deltatime"
	"github.com/companieshouse/company-exemptions-api/internal/model"
)

const (
	changedResourcePath = "/private/resource-changed"
	resourceKind        = "company-exemptions"

	eventTypeChanged = "changed"
	eventTypeDeleted = "deleted"
)

// ChangedResource is the envelope posted downstream.
type ChangedResource struct {
	ResourceURI  string         `json:"resource_uri"`
	ResourceKind string         `json:"resource_kind"`
	Event        Event          `json:"event"`
	ContextID    string         `json:"context_id"`
	DeletedData  map[string]any `json:"deleted_data,omitempty"`
}

type Event struct {
	Type        string `json:"type"`
	PublishedAt string `json:"published_at"`
}

type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
	now     func() time.Time
}

// NewClient builds the resource-changed client. The clock is injected so
// published_at is deterministic under test; nil means time.Now.
func NewClient(baseURL, apiKey string, timeout time.Duration, now func() time.Time) *Client {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if now == nil {
		now = time.Now
	}

	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
		now:     now,
	}
}

// NotifyChanged announces an upserted record. No payload travels with it.
func (c *Client) NotifyChanged(ctx context.Context, companyNumber, contextID string) error {
	return c.post(ctx, c.envelope(companyNumber, contextID, eventTypeChanged, nil))
}

// NotifyDeleted announces a deleted record, carrying the last-known payload
// for downstream audit. A nil payload (delete of a record that never existed)
// still notifies, with an empty object.
func (c *Client) NotifyDeleted(ctx context.Context, companyNumber, contextID string, deleted *model.CompanyExemptions) error {
	if deleted == nil {
		deleted = &model.CompanyExemptions{}
	}
	data, err := stripNulls(deleted)
	if err != nil {
		return fmt.Errorf("%w: deleted payload: %v", model.ErrBadRequest, err)
	}
	return c.post(ctx, c.envelope(companyNumber, contextID, eventTypeDeleted, data))
}

func (c *Client) envelope(companyNumber, contextID, eventType string, deleted map[string]any) ChangedResource {
	return ChangedResource{
		ResourceURI:  fmt.Sprintf("company/%s/exemptions", companyNumber),
		ResourceKind: resourceKind,
		Event: Event{
			Type:        eventType,
			PublishedAt: deltatime.PublishedAt(c.now()),
		},
		ContextID:   contextID,
		DeletedData: deleted,
	}
}

func (c *Client) post(ctx context.Context, body ChangedResource) error {
	b, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrBadRequest, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+changedResourcePath, bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrBadRequest, err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", c.apiKey)
	}

	res, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: resource changed call: %v", model.ErrServiceUnavailable, err)
	}

	defer res.Body.Close()

	if res.StatusCode/100 != 2 {
		return fmt.Errorf("%w: resource changed endpoint status %d", model.ErrServiceUnavailable, res.StatusCode)
	}

	return nil
}

// stripNulls round-trips the payload through an untyped decode and removes
// null-valued fields. Downstream consumers must not see explicit nulls.
func stripNulls(v any) (map[string]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	m := map[string]any{}
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	pruneNulls(m)
	return m, nil
}

func pruneNulls(m map[string]any) {
	for k, v := range m {
		switch vv := v.(type) {
		case nil:
			delete(m, k)
		case map[string]any:
			pruneNulls(vv)
		case []any:
			for _, item := range vv {
				if im, ok := item.(map[string]any); ok {
					pruneNulls(im)
				}
			}
		}
	}
}
