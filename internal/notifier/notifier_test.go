package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/companieshouse/company-exemptions-api/internal/model"
)

func fixedClock() time.Time {
	return time.Date(2023, 5, 15, 9, 30, 0, 0, time.UTC)
}

func capture(t *testing.T, status int) (*httptest.Server, *http.Request, *ChangedResource) {
	t.Helper()
	var gotReq http.Request
	var gotBody ChangedResource
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReq = *r.Clone(context.Background())
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv, &gotReq, &gotBody
}

func TestNotifyChangedEnvelope(t *testing.T) {
	srv, req, body := capture(t, http.StatusOK)
	c := NewClient(srv.URL, "test-key", time.Second, fixedClock)

	if err := c.NotifyChanged(context.Background(), "12345678", "ctx-1"); err != nil {
		t.Fatalf("NotifyChanged: %v", err)
	}

	if req.URL.Path != "/private/resource-changed" {
		t.Errorf("path = %q", req.URL.Path)
	}
	if got := req.Header.Get("Authorization"); got != "test-key" {
		t.Errorf("Authorization = %q", got)
	}
	if body.ResourceURI != "company/12345678/exemptions" {
		t.Errorf("resource_uri = %q", body.ResourceURI)
	}
	if body.ResourceKind != "company-exemptions" {
		t.Errorf("resource_kind = %q", body.ResourceKind)
	}
	if body.Event.Type != "changed" {
		t.Errorf("event.type = %q", body.Event.Type)
	}
	if body.Event.PublishedAt != "2023-05-15T09:30:00" {
		t.Errorf("event.published_at = %q", body.Event.PublishedAt)
	}
	if body.ContextID != "ctx-1" {
		t.Errorf("context_id = %q", body.ContextID)
	}
	if body.DeletedData != nil {
		t.Errorf("changed event must not carry deleted_data, got %v", body.DeletedData)
	}
}

func TestNotifyDeletedStripsNulls(t *testing.T) {
	var raw map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", time.Second, fixedClock)

	deleted := &model.CompanyExemptions{
		Etag: "etag-1",
		Kind: model.KindExemptions,
		Exemptions: &model.Exemptions{
			PscExemptAsTradingOnRegulatedMarket: &model.Exemption{
				ExemptionType: model.TypePscExemptAsTradingOnRegulatedMarket,
				Items: []model.ExemptionItem{
					{ExemptFrom: model.NewDate(2022, time.November, 3)},
				},
			},
		},
	}
	if err := c.NotifyDeleted(context.Background(), "12345678", "ctx-2", deleted); err != nil {
		t.Fatalf("NotifyDeleted: %v", err)
	}

	b, err := json.Marshal(raw["deleted_data"])
	if err != nil {
		t.Fatalf("re-marshal deleted_data: %v", err)
	}
	if strings.Contains(string(b), "null") {
		t.Fatalf("deleted_data contains explicit nulls: %s", b)
	}
	data, ok := raw["deleted_data"].(map[string]any)
	if !ok {
		t.Fatalf("deleted_data missing: %v", raw)
	}
	if data["etag"] != "etag-1" {
		t.Errorf("deleted_data.etag = %v", data["etag"])
	}
}

func TestNotifyDeletedNilPayloadSendsEmptyObject(t *testing.T) {
	var raw map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", time.Second, fixedClock)
	if err := c.NotifyDeleted(context.Background(), "00000000", "ctx-3", nil); err != nil {
		t.Fatalf("NotifyDeleted: %v", err)
	}

	data, ok := raw["deleted_data"]
	if !ok {
		t.Fatalf("deleted_data absent from delete notification: %v", raw)
	}
	m, ok := data.(map[string]any)
	if !ok || len(m) != 0 {
		t.Fatalf("deleted_data = %v, want empty object", data)
	}
}

func TestNon2xxIsServiceUnavailable(t *testing.T) {
	srv, _, _ := capture(t, http.StatusBadGateway)
	c := NewClient(srv.URL, "", time.Second, fixedClock)

	err := c.NotifyChanged(context.Background(), "12345678", "ctx-4")
	if !errors.Is(err, model.ErrServiceUnavailable) {
		t.Fatalf("err = %v, want ErrServiceUnavailable", err)
	}
}

func TestTransportFailureIsServiceUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused

	c := NewClient(srv.URL, "", 200*time.Millisecond, fixedClock)
	err := c.NotifyChanged(context.Background(), "12345678", "ctx-5")
	if !errors.Is(err, model.ErrServiceUnavailable) {
		t.Fatalf("err = %v, want ErrServiceUnavailable", err)
	}
}
