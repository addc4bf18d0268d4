package searchkit

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestSearchGlobalSendsBearerAndQuery(t *testing.T) {
	var gotAuth, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.Query().Get("q")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"query":       "fredrick",
			"total_count": 0,
			"results":     map[string]interface{}{},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "token-123")
	response, err := client.SearchGlobal(context.Background(), "fredrick", 10)
	if err != nil {
		t.Fatalf("SearchGlobal failed: %v", err)
	}
	if gotAuth != "Bearer token-123" {
		t.Errorf("expected bearer header, got %q", gotAuth)
	}
	if gotQuery != "fredrick" {
		t.Errorf("expected q parameter, got %q", gotQuery)
	}
	if response.Results == nil {
		t.Error("Results must never be nil")
	}
}

func TestSearchGlobalPreservesCategoryOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Deliberately not alphabetical: the decoded order must match.
		_, _ = w.Write([]byte(`{
			"query": "f",
			"total_count": 3,
			"results": {
				"staff": [{"id": 7, "title": "S", "subtitle": "", "url": "/staff/7"}],
				"patients": [
					{"id": 1, "title": "A", "subtitle": "", "url": "/patients/1"},
					{"id": 2, "title": "B", "subtitle": "", "url": "/patients/2"}
				]
			}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "t")
	response, err := client.SearchGlobal(context.Background(), "f", 0)
	if err != nil {
		t.Fatalf("SearchGlobal failed: %v", err)
	}

	var keys []string
	for pair := response.Results.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	if len(keys) != 2 || keys[0] != "staff" || keys[1] != "patients" {
		t.Errorf("category order must match the wire order, got %v", keys)
	}
}

func TestSearchGlobalRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"query": "f", "total_count": 0, "results": map[string]interface{}{},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "t", WithMaxRetries(3))
	if _, err := client.SearchGlobal(context.Background(), "f", 0); err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if calls.Load() != 3 {
		t.Errorf("expected 3 attempts, got %d", calls.Load())
	}
}

func TestSearchGlobalDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid query parameters"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "t", WithMaxRetries(3))
	_, err := client.SearchGlobal(context.Background(), "f", 0)

	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected a 400 APIError, got %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("4xx must not be retried, got %d attempts", calls.Load())
	}
}

func TestDecodeListPayloadEnvelope(t *testing.T) {
	page, err := DecodeListPayload(json.RawMessage(`{"items": [1, 2, 3], "total": 42, "page": 1}`))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !page.HasEnvelope {
		t.Error("expected envelope shape")
	}
	if page.Total != 42 {
		t.Errorf("expected total 42, got %d", page.Total)
	}
}

func TestDecodeListPayloadBareArray(t *testing.T) {
	page, err := DecodeListPayload(json.RawMessage(` [1, 2, 3]`))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if page.HasEnvelope {
		t.Error("expected bare-array shape")
	}
	if page.Total != 3 {
		t.Errorf("bare array total should be the item count, got %d", page.Total)
	}
}
