package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"examforge/internal/model"
)

func TestCreateParentDecodesEnvelope(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"passage": map[string]interface{}{"id": 314, "title": "ignored"},
		})
	}))
	defer srv.Close()

	client := NewBackendClient(srv.URL)
	id, err := client.CreateParent(context.Background(), "tok", model.KindReading, ParentCreateRequest{Title: "t"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// numeric IDs come back as their decimal string
	if id != "314" {
		t.Fatalf("expected 314, got %q", id)
	}
	if gotAuth != "Bearer tok" {
		t.Fatalf("bearer token not sent: %q", gotAuth)
	}
}

func TestCreateParentMissingEnvelopeKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"wrong":{"id":"x"}}`))
	}))
	defer srv.Close()

	client := NewBackendClient(srv.URL)
	if _, err := client.CreateParent(context.Background(), "tok", model.KindReading, ParentCreateRequest{}); err == nil {
		t.Fatal("expected an error for a response missing the parent key")
	}
}

func TestDoRequestRetriesOnRateLimit(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"id":"q_1"}`))
	}))
	defer srv.Close()

	client := NewBackendClient(srv.URL)
	id, err := client.CreateQuestion(context.Background(), "tok", model.KindReading, "p1", QuestionCreateRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "q_1" {
		t.Fatalf("expected q_1, got %q", id)
	}
	if atomic.LoadInt32(&calls) != 2 {
		t.Fatalf("expected 2 calls, got %d", calls)
	}
}

func TestDoRequestFailsFastOnClientError(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail":"bad payload"}`))
	}))
	defer srv.Close()

	client := NewBackendClient(srv.URL)
	if _, err := client.CreateQuestion(context.Background(), "tok", model.KindReading, "p1", QuestionCreateRequest{}); err == nil {
		t.Fatal("expected an error")
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("4xx must not be retried, got %d calls", calls)
	}
}

func TestDecodeID(t *testing.T) {
	if id, err := decodeID(json.RawMessage(`"abc"`)); err != nil || id != "abc" {
		t.Fatalf("string id: %q %v", id, err)
	}
	if id, err := decodeID(json.RawMessage(`42`)); err != nil || id != "42" {
		t.Fatalf("numeric id: %q %v", id, err)
	}
	if _, err := decodeID(nil); err == nil {
		t.Fatal("missing id must error")
	}
	if _, err := decodeID(json.RawMessage(`[1]`)); err == nil {
		t.Fatal("unsupported id shape must error")
	}
}
