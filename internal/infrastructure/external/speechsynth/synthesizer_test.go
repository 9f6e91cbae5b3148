package speechsynth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"

	"github.com/talentwire/interview-orchestrator/pkg/config"
)

func TestDispatch_SendsPrompt(t *testing.T) {
	sessionID := uuid.New()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/synthesize" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		var payload dispatchRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("invalid payload: %v", err)
		}
		if payload.SessionID != sessionID.String() || payload.Text != "Tell me about yourself" {
			t.Fatalf("wrong payload: %+v", payload)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer ts.Close()

	c := NewClient(&config.SpeechConfig{SynthesizerURL: ts.URL})
	if err := c.Dispatch(context.Background(), sessionID, "Tell me about yourself"); err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}
}

func TestDispatch_RetriesServerErrors(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer ts.Close()

	c := NewClient(&config.SpeechConfig{SynthesizerURL: ts.URL})
	if err := c.Dispatch(context.Background(), uuid.New(), "prompt"); err != nil {
		t.Fatalf("dispatch should succeed after retries: %v", err)
	}
	if atomic.LoadInt32(&calls) != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls)
	}
}

func TestDispatch_ClientErrorIsPermanent(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer ts.Close()

	c := NewClient(&config.SpeechConfig{SynthesizerURL: ts.URL})
	if err := c.Dispatch(context.Background(), uuid.New(), "prompt"); err == nil {
		t.Fatal("expected error for rejected request")
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("4xx must not be retried, got %d attempts", calls)
	}
}
