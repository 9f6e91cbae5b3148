package speech

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTranscribeAudio_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST got %s", r.Method)
		}
		if r.Header.Get("Authorization") != "test-key" {
			t.Fatalf("missing api key header")
		}
		var payload TranscribeRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("invalid payload: %v", err)
		}
		if payload.AudioURL != "http://example.com/answer.wav" {
			t.Fatalf("wrong audio url: %s", payload.AudioURL)
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"id": "transcript-123", "status": "processing"})
	}))
	defer ts.Close()

	client := NewAssemblyAIClient("test-key")
	client.baseURL = ts.URL

	id, err := client.TranscribeAudio(context.Background(), "http://example.com/answer.wav", "http://localhost/webhook", "X-Transcript-Token", "token-value", nil)
	if err != nil {
		t.Fatalf("transcribe failed: %v", err)
	}
	if id != "transcript-123" {
		t.Fatalf("unexpected id %s", id)
	}
}

func TestVerifyHMAC(t *testing.T) {
	payload := []byte(`{"session_id":"abc"}`)

	mac := hmac.New(sha256.New, []byte("secret"))
	mac.Write(payload)
	valid := hex.EncodeToString(mac.Sum(nil))

	if !VerifyHMAC("secret", payload, valid) {
		t.Fatal("valid signature must verify")
	}
	if VerifyHMAC("", payload, "deadbeef") {
		t.Fatal("empty secret must never verify")
	}
	if VerifyHMAC("secret", payload, "") {
		t.Fatal("empty signature must never verify")
	}
	if VerifyHMAC("secret", payload, "deadbeef") {
		t.Fatal("wrong signature must not verify")
	}
}
