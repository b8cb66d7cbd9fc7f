package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestWebhookStageChanged(t *testing.T) {
	received := make(chan Event, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var e Event
		if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
			t.Errorf("decode: %v", err)
		}
		received <- e
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	at := time.Date(2024, 4, 2, 15, 0, 0, 0, time.UTC)
	hook := NewWebhook(srv.URL, time.Second)
	err := hook.StageChanged(context.Background(), Event{
		TenantID: "acme", JobID: "j1", CandidateID: "c1", FromStageID: "applied", ToStageID: "offer", MovedAt: at,
	})
	if err != nil {
		t.Fatalf("StageChanged: %v", err)
	}

	got := <-received
	if got.CandidateID != "c1" || got.ToStageID != "offer" || !got.MovedAt.Equal(at) {
		t.Fatalf("received %+v", got)
	}
}

func TestWebhookFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	if err := NewWebhook(srv.URL, time.Second).StageChanged(context.Background(), Event{}); err == nil {
		t.Fatal("expected error on 500")
	}
}
