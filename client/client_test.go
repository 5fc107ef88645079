package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/peergov/modgate"
)

func newTestNode(t *testing.T) (*Client, *int) {
	hits := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/.well-known/modgate", func(w http.ResponseWriter, r *http.Request) {
		hits++
		json.NewEncoder(w).Encode(modgate.WellKnownModgate{
			Version: "1.0",
			Domain:  "gate.example.com",
		})
	})
	mux.HandleFunc("/api/v1/proposals/1", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(modgate.Proposal{ID: 1, Status: "pending"})
	})
	mux.HandleFunc("/api/v1/proposals/2", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"proposal not found"}`, http.StatusNotFound)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	c := New(server.Listener.Addr().String())
	c.scheme = "http"
	return c, &hits
}

func TestGetWellKnownCached(t *testing.T) {
	c, hits := newTestNode(t)
	ctx := context.Background()

	wk, err := c.GetWellKnown(ctx, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if wk.Domain != "gate.example.com" {
		t.Fatalf("unexpected descriptor: %+v", wk)
	}

	// second call must come from cache
	if _, err := c.GetWellKnown(ctx, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *hits != 1 {
		t.Fatalf("expected 1 upstream hit, got %d", *hits)
	}
}

func TestGetProposal(t *testing.T) {
	c, _ := newTestNode(t)
	ctx := context.Background()

	proposal, err := c.GetProposal(ctx, "", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if proposal.ID != 1 || proposal.Status != "pending" {
		t.Fatalf("unexpected proposal: %+v", proposal)
	}

	if _, err := c.GetProposal(ctx, "", 2); err == nil {
		t.Fatalf("expected error for missing proposal")
	}
}
