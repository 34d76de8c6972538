package intent

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestParseOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/parse_order" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[{"item":"indomie_goreng","qty":2},{"item":"","qty":1},{"item":"es_teh","qty":-3}],"confidence":0.9}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	hints, err := c.ParseOrder(context.Background(), "pesan 2 indomie sama es teh")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hints) != 2 {
		t.Fatalf("got %d hints, want 2 (empty item dropped)", len(hints))
	}
	if hints[0].Item != "indomie_goreng" || hints[0].Qty != 2 {
		t.Fatalf("hints[0]=%+v", hints[0])
	}
	// negative qty degrades to unset, the entry itself survives
	if hints[1].Item != "es_teh" || hints[1].Qty != 0 {
		t.Fatalf("hints[1]=%+v, want es_teh with qty unset", hints[1])
	}
}

func TestParseOrderServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	if _, err := c.ParseOrder(context.Background(), "pesan indomie"); err == nil {
		t.Fatal("expected error on 5xx")
	}
}

func TestParseOrderMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	if _, err := c.ParseOrder(context.Background(), "pesan indomie"); err == nil {
		t.Fatal("expected error on malformed body")
	}
}

func TestDisabledClient(t *testing.T) {
	c := NewClient("", time.Second)
	if c.Enabled() {
		t.Fatal("client without base url must be disabled")
	}
	if _, err := c.ParseOrder(context.Background(), "x"); err == nil {
		t.Fatal("expected error from disabled client")
	}

	var nilClient *Client
	if nilClient.Enabled() {
		t.Fatal("nil client must be disabled")
	}
}
