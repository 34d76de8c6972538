package bot

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"warunggo/internal/domain"
	"warunggo/internal/reply"
)

type fakeStore struct {
	snap     domain.Snapshot
	loadErr  error
	saved    *domain.Snapshot
	recorded []domain.ValidatedLine
}

func (f *fakeStore) LoadSnapshot(context.Context) (domain.Snapshot, error) {
	if f.loadErr != nil {
		return domain.Snapshot{}, f.loadErr
	}
	return f.snap, nil
}

func (f *fakeStore) SaveSnapshot(_ context.Context, snap domain.Snapshot) error {
	f.saved = &snap
	return nil
}

func (f *fakeStore) RecordOrder(_ context.Context, _ string, lines []domain.ValidatedLine, _ int) (string, error) {
	f.recorded = lines
	return "order-1", nil
}

type fakeHints struct {
	hints []domain.Hint
	err   error
}

func (f *fakeHints) Enabled() bool { return true }

func (f *fakeHints) ParseOrder(context.Context, string) ([]domain.Hint, error) {
	return f.hints, f.err
}

type fakeSource struct {
	snap domain.Snapshot
	err  error
}

func (f *fakeSource) Fetch(context.Context) (domain.Snapshot, error) {
	return f.snap, f.err
}

func testSnapshot() domain.Snapshot {
	snap := domain.NewSnapshot()
	snap.Add("indomie_goreng", 10000, 5)
	snap.Add("es_teh", 5000, 10)
	return snap
}

func newTestHandler(st Store, hints HintService, source CatalogSource) *Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHandler(Config{OwnerIDs: []string{"owner-chat"}}, st, hints, source, logger)
}

func TestHandleIgnoresEmptyBody(t *testing.T) {
	h := newTestHandler(&fakeStore{snap: testSnapshot()}, nil, &fakeSource{})
	if got := h.Handle(context.Background(), "c1", domain.InboundMessage{}); got != "" {
		t.Fatalf("got %q, want no reply", got)
	}
}

func TestCustomerOrderAccepted(t *testing.T) {
	st := &fakeStore{snap: testSnapshot()}
	h := newTestHandler(st, nil, &fakeSource{})

	got := h.Handle(context.Background(), "c1", domain.InboundMessage{
		Sender: "628123",
		Text:   "pesan 2 indomie goreng",
	})
	if !strings.Contains(got, "indomie goreng x2") {
		t.Fatalf("reply=%q, want an invoice line", got)
	}
	if !strings.Contains(got, "Pelanggan: +628123") {
		t.Fatalf("reply=%q, want the customer number", got)
	}
	if len(st.recorded) != 1 {
		t.Fatalf("recorded %d lines, want 1", len(st.recorded))
	}
}

func TestCustomerEmptyCatalog(t *testing.T) {
	h := newTestHandler(&fakeStore{snap: domain.NewSnapshot()}, nil, &fakeSource{})
	got := h.Handle(context.Background(), "c1", domain.InboundMessage{Text: "pesan indomie"})
	if got != reply.EmptyCatalog() {
		t.Fatalf("reply=%q, want empty-catalog message", got)
	}
}

func TestCustomerStoreFailureBehavesLikeEmptyCatalog(t *testing.T) {
	h := newTestHandler(&fakeStore{loadErr: errors.New("db down")}, nil, &fakeSource{})
	got := h.Handle(context.Background(), "c1", domain.InboundMessage{Text: "pesan indomie"})
	if got != reply.EmptyCatalog() {
		t.Fatalf("reply=%q, want empty-catalog message", got)
	}
}

func TestCustomerHintFailureFallsBackToLocal(t *testing.T) {
	st := &fakeStore{snap: testSnapshot()}
	h := newTestHandler(st, &fakeHints{err: errors.New("timeout")}, &fakeSource{})

	got := h.Handle(context.Background(), "c1", domain.InboundMessage{Text: "mau es teh dong"})
	if !strings.Contains(got, "es teh x1") {
		t.Fatalf("reply=%q, want a local-match invoice", got)
	}
}

func TestCustomerHintsDriveMultiOrder(t *testing.T) {
	st := &fakeStore{snap: testSnapshot()}
	hints := &fakeHints{hints: []domain.Hint{
		{Item: "indomie goreng", Qty: 2},
		{Item: "es teh", Qty: 1},
	}}
	h := newTestHandler(st, hints, &fakeSource{})

	got := h.Handle(context.Background(), "c1", domain.InboundMessage{Text: "2 indomie sama es teh"})
	if !strings.Contains(got, "1. indomie goreng x2") || !strings.Contains(got, "2. es teh x1") {
		t.Fatalf("reply=%q, want both invoice lines", got)
	}
	if !strings.Contains(got, "Total: Rp 25.000") {
		t.Fatalf("reply=%q, want total 25.000", got)
	}
}

func TestCustomerInsufficientStock(t *testing.T) {
	h := newTestHandler(&fakeStore{snap: testSnapshot()}, nil, &fakeSource{})
	got := h.Handle(context.Background(), "c1", domain.InboundMessage{Text: "mau indomie goreng 10"})
	if got != reply.InsufficientStock("indomie_goreng", 5) {
		t.Fatalf("reply=%q", got)
	}
}

func TestCustomerFallback(t *testing.T) {
	h := newTestHandler(&fakeStore{snap: testSnapshot()}, nil, &fakeSource{})
	got := h.Handle(context.Background(), "c1", domain.InboundMessage{Text: "halo apa kabar"})
	if got != reply.Fallback() {
		t.Fatalf("reply=%q, want fallback", got)
	}
}

func TestOwnerMenuCommand(t *testing.T) {
	h := newTestHandler(&fakeStore{snap: testSnapshot()}, nil, &fakeSource{})
	got := h.Handle(context.Background(), "owner-chat", domain.InboundMessage{Text: "/menu"})
	if !strings.HasPrefix(got, "*Menu WarungGo*") {
		t.Fatalf("reply=%q, want the menu listing", got)
	}
}

func TestOwnerRoleTag(t *testing.T) {
	// the transport can tag the role explicitly, regardless of chat id
	h := newTestHandler(&fakeStore{snap: testSnapshot()}, nil, &fakeSource{})
	got := h.Handle(context.Background(), "any-chat", domain.InboundMessage{Role: "owner", Text: "/stok"})
	if !strings.HasPrefix(got, "*Stok WarungGo*") {
		t.Fatalf("reply=%q, want the stock listing", got)
	}
}

func TestOwnerCommandsAreCaseInsensitive(t *testing.T) {
	h := newTestHandler(&fakeStore{snap: testSnapshot()}, nil, &fakeSource{})
	got := h.Handle(context.Background(), "owner-chat", domain.InboundMessage{Text: "/STOK please"})
	if !strings.HasPrefix(got, "*Stok WarungGo*") {
		t.Fatalf("reply=%q, want the stock listing", got)
	}
}

func TestOwnerSync(t *testing.T) {
	fresh := domain.NewSnapshot()
	fresh.Add("kopi_susu", 8000, 3)

	st := &fakeStore{snap: testSnapshot()}
	h := newTestHandler(st, nil, &fakeSource{snap: fresh})

	got := h.Handle(context.Background(), "owner-chat", domain.InboundMessage{Text: "/sync"})
	if !strings.Contains(got, "kopi susu") {
		t.Fatalf("reply=%q, want the refreshed listing", got)
	}
	if st.saved == nil || !st.saved.HasItem("kopi_susu") {
		t.Fatal("refreshed snapshot was not persisted")
	}
}

func TestOwnerSyncFailure(t *testing.T) {
	h := newTestHandler(&fakeStore{snap: testSnapshot()}, nil, &fakeSource{err: errors.New("credentials")})
	got := h.Handle(context.Background(), "owner-chat", domain.InboundMessage{Text: "/sync"})
	if got != reply.SyncFailed() {
		t.Fatalf("reply=%q, want the sync failure message", got)
	}
}

func TestOwnerUnknownCommand(t *testing.T) {
	h := newTestHandler(&fakeStore{snap: testSnapshot()}, nil, &fakeSource{})
	got := h.Handle(context.Background(), "owner-chat", domain.InboundMessage{Text: "/promo"})
	if got != reply.UnknownCommand() {
		t.Fatalf("reply=%q, want unknown-command message", got)
	}
}

func TestBodyExtractionFromCaption(t *testing.T) {
	h := newTestHandler(&fakeStore{snap: testSnapshot()}, nil, &fakeSource{})
	got := h.Handle(context.Background(), "c1", domain.InboundMessage{Caption: "pesan 2 es teh"})
	if !strings.Contains(got, "es teh x2") {
		t.Fatalf("reply=%q, want the caption resolved as an order", got)
	}
}
