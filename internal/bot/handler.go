// Package bot routes inbound chat messages: owner commands on one side,
// customer order resolution on the other.
package bot

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"warunggo/internal/domain"
	"warunggo/internal/order"
	"warunggo/internal/reply"
)

type Config struct {
	// OwnerIDs are chat ids treated as the privileged operator role.
	OwnerIDs []string
	// HintTimeout bounds the external intent call per utterance.
	HintTimeout time.Duration
}

// Store is the snapshot and order-log persistence the handler depends on.
type Store interface {
	LoadSnapshot(ctx context.Context) (domain.Snapshot, error)
	SaveSnapshot(ctx context.Context, snap domain.Snapshot) error
	RecordOrder(ctx context.Context, chatID string, lines []domain.ValidatedLine, total int) (string, error)
}

// HintService is the external intent extraction call. Failures are never
// fatal; resolution proceeds without a hint.
type HintService interface {
	Enabled() bool
	ParseOrder(ctx context.Context, text string) ([]domain.Hint, error)
}

// CatalogSource refreshes the menu and stock from the upstream spreadsheet.
type CatalogSource interface {
	Fetch(ctx context.Context) (domain.Snapshot, error)
}

// Notifier sends a message outside the request/reply flow, e.g. the sync
// progress text. May be nil.
type Notifier interface {
	SendText(chatID, text string) error
}

type Handler struct {
	cfg      Config
	store    Store
	hints    HintService
	source   CatalogSource
	resolver *order.Resolver
	logger   *slog.Logger
	notifier Notifier
	owners   map[string]struct{}
}

func NewHandler(cfg Config, store Store, hints HintService, source CatalogSource, logger *slog.Logger) *Handler {
	if cfg.HintTimeout <= 0 {
		cfg.HintTimeout = 3 * time.Second
	}
	owners := make(map[string]struct{}, len(cfg.OwnerIDs))
	for _, id := range cfg.OwnerIDs {
		if id = strings.TrimSpace(id); id != "" {
			owners[id] = struct{}{}
		}
	}
	return &Handler{
		cfg:      cfg,
		store:    store,
		hints:    hints,
		source:   source,
		resolver: order.NewResolver(),
		logger:   logger,
		owners:   owners,
	}
}

// SetNotifier attaches the transport for out-of-band messages once it is
// connected.
func (h *Handler) SetNotifier(n Notifier) {
	h.notifier = n
}

// Handle resolves one inbound message into a reply. Empty return means no
// reply is sent. Each message is handled independently; the handler keeps no
// conversational state between turns.
func (h *Handler) Handle(ctx context.Context, chatID string, msg domain.InboundMessage) string {
	body := strings.TrimSpace(msg.Body())
	if body == "" {
		return ""
	}

	if h.isOwner(chatID, msg.Role) {
		return h.handleOwner(ctx, chatID, body)
	}
	return h.handleCustomer(ctx, chatID, msg.Sender, body)
}

func (h *Handler) isOwner(chatID, role string) bool {
	if strings.EqualFold(strings.TrimSpace(role), domain.RoleOwner) {
		return true
	}
	_, ok := h.owners[chatID]
	return ok
}

// handleOwner dispatches on the first whitespace-delimited token,
// case-insensitive.
func (h *Handler) handleOwner(ctx context.Context, chatID, body string) string {
	command := strings.ToLower(strings.Fields(body)[0])

	switch command {
	case "/menu":
		return reply.Menu(h.loadSnapshot(ctx))

	case "/stok":
		return reply.Inventory(h.loadSnapshot(ctx))

	case "/sync":
		h.notify(chatID, reply.SyncStarted())
		snap, err := h.Sync(ctx)
		if err != nil {
			h.logger.Error("manual sync failed", "error", err)
			return reply.SyncFailed()
		}
		return reply.Menu(snap) + "\n\n" + reply.Inventory(snap)

	case "/help":
		return reply.OwnerHelp()

	default:
		return reply.UnknownCommand()
	}
}

func (h *Handler) handleCustomer(ctx context.Context, chatID, sender, body string) string {
	snap := h.loadSnapshot(ctx)

	hints := h.fetchHints(ctx, body)
	outcome := h.resolver.Resolve(body, snap, hints)

	if outcome.Kind == domain.OutcomeResolved {
		orderID, err := h.store.RecordOrder(ctx, chatID, outcome.Lines, outcome.Total)
		if err != nil {
			h.logger.Error("record order failed", "chat_id", chatID, "error", err)
		} else {
			h.logger.Info("order accepted", "chat_id", chatID, "order_id", orderID, "total", outcome.Total)
		}
	}

	return reply.ForOutcome(outcome, customerDisplay(sender))
}

// Sync refreshes the snapshot from the catalog source and persists it.
func (h *Handler) Sync(ctx context.Context) (domain.Snapshot, error) {
	snap, err := h.source.Fetch(ctx)
	if err != nil {
		return domain.Snapshot{}, err
	}
	if err := h.store.SaveSnapshot(ctx, snap); err != nil {
		return domain.Snapshot{}, err
	}
	return snap, nil
}

// loadSnapshot is lenient: a store failure logs and behaves like an empty
// catalog, the same way the bot treats missing data files.
func (h *Handler) loadSnapshot(ctx context.Context) domain.Snapshot {
	snap, err := h.store.LoadSnapshot(ctx)
	if err != nil {
		h.logger.Warn("load snapshot failed", "error", err)
		return domain.NewSnapshot()
	}
	return snap
}

// fetchHints consults the intent service with a bounded timeout. Any
// failure degrades silently to no hints; customers never see it.
func (h *Handler) fetchHints(ctx context.Context, body string) []domain.Hint {
	if h.hints == nil || !h.hints.Enabled() {
		return nil
	}
	hintCtx, cancel := context.WithTimeout(ctx, h.cfg.HintTimeout)
	defer cancel()

	hints, err := h.hints.ParseOrder(hintCtx, body)
	if err != nil {
		h.logger.Debug("intent service unavailable", "error", err)
		return nil
	}
	return hints
}

func (h *Handler) notify(chatID, text string) {
	if h.notifier == nil {
		return
	}
	if err := h.notifier.SendText(chatID, text); err != nil {
		h.logger.Warn("send progress message failed", "chat_id", chatID, "error", err)
	}
}

func customerDisplay(sender string) string {
	sender = strings.TrimSpace(sender)
	if sender == "" {
		return ""
	}
	if strings.HasPrefix(sender, "+") {
		return sender
	}
	return "+" + sender
}
