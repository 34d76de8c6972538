// Package mqtt is the chat transport: it receives customer utterances from
// the broker and publishes the bot's replies back to the originating
// conversation.
package mqtt

import (
	"context"
	"encoding/json"
	"log/slog"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"warunggo/internal/domain"
)

type HubConfig struct {
	BrokerURL   string
	ClientID    string
	Username    string
	Password    string
	TopicPrefix string
}

// MessageHandler resolves one inbound message into a reply text. An empty
// reply means nothing is sent back.
type MessageHandler interface {
	Handle(ctx context.Context, chatID string, msg domain.InboundMessage) string
}

type Hub struct {
	cfg     HubConfig
	client  paho.Client
	handler MessageHandler
	logger  *slog.Logger
}

func NewHub(cfg HubConfig, handler MessageHandler, logger *slog.Logger) *Hub {
	return &Hub{cfg: cfg, handler: handler, logger: logger}
}

func (h *Hub) Start(ctx context.Context) error {
	opts := paho.NewClientOptions().
		AddBroker(h.cfg.BrokerURL).
		SetClientID(h.cfg.ClientID).
		SetAutoReconnect(true).
		SetConnectRetry(true)

	if h.cfg.Username != "" {
		opts.SetUsername(h.cfg.Username)
		opts.SetPassword(h.cfg.Password)
	}

	opts.SetConnectionLostHandler(func(_ paho.Client, err error) {
		h.logger.Error("mqtt connection lost", "error", err)
	})

	h.client = paho.NewClient(opts)
	if token := h.client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}

	if token := h.client.Subscribe(TopicChatInbound(h.cfg.TopicPrefix), 1, h.handleInbound); token.Wait() && token.Error() != nil {
		return token.Error()
	}

	go func() {
		<-ctx.Done()
		h.client.Disconnect(100)
	}()

	return nil
}

func (h *Hub) handleInbound(_ paho.Client, msg paho.Message) {
	chatID, err := ParseChatID(msg.Topic(), h.cfg.TopicPrefix)
	if err != nil {
		h.logger.Warn("skip invalid chat topic", "topic", msg.Topic(), "error", err)
		return
	}

	var in domain.InboundMessage
	if err := json.Unmarshal(msg.Payload(), &in); err != nil {
		// backward compatible: payload can be bare text
		in = domain.InboundMessage{Text: string(msg.Payload())}
	}

	replyText := h.handler.Handle(context.Background(), chatID, in)
	if replyText == "" {
		return
	}

	if err := h.publish(chatID, in.MessageID, replyText); err != nil {
		h.logger.Error("publish reply failed", "chat_id", chatID, "error", err)
	}
}

// SendText publishes a standalone message to a conversation, outside the
// request/reply flow.
func (h *Hub) SendText(chatID, text string) error {
	return h.publish(chatID, "", text)
}

func (h *Hub) publish(chatID, replyTo, text string) error {
	out := domain.OutboundMessage{
		MessageID: uuid.NewString(),
		ReplyTo:   replyTo,
		Text:      text,
	}
	body, err := json.Marshal(out)
	if err != nil {
		return err
	}
	token := h.client.Publish(TopicOut(h.cfg.TopicPrefix, chatID), 1, false, body)
	if token.Wait() && token.Error() != nil {
		return token.Error()
	}
	return nil
}
