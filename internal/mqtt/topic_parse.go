package mqtt

import (
	"fmt"
	"strings"
)

// expected: {prefix}/chat/{chatId}/{direction}
func ParseChatID(topic, prefix string) (string, error) {
	parts := strings.Split(topic, "/")
	prefixParts := strings.Split(prefix, "/")
	if len(parts) < len(prefixParts)+3 {
		return "", fmt.Errorf("invalid topic: %s", topic)
	}
	for i, p := range prefixParts {
		if parts[i] != p {
			return "", fmt.Errorf("topic prefix mismatch: %s", topic)
		}
	}
	if parts[len(prefixParts)] != "chat" {
		return "", fmt.Errorf("invalid topic pattern: %s", topic)
	}
	chatID := parts[len(prefixParts)+1]
	if chatID == "" {
		return "", fmt.Errorf("empty chat id in topic: %s", topic)
	}
	return chatID, nil
}
