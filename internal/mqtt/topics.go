package mqtt

import "fmt"

func TopicChatInbound(prefix string) string {
	return fmt.Sprintf("%s/chat/+/in", prefix)
}

func TopicIn(prefix, chatID string) string {
	return fmt.Sprintf("%s/chat/%s/in", prefix, chatID)
}

func TopicOut(prefix, chatID string) string {
	return fmt.Sprintf("%s/chat/%s/out", prefix, chatID)
}
