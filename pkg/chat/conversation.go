package chat

// Conversation is an append-only, immutable sequence of messages.
// Mutating operations return a new value rather than editing in place.
type Conversation struct {
	Messages []Message
}

func NewConversation() Conversation {
	return Conversation{
		Messages: make([]Message, 0),
	}
}

func AddMessage(conv Conversation, msg Message) Conversation {
	messages := make([]Message, len(conv.Messages)+1)
	copy(messages, conv.Messages)
	messages[len(conv.Messages)] = msg

	return Conversation{Messages: messages}
}

func GetMessages(conv Conversation) []Message {
	result := make([]Message, len(conv.Messages))
	copy(result, conv.Messages)
	return result
}
