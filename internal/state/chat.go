package state

import "github.com/fitsearch/fitsearch-go/internal/domain"

// DefaultConversationTitle is shown for untitled conversations.
const DefaultConversationTitle = "New Conversation"

// ChatStore holds the chat state: the conversation list (most recent
// first), the active conversation, and the message composer.
//
// CurrentConversation and its entry in Conversations carry the same value
// after every mutation; updates go through replace-by-id, never through two
// independently mutated copies.
type ChatStore struct {
	CurrentConversation *Signal[*domain.Conversation]
	Conversations       *Signal[[]domain.Conversation]
	PendingMessage      *Signal[string]
	PendingAttachments  *Signal[[]domain.PendingAttachment]
	IsTyping            *Signal[bool]
	Error               *Signal[string] // "" when clear

	HasConversations  *Computed[bool]
	CurrentMessages   *Computed[[]domain.ChatMessage]
	LastMessage       *Computed[*domain.ChatMessage]
	ConversationTitle *Computed[string]
}

// NewChatStore creates a chat store with its documented defaults.
func NewChatStore(hub *Hub) *ChatStore {
	s := &ChatStore{
		CurrentConversation: NewSignal[*domain.Conversation](hub, nil),
		Conversations:       NewSignal(hub, []domain.Conversation{}),
		PendingMessage:      NewSignal(hub, ""),
		PendingAttachments:  NewSignal(hub, []domain.PendingAttachment{}),
		IsTyping:            NewSignal(hub, false),
		Error:               NewSignal(hub, ""),
	}

	s.HasConversations = NewComputed(hub, func() bool {
		return len(s.Conversations.Get()) > 0
	}, s.Conversations)

	s.CurrentMessages = NewComputed(hub, func() []domain.ChatMessage {
		conv := s.CurrentConversation.Get()
		if conv == nil {
			return []domain.ChatMessage{}
		}
		return conv.Messages
	}, s.CurrentConversation)

	s.LastMessage = NewComputed(hub, func() *domain.ChatMessage {
		messages := s.CurrentMessages.Get()
		if len(messages) == 0 {
			return nil
		}
		last := messages[len(messages)-1]
		return &last
	}, s.CurrentMessages)

	s.ConversationTitle = NewComputed(hub, func() string {
		conv := s.CurrentConversation.Get()
		if conv == nil || conv.Title == "" {
			return DefaultConversationTitle
		}
		return conv.Title
	}, s.CurrentConversation)

	return s
}
