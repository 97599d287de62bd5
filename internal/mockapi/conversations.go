package mockapi

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/fitsearch/fitsearch-go/internal/domain"
)

// ConversationStore keeps mock conversations in memory. Entries expire
// after an hour of inactivity, like a real session store would.
type ConversationStore struct {
	cache *cache.Cache
}

// NewConversationStore creates the in-memory conversation store.
func NewConversationStore() *ConversationStore {
	return &ConversationStore{
		cache: cache.New(1*time.Hour, 10*time.Minute),
	}
}

// Create starts a new conversation.
func (s *ConversationStore) Create() *domain.Conversation {
	now := time.Now().UnixMilli()
	conv := &domain.Conversation{
		ID:        "conv-" + uuid.NewString(),
		Messages:  []domain.ChatMessage{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.cache.Set(conv.ID, conv, cache.DefaultExpiration)
	return conv
}

// Get returns a conversation, or nil when unknown or expired.
func (s *ConversationStore) Get(conversationID string) *domain.Conversation {
	if x, found := s.cache.Get(conversationID); found {
		return x.(*domain.Conversation)
	}
	return nil
}

// Append adds a message to a conversation and refreshes its expiry.
func (s *ConversationStore) Append(conversationID string, message domain.ChatMessage) {
	conv := s.Get(conversationID)
	if conv == nil {
		return
	}
	conv.Messages = append(conv.Messages, message)
	conv.UpdatedAt = time.Now().UnixMilli()
	s.cache.Set(conv.ID, conv, cache.DefaultExpiration)
}

// List returns up to limit conversations, most recently updated first.
func (s *ConversationStore) List(limit int) []domain.Conversation {
	if limit <= 0 {
		limit = 10
	}

	all := []domain.Conversation{}
	for _, item := range s.cache.Items() {
		if conv, ok := item.Object.(*domain.Conversation); ok {
			all = append(all, *conv)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].UpdatedAt > all[j].UpdatedAt
	})
	if len(all) > limit {
		all = all[:limit]
	}
	return all
}

// Delete removes a conversation. Returns false when it did not exist.
func (s *ConversationStore) Delete(conversationID string) bool {
	if s.Get(conversationID) == nil {
		return false
	}
	s.cache.Delete(conversationID)
	return true
}
