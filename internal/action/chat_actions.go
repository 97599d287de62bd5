// Package action orchestrates store mutations and service calls. Actions
// never raise: failures from the API land in the relevant store's error
// cell, and the busy flag is always reset.
package action

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fitsearch/fitsearch-go/internal/api"
	"github.com/fitsearch/fitsearch-go/internal/domain"
	"github.com/fitsearch/fitsearch-go/internal/state"
)

// genericSendError is the fallback when a failed send carries no message.
const genericSendError = "An error occurred while sending message"

var localIDSeq atomic.Uint64

// newLocalID mints a client-side id: "<prefix>-<unix-ms>-<seq>". The
// timestamp keeps ids sortable by creation time; the sequence keeps them
// unique when several are minted within the same millisecond.
func newLocalID(prefix string) string {
	return fmt.Sprintf("%s-%d-%d", prefix, time.Now().UnixMilli(), localIDSeq.Add(1))
}

// ChatAPI is the slice of the chat service the chat actions need.
type ChatAPI interface {
	SendMessage(ctx context.Context, req *domain.ChatRequest) *api.Response[domain.ChatReply]
	Conversations(ctx context.Context, limit int) *api.Response[[]domain.Conversation]
	DeleteConversation(ctx context.Context, conversationID string) *api.Response[any]
}

// ChatActions mutates the chat store and talks to the chat service.
type ChatActions struct {
	store  *state.Store
	chat   ChatAPI
	logger *zap.Logger
}

// NewChatActions creates the chat action set.
func NewChatActions(store *state.Store, chat ChatAPI, logger *zap.Logger) *ChatActions {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChatActions{store: store, chat: chat, logger: logger}
}

// SendMessage sends the pending composer content in the current
// conversation, creating one if needed. It returns the system reply, or nil
// when the send was empty (silent no-op) or failed (error cell set).
//
// A failed send is not rolled back: the already-appended user message stays
// in the conversation with no system reply.
func (a *ChatActions) SendMessage(ctx context.Context) *domain.ChatMessage {
	chat := a.store.Chat

	content := strings.TrimSpace(chat.PendingMessage.Get())
	attachments := chat.PendingAttachments.Get()
	if content == "" && len(attachments) == 0 {
		return nil
	}

	a.store.Batch(func() {
		chat.IsTyping.Set(true)
		chat.Error.Set("")
	})

	if chat.CurrentConversation.Get() == nil {
		a.CreateNewConversation()
	}

	userMessage := domain.ChatMessage{
		ID:        newLocalID("user"),
		Content:   content,
		Sender:    domain.SenderUser,
		Timestamp: time.Now().UnixMilli(),
	}
	for _, pending := range attachments {
		userMessage.Attachments = append(userMessage.Attachments, domain.ChatAttachment{
			ID:   "attachment-" + uuid.NewString(),
			Type: pending.Type,
			URL:  pending.Content,
		})
	}
	a.AddMessageToConversation(userMessage)

	a.store.Batch(func() {
		chat.PendingMessage.Set("")
		chat.PendingAttachments.Set([]domain.PendingAttachment{})
	})

	req := &domain.ChatRequest{
		Message:     content,
		Attachments: attachments,
	}
	if conv := chat.CurrentConversation.Get(); conv != nil {
		req.ConversationID = conv.ID
	}

	resp := a.chat.SendMessage(ctx, req)
	if !resp.Success {
		message := genericSendError
		if resp.Error != nil && resp.Error.Message != "" {
			message = resp.Error.Message
		}
		a.logger.Warn("chat send failed", zap.String("error", message))
		a.store.Batch(func() {
			chat.Error.Set(message)
			chat.IsTyping.Set(false)
		})
		return nil
	}

	replyID := resp.Data.ID
	if replyID == "" {
		replyID = newLocalID("system")
	}
	systemMessage := domain.ChatMessage{
		ID:          replyID,
		Content:     resp.Data.Message,
		Sender:      domain.SenderSystem,
		Timestamp:   time.Now().UnixMilli(),
		Attachments: resp.Data.Attachments,
		Metadata:    resp.Data.Metadata,
	}
	a.AddMessageToConversation(systemMessage)

	chat.IsTyping.Set(false)
	return &systemMessage
}

// CreateNewConversation starts an empty conversation and makes it current
// and the head of the conversation list.
func (a *ChatActions) CreateNewConversation() *domain.Conversation {
	chat := a.store.Chat

	now := time.Now().UnixMilli()
	conversation := domain.Conversation{
		ID:        newLocalID("conversation"),
		Messages:  []domain.ChatMessage{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	a.store.Batch(func() {
		current := conversation
		chat.CurrentConversation.Set(&current)
		chat.Conversations.Set(append([]domain.Conversation{conversation}, chat.Conversations.Get()...))
	})

	return &conversation
}

// AddMessageToConversation appends a message to the current conversation and
// propagates the updated conversation into both the current cell and its
// slot in the list (replace-by-id). No-op without a current conversation.
func (a *ChatActions) AddMessageToConversation(message domain.ChatMessage) {
	chat := a.store.Chat

	conv := chat.CurrentConversation.Get()
	if conv == nil {
		return
	}

	updated := *conv
	updated.Messages = append(append([]domain.ChatMessage{}, conv.Messages...), message)
	updated.UpdatedAt = time.Now().UnixMilli()

	a.store.Batch(func() {
		current := updated
		chat.CurrentConversation.Set(&current)

		list := chat.Conversations.Get()
		replaced := make([]domain.Conversation, len(list))
		for i, c := range list {
			if c.ID == updated.ID {
				replaced[i] = updated
			} else {
				replaced[i] = c
			}
		}
		chat.Conversations.Set(replaced)
	})
}

// SwitchConversation makes the conversation with the given ID current.
// Unknown IDs leave the current conversation unchanged.
func (a *ChatActions) SwitchConversation(conversationID string) {
	chat := a.store.Chat

	for _, conv := range chat.Conversations.Get() {
		if conv.ID == conversationID {
			current := conv
			chat.CurrentConversation.Set(&current)
			return
		}
	}
}

// UpdatePendingMessage replaces the composer text.
func (a *ChatActions) UpdatePendingMessage(message string) {
	a.store.Chat.PendingMessage.Set(message)
}

// AddAttachment stages an attachment on the composer.
func (a *ChatActions) AddAttachment(attachmentType, content string) {
	chat := a.store.Chat
	chat.PendingAttachments.Set(append(
		append([]domain.PendingAttachment{}, chat.PendingAttachments.Get()...),
		domain.PendingAttachment{Type: attachmentType, Content: content},
	))
}

// RemoveAttachment removes the staged attachment at the given index,
// preserving the order of the rest. Out-of-range indexes are ignored.
func (a *ChatActions) RemoveAttachment(index int) {
	chat := a.store.Chat

	current := chat.PendingAttachments.Get()
	if index < 0 || index >= len(current) {
		return
	}
	remaining := make([]domain.PendingAttachment, 0, len(current)-1)
	remaining = append(remaining, current[:index]...)
	remaining = append(remaining, current[index+1:]...)
	chat.PendingAttachments.Set(remaining)
}

// ClearAttachments drops every staged attachment.
func (a *ChatActions) ClearAttachments() {
	a.store.Chat.PendingAttachments.Set([]domain.PendingAttachment{})
}

// LoadConversations replaces the conversation list with the server's most
// recent conversations.
func (a *ChatActions) LoadConversations(ctx context.Context, limit int) {
	chat := a.store.Chat

	resp := a.chat.Conversations(ctx, limit)
	if !resp.Success {
		if resp.Error != nil {
			chat.Error.Set(resp.Error.Message)
		}
		return
	}

	list := resp.Data
	if list == nil {
		list = []domain.Conversation{}
	}
	chat.Conversations.Set(list)
}

// DeleteConversation deletes a conversation on the server and removes it
// from the list; if it was current, the current conversation is cleared.
func (a *ChatActions) DeleteConversation(ctx context.Context, conversationID string) {
	chat := a.store.Chat

	resp := a.chat.DeleteConversation(ctx, conversationID)
	if !resp.Success {
		if resp.Error != nil {
			chat.Error.Set(resp.Error.Message)
		}
		return
	}

	a.store.Batch(func() {
		remaining := make([]domain.Conversation, 0, len(chat.Conversations.Get()))
		for _, conv := range chat.Conversations.Get() {
			if conv.ID != conversationID {
				remaining = append(remaining, conv)
			}
		}
		chat.Conversations.Set(remaining)

		if current := chat.CurrentConversation.Get(); current != nil && current.ID == conversationID {
			chat.CurrentConversation.Set(nil)
		}
	})
}
