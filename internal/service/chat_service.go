package service

import (
	"context"
	"fmt"

	"github.com/fitsearch/fitsearch-go/internal/api"
	"github.com/fitsearch/fitsearch-go/internal/domain"
)

// ChatService handles chat API calls
type ChatService struct {
	client *api.Client
}

// NewChatService creates a new chat service
func NewChatService(client *api.Client) *ChatService {
	return &ChatService{client: client}
}

// SendMessage sends a chat message
func (s *ChatService) SendMessage(ctx context.Context, req *domain.ChatRequest) *api.Response[domain.ChatReply] {
	return api.Post[domain.ChatReply](s.client, ctx, api.EndpointChat, req, nil)
}

// Conversations returns the most recent conversations
func (s *ChatService) Conversations(ctx context.Context, limit int) *api.Response[[]domain.Conversation] {
	if limit <= 0 {
		limit = DefaultFeedLimit
	}
	return api.Get[[]domain.Conversation](s.client, ctx, api.EndpointChat, &api.Options{
		Params: map[string]any{"limit": limit},
	})
}

// Conversation returns a single conversation by ID
func (s *ChatService) Conversation(ctx context.Context, conversationID string) *api.Response[domain.Conversation] {
	endpoint := fmt.Sprintf("%s/%s", api.EndpointChat, conversationID)
	return api.Get[domain.Conversation](s.client, ctx, endpoint, nil)
}

// DeleteConversation deletes a conversation
func (s *ChatService) DeleteConversation(ctx context.Context, conversationID string) *api.Response[any] {
	endpoint := fmt.Sprintf("%s/%s", api.EndpointChat, conversationID)
	return api.Delete[any](s.client, ctx, endpoint, nil)
}
