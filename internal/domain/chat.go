package domain

// Message senders
const (
	SenderUser   = "user"
	SenderSystem = "system"
)

// Attachment types
const (
	AttachmentImage   = "image"
	AttachmentProduct = "product"
	AttachmentLink    = "link"
)

// ChatMessage represents one message in a conversation
type ChatMessage struct {
	ID          string           `json:"id"`
	Content     string           `json:"content"`
	Sender      string           `json:"sender"` // user, system
	Timestamp   int64            `json:"timestamp"`
	Attachments []ChatAttachment `json:"attachments,omitempty"`
	Metadata    map[string]any   `json:"metadata,omitempty"`
}

// ChatAttachment represents a rich attachment on a message
type ChatAttachment struct {
	ID          string `json:"id"`
	Type        string `json:"type"` // image, product, link
	URL         string `json:"url,omitempty"`
	ProductID   string `json:"productId,omitempty"`
	PreviewURL  string `json:"previewUrl,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// Conversation represents an ordered, append-mostly message history with a
// stable identity.
type Conversation struct {
	ID        string        `json:"id"`
	Messages  []ChatMessage `json:"messages"`
	CreatedAt int64         `json:"createdAt"`
	UpdatedAt int64         `json:"updatedAt"`
	Title     string        `json:"title,omitempty"`
}

// PendingAttachment is an attachment staged on the composer before send.
// Content is a URL or base64 payload for images, a product ID for products.
type PendingAttachment struct {
	Type    string `json:"type"` // image, product
	Content string `json:"content"`
}

// ChatRequest is the request body for sending a chat message
type ChatRequest struct {
	Message        string              `json:"message"`
	ConversationID string              `json:"conversationId,omitempty"`
	Attachments    []PendingAttachment `json:"attachments,omitempty"`
}

// ChatReply is the payload returned by the chat endpoint
type ChatReply struct {
	ID             string           `json:"id,omitempty"`
	Message        string           `json:"message"`
	ConversationID string           `json:"conversationId,omitempty"`
	Attachments    []ChatAttachment `json:"attachments,omitempty"`
	Metadata       map[string]any   `json:"metadata,omitempty"`
}
