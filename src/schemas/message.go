package schemas

import "github.com/harshulchawla1408/Astrousers-sub000/src/models"

// SendMessageRequest represents the body of a chat message send.
type SendMessageRequest struct {
	Text string `json:"text" binding:"required"`
}

// MessageListResponse wraps a session transcript.
type MessageListResponse struct {
	SessionID string           `json:"session_id"`
	Messages  []models.Message `json:"messages"`
}
