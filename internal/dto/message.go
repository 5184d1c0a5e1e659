package dto

import (
	"time"

	"github.com/AnneAnotherThing/hivenow-app/internal/models"
)

// MessageDTO represents a message in API responses
type MessageDTO struct {
	ID        uint64               `json:"id"`
	ProjectID uint64               `json:"project_id"`
	SenderID  uint64               `json:"sender_id"`
	Content   string               `json:"content"`
	Status    models.MessageStatus `json:"status"`
	CreatedAt time.Time            `json:"created_at"`
	Sender    *PublicUserDTO       `json:"sender,omitempty"`
}

// ToMessageDTO converts a Message model to MessageDTO
func ToMessageDTO(message models.Message) MessageDTO {
	dto := MessageDTO{
		ID:        message.ID,
		ProjectID: message.ProjectID,
		SenderID:  message.SenderID,
		Content:   message.Content,
		Status:    message.Status,
		CreatedAt: message.CreatedAt,
	}

	if message.Sender.ID != 0 {
		sender := ToPublicUserDTO(message.Sender)
		dto.Sender = &sender
	}

	return dto
}

// ToMessageDTOs converts a slice of messages
func ToMessageDTOs(messages []models.Message) []MessageDTO {
	items := make([]MessageDTO, len(messages))
	for i, message := range messages {
		items[i] = ToMessageDTO(message)
	}
	return items
}
