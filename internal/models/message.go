package models

import "time"

type MessageStatus string

const (
	MessageSent      MessageStatus = "sent"
	MessageDelivered MessageStatus = "delivered"
	MessageRead      MessageStatus = "read"
)

// Message is a chat entry inside a project. Messages are immutable once
// created; the delivery status is recorded but no exposed operation advances
// it.
type Message struct {
	ID        uint64        `gorm:"primarykey" json:"id"`
	ProjectID uint64        `gorm:"index;not null" json:"project_id"`
	SenderID  uint64        `gorm:"not null" json:"sender_id"`
	Content   string        `gorm:"type:text;not null" json:"content"`
	Status    MessageStatus `gorm:"type:varchar(20);not null;default:'sent'" json:"status"`
	CreatedAt time.Time     `json:"created_at"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Sender  User    `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
}
