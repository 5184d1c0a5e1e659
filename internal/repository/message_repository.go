package repository

import (
	"github.com/AnneAnotherThing/hivenow-app/internal/models"
	"gorm.io/gorm"
)

// GormMessageRepository is a GORM implementation of MessageRepository
type GormMessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &GormMessageRepository{db: db}
}

// Create creates a new message
func (r *GormMessageRepository) Create(msg *models.Message) error {
	return r.db.Create(msg).Error
}

// ListByProject returns a project's messages in chronological order. The id
// tiebreak keeps the order stable when two messages share a creation time.
func (r *GormMessageRepository) ListByProject(projectID uint64) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Where("project_id = ?", projectID).
		Order("created_at ASC, id ASC").
		Preload("Sender").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}
