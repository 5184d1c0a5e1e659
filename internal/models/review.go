package models

import "time"

// Review is one side's rating of the other after a project completes. The
// receiver alone controls the hidden flag.
type Review struct {
	ID         uint64    `gorm:"primarykey" json:"id"`
	ProjectID  uint64    `gorm:"index;not null" json:"project_id"`
	ReviewerID uint64    `gorm:"not null" json:"reviewer_id"`
	ReceiverID uint64    `gorm:"index;not null" json:"receiver_id"`
	Rating     int       `gorm:"not null" json:"rating"`
	Comment    string    `gorm:"type:text" json:"comment"`
	Hidden     bool      `gorm:"not null;default:false" json:"hidden"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relations
	Project  Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Reviewer User    `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
	Receiver User    `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`
}
