package models

import (
	"time"
)

type ProjectStatus string

const (
	ProjectPending    ProjectStatus = "pending"
	ProjectInProgress ProjectStatus = "in_progress"
	ProjectCompleted  ProjectStatus = "completed"
	ProjectCancelled  ProjectStatus = "cancelled"
)

// statusTransitions are the edges of the project lifecycle graph.
// pending -> in_progress -> completed, with cancellation possible until a
// project reaches a terminal state.
var statusTransitions = map[ProjectStatus][]ProjectStatus{
	ProjectPending:    {ProjectInProgress, ProjectCancelled},
	ProjectInProgress: {ProjectCompleted, ProjectCancelled},
}

// ValidStatusTransition reports whether the lifecycle graph contains an edge
// from one status to another, regardless of who is asking.
func ValidStatusTransition(from, to ProjectStatus) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type Project struct {
	ID          uint64        `gorm:"primarykey" json:"id"`
	Title       string        `gorm:"type:varchar(255);not null" json:"title"`
	Description string        `gorm:"type:text" json:"description"`
	UserID      uint64        `gorm:"index;not null" json:"user_id"`
	ProviderID  *uint64       `gorm:"index" json:"provider_id"`
	Status      ProjectStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Attachments []string      `gorm:"serializer:json" json:"attachments"`
	DueDate     *time.Time    `json:"due_date"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`

	// Relations
	User     User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Provider *User     `gorm:"foreignKey:ProviderID" json:"provider,omitempty"`
	Messages []Message `gorm:"foreignKey:ProjectID" json:"messages,omitempty"`
	Reviews  []Review  `gorm:"foreignKey:ProjectID" json:"reviews,omitempty"`
}

// CanAccess reports whether a user may read or act on this project: the owner,
// the assigned provider, or an admin.
func (p *Project) CanAccess(user *User) bool {
	if user == nil {
		return false
	}
	if user.Role == RoleAdmin {
		return true
	}
	if p.UserID == user.ID {
		return true
	}
	return p.ProviderID != nil && *p.ProviderID == user.ID
}

// IsOwner reports whether the user is the customer who submitted the project.
func (p *Project) IsOwner(user *User) bool {
	return user != nil && p.UserID == user.ID
}

// IsAssignedProvider reports whether the user is the provider assigned to the
// project.
func (p *Project) IsAssignedProvider(user *User) bool {
	return user != nil && p.ProviderID != nil && *p.ProviderID == user.ID
}

// MessagingAvailable reports whether the project chat is open. Messaging
// requires an assigned provider; there is nobody to talk to before that.
func (p *Project) MessagingAvailable() bool {
	return p.ProviderID != nil
}
