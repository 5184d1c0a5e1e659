package dto

import (
	"time"

	"github.com/AnneAnotherThing/hivenow-app/internal/models"
)

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID                 uint64               `json:"id"`
	Title              string               `json:"title"`
	Description        string               `json:"description"`
	UserID             uint64               `json:"user_id"`
	ProviderID         *uint64              `json:"provider_id"`
	Status             models.ProjectStatus `json:"status"`
	Attachments        []string             `json:"attachments"`
	DueDate            *time.Time           `json:"due_date"`
	MessagingAvailable bool                 `json:"messaging_available"`
	CreatedAt          time.Time            `json:"created_at"`
	UpdatedAt          time.Time            `json:"updated_at"`
	User               *PublicUserDTO       `json:"user,omitempty"`
	Provider           *PublicUserDTO       `json:"provider,omitempty"`
}

// ProjectListItemDTO represents a project in list responses (minimal data)
type ProjectListItemDTO struct {
	ID         uint64               `json:"id"`
	Title      string               `json:"title"`
	UserID     uint64               `json:"user_id"`
	ProviderID *uint64              `json:"provider_id"`
	Status     models.ProjectStatus `json:"status"`
	DueDate    *time.Time           `json:"due_date"`
	CreatedAt  time.Time            `json:"created_at"`
}

// ToProjectDTO converts a Project model to ProjectDTO
func ToProjectDTO(project models.Project) ProjectDTO {
	dto := ProjectDTO{
		ID:                 project.ID,
		Title:              project.Title,
		Description:        project.Description,
		UserID:             project.UserID,
		ProviderID:         project.ProviderID,
		Status:             project.Status,
		Attachments:        project.Attachments,
		DueDate:            project.DueDate,
		MessagingAvailable: project.MessagingAvailable(),
		CreatedAt:          project.CreatedAt,
		UpdatedAt:          project.UpdatedAt,
	}

	// Include relations only when preloaded
	if project.User.ID != 0 {
		user := ToPublicUserDTO(project.User)
		dto.User = &user
	}
	if project.Provider != nil && project.Provider.ID != 0 {
		provider := ToPublicUserDTO(*project.Provider)
		dto.Provider = &provider
	}

	return dto
}

// ToProjectListItemDTO converts a Project model to ProjectListItemDTO
func ToProjectListItemDTO(project models.Project) ProjectListItemDTO {
	return ProjectListItemDTO{
		ID:         project.ID,
		Title:      project.Title,
		UserID:     project.UserID,
		ProviderID: project.ProviderID,
		Status:     project.Status,
		DueDate:    project.DueDate,
		CreatedAt:  project.CreatedAt,
	}
}

// ToProjectListItemDTOs converts a slice of projects
func ToProjectListItemDTOs(projects []models.Project) []ProjectListItemDTO {
	items := make([]ProjectListItemDTO, len(projects))
	for i, project := range projects {
		items[i] = ToProjectListItemDTO(project)
	}
	return items
}
