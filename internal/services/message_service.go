package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/AnneAnotherThing/hivenow-app/internal/models"
	"github.com/AnneAnotherThing/hivenow-app/internal/repository"
)

var (
	ErrMessageEmpty         = errors.New("message content is required")
	ErrMessagingUnavailable = errors.New("messaging requires an assigned provider")
)

// MessageNotifier receives stored messages for best-effort fan-out to
// connected realtime clients. Implemented by the realtime hub.
type MessageNotifier interface {
	NotifyNewMessage(projectID uint64, message interface{})
}

// MessageService is the messaging gate: it decides whether a project's chat is
// open, stores messages, and hands them to the relay.
type MessageService struct {
	messageRepo repository.MessageRepository
	projectRepo repository.ProjectRepository
	notifier    MessageNotifier
}

// NewMessageService creates a new MessageService. notifier may be nil when no
// relay is running (tests, one-off tools).
func NewMessageService(messageRepo repository.MessageRepository, projectRepo repository.ProjectRepository, notifier MessageNotifier) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		projectRepo: projectRepo,
		notifier:    notifier,
	}
}

// Send stores a message on a project and notifies connected relay clients.
// The notification is fire-and-forget: a relay failure never fails the send.
func (s *MessageService) Send(actor *models.User, projectID uint64, content string) (*models.Message, error) {
	project, err := s.loadProject(projectID)
	if err != nil {
		return nil, err
	}

	if !project.CanAccess(actor) {
		return nil, ErrProjectAccessDenied
	}
	if !project.MessagingAvailable() {
		return nil, ErrMessagingUnavailable
	}
	if strings.TrimSpace(content) == "" {
		return nil, ErrMessageEmpty
	}

	message := &models.Message{
		ProjectID: projectID,
		SenderID:  actor.ID,
		Content:   content,
		Status:    models.MessageSent,
	}

	if err := s.messageRepo.Create(message); err != nil {
		return nil, fmt.Errorf("failed to store message: %w", err)
	}

	if s.notifier != nil {
		s.notifier.NotifyNewMessage(projectID, message)
	}

	return message, nil
}

// List returns a project's messages in chronological order.
func (s *MessageService) List(actor *models.User, projectID uint64) ([]models.Message, error) {
	project, err := s.loadProject(projectID)
	if err != nil {
		return nil, err
	}

	if !project.CanAccess(actor) {
		return nil, ErrProjectAccessDenied
	}
	if !project.MessagingAvailable() {
		return nil, ErrMessagingUnavailable
	}

	messages, err := s.messageRepo.ListByProject(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	return messages, nil
}

func (s *MessageService) loadProject(projectID uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}
