package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/AnneAnotherThing/hivenow-app/internal/models"
	"github.com/AnneAnotherThing/hivenow-app/internal/repository"
)

// recordingNotifier captures relay notifications for assertions.
type recordingNotifier struct {
	projectIDs []uint64
}

func (n *recordingNotifier) NotifyNewMessage(projectID uint64, _ interface{}) {
	n.projectIDs = append(n.projectIDs, projectID)
}

type messageTestEnv struct {
	db       *gorm.DB
	service  *MessageService
	notifier *recordingNotifier
}

func setupMessageTestEnv(t *testing.T) messageTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Message{},
	)
	require.NoError(t, err)

	notifier := &recordingNotifier{}
	service := NewMessageService(
		repository.NewMessageRepository(db),
		repository.NewProjectRepository(db),
		notifier,
	)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return messageTestEnv{db: db, service: service, notifier: notifier}
}

func (env messageTestEnv) createUser(t *testing.T, username string, role models.UserRole) *models.User {
	t.Helper()
	user := &models.User{
		Email:        username + "@example.com",
		Username:     username,
		PasswordHash: "hashedpassword",
		Role:         role,
	}
	require.NoError(t, env.db.Create(user).Error)
	return user
}

func (env messageTestEnv) createAssignedProject(t *testing.T, owner, provider *models.User) *models.Project {
	t.Helper()
	project := &models.Project{
		Title:      "Bathroom retile",
		UserID:     owner.ID,
		ProviderID: &provider.ID,
		Status:     models.ProjectInProgress,
	}
	require.NoError(t, env.db.Create(project).Error)
	return project
}

func TestMessageService_SendAndList(t *testing.T) {
	env := setupMessageTestEnv(t)
	owner := env.createUser(t, "customer", models.RoleCustomer)
	provider := env.createUser(t, "provider", models.RoleProvider)
	project := env.createAssignedProject(t, owner, provider)

	_, err := env.service.Send(owner, project.ID, "When can you start?")
	require.NoError(t, err)
	_, err = env.service.Send(provider, project.ID, "Monday morning")
	require.NoError(t, err)

	messages, err := env.service.List(owner, project.ID)
	require.NoError(t, err)
	require.Len(t, messages, 2)

	// Chronological order, sender preloaded
	require.Equal(t, "When can you start?", messages[0].Content)
	require.Equal(t, "Monday morning", messages[1].Content)
	require.Equal(t, owner.ID, messages[0].SenderID)
	require.Equal(t, "customer", messages[0].Sender.Username)

	require.Equal(t, []uint64{project.ID, project.ID}, env.notifier.projectIDs)
}

func TestMessageService_SendBeforeAssignment(t *testing.T) {
	env := setupMessageTestEnv(t)
	owner := env.createUser(t, "customer", models.RoleCustomer)

	project := &models.Project{
		Title:  "Bathroom retile",
		UserID: owner.ID,
		Status: models.ProjectPending,
	}
	require.NoError(t, env.db.Create(project).Error)

	_, err := env.service.Send(owner, project.ID, "Anyone there?")
	require.ErrorIs(t, err, ErrMessagingUnavailable)

	_, err = env.service.List(owner, project.ID)
	require.ErrorIs(t, err, ErrMessagingUnavailable)

	require.Empty(t, env.notifier.projectIDs)
}

func TestMessageService_SendDeniedForOutsider(t *testing.T) {
	env := setupMessageTestEnv(t)
	owner := env.createUser(t, "customer", models.RoleCustomer)
	provider := env.createUser(t, "provider", models.RoleProvider)
	stranger := env.createUser(t, "stranger", models.RoleCustomer)
	project := env.createAssignedProject(t, owner, provider)

	_, err := env.service.Send(stranger, project.ID, "Let me in")
	require.ErrorIs(t, err, ErrProjectAccessDenied)

	_, err = env.service.List(stranger, project.ID)
	require.ErrorIs(t, err, ErrProjectAccessDenied)
}

func TestMessageService_SendEmptyContent(t *testing.T) {
	env := setupMessageTestEnv(t)
	owner := env.createUser(t, "customer", models.RoleCustomer)
	provider := env.createUser(t, "provider", models.RoleProvider)
	project := env.createAssignedProject(t, owner, provider)

	_, err := env.service.Send(owner, project.ID, "   ")
	require.ErrorIs(t, err, ErrMessageEmpty)
}

func TestMessageService_ProjectNotFound(t *testing.T) {
	env := setupMessageTestEnv(t)
	owner := env.createUser(t, "customer", models.RoleCustomer)

	_, err := env.service.Send(owner, 9999, "hello")
	require.ErrorIs(t, err, ErrProjectNotFound)
}

func TestMessageService_NilNotifierIsFine(t *testing.T) {
	env := setupMessageTestEnv(t)
	owner := env.createUser(t, "customer", models.RoleCustomer)
	provider := env.createUser(t, "provider", models.RoleProvider)
	project := env.createAssignedProject(t, owner, provider)

	service := NewMessageService(
		repository.NewMessageRepository(env.db),
		repository.NewProjectRepository(env.db),
		nil,
	)

	_, err := service.Send(owner, project.ID, "still works")
	require.NoError(t, err)
}
