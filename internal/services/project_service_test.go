package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/AnneAnotherThing/hivenow-app/internal/models"
	"github.com/AnneAnotherThing/hivenow-app/internal/repository"
)

// ProjectServiceTestSuite defines the test suite for ProjectService
type ProjectServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *ProjectService
}

// SetupTest runs before each test
func (suite *ProjectServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Subscription{},
		&models.Project{},
		&models.Message{},
		&models.Review{},
	)
	suite.Require().NoError(err)

	suite.service = NewProjectService(
		repository.NewProjectRepository(suite.db),
		repository.NewSubscriptionRepository(suite.db),
	)
}

// TearDownTest runs after each test
func (suite *ProjectServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// Helper functions to create test data
func (suite *ProjectServiceTestSuite) createTestUser(username string, role models.UserRole) *models.User {
	user := &models.User{
		Email:        username + "@example.com",
		Username:     username,
		PasswordHash: "hashedpassword",
		Role:         role,
	}
	suite.db.Create(user)
	return user
}

func (suite *ProjectServiceTestSuite) createTestProject(owner *models.User, status models.ProjectStatus) *models.Project {
	project := &models.Project{
		Title:  "Garden shed roof",
		UserID: owner.ID,
		Status: status,
	}
	suite.db.Create(project)
	return project
}

func (suite *ProjectServiceTestSuite) createTestSubscription(user *models.User, status models.SubscriptionStatus) *models.Subscription {
	now := time.Now()
	sub := &models.Subscription{
		UserID:             user.ID,
		Tier:               models.TierPro,
		Status:             status,
		CurrentPeriodStart: now,
		CurrentPeriodEnd:   now.AddDate(0, 1, 0),
	}
	suite.db.Create(sub)
	return sub
}

func (suite *ProjectServiceTestSuite) assignProvider(project *models.Project, provider *models.User) {
	project.ProviderID = &provider.ID
	project.Status = models.ProjectInProgress
	suite.db.Save(project)
}

func (suite *ProjectServiceTestSuite) TestCreateProject_BasicTierNeedsNoSubscription() {
	owner := suite.createTestUser("customer", models.RoleCustomer)

	project, err := suite.service.CreateProject(CreateProjectInput{
		Title:   "Fix the fence",
		Tier:    models.TierBasic,
		OwnerID: owner.ID,
	})

	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.ProjectPending, project.Status)
	assert.Equal(suite.T(), owner.ID, project.UserID)
	assert.Nil(suite.T(), project.ProviderID)
}

func (suite *ProjectServiceTestSuite) TestCreateProject_DefaultsToBasicTier() {
	owner := suite.createTestUser("customer", models.RoleCustomer)

	_, err := suite.service.CreateProject(CreateProjectInput{
		Title:   "Fix the fence",
		OwnerID: owner.ID,
	})

	suite.Require().NoError(err)
}

func (suite *ProjectServiceTestSuite) TestCreateProject_ProTierWithoutSubscription() {
	owner := suite.createTestUser("customer", models.RoleCustomer)

	_, err := suite.service.CreateProject(CreateProjectInput{
		Title:   "Fix the fence",
		Tier:    models.TierPro,
		OwnerID: owner.ID,
	})

	assert.ErrorIs(suite.T(), err, ErrSubscriptionRequired)
}

func (suite *ProjectServiceTestSuite) TestCreateProject_ProTierWithLapsedSubscription() {
	owner := suite.createTestUser("customer", models.RoleCustomer)
	suite.createTestSubscription(owner, models.SubscriptionCanceled)

	_, err := suite.service.CreateProject(CreateProjectInput{
		Title:   "Fix the fence",
		Tier:    models.TierPro,
		OwnerID: owner.ID,
	})

	assert.ErrorIs(suite.T(), err, ErrSubscriptionRequired)
}

func (suite *ProjectServiceTestSuite) TestCreateProject_ProTierWithActiveSubscription() {
	owner := suite.createTestUser("customer", models.RoleCustomer)
	suite.createTestSubscription(owner, models.SubscriptionActive)

	project, err := suite.service.CreateProject(CreateProjectInput{
		Title:   "Fix the fence",
		Tier:    models.TierPro,
		OwnerID: owner.ID,
	})

	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.ProjectPending, project.Status)
}

func (suite *ProjectServiceTestSuite) TestCreateProject_TitleRequired() {
	owner := suite.createTestUser("customer", models.RoleCustomer)

	_, err := suite.service.CreateProject(CreateProjectInput{
		Title:   "   ",
		OwnerID: owner.ID,
	})

	assert.ErrorIs(suite.T(), err, ErrProjectTitleRequired)
}

func (suite *ProjectServiceTestSuite) TestAssignProject_Success() {
	owner := suite.createTestUser("customer", models.RoleCustomer)
	provider := suite.createTestUser("provider", models.RoleProvider)
	project := suite.createTestProject(owner, models.ProjectPending)

	assigned, err := suite.service.AssignProject(provider, project.ID)

	suite.Require().NoError(err)
	suite.Require().NotNil(assigned.ProviderID)
	assert.Equal(suite.T(), provider.ID, *assigned.ProviderID)
	assert.Equal(suite.T(), models.ProjectInProgress, assigned.Status)
}

func (suite *ProjectServiceTestSuite) TestAssignProject_AlreadyAssigned() {
	owner := suite.createTestUser("customer", models.RoleCustomer)
	first := suite.createTestUser("provider1", models.RoleProvider)
	second := suite.createTestUser("provider2", models.RoleProvider)
	project := suite.createTestProject(owner, models.ProjectPending)

	_, err := suite.service.AssignProject(first, project.ID)
	suite.Require().NoError(err)

	_, err = suite.service.AssignProject(second, project.ID)
	assert.ErrorIs(suite.T(), err, ErrAlreadyAssigned)
}

func (suite *ProjectServiceTestSuite) TestAssignProject_CustomerCannotClaim() {
	owner := suite.createTestUser("customer", models.RoleCustomer)
	project := suite.createTestProject(owner, models.ProjectPending)

	_, err := suite.service.AssignProject(owner, project.ID)
	assert.ErrorIs(suite.T(), err, ErrNotProvider)
}

func (suite *ProjectServiceTestSuite) TestAssignProject_NotFound() {
	provider := suite.createTestUser("provider", models.RoleProvider)

	_, err := suite.service.AssignProject(provider, 9999)
	assert.ErrorIs(suite.T(), err, ErrProjectNotFound)
}

func (suite *ProjectServiceTestSuite) TestUpdateProject_OwnerCompletesInProgress() {
	owner := suite.createTestUser("customer", models.RoleCustomer)
	provider := suite.createTestUser("provider", models.RoleProvider)
	project := suite.createTestProject(owner, models.ProjectPending)
	suite.assignProvider(project, provider)

	status := models.ProjectCompleted
	updated, err := suite.service.UpdateProject(owner, project.ID, UpdateProjectInput{Status: &status})

	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.ProjectCompleted, updated.Status)
}

func (suite *ProjectServiceTestSuite) TestUpdateProject_OwnerCannotCompletePending() {
	owner := suite.createTestUser("customer", models.RoleCustomer)
	project := suite.createTestProject(owner, models.ProjectPending)

	status := models.ProjectCompleted
	_, err := suite.service.UpdateProject(owner, project.ID, UpdateProjectInput{Status: &status})

	assert.ErrorIs(suite.T(), err, ErrInvalidTransition)
}

func (suite *ProjectServiceTestSuite) TestUpdateProject_OwnerCancelsPending() {
	owner := suite.createTestUser("customer", models.RoleCustomer)
	project := suite.createTestProject(owner, models.ProjectPending)

	status := models.ProjectCancelled
	updated, err := suite.service.UpdateProject(owner, project.ID, UpdateProjectInput{Status: &status})

	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.ProjectCancelled, updated.Status)
}

func (suite *ProjectServiceTestSuite) TestUpdateProject_ProviderCannotCancel() {
	owner := suite.createTestUser("customer", models.RoleCustomer)
	provider := suite.createTestUser("provider", models.RoleProvider)
	project := suite.createTestProject(owner, models.ProjectPending)
	suite.assignProvider(project, provider)

	status := models.ProjectCancelled
	_, err := suite.service.UpdateProject(provider, project.ID, UpdateProjectInput{Status: &status})

	assert.ErrorIs(suite.T(), err, ErrInvalidTransition)
}

func (suite *ProjectServiceTestSuite) TestUpdateProject_ProviderCompletesInProgress() {
	owner := suite.createTestUser("customer", models.RoleCustomer)
	provider := suite.createTestUser("provider", models.RoleProvider)
	project := suite.createTestProject(owner, models.ProjectPending)
	suite.assignProvider(project, provider)

	status := models.ProjectCompleted
	updated, err := suite.service.UpdateProject(provider, project.ID, UpdateProjectInput{Status: &status})

	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.ProjectCompleted, updated.Status)
}

func (suite *ProjectServiceTestSuite) TestUpdateProject_NoEdgeOutOfCompleted() {
	owner := suite.createTestUser("customer", models.RoleCustomer)
	project := suite.createTestProject(owner, models.ProjectCompleted)

	status := models.ProjectInProgress
	_, err := suite.service.UpdateProject(owner, project.ID, UpdateProjectInput{Status: &status})

	assert.ErrorIs(suite.T(), err, ErrInvalidTransition)
}

func (suite *ProjectServiceTestSuite) TestUpdateProject_AdminMayDriveAnyValidEdge() {
	owner := suite.createTestUser("customer", models.RoleCustomer)
	admin := suite.createTestUser("admin", models.RoleAdmin)
	project := suite.createTestProject(owner, models.ProjectPending)

	status := models.ProjectInProgress
	updated, err := suite.service.UpdateProject(admin, project.ID, UpdateProjectInput{Status: &status})

	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.ProjectInProgress, updated.Status)
}

func (suite *ProjectServiceTestSuite) TestUpdateProject_ProviderFieldsSilentlyScoped() {
	owner := suite.createTestUser("customer", models.RoleCustomer)
	provider := suite.createTestUser("provider", models.RoleProvider)
	project := suite.createTestProject(owner, models.ProjectPending)
	suite.assignProvider(project, provider)

	title := "Hijacked title"
	attachments := []string{"site-photo.jpg"}
	updated, err := suite.service.UpdateProject(provider, project.ID, UpdateProjectInput{
		Title:       &title,
		Attachments: &attachments,
	})

	suite.Require().NoError(err)
	// The out-of-scope title edit is dropped without an error
	assert.Equal(suite.T(), "Garden shed roof", updated.Title)
	assert.Equal(suite.T(), attachments, updated.Attachments)
}

func (suite *ProjectServiceTestSuite) TestUpdateProject_OwnerEditsFields() {
	owner := suite.createTestUser("customer", models.RoleCustomer)
	project := suite.createTestProject(owner, models.ProjectPending)

	title := "New roof instead"
	description := "Scope grew"
	due := time.Now().AddDate(0, 0, 14).Truncate(time.Second)
	updated, err := suite.service.UpdateProject(owner, project.ID, UpdateProjectInput{
		Title:       &title,
		Description: &description,
		DueDate:     &due,
	})

	suite.Require().NoError(err)
	assert.Equal(suite.T(), title, updated.Title)
	assert.Equal(suite.T(), description, updated.Description)
	suite.Require().NotNil(updated.DueDate)
	assert.WithinDuration(suite.T(), due, *updated.DueDate, time.Second)
}

func (suite *ProjectServiceTestSuite) TestUpdateProject_ClearDueDate() {
	owner := suite.createTestUser("customer", models.RoleCustomer)
	project := suite.createTestProject(owner, models.ProjectPending)
	due := time.Now().AddDate(0, 0, 7)
	project.DueDate = &due
	suite.db.Save(project)

	updated, err := suite.service.UpdateProject(owner, project.ID, UpdateProjectInput{ClearDueDate: true})

	suite.Require().NoError(err)
	assert.Nil(suite.T(), updated.DueDate)
}

func (suite *ProjectServiceTestSuite) TestUpdateProject_OutsiderDenied() {
	owner := suite.createTestUser("customer", models.RoleCustomer)
	stranger := suite.createTestUser("stranger", models.RoleCustomer)
	project := suite.createTestProject(owner, models.ProjectPending)

	title := "Mine now"
	_, err := suite.service.UpdateProject(stranger, project.ID, UpdateProjectInput{Title: &title})

	assert.ErrorIs(suite.T(), err, ErrProjectAccessDenied)
}

func (suite *ProjectServiceTestSuite) TestGetProject_AccessRules() {
	owner := suite.createTestUser("customer", models.RoleCustomer)
	provider := suite.createTestUser("provider", models.RoleProvider)
	stranger := suite.createTestUser("stranger", models.RoleCustomer)
	admin := suite.createTestUser("admin", models.RoleAdmin)
	project := suite.createTestProject(owner, models.ProjectPending)
	suite.assignProvider(project, provider)

	_, err := suite.service.GetProject(owner, project.ID)
	assert.NoError(suite.T(), err)

	_, err = suite.service.GetProject(provider, project.ID)
	assert.NoError(suite.T(), err)

	_, err = suite.service.GetProject(admin, project.ID)
	assert.NoError(suite.T(), err)

	_, err = suite.service.GetProject(stranger, project.ID)
	assert.ErrorIs(suite.T(), err, ErrProjectAccessDenied)
}

func (suite *ProjectServiceTestSuite) TestListProjects_ScopedByRole() {
	owner := suite.createTestUser("customer", models.RoleCustomer)
	other := suite.createTestUser("other", models.RoleCustomer)
	provider := suite.createTestUser("provider", models.RoleProvider)
	admin := suite.createTestUser("admin", models.RoleAdmin)

	mine := suite.createTestProject(owner, models.ProjectPending)
	suite.createTestProject(other, models.ProjectPending)
	assignedToMe := suite.createTestProject(other, models.ProjectPending)
	suite.assignProvider(assignedToMe, provider)

	projects, total, err := suite.service.ListProjects(owner, 1, 20)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), int64(1), total)
	suite.Require().Len(projects, 1)
	assert.Equal(suite.T(), mine.ID, projects[0].ID)

	projects, total, err = suite.service.ListProjects(provider, 1, 20)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), int64(1), total)
	suite.Require().Len(projects, 1)
	assert.Equal(suite.T(), assignedToMe.ID, projects[0].ID)

	_, total, err = suite.service.ListProjects(admin, 1, 20)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), int64(3), total)
}

func TestProjectServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProjectServiceTestSuite))
}
