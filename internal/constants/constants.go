package constants

// Context keys shared between middleware and handlers
const (
	ContextKeyUserID  = "user_id"
	ContextKeyUser    = "user"
	ContextKeyProject = "project"
)

// Authentication
const (
	SessionCookieName = "hivenow_session"
	MinPasswordLength = 6
	MinUsernameLength = 3
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Reviews
const (
	MinRating = 1
	MaxRating = 5
)
