package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleProvider UserRole = "provider"
	RoleAdmin    UserRole = "admin"
)

type User struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Email        string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Username     string         `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	PasswordHash string         `gorm:"type:varchar(255);not null" json:"-"`
	FirstName    string         `gorm:"type:varchar(100)" json:"first_name"`
	LastName     string         `gorm:"type:varchar(100)" json:"last_name"`
	Role         UserRole       `gorm:"type:varchar(20);not null;default:'customer'" json:"role"`
	AvatarURL    string         `gorm:"type:varchar(512)" json:"avatar_url"`

	// References into the payment processor, set lazily on first subscribe
	BillingCustomerID     string `gorm:"type:varchar(255)" json:"-"`
	BillingSubscriptionID string `gorm:"type:varchar(255)" json:"-"`

	ContactPreference string `gorm:"type:varchar(20)" json:"contact_preference"`
	ContactValue      string `gorm:"type:varchar(255)" json:"contact_value"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Projects        []Project      `gorm:"foreignKey:UserID" json:"-"`
	AssignedWork    []Project      `gorm:"foreignKey:ProviderID" json:"-"`
	Subscriptions   []Subscription `gorm:"foreignKey:UserID" json:"-"`
	Messages        []Message      `gorm:"foreignKey:SenderID" json:"-"`
	WrittenReviews  []Review       `gorm:"foreignKey:ReviewerID" json:"-"`
	ReceivedReviews []Review       `gorm:"foreignKey:ReceiverID" json:"-"`
}
