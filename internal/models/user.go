package models

import "time"

type UserRole string

const (
	UserRoleAdmin UserRole = "admin"
	UserRoleUser  UserRole = "user"
)

// User accounts are created disabled and stay disabled until the email
// verification token is consumed. Enabled is true iff EmailVerifiedAt is set;
// the verification token fields are populated only while the account is
// unverified, and regenerating a token overwrites the previous one.
type User struct {
	BaseModel
	Name                       string     `json:"name" gorm:"type:varchar(100);not null"`
	Email                      string     `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash               string     `json:"-" gorm:"type:text;not null"`
	Role                       UserRole   `json:"role" gorm:"type:varchar(20);not null;default:'user'"`
	Enabled                    bool       `json:"enabled" gorm:"not null;default:false"`
	EmailVerifiedAt            *time.Time `json:"emailVerifiedAt,omitempty"`
	VerificationToken          *string    `json:"-" gorm:"type:varchar(64);uniqueIndex"`
	VerificationTokenExpiresAt *time.Time `json:"-"`
	Files                      []File     `json:"-" gorm:"foreignKey:OwnerID"`
}
