package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// User is an author account. Rows are created by the identity provider on
// registration; this service only updates the profile fields.
type User struct {
	ID         string    `json:"id" db:"id" gorm:"type:text;primaryKey;not null"`
	Name       string    `json:"name" db:"name" gorm:"type:text;not null"`
	Username   string    `json:"username" db:"username" gorm:"type:text;not null;uniqueIndex:idx_user_username"`
	Email      string    `json:"email" db:"email" gorm:"type:text;not null;uniqueIndex:idx_user_email"`
	Image      *string   `json:"image,omitempty" db:"image" gorm:"type:text"`
	CoverImage *string   `json:"coverImage,omitempty" db:"cover_image" gorm:"type:text"`
	Website    *string   `json:"website,omitempty" db:"website" gorm:"type:text"`
	Bio        *string   `json:"bio,omitempty" db:"bio" gorm:"type:varchar(180)"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at" gorm:"not null"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at" gorm:"not null"`
}

// BeforeSave keeps usernames lower-case so uniqueness is case-insensitive.
func (u *User) BeforeSave(tx *gorm.DB) error {
	u.Username = strings.ToLower(u.Username)
	return nil
}
