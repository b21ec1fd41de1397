package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BlogPost is an authored article. Slug is assigned once on create and never
// rewritten.
type BlogPost struct {
	ID         uuid.UUID                   `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Slug       string                      `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex:idx_blog_post_slug"`
	Title      string                      `json:"title" db:"title" gorm:"type:varchar(100);not null"`
	Excerpt    string                      `json:"excerpt" db:"excerpt" gorm:"type:varchar(500);not null"`
	Content    string                      `json:"content" db:"content" gorm:"type:text;not null"`
	CoverImage *string                     `json:"coverImage,omitempty" db:"cover_image" gorm:"type:text"`
	Published  bool                        `json:"published" db:"published" gorm:"not null;default:false;index:idx_blog_post_published_created,priority:1"`
	Tags       datatypes.JSONSlice[string] `json:"tags" db:"tags"`
	AuthorID   string                      `json:"authorId" db:"author_id" gorm:"type:text;not null;index:idx_blog_post_author"`
	CreatedAt  time.Time                   `json:"createdAt" db:"created_at" gorm:"not null;index:idx_blog_post_published_created,priority:2"`
	UpdatedAt  time.Time                   `json:"updatedAt" db:"updated_at" gorm:"not null"`

	Author   *User     `json:"-" gorm:"foreignKey:AuthorID;references:ID;constraint:OnDelete:CASCADE"`
	Comments []Comment `json:"-" gorm:"foreignKey:PostID;references:ID;constraint:OnDelete:CASCADE"`
}

func (p *BlogPost) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Tags == nil {
		p.Tags = datatypes.JSONSlice[string]{}
	}
	return nil
}
