package dto

import (
	"strings"

	"github.com/inkwell-blog/inkwell-api/services"
)

// PostInput is the body of the create and update post endpoints.
type PostInput struct {
	Title      string   `json:"title" validate:"min=4,max=100"`
	Excerpt    string   `json:"excerpt" validate:"min=10,max=500"`
	Content    string   `json:"content" validate:"required"`
	CoverImage *string  `json:"coverImage" validate:"omitempty,url_or_empty"`
	Published  *bool    `json:"published" validate:"required"`
	Tags       []string `json:"tags" validate:"required"`
}

func (in *PostInput) Normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Excerpt = strings.TrimSpace(in.Excerpt)
	in.Content = services.SanitizeHTML(in.Content)
	in.CoverImage = trimOptional(in.CoverImage)
	in.Tags = services.NormalizeTags(in.Tags)
}

func (in *PostInput) Validate() error {
	return Validate(in)
}

// PublishInput is the optional body of the publish toggle. PostID is sent by
// the admin client and ignored in favour of the path parameter.
type PublishInput struct {
	PublishStatus *bool  `json:"publishStatus"`
	PostID        string `json:"postId"`
}

type CommentInput struct {
	Content string `json:"content" validate:"required"`
	PostID  string `json:"postId" validate:"required,uuid"`
}

func (in *CommentInput) Normalize() {
	in.Content = strings.TrimSpace(in.Content)
	in.PostID = strings.TrimSpace(in.PostID)
}

func (in *CommentInput) Validate() error {
	return validateWith(in, commentMessages)
}

// ProfileInput is the body of the profile update. Optional fields left out
// of the body keep their stored value; an empty string clears them.
type ProfileInput struct {
	ID         string  `json:"id" validate:"required"`
	Name       string  `json:"name" validate:"min=4,fullname"`
	Username   string  `json:"username" validate:"required"`
	Email      string  `json:"email" validate:"required,email"`
	Image      *string `json:"image"`
	CoverImage *string `json:"coverImage"`
	Website    *string `json:"website" validate:"omitempty,url_or_empty"`
	Bio        *string `json:"bio" validate:"omitempty,max=180"`
}

func (in *ProfileInput) Normalize() {
	in.ID = strings.TrimSpace(in.ID)
	in.Name = strings.TrimSpace(in.Name)
	in.Username = strings.ToLower(strings.TrimSpace(in.Username))
	in.Email = strings.TrimSpace(in.Email)
	in.Image = trimOptional(in.Image)
	in.CoverImage = trimOptional(in.CoverImage)
	in.Website = trimOptional(in.Website)
	in.Bio = trimOptional(in.Bio)
}

func (in *ProfileInput) Validate() error {
	return Validate(in)
}

// trimOptional trims a present value. A blank value stays present as "".
func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

// NilIfEmpty turns a present but blank optional value into an absent one.
func NilIfEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
