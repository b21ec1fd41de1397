package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/inkwell-blog/inkwell-api/models"
)

// PostResponse is a post as its author sees it.
type PostResponse struct {
	ID         uuid.UUID `json:"id"`
	Slug       string    `json:"slug"`
	Title      string    `json:"title"`
	Excerpt    string    `json:"excerpt"`
	Content    string    `json:"content"`
	CoverImage *string   `json:"coverImage,omitempty"`
	Published  bool      `json:"published"`
	Tags       []string  `json:"tags"`
	AuthorID   string    `json:"authorId"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func NewPostResponse(p models.BlogPost) PostResponse {
	return PostResponse{
		ID:         p.ID,
		Slug:       p.Slug,
		Title:      p.Title,
		Excerpt:    p.Excerpt,
		Content:    p.Content,
		CoverImage: p.CoverImage,
		Published:  p.Published,
		Tags:       tagsOf(p),
		AuthorID:   p.AuthorID,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func NewPostResponses(posts []models.BlogPost) []PostResponse {
	out := make([]PostResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, NewPostResponse(p))
	}
	return out
}

// PublicAuthor is the part of a profile readers may see. Email is never
// exposed.
type PublicAuthor struct {
	Name     string  `json:"name"`
	Username string  `json:"username"`
	Image    *string `json:"image,omitempty"`
	Bio      *string `json:"bio,omitempty"`
	Website  *string `json:"website,omitempty"`
}

// PublicPostResponse is a published post with its author's public profile.
type PublicPostResponse struct {
	ID         uuid.UUID    `json:"id"`
	Slug       string       `json:"slug"`
	Title      string       `json:"title"`
	Excerpt    string       `json:"excerpt"`
	Content    string       `json:"content"`
	CoverImage *string      `json:"coverImage,omitempty"`
	Tags       []string     `json:"tags"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
	Author     PublicAuthor `json:"author"`
}

func NewPublicPostResponse(p models.BlogPost) PublicPostResponse {
	resp := PublicPostResponse{
		ID:         p.ID,
		Slug:       p.Slug,
		Title:      p.Title,
		Excerpt:    p.Excerpt,
		Content:    p.Content,
		CoverImage: p.CoverImage,
		Tags:       tagsOf(p),
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
	if p.Author != nil {
		resp.Author = PublicAuthor{
			Name:     p.Author.Name,
			Username: p.Author.Username,
			Image:    p.Author.Image,
			Bio:      p.Author.Bio,
			Website:  p.Author.Website,
		}
	}
	return resp
}

// SummaryAuthor is the author line on a listing card.
type SummaryAuthor struct {
	Name     string  `json:"name"`
	Username string  `json:"username"`
	Image    *string `json:"image,omitempty"`
}

// PublicPostSummary is one entry of the public listing. Content is left out;
// readers open the post by slug.
type PublicPostSummary struct {
	ID         uuid.UUID     `json:"id"`
	Slug       string        `json:"slug"`
	Title      string        `json:"title"`
	Excerpt    string        `json:"excerpt"`
	CoverImage *string       `json:"coverImage,omitempty"`
	Tags       []string      `json:"tags"`
	CreatedAt  time.Time     `json:"createdAt"`
	Author     SummaryAuthor `json:"author"`
}

func NewPublicPostSummaries(posts []models.BlogPost) []PublicPostSummary {
	out := make([]PublicPostSummary, 0, len(posts))
	for _, p := range posts {
		s := PublicPostSummary{
			ID:         p.ID,
			Slug:       p.Slug,
			Title:      p.Title,
			Excerpt:    p.Excerpt,
			CoverImage: p.CoverImage,
			Tags:       tagsOf(p),
			CreatedAt:  p.CreatedAt,
		}
		if p.Author != nil {
			s.Author = SummaryAuthor{Name: p.Author.Name, Username: p.Author.Username, Image: p.Author.Image}
		}
		out = append(out, s)
	}
	return out
}

type CommentAuthor struct {
	Name     string `json:"name"`
	Username string `json:"username"`
}

type CommentResponse struct {
	ID        uuid.UUID     `json:"id"`
	Content   string        `json:"content"`
	PostID    uuid.UUID     `json:"postId"`
	CreatedAt time.Time     `json:"createdAt"`
	Author    CommentAuthor `json:"author"`
}

func NewCommentResponse(c models.Comment) CommentResponse {
	resp := CommentResponse{
		ID:        c.ID,
		Content:   c.Content,
		PostID:    c.PostID,
		CreatedAt: c.CreatedAt,
	}
	if c.Author != nil {
		resp.Author = CommentAuthor{Name: c.Author.Name, Username: c.Author.Username}
	}
	return resp
}

func NewCommentResponses(comments []models.Comment) []CommentResponse {
	out := make([]CommentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, NewCommentResponse(c))
	}
	return out
}

// ProfileResponse is the caller's own profile after an update.
type ProfileResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Username   string  `json:"username"`
	Email      string  `json:"email"`
	Image      *string `json:"image,omitempty"`
	CoverImage *string `json:"coverImage,omitempty"`
	Website    *string `json:"website,omitempty"`
	Bio        *string `json:"bio,omitempty"`
}

func NewProfileResponse(u models.User) ProfileResponse {
	return ProfileResponse{
		ID:         u.ID,
		Name:       u.Name,
		Username:   u.Username,
		Email:      u.Email,
		Image:      u.Image,
		CoverImage: u.CoverImage,
		Website:    u.Website,
		Bio:        u.Bio,
	}
}

type StatsResponse struct {
	TotalPosts     int64 `json:"totalPosts"`
	PublishedPosts int64 `json:"publishedPosts"`
	DraftPosts     int64 `json:"draftPosts"`
	TotalViews     int64 `json:"totalViews"`
}

type UsernameCheckResponse struct {
	Exists  bool   `json:"exists"`
	Message string `json:"message,omitempty"`
}

func tagsOf(p models.BlogPost) []string {
	if p.Tags == nil {
		return []string{}
	}
	return []string(p.Tags)
}
