package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"

	"github.com/inkwell-blog/inkwell-api/errs"
	"github.com/inkwell-blog/inkwell-api/models"
)

// postColumns are the columns an author may change after creation. The slug
// is not among them.
var postColumns = []string{"title", "excerpt", "content", "cover_image", "published", "tags"}

type BlogPostRepo struct {
	db *gorm.DB
}

func NewBlogPostRepo(db *gorm.DB) *BlogPostRepo {
	return &BlogPostRepo{db}
}

// PublishCounts is the number of an author's posts on each side of the
// published flag.
type PublishCounts struct {
	Published int64
	Drafts    int64
}

func (c PublishCounts) Total() int64 {
	return c.Published + c.Drafts
}

// Add inserts a new blog post into the database
func (r *BlogPostRepo) Add(ctx context.Context, post *models.BlogPost) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// FindOwned returns the post only if authorID owns it. Owner reads are pinned
// to the primary so an author always sees their latest write.
func (r *BlogPostRepo) FindOwned(ctx context.Context, id uuid.UUID, authorID string) (*models.BlogPost, error) {
	var post models.BlogPost
	err := r.db.WithContext(ctx).Clauses(dbresolver.Write).
		Where("id = ? AND author_id = ?", id, authorID).
		First(&post).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &post, nil
}

// ListByAuthor returns one page of the author's posts, newest first.
func (r *BlogPostRepo) ListByAuthor(ctx context.Context, authorID string, offset, limit int) ([]models.BlogPost, error) {
	var posts []models.BlogPost
	err := r.db.WithContext(ctx).Clauses(dbresolver.Write).
		Where("author_id = ?", authorID).
		Order("created_at DESC").Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (r *BlogPostRepo) CountByAuthor(ctx context.Context, authorID string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Clauses(dbresolver.Write).
		Model(&models.BlogPost{}).
		Where("author_id = ?", authorID).
		Count(&total).Error
	return total, err
}

// ListPublished returns one page of published posts across all authors,
// newest first, with the author's card fields loaded.
func (r *BlogPostRepo) ListPublished(ctx context.Context, offset, limit int) ([]models.BlogPost, error) {
	var posts []models.BlogPost
	err := r.db.WithContext(ctx).
		Preload("Author", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "username", "image")
		}).
		Where("published = ?", true).
		Order("created_at DESC").Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (r *BlogPostRepo) CountPublished(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.BlogPost{}).
		Where("published = ?", true).
		Count(&total).Error
	return total, err
}

// FindPublishedBySlug returns a published post with its author's public
// profile. Drafts are reported as not found.
func (r *BlogPostRepo) FindPublishedBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	var post models.BlogPost
	err := r.db.WithContext(ctx).
		Preload("Author", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "username", "bio", "website", "image")
		}).
		Where("slug = ? AND published = ?", slug, true).
		First(&post).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &post, nil
}

// Exists reports whether any post, published or not, has this id.
func (r *BlogPostRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.BlogPost{}).
		Where("id = ?", id).
		Limit(1).
		Count(&n).Error
	return n > 0, err
}

// UpdateOwned writes the editable columns of post, scoped to its author. The
// returned count is zero when the post is gone or owned by someone else.
func (r *BlogPostRepo) UpdateOwned(ctx context.Context, post *models.BlogPost) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(post).
		Where("author_id = ?", post.AuthorID).
		Select(postColumns).
		Updates(post)
	return res.RowsAffected, res.Error
}

func (r *BlogPostRepo) SetPublished(ctx context.Context, id uuid.UUID, authorID string, published bool) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.BlogPost{}).
		Where("id = ? AND author_id = ?", id, authorID).
		Update("published", published)
	return res.RowsAffected, res.Error
}

// DeleteOwned hard-deletes the post. Its comments go with it through the
// foreign key cascade.
func (r *BlogPostRepo) DeleteOwned(ctx context.Context, id uuid.UUID, authorID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND author_id = ?", id, authorID).
		Delete(&models.BlogPost{})
	return res.RowsAffected, res.Error
}

// CountByPublished groups the author's posts by the published flag.
func (r *BlogPostRepo) CountByPublished(ctx context.Context, authorID string) (PublishCounts, error) {
	var rows []struct {
		Published bool
		Count     int64
	}
	err := r.db.WithContext(ctx).Clauses(dbresolver.Write).
		Model(&models.BlogPost{}).
		Select("published, COUNT(*) AS count").
		Where("author_id = ?", authorID).
		Group("published").
		Scan(&rows).Error
	if err != nil {
		return PublishCounts{}, err
	}

	var counts PublishCounts
	for _, row := range rows {
		if row.Published {
			counts.Published = row.Count
		} else {
			counts.Drafts = row.Count
		}
	}
	return counts, nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrNotFound
	}
	return err
}
