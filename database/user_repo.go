package database

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"

	"github.com/inkwell-blog/inkwell-api/models"
)

var profileColumns = []string{"name", "username", "email", "image", "cover_image", "website", "bio"}

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db}
}

// Add inserts a user. Accounts are normally created by the identity provider.
func (r *UserRepo) Add(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *UserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Clauses(dbresolver.Write).
		Where("id = ?", id).
		First(&user).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// UsernameExists matches case-insensitively. Stored usernames are always
// lower case.
func (r *UserRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("username = ?", strings.ToLower(username)).
		Limit(1).
		Count(&n).Error
	return n > 0, err
}

// UpdateProfile writes every profile column of user, including cleared ones.
func (r *UserRepo) UpdateProfile(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).
		Model(user).
		Select(profileColumns).
		Updates(user).Error
}
