package database_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/inkwell-blog/inkwell-api/database"
	"github.com/inkwell-blog/inkwell-api/database/dbtest"
	"github.com/inkwell-blog/inkwell-api/errs"
	"github.com/inkwell-blog/inkwell-api/models"
)

func newPost(authorID, slug string, published bool, createdAt time.Time) *models.BlogPost {
	return &models.BlogPost{
		Slug:      slug,
		Title:     "Title " + slug,
		Excerpt:   "An excerpt long enough",
		Content:   "<p>content</p>",
		Published: published,
		Tags:      datatypes.JSONSlice[string]{"go", "web"},
		AuthorID:  authorID,
		CreatedAt: createdAt,
	}
}

func setup(t *testing.T) (database.Database, *models.User, *models.User) {
	t.Helper()
	db := dbtest.New(t)
	alice := dbtest.NewUser(t, db, "alice")
	bob := dbtest.NewUser(t, db, "bob")
	return database.New(db), alice, bob
}

func TestBlogPostRepo_AddAndFindOwned(t *testing.T) {
	ctx := context.Background()
	store, alice, bob := setup(t)
	repo := store.BlogPostRepo()

	post := newPost(alice.ID, "hello-abc123", false, time.Now())
	require.NoError(t, repo.Add(ctx, post))
	assert.NotEqual(t, uuid.Nil, post.ID)

	got, err := repo.FindOwned(ctx, post.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, post.Title, got.Title)
	assert.Equal(t, []string{"go", "web"}, []string(got.Tags))
	assert.False(t, got.Published)

	_, err = repo.FindOwned(ctx, post.ID, bob.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)

	_, err = repo.FindOwned(ctx, uuid.New(), alice.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestBlogPostRepo_DuplicateSlug(t *testing.T) {
	ctx := context.Background()
	store, alice, _ := setup(t)
	repo := store.BlogPostRepo()

	require.NoError(t, repo.Add(ctx, newPost(alice.ID, "same-slug", false, time.Now())))
	err := repo.Add(ctx, newPost(alice.ID, "same-slug", false, time.Now()))
	require.Error(t, err)
	assert.True(t, errs.IsUniqueViolation(err))
}

func TestBlogPostRepo_ListByAuthor(t *testing.T) {
	ctx := context.Background()
	store, alice, bob := setup(t)
	repo := store.BlogPostRepo()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Add(ctx, newPost(alice.ID, fmt.Sprintf("a-%d", i), i%2 == 0, base.Add(time.Duration(i)*time.Minute))))
	}
	require.NoError(t, repo.Add(ctx, newPost(bob.ID, "b-0", true, base)))

	total, err := repo.CountByAuthor(ctx, alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)

	page, err := repo.ListByAuthor(ctx, alice.ID, 0, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "a-4", page[0].Slug)
	assert.Equal(t, "a-3", page[1].Slug)

	last, err := repo.ListByAuthor(ctx, alice.ID, 4, 2)
	require.NoError(t, err)
	require.Len(t, last, 1)
	assert.Equal(t, "a-0", last[0].Slug)

	beyond, err := repo.ListByAuthor(ctx, alice.ID, 10, 2)
	require.NoError(t, err)
	assert.Empty(t, beyond)
}

func TestBlogPostRepo_Published(t *testing.T) {
	ctx := context.Background()
	store, alice, bob := setup(t)
	repo := store.BlogPostRepo()

	base := time.Now().Add(-time.Hour)
	require.NoError(t, repo.Add(ctx, newPost(alice.ID, "draft", false, base)))
	require.NoError(t, repo.Add(ctx, newPost(alice.ID, "older", true, base.Add(time.Minute))))
	require.NoError(t, repo.Add(ctx, newPost(bob.ID, "newer", true, base.Add(2*time.Minute))))

	total, err := repo.CountPublished(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	posts, err := repo.ListPublished(ctx, 0, 20)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "newer", posts[0].Slug)
	require.NotNil(t, posts[0].Author)
	assert.Equal(t, "bob", posts[0].Author.Username)
	assert.Empty(t, posts[0].Author.Email)

	got, err := repo.FindPublishedBySlug(ctx, "older")
	require.NoError(t, err)
	require.NotNil(t, got.Author)
	assert.Equal(t, "alice", got.Author.Username)

	_, err = repo.FindPublishedBySlug(ctx, "draft")
	assert.ErrorIs(t, err, errs.ErrNotFound)
	_, err = repo.FindPublishedBySlug(ctx, "missing")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestBlogPostRepo_ScopedWrites(t *testing.T) {
	ctx := context.Background()
	store, alice, bob := setup(t)
	repo := store.BlogPostRepo()

	post := newPost(alice.ID, "scoped", false, time.Now())
	require.NoError(t, repo.Add(ctx, post))

	t.Run("update by another author touches nothing", func(t *testing.T) {
		foreign := *post
		foreign.AuthorID = bob.ID
		foreign.Title = "Hijacked"
		n, err := repo.UpdateOwned(ctx, &foreign)
		require.NoError(t, err)
		assert.Zero(t, n)

		got, err := repo.FindOwned(ctx, post.ID, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, "Title scoped", got.Title)
	})

	t.Run("update keeps the slug", func(t *testing.T) {
		edit := *post
		edit.Title = "Renamed"
		edit.Slug = "changed"
		edit.Tags = datatypes.JSONSlice[string]{}
		n, err := repo.UpdateOwned(ctx, &edit)
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)

		got, err := repo.FindOwned(ctx, post.ID, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, "Renamed", got.Title)
		assert.Equal(t, "scoped", got.Slug)
		assert.Empty(t, got.Tags)
	})

	t.Run("set published", func(t *testing.T) {
		n, err := repo.SetPublished(ctx, post.ID, bob.ID, true)
		require.NoError(t, err)
		assert.Zero(t, n)

		n, err = repo.SetPublished(ctx, post.ID, alice.ID, true)
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)

		exists, err := repo.Exists(ctx, post.ID)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("delete", func(t *testing.T) {
		n, err := repo.DeleteOwned(ctx, post.ID, bob.ID)
		require.NoError(t, err)
		assert.Zero(t, n)

		n, err = repo.DeleteOwned(ctx, post.ID, alice.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)

		exists, err := repo.Exists(ctx, post.ID)
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestBlogPostRepo_CountByPublished(t *testing.T) {
	ctx := context.Background()
	store, alice, bob := setup(t)
	repo := store.BlogPostRepo()

	counts, err := repo.CountByPublished(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, database.PublishCounts{}, counts)

	for i, published := range []bool{true, true, false} {
		require.NoError(t, repo.Add(ctx, newPost(alice.ID, fmt.Sprintf("p-%d", i), published, time.Now())))
	}
	require.NoError(t, repo.Add(ctx, newPost(bob.ID, "other", true, time.Now())))

	counts, err = repo.CountByPublished(ctx, alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, counts.Published)
	assert.EqualValues(t, 1, counts.Drafts)
	assert.EqualValues(t, 3, counts.Total())
}

func TestCommentRepo(t *testing.T) {
	ctx := context.Background()
	store, alice, bob := setup(t)

	post := newPost(alice.ID, "commented", false, time.Now())
	require.NoError(t, store.BlogPostRepo().Add(ctx, post))

	base := time.Now().Add(-time.Hour)
	first := &models.Comment{Content: "first", AuthorID: bob.ID, PostID: post.ID, CreatedAt: base}
	second := &models.Comment{Content: "second", AuthorID: alice.ID, PostID: post.ID, CreatedAt: base.Add(time.Minute)}
	require.NoError(t, store.CommentRepo().Add(ctx, second))
	require.NoError(t, store.CommentRepo().Add(ctx, first))

	comments, err := store.CommentRepo().ListByPost(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0].Content)
	require.NotNil(t, comments[0].Author)
	assert.Equal(t, "bob", comments[0].Author.Username)

	none, err := store.CommentRepo().ListByPost(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, none)

	// Deleting the post takes its comments along.
	_, err = store.BlogPostRepo().DeleteOwned(ctx, post.ID, alice.ID)
	require.NoError(t, err)
	comments, err = store.CommentRepo().ListByPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestUserRepo(t *testing.T) {
	ctx := context.Background()
	store, alice, bob := setup(t)
	users := store.UserRepo()

	exists, err := users.UsernameExists(ctx, "ALICE")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = users.UsernameExists(ctx, "carol")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = users.FindByID(ctx, "nobody")
	assert.ErrorIs(t, err, errs.ErrNotFound)

	t.Run("update lower-cases the username", func(t *testing.T) {
		u, err := users.FindByID(ctx, alice.ID)
		require.NoError(t, err)
		bio := "Writes about Go"
		u.Username = "Alice_W"
		u.Bio = &bio
		require.NoError(t, users.UpdateProfile(ctx, u))

		got, err := users.FindByID(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice_w", got.Username)
		require.NotNil(t, got.Bio)
		assert.Equal(t, bio, *got.Bio)
	})

	t.Run("duplicate email is a unique violation", func(t *testing.T) {
		u, err := users.FindByID(ctx, bob.ID)
		require.NoError(t, err)
		u.Email = "alice@example.com"
		err = users.UpdateProfile(ctx, u)
		require.Error(t, err)
		assert.True(t, errs.IsUniqueViolation(err))
	})
}
