package dto

import (
	"math"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-blog/inkwell-api/errs"
)

func ptr[T any](v T) *T { return &v }

func validPost() PostInput {
	return PostInput{
		Title:     "Hello World",
		Excerpt:   "A short summary of the post",
		Content:   "<p>Body</p>",
		Published: ptr(false),
		Tags:      []string{"go"},
	}
}

func fieldErrors(t *testing.T, err error) errs.FieldErrors {
	t.Helper()
	var fe errs.FieldErrors
	require.ErrorAs(t, err, &fe)
	return fe
}

func TestPostInput_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*PostInput)
		field  errs.Field
		msg    string
	}{
		{"short title", func(p *PostInput) { p.Title = "abc" }, errs.FieldTitle, "Title should be at least 4 characters long"},
		{"long title", func(p *PostInput) { p.Title = strings.Repeat("t", 101) }, errs.FieldTitle, "Title cannot be longer than 100 characters"},
		{"short excerpt", func(p *PostInput) { p.Excerpt = "too short" }, errs.FieldExcerpt, "Blog summary should be at least 10 characters long"},
		{"long excerpt", func(p *PostInput) { p.Excerpt = strings.Repeat("e", 501) }, errs.FieldExcerpt, "Blog summary cannot be longer than 500 characters"},
		{"empty content", func(p *PostInput) { p.Content = "" }, errs.FieldContent, "Blog content cannot be empty"},
		{"missing published", func(p *PostInput) { p.Published = nil }, errs.FieldPublished, "Published status is required"},
		{"missing tags", func(p *PostInput) { p.Tags = nil }, errs.FieldTags, "Tags are required"},
		{"bad cover image", func(p *PostInput) { p.CoverImage = ptr("not a url") }, errs.FieldCoverImage, "Cover image must be a valid URL"},
		{"relative cover image", func(p *PostInput) { p.CoverImage = ptr("cdn/cover.png") }, errs.FieldCoverImage, "Cover image must be a valid URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validPost()
			tt.mutate(&in)

			fe := fieldErrors(t, in.Validate())
			assert.Equal(t, errs.FieldErrors{tt.field: tt.msg}, fe)
			assert.True(t, errs.IsInvalidFieldError(fe))
		})
	}
}

func TestPostInput_ValidBoundaries(t *testing.T) {
	in := validPost()
	in.Title = strings.Repeat("é", 100)
	in.Excerpt = strings.Repeat("x", 10)
	in.Tags = []string{}
	in.CoverImage = ptr("")
	assert.NoError(t, in.Validate())
}

func TestPostInput_Normalize(t *testing.T) {
	in := PostInput{
		Title:      "  Hello World  ",
		Excerpt:    " summary text here ",
		Content:    `<p onclick="x()">Hi</p><script>alert(1)</script>`,
		CoverImage: ptr("  "),
		Tags:       []string{" go ", "go", "", "web"},
	}
	in.Normalize()

	assert.Equal(t, "Hello World", in.Title)
	assert.Equal(t, "summary text here", in.Excerpt)
	assert.Equal(t, "<p>Hi</p>", in.Content)
	require.NotNil(t, in.CoverImage)
	assert.Equal(t, "", *in.CoverImage)
	assert.Nil(t, NilIfEmpty(in.CoverImage))
	assert.Equal(t, []string{"go", "web"}, in.Tags)
}

func TestProfileInput_Validate(t *testing.T) {
	valid := func() ProfileInput {
		return ProfileInput{ID: "u1", Name: "John Doe", Username: "john", Email: "john@example.com"}
	}

	tests := []struct {
		name   string
		mutate func(*ProfileInput)
		want   errs.FieldErrors
	}{
		{"short name", func(p *ProfileInput) { p.Name = "Jo" }, errs.FieldErrors{errs.FieldName: "Fullname should contain at least 4 characters"}},
		{"single word name", func(p *ProfileInput) { p.Name = "Johnny" }, errs.FieldErrors{errs.FieldName: "Enter a valid full name"}},
		{"digits in name", func(p *ProfileInput) { p.Name = "John D0e" }, errs.FieldErrors{errs.FieldName: "Enter a valid full name"}},
		{"missing username", func(p *ProfileInput) { p.Username = "" }, errs.FieldErrors{errs.FieldUsername: "Username is required"}},
		{"bad email", func(p *ProfileInput) { p.Email = "nope" }, errs.FieldErrors{errs.FieldEmail: "Invalid email address"}},
		{"bad website", func(p *ProfileInput) { p.Website = ptr("example") }, errs.FieldErrors{errs.FieldWebsite: "Invalid URL"}},
		{"long bio", func(p *ProfileInput) { p.Bio = ptr(strings.Repeat("b", 181)) }, errs.FieldErrors{errs.FieldBio: "Bio cannot be longer than 180 characters"}},
		{"several fields", func(p *ProfileInput) { p.ID = ""; p.Email = "" }, errs.FieldErrors{
			errs.FieldID:    "Id is required",
			errs.FieldEmail: "Email is required",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid()
			tt.mutate(&in)
			assert.Equal(t, tt.want, fieldErrors(t, in.Validate()))
		})
	}

	t.Run("valid website", func(t *testing.T) {
		in := valid()
		in.Website = ptr("https://john.example.com")
		assert.NoError(t, in.Validate())
	})

	t.Run("empty website and bio are allowed", func(t *testing.T) {
		in := valid()
		in.Website = ptr("")
		in.Bio = ptr("")
		assert.NoError(t, in.Validate())
	})
}

func TestProfileInput_NormalizeLowercasesUsername(t *testing.T) {
	in := ProfileInput{Username: "  John_Doe ", Website: ptr(" https://example.com ")}
	in.Normalize()
	assert.Equal(t, "john_doe", in.Username)
	assert.Equal(t, "https://example.com", *in.Website)
	assert.Nil(t, in.Bio)
}

func TestCommentInput_Validate(t *testing.T) {
	in := CommentInput{Content: "", PostID: "nope"}
	assert.Equal(t, errs.FieldErrors{
		errs.FieldContent: "Comment cannot be empty",
		errs.FieldPostID:  "Invalid post id",
	}, fieldErrors(t, in.Validate()))

	in = CommentInput{Content: "Nice", PostID: "6f1c1b8e-4a57-4c1c-9d3a-2b8f6a0e5c11"}
	assert.NoError(t, in.Validate())
}

func TestValidUsername(t *testing.T) {
	assert.True(t, ValidUsername("john_doe99"))
	assert.False(t, ValidUsername("ab$d"))
	assert.False(t, ValidUsername("john doe"))
	assert.False(t, ValidUsername(""))
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		body string
		want errs.FieldErrors
	}{
		{"empty body", "", errs.FieldErrors{errs.FieldBody: "Request body is required"}},
		{"malformed", `{"title":`, errs.FieldErrors{errs.FieldBody: "Malformed JSON"}},
		{"syntax error", `{bad}`, errs.FieldErrors{errs.FieldBody: "Malformed JSON"}},
		{"unknown field", `{"title":"Hello","author":"me"}`, errs.FieldErrors{errs.FieldBody: `Unknown field "author"`}},
		{"wrong type", `{"published":"yes"}`, errs.FieldErrors{errs.FieldPublished: "Invalid input: expected boolean, received string"}},
		{"two objects", `{"title":"a"}{"title":"b"}`, errs.FieldErrors{errs.FieldBody: "Request body must contain a single JSON object"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/api/posts", strings.NewReader(tt.body))
			var in PostInput
			err := Decode(httptest.NewRecorder(), r, &in)
			assert.Equal(t, tt.want, fieldErrors(t, err))
		})
	}

	t.Run("valid", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/api/posts", strings.NewReader(`{"title":"Hello","published":true,"tags":["a"]}`))
		var in PostInput
		require.NoError(t, Decode(httptest.NewRecorder(), r, &in))
		assert.Equal(t, "Hello", in.Title)
		assert.True(t, *in.Published)
		assert.Equal(t, []string{"a"}, in.Tags)
	})
}

func TestDecodeOptional_EmptyBody(t *testing.T) {
	r := httptest.NewRequest("PATCH", "/api/posts/x/publish", strings.NewReader(""))
	var in PublishInput
	require.NoError(t, DecodeOptional(httptest.NewRecorder(), r, &in))
	assert.Nil(t, in.PublishStatus)

	r = httptest.NewRequest("PATCH", "/api/posts/x/publish", strings.NewReader(`{"publishStatus":false,"postId":"x"}`))
	require.NoError(t, DecodeOptional(httptest.NewRecorder(), r, &in))
	require.NotNil(t, in.PublishStatus)
	assert.False(t, *in.PublishStatus)
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		query string
		want  Pagination
	}{
		{"", Pagination{Page: 1, Limit: 20}},
		{"page=3&limit=5", Pagination{Page: 3, Limit: 5}},
		{"page=0&limit=0", Pagination{Page: 1, Limit: 20}},
		{"page=-2&limit=-1", Pagination{Page: 1, Limit: 20}},
		{"page=abc&limit=xyz", Pagination{Page: 1, Limit: 20}},
		{"limit=1000", Pagination{Page: 1, Limit: 100}},
		{"page=9223372036854775807", Pagination{Page: math.MaxInt, Limit: 20}},
		{"page=99999999999999999999", Pagination{Page: math.MaxInt, Limit: 20}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ParsePagination(q))
		})
	}
}

func TestPagination_Math(t *testing.T) {
	p := Pagination{Page: 3, Limit: 10}
	assert.Equal(t, 20, p.Offset())
	assert.Equal(t, 0, p.TotalPages(0))
	assert.Equal(t, 1, p.TotalPages(1))
	assert.Equal(t, 1, p.TotalPages(10))
	assert.Equal(t, 2, p.TotalPages(11))
	assert.Equal(t, 25, Pagination{Page: 1, Limit: 4}.TotalPages(100))
	assert.Equal(t, 0, Pagination{Page: 1, Limit: 20}.Offset())
}

func TestPagination_OffsetSaturates(t *testing.T) {
	assert.Equal(t, math.MaxInt, Pagination{Page: math.MaxInt, Limit: 20}.Offset())
	assert.Equal(t, math.MaxInt, Pagination{Page: math.MaxInt/20 + 2, Limit: 20}.Offset())
	assert.Equal(t, (math.MaxInt/20)*20, Pagination{Page: math.MaxInt/20 + 1, Limit: 20}.Offset())
}

func TestNewPage_EmptyDataIsNotNull(t *testing.T) {
	page := NewPage[PostResponse](nil, Pagination{Page: 2, Limit: 20}, 0)
	assert.NotNil(t, page.Data)
	assert.Empty(t, page.Data)
	assert.Equal(t, 0, page.TotalPages)
}
