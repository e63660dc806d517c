package repository

import (
	"context"
	"testing"
	"time"

	"mindmaker-backend/internal/blog/domain"
	"mindmaker-backend/pkg/database/dbmock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugExists(t *testing.T) {
	db, mock := dbmock.New(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "blog_posts" WHERE slug = \$1`).
		WithArgs("hello-world").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.SlugExists(context.Background(), "hello-world")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestFindBySlugMissing(t *testing.T) {
	db, mock := dbmock.New(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "blog_posts" WHERE slug = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	post, err := repo.FindBySlug(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, post)
}

func TestListDecodesTags(t *testing.T) {
	db, mock := dbmock.New(t)
	repo := NewPostRepository(db)
	now := time.Now()

	mock.ExpectQuery(`SELECT \* FROM "blog_posts" ORDER BY created_at DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "slug", "tags", "is_published", "created_at"}).
			AddRow("p2", "Second", "second", `["go","swot"]`, false, now).
			AddRow("p1", "First", "first", nil, true, now.Add(-time.Hour)))

	posts, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, domain.StringArray{"go", "swot"}, posts[0].Tags)
	assert.Empty(t, posts[1].Tags)
}

func TestSetPublishedNoRow(t *testing.T) {
	db, mock := dbmock.New(t)
	repo := NewPostRepository(db)

	mock.ExpectExec(`UPDATE "blog_posts" SET .* WHERE id = \$\d`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.SetPublished(context.Background(), "missing", true, nil)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDeletePost(t *testing.T) {
	db, mock := dbmock.New(t)
	repo := NewPostRepository(db)

	mock.ExpectExec(`DELETE FROM "blog_posts" WHERE id = \$1`).
		WithArgs("p1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := repo.Delete(context.Background(), "p1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRoleNames(t *testing.T) {
	db, mock := dbmock.New(t)
	repo := NewRoleRepository(db)

	mock.ExpectQuery(`SELECT "?roles"?\."?name"? FROM "?user_roles"? JOIN roles ON roles\.id = user_roles\.role_id WHERE user_roles\.user_id = \$1`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("editor"))

	roles, err := repo.RoleNames(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"editor"}, roles)
	assert.True(t, domain.CanManage(roles))
}

func TestStringArrayValue(t *testing.T) {
	v, err := domain.StringArray(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	v, err = domain.StringArray{"a"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["a"]`, v)

	var a domain.StringArray
	require.NoError(t, a.Scan([]byte(`["x","y"]`)))
	assert.Equal(t, domain.StringArray{"x", "y"}, a)
}
