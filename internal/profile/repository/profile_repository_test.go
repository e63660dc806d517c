package repository

import (
	"context"
	"testing"

	"mindmaker-backend/pkg/database/dbmock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindProfile(t *testing.T) {
	db, mock := dbmock.New(t)
	repo := NewProfileRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "profiles" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "avatar_url"}).AddRow("u1", "ann", "http://cdn/avatars/u1/a.png"))

	p, err := repo.FindByID(context.Background(), "u1")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "ann", p.Username)
}

func TestFindProfileMissing(t *testing.T) {
	db, mock := dbmock.New(t)
	repo := NewProfileRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "profiles" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	p, err := repo.FindByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestUpdateProfileFields(t *testing.T) {
	db, mock := dbmock.New(t)
	repo := NewProfileRepository(db)

	mock.ExpectExec(`UPDATE "profiles" SET "username"=\$1.* WHERE id = \$\d`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Update(context.Background(), "u1", map[string]interface{}{"username": "ann"}))
}
