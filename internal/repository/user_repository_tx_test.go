package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// These tests pin the transaction shape of destructive operations
// against the real postgres dialect: the snapshot read and the write
// must commit or roll back together.

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:               logger.Default.LogMode(logger.Silent),
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)

	return db, mock
}

func TestUserRepository_DeleteIsTransactional(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "user" WHERE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email"}).AddRow(7, "alice@example.com"))
	mock.ExpectExec(`DELETE FROM "user" WHERE`).
		WithArgs(uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	deleted, err := repo.Delete(7)
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", deleted.Email)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_DeleteMissingRollsBack(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "user" WHERE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email"}))
	mock.ExpectRollback()

	_, err := repo.Delete(7)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
