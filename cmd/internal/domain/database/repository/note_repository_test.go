package repository

import (
	"errors"
	"notekeeper/cmd/internal/domain/database"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestRepo(t *testing.T) *DefaultNoteRepository {
	t.Helper()

	db, err := database.Open(&database.Config{Driver: database.DriverSQLite, Path: ":memory:"})
	require.NoError(t, err, "failed to open in-memory db")

	repo := NewNoteRepository(db)
	t.Cleanup(func() {
		require.NoError(t, repo.Close())
	})
	require.NoError(t, repo.EnsureSchema())
	return repo
}

func setupMockRepo(t *testing.T) (*DefaultNoteRepository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return NewNoteRepository(gdb), mock
}

func TestEnsureSchemaIsIdempotent(t *testing.T) {
	repo := setupTestRepo(t)

	id, err := repo.Insert("T", "C")
	require.NoError(t, err)

	require.NoError(t, repo.EnsureSchema(), "second schema init should not error")

	notes, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, notes, 1)
	require.Equal(t, id, notes[0].ID)
	require.Equal(t, "T", notes[0].Title)
	require.Equal(t, "C", notes[0].Content)
}

func TestInsertAndFindAll(t *testing.T) {
	repo := setupTestRepo(t)

	notes, err := repo.FindAll()
	require.NoError(t, err)
	require.NotNil(t, notes, "empty table should yield an empty slice")
	require.Empty(t, notes)

	id, err := repo.Insert("T", "C")
	require.NoError(t, err)
	require.GreaterOrEqual(t, id, int64(1))

	notes, err = repo.FindAll()
	require.NoError(t, err)
	require.Len(t, notes, 1)
	require.Equal(t, id, notes[0].ID)
	require.False(t, notes[0].CreatedAt.IsZero())
	require.False(t, notes[0].UpdatedAt.IsZero())
}

func TestFindAllNewestFirst(t *testing.T) {
	repo := setupTestRepo(t)

	for _, title := range []string{"A", "B", "C"} {
		_, err := repo.Insert(title, "content "+title)
		require.NoError(t, err)
	}

	notes, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, notes, 3)
	require.Equal(t, "C", notes[0].Title)
	require.Equal(t, "B", notes[1].Title)
	require.Equal(t, "A", notes[2].Title)
}

func TestUpdate(t *testing.T) {
	repo := setupTestRepo(t)

	id, err := repo.Insert("old title", "old content")
	require.NoError(t, err)

	found, err := repo.Update(id, "new title", "new content")
	require.NoError(t, err)
	require.True(t, found)

	notes, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, notes, 1)
	require.Equal(t, "new title", notes[0].Title)
	require.Equal(t, "new content", notes[0].Content)
	require.False(t, notes[0].UpdatedAt.Before(notes[0].CreatedAt), "updated_at must not precede created_at")
}

func TestUpdateMissingRow(t *testing.T) {
	repo := setupTestRepo(t)

	found, err := repo.Update(999999, "T", "C")
	require.NoError(t, err)
	require.False(t, found)
}

func TestDelete(t *testing.T) {
	repo := setupTestRepo(t)

	id, err := repo.Insert("T", "C")
	require.NoError(t, err)

	found, err := repo.Delete(id)
	require.NoError(t, err)
	require.True(t, found)

	notes, err := repo.FindAll()
	require.NoError(t, err)
	require.Empty(t, notes)

	found, err = repo.Delete(id)
	require.NoError(t, err)
	require.False(t, found, "second delete should not affect any row")
}

func TestCloseIsIdempotent(t *testing.T) {
	var nilRepo *DefaultNoteRepository
	require.NoError(t, nilRepo.Close())
	require.NoError(t, NewNoteRepository(nil).Close())

	db, err := database.Open(&database.Config{Driver: database.DriverSQLite, Path: ":memory:"})
	require.NoError(t, err)

	repo := NewNoteRepository(db)
	require.NoError(t, repo.Close())
	require.NoError(t, repo.Close())

	_, err = repo.FindAll()
	require.Error(t, err, "closed repository must not serve queries")
}

func TestInsertReturnsAssignedID(t *testing.T) {
	repo, mock := setupMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `notes`")).
		WithArgs("T", "C", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(42, 1))

	id, err := repo.Insert("T", "C")
	require.NoError(t, err)
	require.Equal(t, int64(42), id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreFailuresPropagate(t *testing.T) {
	repo, mock := setupMockRepo(t)
	connErr := errors.New("connection refused")

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `notes` ORDER BY created_at DESC,id DESC")).
		WillReturnError(connErr)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `notes`")).
		WillReturnError(connErr)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `notes` SET")).
		WillReturnError(connErr)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `notes`")).
		WillReturnError(connErr)

	_, err := repo.FindAll()
	require.ErrorIs(t, err, connErr)

	_, err = repo.Insert("T", "C")
	require.ErrorIs(t, err, connErr)

	found, err := repo.Update(1, "T", "C")
	require.ErrorIs(t, err, connErr)
	require.False(t, found)

	found, err = repo.Delete(1)
	require.ErrorIs(t, err, connErr)
	require.False(t, found)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWritesUseSingleStatements(t *testing.T) {
	repo, mock := setupMockRepo(t)

	// No Begin/Commit expected: any implicit transaction would fail the mock.
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `notes` SET")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `notes` WHERE `notes`.`id` = ?")).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	found, err := repo.Update(7, "T", "C")
	require.NoError(t, err)
	require.False(t, found, "zero affected rows means no such note")

	found, err = repo.Delete(7)
	require.NoError(t, err)
	require.True(t, found)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchemaFailureIsStoreUnavailable(t *testing.T) {
	repo, _ := setupMockRepo(t)

	err := repo.EnsureSchema()
	require.Error(t, err)
	require.ErrorIs(t, err, database.ErrStoreUnavailable)
}
