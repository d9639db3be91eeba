package database

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libris/internal/entities"
)

func setupTestDatabase(t *testing.T) (*Database, func()) {
	dbPath := "./test_database_" + t.Name() + ".db"

	db, err := NewDatabase(dbPath)
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}

	return db, cleanup
}

func TestNewDatabase_MigratesSchema(t *testing.T) {
	db, cleanup := setupTestDatabase(t)
	defer cleanup()

	for _, table := range []string{"authors", "books", "quotes", "citations", "users"} {
		assert.True(t, db.DB.Migrator().HasTable(table), "missing table %s", table)
	}
}

func TestNewDatabase_Idempotent(t *testing.T) {
	dbPath := "./test_database_" + t.Name() + ".db"
	defer os.Remove(dbPath)

	db, err := NewDatabase(dbPath)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// Re-opening over an existing file must not error.
	db, err = NewDatabase(dbPath)
	require.NoError(t, err)
	db.Close()
}

func TestSeed(t *testing.T) {
	db, cleanup := setupTestDatabase(t)
	defer cleanup()

	require.NoError(t, db.Seed())

	var authorCount, bookCount, quoteCount int64
	require.NoError(t, db.DB.Model(&entities.Author{}).Count(&authorCount).Error)
	require.NoError(t, db.DB.Model(&entities.Book{}).Count(&bookCount).Error)
	require.NoError(t, db.DB.Model(&entities.Quote{}).Count(&quoteCount).Error)

	assert.Equal(t, int64(5), authorCount)
	assert.Equal(t, int64(5), bookCount)
	assert.Equal(t, int64(3), quoteCount)

	var book entities.Book
	require.NoError(t, db.DB.Where("title = ?", "Deep Work").First(&book).Error)
	require.NotNil(t, book.TotalPages)
	assert.Equal(t, 296, *book.TotalPages)
	assert.Equal(t, 87, book.CurrentPage)
	assert.Equal(t, entities.StatusReading, book.Status)
}

func TestSeed_QuotesRespectPageBounds(t *testing.T) {
	db, cleanup := setupTestDatabase(t)
	defer cleanup()

	require.NoError(t, db.Seed())

	var quotes []entities.Quote
	require.NoError(t, db.DB.Preload("Book").Find(&quotes).Error)
	for _, q := range quotes {
		require.NotNil(t, q.PageNumber)
		require.NotNil(t, q.Book.TotalPages)
		assert.LessOrEqual(t, *q.PageNumber, *q.Book.TotalPages)
	}
}

func TestTranslateError(t *testing.T) {
	assert.NoError(t, TranslateError(nil))
	assert.ErrorIs(t, TranslateError(ErrNotFound), ErrNotFound)
}

func TestIsUniqueViolation(t *testing.T) {
	db, cleanup := setupTestDatabase(t)
	defer cleanup()

	require.NoError(t, db.DB.Create(&entities.Author{Name: "Cal Newport"}).Error)

	err := db.DB.Create(&entities.Author{Name: "Cal Newport"}).Error
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))
	assert.ErrorIs(t, TranslateError(err), ErrConflict)
}
