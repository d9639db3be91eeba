package authors

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"libris/internal/database"
	"libris/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, *gorm.DB, func()) {
	dbPath := "./test_authors_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&entities.Author{},
		&entities.Book{},
		&entities.Quote{},
	)
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return repo, db, cleanup
}

func TestRepository_FindOrCreate_New(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	author, created, err := repo.FindOrCreate("James Clear")

	require.NoError(t, err)
	assert.True(t, created)
	assert.NotZero(t, author.ID)
	assert.Equal(t, "James Clear", author.Name)
}

func TestRepository_FindOrCreate_Existing(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	first, created, err := repo.FindOrCreate("James Clear")
	require.NoError(t, err)
	require.True(t, created)

	// Same name again must return the same row, not a duplicate.
	second, created, err := repo.FindOrCreate("James Clear")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	count, err := repo.CountActive()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRepository_FindOrCreate_SoftDeletedNameStillTaken(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	author, _, err := repo.FindOrCreate("Cal Newport")
	require.NoError(t, err)
	require.NoError(t, repo.CascadeDelete(author.ID))

	// Uniqueness spans deleted rows, so the lookup must too.
	found, created, err := repo.FindOrCreate("Cal Newport")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, author.ID, found.ID)
}

func TestRepository_List(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	for _, name := range []string{"Robert C. Martin", "Andrew Hunt", "Marcus Aurelius"} {
		_, _, err := repo.FindOrCreate(name)
		require.NoError(t, err)
	}

	authors, err := repo.List("")
	require.NoError(t, err)
	require.Len(t, authors, 3)
	assert.Equal(t, "Andrew Hunt", authors[0].Name)
	assert.Equal(t, "Marcus Aurelius", authors[1].Name)
	assert.Equal(t, "Robert C. Martin", authors[2].Name)
}

func TestRepository_List_Search(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	_, _, err := repo.FindOrCreate("Marcus Aurelius")
	require.NoError(t, err)
	_, _, err = repo.FindOrCreate("Cal Newport")
	require.NoError(t, err)

	// SQLite LIKE is case-insensitive for ASCII.
	authors, err := repo.List("aurelius")
	require.NoError(t, err)
	require.Len(t, authors, 1)
	assert.Equal(t, "Marcus Aurelius", authors[0].Name)
}

func TestRepository_List_ExcludesDeleted(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	keep, _, err := repo.FindOrCreate("Andrew Hunt")
	require.NoError(t, err)
	gone, _, err := repo.FindOrCreate("Robert C. Martin")
	require.NoError(t, err)

	require.NoError(t, repo.CascadeDelete(gone.ID))

	authors, err := repo.List("")
	require.NoError(t, err)
	require.Len(t, authors, 1)
	assert.Equal(t, keep.ID, authors[0].ID)
}

func TestRepository_ListNames(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	_, _, err := repo.FindOrCreate("Cal Newport")
	require.NoError(t, err)
	_, _, err = repo.FindOrCreate("Andrew Hunt")
	require.NoError(t, err)

	names, err := repo.ListNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"Andrew Hunt", "Cal Newport"}, names)
}

func TestRepository_GetByID_Deleted(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	author, _, err := repo.FindOrCreate("Marcus Aurelius")
	require.NoError(t, err)
	require.NoError(t, repo.CascadeDelete(author.ID))

	_, err = repo.GetByID(author.ID)
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestRepository_UpdateName(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	author, _, err := repo.FindOrCreate("Jame Clear")
	require.NoError(t, err)

	require.NoError(t, repo.UpdateName(author.ID, "James Clear"))

	updated, err := repo.GetByID(author.ID)
	require.NoError(t, err)
	assert.Equal(t, "James Clear", updated.Name)
}

func TestRepository_UpdateName_Conflict(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	_, _, err := repo.FindOrCreate("Andrew Hunt")
	require.NoError(t, err)
	other, _, err := repo.FindOrCreate("Andrew Hunter")
	require.NoError(t, err)

	err = repo.UpdateName(other.ID, "Andrew Hunt")
	assert.ErrorIs(t, err, database.ErrConflict)
}

func TestRepository_UpdateName_NotFound(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	err := repo.UpdateName(999, "Nobody")
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestRepository_CascadeDelete(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	author, _, err := repo.FindOrCreate("Robert C. Martin")
	require.NoError(t, err)

	book := entities.Book{Title: "Clean Architecture", AuthorID: author.ID}
	require.NoError(t, db.Create(&book).Error)
	quote := entities.Quote{BookID: book.ID, Content: "Architecture is about intent."}
	require.NoError(t, db.Create(&quote).Error)

	// Unrelated rows must survive the cascade.
	other, _, err := repo.FindOrCreate("Cal Newport")
	require.NoError(t, err)
	otherBook := entities.Book{Title: "Deep Work", AuthorID: other.ID}
	require.NoError(t, db.Create(&otherBook).Error)

	require.NoError(t, repo.CascadeDelete(author.ID))

	var gotAuthor entities.Author
	require.NoError(t, db.First(&gotAuthor, author.ID).Error)
	assert.True(t, gotAuthor.IsDeleted)

	var gotBook entities.Book
	require.NoError(t, db.First(&gotBook, book.ID).Error)
	assert.True(t, gotBook.Deleted)

	var gotQuote entities.Quote
	require.NoError(t, db.First(&gotQuote, quote.ID).Error)
	assert.True(t, gotQuote.IsDeleted)

	var gotOther entities.Book
	require.NoError(t, db.First(&gotOther, otherBook.ID).Error)
	assert.False(t, gotOther.Deleted)
}

func TestRepository_CountActive(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	a, _, err := repo.FindOrCreate("Andrew Hunt")
	require.NoError(t, err)
	_, _, err = repo.FindOrCreate("Cal Newport")
	require.NoError(t, err)

	require.NoError(t, repo.CascadeDelete(a.ID))

	count, err := repo.CountActive()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
