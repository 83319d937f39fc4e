package saved

import (
	"context"
	"testing"
	"time"

	"github.com/b2ygroup/conecta-pro/internal/domain"
	"github.com/b2ygroup/conecta-pro/internal/infrastructure/database"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupSavedTest(t *testing.T) *Service {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return &Service{DB: db}
}

func TestSaveRemoveIsSaved(t *testing.T) {
	s := setupSavedTest(t)
	ctx := context.Background()

	ok, err := s.IsSaved(ctx, "u1", "4")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = s.Save(ctx, "u1", "4", "Startup de SaaS")
	require.NoError(t, err)
	ok, err = s.IsSaved(ctx, "u1", "4")
	require.NoError(t, err)
	assert.True(t, ok)

	// other users are unaffected
	ok, err = s.IsSaved(ctx, "u2", "4")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Remove(ctx, "u1", "4"))
	ok, err = s.IsSaved(ctx, "u1", "4")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Remove(ctx, "u1", "4"))
}

func TestSave_UpsertKeepsOneRow(t *testing.T) {
	s := setupSavedTest(t)
	ctx := context.Background()

	_, err := s.Save(ctx, "u1", "4", "old title")
	require.NoError(t, err)
	_, err = s.Save(ctx, "u1", "4", "new title")
	require.NoError(t, err)

	list, err := s.ListSaved(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "new title", list[0].Title)
}

func TestListSaved_NewestFirst(t *testing.T) {
	s := setupSavedTest(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"1", "2", "3"} {
		require.NoError(t, s.DB.Create(&domain.SavedListing{
			UserID: "u1", ListingID: id, Title: "t" + id, SavedAt: base.Add(time.Duration(i) * time.Hour),
		}).Error)
	}

	list, err := s.ListSaved(ctx, "u1")
	require.NoError(t, err)
	got := []string{}
	for _, l := range list {
		got = append(got, l.ListingID)
	}
	assert.Equal(t, []string{"3", "2", "1"}, got)

	empty, err := s.ListSaved(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestSave_MissingIDs(t *testing.T) {
	s := setupSavedTest(t)
	_, err := s.Save(context.Background(), "", "4", "x")
	assert.ErrorIs(t, err, ErrMissingIDs)
}
