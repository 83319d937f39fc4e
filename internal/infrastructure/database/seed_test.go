package database

import (
	"context"
	"testing"

	"github.com/b2ygroup/conecta-pro/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestSeed_Idempotent(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))

	ctx := context.Background()
	n, err := Seed(ctx, db)
	require.NoError(t, err)
	assert.EqualValues(t, 7, n)

	n, err = Seed(ctx, db)
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	var saas domain.Listing
	require.NoError(t, db.First(&saas, "id = ?", "4").Error)
	assert.Equal(t, "Startup de SaaS B2B Inovadora", saas.Title)
	assert.Equal(t, "Barueri, SP", saas.Location)
	assert.Equal(t, 1500000.0, saas.Price)

	var cafe domain.Listing
	require.NoError(t, db.First(&cafe, "id = ?", "1").Error)
	assert.Len(t, cafe.Gallery, 3)
}
