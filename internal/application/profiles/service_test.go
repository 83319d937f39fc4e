package profiles

import (
	"context"
	"testing"

	"github.com/b2ygroup/conecta-pro/internal/infrastructure/database"
	"github.com/b2ygroup/conecta-pro/internal/pkg/validation"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupProfilesTest(t *testing.T) *Service {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return &Service{DB: db}
}

func TestUpsert_CreateThenMerge(t *testing.T) {
	s := setupProfilesTest(t)
	ctx := context.Background()

	_, err := s.Get(ctx, "u1")
	assert.ErrorIs(t, err, ErrProfileNotFound)

	p, err := s.Upsert(ctx, "u1", ProfileInput{
		Name:        "Ana Souza",
		Document:    "529.982.247-25",
		CEP:         "06401-000",
		City:        "Barueri",
		State:       "sp",
		ProfileType: "investor",
	})
	require.NoError(t, err)
	assert.Equal(t, "52998224725", p.Document)
	assert.Equal(t, "06401000", p.CEP)
	assert.Equal(t, "SP", p.State)

	p, err = s.Upsert(ctx, "u1", ProfileInput{Phone: "(11) 98765-4321", Document: "11.222.333/0001-81"})
	require.NoError(t, err)
	assert.Equal(t, "Ana Souza", p.Name)
	assert.Equal(t, "Barueri", p.City)
	assert.Equal(t, "investor", p.ProfileType)
	assert.Equal(t, "11987654321", p.Phone)
	assert.Equal(t, "11222333000181", p.Document)
}

func TestUpsert_Validation(t *testing.T) {
	s := setupProfilesTest(t)
	ctx := context.Background()

	_, err := s.Upsert(ctx, "u1", ProfileInput{Document: "123.456.789-00", CEP: "123", ProfileType: "admin"})
	require.ErrorIs(t, err, validation.ErrInvalidInput)
	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	assert.ElementsMatch(t, []string{"document", "cep", "profileType"}, verr.Fields)

	_, err = s.Get(ctx, "u1")
	assert.ErrorIs(t, err, ErrProfileNotFound)

	_, err = s.Upsert(ctx, "", ProfileInput{})
	assert.ErrorIs(t, err, ErrUserRequired)
}
