package search

import (
	"context"
	"errors"
	"testing"

	"github.com/b2ygroup/conecta-pro/internal/domain"
	"github.com/b2ygroup/conecta-pro/internal/infrastructure/database"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupSearchTest(t *testing.T) *Service {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	_, err = database.Seed(context.Background(), db)
	require.NoError(t, err)
	return &Service{DB: db}
}

func ids(listings []domain.Listing) []string {
	out := make([]string, 0, len(listings))
	for _, l := range listings {
		out = append(out, l.ID)
	}
	return out
}

func ptr(f float64) *float64 { return &f }

func TestSearch_BarueriTech(t *testing.T) {
	s := setupSearchTest(t)
	got, err := s.Search(context.Background(), Filters{
		Sectors:   []string{"Tecnologia"},
		MaxPrice:  ptr(2000000),
		Locations: []string{"barueri"},
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Startup de SaaS B2B Inovadora", got[0].Title)
	assert.Equal(t, 1500000.0, got[0].Price)
}

func TestSearch_EmptyFiltersReturnsAllInStoreOrder(t *testing.T) {
	s := setupSearchTest(t)
	got, err := s.Search(context.Background(), Filters{})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3", "4", "5", "6", "8"}, ids(got))
}

func TestSearch_StoreUnavailable(t *testing.T) {
	s := setupSearchTest(t)
	sqlDB, err := s.DB.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = s.Search(context.Background(), Filters{})
	assert.True(t, errors.Is(err, ErrRetrieval))
}

func TestFilterListings_Conjunction(t *testing.T) {
	listings := database.SeedListings()

	cases := []struct {
		name string
		f    Filters
		want []string
	}{
		{"price inclusive", Filters{MaxPrice: ptr(250000)}, []string{"1", "2"}},
		{"sector membership", Filters{Sectors: []string{"Varejo", "Educação"}}, []string{"6", "8"}},
		{"location any substring", Filters{Locations: []string{"cotia", "itapevi"}}, []string{"1", "6", "8"}},
		{"location is case-insensitive", Filters{Locations: []string{"SÃO PAULO"}}, []string{"3", "5"}},
		{"all three", Filters{Sectors: []string{"Restaurantes"}, MaxPrice: ptr(300000), Locations: []string{"barueri"}}, []string{"2"}},
		{"no match", Filters{Sectors: []string{"Agronegócio"}}, []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ids(FilterListings(listings, tc.f)))
		})
	}
}

// Each predicate on its own must agree with the combined filter.
func TestFilterListings_IsIntersectionOfPredicates(t *testing.T) {
	listings := database.SeedListings()
	sectorOnly := FilterListings(listings, Filters{Sectors: []string{"Restaurantes", "Tecnologia"}})
	priceOnly := FilterListings(listings, Filters{MaxPrice: ptr(500000)})
	locOnly := FilterListings(listings, Filters{Locations: []string{", sp"}})
	all := FilterListings(listings, Filters{
		Sectors:   []string{"Restaurantes", "Tecnologia"},
		MaxPrice:  ptr(500000),
		Locations: []string{", sp"},
	})

	in := func(set []domain.Listing, id string) bool {
		for _, l := range set {
			if l.ID == id {
				return true
			}
		}
		return false
	}
	for _, l := range listings {
		want := in(sectorOnly, l.ID) && in(priceOnly, l.ID) && in(locOnly, l.ID)
		assert.Equal(t, want, in(all, l.ID), l.ID)
	}
}

func TestParseFilters(t *testing.T) {
	f, err := ParseFilters("Tecnologia, Varejo,", "2000000", " Barueri , COTIA")
	require.NoError(t, err)
	assert.Equal(t, []string{"Tecnologia", "Varejo"}, f.Sectors)
	assert.Equal(t, []string{"barueri", "cotia"}, f.Locations)
	require.NotNil(t, f.MaxPrice)
	assert.Equal(t, 2000000.0, *f.MaxPrice)

	f, err = ParseFilters("", "", "")
	require.NoError(t, err)
	assert.Empty(t, f.Sectors)
	assert.Empty(t, f.Locations)
	assert.Nil(t, f.MaxPrice)

	for _, bad := range []string{"muito", "NaN", "Inf", "-Inf", "+Inf"} {
		_, err = ParseFilters("", bad, "")
		assert.ErrorIs(t, err, ErrInvalidMaxPrice, bad)
	}
}
