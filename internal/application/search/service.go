package search

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/b2ygroup/conecta-pro/internal/domain"

	"gorm.io/gorm"
)

var (
	ErrRetrieval       = errors.New("Erro ao buscar anúncios.")
	ErrInvalidMaxPrice = errors.New("valor_max must be a number")
)

// Filters are combined with AND. Empty slices and a nil MaxPrice mean "no restriction".
type Filters struct {
	Sectors   []string
	MaxPrice  *float64
	Locations []string
}

type Service struct {
	DB *gorm.DB
}

// Search loads every listing and filters in memory. Store order is kept
// (oldest first); there is no ranking or pagination.
func (s *Service) Search(ctx context.Context, f Filters) ([]domain.Listing, error) {
	var all []domain.Listing
	if err := s.DB.WithContext(ctx).Order("created_at ASC").Order("id ASC").Find(&all).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRetrieval, err)
	}
	return FilterListings(all, f), nil
}

// FilterListings keeps listings with price <= MaxPrice, sector in Sectors and a
// location containing any of Locations (case-insensitive substring).
func FilterListings(listings []domain.Listing, f Filters) []domain.Listing {
	sectors := make(map[string]bool, len(f.Sectors))
	for _, s := range f.Sectors {
		sectors[s] = true
	}
	locations := make([]string, 0, len(f.Locations))
	for _, l := range f.Locations {
		locations = append(locations, strings.ToLower(l))
	}

	out := make([]domain.Listing, 0, len(listings))
	for _, l := range listings {
		if f.MaxPrice != nil && l.Price > *f.MaxPrice {
			continue
		}
		if len(sectors) > 0 && !sectors[l.Sector] {
			continue
		}
		if len(locations) > 0 && !containsAny(strings.ToLower(l.Location), locations) {
			continue
		}
		out = append(out, l)
	}
	return out
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// ParseFilters reads the public query parameters: setores and localidades are
// comma separated, valor_max is a finite plain number.
func ParseFilters(setores, valorMax, localidades string) (Filters, error) {
	f := Filters{
		Sectors:   splitList(setores, false),
		Locations: splitList(localidades, true),
	}
	if v := strings.TrimSpace(valorMax); v != "" {
		max, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(max) || math.IsInf(max, 0) {
			return Filters{}, ErrInvalidMaxPrice
		}
		f.MaxPrice = &max
	}
	return f, nil
}

func splitList(raw string, lower bool) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if lower {
			part = strings.ToLower(part)
		}
		out = append(out, part)
	}
	return out
}
