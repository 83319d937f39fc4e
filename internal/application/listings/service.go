package listings

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/b2ygroup/conecta-pro/internal/application/listingevents"
	"github.com/b2ygroup/conecta-pro/internal/domain"
	"github.com/b2ygroup/conecta-pro/internal/pkg/money"
	"github.com/b2ygroup/conecta-pro/internal/pkg/validation"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrListingNotFound = errors.New("Listing not found")
	ErrForbidden       = errors.New("Only the listing owner can change it")
	ErrNoChanges       = errors.New("No valid changes provided")
	ErrOwnerRequired   = errors.New("owner_id is required")
)

type Service struct {
	DB *gorm.DB
}

// Address is the structured form the create wizard collects.
type Address struct {
	Street     string `json:"street"`
	Number     string `json:"number"`
	Complement string `json:"complement"`
	City       string `json:"city"`
	State      string `json:"state"`
}

// CreateInput is the create payload. Numeric fields accept JSON numbers or
// pt-BR strings ("1.500.000,00"); a string profitMargin is a percentage.
type CreateInput struct {
	ListingType   string                 `json:"listingType"`
	Title         string                 `json:"title"`
	Sector        string                 `json:"sector"`
	Location      string                 `json:"location"`
	Address       Address                `json:"address"`
	Description   string                 `json:"description"`
	ImageURL      string                 `json:"imageUrl"`
	Gallery       []string               `json:"gallery"`
	Price         interface{}            `json:"price"`
	AnnualRevenue interface{}            `json:"annualRevenue"`
	ProfitMargin  interface{}            `json:"profitMargin"`
	Employees     interface{}            `json:"employees"`
	MonthlyCosts  map[string]interface{} `json:"monthlyCosts"`
}

// ComposeLocation renders "street, number[, complement] - city, state",
// dropping whichever side is empty.
func ComposeLocation(a Address) string {
	street := strings.TrimSpace(a.Street)
	if street != "" {
		if n := strings.TrimSpace(a.Number); n != "" {
			street += ", " + n
		}
		if c := strings.TrimSpace(a.Complement); c != "" {
			street += ", " + c
		}
	}
	var region []string
	for _, p := range []string{a.City, a.State} {
		if p = strings.TrimSpace(p); p != "" {
			region = append(region, p)
		}
	}
	switch {
	case street == "":
		return strings.Join(region, ", ")
	case len(region) == 0:
		return street
	}
	return street + " - " + strings.Join(region, ", ")
}

func (s *Service) CreateListing(ctx context.Context, ownerID string, in CreateInput) (*domain.Listing, error) {
	if ownerID == "" {
		return nil, ErrOwnerRequired
	}
	listing := &domain.Listing{
		ListingType: in.ListingType,
		Title:       strings.TrimSpace(in.Title),
		Sector:      strings.TrimSpace(in.Sector),
		Location:    strings.TrimSpace(in.Location),
		Description: in.Description,
		ImageURL:    in.ImageURL,
		Gallery:     datatypes.JSONSlice[string](in.Gallery),
		OwnerID:     ownerID,
	}
	if listing.ListingType == "" {
		listing.ListingType = domain.ListingTypeBusinessSale
	}
	if listing.Location == "" {
		listing.Location = ComposeLocation(in.Address)
	}
	if err := applyNumbers(listing, map[string]interface{}{
		"price":         in.Price,
		"annualRevenue": in.AnnualRevenue,
		"profitMargin":  in.ProfitMargin,
		"employees":     in.Employees,
	}); err != nil {
		return nil, err
	}
	if in.MonthlyCosts != nil {
		if _, err := applyMonthlyCosts(listing, in.MonthlyCosts); err != nil {
			return nil, err
		}
	}
	if err := validation.Struct(listing); err != nil {
		return nil, err
	}

	tx := s.DB.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()
	if err := tx.Create(listing).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("create listing: %w", err)
	}
	if err := listingevents.Record(tx, listing.ID, domain.ListingEventCreated, ownerID, map[string]interface{}{
		"title": listing.Title,
		"price": listing.Price,
	}); err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("create listing event: %w", err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return listing, nil
}

func (s *Service) GetListing(ctx context.Context, id string) (*domain.Listing, error) {
	var listing domain.Listing
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&listing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	return &listing, nil
}

// ListByOwner returns the owner's listings, newest first.
func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]domain.Listing, error) {
	out := []domain.Listing{}
	if err := s.DB.WithContext(ctx).Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateListing applies the recognised keys of updates (JSON field names) and
// ignores everything else, including id and ownerId.
func (s *Service) UpdateListing(ctx context.Context, actorID, id string, updates map[string]interface{}) (*domain.Listing, error) {
	listing, err := s.ownedListing(ctx, actorID, id)
	if err != nil {
		return nil, err
	}

	columns, err := applyUpdates(listing, updates)
	if err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return nil, ErrNoChanges
	}
	if err := validation.Struct(listing); err != nil {
		return nil, err
	}

	eventData := make(map[string]interface{}, len(updates))
	for k, v := range updates {
		if _, ok := updatable[k]; ok {
			eventData[k] = v
		}
	}

	tx := s.DB.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()
	if err := tx.Model(&domain.Listing{ID: listing.ID}).Updates(columns).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("update listing: %w", err)
	}
	if err := listingevents.Record(tx, listing.ID, domain.ListingEventUpdated, actorID, eventData); err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("create listing event: %w", err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return s.GetListing(ctx, id)
}

// DeleteListing removes the listing and every saved bookmark of it.
// Conversations about it are kept.
func (s *Service) DeleteListing(ctx context.Context, actorID, id string) error {
	listing, err := s.ownedListing(ctx, actorID, id)
	if err != nil {
		return err
	}

	tx := s.DB.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()
	if err := tx.Where("listing_id = ?", id).Delete(&domain.SavedListing{}).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("delete saved listings: %w", err)
	}
	if err := tx.Delete(&domain.Listing{}, "id = ?", id).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("delete listing: %w", err)
	}
	if err := listingevents.Record(tx, id, domain.ListingEventDeleted, actorID, map[string]interface{}{
		"title": listing.Title,
	}); err != nil {
		tx.Rollback()
		return fmt.Errorf("create listing event: %w", err)
	}
	return tx.Commit().Error
}

func (s *Service) ownedListing(ctx context.Context, actorID, id string) (*domain.Listing, error) {
	listing, err := s.GetListing(ctx, id)
	if err != nil {
		return nil, err
	}
	if actorID == "" || listing.OwnerID != actorID {
		return nil, ErrForbidden
	}
	return listing, nil
}

func applyNumbers(l *domain.Listing, raw map[string]interface{}) error {
	for key, v := range raw {
		if v == nil {
			continue
		}
		if _, err := applyField(l, key, v); err != nil {
			return err
		}
	}
	return nil
}

// updatable maps JSON keys to their column. monthlyCosts fans out to four columns.
var updatable = map[string]string{
	"listingType":   "listing_type",
	"title":         "title",
	"sector":        "sector",
	"location":      "location",
	"price":         "price",
	"description":   "description",
	"imageUrl":      "image_url",
	"gallery":       "gallery",
	"annualRevenue": "annual_revenue",
	"profitMargin":  "profit_margin",
	"employees":     "employees",
	"monthlyCosts":  "",
}

func applyUpdates(l *domain.Listing, updates map[string]interface{}) (map[string]interface{}, error) {
	columns := map[string]interface{}{}
	for key, v := range updates {
		if _, ok := updatable[key]; !ok {
			continue
		}
		if key == "monthlyCosts" {
			m, ok := v.(map[string]interface{})
			if !ok {
				return nil, &validation.Error{Fields: []string{key}}
			}
			cols, err := applyMonthlyCosts(l, m)
			if err != nil {
				return nil, err
			}
			for c, val := range cols {
				columns[c] = val
			}
			continue
		}
		val, err := applyField(l, key, v)
		if err != nil {
			return nil, err
		}
		columns[updatable[key]] = val
	}
	return columns, nil
}

// applyField sets one listing field from a loosely typed JSON value and returns
// the value to persist.
func applyField(l *domain.Listing, key string, v interface{}) (interface{}, error) {
	invalid := &validation.Error{Fields: []string{key}}
	switch key {
	case "listingType", "title", "sector", "location", "description", "imageUrl":
		s, ok := v.(string)
		if !ok {
			return nil, invalid
		}
		switch key {
		case "listingType":
			l.ListingType = s
		case "title":
			s = strings.TrimSpace(s)
			l.Title = s
		case "sector":
			s = strings.TrimSpace(s)
			l.Sector = s
		case "location":
			s = strings.TrimSpace(s)
			l.Location = s
		case "description":
			l.Description = s
		case "imageUrl":
			l.ImageURL = s
		}
		return s, nil
	case "gallery":
		items, ok := v.([]interface{})
		if !ok {
			return nil, invalid
		}
		gallery := make(datatypes.JSONSlice[string], 0, len(items))
		for _, it := range items {
			s, ok := it.(string)
			if !ok {
				return nil, invalid
			}
			gallery = append(gallery, s)
		}
		l.Gallery = gallery
		return gallery, nil
	case "price", "annualRevenue", "employees":
		f, err := money.Number(v)
		if err != nil {
			return nil, invalid
		}
		switch key {
		case "price":
			l.Price = f
			return f, nil
		case "annualRevenue":
			l.AnnualRevenue = f
			return f, nil
		}
		if f != math.Trunc(f) {
			return nil, invalid
		}
		l.Employees = int(f)
		return l.Employees, nil
	case "profitMargin":
		f, err := money.Fraction(v)
		if err != nil {
			return nil, invalid
		}
		l.ProfitMargin = f
		return f, nil
	}
	return nil, invalid
}

func applyMonthlyCosts(l *domain.Listing, m map[string]interface{}) (map[string]interface{}, error) {
	columns := map[string]interface{}{}
	targets := map[string]*float64{
		"rent":      &l.MonthlyCosts.Rent,
		"utilities": &l.MonthlyCosts.Utilities,
		"payroll":   &l.MonthlyCosts.Payroll,
		"others":    &l.MonthlyCosts.Others,
	}
	for key, v := range m {
		dst, ok := targets[key]
		if !ok {
			continue
		}
		f, err := money.Number(v)
		if err != nil {
			return nil, &validation.Error{Fields: []string{"monthlyCosts." + key}}
		}
		*dst = f
		columns["monthly_"+key] = f
	}
	return columns, nil
}
