package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	ListingTypeBusinessSale   = "business_sale"
	ListingTypeInvestmentSeek = "investment_seek"
)

// MonthlyCosts is the recurring cost breakdown of the business being sold.
type MonthlyCosts struct {
	Rent      float64 `gorm:"column:rent;type:decimal(18,2)" json:"rent" validate:"gte=0"`
	Utilities float64 `gorm:"column:utilities;type:decimal(18,2)" json:"utilities" validate:"gte=0"`
	Payroll   float64 `gorm:"column:payroll;type:decimal(18,2)" json:"payroll" validate:"gte=0"`
	Others    float64 `gorm:"column:others;type:decimal(18,2)" json:"others" validate:"gte=0"`
}

// Listing is a published business sale or investment opportunity.
// ProfitMargin is a fraction (0.25 means 25%).
type Listing struct {
	ID            string                      `gorm:"column:id;primaryKey;size:64" json:"id"`
	ListingType   string                      `gorm:"column:listing_type;size:32;not null" json:"listingType" validate:"oneof=business_sale investment_seek"`
	Title         string                      `gorm:"column:title;not null" json:"title" validate:"required,max=200"`
	Sector        string                      `gorm:"column:sector;index;not null" json:"sector" validate:"required,max=100"`
	Location      string                      `gorm:"column:location" json:"location" validate:"max=300"`
	Price         float64                     `gorm:"column:price;type:decimal(18,2);not null" json:"price" validate:"gte=0"`
	Description   string                      `gorm:"column:description;type:text" json:"description"`
	ImageURL      string                      `gorm:"column:image_url" json:"imageUrl" validate:"omitempty,url"`
	Gallery       datatypes.JSONSlice[string] `gorm:"column:gallery" json:"gallery" validate:"dive,url"`
	AnnualRevenue float64                     `gorm:"column:annual_revenue;type:decimal(18,2)" json:"annualRevenue" validate:"gte=0"`
	ProfitMargin  float64                     `gorm:"column:profit_margin" json:"profitMargin" validate:"gte=0,lte=1"`
	Employees     int                         `gorm:"column:employees" json:"employees" validate:"gte=0"`
	MonthlyCosts  MonthlyCosts                `gorm:"embedded;embeddedPrefix:monthly_" json:"monthlyCosts"`
	OwnerID       string                      `gorm:"column:owner_id;index;not null" json:"ownerId"`
	CreatedAt     time.Time                   `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt     time.Time                   `gorm:"column:updated_at" json:"updatedAt"`
}

func (Listing) TableName() string {
	return "listings"
}

// BeforeCreate assigns an id when the caller did not (seeded listings keep theirs).
func (l *Listing) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.ListingType == "" {
		l.ListingType = ListingTypeBusinessSale
	}
	return nil
}

// BeforeSave keeps gallery a JSON array instead of null.
func (l *Listing) BeforeSave(tx *gorm.DB) error {
	if l.Gallery == nil {
		l.Gallery = datatypes.JSONSlice[string]{}
	}
	return nil
}
