package database

import (
	"context"
	"time"

	"github.com/b2ygroup/conecta-pro/internal/domain"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SeedListings is the demo catalogue the frontend was first built with.
func SeedListings() []domain.Listing {
	img := func(id string) string { return "https://images.unsplash.com/photo-" + id + "?w=400" }
	return []domain.Listing{
		{
			ID: "1", Title: "Cafeteria Charmosa no Centro", Sector: "Restaurantes", Price: 250000,
			Location: "Cotia, SP", ImageURL: img("1559925393-8be0ec4767c8"),
			Description:   "Uma cafeteria aconchegante com clientela fiel. Totalmente equipada.",
			AnnualRevenue: 480000, ProfitMargin: 0.25, Employees: 4, OwnerID: "seller_abc",
			Gallery: datatypes.JSONSlice[string]{
				img("1511920183276-542a97fb494d"),
				img("1554118811-1e0d58224f24"),
				img("1562087926-662f8473a216"),
			},
		},
		{
			ID: "2", Title: "Pizzaria Tradicional de Bairro", Sector: "Restaurantes", Price: 180000,
			Location: "Barueri, SP", ImageURL: img("1593560708920-61dd98c46a4e"),
			Description:   "Pizzaria com forno a lenha e delivery consolidado na região.",
			AnnualRevenue: 350000, ProfitMargin: 0.22, Employees: 5, OwnerID: "seller_abc",
		},
		{
			ID: "3", Title: "Restaurante Vegano Moderno", Sector: "Restaurantes", Price: 480000,
			Location: "São Paulo, SP", ImageURL: img("1512621776951-a57141f2eefd"),
			Description:   "Restaurante de comida vegana com alto tráfego e design moderno.",
			AnnualRevenue: 950000, ProfitMargin: 0.30, Employees: 8, OwnerID: "seller_xyz",
		},
		{
			ID: "4", Title: "Startup de SaaS B2B Inovadora", Sector: "Tecnologia", Price: 1500000,
			Location: "Barueri, SP", ImageURL: img("1556740738-b6a63e27c4df"),
			Description:   "Plataforma SaaS de gestão com receita recorrente e clientes internacionais.",
			AnnualRevenue: 1200000, ProfitMargin: 0.60, Employees: 12, OwnerID: "seller_xyz",
		},
		{
			ID: "5", Title: "E-commerce de Eletrônicos", Sector: "Tecnologia", Price: 750000,
			Location: "São Paulo, SP", ImageURL: img("1587831990711-23d7e9a242b9"),
			Description:   "E-commerce com marca estabelecida e alta pontuação em marketplaces.",
			AnnualRevenue: 2500000, ProfitMargin: 0.18, Employees: 7, OwnerID: "seller_abc",
		},
		{
			ID: "6", Title: "Loja de Roupas Boutique em Shopping", Sector: "Varejo", Price: 450000,
			Location: "Cotia, SP", ImageURL: img("1525507119028-ed4c629a60a3"),
			Description:   "Loja de moda feminina com excelente ponto em shopping de grande movimento.",
			AnnualRevenue: 850000, ProfitMargin: 0.35, Employees: 3, OwnerID: "seller_xyz",
		},
		{
			ID: "8", Title: "Escola de Inglês com 100+ alunos", Sector: "Educação", Price: 350000,
			Location: "Itapevi, SP", ImageURL: img("1543269865-cbf427effbad"),
			Description:   "Escola de idiomas com metodologia própria e corpo docente qualificado.",
			AnnualRevenue: 600000, ProfitMargin: 0.40, Employees: 6, OwnerID: "seller_abc",
		},
	}
}

// Seed inserts the demo listings, skipping ids that already exist. Returns how
// many rows were inserted.
func Seed(ctx context.Context, db *gorm.DB) (int64, error) {
	listings := SeedListings()
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := range listings {
		listings[i].ListingType = domain.ListingTypeBusinessSale
		listings[i].CreatedAt = base.Add(time.Duration(i) * time.Minute)
		listings[i].UpdatedAt = listings[i].CreatedAt
	}
	res := db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&listings)
	return res.RowsAffected, res.Error
}
