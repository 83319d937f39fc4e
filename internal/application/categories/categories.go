// Package categories holds the approved business categories offered in the listing wizard.
package categories

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

var approved = []Category{
	{ID: "1", Name: "Restaurantes"},
	{ID: "2", Name: "Tecnologia"},
	{ID: "3", Name: "Varejo"},
	{ID: "4", Name: "Saúde & Bem-estar"},
	{ID: "5", Name: "Educação"},
	{ID: "6", Name: "Serviços Automotivos"},
	{ID: "7", Name: "Indústria Leve"},
	{ID: "8", Name: "Beleza & Estética"},
	{ID: "9", Name: "Agronegócio"},
	{ID: "10", Name: "Commodities"},
}

// All returns a copy; callers may modify it.
func All() []Category {
	out := make([]Category, len(approved))
	copy(out, approved)
	return out
}
