// Package enhance rewrites a listing title and description with a short
// financial analysis derived from the numbers the seller entered.
package enhance

import (
	"errors"
	"strconv"
	"strings"

	"github.com/b2ygroup/conecta-pro/internal/pkg/money"
)

var ErrMissingFields = errors.New("title and description are required")

const closing = "Este negócio representa uma excelente oportunidade de investimento com alto potencial de retorno, ideal para empreendedores que buscam um projeto sólido para crescer."

// Input mirrors the wizard form. Numbers may arrive as JSON numbers or pt-BR
// strings; profitMargin is always a percentage ("60" means 60%).
type Input struct {
	Title         string      `json:"title"`
	Description   string      `json:"description"`
	Price         interface{} `json:"price"`
	AnnualRevenue interface{} `json:"annualRevenue"`
	ProfitMargin  interface{} `json:"profitMargin"`
}

type Result struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Enhance is deterministic. Unreadable numbers count as zero and only drop the
// insight that needs them.
func Enhance(in Input) (Result, error) {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Description) == "" {
		return Result{}, ErrMissingFields
	}
	price := orZero(money.Number(in.Price))
	revenue := orZero(money.Number(in.AnnualRevenue))
	marginPct := percent(in.ProfitMargin)

	var insights []string
	if revenue > 0 && marginPct > 0 {
		profit := revenue * marginPct / 100
		insights = append(insights, "Com um faturamento de "+money.FormatBRL(revenue)+
			" e margem de "+money.FormatPercent(marginPct)+"%, o lucro anual estimado é de "+
			money.FormatBRL(profit)+".")
		if price > 0 && profit > 0 {
			years := strconv.FormatFloat(price/profit, 'f', 1, 64)
			insights = append(insights, "O retorno do investimento (payback simples), desconsiderando outros fatores, é de aproximadamente "+
				years+" anos, um indicador atrativo.")
		}
	}
	insights = append(insights, closing)

	return Result{
		Title: in.Title + " - Oportunidade Única no Setor!",
		Description: "**Descrição Original:**\n" + in.Description +
			"\n\n**Análise e Otimização (B2Y IA):**\n" + strings.Join(insights, " "),
	}, nil
}

func orZero(f float64, err error) float64 {
	if err != nil || f < 0 {
		return 0
	}
	return f
}

func percent(v interface{}) float64 {
	if s, ok := v.(string); ok {
		s = strings.TrimSuffix(strings.TrimSpace(s), "%")
		f, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
		return orZero(f, err)
	}
	return orZero(money.Number(v))
}
