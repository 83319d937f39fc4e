package categories

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAll(t *testing.T) {
	got := All()
	assert.Len(t, got, 10)
	assert.Equal(t, Category{ID: "2", Name: "Tecnologia"}, got[1])
	assert.Equal(t, "Commodities", got[9].Name)

	got[0].Name = "changed"
	assert.Equal(t, "Restaurantes", All()[0].Name)
}
