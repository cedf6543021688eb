package fulfillment_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Recepcion-api/internal/domain"
	"github.com/jhoicas/Recepcion-api/internal/domain/entity"
	"github.com/jhoicas/Recepcion-api/internal/domain/fulfillment"
)

var (
	jan1 = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	jan2 = time.Date(2025, time.January, 2, 0, 0, 0, 0, time.UTC)
	jan3 = time.Date(2025, time.January, 3, 0, 0, 0, 0, time.UTC)
)

// ── Cantidad ──────────────────────────────────────────────────────────────────

func TestValidateAmount(t *testing.T) {
	for _, amount := range []int{0, -1, -100} {
		err := fulfillment.ValidateAmount(amount)
		assert.ErrorIs(t, err, domain.ErrInvalidAmount, "amount=%d", amount)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "amount=%d debe clasificar como entrada inválida", amount)
	}
	assert.NoError(t, fulfillment.ValidateAmount(1))
}

// ── Precio total ──────────────────────────────────────────────────────────────

func TestTotalPrice_PrecioPorCantidad(t *testing.T) {
	total := fulfillment.TotalPrice(decimal.RequireFromString("10.00"), 3)
	assert.True(t, total.Equal(decimal.RequireFromString("30.00")), "got %s", total)
}

func TestTotalPrice_ConservaDecimales(t *testing.T) {
	total := fulfillment.TotalPrice(decimal.RequireFromString("0.10"), 7)
	assert.Equal(t, "0.70", total.StringFixed(2))
}

// ── Coincidencia de órdenes ───────────────────────────────────────────────────

func TestPrecedes_EsEstricto(t *testing.T) {
	order := entity.Order{ID: 5, ProductID: 1, Amount: 3, CreatedAt: jan2}
	assert.False(t, fulfillment.Precedes(order, jan2), "la misma fecha no precede")
	assert.False(t, fulfillment.Precedes(order, jan1))
	assert.True(t, fulfillment.Precedes(order, jan3))
}

func TestMatches_IgnoraEstadoDeRecepcion(t *testing.T) {
	fulfilled := jan2
	order := entity.Order{ID: 5, ProductID: 1, Amount: 3, CreatedAt: jan1, FulfilledAt: &fulfilled}
	assert.True(t, fulfillment.Matches(order, 1, 3, jan2))
	assert.False(t, fulfillment.Matches(order, 2, 3, jan2), "otro producto")
	assert.False(t, fulfillment.Matches(order, 1, 4, jan2), "otra cantidad")
}

func TestPickMatch_MasAntiguaPrimero(t *testing.T) {
	orders := []entity.Order{
		{ID: 9, ProductID: 1, Amount: 3, CreatedAt: jan2},
		{ID: 7, ProductID: 1, Amount: 3, CreatedAt: jan1},
		{ID: 3, ProductID: 2, Amount: 3, CreatedAt: jan1},
	}
	got, ok := fulfillment.PickMatch(orders, 1, 3, jan3)
	require.True(t, ok)
	assert.Equal(t, 7, got.ID)
}

func TestPickMatch_EmpatePorMenorID(t *testing.T) {
	orders := []entity.Order{
		{ID: 12, ProductID: 1, Amount: 3, CreatedAt: jan1},
		{ID: 4, ProductID: 1, Amount: 3, CreatedAt: jan1},
	}
	got, ok := fulfillment.PickMatch(orders, 1, 3, jan2)
	require.True(t, ok)
	assert.Equal(t, 4, got.ID)
}

func TestPickMatch_SinCandidatas(t *testing.T) {
	orders := []entity.Order{{ID: 5, ProductID: 1, Amount: 3, CreatedAt: jan2}}
	_, ok := fulfillment.PickMatch(orders, 1, 3, jan2)
	assert.False(t, ok, "created_at igual a la recepción no coincide")
}
