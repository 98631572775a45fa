package infra

import (
	"bytes"
	"testing"
	"time"

	"github.com/MartinOstios/backend-posco/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderInvoicePDF(t *testing.T) {
	inv := &model.Invoice{
		ID:            uuid.New(),
		PaymentMethod: model.PaymentCash,
		TotalPrice:    decimal.NewFromInt(15000),
		CreatedAt:     time.Date(2025, 5, 2, 10, 30, 0, 0, time.UTC),
		Sales: []model.Sale{
			{Quantity: 2, TotalPrice: decimal.NewFromInt(10000), Product: &model.Product{Name: "Café molido 500g"}},
			{Quantity: 1, TotalPrice: decimal.NewFromInt(5000)},
		},
	}
	ent := &model.Enterprise{Name: "Tienda Uno", TaxID: "900123", Currency: "COP"}

	out, err := RenderInvoicePDF(inv, ent)

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
