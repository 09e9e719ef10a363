package store

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharmastore-backend/internal/domains/cart/model"
)

func TestCodec_RoundTrip(t *testing.T) {
	discounted := decimal.NewFromFloat(7.5)
	stock := 8

	state := model.NewCartState()
	state.Lines = []model.CartLine{
		{
			LineID:          "P1",
			ProductID:       "P1",
			Name:            "Paracetamol 500mg",
			UnitPrice:       decimal.NewFromInt(10),
			DiscountedPrice: &discounted,
			Quantity:        2,
			KnownStock:      &stock,
			Size:            "20 tablets",
		},
		{
			LineID:    "P2-V1",
			ProductID: "P2",
			VariantID: "V1",
			Name:      "Ibuprofen",
			UnitPrice: decimal.NewFromInt(5),
			Quantity:  1,
		},
	}
	state.RecomputeTotals()

	raw, err := Encode(state)
	require.NoError(t, err)

	decoded, err := Decode(raw)
	require.NoError(t, err)

	require.Len(t, decoded.Lines, 2)
	assert.Equal(t, state.Lines[0].LineID, decoded.Lines[0].LineID)
	assert.Equal(t, state.Lines[0].Quantity, decoded.Lines[0].Quantity)
	require.NotNil(t, decoded.Lines[0].KnownStock)
	assert.Equal(t, 8, *decoded.Lines[0].KnownStock)
	require.NotNil(t, decoded.Lines[0].DiscountedPrice)
	assert.True(t, decoded.Lines[0].DiscountedPrice.Equal(discounted))
	assert.Equal(t, "P2-V1", decoded.Lines[1].LineID)

	assert.Equal(t, state.TotalQuantity, decoded.TotalQuantity)
	assert.True(t, state.TotalPrice.Equal(decoded.TotalPrice))
	assert.True(t, state.DiscountedTotal.Equal(decoded.DiscountedTotal))
}

func TestDecode_TotalsRecomputedNotTrusted(t *testing.T) {
	raw := []byte(`{
		"lines": [{"productId": "P1", "name": "A", "unitPrice": 10, "quantity": 2}],
		"totalQuantity": 999,
		"totalPrice": 12345,
		"discountedTotal": 12345
	}`)

	decoded, err := Decode(raw)
	require.NoError(t, err)

	assert.Equal(t, 2, decoded.TotalQuantity)
	assert.True(t, decoded.TotalPrice.Equal(decimal.NewFromInt(20)))
	assert.True(t, decoded.DiscountedTotal.Equal(decimal.NewFromInt(20)))
}

func TestDecode_LegacyStockString(t *testing.T) {
	raw := []byte(`{
		"lines": [{"productId": "P2", "name": "B", "unitPrice": 4, "quantity": 7, "stock": "5 available"}]
	}`)

	decoded, err := Decode(raw)
	require.NoError(t, err)

	require.Len(t, decoded.Lines, 1)
	line := decoded.Lines[0]
	assert.Equal(t, "P2", line.LineID)
	require.NotNil(t, line.KnownStock)
	assert.Equal(t, 5, *line.KnownStock)
	// Quantity exceeds the repaired bound and gets clamped
	assert.Equal(t, 5, line.Quantity)
}

func TestDecode_DerivesMissingLineID(t *testing.T) {
	raw := []byte(`{
		"lines": [
			{"productId": "P1", "name": "A", "unitPrice": 1, "quantity": 1},
			{"productId": "P2", "variantId": "V3", "name": "B", "unitPrice": 1, "quantity": 1}
		]
	}`)

	decoded, err := Decode(raw)
	require.NoError(t, err)

	require.Len(t, decoded.Lines, 2)
	assert.Equal(t, "P1", decoded.Lines[0].LineID)
	assert.Equal(t, "P2-V3", decoded.Lines[1].LineID)
}

func TestDecode_MergesDuplicateLines(t *testing.T) {
	raw := []byte(`{
		"lines": [
			{"lineId": "P1", "productId": "P1", "name": "A", "unitPrice": 10, "quantity": 2, "stock": 10},
			{"lineId": "P1", "productId": "P1", "name": "A", "unitPrice": 10, "quantity": 3}
		]
	}`)

	decoded, err := Decode(raw)
	require.NoError(t, err)

	require.Len(t, decoded.Lines, 1)
	assert.Equal(t, 5, decoded.Lines[0].Quantity)
	assert.Equal(t, 5, decoded.TotalQuantity)
}

func TestDecode_DropsLineWithZeroStock(t *testing.T) {
	raw := []byte(`{
		"lines": [
			{"productId": "P1", "name": "A", "unitPrice": 1, "quantity": 2, "stock": 0},
			{"productId": "P2", "name": "B", "unitPrice": 1, "quantity": 1, "stock": 3}
		]
	}`)

	decoded, err := Decode(raw)
	require.NoError(t, err)

	require.Len(t, decoded.Lines, 1)
	assert.Equal(t, "P2", decoded.Lines[0].LineID)
}

func TestDecode_SkipsLineWithoutProductID(t *testing.T) {
	raw := []byte(`{
		"lines": [
			{"name": "orphan", "unitPrice": 1, "quantity": 1},
			{"productId": "P1", "name": "A", "unitPrice": 1, "quantity": 1}
		]
	}`)

	decoded, err := Decode(raw)
	require.NoError(t, err)

	require.Len(t, decoded.Lines, 1)
	assert.Equal(t, "P1", decoded.Lines[0].LineID)
}

func TestDecode_QuantityFloorIsOne(t *testing.T) {
	raw := []byte(`{
		"lines": [{"productId": "P1", "name": "A", "unitPrice": 1, "quantity": -4}]
	}`)

	decoded, err := Decode(raw)
	require.NoError(t, err)

	require.Len(t, decoded.Lines, 1)
	assert.Equal(t, 1, decoded.Lines[0].Quantity)
}

func TestDecode_NegativeStockNormalizedToZero(t *testing.T) {
	raw := []byte(`{
		"lines": [{"productId": "P1", "name": "A", "unitPrice": 1, "quantity": 1, "stock": -3}]
	}`)

	decoded, err := Decode(raw)
	require.NoError(t, err)

	// Stock 0 cannot hold a quantity, so the line is gone
	assert.Empty(t, decoded.Lines)
}

func TestDecode_StringDiscountedPrice(t *testing.T) {
	raw := []byte(`{
		"lines": [{"productId": "P1", "name": "A", "unitPrice": 10, "discountedPrice": "7.50", "quantity": 1}]
	}`)

	decoded, err := Decode(raw)
	require.NoError(t, err)

	require.Len(t, decoded.Lines, 1)
	require.NotNil(t, decoded.Lines[0].DiscountedPrice)
	assert.True(t, decoded.Lines[0].DiscountedPrice.Equal(decimal.NewFromFloat(7.5)))
}

func TestDecode_CorruptInputs(t *testing.T) {
	cases := map[string]string{
		"not json":        `{broken`,
		"missing lines":   `{"totalQuantity": 3}`,
		"null lines":      `{"lines": null}`,
		"lines not array": `{"lines": {"productId": "P1"}}`,
		"top level array": `["P1"]`,
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode([]byte(raw))
			assert.ErrorIs(t, err, model.ErrCorruptPersistedState)
		})
	}
}

func TestEncode_EmptyCartRoundTrips(t *testing.T) {
	state := model.NewCartState()
	state.RecomputeTotals()

	raw, err := Encode(state)
	require.NoError(t, err)

	decoded, err := Decode(raw)
	require.NoError(t, err)
	assert.Empty(t, decoded.Lines)
	assert.Equal(t, 0, decoded.TotalQuantity)
}
