package store

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"pharmastore-backend/internal/domains/cart/model"
	"pharmastore-backend/internal/shared/utils"
)

// Persisted cart layout. Totals are written for read-side convenience
// but never trusted on load - they are recomputed from the lines.
// Legacy records may lack lineId, and may carry stock as a descriptive
// string ("5 available") or discountedPrice as a string; Decode
// repairs all of these.

type persistedLine struct {
	LineID          string          `json:"lineId,omitempty"`
	ProductID       string          `json:"productId"`
	VariantID       string          `json:"variantId,omitempty"`
	Name            string          `json:"name"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	DiscountedPrice json.RawMessage `json:"discountedPrice,omitempty"`
	Quantity        int             `json:"quantity"`
	Stock           json.RawMessage `json:"stock,omitempty"`
	ImageRef        string          `json:"imageRef,omitempty"`
	Size            string          `json:"size,omitempty"`
	SellerRef       string          `json:"sellerRef,omitempty"`
}

type persistedCart struct {
	Lines           json.RawMessage `json:"lines"`
	TotalQuantity   int             `json:"totalQuantity"`
	TotalPrice      decimal.Decimal `json:"totalPrice"`
	DiscountedTotal decimal.Decimal `json:"discountedTotal"`
}

// Encode serializes the cart state to its storage form
func Encode(state *model.CartState) ([]byte, error) {
	lines := make([]persistedLine, 0, len(state.Lines))

	for _, l := range state.Lines {
		pl := persistedLine{
			LineID:    l.LineID,
			ProductID: l.ProductID,
			VariantID: l.VariantID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
			ImageRef:  l.ImageRef,
			Size:      l.Size,
			SellerRef: l.SellerRef,
		}

		if l.DiscountedPrice != nil {
			raw, err := json.Marshal(*l.DiscountedPrice)
			if err != nil {
				return nil, err
			}
			pl.DiscountedPrice = raw
		}
		if l.KnownStock != nil {
			raw, err := json.Marshal(*l.KnownStock)
			if err != nil {
				return nil, err
			}
			pl.Stock = raw
		}

		lines = append(lines, pl)
	}

	rawLines, err := json.Marshal(lines)
	if err != nil {
		return nil, err
	}

	return json.Marshal(persistedCart{
		Lines:           rawLines,
		TotalQuantity:   state.TotalQuantity,
		TotalPrice:      state.TotalPrice,
		DiscountedTotal: state.DiscountedTotal,
	})
}

// Decode parses and repairs a persisted cart.
// Returns ErrCorruptPersistedState when the top level is not an object
// or lines is not a sequence; per-line defects are repaired instead:
//   - missing lineId is derived from productId (+variantId)
//   - stock stored as a digit-bearing string is normalized
//   - quantities are re-clamped against the repaired stock
//   - duplicate lineIds are merged
//   - lines whose repaired stock is 0 cannot hold quantity >= 1 and
//     are dropped
func Decode(raw []byte) (*model.CartState, error) {
	var pc persistedCart
	if err := json.Unmarshal(raw, &pc); err != nil {
		return nil, model.ErrCorruptPersistedState
	}
	if len(pc.Lines) == 0 || string(pc.Lines) == "null" {
		return nil, model.ErrCorruptPersistedState
	}

	var lines []persistedLine
	if err := json.Unmarshal(pc.Lines, &lines); err != nil {
		return nil, model.ErrCorruptPersistedState
	}

	state := model.NewCartState()

	for _, pl := range lines {
		if pl.ProductID == "" {
			continue
		}

		lineID := pl.LineID
		if lineID == "" {
			lineID = model.LineID(pl.ProductID, pl.VariantID)
		}

		knownStock := parseStock(pl.Stock)
		quantity := pl.Quantity
		if quantity < 1 {
			quantity = 1
		}

		if idx := state.FindLine(lineID); idx >= 0 {
			// Duplicate identity: merge into the existing line
			existing := &state.Lines[idx]
			existing.Quantity += quantity
			if knownStock != nil {
				existing.KnownStock = knownStock
			}
			clampLine(state, idx)
			continue
		}

		state.Lines = append(state.Lines, model.CartLine{
			LineID:          lineID,
			ProductID:       pl.ProductID,
			VariantID:       pl.VariantID,
			Name:            pl.Name,
			UnitPrice:       pl.UnitPrice,
			DiscountedPrice: parsePrice(pl.DiscountedPrice),
			Quantity:        quantity,
			KnownStock:      knownStock,
			ImageRef:        pl.ImageRef,
			Size:            pl.Size,
			SellerRef:       pl.SellerRef,
		})
		clampLine(state, len(state.Lines)-1)
	}

	state.RecomputeTotals()
	return state, nil
}

// clampLine enforces 1 <= quantity <= knownStock on the line at idx,
// removing it when the bound is 0
func clampLine(state *model.CartState, idx int) {
	line := &state.Lines[idx]
	if line.KnownStock == nil {
		return
	}

	if *line.KnownStock <= 0 {
		state.Lines = append(state.Lines[:idx], state.Lines[idx+1:]...)
		return
	}
	if line.Quantity > *line.KnownStock {
		line.Quantity = *line.KnownStock
	}
}

// parseStock accepts an integer, or any string containing digits
// (legacy records stored counts like "5 available")
func parseStock(raw json.RawMessage) *int {
	if len(raw) == 0 {
		return nil
	}

	var asNumber float64
	if err := json.Unmarshal(raw, &asNumber); err == nil {
		v := int(asNumber)
		if v < 0 {
			v = 0
		}
		return &v
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		if v, ok := utils.ExtractFirstInt(asString); ok {
			return &v
		}
	}

	return nil
}

// parsePrice accepts a number or a numeric string
func parsePrice(raw json.RawMessage) *decimal.Decimal {
	if len(raw) == 0 {
		return nil
	}

	var d decimal.Decimal
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil
	}
	return &d
}
