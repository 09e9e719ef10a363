package service

import (
	"context"

	"pharmastore-backend/internal/domains/cart/model"
)

// signalPrompt is the HTTP-mode VariantPrompt: it cannot ask the user
// directly, so it interrupts the add with a VariantRequiredError
// carrying the selectable options. The client shows the picker and
// re-submits with variant_id set.
type signalPrompt struct{}

func (signalPrompt) Request(_ context.Context, candidate model.AddCandidate) (string, error) {
	return "", &model.VariantRequiredError{
		ProductID: candidate.ProductID,
		Variants:  candidate.Variants,
	}
}
