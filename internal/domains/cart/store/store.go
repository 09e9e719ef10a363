package store

import (
	"context"
	"fmt"

	"pharmastore-backend/internal/domains/cart/model"
	"pharmastore-backend/internal/domains/cart/storage"
	productModel "pharmastore-backend/internal/domains/product/model"
)

// StockProvider resolves the authoritative current stock for a product
// (or a specific variant of it). The store always consults this before
// mutating quantities upward; implementations are expected to cache.
type StockProvider interface {
	GetStock(ctx context.Context, productID, variantID string) (int, error)
}

// VariantPrompt asks the user to pick a variant when a product has
// several and none was specified. The HTTP implementation signals the
// client to re-submit with a selection; tests resolve synchronously.
type VariantPrompt interface {
	Request(ctx context.Context, candidate model.AddCandidate) (string, error)
}

// Store is the sole mutator of a single cart's state. All collaborators
// are injected; the store holds no ambient globals. Callers invoke
// operations sequentially (one user action at a time) - there is no
// internal locking, matching single-session ownership of the state.
type Store struct {
	key     string
	storage storage.PersistentStorage
	stocks  StockProvider
	prompt  VariantPrompt

	state *model.CartState
}

func New(key string, st storage.PersistentStorage, stocks StockProvider, prompt VariantPrompt) *Store {
	return &Store{
		key:     key,
		storage: st,
		stocks:  stocks,
		prompt:  prompt,
		state:   model.NewCartState(),
	}
}

// State returns a snapshot of the current cart state
func (s *Store) State() *model.CartState {
	snapshot := *s.state
	snapshot.Lines = make([]model.CartLine, len(s.state.Lines))
	copy(snapshot.Lines, s.state.Lines)
	return &snapshot
}

// Load reads and repairs the persisted cart. Corrupt top-level data is
// discarded (and the key cleared) rather than propagated - the session
// starts over with an empty cart.
func (s *Store) Load(ctx context.Context) error {
	raw, found, err := s.storage.Load(ctx, s.key)
	if err != nil {
		return fmt.Errorf("failed to load cart %s: %w", s.key, err)
	}
	if !found {
		s.state = model.NewCartState()
		return nil
	}

	state, err := Decode(raw)
	if err != nil {
		// Corrupt state: recover by starting empty, best-effort clear
		_ = s.storage.Clear(ctx, s.key)
		s.state = model.NewCartState()
		return nil
	}

	s.state = state
	return nil
}

// AddItem adds one unit of the candidate product to the cart.
//
// Flow: resolve variant (interrupting for selection when needed),
// resolve authoritative stock, then merge-or-append. Stock failures
// fall back to locally known bounds; a previously known finite bound
// is never widened to unlimited.
func (s *Store) AddItem(ctx context.Context, cand model.AddCandidate, explicitVariant string) error {
	if cand.ProductID == "" {
		return fmt.Errorf("add item: product id is required")
	}

	// Step 1: Variant resolution. Multiple variants and no selection
	// means the add pauses for user input - not an error, and no
	// mutation happens until the caller re-invokes with a choice.
	variantID := explicitVariant
	if variantID == "" && len(cand.Variants) > 0 {
		selected, err := s.prompt.Request(ctx, cand)
		if err != nil {
			return err
		}
		variantID = selected
	}

	name := cand.Name
	unitPrice := cand.UnitPrice
	discounted := cand.DiscountedPrice
	size := cand.Size
	hint := cand.StockHint

	if variantID != "" && len(cand.Variants) > 0 {
		variant := cand.ResolveVariant(variantID)
		if variant == nil {
			return productModel.ErrVariantNotFound
		}
		unitPrice = variant.UnitPrice
		discounted = variant.DiscountedPrice
		if variant.Size != "" {
			size = variant.Size
		}
		if hint == nil {
			stock := variant.Stock
			hint = &stock
		}
	}

	lineID := model.LineID(cand.ProductID, variantID)
	idx := s.state.FindLine(lineID)

	// Step 2: Stock resolution via the cached provider
	resolved, err := s.resolveStock(ctx, cand.ProductID, variantID, hint, idx)
	if err != nil {
		return err
	}
	if resolved <= 0 {
		return model.ErrOutOfStock
	}

	// Step 3: Merge-or-append
	if idx >= 0 {
		line := &s.state.Lines[idx]
		if line.Quantity+1 > resolved {
			// The add fails, but the fresh stock count is still useful:
			// refresh the bound and clamp the existing quantity to it.
			line.KnownStock = intPtr(resolved)
			if line.Quantity > resolved {
				line.Quantity = resolved
			}
			if err := s.persist(ctx); err != nil {
				return err
			}
			return &model.InsufficientStockError{Available: resolved}
		}
		line.Quantity++
		line.KnownStock = intPtr(resolved)
	} else {
		s.state.Lines = append(s.state.Lines, model.CartLine{
			LineID:          lineID,
			ProductID:       cand.ProductID,
			VariantID:       variantID,
			Name:            name,
			UnitPrice:       unitPrice,
			DiscountedPrice: discounted,
			Quantity:        1,
			KnownStock:      intPtr(resolved),
			ImageRef:        cand.ImageRef,
			Size:            size,
			SellerRef:       cand.SellerRef,
		})
	}

	return s.persist(ctx)
}

// resolveStock asks the provider for live stock; on failure it falls
// back to the candidate hint, then to the line's stored bound. With no
// fallback at all the add is treated as out of stock.
func (s *Store) resolveStock(ctx context.Context, productID, variantID string, hint *int, lineIdx int) (int, error) {
	live, err := s.stocks.GetStock(ctx, productID, variantID)
	if err == nil {
		return live, nil
	}

	if hint != nil {
		return *hint, nil
	}
	if lineIdx >= 0 {
		if known := s.state.Lines[lineIdx].KnownStock; known != nil {
			return *known, nil
		}
	}

	return 0, model.ErrOutOfStock
}

// UpdateQuantity sets a line's quantity, silently clamped to the
// effective stock bound. Requests below 1 remove the line. Unknown
// line ids are a no-op (but the state is still persisted).
func (s *Store) UpdateQuantity(ctx context.Context, lineID string, requested int, stockOverride *int) error {
	if requested < 1 {
		return s.RemoveItem(ctx, lineID)
	}

	idx := s.state.FindLine(lineID)
	if idx < 0 {
		return s.persist(ctx)
	}

	line := &s.state.Lines[idx]

	// Effective bound: the override when supplied (also refreshes the
	// stored bound), else the stored bound, else unbounded
	if stockOverride != nil {
		line.KnownStock = intPtr(*stockOverride)
	}

	if line.KnownStock != nil && *line.KnownStock <= 0 {
		// Nothing left to sell: a line can't satisfy quantity >= 1
		s.state.Lines = append(s.state.Lines[:idx], s.state.Lines[idx+1:]...)
		return s.persist(ctx)
	}

	quantity := requested
	if line.KnownStock != nil && quantity > *line.KnownStock {
		quantity = *line.KnownStock
	}
	line.Quantity = quantity

	return s.persist(ctx)
}

// RemoveItem deletes the matching line if present. Idempotent.
func (s *Store) RemoveItem(ctx context.Context, lineID string) error {
	idx := s.state.FindLine(lineID)
	if idx >= 0 {
		s.state.Lines = append(s.state.Lines[:idx], s.state.Lines[idx+1:]...)
	}
	return s.persist(ctx)
}

// Clear resets the cart to empty
func (s *Store) Clear(ctx context.Context) error {
	s.state = model.NewCartState()
	return s.persist(ctx)
}

// Reconcile re-clamps every line against live stock. Lines whose
// product is gone from stock are removed; failed lookups keep the
// stored bound. Returns whether anything changed.
func (s *Store) Reconcile(ctx context.Context) (bool, error) {
	changed := false
	kept := s.state.Lines[:0]

	for i := range s.state.Lines {
		line := s.state.Lines[i]

		live, err := s.stocks.GetStock(ctx, line.ProductID, line.VariantID)
		if err != nil {
			kept = append(kept, line)
			continue
		}

		if live <= 0 {
			changed = true
			continue
		}

		if line.KnownStock == nil || *line.KnownStock != live {
			line.KnownStock = intPtr(live)
			changed = true
		}
		if line.Quantity > live {
			line.Quantity = live
			changed = true
		}
		kept = append(kept, line)
	}

	s.state.Lines = kept
	if !changed {
		return false, nil
	}

	return true, s.persist(ctx)
}

// persist recomputes derived totals and writes the state back.
// Every mutation funnels through here so totals can never drift.
func (s *Store) persist(ctx context.Context) error {
	s.state.RecomputeTotals()

	raw, err := Encode(s.state)
	if err != nil {
		return fmt.Errorf("failed to encode cart %s: %w", s.key, err)
	}

	if err := s.storage.Save(ctx, s.key, raw); err != nil {
		return fmt.Errorf("failed to persist cart %s: %w", s.key, err)
	}

	return nil
}

func intPtr(v int) *int {
	return &v
}
