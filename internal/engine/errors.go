package engine

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"rate-engine-service/internal/models"
)

// Errors
var (
	ErrNoItemsToPack         = errors.New("no items to pack")
	ErrInvalidQuantity       = errors.New("item quantity must be at least 1")
	ErrNoContainersAvailable = errors.New("no containers available for packing")
	ErrMalformedRate         = errors.New("malformed rate")
)

// ItemExceedsContainersError is returned when a single unit does not fit any
// available container even on its own. It names the offending item so the
// caller can surface a remediation (e.g. "needs custom packaging").
type ItemExceedsContainersError struct {
	ItemID uuid.UUID
	SKU    string
	Name   string
}

func (e *ItemExceedsContainersError) Error() string {
	return fmt.Sprintf("item %s (%s) does not fit any available container", e.SKU, e.ItemID)
}

func newItemExceedsContainersError(item models.Item) *ItemExceedsContainersError {
	return &ItemExceedsContainersError{ItemID: item.ID, SKU: item.SKU, Name: item.Name}
}
