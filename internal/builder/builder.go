// Package builder renders finalized canonical products into the payload
// shapes the target platforms accept on their import side. Builders are
// the inverse of the parsers, but they consume only the canonical model
// and never see source rows.
//
// Builders require finalized input. A product with zero variants
// violates the finalization contract and is rejected rather than
// papered over.
package builder

import "fmt"

// ErrNoVariants reports a product that reached a builder without the
// at-least-one-variant guarantee finalization provides.
type ErrNoVariants struct {
	Handle string
}

func (e *ErrNoVariants) Error() string {
	return fmt.Sprintf("product %q has no variants; input was not finalized", e.Handle)
}
