package builder

import (
	"strings"

	"catbridge/internal/catalog"
	"catbridge/internal/schema"
)

// WixProduct is the catalog import payload. Variants are not listed
// explicitly on this side either: the payload carries the option
// domains and per-product pricing, mirroring the single-row export.
type WixProduct struct {
	HandleID    string            `json:"handleId"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Brand       string            `json:"brand,omitempty"`
	Collection  string            `json:"collection,omitempty"`
	Visible     bool              `json:"visible"`
	Price       string            `json:"price"`
	Discount    *WixDiscount      `json:"discount,omitempty"`
	SKU         string            `json:"sku,omitempty"`
	Inventory   int               `json:"inventory"`
	ImageURLs   []string          `json:"productImageUrl,omitempty"`
	Options     []WixOption       `json:"productOptions,omitempty"`
	Extra       map[string]string `json:"additionalInfo,omitempty"`
}

type WixOption struct {
	Name    string   `json:"name"`
	Choices []string `json:"choices"`
}

// WixDiscount expresses a markdown as an absolute amount off the
// compare-at price, the representation that round-trips exactly.
type WixDiscount struct {
	Mode  string `json:"mode"`
	Value string `json:"value"`
}

// BuildWix renders finalized products as catalog import payloads.
// Per-variant detail beyond the first variant's pricing cannot be
// represented and is intentionally collapsed.
func BuildWix(products []*catalog.Product) ([]WixProduct, error) {
	out := make([]WixProduct, 0, len(products))
	for _, p := range products {
		if len(p.Variants) == 0 {
			return nil, &ErrNoVariants{Handle: p.Handle}
		}
		lead := p.Variants[0]

		wp := WixProduct{
			HandleID:    p.Handle,
			Name:        p.Title,
			Description: p.BodyHTML,
			Brand:       p.Vendor,
			Collection:  p.ProductCategory,
			Visible:     p.Status == catalog.StatusActive,
			SKU:         lead.SKU,
			Inventory:   lead.InventoryQuantity,
		}

		wp.Price, wp.Discount = wixPricing(lead)

		for _, img := range p.Images {
			wp.ImageURLs = append(wp.ImageURLs, img.Src)
		}
		for _, o := range p.Options {
			wp.Options = append(wp.Options, WixOption{Name: o.Name, Choices: o.Values})
		}
		for _, m := range p.Metafields {
			if wp.Extra == nil {
				wp.Extra = make(map[string]string)
			}
			wp.Extra[m.Namespace+"."+m.Key] = m.Value
		}

		out = append(out, wp)
	}
	return out, nil
}

// wixPricing inverts the markdown mapping: with a compare-at price the
// payload price is the compare-at and the markdown becomes an AMOUNT
// discount, so the selling price survives the round trip.
func wixPricing(v catalog.Variant) (string, *WixDiscount) {
	if v.CompareAtPrice == "" {
		return v.Price, nil
	}

	base, ok := catalog.ParseDecimal(v.CompareAtPrice)
	if !ok {
		return v.Price, nil
	}
	selling, ok := catalog.ParseDecimal(v.Price)
	if !ok {
		return v.CompareAtPrice, nil
	}

	off := base.Sub(selling)
	if off.IsNegative() || off.IsZero() {
		return v.Price, nil
	}
	return base.String(), &WixDiscount{
		Mode:  schema.WixDiscountAmount,
		Value: strings.TrimSpace(off.String()),
	}
}
