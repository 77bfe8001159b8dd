package builder

import (
	"catbridge/internal/catalog"
	"catbridge/internal/schema"
)

// WooProduct is the REST product create payload. A product with one
// variant and no options becomes a simple product with the pricing
// inline; anything else becomes a variable product with explicit
// variations.
type WooProduct struct {
	Name          string         `json:"name"`
	Slug          string         `json:"slug"`
	Type          string         `json:"type"`
	Status        string         `json:"status"`
	Description   string         `json:"description,omitempty"`
	SKU           string         `json:"sku,omitempty"`
	RegularPrice  string         `json:"regular_price,omitempty"`
	SalePrice     string         `json:"sale_price,omitempty"`
	StockQuantity int            `json:"stock_quantity,omitempty"`
	Categories    []WooCategory  `json:"categories,omitempty"`
	Tags          []WooTag       `json:"tags,omitempty"`
	Images        []WooImage     `json:"images,omitempty"`
	Attributes    []WooAttribute `json:"attributes,omitempty"`
	Variations    []WooVariation `json:"variations,omitempty"`
	MetaData      []WooMeta      `json:"meta_data,omitempty"`
}

type WooCategory struct {
	Name string `json:"name"`
}

type WooTag struct {
	Name string `json:"name"`
}

type WooImage struct {
	Src string `json:"src"`
	Alt string `json:"alt,omitempty"`
}

type WooAttribute struct {
	Name      string   `json:"name"`
	Options   []string `json:"options"`
	Visible   bool     `json:"visible"`
	Variation bool     `json:"variation"`
}

type WooVariation struct {
	SKU           string                  `json:"sku,omitempty"`
	RegularPrice  string                  `json:"regular_price"`
	SalePrice     string                  `json:"sale_price,omitempty"`
	StockQuantity int                     `json:"stock_quantity,omitempty"`
	Weight        string                  `json:"weight,omitempty"`
	Attributes    []WooVariationAttribute `json:"attributes"`
}

type WooVariationAttribute struct {
	Name   string `json:"name"`
	Option string `json:"option"`
}

type WooMeta struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// BuildWooCommerce renders finalized products as REST payloads.
func BuildWooCommerce(products []*catalog.Product) ([]WooProduct, error) {
	out := make([]WooProduct, 0, len(products))
	for _, p := range products {
		if len(p.Variants) == 0 {
			return nil, &ErrNoVariants{Handle: p.Handle}
		}

		wp := WooProduct{
			Name:        p.Title,
			Slug:        p.Handle,
			Status:      wooStatus(p.Status),
			Description: p.BodyHTML,
		}
		if p.ProductCategory != "" {
			wp.Categories = []WooCategory{{Name: p.ProductCategory}}
		}
		for _, tag := range p.Tags {
			wp.Tags = append(wp.Tags, WooTag{Name: tag})
		}
		for _, img := range p.Images {
			wp.Images = append(wp.Images, WooImage{Src: img.Src, Alt: img.Alt})
		}
		for _, m := range p.Metafields {
			wp.MetaData = append(wp.MetaData, WooMeta{Key: m.Namespace + "." + m.Key, Value: m.Value})
		}

		if len(p.Options) == 0 && len(p.Variants) == 1 {
			v := p.Variants[0]
			wp.Type = schema.WooTypeSimple
			wp.SKU = v.SKU
			wp.RegularPrice, wp.SalePrice = wooPrices(v)
			wp.StockQuantity = v.InventoryQuantity
			out = append(out, wp)
			continue
		}

		wp.Type = schema.WooTypeVariable
		for _, o := range p.Options {
			wp.Attributes = append(wp.Attributes, WooAttribute{
				Name:      o.Name,
				Options:   o.Values,
				Visible:   true,
				Variation: true,
			})
		}
		names := p.OptionNames()
		for _, v := range p.Variants {
			wv := WooVariation{
				SKU:           v.SKU,
				StockQuantity: v.InventoryQuantity,
			}
			wv.RegularPrice, wv.SalePrice = wooPrices(v)
			for slot, name := range names {
				if v.OptionValues[slot] == "" {
					continue
				}
				wv.Attributes = append(wv.Attributes, WooVariationAttribute{
					Name:   name,
					Option: v.OptionValues[slot],
				})
			}
			wp.Variations = append(wp.Variations, wv)
		}

		out = append(out, wp)
	}
	return out, nil
}

// wooPrices inverts the markdown mapping: a compare-at price is the
// regular price with the canonical price as sale price.
func wooPrices(v catalog.Variant) (regular, sale string) {
	if v.CompareAtPrice != "" {
		return v.CompareAtPrice, v.Price
	}
	return v.Price, ""
}

func wooStatus(s catalog.Status) string {
	if s == catalog.StatusDraft {
		return "draft"
	}
	return "publish"
}
