package builder

import (
	"strings"

	"catbridge/internal/catalog"
)

// ShopifyProduct is the admin-API product create payload.
type ShopifyProduct struct {
	Handle      string             `json:"handle"`
	Title       string             `json:"title"`
	BodyHTML    string             `json:"body_html,omitempty"`
	Vendor      string             `json:"vendor,omitempty"`
	ProductType string             `json:"product_type,omitempty"`
	Category    string             `json:"category,omitempty"`
	Tags        string             `json:"tags,omitempty"`
	Status      string             `json:"status"`
	Options     []ShopifyOption    `json:"options,omitempty"`
	Variants    []ShopifyVariant   `json:"variants"`
	Images      []ShopifyImage     `json:"images,omitempty"`
	Metafields  []ShopifyMetafield `json:"metafields,omitempty"`
}

type ShopifyOption struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

type ShopifyVariant struct {
	Option1           string  `json:"option1,omitempty"`
	Option2           string  `json:"option2,omitempty"`
	Option3           string  `json:"option3,omitempty"`
	Price             string  `json:"price"`
	CompareAtPrice    string  `json:"compare_at_price,omitempty"`
	SKU               string  `json:"sku,omitempty"`
	Barcode           string  `json:"barcode,omitempty"`
	Weight            float64 `json:"weight,omitempty"`
	WeightUnit        string  `json:"weight_unit,omitempty"`
	InventoryQuantity int     `json:"inventory_quantity"`
	InventoryPolicy   string  `json:"inventory_policy"`
	RequiresShipping  bool    `json:"requires_shipping"`
	Taxable           bool    `json:"taxable"`
}

type ShopifyImage struct {
	Src      string `json:"src"`
	Position int    `json:"position"`
	Alt      string `json:"alt,omitempty"`
}

type ShopifyMetafield struct {
	Namespace string `json:"namespace"`
	Key       string `json:"key"`
	Value     string `json:"value"`
	Type      string `json:"type"`
}

// BuildShopify renders finalized products as admin-API payloads, one
// per product, preserving input order.
func BuildShopify(products []*catalog.Product) ([]ShopifyProduct, error) {
	out := make([]ShopifyProduct, 0, len(products))
	for _, p := range products {
		if len(p.Variants) == 0 {
			return nil, &ErrNoVariants{Handle: p.Handle}
		}

		sp := ShopifyProduct{
			Handle:      p.Handle,
			Title:       p.Title,
			BodyHTML:    p.BodyHTML,
			Vendor:      p.Vendor,
			ProductType: p.ProductType,
			Category:    p.ProductCategory,
			Tags:        strings.Join(p.Tags, ", "),
			Status:      string(p.Status),
		}

		for _, o := range p.Options {
			sp.Options = append(sp.Options, ShopifyOption{Name: o.Name, Values: o.Values})
		}
		for _, v := range p.Variants {
			sp.Variants = append(sp.Variants, ShopifyVariant{
				Option1:           v.OptionValues[0],
				Option2:           v.OptionValues[1],
				Option3:           v.OptionValues[2],
				Price:             v.Price,
				CompareAtPrice:    v.CompareAtPrice,
				SKU:               v.SKU,
				Barcode:           v.Barcode,
				Weight:            v.Weight,
				WeightUnit:        string(v.WeightUnit),
				InventoryQuantity: v.InventoryQuantity,
				InventoryPolicy:   string(v.InventoryPolicy),
				RequiresShipping:  v.RequiresShipping,
				Taxable:           v.Taxable,
			})
		}
		for _, img := range p.Images {
			sp.Images = append(sp.Images, ShopifyImage{Src: img.Src, Position: img.Position, Alt: img.Alt})
		}
		for _, m := range p.Metafields {
			sp.Metafields = append(sp.Metafields, ShopifyMetafield(m))
		}

		out = append(out, sp)
	}
	return out, nil
}
