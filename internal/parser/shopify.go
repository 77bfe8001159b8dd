package parser

// shopify.go parses the grouped-continuation spreadsheet layout: a
// product's first row carries the product-level columns and option
// names, and later rows sharing the handle each add one variant or one
// image, leaving product-level cells blank.

import (
	"strings"

	"catbridge/internal/catalog"
	"catbridge/internal/normalize"
	"catbridge/internal/rowio"
	"catbridge/internal/schema"
)

// ShopifyParser groups rows by handle, in first-appearance order.
type ShopifyParser struct {
	opts   Options
	mapper *normalize.Mapper
}

// NewShopifyParser returns a parser for the grouped-continuation layout.
func NewShopifyParser(opts Options) *ShopifyParser {
	return &ShopifyParser{opts: opts, mapper: normalize.NewMapper(schema.ShopifyMapping)}
}

func (p *ShopifyParser) Parse(t *rowio.Table) (*Result, error) {
	stats := Stats{RowsTotal: len(t.Rows) + t.Skipped, RowsSkipped: t.Skipped}

	byHandle := make(map[string]*catalog.Product)
	var order []*catalog.Product

	for _, rec := range t.Rows {
		row := p.mapper.Apply(rec)

		handle := row.Str("handle")
		if handle == "" {
			stats.RowsSkipped++
			continue
		}

		product, seen := byHandle[handle]
		if !seen {
			product = catalog.NewProduct(handle)
			byHandle[handle] = product
			order = append(order, product)
		}

		applyProductFields(product, row)
		applyOptionNames(product, row)
		product.Metafields = append(product.Metafields, row.Metafields...)

		if src := row.Str("image.src"); src != "" {
			product.AddImage(catalog.Image{
				Src:      src,
				Position: catalog.ParseInt(row.Str("image.position")),
				Alt:      row.Str("image.alt"),
			})
		}

		if v, ok := shopifyVariant(row); ok {
			product.Variants = append(product.Variants, v)
		}
	}

	finalizeAll(order, p.opts, &stats)
	return &Result{Products: order, Stats: stats}, nil
}

// applyProductFields fills product-level fields from whichever row
// carries them. Continuation rows leave these blank, so only non-empty
// cells land and the first populated row wins.
func applyProductFields(product *catalog.Product, row *normalize.Row) {
	setIfEmpty(&product.Title, row.Str("title"))
	setIfEmpty(&product.BodyHTML, row.Str("bodyHtml"))
	setIfEmpty(&product.Vendor, row.Str("vendor"))
	setIfEmpty(&product.ProductType, row.Str("productType"))
	setIfEmpty(&product.ProductCategory, row.Str("productCategory"))

	for _, tag := range catalog.SplitTags(row.Str("tags")) {
		product.AddTag(tag)
	}

	if s := row.Str("status"); s != "" {
		product.Status = catalog.ParseStatus(s)
	} else if s := row.Str("published"); s != "" {
		product.Status = catalog.ParseStatus(s)
	}
}

// applyOptionNames extends the product's option list with the names the
// row declares. Names normally appear only on a product's first row;
// a later row never overwrites an established name.
func applyOptionNames(product *catalog.Product, row *normalize.Row) {
	names := []string{
		row.Str("option1.name"),
		row.Str("option2.name"),
		row.Str("option3.name"),
	}
	for slot, name := range names {
		if name == "" {
			continue
		}
		for len(product.Options) <= slot {
			product.Options = append(product.Options, catalog.OptionDefinition{})
		}
		if product.Options[slot].Name == "" {
			product.Options[slot].Name = name
		}
	}
}

// shopifyVariant extracts the row's variant, if the row carries one.
// Image-only continuation rows have neither option values nor variant
// columns and yield no variant.
func shopifyVariant(row *normalize.Row) (catalog.Variant, bool) {
	values := [catalog.MaxOptions]string{
		row.Str("option1.value"),
		row.Str("option2.value"),
		row.Str("option3.value"),
	}

	carries := values[0] != "" || values[1] != "" || values[2] != "" ||
		row.Str("variant.price") != "" ||
		row.Str("variant.sku") != "" ||
		row.Str("variant.barcode") != ""
	if !carries {
		return catalog.Variant{}, false
	}

	return catalog.Variant{
		OptionValues:      values,
		Price:             catalog.ParsePrice(row.Str("variant.price")),
		CompareAtPrice:    catalog.ParsePrice(row.Str("variant.compareAtPrice")),
		SKU:               row.Str("variant.sku"),
		Barcode:           row.Str("variant.barcode"),
		Weight:            catalog.ParseFloat(row.Str("variant.grams")),
		WeightUnit:        shopifyWeightUnit(row.Str("variant.weightUnit")),
		InventoryQuantity: catalog.ParseInt(row.Str("variant.inventoryQuantity")),
		InventoryPolicy:   catalog.ParseInventoryPolicy(row.Str("variant.inventoryPolicy")),
		RequiresShipping:  catalog.ParseBool(row.Str("variant.requiresShipping"), true),
		Taxable:           catalog.ParseBool(row.Str("variant.taxable"), true),
	}, true
}

// shopifyWeightUnit defaults to grams because the weight cell in this
// layout is the grams column.
func shopifyWeightUnit(s string) catalog.WeightUnit {
	if strings.TrimSpace(s) == "" {
		return catalog.WeightUnitGrams
	}
	return catalog.ParseWeightUnit(s)
}

// setIfEmpty assigns value to dst only when dst is still empty.
func setIfEmpty(dst *string, value string) {
	if *dst == "" && value != "" {
		*dst = value
	}
}
