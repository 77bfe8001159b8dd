package parser

// wix.go parses the single-row layout: one row is one product, with up
// to six option axes encoded as name/description column pairs and the
// value domains semicolon-delimited inside one cell. Because variants
// are never listed explicitly, they are synthesized as the Cartesian
// product of the declared domains.

import (
	"strings"

	"github.com/shopspring/decimal"

	"catbridge/internal/catalog"
	"catbridge/internal/normalize"
	"catbridge/internal/rowio"
	"catbridge/internal/schema"
)

// WixParser expands one-row products into explicit variant matrices.
type WixParser struct {
	opts   Options
	mapper *normalize.Mapper
}

// NewWixParser returns a parser for the single-row layout.
func NewWixParser(opts Options) *WixParser {
	return &WixParser{opts: opts, mapper: normalize.NewMapper(schema.WixMapping)}
}

func (p *WixParser) Parse(t *rowio.Table) (*Result, error) {
	stats := Stats{RowsTotal: len(t.Rows) + t.Skipped, RowsSkipped: t.Skipped}

	var order []*catalog.Product
	for _, rec := range t.Rows {
		row := p.mapper.Apply(rec)

		// The catalog sheet interleaves non-product rows (collections,
		// option presentation rows). Only product rows are imported.
		if ft := row.Str("fieldType"); ft != "" && !strings.EqualFold(ft, schema.WixFieldTypeProduct) {
			stats.RowsSkipped++
			continue
		}

		handle := row.Str("handle")
		if handle == "" {
			stats.RowsSkipped++
			continue
		}

		product, err := p.expand(handle, row)
		if err != nil {
			return nil, err
		}
		order = append(order, product)
	}

	finalizeAll(order, p.opts, &stats)
	return &Result{Products: order, Stats: stats}, nil
}

// expand builds one product from one row, synthesizing its variants.
// The only error is the batch-fatal combination ceiling.
func (p *WixParser) expand(handle string, row *normalize.Row) (*catalog.Product, error) {
	product := catalog.NewProduct(handle)
	product.Title = row.Str("title")
	product.BodyHTML = row.Str("bodyHtml")
	product.Vendor = row.Str("vendor")
	product.ProductCategory = row.Str("productCategory")
	product.Status = catalog.ParseStatus(row.Str("published"))
	product.Metafields = append(product.Metafields, row.Metafields...)

	for _, src := range splitList(row.Str("images"), ";") {
		product.AddImage(catalog.Image{Src: src})
	}

	options, overflow := wixOptions(row)
	product.Options = options
	product.Metafields = append(product.Metafields, overflow...)

	price, compareAt := wixPrice(row)

	combos, err := catalog.Combinations(options, p.opts.MaxCombinations)
	if err != nil {
		return nil, err
	}

	sku := row.Str("variant.sku")
	qty := catalog.ParseInt(row.Str("variant.inventoryQuantity"))
	weight := catalog.ParseFloat(row.Str("variant.weight"))
	for _, combo := range combos {
		v := catalog.Variant{
			Price:             price,
			CompareAtPrice:    compareAt,
			SKU:               sku,
			Weight:            weight,
			WeightUnit:        catalog.WeightUnitKilograms,
			InventoryQuantity: qty,
			InventoryPolicy:   catalog.InventoryPolicyDeny,
			RequiresShipping:  true,
			Taxable:           true,
		}
		copy(v.OptionValues[:], combo)
		product.Variants = append(product.Variants, v)
	}

	return product, nil
}

// wixOptions reads the six option column pairs. An axis that declares
// no values contributes nothing to the matrix and is dropped entirely,
// so each kept name stays paired with its own value domain. The first
// three kept axes become canonical options; deeper axes do not fit the
// three-slot model and are preserved as metafields instead of being
// dropped.
func wixOptions(row *normalize.Row) ([]catalog.OptionDefinition, []catalog.Metafield) {
	var options []catalog.OptionDefinition
	var overflow []catalog.Metafield

	for slot := 1; slot <= schema.WixMaxOptionSlots; slot++ {
		name := row.Str(optionPath(slot, "name"))
		raw := row.Str(optionPath(slot, "values"))

		values := make([]string, 0, 4)
		for _, v := range splitList(raw, ";") {
			values = append(values, wixValueLabel(v))
		}
		if len(values) == 0 {
			continue
		}

		if len(options) < catalog.MaxOptions {
			options = append(options, catalog.OptionDefinition{Name: name, Values: values})
			continue
		}

		overflow = append(overflow, catalog.Metafield{
			Namespace: normalize.DefaultNamespace,
			Key:       normalize.SanitizeKey("option " + name),
			Value:     strings.Join(values, "; "),
			Type:      catalog.MetafieldTypeSingleLineText,
		})
	}

	return options, overflow
}

// wixValueLabel strips the presentation suffix from an option value.
// Swatch-typed options write values as "label:presentation" (for
// example "Red:#ff0000"); the label is the value.
func wixValueLabel(v string) string {
	if i := strings.Index(v, ":"); i >= 0 {
		return strings.TrimSpace(v[:i])
	}
	return v
}

// wixPrice resolves the selling price from the base price and the
// discount columns. Only a positive discount value marks the product
// down; the product then sells at the reduced price with the base
// price as compare-at, and the result never goes below zero.
func wixPrice(row *normalize.Row) (price, compareAt string) {
	base, ok := catalog.ParseDecimal(row.Str("variant.price"))
	if !ok {
		return "", ""
	}

	value, hasValue := catalog.ParseDecimal(row.Str("discount.value"))
	if !hasValue || !value.IsPositive() {
		return base.String(), ""
	}

	var discounted decimal.Decimal
	switch strings.ToUpper(strings.TrimSpace(row.Str("discount.mode"))) {
	case schema.WixDiscountPercent:
		discounted = base.Sub(base.Mul(value).Div(decimal.NewFromInt(100)))
	case schema.WixDiscountAmount:
		discounted = base.Sub(value)
	default:
		return base.String(), ""
	}

	if discounted.IsNegative() {
		discounted = decimal.Zero
	}
	return discounted.String(), base.String()
}
