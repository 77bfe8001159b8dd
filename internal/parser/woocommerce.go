package parser

// woocommerce.go parses the typed parent/child layout: "variable" rows
// are parents declaring the option axes, "variation" rows attach one
// variant each to a parent through the Parent column, "simple" rows
// stand alone with a single implicit variant.
//
// Parsing is two-pass. The first pass registers every variable parent
// by ID and SKU so that a variation row is only an orphan when its
// parent is absent from the whole file, not merely later in it.

import (
	"strings"

	"catbridge/internal/catalog"
	"catbridge/internal/normalize"
	"catbridge/internal/rowio"
	"catbridge/internal/schema"
)

// WooCommerceParser links typed parent and child rows into products.
type WooCommerceParser struct {
	opts   Options
	mapper *normalize.Mapper
}

// NewWooCommerceParser returns a parser for the parent/child layout.
func NewWooCommerceParser(opts Options) *WooCommerceParser {
	return &WooCommerceParser{opts: opts, mapper: normalize.NewMapper(schema.WooCommerceMapping)}
}

func (p *WooCommerceParser) Parse(t *rowio.Table) (*Result, error) {
	stats := Stats{RowsTotal: len(t.Rows) + t.Skipped, RowsSkipped: t.Skipped}

	rows := make([]*normalize.Row, len(t.Rows))
	byID := make(map[string]*catalog.Product)
	bySKU := make(map[string]*catalog.Product)

	// Pass 1: register variable parents.
	for i, rec := range t.Rows {
		row := p.mapper.Apply(rec)
		rows[i] = row
		if !strings.EqualFold(row.Str("type"), schema.WooTypeVariable) {
			continue
		}
		product := catalog.NewProduct(wooHandle(row))
		if id := row.Str("id"); id != "" {
			byID[id] = product
		}
		if sku := row.Str("variant.sku"); sku != "" {
			bySKU[sku] = product
		}
	}

	// Pass 2: populate products and attach variations, preserving the
	// file's row order for the product list.
	var order []*catalog.Product
	for _, row := range rows {
		switch strings.ToLower(row.Str("type")) {
		case schema.WooTypeVariable:
			product := p.parentFor(row, byID, bySKU)
			p.fillParent(product, row)
			order = append(order, product)

		case schema.WooTypeVariation:
			parent := p.resolveParent(row, byID, bySKU)
			if parent == nil {
				stats.OrphanVariations++
				stats.RowsSkipped++
				continue
			}
			parent.Variants = append(parent.Variants, wooVariant(row))
			wooAddImages(parent, row)
			parent.Metafields = append(parent.Metafields, row.Metafields...)

		case schema.WooTypeSimple, "":
			product := catalog.NewProduct(wooHandle(row))
			p.fillParent(product, row)
			product.Variants = append(product.Variants, wooVariant(row))
			order = append(order, product)

		default:
			// Grouped, external and other exotic types are out of scope.
			stats.RowsSkipped++
		}
	}

	finalizeAll(order, p.opts, &stats)
	return &Result{Products: order, Stats: stats}, nil
}

// parentFor returns the shell registered for this variable row in pass 1.
func (p *WooCommerceParser) parentFor(row *normalize.Row, byID, bySKU map[string]*catalog.Product) *catalog.Product {
	if product := byID[row.Str("id")]; product != nil {
		return product
	}
	if product := bySKU[row.Str("variant.sku")]; product != nil {
		return product
	}
	// Variable row with neither ID nor SKU. No variation can reference
	// it, but the product itself is still imported.
	return catalog.NewProduct(wooHandle(row))
}

// resolveParent finds a variation's parent. The Parent cell references
// the parent's ID, optionally written with an "id:" prefix, or its SKU.
func (p *WooCommerceParser) resolveParent(row *normalize.Row, byID, bySKU map[string]*catalog.Product) *catalog.Product {
	ref := strings.TrimSpace(row.Str("parentId"))
	if ref == "" {
		return nil
	}
	if id, ok := strings.CutPrefix(ref, "id:"); ok {
		return byID[strings.TrimSpace(id)]
	}
	if product := byID[ref]; product != nil {
		return product
	}
	return bySKU[ref]
}

// fillParent populates product-level fields shared by simple and
// variable rows.
func (p *WooCommerceParser) fillParent(product *catalog.Product, row *normalize.Row) {
	product.Title = row.Str("title")
	product.BodyHTML = row.Str("bodyHtml")
	product.ProductCategory = row.Str("productCategory")
	product.Status = wooStatus(row.Str("published"))

	for _, tag := range catalog.SplitTags(row.Str("tags")) {
		product.AddTag(tag)
	}
	wooAddImages(product, row)
	product.Metafields = append(product.Metafields, row.Metafields...)

	for slot := 1; slot <= catalog.MaxOptions; slot++ {
		name := row.Str(optionPath(slot, "name"))
		values := splitList(row.Str(optionPath(slot, "values")), ",")
		if name == "" && len(values) == 0 {
			continue
		}
		for len(product.Options) < slot {
			product.Options = append(product.Options, catalog.OptionDefinition{})
		}
		product.Options[slot-1].Name = name
		product.Options[slot-1].Values = values
	}
}

// wooVariant extracts a variant from a simple or variation row. When a
// sale price is set it becomes the selling price and the regular price
// moves to compare-at, matching how storefronts display markdowns.
func wooVariant(row *normalize.Row) catalog.Variant {
	regular := catalog.ParsePrice(row.Str("variant.price"))
	sale := catalog.ParsePrice(row.Str("variant.salePrice"))

	price, compareAt := regular, ""
	if sale != "" {
		price, compareAt = sale, regular
	}

	var values [catalog.MaxOptions]string
	for slot := 1; slot <= catalog.MaxOptions; slot++ {
		values[slot-1] = row.Str(optionPath(slot, "values"))
	}

	policy := catalog.InventoryPolicyDeny
	if catalog.ParseBool(row.Str("variant.inventoryPolicy"), false) {
		policy = catalog.InventoryPolicyContinue
	}

	return catalog.Variant{
		OptionValues:      values,
		Price:             price,
		CompareAtPrice:    compareAt,
		SKU:               row.Str("variant.sku"),
		Weight:            catalog.ParseFloat(row.Str("variant.weight")),
		WeightUnit:        catalog.WeightUnitKilograms,
		InventoryQuantity: catalog.ParseInt(row.Str("variant.inventoryQuantity")),
		InventoryPolicy:   policy,
		RequiresShipping:  true,
		Taxable:           !strings.EqualFold(row.Str("variant.taxStatus"), "none"),
	}
}

// wooAddImages appends the row's comma-separated image URLs.
func wooAddImages(product *catalog.Product, row *normalize.Row) {
	for _, src := range splitList(row.Str("images"), ",") {
		product.AddImage(catalog.Image{Src: src})
	}
}

// wooStatus maps the numeric published flag: 1 is published, 0 is
// private and -1 is draft.
func wooStatus(s string) catalog.Status {
	switch strings.TrimSpace(s) {
	case "0", "-1":
		return catalog.StatusDraft
	default:
		return catalog.ParseStatus(s)
	}
}

// wooHandle derives a URL-safe handle, since this layout has no handle
// column of its own.
func wooHandle(row *normalize.Row) string {
	if h := Slugify(row.Str("title")); h != "" {
		return h
	}
	if sku := row.Str("variant.sku"); sku != "" {
		return Slugify(sku)
	}
	return "product-" + row.Str("id")
}

// Slugify lowercases s and collapses every run of characters outside
// [a-z0-9] into a single hyphen.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	b.Grow(len(s))
	pendingHyphen := false
	for _, r := range s {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		default:
			pendingHyphen = true
		}
	}
	return b.String()
}

// optionPath builds the canonical path for an option slot's field.
func optionPath(slot int, field string) string {
	return "option" + string(rune('0'+slot)) + "." + field
}

// splitList splits a delimited cell into trimmed, non-empty items.
func splitList(s, sep string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, sep)
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			items = append(items, p)
		}
	}
	return items
}
