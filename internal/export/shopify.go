// Package export renders canonical products back into the
// grouped-continuation CSV layout, the interchange format of this
// service. Exports are written so that re-importing the file yields
// the same canonical products.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"catbridge/internal/catalog"
	"catbridge/internal/schema"
)

// ShopifyCSV writes products in the spreadsheet layout: each product's
// first row carries the product-level columns and the first variant,
// further variants follow as continuation rows, and images beyond the
// first get image-only rows.
//
// Metafields do not fit the fixed column set, so the header is extended
// with one "product.metafields.<namespace>.<key>" column per distinct
// metafield in the batch. The importer recognizes that pattern, which
// is what makes the export re-importable without loss.
func ShopifyCSV(w io.Writer, products []*catalog.Product) error {
	metaCols := metafieldColumns(products)

	header := make([]string, 0, len(schema.ShopifyColumns)+len(metaCols))
	header = append(header, schema.ShopifyColumns...)
	header = append(header, metaCols...)

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}

	for _, p := range products {
		if err := writeProduct(cw, col, len(header), p); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func writeProduct(cw *csv.Writer, col map[string]int, width int, p *catalog.Product) error {
	for i, v := range p.Variants {
		row := make([]string, width)
		row[col["Handle"]] = p.Handle

		if i == 0 {
			fillProductCells(row, col, p)
			if len(p.Images) > 0 {
				fillImageCells(row, col, p.Images[0])
			}
		}

		fillVariantCells(row, col, p, v)
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write %s: %w", p.Handle, err)
		}
	}

	for _, img := range p.Images[min(1, len(p.Images)):] {
		row := make([]string, width)
		row[col["Handle"]] = p.Handle
		fillImageCells(row, col, img)
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write %s: %w", p.Handle, err)
		}
	}
	return nil
}

func fillProductCells(row []string, col map[string]int, p *catalog.Product) {
	row[col["Title"]] = p.Title
	row[col["Body (HTML)"]] = p.BodyHTML
	row[col["Vendor"]] = p.Vendor
	row[col["Product Category"]] = p.ProductCategory
	row[col["Type"]] = p.ProductType
	row[col["Tags"]] = joinTags(p.Tags)
	row[col["Published"]] = strconv.FormatBool(p.Status == catalog.StatusActive)
	row[col["Status"]] = string(p.Status)

	names := [...]string{"Option1 Name", "Option2 Name", "Option3 Name"}
	for slot, o := range p.Options {
		if slot < len(names) {
			row[col[names[slot]]] = o.Name
		}
	}

	for _, m := range p.Metafields {
		if i, ok := col[metafieldColumn(m)]; ok && row[i] == "" {
			row[i] = m.Value
		}
	}
}

func fillVariantCells(row []string, col map[string]int, p *catalog.Product, v catalog.Variant) {
	values := [...]string{"Option1 Value", "Option2 Value", "Option3 Value"}
	for slot := range p.Options {
		if slot < len(values) {
			row[col[values[slot]]] = v.OptionValues[slot]
		}
	}

	row[col["Variant SKU"]] = v.SKU
	row[col["Variant Grams"]] = formatFloat(v.Weight)
	row[col["Variant Inventory Qty"]] = strconv.Itoa(v.InventoryQuantity)
	row[col["Variant Inventory Policy"]] = string(v.InventoryPolicy)
	row[col["Variant Price"]] = v.Price
	row[col["Variant Compare At Price"]] = v.CompareAtPrice
	row[col["Variant Requires Shipping"]] = strconv.FormatBool(v.RequiresShipping)
	row[col["Variant Taxable"]] = strconv.FormatBool(v.Taxable)
	row[col["Variant Barcode"]] = v.Barcode
	row[col["Variant Weight Unit"]] = string(v.WeightUnit)
}

func fillImageCells(row []string, col map[string]int, img catalog.Image) {
	row[col["Image Src"]] = img.Src
	row[col["Image Position"]] = strconv.Itoa(img.Position)
	row[col["Image Alt Text"]] = img.Alt
}

// metafieldColumns collects the distinct metafield columns across the
// batch, in first-appearance order.
func metafieldColumns(products []*catalog.Product) []string {
	seen := make(map[string]bool)
	var cols []string
	for _, p := range products {
		for _, m := range p.Metafields {
			name := metafieldColumn(m)
			if !seen[name] {
				seen[name] = true
				cols = append(cols, name)
			}
		}
	}
	return cols
}

func metafieldColumn(m catalog.Metafield) string {
	return "product.metafields." + m.Namespace + "." + m.Key
}

func joinTags(tags []string) string {
	return strings.Join(tags, ", ")
}

func formatFloat(f float64) string {
	if f == 0 {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
