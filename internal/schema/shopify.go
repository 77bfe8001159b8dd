package schema

// ShopifyColumns is the fixed column order of the spreadsheet schema,
// used both to recognize imports and as the exact export layout. The
// grouped-continuation convention applies: a product's first row
// carries all product-level columns, later rows for the same handle
// add a variant or an image and leave the rest blank.
var ShopifyColumns = []string{
	"Handle",
	"Title",
	"Body (HTML)",
	"Vendor",
	"Product Category",
	"Type",
	"Tags",
	"Published",
	"Option1 Name",
	"Option1 Value",
	"Option2 Name",
	"Option2 Value",
	"Option3 Name",
	"Option3 Value",
	"Variant SKU",
	"Variant Grams",
	"Variant Inventory Qty",
	"Variant Inventory Policy",
	"Variant Price",
	"Variant Compare At Price",
	"Variant Requires Shipping",
	"Variant Taxable",
	"Variant Barcode",
	"Image Src",
	"Image Position",
	"Image Alt Text",
	"Variant Weight Unit",
	"Status",
}

// ShopifyMapping maps the spreadsheet columns onto canonical paths.
// Metafield columns ("product.metafields.<ns>.<key>") are deliberately
// absent: the normalizer recognizes that pattern on unmapped columns.
var ShopifyMapping = Mapping{
	"Handle":                    "handle",
	"Title":                     "title",
	"Body (HTML)":               "bodyHtml",
	"Vendor":                    "vendor",
	"Product Category":          "productCategory",
	"Type":                      "productType",
	"Tags":                      "tags",
	"Published":                 "published",
	"Status":                    "status",
	"Option1 Name":              "option1.name",
	"Option1 Value":             "option1.value",
	"Option2 Name":              "option2.name",
	"Option2 Value":             "option2.value",
	"Option3 Name":              "option3.name",
	"Option3 Value":             "option3.value",
	"Variant SKU":               "variant.sku",
	"Variant Grams":             "variant.grams",
	"Variant Inventory Qty":     "variant.inventoryQuantity",
	"Variant Inventory Policy":  "variant.inventoryPolicy",
	"Variant Price":             "variant.price",
	"Variant Compare At Price":  "variant.compareAtPrice",
	"Variant Requires Shipping": "variant.requiresShipping",
	"Variant Taxable":           "variant.taxable",
	"Variant Barcode":           "variant.barcode",
	"Variant Weight Unit":       "variant.weightUnit",
	"Image Src":                 "image.src",
	"Image Position":            "image.position",
	"Image Alt Text":            "image.alt",
}
