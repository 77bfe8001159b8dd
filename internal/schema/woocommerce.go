package schema

// WooCommerce product exports type every row: "variable" rows are
// parents carrying the option domains, "variation" rows attach to a
// parent through the Parent column, "simple" rows stand alone.
const (
	WooTypeSimple    = "simple"
	WooTypeVariable  = "variable"
	WooTypeVariation = "variation"
)

// WooCommerceMapping maps the WooCommerce product/order columns onto
// canonical paths. "Meta: *" columns are intentionally unmapped so they
// flow through as metafields.
var WooCommerceMapping = Mapping{
	"ID":                   "id",
	"Type":                 "type",
	"SKU":                  "variant.sku",
	"Name":                 "title",
	"Published":            "published",
	"Description":          "bodyHtml",
	"Parent":               "parentId",
	"Regular price":        "variant.price",
	"Sale price":           "variant.salePrice",
	"Categories":           "productCategory",
	"Tags":                 "tags",
	"Images":               "images",
	"Stock":                "variant.inventoryQuantity",
	"Backorders allowed?":  "variant.inventoryPolicy",
	"Weight (kg)":          "variant.weight",
	"Length (cm)":          "dimensions.length",
	"Width (cm)":           "dimensions.width",
	"Height (cm)":          "dimensions.height",
	"Tax status":           "variant.taxStatus",
	"Shipping class":       "shipping.class",
	"Attribute 1 name":     "option1.name",
	"Attribute 1 value(s)": "option1.values",
	"Attribute 1 visible":  "option1.visible",
	"Attribute 1 global":   "option1.global",
	"Attribute 2 name":     "option2.name",
	"Attribute 2 value(s)": "option2.values",
	"Attribute 2 visible":  "option2.visible",
	"Attribute 2 global":   "option2.global",
	"Attribute 3 name":     "option3.name",
	"Attribute 3 value(s)": "option3.values",
	"Attribute 3 visible":  "option3.visible",
	"Attribute 3 global":   "option3.global",
	"Billing City":         "billingAddress.city",
	"Billing Country":      "billingAddress.country",
	"Shipping City":        "shippingAddress.city",
	"Shipping Country":     "shippingAddress.country",
}

// WooCommerceColumns is the recognized subset of the WooCommerce
// product CSV header, in export order.
var WooCommerceColumns = []string{
	"ID",
	"Type",
	"SKU",
	"Name",
	"Published",
	"Description",
	"Parent",
	"Regular price",
	"Sale price",
	"Categories",
	"Tags",
	"Images",
	"Stock",
	"Backorders allowed?",
	"Weight (kg)",
	"Attribute 1 name",
	"Attribute 1 value(s)",
	"Attribute 2 name",
	"Attribute 2 value(s)",
	"Attribute 3 name",
	"Attribute 3 value(s)",
}
