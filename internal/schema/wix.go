package schema

// Wix exports are single-row: one row encodes one product, with up to
// six option axes as name/description column pairs. Option values are
// semicolon-delimited inside the description cell, each value
// optionally written as "label:presentation" (color swatches).
const (
	// WixMaxOptionSlots is the number of option column pairs the Wix
	// schema carries. The canonical model keeps only the first three
	// axes as options; deeper axes are preserved as metafields.
	WixMaxOptionSlots = 6

	WixFieldTypeProduct = "Product"

	WixDiscountPercent = "PERCENT"
	WixDiscountAmount  = "AMOUNT"
)

// WixMapping maps the Wix product columns onto canonical paths.
// "ribbon" and "cost" stay unmapped on purpose: they have no canonical
// home and survive as custom metafields instead of being discarded.
var WixMapping = Mapping{
	"handleId":        "handle",
	"fieldType":       "fieldType",
	"name":            "title",
	"description":     "bodyHtml",
	"productImageUrl": "images",
	"collection":      "productCategory",
	"sku":             "variant.sku",
	"price":           "variant.price",
	"visible":         "published",
	"discountMode":    "discount.mode",
	"discountValue":   "discount.value",
	"inventory":       "variant.inventoryQuantity",
	"weight":          "variant.weight",
	"brand":           "vendor",

	"productOptionName1":        "option1.name",
	"productOptionType1":        "option1.type",
	"productOptionDescription1": "option1.values",
	"productOptionName2":        "option2.name",
	"productOptionType2":        "option2.type",
	"productOptionDescription2": "option2.values",
	"productOptionName3":        "option3.name",
	"productOptionType3":        "option3.type",
	"productOptionDescription3": "option3.values",
	"productOptionName4":        "option4.name",
	"productOptionType4":        "option4.type",
	"productOptionDescription4": "option4.values",
	"productOptionName5":        "option5.name",
	"productOptionType5":        "option5.type",
	"productOptionDescription5": "option5.values",
	"productOptionName6":        "option6.name",
	"productOptionType6":        "option6.type",
	"productOptionDescription6": "option6.values",
}

// WixColumns is the recognized subset of the Wix catalog CSV header.
var WixColumns = []string{
	"handleId",
	"fieldType",
	"name",
	"description",
	"productImageUrl",
	"collection",
	"sku",
	"ribbon",
	"price",
	"visible",
	"discountMode",
	"discountValue",
	"inventory",
	"weight",
	"cost",
	"brand",
	"productOptionName1",
	"productOptionType1",
	"productOptionDescription1",
	"productOptionName2",
	"productOptionType2",
	"productOptionDescription2",
	"productOptionName3",
	"productOptionType3",
	"productOptionDescription3",
	"productOptionName4",
	"productOptionType4",
	"productOptionDescription4",
	"productOptionName5",
	"productOptionType5",
	"productOptionDescription5",
	"productOptionName6",
	"productOptionType6",
	"productOptionDescription6",
}
