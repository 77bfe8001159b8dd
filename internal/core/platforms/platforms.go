// Package platforms registers the supported platform definitions.
// Import it for side effects to populate the core registry:
//
//	import _ "catbridge/internal/core/platforms"
package platforms

import (
	"catbridge/internal/builder"
	"catbridge/internal/catalog"
	"catbridge/internal/core"
	"catbridge/internal/parser"
	"catbridge/internal/schema"
)

func init() {
	core.Register(core.PlatformDefinition{
		Info: core.PlatformInfo{
			Key:     schema.PlatformShopify,
			Label:   "Shopify",
			Columns: schema.ShopifyColumns,
		},
		NewParser: func(opts parser.Options) parser.Parser {
			return parser.NewShopifyParser(opts)
		},
		Build: func(products []*catalog.Product) (any, error) {
			return builder.BuildShopify(products)
		},
	})

	core.Register(core.PlatformDefinition{
		Info: core.PlatformInfo{
			Key:     schema.PlatformWooCommerce,
			Label:   "WooCommerce",
			Columns: schema.WooCommerceColumns,
		},
		NewParser: func(opts parser.Options) parser.Parser {
			return parser.NewWooCommerceParser(opts)
		},
		Build: func(products []*catalog.Product) (any, error) {
			return builder.BuildWooCommerce(products)
		},
	})

	core.Register(core.PlatformDefinition{
		Info: core.PlatformInfo{
			Key:     schema.PlatformWix,
			Label:   "Wix",
			Columns: schema.WixColumns,
		},
		NewParser: func(opts parser.Options) parser.Parser {
			return parser.NewWixParser(opts)
		},
		Build: func(products []*catalog.Product) (any, error) {
			return builder.BuildWix(products)
		},
	})
}
