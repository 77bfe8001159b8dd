// Package schema declares the column vocabularies of the supported
// catalog export formats and how each maps onto canonical field paths.
//
// A Mapping is consumed by the normalize package: mapped columns land
// on canonical paths (dotted paths produce nested objects), unmapped
// columns are preserved as metafields so no source information is lost.
package schema

// Mapping maps a platform's column names onto canonical field paths.
// Paths on the right-hand side use dots for nesting ("variant.price").
type Mapping map[string]string

// Platform keys, used by the registry and the HTTP surface.
const (
	PlatformShopify     = "shopify"
	PlatformWooCommerce = "woocommerce"
	PlatformWix         = "wix"
)
