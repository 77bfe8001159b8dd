// Package catalog defines the platform-neutral product model that every
// parser produces and every builder and exporter consumes. Nothing
// platform-specific is allowed past this boundary: option encodings,
// row groupings and vendor field names are resolved before a Product is
// constructed.
package catalog

// MaxOptions is the number of positional option slots a variant carries.
// The canonical model follows the three-slot convention of spreadsheet
// catalog schemas; platforms with more declared option axes are reduced
// during parsing.
const MaxOptions = 3

// Status is the publication state of a product.
type Status string

const (
	StatusActive Status = "active"
	StatusDraft  Status = "draft"
)

// InventoryPolicy controls selling behavior when inventory reaches zero.
type InventoryPolicy string

const (
	InventoryPolicyDeny     InventoryPolicy = "deny"
	InventoryPolicyContinue InventoryPolicy = "continue"
)

// WeightUnit is the unit for variant weights.
type WeightUnit string

const (
	WeightUnitKilograms WeightUnit = "kg"
	WeightUnitGrams     WeightUnit = "g"
	WeightUnitPounds    WeightUnit = "lb"
	WeightUnitOunces    WeightUnit = "oz"
)

// DefaultVariantTitle is the placeholder first-option value platforms
// emit for single-variant products. A variant whose only identifying
// trait is this placeholder is not considered meaningful on its own.
const DefaultVariantTitle = "Default Title"

// Product is the canonical record for one distinct handle within an
// import batch. It is built incrementally while rows are consumed and
// must be finalized (validated, deduplicated) before building or export.
type Product struct {
	Handle          string             `json:"handle"`
	Title           string             `json:"title"`
	BodyHTML        string             `json:"bodyHtml"`
	Vendor          string             `json:"vendor"`
	ProductType     string             `json:"productType"`
	ProductCategory string             `json:"productCategory"`
	Tags            []string           `json:"tags"`
	Status          Status             `json:"status"`
	Images          []Image            `json:"images"`
	Options         []OptionDefinition `json:"options"`
	Variants        []Variant          `json:"variants"`
	Metafields      []Metafield        `json:"metafields"`
}

// OptionDefinition is one named axis of variation together with the
// ordered domain of values it takes across all variants.
type OptionDefinition struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// Variant is one sellable combination of option values.
// OptionValues is positional: index i corresponds to Options[i] on the
// owning product, with unused trailing slots left as empty strings.
type Variant struct {
	OptionValues      [MaxOptions]string `json:"optionValues"`
	Price             string             `json:"price"`
	CompareAtPrice    string             `json:"compareAtPrice,omitempty"`
	SKU               string             `json:"sku"`
	Barcode           string             `json:"barcode"`
	Weight            float64            `json:"weight"`
	WeightUnit        WeightUnit         `json:"weightUnit"`
	InventoryQuantity int                `json:"inventoryQuantity"`
	InventoryPolicy   InventoryPolicy    `json:"inventoryPolicy"`
	RequiresShipping  bool               `json:"requiresShipping"`
	Taxable           bool               `json:"taxable"`
}

// Image is one product image. Position is 1-based display order.
type Image struct {
	Src      string `json:"src"`
	Position int    `json:"position"`
	Alt      string `json:"alt"`
}

// MetafieldTypeSingleLineText is the default metafield type applied when
// a source column carries no explicit type information.
const MetafieldTypeSingleLineText = "single_line_text_field"

// Metafield is a namespaced extension attribute outside the core schema.
// Keys are not required to be unique; duplicates are preserved as-is.
type Metafield struct {
	Namespace string `json:"namespace"`
	Key       string `json:"key"`
	Value     string `json:"value"`
	Type      string `json:"type"`
}

// NewProduct returns a Product with the given handle and defaults that
// keep later stages free of nil checks.
func NewProduct(handle string) *Product {
	return &Product{
		Handle: handle,
		Status: StatusActive,
		Tags:   []string{},
	}
}

// DefaultVariant is the synthetic fallback substituted when validation
// leaves a product with zero usable variants. The substitution is a
// documented contract, not silent data loss: every finalized product has
// at least one variant.
func DefaultVariant() Variant {
	return Variant{
		Price:            "0",
		WeightUnit:       WeightUnitKilograms,
		InventoryPolicy:  InventoryPolicyDeny,
		RequiresShipping: true,
		Taxable:          true,
	}
}

// OptionNames returns the product's option names in slot order.
func (p *Product) OptionNames() []string {
	names := make([]string, len(p.Options))
	for i, o := range p.Options {
		names[i] = o.Name
	}
	return names
}

// AddTag appends a tag unless the product already carries it.
// Order of first appearance is preserved for export fidelity.
func (p *Product) AddTag(tag string) {
	for _, t := range p.Tags {
		if t == tag {
			return
		}
	}
	p.Tags = append(p.Tags, tag)
}

// AddImage appends an image, assigning the next free position when the
// source did not specify one.
func (p *Product) AddImage(img Image) {
	if img.Src == "" {
		return
	}
	if img.Position <= 0 {
		img.Position = len(p.Images) + 1
	}
	p.Images = append(p.Images, img)
}
