package builder

import (
	"errors"
	"testing"

	"catbridge/internal/catalog"
)

func finalized(t *testing.T, p *catalog.Product) *catalog.Product {
	t.Helper()
	p.Finalize(true)
	return p
}

func sampleProduct() *catalog.Product {
	p := catalog.NewProduct("classic-tee")
	p.Title = "Classic Tee"
	p.Vendor = "Acme"
	p.Tags = []string{"summer", "cotton"}
	p.Options = []catalog.OptionDefinition{{Name: "Size"}}
	p.Variants = []catalog.Variant{
		{OptionValues: [catalog.MaxOptions]string{"S"}, Price: "19.99", SKU: "TEE-S", InventoryQuantity: 3},
		{OptionValues: [catalog.MaxOptions]string{"M"}, Price: "17.99", CompareAtPrice: "19.99", SKU: "TEE-M"},
	}
	p.AddImage(catalog.Image{Src: "https://img/1.jpg"})
	p.Metafields = []catalog.Metafield{{Namespace: "custom", Key: "material", Value: "cotton"}}
	return p
}

// ---
// Shopify payloads
// ---

func TestBuildShopify(t *testing.T) {
	p := finalized(t, sampleProduct())

	payloads, err := BuildShopify([]*catalog.Product{p})
	if err != nil {
		t.Fatalf("BuildShopify: %v", err)
	}
	if len(payloads) != 1 {
		t.Fatalf("payloads = %d, want 1", len(payloads))
	}

	sp := payloads[0]
	if sp.Handle != "classic-tee" || sp.Status != "active" {
		t.Errorf("payload = %q / %q", sp.Handle, sp.Status)
	}
	if sp.Tags != "summer, cotton" {
		t.Errorf("tags = %q", sp.Tags)
	}
	if len(sp.Variants) != 2 {
		t.Fatalf("variants = %d, want 2", len(sp.Variants))
	}
	if sp.Variants[0].Option1 != "S" || sp.Variants[0].Price != "19.99" {
		t.Errorf("first variant = %+v", sp.Variants[0])
	}
	if sp.Variants[1].CompareAtPrice != "19.99" {
		t.Errorf("compare at = %q", sp.Variants[1].CompareAtPrice)
	}
	if len(sp.Metafields) != 1 || sp.Metafields[0].Key != "material" {
		t.Errorf("metafields = %+v", sp.Metafields)
	}
}

func TestBuildRejectsUnfinalized(t *testing.T) {
	p := catalog.NewProduct("empty")

	_, err := BuildShopify([]*catalog.Product{p})
	var noVariants *ErrNoVariants
	if !errors.As(err, &noVariants) {
		t.Fatalf("err = %v, want ErrNoVariants", err)
	}
	if noVariants.Handle != "empty" {
		t.Errorf("handle = %q", noVariants.Handle)
	}
}

// ---
// WooCommerce payloads
// ---

func TestBuildWooCommerceVariable(t *testing.T) {
	p := finalized(t, sampleProduct())

	payloads, err := BuildWooCommerce([]*catalog.Product{p})
	if err != nil {
		t.Fatalf("BuildWooCommerce: %v", err)
	}

	wp := payloads[0]
	if wp.Type != "variable" {
		t.Fatalf("type = %q, want variable", wp.Type)
	}
	if len(wp.Attributes) != 1 || wp.Attributes[0].Name != "Size" {
		t.Fatalf("attributes = %+v", wp.Attributes)
	}
	if got := wp.Attributes[0].Options; len(got) != 2 || got[0] != "S" {
		t.Errorf("attribute options = %v", got)
	}
	if len(wp.Variations) != 2 {
		t.Fatalf("variations = %d, want 2", len(wp.Variations))
	}

	// Markdown inverts: compare-at is the regular price, canonical
	// price is the sale price.
	m := wp.Variations[1]
	if m.RegularPrice != "19.99" || m.SalePrice != "17.99" {
		t.Errorf("marked-down variation = %+v", m)
	}
	s := wp.Variations[0]
	if s.RegularPrice != "19.99" || s.SalePrice != "" {
		t.Errorf("full-price variation = %+v", s)
	}
}

func TestBuildWooCommerceSimple(t *testing.T) {
	p := catalog.NewProduct("mug")
	p.Title = "Mug"
	p.Variants = []catalog.Variant{{Price: "8.50", SKU: "MUG-1", InventoryQuantity: 4}}
	finalized(t, p)

	payloads, err := BuildWooCommerce([]*catalog.Product{p})
	if err != nil {
		t.Fatalf("BuildWooCommerce: %v", err)
	}

	wp := payloads[0]
	if wp.Type != "simple" {
		t.Fatalf("type = %q, want simple", wp.Type)
	}
	if wp.RegularPrice != "8.50" || wp.SKU != "MUG-1" || wp.StockQuantity != 4 {
		t.Errorf("payload = %+v", wp)
	}
	if len(wp.Variations) != 0 {
		t.Errorf("simple product has variations: %+v", wp.Variations)
	}
}

// ---
// Wix payloads
// ---

func TestBuildWix(t *testing.T) {
	p := finalized(t, sampleProduct())

	payloads, err := BuildWix([]*catalog.Product{p})
	if err != nil {
		t.Fatalf("BuildWix: %v", err)
	}

	wp := payloads[0]
	if wp.HandleID != "classic-tee" || !wp.Visible {
		t.Errorf("payload = %+v", wp)
	}
	if len(wp.Options) != 1 || wp.Options[0].Name != "Size" {
		t.Fatalf("options = %+v", wp.Options)
	}
	if wp.Extra["custom.material"] != "cotton" {
		t.Errorf("extra = %+v", wp.Extra)
	}

	// Lead variant has no compare-at, so no discount block.
	if wp.Price != "19.99" || wp.Discount != nil {
		t.Errorf("pricing = %q / %+v", wp.Price, wp.Discount)
	}
}

func TestBuildWixDiscountFromCompareAt(t *testing.T) {
	p := catalog.NewProduct("sale-tee")
	p.Title = "Sale Tee"
	p.Variants = []catalog.Variant{{Price: "80", CompareAtPrice: "100", SKU: "ST-1"}}
	finalized(t, p)

	payloads, err := BuildWix([]*catalog.Product{p})
	if err != nil {
		t.Fatalf("BuildWix: %v", err)
	}

	wp := payloads[0]
	if wp.Price != "100" {
		t.Errorf("price = %q, want 100", wp.Price)
	}
	if wp.Discount == nil || wp.Discount.Mode != "AMOUNT" || wp.Discount.Value != "20" {
		t.Errorf("discount = %+v", wp.Discount)
	}
}
