package normalize

import (
	"testing"

	"catbridge/internal/rowio"
	"catbridge/internal/schema"
)

// ---
// Mapped columns
// ---

func TestApplyMappedColumns(t *testing.T) {
	m := NewMapper(schema.ShopifyMapping)

	row := m.Apply(rowio.Record{
		"Handle":        "classic-tee",
		"Title":         "Classic Tee",
		"Variant Price": "19.99",
		"Option1 Name":  "Size",
		"Option1 Value": "M",
	})

	if got := row.Str("handle"); got != "classic-tee" {
		t.Errorf("handle = %q, want %q", got, "classic-tee")
	}
	if got := row.Str("variant.price"); got != "19.99" {
		t.Errorf("variant.price = %q, want %q", got, "19.99")
	}
	if got := row.Str("option1.value"); got != "M" {
		t.Errorf("option1.value = %q, want %q", got, "M")
	}
	if len(row.Metafields) != 0 {
		t.Errorf("metafields = %d, want 0", len(row.Metafields))
	}
}

func TestApplyCaseInsensitiveColumns(t *testing.T) {
	m := NewMapper(schema.ShopifyMapping)

	row := m.Apply(rowio.Record{
		"handle":        "mug",
		"VARIANT PRICE": "8.00",
	})

	if got := row.Str("handle"); got != "mug" {
		t.Errorf("handle = %q, want %q", got, "mug")
	}
	if got := row.Str("variant.price"); got != "8.00" {
		t.Errorf("variant.price = %q, want %q", got, "8.00")
	}
}

func TestApplyCleansCells(t *testing.T) {
	m := NewMapper(schema.ShopifyMapping)

	row := m.Apply(rowio.Record{
		"Handle":      `="0001"`,
		"Variant SKU": "  TEE-M  ",
	})

	if got := row.Str("handle"); got != "0001" {
		t.Errorf("handle = %q, want %q", got, "0001")
	}
	if got := row.Str("variant.sku"); got != "TEE-M" {
		t.Errorf("variant.sku = %q, want %q", got, "TEE-M")
	}
}

func TestApplyNestedSiblings(t *testing.T) {
	m := NewMapper(schema.WooCommerceMapping)

	row := m.Apply(rowio.Record{
		"Regular price": "25",
		"Sale price":    "20",
		"SKU":           "HAT-1",
	})

	if got := row.Str("variant.price"); got != "25" {
		t.Errorf("variant.price = %q, want %q", got, "25")
	}
	if got := row.Str("variant.salePrice"); got != "20" {
		t.Errorf("variant.salePrice = %q, want %q", got, "20")
	}
	if got := row.Str("variant.sku"); got != "HAT-1" {
		t.Errorf("variant.sku = %q, want %q", got, "HAT-1")
	}
}

// ---
// Unmapped columns become metafields
// ---

func TestApplyMetafieldColumn(t *testing.T) {
	m := NewMapper(schema.ShopifyMapping)

	row := m.Apply(rowio.Record{
		"Handle":                             "tee",
		"product.metafields.custom.material": "cotton",
	})

	if len(row.Metafields) != 1 {
		t.Fatalf("metafields = %d, want 1", len(row.Metafields))
	}
	mf := row.Metafields[0]
	if mf.Namespace != "custom" || mf.Key != "material" || mf.Value != "cotton" {
		t.Errorf("metafield = %+v", mf)
	}
	if mf.Type != "single_line_text_field" {
		t.Errorf("type = %q, want single_line_text_field", mf.Type)
	}
}

func TestApplyCustomColumnSanitizedKey(t *testing.T) {
	m := NewMapper(schema.ShopifyMapping)

	row := m.Apply(rowio.Record{
		"Handle":     "tee",
		"Gift Wrap?": "yes",
	})

	if len(row.Metafields) != 1 {
		t.Fatalf("metafields = %d, want 1", len(row.Metafields))
	}
	mf := row.Metafields[0]
	if mf.Namespace != DefaultNamespace {
		t.Errorf("namespace = %q, want %q", mf.Namespace, DefaultNamespace)
	}
	if mf.Key != "gift_wrap_" {
		t.Errorf("key = %q, want %q", mf.Key, "gift_wrap_")
	}
	if mf.Value != "yes" {
		t.Errorf("value = %q, want %q", mf.Value, "yes")
	}
}

func TestApplyEmptyUnmappedCellDropped(t *testing.T) {
	m := NewMapper(schema.ShopifyMapping)

	row := m.Apply(rowio.Record{
		"Handle":                             "tee",
		"Gift Wrap?":                         "",
		"product.metafields.custom.material": "   ",
	})

	if len(row.Metafields) != 0 {
		t.Errorf("metafields = %d, want 0", len(row.Metafields))
	}
}

// ---
// Helpers
// ---

func TestSanitizeKey(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Gift Wrap?", "gift_wrap_"},
		{"Color", "color"},
		{"Meta: _origin", "meta___origin"},
		{"Size (EU)", "size__eu_"},
		{"abc123", "abc123"},
	}
	for _, tt := range tests {
		if got := SanitizeKey(tt.in); got != tt.want {
			t.Errorf("SanitizeKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMetafieldPath(t *testing.T) {
	tests := []struct {
		col     string
		ns, key string
		ok      bool
	}{
		{"product.metafields.custom.material", "custom", "material", true},
		{"variant.metafields.specs.fit", "specs", "fit", true},
		{"product.metafields.my-ns.care.instructions", "my-ns", "care.instructions", true},
		{"Variant Price", "", "", false},
		{"metafields.custom.material", "", "", false},
	}
	for _, tt := range tests {
		ns, key, ok := metafieldPath(tt.col)
		if ns != tt.ns || key != tt.key || ok != tt.ok {
			t.Errorf("metafieldPath(%q) = (%q, %q, %v), want (%q, %q, %v)",
				tt.col, ns, key, ok, tt.ns, tt.key, tt.ok)
		}
	}
}

func TestStrMissingPath(t *testing.T) {
	m := NewMapper(schema.ShopifyMapping)
	row := m.Apply(rowio.Record{"Handle": "tee"})

	if got := row.Str("variant.price"); got != "" {
		t.Errorf("missing path = %q, want empty", got)
	}
	if got := row.Str("handle.nested.deeper"); got != "" {
		t.Errorf("non-object path = %q, want empty", got)
	}
}
