package parser

import (
	"testing"
)

// ---
// Parent and child rows
// ---

func TestWooCommerceVariableWithVariations(t *testing.T) {
	const csv = `ID,Type,SKU,Name,Published,Parent,Regular price,Sale price,Attribute 1 name,Attribute 1 value(s)
100,variable,HOODIE,Zip Hoodie,1,,,,Size,"S, M"
101,variation,HOODIE-S,,1,id:100,45.00,,Size,S
102,variation,HOODIE-M,,1,HOODIE,45.00,40.00,Size,M
`
	result, err := NewWooCommerceParser(Options{}).Parse(mustTable(t, csv))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(result.Products) != 1 {
		t.Fatalf("products = %d, want 1", len(result.Products))
	}

	hoodie := result.Products[0]
	if hoodie.Handle != "zip-hoodie" {
		t.Errorf("handle = %q, want zip-hoodie", hoodie.Handle)
	}
	if len(hoodie.Variants) != 2 {
		t.Fatalf("variants = %d, want 2", len(hoodie.Variants))
	}
	if got := hoodie.Variants[0].OptionValues[0]; got != "S" {
		t.Errorf("first variant option = %q, want S", got)
	}

	// Sale price becomes the selling price, regular price moves to
	// compare-at.
	m := hoodie.Variants[1]
	if m.Price != "40" || m.CompareAtPrice != "45" {
		t.Errorf("marked-down variant = price %q compareAt %q", m.Price, m.CompareAtPrice)
	}
	s := hoodie.Variants[0]
	if s.Price != "45" || s.CompareAtPrice != "" {
		t.Errorf("full-price variant = price %q compareAt %q", s.Price, s.CompareAtPrice)
	}

	if len(hoodie.Options) != 1 || hoodie.Options[0].Name != "Size" {
		t.Fatalf("options = %+v", hoodie.Options)
	}
}

func TestWooCommerceOrphanVariationCounted(t *testing.T) {
	const csv = `ID,Type,SKU,Name,Published,Parent,Regular price,Attribute 1 name,Attribute 1 value(s)
100,variable,SHIRT,Shirt,1,,,Size,"S, M"
101,variation,SHIRT-S,,1,id:100,20.00,Size,S
102,variation,LOST-1,,1,id:999,20.00,Size,M
`
	result, err := NewWooCommerceParser(Options{}).Parse(mustTable(t, csv))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if result.Stats.OrphanVariations != 1 {
		t.Errorf("orphans = %d, want 1", result.Stats.OrphanVariations)
	}
	if len(result.Products) != 1 || len(result.Products[0].Variants) != 1 {
		t.Errorf("surviving products/variants wrong: %+v", result.Products)
	}
}

func TestWooCommerceSimpleProduct(t *testing.T) {
	const csv = `ID,Type,SKU,Name,Published,Regular price,Stock,Images,Tags
7,simple,MUG-1,Coffee Mug,1,9.50,25,"https://img/a.jpg, https://img/b.jpg","kitchen, gift"
`
	result, err := NewWooCommerceParser(Options{}).Parse(mustTable(t, csv))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(result.Products) != 1 {
		t.Fatalf("products = %d, want 1", len(result.Products))
	}

	mug := result.Products[0]
	if mug.Handle != "coffee-mug" {
		t.Errorf("handle = %q", mug.Handle)
	}
	if len(mug.Variants) != 1 {
		t.Fatalf("variants = %d, want 1", len(mug.Variants))
	}
	if v := mug.Variants[0]; v.Price != "9.5" || v.InventoryQuantity != 25 {
		t.Errorf("variant = %+v", v)
	}
	if len(mug.Images) != 2 {
		t.Errorf("images = %d, want 2", len(mug.Images))
	}
	if len(mug.Tags) != 2 || mug.Tags[0] != "kitchen" {
		t.Errorf("tags = %v", mug.Tags)
	}
}

// ---
// Status, metadata, handles
// ---

func TestWooCommercePublishedFlag(t *testing.T) {
	const csv = `ID,Type,SKU,Name,Published,Regular price
1,simple,A,Live,1,5
2,simple,B,Private,0,5
3,simple,C,Draft,-1,5
`
	result, err := NewWooCommerceParser(Options{}).Parse(mustTable(t, csv))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	want := []string{"active", "draft", "draft"}
	for i, w := range want {
		if got := string(result.Products[i].Status); got != w {
			t.Errorf("product %d status = %q, want %q", i, got, w)
		}
	}
}

func TestWooCommerceMetaColumnsPreserved(t *testing.T) {
	const csv = `ID,Type,SKU,Name,Published,Regular price,Meta: _origin
1,simple,A,Thing,1,5,imported
`
	result, err := NewWooCommerceParser(Options{}).Parse(mustTable(t, csv))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	mfs := result.Products[0].Metafields
	if len(mfs) != 1 {
		t.Fatalf("metafields = %+v, want 1", mfs)
	}
	if mfs[0].Key != "meta___origin" || mfs[0].Value != "imported" {
		t.Errorf("metafield = %+v", mfs[0])
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Zip Hoodie", "zip-hoodie"},
		{"  Café  Crème ", "caf-cr-me"},
		{"A/B Test!", "a-b-test"},
		{"already-clean", "already-clean"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
