package core

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"catbridge/internal/builder"
	"catbridge/internal/catalog"
	"catbridge/internal/parser"
	"catbridge/internal/schema"
)

func registerShopify(t *testing.T) {
	t.Helper()
	Clear()
	t.Cleanup(Clear)
	Register(PlatformDefinition{
		Info: PlatformInfo{Key: schema.PlatformShopify, Label: "Shopify", Columns: schema.ShopifyColumns},
		NewParser: func(opts parser.Options) parser.Parser {
			return parser.NewShopifyParser(opts)
		},
		Build: func(products []*catalog.Product) (any, error) {
			return builder.BuildShopify(products)
		},
	})
}

type captureLog struct {
	entries []Conversion
	err     error
}

func (c *captureLog) Record(_ context.Context, conv Conversion) error {
	c.entries = append(c.entries, conv)
	return c.err
}

const sampleCSV = `Handle,Title,Option1 Name,Option1 Value,Variant Price
tee,Tee,Size,S,19.99
tee,,,M,19.99
`

// ---
// Convert
// ---

func TestServiceConvert(t *testing.T) {
	registerShopify(t)
	log := &captureLog{}
	svc := NewService(nil, log, parser.Options{})

	result, err := svc.Convert(context.Background(), "shopify", "products.csv", strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}

	if result.BatchID == uuid.Nil {
		t.Error("batch ID not assigned")
	}
	if len(result.Products) != 1 || len(result.Products[0].Variants) != 2 {
		t.Fatalf("unexpected products: %+v", result.Products)
	}
	if result.Stats.RowsTotal != 2 {
		t.Errorf("rows total = %d, want 2", result.Stats.RowsTotal)
	}

	if len(log.entries) != 1 {
		t.Fatalf("history entries = %d, want 1", len(log.entries))
	}
	entry := log.entries[0]
	if entry.BatchID != result.BatchID || entry.Products != 1 || entry.Variants != 2 {
		t.Errorf("history entry = %+v", entry)
	}
}

func TestServiceConvertUnknownPlatform(t *testing.T) {
	registerShopify(t)
	svc := NewService(nil, nil, parser.Options{})

	_, err := svc.Convert(context.Background(), "bigcommerce", "x.csv", strings.NewReader(sampleCSV))
	if !errors.Is(err, ErrUnknownPlatform) {
		t.Fatalf("err = %v, want ErrUnknownPlatform", err)
	}
	if got := MapError(err).Code; got != "PLT001" {
		t.Errorf("mapped code = %q, want PLT001", got)
	}
}

func TestServiceConvertEmptyInput(t *testing.T) {
	registerShopify(t)
	svc := NewService(nil, nil, parser.Options{})

	_, err := svc.Convert(context.Background(), "shopify", "empty.csv", strings.NewReader(""))
	if err == nil {
		t.Fatal("expected error for empty input")
	}
	if got := MapError(err).Code; got != "FILE001" {
		t.Errorf("mapped code = %q, want FILE001", got)
	}
}

func TestServiceHistoryFailureDoesNotFailConversion(t *testing.T) {
	registerShopify(t)
	log := &captureLog{err: errors.New("connection refused")}
	svc := NewService(nil, log, parser.Options{})

	result, err := svc.Convert(context.Background(), "shopify", "products.csv", strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if len(result.Products) != 1 {
		t.Errorf("products = %d, want 1", len(result.Products))
	}
}

// ---
// Build and registry
// ---

func TestServiceBuildPayloads(t *testing.T) {
	registerShopify(t)
	svc := NewService(nil, nil, parser.Options{})

	result, err := svc.Convert(context.Background(), "shopify", "products.csv", strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}

	payloads, err := svc.BuildPayloads("shopify", result.Products)
	if err != nil {
		t.Fatalf("BuildPayloads: %v", err)
	}
	shopify, ok := payloads.([]builder.ShopifyProduct)
	if !ok {
		t.Fatalf("payload type = %T", payloads)
	}
	if len(shopify) != 1 || shopify[0].Handle != "tee" {
		t.Errorf("payloads = %+v", shopify)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	registerShopify(t)

	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	Register(PlatformDefinition{
		Info: PlatformInfo{Key: schema.PlatformShopify},
		NewParser: func(opts parser.Options) parser.Parser {
			return parser.NewShopifyParser(opts)
		},
		Build: func(products []*catalog.Product) (any, error) {
			return builder.BuildShopify(products)
		},
	})
}

func TestPlatformsSorted(t *testing.T) {
	Clear()
	t.Cleanup(Clear)
	for _, key := range []string{"wix", "shopify", "woocommerce"} {
		Register(PlatformDefinition{
			Info: PlatformInfo{Key: key},
			NewParser: func(opts parser.Options) parser.Parser {
				return parser.NewShopifyParser(opts)
			},
			Build: func(products []*catalog.Product) (any, error) {
				return builder.BuildShopify(products)
			},
		})
	}

	svc := NewService(nil, nil, parser.Options{})
	infos := svc.Platforms()
	want := []string{"shopify", "wix", "woocommerce"}
	if len(infos) != len(want) {
		t.Fatalf("platforms = %d, want %d", len(infos), len(want))
	}
	for i, w := range want {
		if infos[i].Key != w {
			t.Errorf("platform %d = %q, want %q", i, infos[i].Key, w)
		}
	}
}
