// Package core wires the conversion pipeline together: it resolves a
// platform definition from the registry, runs the reader and parser,
// and hands the canonical products to builders and the exporter. All
// platform knowledge enters through registered definitions; core itself
// is platform-agnostic.
package core

import (
	"time"

	"github.com/google/uuid"

	"catbridge/internal/catalog"
	"catbridge/internal/parser"
)

// PlatformInfo describes a platform for discovery endpoints.
type PlatformInfo struct {
	Key     string   `json:"key"`
	Label   string   `json:"label"`
	Columns []string `json:"columns"`
}

// PlatformDefinition is everything core needs to import from and build
// for one platform. Definitions are registered at package init time by
// the platforms package.
type PlatformDefinition struct {
	Info PlatformInfo

	// NewParser constructs the platform's table parser.
	NewParser func(opts parser.Options) parser.Parser

	// Build renders finalized canonical products into the platform's
	// import payload shape.
	Build func(products []*catalog.Product) (any, error)
}

// ConversionResult is the outcome of one import batch.
type ConversionResult struct {
	BatchID  uuid.UUID          `json:"batchId"`
	Platform string             `json:"platform"`
	Filename string             `json:"filename,omitempty"`
	Products []*catalog.Product `json:"products"`
	Stats    parser.Stats       `json:"stats"`
	Duration time.Duration      `json:"-"`
}

// Conversion is the audit record persisted for one batch.
type Conversion struct {
	BatchID     uuid.UUID `json:"batchId"`
	Platform    string    `json:"platform"`
	Filename    string    `json:"filename,omitempty"`
	Products    int       `json:"products"`
	Variants    int       `json:"variants"`
	RowsTotal   int       `json:"rowsTotal"`
	RowsSkipped int       `json:"rowsSkipped"`
	DurationMS  int64     `json:"durationMs"`
	CreatedAt   time.Time `json:"createdAt"`
}
