// Package parser turns platform-shaped row tables into canonical
// products. Each supported platform has its own parser because the
// platforms disagree on row semantics: one groups continuation rows
// under a shared handle, one links typed parent and child rows, one
// encodes a whole product in a single row.
//
// Parsers follow a skip-and-count policy: a malformed row is skipped
// and reflected in Stats, never fatal. Only structural failures (no
// header, combination explosion) abort a batch.
package parser

import (
	"catbridge/internal/catalog"
	"catbridge/internal/rowio"
)

// Parser converts one platform's table shape into canonical products.
type Parser interface {
	Parse(t *rowio.Table) (*Result, error)
}

// Options tunes a parse run.
type Options struct {
	// SkipValidation disables the variant validity predicate during
	// finalization, for diagnostic passes that want to see everything
	// the file contained.
	SkipValidation bool

	// MaxCombinations caps the synthesized variant matrix for platforms
	// that declare option domains instead of listing variants. 0 means
	// catalog.DefaultMaxCombinations, negative means unlimited.
	MaxCombinations int
}

// Stats counts what a parse run consumed, skipped and repaired.
type Stats struct {
	RowsTotal         int `json:"rowsTotal"`
	RowsSkipped       int `json:"rowsSkipped"`
	OrphanVariations  int `json:"orphanVariations"`
	VariantsDropped   int `json:"variantsDropped"`
	ImagesDropped     int `json:"imagesDropped"`
	SyntheticDefaults int `json:"syntheticDefaults"`
	MetafieldsDropped int `json:"metafieldsDropped"`
}

// Result is the outcome of parsing one table: finalized products in
// first-appearance order, plus the run's skip-and-count statistics.
type Result struct {
	Products []*catalog.Product `json:"products"`
	Stats    Stats              `json:"stats"`
}

// absorb folds a finalization report into the run statistics.
func (s *Stats) absorb(r catalog.FinalizeReport) {
	s.VariantsDropped += r.DroppedVariants
	s.ImagesDropped += r.DroppedImages
	s.MetafieldsDropped += r.DroppedMetafield
	if r.SyntheticDefault {
		s.SyntheticDefaults++
	}
}

// finalizeAll finalizes every product in place and accumulates the
// per-product reports.
func finalizeAll(products []*catalog.Product, opts Options, stats *Stats) {
	for _, p := range products {
		stats.absorb(p.Finalize(!opts.SkipValidation))
	}
}
