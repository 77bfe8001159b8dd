package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"catbridge/internal/catalog"
	"catbridge/internal/export"
	"catbridge/internal/parser"
	"catbridge/internal/rowio"
)

// ErrUnknownPlatform is returned when a request names a platform key
// that no definition was registered for.
var ErrUnknownPlatform = errors.New("unknown platform")

// ConversionLog persists batch audit records. A nil log disables
// persistence; conversions still succeed without it.
type ConversionLog interface {
	Record(ctx context.Context, c Conversion) error
}

// Service runs conversions against the platform registry.
type Service struct {
	log     *slog.Logger
	history ConversionLog
	opts    parser.Options
}

// NewService builds a Service. history may be nil.
func NewService(log *slog.Logger, history ConversionLog, opts parser.Options) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{log: log, history: history, opts: opts}
}

// Platforms lists the registered platforms for discovery.
func (s *Service) Platforms() []PlatformInfo {
	defs := All()
	infos := make([]PlatformInfo, len(defs))
	for i, def := range defs {
		infos[i] = def.Info
	}
	return infos
}

// Convert reads one uploaded file and parses it with the named
// platform's parser. The returned products are finalized and ready for
// building or export.
func (s *Service) Convert(ctx context.Context, platform, filename string, r io.Reader) (*ConversionResult, error) {
	def, ok := Get(platform)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPlatform, platform)
	}

	start := time.Now()

	table, err := rowio.Read(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}

	parsed, err := def.NewParser(s.opts).Parse(table)
	if err != nil {
		return nil, fmt.Errorf("parse %s as %s: %w", filename, platform, err)
	}

	result := &ConversionResult{
		BatchID:  uuid.New(),
		Platform: platform,
		Filename: filename,
		Products: parsed.Products,
		Stats:    parsed.Stats,
		Duration: time.Since(start),
	}

	s.log.InfoContext(ctx, "conversion complete",
		"batch_id", result.BatchID,
		"platform", platform,
		"filename", filename,
		"products", len(result.Products),
		"rows_total", result.Stats.RowsTotal,
		"rows_skipped", result.Stats.RowsSkipped,
		"duration_ms", result.Duration.Milliseconds(),
	)

	s.record(ctx, result)
	return result, nil
}

// record persists the batch audit entry. Failures are logged, never
// surfaced: losing an audit row must not fail a conversion.
func (s *Service) record(ctx context.Context, result *ConversionResult) {
	if s.history == nil {
		return
	}

	variants := 0
	for _, p := range result.Products {
		variants += len(p.Variants)
	}

	err := s.history.Record(ctx, Conversion{
		BatchID:     result.BatchID,
		Platform:    result.Platform,
		Filename:    result.Filename,
		Products:    len(result.Products),
		Variants:    variants,
		RowsTotal:   result.Stats.RowsTotal,
		RowsSkipped: result.Stats.RowsSkipped,
		DurationMS:  result.Duration.Milliseconds(),
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		s.log.WarnContext(ctx, "recording conversion failed",
			"batch_id", result.BatchID, "error", err)
	}
}

// BuildPayloads renders finalized products into the named platform's
// import payload shape.
func (s *Service) BuildPayloads(platform string, products []*catalog.Product) (any, error) {
	def, ok := Get(platform)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPlatform, platform)
	}
	return def.Build(products)
}

// ExportCSV writes products in the interchange CSV layout.
func (s *Service) ExportCSV(w io.Writer, products []*catalog.Product) error {
	return export.ShopifyCSV(w, products)
}
