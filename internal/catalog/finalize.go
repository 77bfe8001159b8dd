package catalog

// finalize.go turns an in-progress Product into its finalized form:
// invalid variants dropped, images deduplicated, option definitions
// reconciled against the variants that actually survived. After
// Finalize a Product is treated as immutable.

import "strings"

// FinalizeReport records what finalization changed, so callers can
// surface skip-and-count statistics instead of losing data silently.
type FinalizeReport struct {
	DroppedVariants  int  `json:"droppedVariants"`
	DroppedImages    int  `json:"droppedImages"`
	DroppedMetafield int  `json:"droppedMetafields"`
	SyntheticDefault bool `json:"syntheticDefault"`
}

// VariantValid reports whether a variant carries enough information to
// be sellable: a non-empty price, a non-empty SKU, or a first option
// value that is meaningful (non-empty and not the placeholder title).
func VariantValid(v Variant) bool {
	if strings.TrimSpace(v.Price) != "" {
		return true
	}
	if strings.TrimSpace(v.SKU) != "" {
		return true
	}
	first := strings.TrimSpace(v.OptionValues[0])
	return first != "" && !strings.EqualFold(first, DefaultVariantTitle)
}

// Finalize validates and deduplicates the product in place.
//
// When validate is false (diagnostic parsing) the validity predicate is
// not applied, but structural guarantees still hold: images are
// deduplicated, metafields without values are dropped, and the variant
// list is never left empty.
func (p *Product) Finalize(validate bool) FinalizeReport {
	var report FinalizeReport

	if validate {
		kept := p.Variants[:0]
		for _, v := range p.Variants {
			if VariantValid(v) {
				kept = append(kept, v)
			} else {
				report.DroppedVariants++
			}
		}
		p.Variants = kept
	}

	if len(p.Variants) == 0 {
		p.Variants = []Variant{DefaultVariant()}
		report.SyntheticDefault = true
	}

	report.DroppedImages = p.dedupeImages()
	report.DroppedMetafield = p.dropEmptyMetafields()
	p.reconcileOptions()

	return report
}

// dedupeImages collapses duplicate sources. The first occurrence wins
// and keeps its position; positions are then renumbered 1..n so they
// stay unique and dense.
func (p *Product) dedupeImages() int {
	if len(p.Images) == 0 {
		return 0
	}

	seen := make(map[string]bool, len(p.Images))
	kept := p.Images[:0]
	dropped := 0
	for _, img := range p.Images {
		src := strings.TrimSpace(img.Src)
		if src == "" || seen[src] {
			dropped++
			continue
		}
		seen[src] = true
		img.Src = src
		kept = append(kept, img)
	}

	for i := range kept {
		kept[i].Position = i + 1
	}
	p.Images = kept
	return dropped
}

// dropEmptyMetafields removes entries whose value is empty. Duplicate
// keys are preserved untouched.
func (p *Product) dropEmptyMetafields() int {
	if len(p.Metafields) == 0 {
		return 0
	}
	kept := p.Metafields[:0]
	dropped := 0
	for _, m := range p.Metafields {
		if strings.TrimSpace(m.Value) == "" {
			dropped++
			continue
		}
		if m.Type == "" {
			m.Type = MetafieldTypeSingleLineText
		}
		kept = append(kept, m)
	}
	p.Metafields = kept
	return dropped
}

// reconcileOptions enforces the option invariants: the option list is
// exactly as long as the deepest populated value slot across variants,
// and each definition's value domain is rebuilt from the surviving
// variants in first-seen order.
func (p *Product) reconcileOptions() {
	depth := 0
	for _, v := range p.Variants {
		for slot := MaxOptions - 1; slot >= 0; slot-- {
			if strings.TrimSpace(v.OptionValues[slot]) != "" {
				if slot+1 > depth {
					depth = slot + 1
				}
				break
			}
		}
	}

	if depth == 0 {
		p.Options = nil
		return
	}

	if len(p.Options) > depth {
		p.Options = p.Options[:depth]
	}
	for len(p.Options) < depth {
		p.Options = append(p.Options, OptionDefinition{})
	}

	for slot := 0; slot < depth; slot++ {
		seen := make(map[string]bool)
		values := make([]string, 0, len(p.Variants))
		for _, v := range p.Variants {
			val := strings.TrimSpace(v.OptionValues[slot])
			if val == "" || seen[val] {
				continue
			}
			seen[val] = true
			values = append(values, val)
		}
		p.Options[slot].Values = values
	}

	// Clear value slots beyond the reconciled depth so every variant
	// carries exactly len(Options) meaningful entries.
	for i := range p.Variants {
		for slot := depth; slot < MaxOptions; slot++ {
			p.Variants[i].OptionValues[slot] = ""
		}
	}
}
