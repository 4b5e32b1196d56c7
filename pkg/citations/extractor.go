// Package citations mines regulation references out of generated text and
// resolves them against the standards catalog.
//
// This is advisory text-mining over unstructured LLM output, not a parser:
// unrecognized phrasings are missed and coincidental digit sequences can
// match. References that do not resolve to a real catalog section are
// silently dropped. Both behaviors are deliberate.
package citations

import (
	"fmt"
	"regexp"

	"github.com/reglens-inc/reglens-engine/pkg/catalog"
	"github.com/reglens-inc/reglens-engine/pkg/models"
)

var (
	// "21 CFR 820.30", whitespace-tolerant, case-insensitive
	fdaPattern = regexp.MustCompile(`(?i)21\s*CFR\s*820\.(\d+)`)

	// "ISO 13485:2016 Section 7.3" with optional year and separators
	isoPattern = regexp.MustCompile(`(?i)ISO\s*13485[:\s]*(?:2016)?[,\s]*Section\s*(\d+\.?\d*)`)

	// "EU MDR Article 61" or just "MDR Article 61"
	mdrPattern = regexp.MustCompile(`(?i)(?:EU\s*)?MDR\s*Article\s*(\d+)`)
)

// Extractor resolves pattern matches against a standards catalog.
type Extractor struct {
	catalog *catalog.Catalog
}

// NewExtractor creates an Extractor backed by the given catalog.
func NewExtractor(c *catalog.Catalog) *Extractor {
	return &Extractor{catalog: c}
}

// Extract scans text for regulation references and returns resolved
// citations. The three passes run in fixed order (FDA, ISO, EU MDR) and
// their results are concatenated. There is no deduplication: a reference
// repeated in the text, or the same section cited through two phrasings,
// yields multiple entries.
func (e *Extractor) Extract(text string) []models.Citation {
	var citations []models.Citation
	citations = append(citations, e.extractFDA(text)...)
	citations = append(citations, e.extractISO(text)...)
	citations = append(citations, e.extractMDR(text)...)
	return citations
}

func (e *Extractor) extractFDA(text string) []models.Citation {
	var out []models.Citation
	for _, m := range fdaPattern.FindAllStringSubmatch(text, -1) {
		sectionID := "820." + m[1]
		section, ok := e.catalog.FindSection(catalog.StandardFDAQSR, sectionID)
		if !ok {
			continue
		}
		out = append(out, models.Citation{
			Standard: "FDA QSR",
			Section:  sectionID,
			Text:     section.Title,
		})
	}
	return out
}

func (e *Extractor) extractISO(text string) []models.Citation {
	var out []models.Citation
	for _, m := range isoPattern.FindAllStringSubmatch(text, -1) {
		sectionID := m[1]
		section, ok := e.catalog.FindSection(catalog.StandardISO, sectionID)
		if !ok {
			continue
		}
		out = append(out, models.Citation{
			Standard: "ISO 13485:2016",
			Section:  sectionID,
			Text:     section.Title,
		})
	}
	return out
}

func (e *Extractor) extractMDR(text string) []models.Citation {
	var out []models.Citation
	for _, m := range mdrPattern.FindAllStringSubmatch(text, -1) {
		articleNum := m[1]
		section, ok := e.catalog.FindSection(catalog.StandardEUMDR, "article-"+articleNum)
		if !ok {
			continue
		}
		out = append(out, models.Citation{
			Standard: "EU MDR",
			Section:  fmt.Sprintf("Article %s", articleNum),
			Text:     section.Title,
		})
	}
	return out
}
