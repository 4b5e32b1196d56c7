// Package catalog holds the read-only reference dataset of regulatory
// standards. The dataset is embedded in the binary and loaded once; all
// lookups are over in-memory slices.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/reglens-inc/reglens-engine/pkg/models"
)

//go:embed data.yaml
var dataYAML []byte

// Well-known standard IDs referenced by the citation extractor.
const (
	StandardFDAQSR = "fda-qsr"
	StandardISO    = "iso-13485"
	StandardEUMDR  = "eu-mdr"
)

// Catalog provides lookup and search over the embedded standards dataset.
type Catalog struct {
	standards []models.RegulatoryStandard
	byID      map[string]*models.RegulatoryStandard
}

type dataFile struct {
	Standards []models.RegulatoryStandard `yaml:"standards"`
}

// Load parses the embedded dataset and builds lookup indexes.
func Load() (*Catalog, error) {
	var df dataFile
	if err := yaml.Unmarshal(dataYAML, &df); err != nil {
		return nil, fmt.Errorf("failed to parse standards dataset: %w", err)
	}
	if len(df.Standards) == 0 {
		return nil, fmt.Errorf("standards dataset is empty")
	}

	c := &Catalog{
		standards: df.Standards,
		byID:      make(map[string]*models.RegulatoryStandard, len(df.Standards)),
	}
	for i := range c.standards {
		s := &c.standards[i]
		if _, exists := c.byID[s.ID]; exists {
			return nil, fmt.Errorf("duplicate standard id %q in dataset", s.ID)
		}
		c.byID[s.ID] = s
	}
	return c, nil
}

// Standards returns all standards in catalog declaration order.
func (c *Catalog) Standards() []models.RegulatoryStandard {
	return c.standards
}

// GetStandardByID returns the standard with the given ID.
func (c *Catalog) GetStandardByID(id string) (*models.RegulatoryStandard, bool) {
	s, ok := c.byID[id]
	return s, ok
}

// FindSection returns the section with the given ID within the given
// standard. Both lookups are exact-match.
func (c *Catalog) FindSection(standardID, sectionID string) (*models.StandardSection, bool) {
	s, ok := c.byID[standardID]
	if !ok {
		return nil, false
	}
	for i := range s.Sections {
		if s.Sections[i].ID == sectionID {
			return &s.Sections[i], true
		}
	}
	return nil, false
}

// SearchStandards returns standards whose name, description, or any
// section title/content contains the query, case-insensitively. Results
// keep catalog declaration order; there is no relevance ranking. An empty
// query returns no results.
func (c *Catalog) SearchStandards(query string) []models.RegulatoryStandard {
	if query == "" {
		return nil
	}
	q := strings.ToLower(query)

	var matches []models.RegulatoryStandard
	for _, s := range c.standards {
		if standardMatches(&s, q) {
			matches = append(matches, s)
		}
	}
	return matches
}

func standardMatches(s *models.RegulatoryStandard, q string) bool {
	if strings.Contains(strings.ToLower(s.Name), q) ||
		strings.Contains(strings.ToLower(s.Description), q) {
		return true
	}
	for _, sec := range s.Sections {
		if strings.Contains(strings.ToLower(sec.Title), q) ||
			strings.Contains(strings.ToLower(sec.Content), q) {
			return true
		}
	}
	return false
}

// contextEntry is the per-standard shape serialized into prompts.
type contextEntry struct {
	ID       string             `json:"id"`
	Name     string             `json:"name"`
	Sections []contextSectionID `json:"sections"`
}

type contextSectionID struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// ContextSummary serializes standard IDs, names, and section IDs/titles as
// JSON for embedding into the assistant prompt. Section content is
// deliberately omitted to bound prompt size.
func (c *Catalog) ContextSummary() string {
	entries := make([]contextEntry, 0, len(c.standards))
	for _, s := range c.standards {
		e := contextEntry{ID: s.ID, Name: s.Name}
		for _, sec := range s.Sections {
			e.Sections = append(e.Sections, contextSectionID{ID: sec.ID, Title: sec.Title})
		}
		entries = append(entries, e)
	}

	out, err := json.Marshal(entries)
	if err != nil {
		// entries contains only strings; Marshal cannot fail on it
		return "[]"
	}
	return string(out)
}
