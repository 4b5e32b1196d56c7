package models

// StandardCategory classifies a regulatory standard by issuing body.
type StandardCategory string

const (
	CategoryFDA   StandardCategory = "fda"
	CategoryISO   StandardCategory = "iso"
	CategoryEU    StandardCategory = "eu"
	CategoryOther StandardCategory = "other"
)

// RegulatoryStandard is a named regulatory document broken into sections.
// The catalog loads these once at startup; they are never mutated.
type RegulatoryStandard struct {
	ID          string            `json:"id" yaml:"id"`
	Name        string            `json:"name" yaml:"name"`
	Description string            `json:"description" yaml:"description"`
	Authority   string            `json:"authority" yaml:"authority"`
	Category    StandardCategory  `json:"category" yaml:"category"`
	Sections    []StandardSection `json:"sections" yaml:"sections"`
}

// StandardSection is an addressable subdivision of a standard.
// Identity is (standard ID, section ID); section IDs are unique only
// within their parent standard.
type StandardSection struct {
	ID          string            `json:"id" yaml:"id"`
	Title       string            `json:"title" yaml:"title"`
	Content     string            `json:"content" yaml:"content"`
	Subsections []StandardSection `json:"subsections,omitempty" yaml:"subsections,omitempty"`
}

// Citation is a resolved reference from generated text back to a catalog
// section. Citations are derived per message and never persisted on their
// own.
type Citation struct {
	Standard string `json:"standard"`
	Section  string `json:"section"`
	Text     string `json:"text"`
	URL      string `json:"url,omitempty"`
}
