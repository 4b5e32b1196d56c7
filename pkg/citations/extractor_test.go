package citations

import (
	"reflect"
	"testing"

	"github.com/reglens-inc/reglens-engine/pkg/catalog"
	"github.com/reglens-inc/reglens-engine/pkg/models"
)

func newTestExtractor(t *testing.T) *Extractor {
	t.Helper()
	c, err := catalog.Load()
	if err != nil {
		t.Fatalf("catalog.Load failed: %v", err)
	}
	return NewExtractor(c)
}

func TestExtract_AllThreeAuthorities(t *testing.T) {
	e := newTestExtractor(t)

	text := "See 21 CFR 820.30 and ISO 13485:2016 Section 7.3 and MDR Article 61"
	got := e.Extract(text)

	want := []models.Citation{
		{Standard: "FDA QSR", Section: "820.30", Text: "Design Controls"},
		{Standard: "ISO 13485:2016", Section: "7.3", Text: "Design and Development"},
		{Standard: "EU MDR", Section: "Article 61", Text: "Clinical Evaluation"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract mismatch:\n got  %+v\n want %+v", got, want)
	}
}

func TestExtract_FixedPassOrder(t *testing.T) {
	e := newTestExtractor(t)

	// MDR mentioned first in the text, but FDA pass always runs first
	text := "EU MDR Article 10 applies, as does 21 CFR 820.20."
	got := e.Extract(text)

	if len(got) != 2 {
		t.Fatalf("expected 2 citations, got %d: %+v", len(got), got)
	}
	if got[0].Standard != "FDA QSR" || got[1].Standard != "EU MDR" {
		t.Errorf("expected FDA before EU MDR, got %+v", got)
	}
}

func TestExtract_WhitespaceAndCaseTolerance(t *testing.T) {
	e := newTestExtractor(t)

	tests := []struct {
		name string
		text string
		want models.Citation
	}{
		{"compact fda", "21CFR820.50", models.Citation{Standard: "FDA QSR", Section: "820.50", Text: "Purchasing Controls"}},
		{"lowercase fda", "see 21 cfr 820.100 for CAPA", models.Citation{Standard: "FDA QSR", Section: "820.100", Text: "Corrective and Preventive Action"}},
		{"iso without year", "ISO 13485 Section 4.1 requires a QMS", models.Citation{Standard: "ISO 13485:2016", Section: "4.1", Text: "General Requirements"}},
		{"iso with comma", "ISO 13485:2016, Section 8.5 covers improvement", models.Citation{Standard: "ISO 13485:2016", Section: "8.5", Text: "Improvement"}},
		{"bare mdr", "mdr article 87 covers incident reporting", models.Citation{Standard: "EU MDR", Section: "Article 87", Text: "Reporting of Serious Incidents"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Extract(tt.text)
			if len(got) != 1 {
				t.Fatalf("expected 1 citation, got %d: %+v", len(got), got)
			}
			if got[0] != tt.want {
				t.Errorf("got %+v, want %+v", got[0], tt.want)
			}
		})
	}
}

func TestExtract_UnresolvedReferencesDropped(t *testing.T) {
	e := newTestExtractor(t)

	tests := []string{
		"21 CFR 820.999",              // pattern match, no such FDA section
		"ISO 13485:2016 Section 99.9", // no such ISO section
		"EU MDR Article 999",          // no such article
	}
	for _, text := range tests {
		if got := e.Extract(text); len(got) != 0 {
			t.Errorf("Extract(%q): expected no citations, got %+v", text, got)
		}
	}
}

func TestExtract_DuplicatesPreserved(t *testing.T) {
	e := newTestExtractor(t)

	text := "21 CFR 820.30 is key; revisit 21 CFR 820.30 during design reviews."
	got := e.Extract(text)

	if len(got) != 2 {
		t.Fatalf("expected duplicate citations to be preserved, got %d", len(got))
	}
	if got[0] != got[1] {
		t.Errorf("expected identical citations, got %+v and %+v", got[0], got[1])
	}
}

func TestExtract_NoReferences(t *testing.T) {
	e := newTestExtractor(t)

	if got := e.Extract("How do I prepare for an internal audit?"); len(got) != 0 {
		t.Errorf("expected no citations, got %+v", got)
	}
}

// Running the extractor on text that embeds its own output must produce the
// same citation sequence both times.
func TestExtract_IdempotentOnOwnOutput(t *testing.T) {
	e := newTestExtractor(t)

	text := "Design controls are covered by 21 CFR 820.30 (Design Controls) and ISO 13485:2016 Section 7.3."
	first := e.Extract(text)
	second := e.Extract(text)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("extraction not idempotent:\n first  %+v\n second %+v", first, second)
	}
}
