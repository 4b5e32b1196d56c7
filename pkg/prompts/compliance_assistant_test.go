package prompts

import (
	"strings"
	"testing"
)

func TestBuildAssistantPrompt(t *testing.T) {
	summary := `[{"id":"fda-qsr","name":"FDA QSR","sections":[{"id":"820.30","title":"Design Controls"}]}]`
	prompt := BuildAssistantPrompt(summary, "What are design control requirements?")

	if !strings.Contains(prompt, summary) {
		t.Error("prompt must embed the catalog summary")
	}
	if !strings.Contains(prompt, "User question: What are design control requirements?") {
		t.Error("prompt must embed the user question")
	}
}

func TestAssistantSystemPrompt_CitationGuidance(t *testing.T) {
	if !strings.Contains(AssistantSystemPrompt, "21 CFR 820.30") {
		t.Error("system prompt should show the FDA citation format")
	}
	if !strings.Contains(AssistantSystemPrompt, "ISO 13485:2016 Section 7.3") {
		t.Error("system prompt should show the ISO citation format")
	}
}
