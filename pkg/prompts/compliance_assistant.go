// Package prompts assembles the prompts sent to the completion client.
package prompts

import (
	"fmt"
	"strings"
)

// AssistantSystemPrompt frames the assistant as a regulatory compliance
// expert and sets citation expectations.
const AssistantSystemPrompt = "You are a regulatory compliance expert assistant for medical devices. " +
	"Provide helpful, accurate responses about medical device regulatory compliance. " +
	"If you reference specific regulations, cite them properly " +
	`(e.g., "21 CFR 820.30" or "ISO 13485:2016 Section 7.3"). Be specific and professional. ` +
	"If the question relates to audit practices, quality systems, or compliance procedures, " +
	"provide practical guidance while emphasizing the importance of consulting with qualified " +
	"regulatory professionals for official guidance."

// BuildAssistantPrompt creates the user prompt for a compliance question.
// catalogSummary is the JSON summary of standard/section identifiers from
// the catalog; full section content is intentionally not included so the
// prompt stays bounded regardless of catalog size.
func BuildAssistantPrompt(catalogSummary, question string) string {
	var prompt strings.Builder

	prompt.WriteString("Context: The user is asking about medical device regulations including ")
	prompt.WriteString("FDA QSR (21 CFR 820), ISO 13485, and EU MDR.\n\n")
	prompt.WriteString("Available regulatory standards context:\n")
	prompt.WriteString(catalogSummary)
	prompt.WriteString("\n\n")
	prompt.WriteString(fmt.Sprintf("User question: %s\n", question))

	return prompt.String()
}
