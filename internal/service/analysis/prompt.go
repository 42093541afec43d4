package analysis

import (
	"fmt"
	"strings"
)

const systemInstructions = `You are a contract compliance reviewer. Compare the DOCUMENT against the PLAYBOOK rules.

Respond with exactly three sections, each starting on a new line:
- Conflicts: clauses in the document that contradict a playbook rule, one per line
- Gaps: playbook requirements the document does not address, one per line
- Irrelevant: document content unrelated to any playbook rule, one per line

Leave a section empty after the colon if there is nothing to report.`

// BuildPrompt composes the analysis request from retrieved playbook chunks and
// the full document text.
func BuildPrompt(playbookChunks []string, documentText string) string {
	return fmt.Sprintf("%s\n\nPLAYBOOK:\n%s\n\nDOCUMENT:\n%s",
		systemInstructions,
		strings.Join(playbookChunks, "\n\n"),
		documentText,
	)
}
