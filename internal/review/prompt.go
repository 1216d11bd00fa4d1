package review

import (
	"fmt"
	"strings"

	"reqdojo/internal/session"
)

const notProvided = "(not provided)"

// buildPrompt serializes the whole exercise into one evaluation prompt.
// Empty document fields render as an explicit marker, never as omission.
func buildPrompt(sess *session.Session) string {
	var sb strings.Builder

	sb.WriteString("You are a senior product manager and requirements-analysis expert. Review the following trainee's requirement-gathering exercise.\n\n")

	sb.WriteString("## Interview transcript\n")
	turns := sess.Conversation.Turns()
	if len(turns) == 0 {
		sb.WriteString(notProvided + "\n")
	}
	for _, t := range turns {
		label := "Stakeholder"
		if t.Role == session.RoleUser {
			label = "Trainee"
		}
		fmt.Fprintf(&sb, "%s: %s\n", label, t.Content)
	}

	sb.WriteString("\n## Requirement document\n")
	fmt.Fprintf(&sb, "Business goals: %s\n", orMarker(sess.Document.BusinessGoals))
	fmt.Fprintf(&sb, "Pain points: %s\n", joinOrMarker(sess.Document.PainPoints))
	fmt.Fprintf(&sb, "Core features: %s\n", joinOrMarker(sess.Document.CoreFeatures))

	sb.WriteString("\n## Design solution\n")
	sb.WriteString(orMarker(sess.DesignSolution) + "\n")

	sb.WriteString("\n## AI integration plan\n")
	sb.WriteString(orMarker(sess.AIPlan) + "\n")

	sb.WriteString(`
---

Score the trainee strictly on the following five axes, each an integer from 1 to 100, with sharp but constructive commentary:

1. **Insight**: did they dig out the hidden constraints and real pain points, or stop at surface-level needs?
2. **Logic**: does the solution cover every confirmed requirement, including edge cases and failure scenarios?
3. **AI-First**: is the AI angle genuinely useful rather than a gimmick; does it actually improve the workflow?
4. **Professionalism**: is the document precise and structured; does it use product terminology?
5. **Feasibility**: can it be built; do the costs and benefits add up?

Return the evaluation in strict JSON with exactly this shape:

` + "```json" + `
{
  "scores": {
    "insight": 75,
    "logic": 68,
    "aiFirst": 82,
    "professionalism": 70,
    "feasibility": 65
  },
  "feedback": {
    "insight": "...",
    "logic": "...",
    "aiFirst": "...",
    "professionalism": "...",
    "feasibility": "..."
  },
  "suggestions": [
    "..."
  ],
  "overall": "..."
}
` + "```" + `

Notes:
- Score objectively; do not hand out uniformly high marks.
- Feedback should be pointed but constructive.
- Suggestions must be concrete and actionable.
- The response must be strict JSON, nothing else.
`)

	return sb.String()
}

func orMarker(s string) string {
	if strings.TrimSpace(s) == "" {
		return notProvided
	}
	return s
}

func joinOrMarker(items []string) string {
	if len(items) == 0 {
		return notProvided
	}
	return strings.Join(items, ", ")
}
