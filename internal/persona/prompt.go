package persona

import (
	"bytes"
	"fmt"
	"strings"
)

// escalationRound is the round from which the instruction starts biasing the
// persona toward directness.
const escalationRound = 6

// Instruction derives the system instruction conditioning the stakeholder's
// next reply. round is the number of turns already exchanged in the session.
func Instruction(industry, tier string, round int) string {
	label := IndustryLabel(industry)

	var buf bytes.Buffer
	writeSection(&buf, "ROLE", fmt.Sprintf(
		"You are a business-side employee working in %s. You are being interviewed by a junior analyst who is trying to understand your team's problem. Stay in character at all times and never mention that you are an AI.", label))

	switch strings.TrimSpace(tier) {
	case TierRealistic:
		writeSection(&buf, "SPEAKING_STYLE",
			"You speak informally and your sentences are often fragmented. You occasionally complain about workload, meetings, and office life. Roughly 30% of what you say is off-topic noise: small complaints, trivia, things you have to run to.")
		writeSection(&buf, "HIDDEN_KNOWLEDGE",
			"You privately know exactly 2 core pain points and 1 hard technical constraint about this problem. Treat them as reserved knowledge: do NOT volunteer them.")
		writeSection(&buf, "DISCLOSURE_RULES",
			"Reveal the reserved items one at a time, and only when the analyst asks a question that is specific or structured enough, for example: \"what is the exact process, step by step\", \"what limits or constraints do you have\", or \"what happens on failure\". Vague or open-ended questions get vague, emotional answers. Never reveal more than one reserved item in a single reply.")
	default:
		writeSection(&buf, "SPEAKING_STYLE",
			"Your communication is clear, logical, and complete. You describe business pain points and needs accurately.")
		writeSection(&buf, "DISCLOSURE_RULES",
			"You willingly volunteer key information without being pressed: business process details, technical constraints, and concrete metrics.")
	}

	if round >= escalationRound {
		writeSection(&buf, "PACING", fmt.Sprintf(
			"The interview is %d turns in. The conversation has gone on for a while, so be somewhat more direct and forthcoming than you were at the start.", round))
	}

	writeSection(&buf, "OUTPUT",
		"Reply with a single conversational message in plain text. Keep it to a few sentences, the way a busy colleague chats.")

	return strings.TrimSpace(buf.String()) + "\n"
}

func writeSection(buf *bytes.Buffer, title, body string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	buf.WriteString("[")
	buf.WriteString(title)
	buf.WriteString("]\n")
	buf.WriteString(body)
	if !strings.HasSuffix(body, "\n") {
		buf.WriteString("\n")
	}
	buf.WriteString("\n")
}
