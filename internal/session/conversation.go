package session

// Turn roles. The stakeholder role maps to the completion service's
// "assistant" role on the wire.
const (
	RoleUser        = "user"
	RoleStakeholder = "stakeholder"
)

// Turn is one utterance in the interview. Turns are immutable once appended.
type Turn struct {
	ID      int64  `json:"id"`
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Log is an append-only record of dialogue turns with strictly increasing
// ids. Clearing the log (session reset) keeps the id counter running so an
// id is never reused.
type Log struct {
	turns  []Turn
	nextID int64
}

// Append adds a turn and returns it with its assigned id.
func (l *Log) Append(role, content string) Turn {
	l.nextID++
	t := Turn{ID: l.nextID, Role: role, Content: content}
	l.turns = append(l.turns, t)
	return t
}

// Turns returns a copy of the log in insertion order.
func (l *Log) Turns() []Turn {
	out := make([]Turn, len(l.turns))
	copy(out, l.turns)
	return out
}

// Len is the number of turns exchanged so far, i.e. the conversation round.
func (l *Log) Len() int { return len(l.turns) }

func (l *Log) clear() { l.turns = nil }
