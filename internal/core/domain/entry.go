package domain

import "time"

// EntryKind tags a transcript entry by its origin.
type EntryKind string

// Available entry kinds.
const (
	// EntryUser is a question typed by the user.
	EntryUser EntryKind = "user"

	// EntryAssistant is an answer returned by the backend.
	EntryAssistant EntryKind = "assistant"

	// EntrySystem is a notice produced by the client, such as upload readiness.
	EntrySystem EntryKind = "system"

	// EntryError is a failed question, carrying the extracted failure reason.
	EntryError EntryKind = "error"
)

// IsTerminal returns true for kinds that close out a preceding user entry.
func (k EntryKind) IsTerminal() bool {
	return k == EntryAssistant || k == EntryError
}

// String returns the string representation.
func (k EntryKind) String() string {
	return string(k)
}

// Label returns the prefix shown before the entry text.
func (k EntryKind) Label() string {
	switch k {
	case EntryUser:
		return "You"
	case EntryAssistant:
		return "Assistant"
	case EntrySystem:
		return "System"
	case EntryError:
		return "Error"
	default:
		return unknownDescription
	}
}

// Entry is one record in the conversation transcript.
// Entries are values; once appended to a session they are never edited.
type Entry struct {
	// Kind identifies who produced the entry.
	Kind EntryKind `json:"kind" yaml:"kind"`

	// Text is the entry body.
	Text string `json:"text" yaml:"text"`

	// At is when the entry was appended.
	At time.Time `json:"at" yaml:"at"`
}

// NewEntry creates an entry stamped with the current time.
func NewEntry(kind EntryKind, text string) Entry {
	return Entry{
		Kind: kind,
		Text: text,
		At:   time.Now(),
	}
}

// String renders the entry with its label, e.g. "You: What is the total?".
func (e Entry) String() string {
	return e.Kind.Label() + ": " + e.Text
}
