package driving

import (
	"context"

	"github.com/custodia-labs/docchat/internal/core/domain"
)

// ConversationController owns the transcript and the question in flight.
type ConversationController interface {
	// SetDraft replaces the question input buffer.
	SetDraft(text string)

	// Draft returns the question input buffer.
	Draft() string

	// SubmitQuestion accepts text as the next question and returns the task
	// that sends it. Rejections wrap domain.ErrQuestionRejected and leave the
	// session unchanged.
	SubmitQuestion(text string) (QuestionTask, error)

	// Ask submits a question and runs it to completion, returning the
	// terminal entry (Assistant or Error).
	Ask(ctx context.Context, text string) (domain.Entry, error)

	// Entries returns a copy of the transcript in append order.
	Entries() []domain.Entry

	// Pending returns true while a question awaits its answer.
	Pending() bool

	// SetRequireDocument toggles rejection of questions before a successful upload.
	SetRequireDocument(require bool)
}

// QuestionTask is one in-flight question request.
type QuestionTask interface {
	// Question returns the trimmed question text.
	Question() string

	// Run sends the question and appends its terminal entry.
	// Only the first call does any work; later calls return the same entry.
	Run(ctx context.Context) domain.Entry
}
