package domain

const unknownDescription = "Unknown"

// UploadState is the phase of the document upload lifecycle.
type UploadState string

// Upload states. Transitions are Idle → Uploading → Succeeded|Failed, and
// Uploading is re-entered only from a terminal state.
const (
	// UploadIdle means no upload has been attempted.
	UploadIdle UploadState = "idle"

	// UploadUploading means an upload request is in flight.
	UploadUploading UploadState = "uploading"

	// UploadSucceeded means the backend accepted and processed the document.
	UploadSucceeded UploadState = "succeeded"

	// UploadFailed means the last upload attempt failed.
	UploadFailed UploadState = "failed"
)

// IsTerminal returns true if the state ends an upload cycle.
func (s UploadState) IsTerminal() bool {
	return s == UploadSucceeded || s == UploadFailed
}

// CanStart returns true if a new upload may begin from this state.
func (s UploadState) CanStart() bool {
	return s != UploadUploading
}

// String returns the string representation.
func (s UploadState) String() string {
	return string(s)
}

// UploadStatus is the upload state plus its user-facing message.
// Message is the success text for Succeeded and the failure reason for Failed.
type UploadStatus struct {
	State   UploadState `json:"state" yaml:"state"`
	Message string      `json:"message,omitempty" yaml:"message,omitempty"`
}

// Display texts for the upload status line.
const (
	UploadingText        = "Uploading..."
	UploadSucceededText  = "Document processed successfully!"
	uploadFailedTextBase = "Upload failed: "
)

// String returns the status line shown to the user.
func (s UploadStatus) String() string {
	switch s.State {
	case UploadIdle:
		return ""
	case UploadUploading:
		return UploadingText
	case UploadSucceeded:
		if s.Message != "" {
			return s.Message
		}
		return UploadSucceededText
	case UploadFailed:
		return uploadFailedTextBase + s.Message
	default:
		return unknownDescription
	}
}

// UploadReceipt is what the backend reports after processing a document.
// The shape is opaque to the session; every field is optional.
type UploadReceipt struct {
	// Message is the backend's acceptance text.
	Message string `json:"message,omitempty" yaml:"message,omitempty"`

	// ChunksCount is how many chunks the backend indexed.
	ChunksCount int `json:"chunks_count,omitempty" yaml:"chunks_count,omitempty"`

	// Preview is the start of the extracted text.
	Preview string `json:"preview,omitempty" yaml:"preview,omitempty"`
}
