package domain

import "fmt"

// Document is a handle to a local file selected for upload.
// It is a value: selecting another file replaces the handle, it is never mutated.
type Document struct {
	// Path is the absolute path of the file.
	Path string `json:"path" yaml:"path"`

	// Name is the file name sent as the multipart filename.
	Name string `json:"name" yaml:"name"`

	// Size is the file size in bytes at selection time.
	Size int64 `json:"size" yaml:"size"`

	// MIMEType is the detected content type, e.g. "application/pdf".
	MIMEType string `json:"mime_type" yaml:"mime_type"`
}

// IsZero returns true for the empty handle.
func (d Document) IsZero() bool {
	return d.Path == ""
}

// String returns a short human-readable description.
func (d Document) String() string {
	if d.IsZero() {
		return "(none)"
	}
	return fmt.Sprintf("%s (%s, %s)", d.Name, d.MIMEType, HumanSize(d.Size))
}

// HumanSize formats a byte count using binary units.
func HumanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
