// Package inspector validates local files before they are uploaded.
// Content types are detected from file signatures, not extensions.
package inspector

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/custodia-labs/docchat/internal/core/domain"
	"github.com/custodia-labs/docchat/internal/core/ports/driven"
)

// Ensure Inspector implements the interface.
var _ driven.DocumentInspector = (*Inspector)(nil)

// Inspector checks that a path is a non-empty regular file of an accepted type.
type Inspector struct {
	accepted []string
}

// New creates an inspector accepting the given MIME types.
// An empty list accepts every type.
func New(acceptedTypes []string) *Inspector {
	accepted := make([]string, 0, len(acceptedTypes))
	for _, t := range acceptedTypes {
		if t = strings.TrimSpace(t); t != "" {
			accepted = append(accepted, t)
		}
	}
	return &Inspector{accepted: accepted}
}

// AcceptedTypes returns the MIME types this inspector accepts.
func (i *Inspector) AcceptedTypes() []string {
	return append([]string(nil), i.accepted...)
}

// Inspect validates path and detects its content type.
func (i *Inspector) Inspect(path string) (*domain.Document, error) {
	path, err := expandPath(path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidDocument, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", domain.ErrInvalidDocument, path)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s is not a regular file", domain.ErrInvalidDocument, path)
	}
	if info.Size() == 0 {
		return nil, fmt.Errorf("%w: %s is empty", domain.ErrInvalidDocument, path)
	}

	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidDocument, err)
	}
	if !i.accepts(mtype) {
		return nil, fmt.Errorf("%w: %s is %s, accepted: %s",
			domain.ErrUnsupportedDocument, filepath.Base(path), baseType(mtype), strings.Join(i.accepted, ", "))
	}

	return &domain.Document{
		Path:     path,
		Name:     filepath.Base(path),
		Size:     info.Size(),
		MIMEType: baseType(mtype),
	}, nil
}

func (i *Inspector) accepts(mtype *mimetype.MIME) bool {
	if len(i.accepted) == 0 {
		return true
	}
	for _, t := range i.accepted {
		if mtype.Is(t) {
			return true
		}
	}
	return false
}

// baseType drops parameters such as charset from a detected type.
func baseType(mtype *mimetype.MIME) string {
	t, _, _ := strings.Cut(mtype.String(), ";")
	return strings.TrimSpace(t)
}

// expandPath resolves a leading ~ and makes the path absolute.
func expandPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("%w: empty path", domain.ErrInvalidDocument)
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("%w: %v", domain.ErrInvalidDocument, err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidDocument, err)
	}
	return abs, nil
}
