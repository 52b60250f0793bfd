package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocument_IsZero(t *testing.T) {
	assert.True(t, Document{}.IsZero())
	assert.False(t, Document{Path: "/tmp/report.pdf"}.IsZero())
}

func TestDocument_String(t *testing.T) {
	doc := Document{
		Path:     "/tmp/report.pdf",
		Name:     "report.pdf",
		Size:     2048,
		MIMEType: "application/pdf",
	}

	assert.Equal(t, "report.pdf (application/pdf, 2.0 KiB)", doc.String())
	assert.Equal(t, "(none)", Document{}.String())
}

func TestHumanSize(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 * 1024 * 1024, "5.0 MiB"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, HumanSize(tt.in))
	}
}
