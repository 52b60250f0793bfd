package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUploadState_IsTerminal(t *testing.T) {
	assert.False(t, UploadIdle.IsTerminal())
	assert.False(t, UploadUploading.IsTerminal())
	assert.True(t, UploadSucceeded.IsTerminal())
	assert.True(t, UploadFailed.IsTerminal())
}

func TestUploadState_CanStart(t *testing.T) {
	assert.True(t, UploadIdle.CanStart())
	assert.False(t, UploadUploading.CanStart())
	assert.True(t, UploadSucceeded.CanStart())
	assert.True(t, UploadFailed.CanStart())
}

func TestUploadStatus_String(t *testing.T) {
	tests := []struct {
		name   string
		status UploadStatus
		want   string
	}{
		{"idle", UploadStatus{State: UploadIdle}, ""},
		{"uploading", UploadStatus{State: UploadUploading}, "Uploading..."},
		{"succeeded default", UploadStatus{State: UploadSucceeded}, "Document processed successfully!"},
		{"succeeded custom", UploadStatus{State: UploadSucceeded, Message: "done (3 chunks)"}, "done (3 chunks)"},
		{"failed", UploadStatus{State: UploadFailed, Message: "bad format"}, "Upload failed: bad format"},
		{"unknown", UploadStatus{State: UploadState("x")}, "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.String())
		})
	}
}
