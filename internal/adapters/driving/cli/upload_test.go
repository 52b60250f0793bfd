package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docchat/internal/core/domain"
)

func TestUploadCmd_Use(t *testing.T) {
	assert.Equal(t, "upload <file>", uploadCmd.Use)
}

func TestUploadCmd_RequiresExactlyOneArg(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"upload"})

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestUploadCmd_Succeeds(t *testing.T) {
	svc, cleanup := setupTestServices()
	defer cleanup()
	path := writePDF(t, "report.pdf")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"upload", path})

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Document processed successfully! (3 chunks)")
	require.Len(t, svc.backend.uploads, 1)
	assert.Equal(t, "report.pdf", svc.backend.uploads[0].Name)
	assert.Equal(t, "application/pdf", svc.backend.uploads[0].MIMEType)
}

func TestUploadCmd_RejectsUnsupportedType(t *testing.T) {
	svc, cleanup := setupTestServices()
	defer cleanup()
	path := writeText(t, "notes.txt")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"upload", path})

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnsupportedDocument)
	assert.Empty(t, svc.backend.uploads)
}

func TestUploadCmd_MissingFile(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"upload", "/definitely/not/here.pdf"})

	err := rootCmd.Execute()

	assert.ErrorIs(t, err, domain.ErrInvalidDocument)
}

func TestUploadCmd_BackendFailure(t *testing.T) {
	svc, cleanup := setupTestServices()
	defer cleanup()
	svc.backend.uploadErr = &domain.BackendError{StatusCode: 400, Detail: "Only PDF files are allowed"}
	path := writePDF(t, "report.pdf")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"upload", path})

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Equal(t, "upload failed: Only PDF files are allowed", err.Error())
	assert.Equal(t, domain.UploadFailed, uploadController.Status().State)
}

func TestUploadCmd_NoServices(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	SetServices(nil)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"upload", "x.pdf"})

	assert.ErrorIs(t, rootCmd.Execute(), errServicesNotConfigured)
}
