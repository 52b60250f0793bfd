package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/docchat/internal/core/domain"
)

func TestAskCmd_Use(t *testing.T) {
	assert.Equal(t, "ask <question>", askCmd.Use)
}

func TestAskCmd_HasFlags(t *testing.T) {
	file := askCmd.Flags().Lookup("file")
	require.NotNil(t, file)
	assert.Equal(t, "f", file.Shorthand)

	format := askCmd.Flags().Lookup("format")
	require.NotNil(t, format)
	assert.Equal(t, "o", format.Shorthand)
	assert.Equal(t, "text", format.DefValue)
}

func TestAskCmd_JoinsArgs(t *testing.T) {
	svc, cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ask", "what", "is", "this?"})

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, []string{"what is this?"}, svc.backend.questions)
	assert.Contains(t, buf.String(), "You: what is this?")
	assert.Contains(t, buf.String(), "Assistant: answer to what is this?")
}

func TestAskCmd_UploadsFileFirst(t *testing.T) {
	svc, cleanup := setupTestServices()
	defer cleanup()
	path := writePDF(t, "manual.pdf")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ask", "--file", path, "summary?"})

	err := rootCmd.Execute()

	require.NoError(t, err)
	require.Len(t, svc.backend.uploads, 1)
	out := buf.String()
	assert.Contains(t, out, "System: manual.pdf uploaded and processed.")
	assert.Contains(t, out, "Assistant: answer to summary?")
}

func TestAskCmd_JSONFormat(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ask", "-o", "json", "hello"})

	require.NoError(t, rootCmd.Execute())

	var got transcript
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got.Entries, 2)
	assert.Equal(t, domain.EntryUser, got.Entries[0].Kind)
	assert.Equal(t, domain.EntryAssistant, got.Entries[1].Kind)
}

func TestAskCmd_YAMLFormat(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ask", "--format", "yaml", "hello"})

	require.NoError(t, rootCmd.Execute())

	var got transcript
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Len(t, got.Entries, 2)
}

func TestAskCmd_RejectsUnknownFormat(t *testing.T) {
	svc, cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ask", "-o", "xml", "hello"})

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown format "xml"`)
	assert.Empty(t, svc.backend.questions)
}

func TestAskCmd_BackendErrorIsReported(t *testing.T) {
	svc, cleanup := setupTestServices()
	defer cleanup()
	svc.backend.askErr = &domain.TransportError{Op: "chat", Err: errors.New("connection refused")}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ask", "hello"})

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Equal(t, "question failed: connection refused", err.Error())
	assert.Contains(t, buf.String(), "Error: connection refused")
}

func TestAskCmd_RequireDocument(t *testing.T) {
	svc, cleanup := setupTestServices()
	defer cleanup()
	conversationController.SetRequireDocument(true)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ask", "hello"})

	err := rootCmd.Execute()

	assert.ErrorIs(t, err, domain.ErrQuestionRejected)
	assert.ErrorIs(t, err, domain.ErrDocumentNotReady)
	assert.Empty(t, svc.backend.questions)
}
