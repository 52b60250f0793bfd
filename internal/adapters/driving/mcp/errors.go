// Package mcp provides an MCP (Model Context Protocol) server adapter for docchat.
// It lets AI assistants upload a document and ask questions about it through
// the same session controllers the terminal surfaces use.
package mcp

import "errors"

// ErrMissingUploadController is returned when the upload controller is not provided.
var ErrMissingUploadController = errors.New("mcp: upload controller is required")

// ErrMissingConversationController is returned when the conversation controller is not provided.
var ErrMissingConversationController = errors.New("mcp: conversation controller is required")
