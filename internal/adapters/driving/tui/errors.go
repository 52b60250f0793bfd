package tui

import "errors"

// ErrMissingUploadController is returned when the upload controller is not provided.
var ErrMissingUploadController = errors.New("tui: upload controller is required")

// ErrMissingConversationController is returned when the conversation controller is not provided.
var ErrMissingConversationController = errors.New("tui: conversation controller is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
