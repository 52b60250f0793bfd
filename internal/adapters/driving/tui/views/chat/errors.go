package chat

import "errors"

// ErrNoConversationController indicates that no conversation controller was provided.
var ErrNoConversationController = errors.New("conversation controller is required")
