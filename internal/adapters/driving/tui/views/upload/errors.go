package upload

import "errors"

// ErrNoUploadController indicates that no upload controller was provided.
var ErrNoUploadController = errors.New("upload controller is required")
