// Package docapi provides a Backend adapter for the document question
// answering HTTP API.
//
// Endpoints:
//   - POST /upload: multipart form, single field "file"
//   - POST /chat: JSON {"question": "..."} answered with {"answer": "..."}
//   - GET /health: {"status": "...", "model_ready": bool}
//
// Non-2xx responses carry {"detail": ...}, where detail is a string or a
// list of validation errors with a "msg" field.
package docapi
