package dto

// ErrorResponse is the error envelope returned by every endpoint, including
// the function-style generation/evaluation endpoints.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
