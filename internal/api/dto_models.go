package api

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`             // Human-readable message
	Code    string `json:"code"`              // Stable machine-readable category
	Details string `json:"details,omitempty"` // More specific details about the error, if available
}

// SuccessResponse is a generic structure for simple success messages.
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
