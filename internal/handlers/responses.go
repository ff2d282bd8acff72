package handlers

// ErrorResponse is the standard format for API error responses.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// GreetingResponse is the body of the identity endpoint.
type GreetingResponse struct {
	Message string `json:"message"`
}

// Error codes used in API responses.
const (
	CodeValidationError = "VALIDATION_ERROR"
	CodeStoreError      = "STORE_ERROR"
)
