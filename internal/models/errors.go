package models

// APIError represents a standardized error response format for the API.
// @Description APIError represents a standardized error response format, including an application-specific error code, a human-readable message, and optional details.
type APIError struct {
	Code    string      `json:"code"`              // Application-specific error code (e.g., "INVALID_MODEL_KIND")
	Message string      `json:"message"`           // Human-readable message describing the error
	Details interface{} `json:"details,omitempty"` // Optional field for additional error details
}

// Predefined application-specific error codes
const (
	// Generic Errors
	ErrorCodeInternalServerError = "INTERNAL_SERVER_ERROR"
	ErrorCodeServiceUnavailable  = "SERVICE_UNAVAILABLE"

	// Input Validation
	ErrorCodeValidation       = "VALIDATION_ERROR" // Malformed or incomplete payload
	ErrorCodeInvalidModelKind = "INVALID_MODEL_KIND"

	// Training
	ErrorCodeTrainingFailed = "TRAINING_FAILED" // The fixed partition cannot train the requested model
)
