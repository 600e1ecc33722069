package server

import (
	"errors"

	"github.com/notetakerai/notetaker/internal/errortypes"
)

// ErrorResponse is the structured error payload embedded in tool
// responses when an operation fails.
type ErrorResponse struct {
	Status  string                 `json:"status"`
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Error response codes
const (
	StatusCodeValidationError    = "VALIDATION_ERROR"
	StatusCodeDatabaseError      = "DATABASE_ERROR"
	StatusCodeNetworkError       = "NETWORK_ERROR"
	StatusCodeTranscriptionError = "TRANSCRIPTION_ERROR"
	StatusCodeConfigError        = "CONFIG_ERROR"
	StatusCodeExternalError      = "EXTERNAL_ERROR"
	StatusCodeInternalError      = "INTERNAL_ERROR"
	StatusCodeUnknownError       = "UNKNOWN_ERROR"
)

// errorToResponse converts an error to a standardized ErrorResponse
func errorToResponse(err error) ErrorResponse {
	var code string
	var details map[string]interface{}
	message := err.Error()

	var appErr *errortypes.AppError
	if errors.As(err, &appErr) {
		details = appErr.Fields

		switch appErr.Type {
		case errortypes.ErrorTypeValidation:
			code = StatusCodeValidationError
		case errortypes.ErrorTypeDatabase:
			code = StatusCodeDatabaseError
		case errortypes.ErrorTypeNetwork:
			code = StatusCodeNetworkError
		case errortypes.ErrorTypeTranscription:
			code = StatusCodeTranscriptionError
		case errortypes.ErrorTypeConfig:
			code = StatusCodeConfigError
		case errortypes.ErrorTypeAPI:
			code = StatusCodeExternalError
		case errortypes.ErrorTypeInternal:
			code = StatusCodeInternalError
		default:
			code = StatusCodeUnknownError
		}
	} else {
		code = StatusCodeUnknownError
	}

	return ErrorResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		Details: details,
	}
}

// errorString renders an error for the Error field of a tool response.
// The code prefix lets clients branch on the failure class without
// matching on message text.
func errorString(err error) string {
	resp := errorToResponse(err)
	return resp.Code + ": " + resp.Message
}
