package dto

import "time"

// ErrorResponse is the standardized error body returned by the API.
type ErrorResponse struct {
	Message      string    `json:"message" example:"Invalid symbol"`
	ErrorDetails string    `json:"error_details,omitempty" example:"quote: no chart result"`
	Timestamp    time.Time `json:"timestamp"`
}

// NewErrorResponse builds an ErrorResponse, copying err's text into ErrorDetails when non-nil.
func NewErrorResponse(message string, err error) ErrorResponse {
	resp := ErrorResponse{Message: message, Timestamp: time.Now().UTC()}
	if err != nil {
		resp.ErrorDetails = err.Error()
	}
	return resp
}

// Error implements the error interface.
func (e ErrorResponse) Error() string {
	if e.ErrorDetails == "" {
		return e.Message
	}
	return e.Message + ": " + e.ErrorDetails
}
