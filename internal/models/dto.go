package models

import "time"

// ===== ERROR RESPONSES =====

type ValidationErrorResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error            string                    `json:"error"`
	Message          string                    `json:"message"`
	Details          interface{}               `json:"details,omitempty"`
	ValidationErrors []ValidationErrorResponse `json:"validation_errors,omitempty"`
	Timestamp        time.Time                 `json:"timestamp"`
}

type SuccessResponse struct {
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}
