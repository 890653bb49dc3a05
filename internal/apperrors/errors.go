// Package apperrors defines the failure taxonomy shared by every boundary:
// HTTP handlers, the CLI and the bulk worker.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ValidationError reports a missing required input field.
type ValidationError struct {
	Fields  []string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

// NewValidationError builds a ValidationError for the given fields.
func NewValidationError(message string, fields ...string) *ValidationError {
	return &ValidationError{Fields: fields, Message: message}
}

// ConfigError reports a required secret or setting that is not configured.
type ConfigError struct {
	Setting string
	Message string
}

func (e *ConfigError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s not configured", e.Setting)
}

// UpstreamError is a non-2xx answer from the catalog or generative API.
type UpstreamError struct {
	Service    string
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s API error: %d - %s", e.Service, e.StatusCode, e.Message)
}

// ParseError reports generative output that is not a valid draft document.
// Raw carries the untouched model output for manual recovery.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return "Failed to parse AI response as JSON"
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// HTTPStatus maps an error to the status code used by the HTTP surface.
func HTTPStatus(err error) int {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// RawResponse returns the raw model output carried by a ParseError, if any.
func RawResponse(err error) (string, bool) {
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return parseErr.Raw, true
	}
	return "", false
}
