// Package services provides the business logic layer between the HTTP
// handlers and the analytics engine.
package services

import (
	"errors"

	"github.com/stocksight/stocksight/internal/analytics"
)

// Service error codes
const (
	CodeInvalidArgument  = "INVALID_ARGUMENT"
	CodeInsufficientData = "INSUFFICIENT_DATA"
	CodeAnalysisFailed   = "ANALYSIS_FAILED"
	CodeExportFailed     = "EXPORT_FAILED"
)

// ServiceError represents a service-level error with code
type ServiceError struct {
	Code    string
	Message string
	Details map[string]interface{}
}

func (e *ServiceError) Error() string {
	return e.Message
}

// NewServiceError creates a new ServiceError
func NewServiceError(code, message string) *ServiceError {
	return &ServiceError{
		Code:    code,
		Message: message,
	}
}

// NewServiceErrorWithDetails creates a new ServiceError with details
func NewServiceErrorWithDetails(code, message string, details map[string]interface{}) *ServiceError {
	return &ServiceError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// fromAnalyticsError maps engine sentinels to service codes
func fromAnalyticsError(err error) *ServiceError {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr
	}

	switch {
	case errors.Is(err, analytics.ErrInvalidArgument):
		return NewServiceError(CodeInvalidArgument, err.Error())
	case errors.Is(err, analytics.ErrInsufficientData):
		return NewServiceError(CodeInsufficientData, err.Error())
	default:
		return NewServiceErrorWithDetails(CodeAnalysisFailed, "Analysis failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
