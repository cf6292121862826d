package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stocksight/stocksight/internal/analytics"
)

func TestServiceError_Error(t *testing.T) {
	err := &ServiceError{
		Code:    "TEST_ERROR",
		Message: "Test error message",
	}

	if err.Error() != "Test error message" {
		t.Errorf("Expected 'Test error message', got '%s'", err.Error())
	}
}

func TestNewServiceError(t *testing.T) {
	err := NewServiceError("ERROR_CODE", "Error message")

	if err.Code != "ERROR_CODE" {
		t.Errorf("Expected code 'ERROR_CODE', got '%s'", err.Code)
	}
	if err.Message != "Error message" {
		t.Errorf("Expected message 'Error message', got '%s'", err.Message)
	}
	if err.Details != nil {
		t.Errorf("Expected nil details, got %v", err.Details)
	}
}

func TestNewServiceErrorWithDetails(t *testing.T) {
	details := map[string]interface{}{
		"field":  "forecastPeriods",
		"reason": "out of range",
	}

	err := NewServiceErrorWithDetails(CodeInvalidArgument, "Validation failed", details)

	if err.Code != CodeInvalidArgument {
		t.Errorf("Expected code %q, got %q", CodeInvalidArgument, err.Code)
	}
	if err.Details == nil {
		t.Fatal("Expected non-nil details")
	}
	if err.Details["field"] != "forecastPeriods" {
		t.Errorf("Expected field 'forecastPeriods', got '%v'", err.Details["field"])
	}
}

func TestServiceError_JSONSerialization(t *testing.T) {
	err := NewServiceErrorWithDetails(CodeExportFailed, "Export failed", map[string]interface{}{"count": 3})

	data, jsonErr := json.Marshal(err)
	if jsonErr != nil {
		t.Fatalf("Failed to marshal: %v", jsonErr)
	}

	var decoded ServiceError
	if jsonErr := json.Unmarshal(data, &decoded); jsonErr != nil {
		t.Fatalf("Failed to unmarshal: %v", jsonErr)
	}
	if decoded.Code != CodeExportFailed {
		t.Errorf("Expected code %q, got %q", CodeExportFailed, decoded.Code)
	}
}

func TestFromAnalyticsError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{
			name: "invalid argument",
			err:  fmt.Errorf("%w: bad window", analytics.ErrInvalidArgument),
			code: CodeInvalidArgument,
		},
		{
			name: "wrapped invalid argument",
			err:  fmt.Errorf("observation 2: %w", fmt.Errorf("%w: timestamp", analytics.ErrInvalidArgument)),
			code: CodeInvalidArgument,
		},
		{
			name: "insufficient data",
			err:  fmt.Errorf("forecast: %w", analytics.ErrInsufficientData),
			code: CodeInsufficientData,
		},
		{
			name: "unknown",
			err:  errors.New("boom"),
			code: CodeAnalysisFailed,
		},
		{
			name: "already a service error",
			err:  NewServiceError(CodeExportFailed, "nope"),
			code: CodeExportFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svcErr := fromAnalyticsError(tt.err)
			if svcErr.Code != tt.code {
				t.Errorf("Expected code %q, got %q", tt.code, svcErr.Code)
			}
		})
	}
}
