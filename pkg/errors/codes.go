package errors

import (
	"net/http"
	"strings"
)

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common Error Codes
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_003"
	ErrCodeTooManyRequests    ErrorCode = "COMMON_004"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_005"
	ErrCodeTimeout            ErrorCode = "COMMON_006"
	ErrCodeValidation         ErrorCode = "COMMON_007"
	ErrCodeSerialization      ErrorCode = "COMMON_008"
	ErrCodeCacheError         ErrorCode = "COMMON_009"
	ErrCodeNotImplemented     ErrorCode = "COMMON_010"
)

// Resolution Module Error Codes
const (
	ErrCodeResolutionEmptyQuery ErrorCode = "GEO_001"
	ErrCodeResolutionDegraded   ErrorCode = "GEO_002"
)

// Clinic Module Error Codes
const (
	ErrCodeClinicAreaMissing ErrorCode = "CLN_001"
	ErrCodeClinicDegraded    ErrorCode = "CLN_002"
)

// Oracle Module Error Codes
const (
	ErrCodeOracleUnavailable   ErrorCode = "ORC_001"
	ErrCodeOracleEmptyReply    ErrorCode = "ORC_002"
	ErrCodeOracleNotConfigured ErrorCode = "ORC_003"
)

// Dataset Error Codes
const (
	ErrCodeDatasetUnavailable ErrorCode = "DATA_001"
	ErrCodeDatasetParseError  ErrorCode = "DATA_002"
)

// Aliases kept for call-site readability
const (
	CodeInternal     = ErrCodeInternal
	CodeInvalidParam = ErrCodeBadRequest
	CodeNotFound     = ErrCodeNotFound
	CodeRateLimit    = ErrCodeTooManyRequests
	CodeUnknown      = ErrorCode("")
	CodeOK           = ErrorCode("OK")
)

// ErrorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeTooManyRequests:    http.StatusTooManyRequests,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeTimeout:            http.StatusGatewayTimeout,
	ErrCodeValidation:         http.StatusUnprocessableEntity,
	ErrCodeSerialization:      http.StatusInternalServerError,
	ErrCodeCacheError:         http.StatusInternalServerError,
	ErrCodeNotImplemented:     http.StatusNotImplemented,

	ErrCodeResolutionEmptyQuery: http.StatusBadRequest,
	ErrCodeResolutionDegraded:   http.StatusOK,

	ErrCodeClinicAreaMissing: http.StatusBadRequest,
	ErrCodeClinicDegraded:    http.StatusOK,

	ErrCodeOracleUnavailable:   http.StatusServiceUnavailable,
	ErrCodeOracleEmptyReply:    http.StatusBadGateway,
	ErrCodeOracleNotConfigured: http.StatusServiceUnavailable,

	ErrCodeDatasetUnavailable: http.StatusServiceUnavailable,
	ErrCodeDatasetParseError:  http.StatusInternalServerError,
}

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:           "internal server error",
	ErrCodeBadRequest:         "bad request",
	ErrCodeNotFound:           "resource not found",
	ErrCodeTooManyRequests:    "too many requests",
	ErrCodeServiceUnavailable: "service unavailable",
	ErrCodeTimeout:            "request timeout",
	ErrCodeValidation:         "validation failed",
	ErrCodeSerialization:      "serialization failed",
	ErrCodeCacheError:         "cache error",
	ErrCodeNotImplemented:     "not implemented",

	ErrCodeResolutionEmptyQuery: "resolution query must not be empty",
	ErrCodeResolutionDegraded:   "area reference data unavailable",

	ErrCodeClinicAreaMissing: "clinic area must not be empty",
	ErrCodeClinicDegraded:    "clinic reference data unavailable",

	ErrCodeOracleUnavailable:   "assistant is temporarily unavailable",
	ErrCodeOracleEmptyReply:    "assistant returned an empty reply",
	ErrCodeOracleNotConfigured: "assistant is not configured",

	ErrCodeDatasetUnavailable: "dataset unavailable",
	ErrCodeDatasetParseError:  "failed to parse dataset",
}

// HTTPStatusForCode returns the HTTP status code for an ErrorCode.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DefaultMessageForCode returns the default message for an ErrorCode.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := ErrorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// IsClientError returns true if the ErrorCode corresponds to a 4xx HTTP status.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 400 && status < 500
}

// IsServerError returns true if the ErrorCode corresponds to a 5xx HTTP status.
func IsServerError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 500 && status < 600
}

// ModuleForCode returns the module prefix of an ErrorCode.
func ModuleForCode(code ErrorCode) string {
	parts := strings.Split(string(code), "_")
	if len(parts) > 0 && parts[0] != "" {
		return parts[0]
	}
	return "UNKNOWN"
}
