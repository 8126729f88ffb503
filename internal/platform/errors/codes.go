package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Timer errors
	CodeTimerNameEmpty Code = "TIMER_NAME_EMPTY"

	// Step errors
	CodeStepTitleEmpty          Code = "STEP_TITLE_EMPTY"
	CodeStepInvalidDuration     Code = "STEP_DURATION_INVALID"
	CodeStepInvalidRepetitions  Code = "STEP_REPETITIONS_INVALID"
	CodeStepInvalidOrderIndex   Code = "STEP_ORDER_INDEX_INVALID"
	CodeStepOrderConflict       Code = "STEP_ORDER_CONFLICT"
	CodeStepNotFound            Code = "STEP_NOT_FOUND"

	// Import errors
	CodeImportRowMalformed  Code = "IMPORT_ROW_MALFORMED"
	CodeImportGroupInvalid  Code = "IMPORT_GROUP_INVALID"

	// Request errors
	CodeRequestInvalid Code = "REQUEST_INVALID"

	// Listing errors
	CodeFilterInvalid    Code = "FILTER_INVALID"
	CodePageTokenInvalid Code = "PAGE_TOKEN_INVALID"

	// Auth errors
	CodeGrantInvalid Code = "AUTH_GRANT_INVALID"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)

// HTTPStatus maps domain codes to HTTP status codes.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeTimerNameEmpty,
		CodeStepTitleEmpty,
		CodeStepInvalidDuration,
		CodeStepInvalidRepetitions,
		CodeStepInvalidOrderIndex,
		CodeStepOrderConflict,
		CodeImportRowMalformed,
		CodeImportGroupInvalid,
		CodeRequestInvalid,
		CodeFilterInvalid,
		CodePageTokenInvalid:
		return http.StatusBadRequest
	case CodeGrantInvalid:
		return http.StatusUnauthorized
	case CodeStepNotFound, CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
