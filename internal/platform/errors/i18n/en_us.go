package i18n

// Error codes must match the codes defined in internal/platform/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeTimerNameEmpty         = "TIMER_NAME_EMPTY"
	CodeStepTitleEmpty         = "STEP_TITLE_EMPTY"
	CodeStepInvalidDuration    = "STEP_DURATION_INVALID"
	CodeStepInvalidRepetitions = "STEP_REPETITIONS_INVALID"
	CodeStepInvalidOrderIndex  = "STEP_ORDER_INDEX_INVALID"
	CodeStepOrderConflict      = "STEP_ORDER_CONFLICT"
	CodeStepNotFound           = "STEP_NOT_FOUND"
	CodeImportRowMalformed     = "IMPORT_ROW_MALFORMED"
	CodeImportGroupInvalid     = "IMPORT_GROUP_INVALID"
	CodeRequestInvalid         = "REQUEST_INVALID"
	CodeFilterInvalid          = "FILTER_INVALID"
	CodePageTokenInvalid       = "PAGE_TOKEN_INVALID"
	CodeGrantInvalid           = "AUTH_GRANT_INVALID"
	CodeNotFound               = "NOT_FOUND"
)

var enUSCatalog = &Catalog{
	locale: "en-US",
	messages: map[Code]string{
		// Timer errors
		CodeTimerNameEmpty: "Timer name cannot be empty",

		// Step errors
		CodeStepTitleEmpty:         "Step title cannot be empty",
		CodeStepInvalidDuration:    "Step duration must be at least 1 second",
		CodeStepInvalidRepetitions: "Step repetitions must be at least 1",
		CodeStepInvalidOrderIndex:  "Step order index must be zero or greater",
		CodeStepOrderConflict:      "Step order index {{.OrderIndex}} is already used in this timer",
		CodeStepNotFound:           "The requested step was not found",

		// Import errors
		CodeImportRowMalformed: "Row {{.Position}} could not be read: {{.Reason}}",
		CodeImportGroupInvalid: "Timer {{.TimerName}} could not be imported: {{.Reason}}",

		// Request errors
		CodeRequestInvalid: "The request body could not be read",

		// Listing errors
		CodeFilterInvalid:    "The list filter expression is invalid",
		CodePageTokenInvalid: "The page token is invalid or has expired",

		// Auth errors
		CodeGrantInvalid: "The access grant is missing or invalid",

		// Storage errors
		CodeNotFound: "The requested resource was not found",
	},
}
