package response

// Machine readable error codes returned in the "error" field of every failure.
const (
	ErrCodeInvalidRequest     = "invalid_request"
	ErrCodeUnauthorized       = "unauthorized"
	ErrCodeForbidden          = "forbidden"
	ErrCodeNotFound           = "not_found"
	ErrCodeConflict           = "conflict"
	ErrCodeRateLimited        = "rate_limited"
	ErrCodeInternal           = "internal_error"
	ErrCodeCandidateNotFound  = "candidate_not_found"
	ErrCodeDailyLimitExceeded = "daily_limit_exceeded"
	ErrCodeInvalidQuantity    = "invalid_quantity"
	ErrCodeInvalidImage       = "invalid_image"
)

// message
var msg = map[string]string{
	ErrCodeInvalidRequest:     "Invalid input data",
	ErrCodeUnauthorized:       "Unauthorized",
	ErrCodeForbidden:          "Admins only",
	ErrCodeNotFound:           "Resource not found",
	ErrCodeConflict:           "Resource already exists",
	ErrCodeRateLimited:        "Rate limit exceeded",
	ErrCodeInternal:           "An unexpected error occurred.",
	ErrCodeCandidateNotFound:  "Candidate not found",
	ErrCodeDailyLimitExceeded: "You have already voted today. You can only vote once per day.",
	ErrCodeInvalidQuantity:    "Quantity must be at least 1",
	ErrCodeInvalidImage:       "Image must be a jpeg, png or gif of at most 2MB",
}

// Message returns the default user facing text for code.
func Message(code string) string {
	if m, ok := msg[code]; ok {
		return m
	}
	return msg[ErrCodeInternal]
}
